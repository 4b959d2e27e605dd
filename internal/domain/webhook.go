package domain

import jsoniter "github.com/json-iterator/go"

// LooseString aceita qualquer valor JSON no campo. Só strings são mantidas;
// números, booleanos e objetos viram vazio em vez de derrubar a decodificação.
type LooseString string

func (s *LooseString) UnmarshalJSON(data []byte) error {
	var value string
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(data, &value); err != nil {
		*s = ""
		return nil
	}
	*s = LooseString(value)
	return nil
}

// WebhookTaskPayload é o corpo aceito pelo endpoint de ingestão de tarefas
type WebhookTaskPayload struct {
	Secret      LooseString `json:"secret"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Priority    LooseString `json:"priority"`
	DueDate     string      `json:"dueDate"`
	ProjectID   string      `json:"projectId"`
	Source      string      `json:"source"`
	Department  string      `json:"department"`
	Assignee    string      `json:"assignee"`
}

type WebhookTaskSummary struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Status    TaskStatus   `json:"status"`
	Priority  TaskPriority `json:"priority"`
	ProjectID *string      `json:"projectId"`
	Assignee  *string      `json:"assignee"`
	Source    *string      `json:"source"`
}

type WebhookTaskResponse struct {
	Success bool               `json:"success"`
	Message string             `json:"message"`
	Task    WebhookTaskSummary `json:"task"`
}

type WebhookErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
