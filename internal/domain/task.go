package domain

import (
	"strings"
	"time"
)

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusReview     TaskStatus = "review"
	TaskStatusDone       TaskStatus = "done"
)

var TaskStatuses = []TaskStatus{TaskStatusTodo, TaskStatusInProgress, TaskStatusReview, TaskStatusDone}

func (s TaskStatus) IsValid() bool {
	for _, status := range TaskStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"
)

var TaskPriorities = []TaskPriority{TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityUrgent}

func (p TaskPriority) IsValid() bool {
	for _, priority := range TaskPriorities {
		if p == priority {
			return true
		}
	}
	return false
}

// NormalizePriority converte texto livre para a enumeração fechada; valores desconhecidos viram medium
func NormalizePriority(value string) TaskPriority {
	priority := TaskPriority(strings.ToLower(strings.TrimSpace(value)))
	if priority.IsValid() {
		return priority
	}
	return TaskPriorityMedium
}

type Task struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Description  *string      `json:"description"`
	Status       TaskStatus   `json:"status"`
	Priority     TaskPriority `json:"priority"`
	AssigneeName *string      `json:"assignee_name"`
	DueDate      *Date        `json:"due_date"`
	ProjectID    *string      `json:"project_id"`
	SectionID    *string      `json:"section_id"`
	Source       *string      `json:"source"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
	CompletedAt  *time.Time   `json:"completed_at"`
}

type TaskFilters struct {
	Status    []TaskStatus
	Priority  []TaskPriority
	Assignee  string
	ProjectID string
	SectionID string
	Source    string
	DueFrom   *Date
	DueTo     *Date
}

type CreateTaskRequest struct {
	Title        string       `json:"title"`
	Description  *string      `json:"description"`
	Status       TaskStatus   `json:"status"`
	Priority     TaskPriority `json:"priority"`
	AssigneeName *string      `json:"assignee_name"`
	DueDate      *Date        `json:"due_date"`
	ProjectID    *string      `json:"project_id"`
	SectionID    *string      `json:"section_id"`
	Source       *string      `json:"source"`
}

type UpdateTaskRequest struct {
	ID           string        `json:"-"`
	Title        *string       `json:"title"`
	Description  *string       `json:"description"`
	Status       *TaskStatus   `json:"status"`
	Priority     *TaskPriority `json:"priority"`
	AssigneeName *string       `json:"assignee_name"`
	DueDate      *Date         `json:"due_date"`
	ProjectID    *string       `json:"project_id"`
	SectionID    *string       `json:"section_id"`
}

// ApplyStatus muda o status e mantém completed_at coerente na mesma escrita
func (t *Task) ApplyStatus(status TaskStatus, now time.Time) {
	if status == TaskStatusDone && t.Status != TaskStatusDone {
		t.CompletedAt = &now
	}
	if status != TaskStatusDone {
		t.CompletedAt = nil
	}
	t.Status = status
}

// IsOverdue indica se a tarefa está aberta e com vencimento antes de today
func (t *Task) IsOverdue(today Date) bool {
	return t.Status != TaskStatusDone && t.DueDate != nil && t.DueDate.Before(today.Time)
}
