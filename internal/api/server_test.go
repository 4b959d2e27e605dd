package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/opsboard-api/infrastructure/migration"
	"github.com/vfg2006/opsboard-api/infrastructure/storage"
	"github.com/vfg2006/opsboard-api/internal/api/handler"
	"github.com/vfg2006/opsboard-api/internal/config"
	"github.com/vfg2006/opsboard-api/internal/domain"
	"github.com/vfg2006/opsboard-api/internal/scheduler"
	"github.com/vfg2006/opsboard-api/pkg/apiErrors"
	"github.com/vfg2006/opsboard-api/pkg/log"
	"github.com/vfg2006/opsboard-api/pkg/middleware"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	testWebhookSecret = "segredo-webhook"
	testDemoPassword  = "demo1234"
)

func testConfig() *config.Config {
	return &config.Config{
		SecretKey: "api-test-secret",
		Webhook:   config.Webhook{Secret: testWebhookSecret},
		Cors:      config.Cors{AllowedOrigins: []string{"*"}},
		Demo:      config.Demo{Enabled: true, Password: testDemoPassword},
		DemoReset: config.DemoReset{CronSchedule: "0 4 * * *", Enabled: true},
	}
}

// newTestHandler sobe a API inteira sobre um sqlite em memória com os dados demo
func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	log.SetupTestLogger()

	cfg := testConfig()
	store, err := storage.Open(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.Equal(t, storage.ModeDemo, store.Mode)

	services := NewServices(cfg, store.Conn)
	services.CronJobs[handler.CronJobTypeDemoReset] = scheduler.NewDemoResetService(store.Seeder, cfg)

	server, err := New(cfg, store.Mode, services)
	require.NoError(t, err)
	return server.Handler()
}

func do(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func login(t *testing.T, h http.Handler) string {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/v1/login", "", handler.LoginRequest{
		Email:    migration.DemoUserEmail,
		Password: testDemoPassword,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[handler.LoginResponse](t, rec).Token
}

func TestHealthcheckReportsMode(t *testing.T) {
	h := newTestHandler(t)

	rec := do(t, h, http.MethodGet, "/healthcheck", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[handler.HealthcheckResponse](t, rec)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, storage.ModeDemo, resp.Mode)
	assert.NotEmpty(t, rec.Header().Get("X-Correlation-ID"))
}

func TestAuthenticationFlow(t *testing.T) {
	h := newTestHandler(t)

	t.Run("senha errada não revela o usuário", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/v1/login", "", handler.LoginRequest{
			Email:    migration.DemoUserEmail,
			Password: "errada",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		apiErr := decode[apiErrors.APIError](t, rec)
		assert.Equal(t, "Credenciais inválidas", apiErr.Message)
	})

	t.Run("rota protegida sem token", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/v1/me", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	token := login(t, h)

	rec := do(t, h, http.MethodGet, "/v1/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decode[domain.User](t, rec)
	assert.Equal(t, migration.DemoUserEmail, me.Email)
	assert.Empty(t, me.PasswordHash)
	assert.NotContains(t, rec.Body.String(), "password_hash")

	rec = do(t, h, http.MethodPost, "/v1/logout", token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, http.MethodGet, "/v1/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminCreatesUser(t *testing.T) {
	h := newTestHandler(t)
	token := login(t, h)

	req := domain.CreateUserRequest{Name: "Sam", Email: "sam@opsboard.local", Password: "Forte#2024x"}

	rec := do(t, h, http.MethodPost, "/v1/users", token, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[domain.User](t, rec)
	assert.Equal(t, domain.UserRoleMember, created.Role)

	rec = do(t, h, http.MethodPost, "/v1/users", token, req)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// membro não acessa rotas de administração
	rec = do(t, h, http.MethodPost, "/v1/login", "", handler.LoginRequest{Email: req.Email, Password: req.Password})
	require.Equal(t, http.StatusOK, rec.Code)
	memberToken := decode[handler.LoginResponse](t, rec).Token

	rec = do(t, h, http.MethodGet, "/v1/cron/status", memberToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestTaskCRUD(t *testing.T) {
	h := newTestHandler(t)
	token := login(t, h)

	rec := do(t, h, http.MethodPost, "/v1/tasks", token, map[string]any{
		"title":    "Revisar contrato",
		"priority": "high",
		"due_date": "2026-03-10",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	task := decode[domain.Task](t, rec)
	assert.Equal(t, domain.TaskStatusTodo, task.Status)
	assert.Equal(t, domain.TaskPriorityHigh, task.Priority)

	rec = do(t, h, http.MethodPut, "/v1/tasks/"+task.ID, token, map[string]any{"status": "done"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[domain.Task](t, rec)
	assert.Equal(t, domain.TaskStatusDone, updated.Status)
	assert.NotNil(t, updated.CompletedAt)

	rec = do(t, h, http.MethodGet, "/v1/tasks?status=done", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	ids := []string{}
	for _, listed := range decode[[]domain.Task](t, rec) {
		ids = append(ids, listed.ID)
	}
	assert.Contains(t, ids, task.ID)

	rec = do(t, h, http.MethodDelete, "/v1/tasks/"+task.ID, token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, http.MethodGet, "/v1/tasks/"+task.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodGet, "/v1/tasks?due_from=10-03-2026", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWebhook(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		payload  map[string]any
		validate func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name:    "segredo inválido",
			path:    middleware.WebhookTaskPath,
			payload: map[string]any{"secret": "errado", "title": "Ligar para cliente"},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusUnauthorized, rec.Code)
				assert.Equal(t, "Invalid webhook secret", decode[domain.WebhookErrorResponse](t, rec).Error)
			},
		},
		{
			name:    "segredo numérico é tratado como inválido",
			path:    middleware.WebhookTaskPath,
			payload: map[string]any{"secret": 123, "title": "Ligar para cliente"},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusUnauthorized, rec.Code)
				assert.Equal(t, "Invalid webhook secret", decode[domain.WebhookErrorResponse](t, rec).Error)
			},
		},
		{
			name:    "prioridade numérica cai para medium",
			path:    middleware.WebhookTaskPath,
			payload: map[string]any{"secret": testWebhookSecret, "title": "Prioridade estranha", "priority": 5},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
				assert.Equal(t, domain.TaskPriorityMedium, decode[domain.WebhookTaskResponse](t, rec).Task.Priority)
			},
		},
		{
			name:    "título em branco",
			path:    middleware.WebhookTaskAliasPath,
			payload: map[string]any{"secret": testWebhookSecret, "title": "   "},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
				assert.Equal(t, "Title is required", decode[domain.WebhookErrorResponse](t, rec).Error)
			},
		},
		{
			name: "tarefa criada",
			path: middleware.WebhookTaskPath,
			payload: map[string]any{
				"secret":   testWebhookSecret,
				"title":    "Novo lead do site",
				"priority": "URGENT",
				"source":   "website",
				"assignee": "zeus",
				"dueDate":  "amanhã",
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
				resp := decode[domain.WebhookTaskResponse](t, rec)
				assert.True(t, resp.Success)
				assert.Equal(t, "Task created successfully", resp.Message)
				assert.Equal(t, domain.TaskStatusTodo, resp.Task.Status)
				assert.Equal(t, domain.TaskPriorityUrgent, resp.Task.Priority)
				require.NotNil(t, resp.Task.Assignee)
				assert.Equal(t, "Alex Morgan", *resp.Task.Assignee)
				assert.NotNil(t, resp.Task.ProjectID)
				assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(t)
			tt.validate(t, do(t, h, http.MethodPost, tt.path, "", tt.payload))
		})
	}
}

func TestWebhookTaskVisibleThroughAPI(t *testing.T) {
	h := newTestHandler(t)

	rec := do(t, h, http.MethodPost, middleware.WebhookTaskAliasPath, "", map[string]any{
		"secret": testWebhookSecret,
		"title":  "Agendamento recebido",
		"source": "calendly",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	created := decode[domain.WebhookTaskResponse](t, rec).Task

	token := login(t, h)
	rec = do(t, h, http.MethodGet, "/v1/tasks/"+created.ID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	task := decode[domain.Task](t, rec)
	assert.Equal(t, "Agendamento recebido", task.Title)
	assert.Equal(t, domain.TaskPriorityMedium, task.Priority)
	require.NotNil(t, task.Source)
	assert.Equal(t, "calendly", *task.Source)
	assert.Equal(t, created.ProjectID, task.ProjectID)

	// a segunda chamada da mesma origem reaproveita o projeto criado
	rec = do(t, h, http.MethodPost, middleware.WebhookTaskPath, "", map[string]any{
		"secret": testWebhookSecret,
		"title":  "Outro agendamento",
		"source": "Calendly",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created.ProjectID, decode[domain.WebhookTaskResponse](t, rec).Task.ProjectID)
}

func TestWebhookPreflight(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodOptions, middleware.WebhookTaskPath, nil)
	req.Header.Set("Origin", "https://forms.example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "x-client-info")
}

func TestCronJobs(t *testing.T) {
	h := newTestHandler(t)
	token := login(t, h)

	rec := do(t, h, http.MethodGet, "/v1/cron/status", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	status := decode[map[string]map[string]any](t, rec)
	require.Contains(t, status, handler.CronJobTypeDemoReset)
	assert.Equal(t, true, status[handler.CronJobTypeDemoReset]["reset_enabled"])

	rec = do(t, h, http.MethodPost, "/v1/cron/unknown/run", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWebhookServerOnlyExposesIngestion(t *testing.T) {
	log.SetupTestLogger()
	cfg := testConfig()
	store, err := storage.Open(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	h := NewWebhook(cfg, store.Mode, NewServices(cfg, store.Conn).Ingester).Handler()

	rec := do(t, h, http.MethodGet, "/healthcheck", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/v1/tasks", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodPost, middleware.WebhookTaskPath, "", map[string]any{
		"secret": testWebhookSecret,
		"title":  "Via servidor dedicado",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}
