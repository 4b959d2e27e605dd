package ingesting

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/opsboard-api/infrastructure/repository/mocks"
	"github.com/vfg2006/opsboard-api/internal/domain"
	"github.com/vfg2006/opsboard-api/pkg/log"
	"go.uber.org/mock/gomock"
)

const testSecret = "s3cret"

var fixedNow = time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)

type serviceMocks struct {
	tasks    *mocks.MockTaskRepository
	projects *mocks.MockProjectRepository
	sections *mocks.MockSectionRepository
	team     *mocks.MockTeamMemberRepository
}

func newTestService(t *testing.T, secret string) (*Service, serviceMocks) {
	t.Helper()
	log.SetupTestLogger()
	ctrl := gomock.NewController(t)

	m := serviceMocks{
		tasks:    mocks.NewMockTaskRepository(ctrl),
		projects: mocks.NewMockProjectRepository(ctrl),
		sections: mocks.NewMockSectionRepository(ctrl),
		team:     mocks.NewMockTeamMemberRepository(ctrl),
	}

	service := NewService(secret, m.tasks, m.projects, m.sections, m.team).(*Service)
	service.now = func() time.Time { return fixedNow }
	return service, m
}

func strPtr(s string) *string { return &s }

func TestIngestTask(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		secret   string
		payload  domain.WebhookTaskPayload
		setup    func(m serviceMocks)
		validate func(t *testing.T, summary *domain.WebhookTaskSummary, err error)
	}{
		{
			name:    "segredo inválido não consulta o banco",
			secret:  testSecret,
			payload: domain.WebhookTaskPayload{Secret: "wrong", Title: "x", Source: "accredipro", Assignee: "zeus"},
			setup:   func(m serviceMocks) {},
			validate: func(t *testing.T, summary *domain.WebhookTaskSummary, err error) {
				assert.Nil(t, summary)
				assert.ErrorIs(t, err, ErrInvalidSecret)
			},
		},
		{
			name:    "segredo não configurado rejeita tudo",
			secret:  "",
			payload: domain.WebhookTaskPayload{Secret: "", Title: "x"},
			setup:   func(m serviceMocks) {},
			validate: func(t *testing.T, summary *domain.WebhookTaskSummary, err error) {
				assert.ErrorIs(t, err, ErrInvalidSecret)
			},
		},
		{
			name:    "título ausente não grava",
			secret:  testSecret,
			payload: domain.WebhookTaskPayload{Secret: testSecret, Title: "   ", Source: "website"},
			setup:   func(m serviceMocks) {},
			validate: func(t *testing.T, summary *domain.WebhookTaskSummary, err error) {
				assert.Nil(t, summary)
				assert.ErrorIs(t, err, ErrTitleRequired)
			},
		},
		{
			name:    "origem conhecida sem projeto cria AccrediPro",
			secret:  testSecret,
			payload: domain.WebhookTaskPayload{Secret: testSecret, Title: "Nova matrícula", Source: "accredipro"},
			setup: func(m serviceMocks) {
				var created *domain.Project
				m.projects.EXPECT().FindByName(gomock.Any(), "AccrediPro").Return(nil, nil)
				m.projects.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p *domain.Project) error {
					created = p
					assert.Equal(t, "AccrediPro", p.Name)
					assert.Equal(t, "🎓", *p.Icon)
					assert.Equal(t, "#6366F1", *p.Color)
					assert.Equal(t, "Auto-created from accredipro webhook", *p.Description)
					return nil
				})
				m.tasks.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, task *domain.Task) error {
					require.NotNil(t, created)
					require.NotNil(t, task.ProjectID)
					assert.Equal(t, created.ID, *task.ProjectID)
					return nil
				})
			},
			validate: func(t *testing.T, summary *domain.WebhookTaskSummary, err error) {
				require.NoError(t, err)
				require.NotNil(t, summary.ProjectID)
				assert.Equal(t, "accredipro", *summary.Source)
			},
		},
		{
			name:    "projeto existente é reutilizado",
			secret:  testSecret,
			payload: domain.WebhookTaskPayload{Secret: testSecret, Title: "Lead", Source: "Website"},
			setup: func(m serviceMocks) {
				m.projects.EXPECT().FindByName(gomock.Any(), "Website").Return(&domain.Project{ID: "proj-web", Name: "website"}, nil)
				m.tasks.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
			},
			validate: func(t *testing.T, summary *domain.WebhookTaskSummary, err error) {
				require.NoError(t, err)
				assert.Equal(t, "proj-web", *summary.ProjectID)
			},
		},
		{
			name:    "origem desconhecida não cria projeto",
			secret:  testSecret,
			payload: domain.WebhookTaskPayload{Secret: testSecret, Title: "Lead", Source: "hubspot", Department: "Sales"},
			setup: func(m serviceMocks) {
				m.tasks.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
			},
			validate: func(t *testing.T, summary *domain.WebhookTaskSummary, err error) {
				require.NoError(t, err)
				assert.Nil(t, summary.ProjectID)
			},
		},
		{
			name:   "projectId informado resolve seção pelo departamento",
			secret: testSecret,
			payload: domain.WebhookTaskPayload{
				Secret: testSecret, Title: "Revisar", ProjectID: "proj-1", Source: "accredipro", Department: "design",
			},
			setup: func(m serviceMocks) {
				m.sections.EXPECT().FindByName(gomock.Any(), "proj-1", "design").Return(&domain.ProjectSection{ID: "sec-1"}, nil)
				m.tasks.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, task *domain.Task) error {
					assert.Equal(t, "proj-1", *task.ProjectID)
					assert.Equal(t, "sec-1", *task.SectionID)
					return nil
				})
			},
			validate: func(t *testing.T, summary *domain.WebhookTaskSummary, err error) {
				require.NoError(t, err)
				assert.Equal(t, "proj-1", *summary.ProjectID)
			},
		},
		{
			name:    "departamento sem seção fica vazio",
			secret:  testSecret,
			payload: domain.WebhookTaskPayload{Secret: testSecret, Title: "Revisar", ProjectID: "proj-1", Department: "Legal"},
			setup: func(m serviceMocks) {
				m.sections.EXPECT().FindByName(gomock.Any(), "proj-1", "Legal").Return(nil, nil)
				m.sections.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
				m.tasks.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, task *domain.Task) error {
					assert.Nil(t, task.SectionID)
					return nil
				})
			},
			validate: func(t *testing.T, summary *domain.WebhookTaskSummary, err error) {
				require.NoError(t, err)
			},
		},
		{
			name:    "apelido resolve para o nome canônico",
			secret:  testSecret,
			payload: domain.WebhookTaskPayload{Secret: testSecret, Title: "Ligar", Assignee: "zeus"},
			setup: func(m serviceMocks) {
				m.team.EXPECT().FindByNameOrNickname(gomock.Any(), "zeus").Return(&domain.TeamMember{Name: "Alex Morgan", Nickname: strPtr("Zeus")}, nil)
				m.tasks.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
			},
			validate: func(t *testing.T, summary *domain.WebhookTaskSummary, err error) {
				require.NoError(t, err)
				assert.Equal(t, "Alex Morgan", *summary.Assignee)
			},
		},
		{
			name:    "responsável inexistente fica vazio",
			secret:  testSecret,
			payload: domain.WebhookTaskPayload{Secret: testSecret, Title: "Ligar", Assignee: "nonexistent"},
			setup: func(m serviceMocks) {
				m.team.EXPECT().FindByNameOrNickname(gomock.Any(), "nonexistent").Return(nil, nil)
				m.tasks.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
			},
			validate: func(t *testing.T, summary *domain.WebhookTaskSummary, err error) {
				require.NoError(t, err)
				assert.Nil(t, summary.Assignee)
			},
		},
		{
			name:    "prioridade desconhecida vira medium e campos são copiados",
			secret:  testSecret,
			payload: domain.WebhookTaskPayload{Secret: testSecret, Title: " Follow up ", Priority: "blorp", Description: "detalhes", DueDate: "2024-06-10"},
			setup: func(m serviceMocks) {
				m.tasks.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, task *domain.Task) error {
					assert.Equal(t, "Follow up", task.Title)
					assert.Equal(t, domain.TaskStatusTodo, task.Status)
					assert.Equal(t, domain.TaskPriorityMedium, task.Priority)
					assert.Equal(t, "detalhes", *task.Description)
					assert.Equal(t, "2024-06-10", task.DueDate.String())
					assert.Equal(t, fixedNow, task.CreatedAt)
					assert.Equal(t, fixedNow, task.UpdatedAt)
					assert.Nil(t, task.CompletedAt)
					assert.NotEmpty(t, task.ID)
					return nil
				})
			},
			validate: func(t *testing.T, summary *domain.WebhookTaskSummary, err error) {
				require.NoError(t, err)
				assert.Equal(t, domain.TaskPriorityMedium, summary.Priority)
				assert.Equal(t, domain.TaskStatusTodo, summary.Status)
			},
		},
		{
			name:    "dueDate inválido é ignorado",
			secret:  testSecret,
			payload: domain.WebhookTaskPayload{Secret: testSecret, Title: "x", DueDate: "10/06/2024"},
			setup: func(m serviceMocks) {
				m.tasks.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, task *domain.Task) error {
					assert.Nil(t, task.DueDate)
					return nil
				})
			},
			validate: func(t *testing.T, summary *domain.WebhookTaskSummary, err error) {
				require.NoError(t, err)
			},
		},
		{
			name:    "falha ao gravar tarefa não desfaz projeto criado",
			secret:  testSecret,
			payload: domain.WebhookTaskPayload{Secret: testSecret, Title: "x", Source: "zapier"},
			setup: func(m serviceMocks) {
				m.projects.EXPECT().FindByName(gomock.Any(), "Zapier").Return(nil, nil)
				m.projects.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
				m.projects.EXPECT().Delete(gomock.Any(), gomock.Any()).Times(0)
				m.tasks.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))
			},
			validate: func(t *testing.T, summary *domain.WebhookTaskSummary, err error) {
				assert.Nil(t, summary)
				assert.ErrorIs(t, err, ErrCreateTask)

				var ingestErr *IngestError
				require.ErrorAs(t, err, &ingestErr)
				assert.Equal(t, "connection refused", ingestErr.Details)
			},
		},
		{
			name:    "falha ao buscar projeto",
			secret:  testSecret,
			payload: domain.WebhookTaskPayload{Secret: testSecret, Title: "x", Source: "calendly"},
			setup: func(m serviceMocks) {
				m.projects.EXPECT().FindByName(gomock.Any(), "Calendly").Return(nil, errors.New("timeout"))
			},
			validate: func(t *testing.T, summary *domain.WebhookTaskSummary, err error) {
				assert.ErrorIs(t, err, ErrCreateTask)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := newTestService(t, tt.secret)
			tt.setup(m)

			payload := tt.payload
			summary, err := service.IngestTask(ctx, &payload)
			tt.validate(t, summary, err)
		})
	}
}

func TestIngestTaskIsNotIdempotent(t *testing.T) {
	service, m := newTestService(t, testSecret)

	var ids []string
	m.tasks.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, task *domain.Task) error {
		ids = append(ids, task.ID)
		return nil
	}).Times(2)

	payload := domain.WebhookTaskPayload{Secret: testSecret, Title: "Duplicada"}
	for i := 0; i < 2; i++ {
		_, err := service.IngestTask(context.Background(), &payload)
		require.NoError(t, err)
	}

	require.Len(t, ids, 2)
	assert.NotEqual(t, ids[0], ids[1])
}

func TestIngestTaskLogsProjectID(t *testing.T) {
	service, m := newTestService(t, testSecret)

	var buf bytes.Buffer
	original := logrus.StandardLogger().Out
	logrus.SetOutput(&buf)
	t.Cleanup(func() { logrus.SetOutput(original) })

	m.tasks.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	_, err := service.IngestTask(context.Background(), &domain.WebhookTaskPayload{
		Secret:    testSecret,
		Title:     "Com projeto",
		ProjectID: "proj-7",
	})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "project_id=proj-7")
	assert.NotContains(t, buf.String(), "project_id=0x")
}
