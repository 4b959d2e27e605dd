package clienting

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/opsboard-api/infrastructure/repository/mocks"
	"github.com/vfg2006/opsboard-api/internal/domain"
	"github.com/vfg2006/opsboard-api/pkg/apiErrors"
	"github.com/vfg2006/opsboard-api/pkg/log"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *mocks.MockClientRepository) {
	t.Helper()
	log.SetupTestLogger()
	repo := mocks.NewMockClientRepository(gomock.NewController(t))

	service := NewService(repo).(*Service)
	service.now = func() time.Time { return fixedNow }
	return service, repo
}

func intPtr(i int) *int { return &i }

func TestCreateClient(t *testing.T) {
	tests := []struct {
		name     string
		req      domain.CreateClientRequest
		setup    func(repo *mocks.MockClientRepository)
		validate func(t *testing.T, client *domain.Client, err error)
	}{
		{
			name:  "nome obrigatório",
			req:   domain.CreateClientRequest{},
			setup: func(repo *mocks.MockClientRepository) {},
			validate: func(t *testing.T, client *domain.Client, err error) {
				assert.ErrorIs(t, err, ErrNameRequired)
			},
		},
		{
			name:  "saúde acima de 100",
			req:   domain.CreateClientRequest{Name: "Acme", HealthScore: intPtr(101)},
			setup: func(repo *mocks.MockClientRepository) {},
			validate: func(t *testing.T, client *domain.Client, err error) {
				assert.ErrorIs(t, err, ErrInvalidHealthScore)

				var clientErr *ClientError
				require.ErrorAs(t, err, &clientErr)
				assert.Equal(t, apiErrors.ErrInvalidValue, clientErr.Code)
			},
		},
		{
			name:  "saúde negativa",
			req:   domain.CreateClientRequest{Name: "Acme", HealthScore: intPtr(-1)},
			setup: func(repo *mocks.MockClientRepository) {},
			validate: func(t *testing.T, client *domain.Client, err error) {
				assert.ErrorIs(t, err, ErrInvalidHealthScore)
			},
		},
		{
			name:  "status desconhecido",
			req:   domain.CreateClientRequest{Name: "Acme", Status: "vip"},
			setup: func(repo *mocks.MockClientRepository) {},
			validate: func(t *testing.T, client *domain.Client, err error) {
				assert.ErrorIs(t, err, ErrInvalidStatus)
			},
		},
		{
			name: "limites 0 e padrão",
			req:  domain.CreateClientRequest{Name: " Acme ", HealthScore: intPtr(0)},
			setup: func(repo *mocks.MockClientRepository) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
			},
			validate: func(t *testing.T, client *domain.Client, err error) {
				require.NoError(t, err)
				assert.Equal(t, "Acme", client.Name)
				assert.Equal(t, 0, client.HealthScore)
				assert.Equal(t, domain.ClientStatusActive, client.Status)
			},
		},
		{
			name: "sem saúde informada usa 100",
			req:  domain.CreateClientRequest{Name: "Acme"},
			setup: func(repo *mocks.MockClientRepository) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
			},
			validate: func(t *testing.T, client *domain.Client, err error) {
				require.NoError(t, err)
				assert.Equal(t, 100, client.HealthScore)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo := newTestService(t)
			tt.setup(repo)

			req := tt.req
			client, err := service.CreateClient(context.Background(), &req)
			tt.validate(t, client, err)
		})
	}
}

func TestUpdateClientHealth(t *testing.T) {
	service, repo := newTestService(t)

	repo.EXPECT().GetByID(gomock.Any(), "c1").Return(&domain.Client{ID: "c1", Name: "Acme", Status: domain.ClientStatusActive, HealthScore: 80}, nil).Times(2)
	repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

	_, err := service.UpdateClient(context.Background(), &domain.UpdateClientRequest{ID: "c1", HealthScore: intPtr(150)})
	assert.ErrorIs(t, err, ErrInvalidHealthScore)

	atRisk := domain.ClientStatusAtRisk
	client, err := service.UpdateClient(context.Background(), &domain.UpdateClientRequest{ID: "c1", HealthScore: intPtr(35), Status: &atRisk})
	require.NoError(t, err)
	assert.Equal(t, 35, client.HealthScore)
	assert.Equal(t, domain.ClientStatusAtRisk, client.Status)
	assert.Equal(t, "Acme", client.Name)
	assert.Equal(t, fixedNow, client.UpdatedAt)
}

func TestListClients(t *testing.T) {
	service, repo := newTestService(t)

	_, err := service.ListClients(context.Background(), []domain.ClientStatus{"lost"})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	statuses := []domain.ClientStatus{domain.ClientStatusAtRisk}
	repo.EXPECT().List(gomock.Any(), statuses).Return([]*domain.Client{{ID: "c1"}}, nil)

	clients, err := service.ListClients(context.Background(), statuses)
	require.NoError(t, err)
	assert.Len(t, clients, 1)
}

func TestGetClientNotFound(t *testing.T) {
	service, repo := newTestService(t)
	repo.EXPECT().GetByID(gomock.Any(), "nope").Return(nil, nil)

	_, err := service.GetClient(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrClientNotFound)
}
