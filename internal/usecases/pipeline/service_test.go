package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/opsboard-api/infrastructure/repository/mocks"
	"github.com/vfg2006/opsboard-api/internal/domain"
	"github.com/vfg2006/opsboard-api/pkg/log"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *mocks.MockDealRepository) {
	t.Helper()
	log.SetupTestLogger()
	repo := mocks.NewMockDealRepository(gomock.NewController(t))

	service := NewService(repo).(*Service)
	service.now = func() time.Time { return fixedNow }
	return service, repo
}

func stagePtr(s domain.DealStage) *domain.DealStage { return &s }

func TestCreateDeal(t *testing.T) {
	tests := []struct {
		name     string
		req      domain.CreateDealRequest
		setup    func(repo *mocks.MockDealRepository)
		validate func(t *testing.T, deal *domain.Deal, err error)
	}{
		{
			name:  "título obrigatório",
			req:   domain.CreateDealRequest{Value: 100},
			setup: func(repo *mocks.MockDealRepository) {},
			validate: func(t *testing.T, deal *domain.Deal, err error) {
				assert.ErrorIs(t, err, ErrTitleRequired)
			},
		},
		{
			name:  "estágio desconhecido",
			req:   domain.CreateDealRequest{Title: "Acme", Stage: "negotiation"},
			setup: func(repo *mocks.MockDealRepository) {},
			validate: func(t *testing.T, deal *domain.Deal, err error) {
				assert.ErrorIs(t, err, ErrInvalidStage)
			},
		},
		{
			name:  "valor negativo",
			req:   domain.CreateDealRequest{Title: "Acme", Value: -1},
			setup: func(repo *mocks.MockDealRepository) {},
			validate: func(t *testing.T, deal *domain.Deal, err error) {
				assert.ErrorIs(t, err, ErrInvalidValue)
			},
		},
		{
			name: "estágio padrão é lead",
			req:  domain.CreateDealRequest{Title: "Acme", Value: 1200.456},
			setup: func(repo *mocks.MockDealRepository) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
			},
			validate: func(t *testing.T, deal *domain.Deal, err error) {
				require.NoError(t, err)
				assert.Equal(t, domain.DealStageLead, deal.Stage)
				assert.Equal(t, 1200.46, deal.Value)
				assert.Equal(t, fixedNow, deal.CreatedAt)
			},
		},
		{
			name: "erro do banco",
			req:  domain.CreateDealRequest{Title: "Acme"},
			setup: func(repo *mocks.MockDealRepository) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("boom"))
			},
			validate: func(t *testing.T, deal *domain.Deal, err error) {
				assert.ErrorIs(t, err, ErrDatabaseOperation)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo := newTestService(t)
			tt.setup(repo)

			req := tt.req
			deal, err := service.CreateDeal(context.Background(), &req)
			tt.validate(t, deal, err)
		})
	}
}

func TestUpdateDealMovesStage(t *testing.T) {
	service, repo := newTestService(t)

	repo.EXPECT().GetByID(gomock.Any(), "deal-1").Return(&domain.Deal{ID: "deal-1", Title: "Acme", Stage: domain.DealStageLead, Value: 500}, nil)
	repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

	// qualquer transição é permitida, inclusive pular estágios
	deal, err := service.UpdateDeal(context.Background(), &domain.UpdateDealRequest{ID: "deal-1", Stage: stagePtr(domain.DealStageClosedWon)})
	require.NoError(t, err)
	assert.Equal(t, domain.DealStageClosedWon, deal.Stage)
	assert.Equal(t, 500.0, deal.Value)
	assert.Equal(t, fixedNow, deal.UpdatedAt)

	repo.EXPECT().GetByID(gomock.Any(), "deal-2").Return(nil, nil)
	_, err = service.UpdateDeal(context.Background(), &domain.UpdateDealRequest{ID: "deal-2"})
	assert.ErrorIs(t, err, ErrDealNotFound)
}

func TestBoard(t *testing.T) {
	service, repo := newTestService(t)

	repo.EXPECT().List(gomock.Any(), domain.DealFilters{}).Return([]*domain.Deal{
		{ID: "1", Stage: domain.DealStageLead, Value: 100},
		{ID: "2", Stage: domain.DealStageLead, Value: 50.5},
		{ID: "3", Stage: domain.DealStageProposal, Value: 1000},
		{ID: "4", Stage: domain.DealStageClosedWon, Value: 700},
		{ID: "5", Stage: domain.DealStageClosedLost, Value: 300},
	}, nil)

	board, err := service.Board(context.Background())
	require.NoError(t, err)

	require.Len(t, board.Columns, len(domain.DealStages))
	for i, stage := range domain.DealStages {
		assert.Equal(t, stage, board.Columns[i].Stage)
	}

	lead := board.Columns[0]
	assert.Equal(t, 2, lead.Count)
	assert.Equal(t, 150.5, lead.Total)
	assert.Len(t, lead.Deals, 2)

	booked := board.Columns[1]
	assert.Equal(t, 0, booked.Count)
	assert.NotNil(t, booked.Deals)

	assert.Equal(t, 1150.5, board.OpenValue)
	assert.Equal(t, 700.0, board.WonValue)
}

func TestDeleteDeal(t *testing.T) {
	service, repo := newTestService(t)

	repo.EXPECT().GetByID(gomock.Any(), "deal-1").Return(&domain.Deal{ID: "deal-1"}, nil)
	repo.EXPECT().Delete(gomock.Any(), "deal-1").Return(nil)
	assert.NoError(t, service.DeleteDeal(context.Background(), "deal-1"))

	assert.ErrorIs(t, service.DeleteDeal(context.Background(), " "), ErrDealIDRequired)
}
