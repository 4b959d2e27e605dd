package reporting

import (
	"context"
	"time"

	"github.com/vfg2006/opsboard-api/infrastructure/repository"
	"github.com/vfg2006/opsboard-api/internal/domain"
	"github.com/vfg2006/opsboard-api/pkg/apiErrors"
	"github.com/vfg2006/opsboard-api/pkg/utils"
)

// maxPeriodDays limita relatórios e calendário a um ano
const maxPeriodDays = 366

type ReportService interface {
	CreateKPILog(ctx context.Context, req *domain.KPILogRequest) (*domain.KPIDailyLog, error)
	UpdateKPILog(ctx context.Context, req *domain.KPILogRequest) (*domain.KPIDailyLog, error)
	ListKPILogs(ctx context.Context, period *domain.DateRange) ([]*domain.KPIDailyLog, error)
	DeleteKPILog(ctx context.Context, id string) error

	CreateRepEntry(ctx context.Context, req *domain.RepPerformanceRequest) (*domain.RepPerformance, error)
	UpdateRepEntry(ctx context.Context, req *domain.RepPerformanceRequest) (*domain.RepPerformance, error)
	ListRepEntries(ctx context.Context, period *domain.DateRange) ([]*domain.RepPerformance, error)
	DeleteRepEntry(ctx context.Context, id string) error

	KPIReport(ctx context.Context, period *domain.DateRange) (*domain.KPIReport, error)
	Dashboard(ctx context.Context) (*domain.DashboardSummary, error)
	Calendar(ctx context.Context, period *domain.DateRange) (*domain.Calendar, error)
}

type Service struct {
	kpiRepo    repository.KPILogRepository
	repRepo    repository.RepPerformanceRepository
	taskRepo   repository.TaskRepository
	dealRepo   repository.DealRepository
	clientRepo repository.ClientRepository
	now        func() time.Time
}

func NewService(
	kpiRepo repository.KPILogRepository,
	repRepo repository.RepPerformanceRepository,
	taskRepo repository.TaskRepository,
	dealRepo repository.DealRepository,
	clientRepo repository.ClientRepository,
) ReportService {
	return &Service{
		kpiRepo:    kpiRepo,
		repRepo:    repRepo,
		taskRepo:   taskRepo,
		dealRepo:   dealRepo,
		clientRepo: clientRepo,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// resolvePeriod completa o intervalo com o mês corrente e valida a ordem das datas
func (s *Service) resolvePeriod(period *domain.DateRange) (domain.DateRange, error) {
	today := s.now()
	resolved := domain.DateRange{
		From: domain.NewDate(utils.FirstDayOfMonth(today)),
		To:   domain.NewDate(utils.LastDayOfMonth(today)),
	}

	if period != nil {
		if !period.From.IsZero() {
			resolved.From = period.From
		}
		if !period.To.IsZero() {
			resolved.To = period.To
		}
	}

	if resolved.To.Before(resolved.From.Time) {
		return resolved, NewReportError(ErrInvalidPeriod, apiErrors.ErrInvalidValue, "Data final anterior à inicial")
	}
	if resolved.To.Sub(resolved.From.Time) > maxPeriodDays*24*time.Hour {
		return resolved, NewReportError(ErrInvalidPeriod, apiErrors.ErrInvalidValue, "Período máximo de 366 dias")
	}

	return resolved, nil
}
