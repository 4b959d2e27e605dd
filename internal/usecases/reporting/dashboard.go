package reporting

import (
	"context"

	"github.com/vfg2006/opsboard-api/internal/domain"
	"github.com/vfg2006/opsboard-api/pkg/apiErrors"
	"github.com/vfg2006/opsboard-api/pkg/log"
	"github.com/vfg2006/opsboard-api/pkg/utils"
)

// Dashboard reúne os contadores da página inicial. Status sem registros aparecem com zero.
func (s *Service) Dashboard(ctx context.Context) (*domain.DashboardSummary, error) {
	logger := log.ForContext(ctx)
	now := s.now()
	today := domain.NewDate(now)

	taskCounts, err := s.taskRepo.CountByStatus(ctx)
	if err != nil {
		logger.WithError(err).Error("Erro ao contar tarefas para o dashboard")
		return nil, NewReportError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao contar tarefas")
	}

	overdue, err := s.taskRepo.CountOverdue(ctx, today)
	if err != nil {
		logger.WithError(err).Error("Erro ao contar tarefas atrasadas")
		return nil, NewReportError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao contar tarefas atrasadas")
	}

	deals, err := s.dealRepo.List(ctx, domain.DealFilters{})
	if err != nil {
		logger.WithError(err).Error("Erro ao listar negócios para o dashboard")
		return nil, NewReportError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao listar negócios")
	}

	clientCounts, err := s.clientRepo.CountByStatus(ctx)
	if err != nil {
		logger.WithError(err).Error("Erro ao contar clientes para o dashboard")
		return nil, NewReportError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao contar clientes")
	}

	monthToDate, err := s.kpiRepo.List(ctx, domain.DateRange{
		From: domain.NewDate(utils.FirstDayOfMonth(now)),
		To:   today,
	})
	if err != nil {
		logger.WithError(err).Error("Erro ao listar KPIs do mês")
		return nil, NewReportError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao listar KPIs")
	}

	summary := &domain.DashboardSummary{
		TasksByStatus:   make(map[domain.TaskStatus]int),
		OverdueTasks:    overdue,
		ClientsByStatus: make(map[domain.ClientStatus]int),
	}

	for _, status := range domain.TaskStatuses {
		if status == domain.TaskStatusDone {
			continue
		}
		summary.TasksByStatus[status] = taskCounts[status]
	}

	for _, deal := range deals {
		switch {
		case deal.Stage == domain.DealStageClosedWon:
			summary.PipelineWon += deal.Value
		case deal.Stage.IsOpen():
			summary.PipelineOpen += deal.Value
		}
	}
	summary.PipelineOpen = utils.RoundWithTwoDecimalPlace(summary.PipelineOpen)
	summary.PipelineWon = utils.RoundWithTwoDecimalPlace(summary.PipelineWon)

	for _, status := range domain.ClientStatuses {
		summary.ClientsByStatus[status] = clientCounts[status]
	}

	for _, entry := range monthToDate {
		summary.MonthToDate.Add(entry.KPIMetrics)
	}
	summary.MonthToDate.CashCollected = utils.RoundWithTwoDecimalPlace(summary.MonthToDate.CashCollected)

	return summary, nil
}
