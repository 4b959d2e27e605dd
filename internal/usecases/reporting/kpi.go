package reporting

import (
	"context"
	"sort"
	"strings"

	"github.com/vfg2006/opsboard-api/internal/domain"
	"github.com/vfg2006/opsboard-api/pkg/apiErrors"
	"github.com/vfg2006/opsboard-api/pkg/log"
	"github.com/vfg2006/opsboard-api/pkg/utils"
)

func (s *Service) CreateKPILog(ctx context.Context, req *domain.KPILogRequest) (*domain.KPIDailyLog, error) {
	if req.LogDate == nil || req.LogDate.IsZero() {
		return nil, NewReportError(ErrLogDateRequired, apiErrors.ErrMissingRequiredData, "Data do registro é obrigatória")
	}
	if err := validateMetrics(req.KPIMetrics); err != nil {
		return nil, err
	}

	entry := &domain.KPIDailyLog{
		ID:         utils.GenerateID(),
		LogDate:    *req.LogDate,
		KPIMetrics: req.KPIMetrics,
		CreatedAt:  s.now(),
	}

	if err := s.kpiRepo.Create(ctx, entry); err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao registrar KPI diário")
		return nil, NewReportError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao registrar KPI")
	}

	return entry, nil
}

// UpdateKPILog substitui os contadores do dia; a data só muda quando informada
func (s *Service) UpdateKPILog(ctx context.Context, req *domain.KPILogRequest) (*domain.KPIDailyLog, error) {
	if strings.TrimSpace(req.ID) == "" {
		return nil, NewReportError(ErrLogIDRequired, apiErrors.ErrMissingRequiredData, "")
	}
	if err := validateMetrics(req.KPIMetrics); err != nil {
		return nil, err
	}

	entry, err := s.kpiRepo.GetByID(ctx, req.ID)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao buscar KPI diário")
		return nil, NewReportError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao buscar KPI")
	}
	if entry == nil {
		return nil, NewReportError(ErrKPILogNotFound, apiErrors.ErrResourceNotFound, "Registro de KPI não encontrado")
	}

	if req.LogDate != nil && !req.LogDate.IsZero() {
		entry.LogDate = *req.LogDate
	}
	entry.KPIMetrics = req.KPIMetrics

	if err := s.kpiRepo.Update(ctx, entry); err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao atualizar KPI diário")
		return nil, NewReportError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao atualizar KPI")
	}

	return entry, nil
}

func (s *Service) ListKPILogs(ctx context.Context, period *domain.DateRange) ([]*domain.KPIDailyLog, error) {
	resolved, err := s.resolvePeriod(period)
	if err != nil {
		return nil, err
	}

	logs, err := s.kpiRepo.List(ctx, resolved)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao listar KPIs diários")
		return nil, NewReportError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao listar KPIs")
	}

	return logs, nil
}

func (s *Service) DeleteKPILog(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return NewReportError(ErrLogIDRequired, apiErrors.ErrMissingRequiredData, "")
	}

	entry, err := s.kpiRepo.GetByID(ctx, id)
	if err != nil {
		return NewReportError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao buscar KPI")
	}
	if entry == nil {
		return NewReportError(ErrKPILogNotFound, apiErrors.ErrResourceNotFound, "Registro de KPI não encontrado")
	}

	if err := s.kpiRepo.Delete(ctx, id); err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao remover KPI diário")
		return NewReportError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao remover KPI")
	}

	return nil
}

func (s *Service) CreateRepEntry(ctx context.Context, req *domain.RepPerformanceRequest) (*domain.RepPerformance, error) {
	repName := strings.TrimSpace(req.RepName)
	if repName == "" {
		return nil, NewReportError(ErrRepNameRequired, apiErrors.ErrMissingRequiredData, "Nome do vendedor é obrigatório")
	}
	if req.LogDate == nil || req.LogDate.IsZero() {
		return nil, NewReportError(ErrLogDateRequired, apiErrors.ErrMissingRequiredData, "Data do registro é obrigatória")
	}
	if err := validateMetrics(req.KPIMetrics); err != nil {
		return nil, err
	}

	entry := &domain.RepPerformance{
		ID:         utils.GenerateID(),
		RepName:    repName,
		LogDate:    *req.LogDate,
		KPIMetrics: req.KPIMetrics,
		CreatedAt:  s.now(),
	}

	if err := s.repRepo.Create(ctx, entry); err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao registrar desempenho do vendedor")
		return nil, NewReportError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao registrar desempenho")
	}

	return entry, nil
}

func (s *Service) UpdateRepEntry(ctx context.Context, req *domain.RepPerformanceRequest) (*domain.RepPerformance, error) {
	if strings.TrimSpace(req.ID) == "" {
		return nil, NewReportError(ErrLogIDRequired, apiErrors.ErrMissingRequiredData, "")
	}
	if err := validateMetrics(req.KPIMetrics); err != nil {
		return nil, err
	}

	entry, err := s.repRepo.GetByID(ctx, req.ID)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao buscar desempenho do vendedor")
		return nil, NewReportError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao buscar desempenho")
	}
	if entry == nil {
		return nil, NewReportError(ErrRepEntryNotFound, apiErrors.ErrResourceNotFound, "Registro de desempenho não encontrado")
	}

	if repName := strings.TrimSpace(req.RepName); repName != "" {
		entry.RepName = repName
	}
	if req.LogDate != nil && !req.LogDate.IsZero() {
		entry.LogDate = *req.LogDate
	}
	entry.KPIMetrics = req.KPIMetrics

	if err := s.repRepo.Update(ctx, entry); err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao atualizar desempenho do vendedor")
		return nil, NewReportError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao atualizar desempenho")
	}

	return entry, nil
}

func (s *Service) ListRepEntries(ctx context.Context, period *domain.DateRange) ([]*domain.RepPerformance, error) {
	resolved, err := s.resolvePeriod(period)
	if err != nil {
		return nil, err
	}

	entries, err := s.repRepo.List(ctx, resolved)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao listar desempenho dos vendedores")
		return nil, NewReportError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao listar desempenho")
	}

	return entries, nil
}

func (s *Service) DeleteRepEntry(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return NewReportError(ErrLogIDRequired, apiErrors.ErrMissingRequiredData, "")
	}

	entry, err := s.repRepo.GetByID(ctx, id)
	if err != nil {
		return NewReportError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao buscar desempenho")
	}
	if entry == nil {
		return NewReportError(ErrRepEntryNotFound, apiErrors.ErrResourceNotFound, "Registro de desempenho não encontrado")
	}

	if err := s.repRepo.Delete(ctx, id); err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao remover desempenho do vendedor")
		return NewReportError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao remover desempenho")
	}

	return nil
}

// KPIReport soma os registros diários e por vendedor do período.
// Taxas usam duas casas e valem 0 quando o denominador é 0.
func (s *Service) KPIReport(ctx context.Context, period *domain.DateRange) (*domain.KPIReport, error) {
	logs, err := s.ListKPILogs(ctx, period)
	if err != nil {
		return nil, err
	}

	entries, err := s.ListRepEntries(ctx, period)
	if err != nil {
		return nil, err
	}

	resolved, _ := s.resolvePeriod(period)
	report := &domain.KPIReport{
		From: resolved.From,
		To:   resolved.To,
		Reps: make([]domain.RepSummary, 0),
	}

	days := make(map[string]struct{})
	for _, entry := range logs {
		report.Totals.Add(entry.KPIMetrics)
		days[entry.LogDate.String()] = struct{}{}
	}
	report.Totals.CashCollected = utils.RoundWithTwoDecimalPlace(report.Totals.CashCollected)
	report.Rates = Rates(report.Totals)
	report.Days = len(days)

	// nomes comparados sem caixa; o primeiro registro define o nome exibido
	byRep := make(map[string]*domain.RepSummary)
	for _, entry := range entries {
		key := strings.ToLower(strings.TrimSpace(entry.RepName))
		summary, ok := byRep[key]
		if !ok {
			summary = &domain.RepSummary{RepName: entry.RepName}
			byRep[key] = summary
		}
		summary.Add(entry.KPIMetrics)
	}

	for _, summary := range byRep {
		summary.CashCollected = utils.RoundWithTwoDecimalPlace(summary.CashCollected)
		summary.KPIRates = Rates(summary.KPIMetrics)
		report.Reps = append(report.Reps, *summary)
	}

	sort.Slice(report.Reps, func(i, j int) bool {
		if report.Reps[i].CashCollected != report.Reps[j].CashCollected {
			return report.Reps[i].CashCollected > report.Reps[j].CashCollected
		}
		return report.Reps[i].RepName < report.Reps[j].RepName
	})

	return report, nil
}

// Rates calcula set/lead, show/set e close/show
func Rates(m domain.KPIMetrics) domain.KPIRates {
	return domain.KPIRates{
		SetRate:   utils.Ratio(m.Sets, m.Leads),
		ShowRate:  utils.Ratio(m.Shows, m.Sets),
		CloseRate: utils.Ratio(m.Closes, m.Shows),
	}
}

func validateMetrics(m domain.KPIMetrics) error {
	if m.Leads < 0 || m.Sets < 0 || m.Shows < 0 || m.Closes < 0 || m.CashCollected < 0 {
		return NewReportError(ErrNegativeMetric, apiErrors.ErrInvalidValue, "")
	}
	return nil
}
