package reporting

import (
	"context"
	"sort"

	"github.com/vfg2006/opsboard-api/internal/domain"
	"github.com/vfg2006/opsboard-api/pkg/apiErrors"
	"github.com/vfg2006/opsboard-api/pkg/log"
)

// Calendar agrupa por dia as tarefas com vencimento no período, em ordem crescente.
// Dias sem tarefas não aparecem.
func (s *Service) Calendar(ctx context.Context, period *domain.DateRange) (*domain.Calendar, error) {
	resolved, err := s.resolvePeriod(period)
	if err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.List(ctx, domain.TaskFilters{DueFrom: &resolved.From, DueTo: &resolved.To})
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao listar tarefas do calendário")
		return nil, NewReportError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao listar tarefas")
	}

	calendar := &domain.Calendar{
		From: resolved.From,
		To:   resolved.To,
		Days: make([]domain.CalendarDay, 0),
	}

	index := make(map[string]int)
	for _, task := range tasks {
		if task.DueDate == nil || !resolved.Contains(*task.DueDate) {
			continue
		}

		key := task.DueDate.String()
		i, ok := index[key]
		if !ok {
			i = len(calendar.Days)
			index[key] = i
			calendar.Days = append(calendar.Days, domain.CalendarDay{Date: *task.DueDate, Tasks: make([]*domain.Task, 0)})
		}
		calendar.Days[i].Tasks = append(calendar.Days[i].Tasks, task)
	}

	sort.SliceStable(calendar.Days, func(i, j int) bool {
		return calendar.Days[i].Date.Before(calendar.Days[j].Date.Time)
	})

	return calendar, nil
}
