package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/opsboard-api/infrastructure/database"
	"github.com/vfg2006/opsboard-api/internal/domain"
)

const (
	kpiDailyLogsTable   = "kpi_daily_logs"
	repPerformanceTable = "rep_performance"
)

var (
	kpiLogColumns = []string{"id", "log_date", "leads", "sets", "shows", "closes", "cash_collected", "created_at"}
	repColumns    = []string{"id", "rep_name", "log_date", "leads", "sets", "shows", "closes", "cash_collected", "created_at"}
)

type KPILogRepository interface {
	Create(ctx context.Context, log *domain.KPIDailyLog) error
	Update(ctx context.Context, log *domain.KPIDailyLog) error
	GetByID(ctx context.Context, id string) (*domain.KPIDailyLog, error)
	List(ctx context.Context, period domain.DateRange) ([]*domain.KPIDailyLog, error)
	Delete(ctx context.Context, id string) error
}

type RepPerformanceRepository interface {
	Create(ctx context.Context, rep *domain.RepPerformance) error
	Update(ctx context.Context, rep *domain.RepPerformance) error
	GetByID(ctx context.Context, id string) (*domain.RepPerformance, error)
	List(ctx context.Context, period domain.DateRange) ([]*domain.RepPerformance, error)
	Delete(ctx context.Context, id string) error
}

func periodFilter(period domain.DateRange) squirrel.Sqlizer {
	return squirrel.And{
		squirrel.GtOrEq{"log_date": period.From},
		squirrel.LtOrEq{"log_date": period.To},
	}
}

type kpiLogRepository struct {
	conn *database.Connection
}

func NewKPILogRepository(conn *database.Connection) KPILogRepository {
	return &kpiLogRepository{conn: conn}
}

func (r *kpiLogRepository) Create(ctx context.Context, log *domain.KPIDailyLog) error {
	builder := r.conn.Builder().
		Insert(kpiDailyLogsTable).
		Columns(kpiLogColumns...).
		Values(log.ID, log.LogDate, log.Leads, log.Sets, log.Shows, log.Closes, log.CashCollected, log.CreatedAt)

	if _, err := exec(ctx, r.conn, builder); err != nil {
		return errors.Wrap(err, "falha ao inserir registro de KPI")
	}
	return nil
}

func (r *kpiLogRepository) Update(ctx context.Context, log *domain.KPIDailyLog) error {
	builder := r.conn.Builder().
		Update(kpiDailyLogsTable).
		Set("log_date", log.LogDate).
		Set("leads", log.Leads).
		Set("sets", log.Sets).
		Set("shows", log.Shows).
		Set("closes", log.Closes).
		Set("cash_collected", log.CashCollected).
		Where(squirrel.Eq{"id": log.ID})

	if _, err := exec(ctx, r.conn, builder); err != nil {
		return errors.Wrapf(err, "falha ao atualizar registro de KPI %s", log.ID)
	}
	return nil
}

func (r *kpiLogRepository) GetByID(ctx context.Context, id string) (*domain.KPIDailyLog, error) {
	row, err := queryRow(ctx, r.conn, r.conn.Builder().
		Select(kpiLogColumns...).
		From(kpiDailyLogsTable).
		Where(squirrel.Eq{"id": id}))
	if err != nil {
		return nil, err
	}

	log, err := scanKPILog(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "falha ao buscar registro de KPI %s", id)
	}
	return log, nil
}

func (r *kpiLogRepository) List(ctx context.Context, period domain.DateRange) ([]*domain.KPIDailyLog, error) {
	rows, err := query(ctx, r.conn, r.conn.Builder().
		Select(kpiLogColumns...).
		From(kpiDailyLogsTable).
		Where(periodFilter(period)).
		OrderBy("log_date ASC"))
	if err != nil {
		return nil, errors.Wrap(err, "falha ao listar registros de KPI")
	}
	defer rows.Close()

	logs := make([]*domain.KPIDailyLog, 0)
	for rows.Next() {
		log, err := scanKPILog(rows)
		if err != nil {
			return nil, errors.Wrap(err, "falha ao ler registro de KPI")
		}
		logs = append(logs, log)
	}

	return logs, rows.Err()
}

func (r *kpiLogRepository) Delete(ctx context.Context, id string) error {
	if _, err := exec(ctx, r.conn, r.conn.Builder().Delete(kpiDailyLogsTable).Where(squirrel.Eq{"id": id})); err != nil {
		return errors.Wrapf(err, "falha ao remover registro de KPI %s", id)
	}
	return nil
}

func scanKPILog(s scanner) (*domain.KPIDailyLog, error) {
	var log domain.KPIDailyLog
	if err := s.Scan(
		&log.ID,
		&log.LogDate,
		&log.Leads,
		&log.Sets,
		&log.Shows,
		&log.Closes,
		&log.CashCollected,
		&log.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &log, nil
}

type repPerformanceRepository struct {
	conn *database.Connection
}

func NewRepPerformanceRepository(conn *database.Connection) RepPerformanceRepository {
	return &repPerformanceRepository{conn: conn}
}

func (r *repPerformanceRepository) Create(ctx context.Context, rep *domain.RepPerformance) error {
	builder := r.conn.Builder().
		Insert(repPerformanceTable).
		Columns(repColumns...).
		Values(rep.ID, rep.RepName, rep.LogDate, rep.Leads, rep.Sets, rep.Shows, rep.Closes, rep.CashCollected, rep.CreatedAt)

	if _, err := exec(ctx, r.conn, builder); err != nil {
		return errors.Wrap(err, "falha ao inserir desempenho do vendedor")
	}
	return nil
}

func (r *repPerformanceRepository) Update(ctx context.Context, rep *domain.RepPerformance) error {
	builder := r.conn.Builder().
		Update(repPerformanceTable).
		Set("rep_name", rep.RepName).
		Set("log_date", rep.LogDate).
		Set("leads", rep.Leads).
		Set("sets", rep.Sets).
		Set("shows", rep.Shows).
		Set("closes", rep.Closes).
		Set("cash_collected", rep.CashCollected).
		Where(squirrel.Eq{"id": rep.ID})

	if _, err := exec(ctx, r.conn, builder); err != nil {
		return errors.Wrapf(err, "falha ao atualizar desempenho %s", rep.ID)
	}
	return nil
}

func (r *repPerformanceRepository) GetByID(ctx context.Context, id string) (*domain.RepPerformance, error) {
	row, err := queryRow(ctx, r.conn, r.conn.Builder().
		Select(repColumns...).
		From(repPerformanceTable).
		Where(squirrel.Eq{"id": id}))
	if err != nil {
		return nil, err
	}

	rep, err := scanRepPerformance(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "falha ao buscar desempenho %s", id)
	}
	return rep, nil
}

func (r *repPerformanceRepository) List(ctx context.Context, period domain.DateRange) ([]*domain.RepPerformance, error) {
	rows, err := query(ctx, r.conn, r.conn.Builder().
		Select(repColumns...).
		From(repPerformanceTable).
		Where(periodFilter(period)).
		OrderBy("log_date ASC", "rep_name ASC"))
	if err != nil {
		return nil, errors.Wrap(err, "falha ao listar desempenho dos vendedores")
	}
	defer rows.Close()

	reps := make([]*domain.RepPerformance, 0)
	for rows.Next() {
		rep, err := scanRepPerformance(rows)
		if err != nil {
			return nil, errors.Wrap(err, "falha ao ler desempenho do vendedor")
		}
		reps = append(reps, rep)
	}

	return reps, rows.Err()
}

func (r *repPerformanceRepository) Delete(ctx context.Context, id string) error {
	if _, err := exec(ctx, r.conn, r.conn.Builder().Delete(repPerformanceTable).Where(squirrel.Eq{"id": id})); err != nil {
		return errors.Wrapf(err, "falha ao remover desempenho %s", id)
	}
	return nil
}

func scanRepPerformance(s scanner) (*domain.RepPerformance, error) {
	var rep domain.RepPerformance
	if err := s.Scan(
		&rep.ID,
		&rep.RepName,
		&rep.LogDate,
		&rep.Leads,
		&rep.Sets,
		&rep.Shows,
		&rep.Closes,
		&rep.CashCollected,
		&rep.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &rep, nil
}
