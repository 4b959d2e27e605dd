package migration

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/opsboard-api/infrastructure/database"
	"github.com/vfg2006/opsboard-api/internal/domain"
	"github.com/vfg2006/opsboard-api/pkg/utils"
	"golang.org/x/crypto/bcrypt"
)

const DemoUserEmail = "demo@opsboard.local"

// ordem de exclusão respeita as chaves estrangeiras
var demoTables = []string{
	"tasks",
	"notes",
	"project_sections",
	"projects",
	"deals",
	"clients",
	"team_members",
	"kpi_daily_logs",
	"rep_performance",
	"users",
}

// Seeder carrega os dados de exemplo do modo demo
type Seeder struct {
	conn         *database.Connection
	demoPassword string
	now          func() time.Time
}

func NewSeeder(conn *database.Connection, demoPassword string) *Seeder {
	return &Seeder{
		conn:         conn,
		demoPassword: demoPassword,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Reset apaga todos os registros e recarrega os dados de exemplo numa única transação
func (s *Seeder) Reset(ctx context.Context) error {
	return s.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for _, table := range demoTables {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
				return errors.Wrapf(err, "falha ao limpar tabela %s", table)
			}
		}
		return s.seed(ctx, tx)
	})
}

// Seed carrega os dados apenas se o banco ainda não tiver o usuário demo
func (s *Seeder) Seed(ctx context.Context) error {
	var count int
	countSQL, args, err := s.conn.Builder().
		Select("COUNT(*)").
		From("users").
		Where("email = ?", DemoUserEmail).
		ToSql()
	if err != nil {
		return err
	}

	if err := s.conn.QueryRowContext(ctx, countSQL, args...).Scan(&count); err != nil {
		return errors.Wrap(err, "falha ao verificar dados demo")
	}

	if count > 0 {
		logrus.Debug("Dados demo já carregados")
		return nil
	}

	return s.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		return s.seed(ctx, tx)
	})
}

func (s *Seeder) seed(ctx context.Context, tx *sql.Tx) error {
	startTime := time.Now()
	now := s.now()
	today := domain.NewDate(now)
	day := func(offset int) domain.Date { return domain.NewDate(today.AddDate(0, 0, offset)) }

	hash, err := bcrypt.GenerateFromPassword([]byte(s.demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return errors.Wrap(err, "falha ao gerar hash da senha demo")
	}

	if err := s.insert(ctx, tx, "users",
		[]string{"id", "name", "email", "password_hash", "role", "active", "created_at", "updated_at"},
		[][]any{{utils.GenerateID(), "Demo", DemoUserEmail, string(hash), string(domain.UserRoleAdmin), true, now, now}},
	); err != nil {
		return err
	}

	if err := s.insert(ctx, tx, "team_members",
		[]string{"id", "name", "nickname", "email", "role", "created_at"},
		[][]any{
			{utils.GenerateID(), "Alex Morgan", "Zeus", "alex@opsboard.local", string(domain.TeamRoleAdmin), now},
			{utils.GenerateID(), "Jamie Rivera", "Jay", "jamie@opsboard.local", string(domain.TeamRoleSales), now},
			{utils.GenerateID(), "Taylor Brooks", nil, "taylor@opsboard.local", string(domain.TeamRoleCloser), now},
			{utils.GenerateID(), "Casey Lee", "Case", "casey@opsboard.local", string(domain.TeamRoleMember), now},
		},
	); err != nil {
		return err
	}

	marketingID, opsID := utils.GenerateID(), utils.GenerateID()
	if err := s.insert(ctx, tx, "projects",
		[]string{"id", "name", "color", "icon", "description", "created_at"},
		[][]any{
			{marketingID, "Marketing", "#EC4899", "📣", "Campanhas e conteúdo", now},
			{opsID, "Operations", "#10B981", "⚙️", "Rotina interna", now},
		},
	); err != nil {
		return err
	}

	designID, contentID, financeID := utils.GenerateID(), utils.GenerateID(), utils.GenerateID()
	if err := s.insert(ctx, tx, "project_sections",
		[]string{"id", "project_id", "name", "color", "position", "created_at"},
		[][]any{
			{designID, marketingID, "Design", "#F472B6", 0, now},
			{contentID, marketingID, "Content", "#A78BFA", 1, now},
			{financeID, opsID, "Finance", "#34D399", 0, now},
		},
	); err != nil {
		return err
	}

	taskColumns := []string{
		"id", "title", "description", "status", "priority", "assignee_name", "due_date",
		"project_id", "section_id", "source", "created_at", "updated_at", "completed_at",
	}
	if err := s.insert(ctx, tx, "tasks", taskColumns, [][]any{
		{utils.GenerateID(), "Launch spring campaign", "Final review of creatives", string(domain.TaskStatusInProgress), string(domain.TaskPriorityHigh), "Alex Morgan", day(2), marketingID, designID, nil, now, now, nil},
		{utils.GenerateID(), "Write blog post", nil, string(domain.TaskStatusTodo), string(domain.TaskPriorityMedium), "Casey Lee", day(5), marketingID, contentID, nil, now, now, nil},
		{utils.GenerateID(), "Reconcile invoices", nil, string(domain.TaskStatusTodo), string(domain.TaskPriorityUrgent), "Taylor Brooks", day(-1), opsID, financeID, nil, now, now, nil},
		{utils.GenerateID(), "Review onboarding checklist", nil, string(domain.TaskStatusReview), string(domain.TaskPriorityLow), "Jamie Rivera", day(7), opsID, nil, nil, now, now, nil},
		{utils.GenerateID(), "Send weekly report", nil, string(domain.TaskStatusDone), string(domain.TaskPriorityMedium), "Alex Morgan", day(-3), opsID, nil, nil, now, now, now},
		{utils.GenerateID(), "Call back website lead", "Lead asked for pricing", string(domain.TaskStatusTodo), string(domain.TaskPriorityHigh), nil, day(1), nil, nil, "website", now, now, nil},
	}); err != nil {
		return err
	}

	if err := s.insert(ctx, tx, "deals",
		[]string{"id", "title", "value", "stage", "client_name", "client_email", "source", "assigned_to", "notes", "created_at", "updated_at"},
		[][]any{
			{utils.GenerateID(), "Acme annual plan", 12000.0, string(domain.DealStageProposal), "Acme Inc", "ops@acme.test", "website", "Taylor Brooks", nil, now, now},
			{utils.GenerateID(), "Globex coaching", 4500.0, string(domain.DealStageBooked), "Globex", nil, "calendly", "Jamie Rivera", nil, now, now},
			{utils.GenerateID(), "Initech audit", 3000.0, string(domain.DealStageLead), "Initech", nil, "zapier", nil, nil, now, now},
			{utils.GenerateID(), "Umbrella retainer", 8000.0, string(domain.DealStageClosedWon), "Umbrella Corp", "finance@umbrella.test", "referral", "Taylor Brooks", "Signed", now, now},
			{utils.GenerateID(), "Hooli pilot", 2500.0, string(domain.DealStageClosedLost), "Hooli", nil, "website", "Jamie Rivera", "Budget freeze", now, now},
		},
	); err != nil {
		return err
	}

	if err := s.insert(ctx, tx, "clients",
		[]string{"id", "name", "email", "status", "health_score", "ltv", "created_at", "updated_at"},
		[][]any{
			{utils.GenerateID(), "Umbrella Corp", "finance@umbrella.test", string(domain.ClientStatusActive), 92, 24000.0, now, now},
			{utils.GenerateID(), "Acme Inc", "ops@acme.test", string(domain.ClientStatusOnboarding), 75, 0.0, now, now},
			{utils.GenerateID(), "Stark Industries", nil, string(domain.ClientStatusAtRisk), 38, 15000.0, now, now},
			{utils.GenerateID(), "Wayne Enterprises", nil, string(domain.ClientStatusChurned), 10, 6000.0, now, now},
		},
	); err != nil {
		return err
	}

	if err := s.insert(ctx, tx, "notes",
		[]string{"id", "title", "content", "pinned", "category", "shared", "project_id", "author", "created_at", "updated_at"},
		[][]any{
			{utils.GenerateID(), "Sales script", "Open with the client's goal.", true, "sales", true, nil, "Jamie Rivera", now, now},
			{utils.GenerateID(), "Brand colors", "Primary #6366F1.", false, "design", true, marketingID, "Alex Morgan", now, now},
			{utils.GenerateID(), "Ideas", "Quarterly webinar.", false, nil, false, nil, "Demo", now, now},
		},
	); err != nil {
		return err
	}

	var kpiRows, repRows [][]any
	reps := []string{"Jamie Rivera", "Taylor Brooks"}
	for offset := -13; offset <= 0; offset++ {
		n := offset + 14
		kpiRows = append(kpiRows, []any{utils.GenerateID(), day(offset), 20 + n, 8 + n/2, 5 + n/3, 2 + n/5, float64(1500 + n*100), now})
		for i, rep := range reps {
			repRows = append(repRows, []any{utils.GenerateID(), rep, day(offset), 10 + n/2 + i, 4 + n/4, 2 + n/6, 1 + n/7*i, float64(700 + n*40 + i*150), now})
		}
	}

	if err := s.insert(ctx, tx, "kpi_daily_logs",
		[]string{"id", "log_date", "leads", "sets", "shows", "closes", "cash_collected", "created_at"},
		kpiRows,
	); err != nil {
		return err
	}

	if err := s.insert(ctx, tx, "rep_performance",
		[]string{"id", "rep_name", "log_date", "leads", "sets", "shows", "closes", "cash_collected", "created_at"},
		repRows,
	); err != nil {
		return err
	}

	logrus.Infof("Carga demo concluída em %v", time.Since(startTime))
	return nil
}

func (s *Seeder) insert(ctx context.Context, tx *sql.Tx, table string, columns []string, rows [][]any) error {
	builder := s.conn.Builder().Insert(table).Columns(columns...)
	for _, row := range rows {
		builder = builder.Values(row...)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrapf(err, "falha ao inserir dados demo em %s", table)
	}

	logrus.Debugf("Inseridos %d registros demo em %s", len(rows), table)
	return nil
}
