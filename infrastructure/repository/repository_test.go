package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/opsboard-api/infrastructure/database"
	"github.com/vfg2006/opsboard-api/infrastructure/database/sqlite"
	"github.com/vfg2006/opsboard-api/infrastructure/migration"
	"github.com/vfg2006/opsboard-api/infrastructure/repository"
	"github.com/vfg2006/opsboard-api/internal/domain"
)

func newTestConnection(t *testing.T) *database.Connection {
	t.Helper()
	ctx := context.Background()

	conn, err := sqlite.NewConnection(ctx, sqlite.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	runner, err := migration.NewRunnerForDriver(conn)
	require.NoError(t, err)
	_, err = runner.Apply(ctx)
	require.NoError(t, err)

	return conn
}

func ptr[T any](v T) *T { return &v }

func date(t *testing.T, value string) domain.Date {
	t.Helper()
	d, err := domain.ParseDate(value)
	require.NoError(t, err)
	return d
}

func TestTaskRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	conn := newTestConnection(t)
	repo := repository.NewTaskRepository(conn)
	now := time.Now().UTC().Truncate(time.Second)
	due := date(t, "2024-03-10")

	task := &domain.Task{
		ID:           "task-1",
		Title:        "Ligar para o cliente",
		Description:  ptr("retorno sobre proposta"),
		Status:       domain.TaskStatusTodo,
		Priority:     domain.TaskPriorityHigh,
		AssigneeName: ptr("Alex Morgan"),
		DueDate:      &due,
		Source:       ptr("website"),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, repo.Create(ctx, task))

	got, err := repo.GetByID(ctx, "task-1")
	require.NoError(t, err)
	require.NotNil(t, got)

	opts := cmp.Options{
		cmp.Comparer(func(a, b time.Time) bool { return a.Equal(b) }),
	}
	if diff := cmp.Diff(task, got, opts); diff != "" {
		t.Errorf("tarefa lida difere da gravada (-want +got):\n%s", diff)
	}

	got.ApplyStatus(domain.TaskStatusDone, now)
	got.UpdatedAt = now
	require.NoError(t, repo.Update(ctx, got))

	updated, err := repo.GetByID(ctx, "task-1")
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusDone, updated.Status)
	require.NotNil(t, updated.CompletedAt)

	missing, err := repo.GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, repo.Delete(ctx, "task-1"))
	gone, err := repo.GetByID(ctx, "task-1")
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestTaskRepositoryListFiltersAndCounts(t *testing.T) {
	ctx := context.Background()
	conn := newTestConnection(t)
	repo := repository.NewTaskRepository(conn)
	now := time.Now().UTC()

	seed := []struct {
		id       string
		status   domain.TaskStatus
		priority domain.TaskPriority
		assignee string
		due      string
	}{
		{id: "a", status: domain.TaskStatusTodo, priority: domain.TaskPriorityHigh, assignee: "Alex", due: "2024-01-05"},
		{id: "b", status: domain.TaskStatusDone, priority: domain.TaskPriorityLow, assignee: "alex", due: "2024-01-02"},
		{id: "c", status: domain.TaskStatusInProgress, priority: domain.TaskPriorityHigh, assignee: "Casey", due: "2024-02-01"},
		{id: "d", status: domain.TaskStatusTodo, priority: domain.TaskPriorityMedium},
	}
	for _, s := range seed {
		task := &domain.Task{ID: s.id, Title: s.id, Status: s.status, Priority: s.priority, CreatedAt: now, UpdatedAt: now}
		if s.assignee != "" {
			task.AssigneeName = ptr(s.assignee)
		}
		if s.due != "" {
			due := date(t, s.due)
			task.DueDate = &due
		}
		require.NoError(t, repo.Create(ctx, task))
	}

	ids := func(tasks []*domain.Task) []string {
		out := make([]string, 0, len(tasks))
		for _, task := range tasks {
			out = append(out, task.ID)
		}
		return out
	}

	tests := []struct {
		name    string
		filters domain.TaskFilters
		want    []string
	}{
		{name: "sem filtro ordena por vencimento", filters: domain.TaskFilters{}, want: []string{"b", "a", "c", "d"}},
		{name: "status", filters: domain.TaskFilters{Status: []domain.TaskStatus{domain.TaskStatusTodo}}, want: []string{"a", "d"}},
		{name: "prioridade", filters: domain.TaskFilters{Priority: []domain.TaskPriority{domain.TaskPriorityHigh}}, want: []string{"a", "c"}},
		{name: "responsável sem caixa", filters: domain.TaskFilters{Assignee: "ALEX"}, want: []string{"b", "a"}},
		{
			name:    "janela de vencimento",
			filters: domain.TaskFilters{DueFrom: ptr(date(t, "2024-01-03")), DueTo: ptr(date(t, "2024-01-31"))},
			want:    []string{"a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks, err := repo.List(ctx, tt.filters)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(tasks))
		})
	}

	counts, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[domain.TaskStatus]int{
		domain.TaskStatusTodo:       2,
		domain.TaskStatusDone:       1,
		domain.TaskStatusInProgress: 1,
	}, counts)

	overdue, err := repo.CountOverdue(ctx, date(t, "2024-01-10"))
	require.NoError(t, err)
	assert.Equal(t, 1, overdue)
}

func TestProjectAndSectionRepositories(t *testing.T) {
	ctx := context.Background()
	conn := newTestConnection(t)
	projects := repository.NewProjectRepository(conn)
	sections := repository.NewSectionRepository(conn)
	now := time.Now().UTC()

	require.NoError(t, projects.Create(ctx, &domain.Project{ID: "p1", Name: "AccrediPro", Icon: ptr("🎓"), CreatedAt: now}))
	require.NoError(t, sections.Create(ctx, &domain.ProjectSection{ID: "s1", ProjectID: "p1", Name: "Sales", Position: 1, CreatedAt: now}))
	require.NoError(t, sections.Create(ctx, &domain.ProjectSection{ID: "s0", ProjectID: "p1", Name: "Design", Position: 0, CreatedAt: now}))

	found, err := projects.FindByName(ctx, "accredipro")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "p1", found.ID)
	assert.Equal(t, "🎓", *found.Icon)

	none, err := projects.FindByName(ctx, "accredi")
	require.NoError(t, err)
	assert.Nil(t, none)

	section, err := sections.FindByName(ctx, "p1", "SALES")
	require.NoError(t, err)
	require.NotNil(t, section)
	assert.Equal(t, "s1", section.ID)

	otherProject, err := sections.FindByName(ctx, "p2", "Sales")
	require.NoError(t, err)
	assert.Nil(t, otherProject)

	list, err := sections.ListByProject(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "s0", list[0].ID)

	require.NoError(t, projects.Delete(ctx, "p1"))
	list, err = sections.ListByProject(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestTeamMemberFindByNameOrNickname(t *testing.T) {
	ctx := context.Background()
	conn := newTestConnection(t)
	repo := repository.NewTeamMemberRepository(conn)
	now := time.Now().UTC()

	require.NoError(t, repo.Create(ctx, &domain.TeamMember{ID: "m1", Name: "Alex Morgan", Nickname: ptr("Zeus"), Role: domain.TeamRoleAdmin, CreatedAt: now}))
	require.NoError(t, repo.Create(ctx, &domain.TeamMember{ID: "m2", Name: "Casey Lee", Role: domain.TeamRoleMember, CreatedAt: now}))

	tests := []struct {
		value string
		want  string
	}{
		{value: "zeus", want: "Alex Morgan"},
		{value: "ALEX MORGAN", want: "Alex Morgan"},
		{value: "casey lee", want: "Casey Lee"},
		{value: "nonexistent", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			member, err := repo.FindByNameOrNickname(ctx, tt.value)
			require.NoError(t, err)
			if tt.want == "" {
				assert.Nil(t, member)
				return
			}
			require.NotNil(t, member)
			assert.Equal(t, tt.want, member.Name)
		})
	}
}

func TestNoteRepositoryOrdering(t *testing.T) {
	ctx := context.Background()
	conn := newTestConnection(t)
	repo := repository.NewNoteRepository(conn)
	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, &domain.Note{ID: "old", Title: "old", CreatedAt: base, UpdatedAt: base}))
	require.NoError(t, repo.Create(ctx, &domain.Note{ID: "new", Title: "new", Shared: true, CreatedAt: base, UpdatedAt: base.Add(time.Hour)}))
	require.NoError(t, repo.Create(ctx, &domain.Note{ID: "pinned", Title: "pinned", Pinned: true, CreatedAt: base, UpdatedAt: base.Add(-time.Hour)}))

	notes, err := repo.List(ctx, domain.NoteFilters{})
	require.NoError(t, err)
	require.Len(t, notes, 3)
	assert.Equal(t, []string{"pinned", "new", "old"}, []string{notes[0].ID, notes[1].ID, notes[2].ID})

	shared, err := repo.List(ctx, domain.NoteFilters{Shared: ptr(true)})
	require.NoError(t, err)
	require.Len(t, shared, 1)
	assert.Equal(t, "new", shared[0].ID)
}

func TestClientAndDealRepositories(t *testing.T) {
	ctx := context.Background()
	conn := newTestConnection(t)
	clients := repository.NewClientRepository(conn)
	deals := repository.NewDealRepository(conn)
	now := time.Now().UTC()

	require.NoError(t, clients.Create(ctx, &domain.Client{ID: "c1", Name: "Acme", Status: domain.ClientStatusActive, HealthScore: 80, LTV: 1200.5, CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, clients.Create(ctx, &domain.Client{ID: "c2", Name: "Globex", Status: domain.ClientStatusAtRisk, HealthScore: 30, CreatedAt: now, UpdatedAt: now}))

	atRisk, err := clients.List(ctx, []domain.ClientStatus{domain.ClientStatusAtRisk})
	require.NoError(t, err)
	require.Len(t, atRisk, 1)
	assert.Equal(t, "Globex", atRisk[0].Name)

	counts, err := clients.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, counts[domain.ClientStatusActive])

	require.NoError(t, deals.Create(ctx, &domain.Deal{ID: "d1", Title: "Plano anual", Value: 12000, Stage: domain.DealStageProposal, CreatedAt: now, UpdatedAt: now}))
	deal, err := deals.GetByID(ctx, "d1")
	require.NoError(t, err)
	require.NotNil(t, deal)
	assert.InDelta(t, 12000, deal.Value, 0.001)

	deal.Stage = domain.DealStageClosedWon
	require.NoError(t, deals.Update(ctx, deal))

	won, err := deals.List(ctx, domain.DealFilters{Stage: []domain.DealStage{domain.DealStageClosedWon}})
	require.NoError(t, err)
	assert.Len(t, won, 1)
}

func TestKPIRepositoriesPeriod(t *testing.T) {
	ctx := context.Background()
	conn := newTestConnection(t)
	logs := repository.NewKPILogRepository(conn)
	reps := repository.NewRepPerformanceRepository(conn)
	now := time.Now().UTC()

	for i, day := range []string{"2024-01-31", "2024-02-01", "2024-02-15", "2024-03-01"} {
		d := date(t, day)
		require.NoError(t, logs.Create(ctx, &domain.KPIDailyLog{ID: day, LogDate: d, KPIMetrics: domain.KPIMetrics{Leads: i + 1}, CreatedAt: now}))
		require.NoError(t, reps.Create(ctx, &domain.RepPerformance{ID: day, RepName: "Jamie", LogDate: d, CreatedAt: now}))
	}

	february := domain.DateRange{From: date(t, "2024-02-01"), To: date(t, "2024-02-29")}

	list, err := logs.List(ctx, february)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "2024-02-01", list[0].LogDate.String())
	assert.Equal(t, 2, list[0].Leads)

	repList, err := reps.List(ctx, february)
	require.NoError(t, err)
	assert.Len(t, repList, 2)
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	conn := newTestConnection(t)
	repo := repository.NewUserRepository(conn)
	now := time.Now().UTC()

	require.NoError(t, repo.CreateUser(ctx, &domain.User{
		ID: "u1", Name: "Demo", Email: "demo@opsboard.local", PasswordHash: "hash",
		Role: domain.UserRoleAdmin, Active: true, CreatedAt: now, UpdatedAt: now,
	}))

	user, err := repo.GetUserByEmail(ctx, "DEMO@opsboard.local")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "u1", user.ID)
	assert.True(t, user.Active)

	user.Name = "Demo User"
	user.AvatarURL = ptr("https://example.com/a.png")
	require.NoError(t, repo.UpdateUser(ctx, user))

	byID, err := repo.GetUserByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Demo User", byID.Name)
	assert.Equal(t, "hash", byID.PasswordHash)

	missing, err := repo.GetUserByID(ctx, "u2")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
