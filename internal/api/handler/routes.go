package handler

import (
	"net/http"

	"github.com/vfg2006/opsboard-api/internal/api/handler/router"
	"github.com/vfg2006/opsboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/opsboard-api/internal/usecases/clienting"
	"github.com/vfg2006/opsboard-api/internal/usecases/ingesting"
	"github.com/vfg2006/opsboard-api/internal/usecases/noting"
	"github.com/vfg2006/opsboard-api/internal/usecases/pipeline"
	"github.com/vfg2006/opsboard-api/internal/usecases/projecting"
	"github.com/vfg2006/opsboard-api/internal/usecases/reporting"
	"github.com/vfg2006/opsboard-api/internal/usecases/staffing"
	"github.com/vfg2006/opsboard-api/internal/usecases/tasking"
	"github.com/vfg2006/opsboard-api/pkg/middleware"
)

var (
	anyUser   = []func(http.Handler) http.Handler{middleware.AllRoles()}
	adminOnly = []func(http.Handler) http.Handler{middleware.AdminOnly()}
)

func Healthcheck(mode string) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(mode),
		},
	}
}

// Webhook registra o endpoint de ingestão nos dois caminhos públicos
func Webhook(service ingesting.Ingester) []router.Route {
	var routes []router.Route
	for _, path := range []string{middleware.WebhookTaskPath, middleware.WebhookTaskAliasPath} {
		routes = append(routes,
			router.Route{Path: path, Method: http.MethodPost, Handler: WebhookTask(service)},
			router.Route{Path: path, Method: http.MethodOptions, Handler: WebhookPreflight()},
		)
	}
	return routes
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{Path: "/v1/login", Method: http.MethodPost, Handler: Login(service)},
		{Path: "/v1/logout", Method: http.MethodPost, Handler: Logout(service), Middlewares: anyUser},
		{Path: "/v1/me", Method: http.MethodGet, Handler: GetMe(service), Middlewares: anyUser},
		{Path: "/v1/me", Method: http.MethodPut, Handler: UpdateMe(service), Middlewares: anyUser},
		{Path: "/v1/me/change-password", Method: http.MethodPost, Handler: ChangePassword(service), Middlewares: anyUser},
	}
}

func User(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{Path: "/v1/users", Method: http.MethodPost, Handler: CreateUser(service), Middlewares: adminOnly},
		{Path: "/v1/users/:id", Method: http.MethodGet, Handler: GetUser(service), Middlewares: adminOnly},
		{Path: "/v1/users/:id/generate-password", Method: http.MethodPost, Handler: GeneratePassword(service), Middlewares: adminOnly},
	}
}

func Tasks(service tasking.TaskService) []router.Route {
	return []router.Route{
		{Path: "/v1/tasks", Method: http.MethodGet, Handler: ListTasks(service), Middlewares: anyUser},
		{Path: "/v1/tasks", Method: http.MethodPost, Handler: CreateTask(service), Middlewares: anyUser},
		{Path: "/v1/tasks/:id", Method: http.MethodGet, Handler: GetTask(service), Middlewares: anyUser},
		{Path: "/v1/tasks/:id", Method: http.MethodPut, Handler: UpdateTask(service), Middlewares: anyUser},
		{Path: "/v1/tasks/:id", Method: http.MethodDelete, Handler: DeleteTask(service), Middlewares: anyUser},
	}
}

func Pipeline(service pipeline.PipelineService) []router.Route {
	return []router.Route{
		{Path: "/v1/deals", Method: http.MethodGet, Handler: ListDeals(service), Middlewares: anyUser},
		{Path: "/v1/deals", Method: http.MethodPost, Handler: CreateDeal(service), Middlewares: anyUser},
		{Path: "/v1/deals/:id", Method: http.MethodGet, Handler: GetDeal(service), Middlewares: anyUser},
		{Path: "/v1/deals/:id", Method: http.MethodPut, Handler: UpdateDeal(service), Middlewares: anyUser},
		{Path: "/v1/deals/:id", Method: http.MethodDelete, Handler: DeleteDeal(service), Middlewares: anyUser},
		{Path: "/v1/pipeline/board", Method: http.MethodGet, Handler: PipelineBoard(service), Middlewares: anyUser},
	}
}

func Clients(service clienting.ClientService) []router.Route {
	return []router.Route{
		{Path: "/v1/clients", Method: http.MethodGet, Handler: ListClients(service), Middlewares: anyUser},
		{Path: "/v1/clients", Method: http.MethodPost, Handler: CreateClient(service), Middlewares: anyUser},
		{Path: "/v1/clients/:id", Method: http.MethodGet, Handler: GetClient(service), Middlewares: anyUser},
		{Path: "/v1/clients/:id", Method: http.MethodPut, Handler: UpdateClient(service), Middlewares: anyUser},
		{Path: "/v1/clients/:id", Method: http.MethodDelete, Handler: DeleteClient(service), Middlewares: anyUser},
	}
}

func Team(service staffing.TeamService) []router.Route {
	return []router.Route{
		{Path: "/v1/team", Method: http.MethodGet, Handler: ListTeamMembers(service), Middlewares: anyUser},
		{Path: "/v1/team", Method: http.MethodPost, Handler: CreateTeamMember(service), Middlewares: anyUser},
		{Path: "/v1/team/:id", Method: http.MethodGet, Handler: GetTeamMember(service), Middlewares: anyUser},
		{Path: "/v1/team/:id", Method: http.MethodPut, Handler: UpdateTeamMember(service), Middlewares: anyUser},
		{Path: "/v1/team/:id", Method: http.MethodDelete, Handler: DeleteTeamMember(service), Middlewares: anyUser},
	}
}

func Notes(service noting.NoteService) []router.Route {
	return []router.Route{
		{Path: "/v1/notes", Method: http.MethodGet, Handler: ListNotes(service), Middlewares: anyUser},
		{Path: "/v1/notes", Method: http.MethodPost, Handler: CreateNote(service), Middlewares: anyUser},
		{Path: "/v1/notes/:id", Method: http.MethodGet, Handler: GetNote(service), Middlewares: anyUser},
		{Path: "/v1/notes/:id", Method: http.MethodPut, Handler: UpdateNote(service), Middlewares: anyUser},
		{Path: "/v1/notes/:id", Method: http.MethodDelete, Handler: DeleteNote(service), Middlewares: anyUser},
	}
}

func Projects(service projecting.ProjectService) []router.Route {
	return []router.Route{
		{Path: "/v1/projects", Method: http.MethodGet, Handler: ListProjects(service), Middlewares: anyUser},
		{Path: "/v1/projects", Method: http.MethodPost, Handler: CreateProject(service), Middlewares: anyUser},
		{Path: "/v1/projects/:id", Method: http.MethodGet, Handler: GetProject(service), Middlewares: anyUser},
		{Path: "/v1/projects/:id", Method: http.MethodPut, Handler: UpdateProject(service), Middlewares: anyUser},
		{Path: "/v1/projects/:id", Method: http.MethodDelete, Handler: DeleteProject(service), Middlewares: anyUser},
		{Path: "/v1/projects/:id/sections", Method: http.MethodPost, Handler: CreateSection(service), Middlewares: anyUser},
		{Path: "/v1/sections/:id", Method: http.MethodPut, Handler: UpdateSection(service), Middlewares: anyUser},
		{Path: "/v1/sections/:id", Method: http.MethodDelete, Handler: DeleteSection(service), Middlewares: anyUser},
	}
}

func Reports(service reporting.ReportService) []router.Route {
	return []router.Route{
		{Path: "/v1/kpi/logs", Method: http.MethodGet, Handler: ListKPILogs(service), Middlewares: anyUser},
		{Path: "/v1/kpi/logs", Method: http.MethodPost, Handler: CreateKPILog(service), Middlewares: anyUser},
		{Path: "/v1/kpi/logs/:id", Method: http.MethodPut, Handler: UpdateKPILog(service), Middlewares: anyUser},
		{Path: "/v1/kpi/logs/:id", Method: http.MethodDelete, Handler: DeleteKPILog(service), Middlewares: anyUser},
		{Path: "/v1/kpi/reps", Method: http.MethodGet, Handler: ListRepEntries(service), Middlewares: anyUser},
		{Path: "/v1/kpi/reps", Method: http.MethodPost, Handler: CreateRepEntry(service), Middlewares: anyUser},
		{Path: "/v1/kpi/reps/:id", Method: http.MethodPut, Handler: UpdateRepEntry(service), Middlewares: anyUser},
		{Path: "/v1/kpi/reps/:id", Method: http.MethodDelete, Handler: DeleteRepEntry(service), Middlewares: anyUser},
		{Path: "/v1/reports/kpi", Method: http.MethodGet, Handler: KPIReport(service), Middlewares: anyUser},
		{Path: "/v1/dashboard", Method: http.MethodGet, Handler: Dashboard(service), Middlewares: anyUser},
		{Path: "/v1/calendar", Method: http.MethodGet, Handler: Calendar(service), Middlewares: anyUser},
	}
}

// CronJobs registra /v1/cron/<nome>/run por job; um parâmetro no lugar do nome
// conflitaria com /v1/cron/status no httprouter
func CronJobs(services CronJobServices) []router.Route {
	routes := []router.Route{
		{Path: "/v1/cron/status", Method: http.MethodGet, Handler: GetCronStatus(services), Middlewares: adminOnly},
	}
	for name, job := range services {
		if job == nil {
			continue
		}
		routes = append(routes, router.Route{
			Path:        "/v1/cron/" + name + "/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(name, job),
			Middlewares: adminOnly,
		})
	}
	return routes
}
