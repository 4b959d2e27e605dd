package api

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/vfg2006/opsboard-api/internal/api/handler"
	"github.com/vfg2006/opsboard-api/internal/api/handler/router"
	"github.com/vfg2006/opsboard-api/internal/config"
	"github.com/vfg2006/opsboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/opsboard-api/internal/usecases/clienting"
	"github.com/vfg2006/opsboard-api/internal/usecases/ingesting"
	"github.com/vfg2006/opsboard-api/internal/usecases/noting"
	"github.com/vfg2006/opsboard-api/internal/usecases/pipeline"
	"github.com/vfg2006/opsboard-api/internal/usecases/projecting"
	"github.com/vfg2006/opsboard-api/internal/usecases/reporting"
	"github.com/vfg2006/opsboard-api/internal/usecases/staffing"
	"github.com/vfg2006/opsboard-api/internal/usecases/tasking"
	"github.com/vfg2006/opsboard-api/pkg/log"
	"github.com/vfg2006/opsboard-api/pkg/middleware"
)

const shutdownTimeout = 15 * time.Second

// Services reúne os casos de uso expostos pela API
type Services struct {
	Auth     authenticating.Authenticator
	Tasks    tasking.TaskService
	Deals    pipeline.PipelineService
	Clients  clienting.ClientService
	Team     staffing.TeamService
	Notes    noting.NoteService
	Projects projecting.ProjectService
	Reports  reporting.ReportService
	Ingester ingesting.Ingester
	CronJobs handler.CronJobServices
}

type Server struct {
	httpServer *http.Server
}

// New monta a API completa do painel com o webhook de tarefas
func New(cfg *config.Config, mode string, services Services) (*Server, error) {
	rt := router.New(
		router.WithRoutes(handler.Healthcheck(mode)...),
		router.WithRoutes(handler.Webhook(services.Ingester)...),
		router.WithRoutes(handler.Authentication(services.Auth)...),
		router.WithRoutes(handler.User(services.Auth)...),
		router.WithRoutes(handler.Tasks(services.Tasks)...),
		router.WithRoutes(handler.Pipeline(services.Deals)...),
		router.WithRoutes(handler.Clients(services.Clients)...),
		router.WithRoutes(handler.Team(services.Team)...),
		router.WithRoutes(handler.Notes(services.Notes)...),
		router.WithRoutes(handler.Projects(services.Projects)...),
		router.WithRoutes(handler.Reports(services.Reports)...),
		router.WithRoutes(handler.CronJobs(services.CronJobs)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(cfg.Cors.AllowedOrigins),
		middleware.AuthMiddleware(services.Auth),
	}

	return newServer(cfg, alice.New(middlewares...).Then(rt)), nil
}

// NewWebhook sobe apenas o healthcheck e a ingestão de tarefas, sem autenticação de usuário
func NewWebhook(cfg *config.Config, mode string, ingester ingesting.Ingester) *Server {
	rt := router.New(
		router.WithRoutes(handler.Healthcheck(mode)...),
		router.WithRoutes(handler.Webhook(ingester)...),
	)

	chain := alice.New(
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(cfg.Cors.AllowedOrigins),
	)

	return newServer(cfg, chain.Then(rt))
}

func newServer(cfg *config.Config, h http.Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              cfg.Server.Addr(),
			Handler:           h,
			ReadHeaderTimeout: 2 * time.Second,
		},
	}
}

// Handler expõe a cadeia completa de middlewares e rotas
func (s Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		log.L.WithField("address", s.httpServer.Addr).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.L.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(done)

	select {
	case <-done:
		log.L.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		log.L.Info("Contexto de aplicação cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	log.L.WithField("timeout", shutdownTimeout.String()).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		log.L.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	log.L.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
