package api

import (
	"github.com/vfg2006/opsboard-api/infrastructure/database"
	"github.com/vfg2006/opsboard-api/infrastructure/repository"
	"github.com/vfg2006/opsboard-api/internal/api/handler"
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
)

// NewServices liga repositórios e casos de uso sobre uma mesma conexão.
// Os jobs de cron ficam a cargo de quem sobe o servidor.
func NewServices(cfg *config.Config, conn *database.Connection) Services {
	userRepo := repository.NewUserRepository(conn)
	taskRepo := repository.NewTaskRepository(conn)
	dealRepo := repository.NewDealRepository(conn)
	clientRepo := repository.NewClientRepository(conn)
	teamRepo := repository.NewTeamMemberRepository(conn)
	noteRepo := repository.NewNoteRepository(conn)
	projectRepo := repository.NewProjectRepository(conn)
	sectionRepo := repository.NewSectionRepository(conn)
	kpiRepo := repository.NewKPILogRepository(conn)
	repRepo := repository.NewRepPerformanceRepository(conn)

	return Services{
		Auth:     authenticating.NewService(userRepo, cfg),
		Tasks:    tasking.NewService(taskRepo),
		Deals:    pipeline.NewService(dealRepo),
		Clients:  clienting.NewService(clientRepo),
		Team:     staffing.NewService(teamRepo),
		Notes:    noting.NewService(noteRepo),
		Projects: projecting.NewService(projectRepo, sectionRepo),
		Reports:  reporting.NewService(kpiRepo, repRepo, taskRepo, dealRepo, clientRepo),
		Ingester: ingesting.NewService(cfg.Webhook.Secret, taskRepo, projectRepo, sectionRepo, teamRepo),
		CronJobs: handler.CronJobServices{},
	}
}
