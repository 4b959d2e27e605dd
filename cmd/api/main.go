package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/opsboard-api/infrastructure/migration"
	"github.com/vfg2006/opsboard-api/infrastructure/storage"
	"github.com/vfg2006/opsboard-api/internal/api"
	"github.com/vfg2006/opsboard-api/internal/api/handler"
	"github.com/vfg2006/opsboard-api/internal/config"
	"github.com/vfg2006/opsboard-api/internal/scheduler"
	"github.com/vfg2006/opsboard-api/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Configure(cfg.App.LogLevel, log.FileOptions{Path: cfg.App.LogFile})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := storage.Open(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao preparar o banco de dados")
	}
	defer store.Close()

	if store.Mode == storage.ModeDemo {
		log.L.WithField("demo_user", migration.DemoUserEmail).Warn("Modo demo ativo: dados locais de exemplo")
	}

	services := api.NewServices(cfg, store.Conn)

	// o reset só existe no modo demo; em produção não há seeder
	if store.Seeder != nil {
		demoResetService := scheduler.NewDemoResetService(store.Seeder, cfg)
		if err := demoResetService.Start(ctx); err != nil {
			log.L.WithError(err).Error("Erro ao iniciar o agendador de reset do banco demo")
		}
		services.CronJobs[handler.CronJobTypeDemoReset] = demoResetService
	}

	server, err := api.New(cfg, store.Mode, services)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		log.L.WithError(err).Error("Servidor encerrado com erro")
	}
}
