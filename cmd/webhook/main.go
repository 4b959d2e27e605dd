package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/opsboard-api/infrastructure/storage"
	"github.com/vfg2006/opsboard-api/internal/api"
	"github.com/vfg2006/opsboard-api/internal/config"
	"github.com/vfg2006/opsboard-api/pkg/log"
)

// Sobe somente o endpoint de ingestão, para ser exposto separado do painel
func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Configure(cfg.App.LogLevel, log.FileOptions{Path: cfg.App.LogFile})

	if cfg.Webhook.Secret == "" {
		log.L.Warn("WEBHOOK_SECRET vazio: todas as requisições serão rejeitadas")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := storage.Open(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao preparar o banco de dados")
	}
	defer store.Close()

	services := api.NewServices(cfg, store.Conn)

	if err := api.NewWebhook(cfg, store.Mode, services.Ingester).Run(ctx); err != nil {
		log.L.WithError(err).Error("Servidor encerrado com erro")
	}
}
