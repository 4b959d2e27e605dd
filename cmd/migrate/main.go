package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"
	"github.com/vfg2006/opsboard-api/infrastructure/migration"
	"github.com/vfg2006/opsboard-api/infrastructure/repository"
	"github.com/vfg2006/opsboard-api/infrastructure/storage"
	"github.com/vfg2006/opsboard-api/internal/config"
	"github.com/vfg2006/opsboard-api/internal/domain"
	"github.com/vfg2006/opsboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/opsboard-api/pkg/log"
)

const generatedPasswordLength = 16

type options struct {
	seed          bool
	reset         bool
	adminEmail    string
	adminName     string
	adminPassword string
}

// Aplica as migrações e, opcionalmente, carrega dados de exemplo e cria um administrador
func main() {
	fs := flag.NewFlagSet("migrate", flag.ExitOnError)
	opts := options{}
	fs.BoolVar(&opts.seed, "seed", false, "Carrega os dados de exemplo se o banco estiver vazio")
	fs.BoolVar(&opts.reset, "reset", false, "Apaga todos os registros e recarrega os dados de exemplo")
	fs.StringVar(&opts.adminEmail, "admin-email", "", "E-mail do administrador a ser criado")
	fs.StringVar(&opts.adminName, "admin-name", "Administrador", "Nome do administrador")
	fs.StringVar(&opts.adminPassword, "admin-password", "", "Senha do administrador (gerada se vazia)")
	_ = fs.Parse(os.Args[1:])

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Configure(cfg.App.LogLevel, log.FileOptions{Path: cfg.App.LogFile})

	if err := run(context.Background(), cfg, opts); err != nil {
		log.L.WithError(err).Error("Falha na migração")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, opts options) error {
	store, err := storage.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	seeder := store.Seeder
	if seeder == nil {
		seeder = migration.NewSeeder(store.Conn, cfg.Demo.Password)
	}

	switch {
	case opts.reset:
		if err := seeder.Reset(ctx); err != nil {
			return err
		}
		log.L.Info("Dados de exemplo recarregados")
	case opts.seed:
		if err := seeder.Seed(ctx); err != nil {
			return err
		}
		log.L.Info("Dados de exemplo carregados")
	}

	if opts.adminEmail == "" {
		return nil
	}

	password := opts.adminPassword
	if password == "" {
		password, err = authenticating.GeneratePassword(generatedPasswordLength)
		if err != nil {
			return err
		}
		fmt.Printf("Senha gerada para %s: %s\n", opts.adminEmail, password)
	}

	auth := authenticating.NewService(repository.NewUserRepository(store.Conn), cfg)
	user, err := auth.CreateUser(ctx, &domain.CreateUserRequest{
		Name:     opts.adminName,
		Email:    opts.adminEmail,
		Password: password,
		Role:     domain.UserRoleAdmin,
	})
	if errors.Is(err, authenticating.ErrUserAlreadyExists) {
		log.L.WithField("email", opts.adminEmail).Warn("Administrador já existe, nada a fazer")
		return nil
	}
	if err != nil {
		return err
	}

	log.L.WithFields(log.Fields{"user_id": user.ID, "email": user.Email}).Info("Administrador criado")
	return nil
}
