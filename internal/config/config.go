package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const webhookSecretFile = "webhook_secret"

type Config struct {
	App       App       `mapstructure:",squash"`
	Server    Server    `mapstructure:",squash"`
	Database  Database  `mapstructure:",squash"`
	Demo      Demo      `mapstructure:",squash"`
	Render    Render    `mapstructure:",squash"`
	Webhook   Webhook   `mapstructure:",squash"`
	Cors      Cors      `mapstructure:",squash"`
	SecretKey string    `mapstructure:"secret_key"`
	DemoReset DemoReset `mapstructure:",squash"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

func (s Server) Addr() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

// Configured indica se há um banco real; sem DATABASE_URL a aplicação sobe em modo demo
func (d Database) Configured() bool {
	return strings.TrimSpace(d.URL) != ""
}

type Demo struct {
	Enabled      bool   `mapstructure:"demo_mode"`
	DatabasePath string `mapstructure:"demo_database_path"`
	Password     string `mapstructure:"demo_password"`
}

type DemoReset struct {
	CronSchedule string `mapstructure:"demo_reset_cron"`
	Enabled      bool   `mapstructure:"demo_reset_enabled"`
}

type Render struct {
	APIKey    string `mapstructure:"render_api_key"`
	ServiceID string `mapstructure:"render_service_id"`
	BaseURL   string `mapstructure:"render_base_url"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
	LogFile  string `mapstructure:"log_file"`
	Env      string `mapstructure:"app_env"`
}

type Webhook struct {
	Secret string `mapstructure:"webhook_secret"`
}

type Cors struct {
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

// DemoMode é decidido uma vez na inicialização
func (c *Config) DemoMode() bool {
	return c.Demo.Enabled || !c.Database.Configured()
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("DEMO_MODE", false)
	viper.SetDefault("DEMO_DATABASE_PATH", "")
	viper.SetDefault("DEMO_PASSWORD", "demo1234")
	viper.SetDefault("DEMO_RESET_CRON", "0 4 * * *") // Todos os dias às 4h da manhã
	viper.SetDefault("DEMO_RESET_ENABLED", true)

	viper.SetDefault("SECRET_KEY", "your_secret_key")
	viper.SetDefault("WEBHOOK_SECRET", "")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	viper.SetDefault("RENDER_API_KEY", "")
	viper.SetDefault("RENDER_SERVICE_ID", "")
	viper.SetDefault("RENDER_BASE_URL", "https://api.render.com/v1")

	viper.SetDefault("LOG_LEVEL", "debug")
	viper.SetDefault("LOG_FILE", "")
	viper.SetDefault("APP_ENV", "development")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Debug("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env): ", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if config.Webhook.Secret == "" && config.Render.ServiceID != "" {
		secrets, err := NewRenderClient(config).ListSecrets(config.Render.ServiceID)
		if err != nil {
			logrus.Error("Erro ao obter secrets do Render: ", err)
			return nil, err
		}
		config.Webhook.Secret = strings.TrimSpace(secrets[webhookSecretFile])
	}

	config.Database.DSN = buildDSN(config.Database)

	return config, nil
}

// buildDSN aceita tanto uma URL completa quanto host:porta/banco
func buildDSN(db Database) string {
	if !db.Configured() {
		return ""
	}

	if strings.Contains(db.URL, "://") {
		return db.URL
	}

	return fmt.Sprintf(
		"%s://%s:%s@%s",
		db.Driver,
		db.User,
		db.Password,
		db.URL,
	)
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de: ", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando apenas variáveis de ambiente")
}
