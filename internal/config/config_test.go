package config

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig(t *testing.T, env map[string]string) *Config {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	for key, value := range env {
		t.Setenv(key, value)
	}

	cfg, err := NewConfig()
	require.NoError(t, err)
	return cfg
}

func TestNewConfigDefaults(t *testing.T) {
	cfg := newTestConfig(t, map[string]string{"DATABASE_URL": ""})

	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "localhost:8000", cfg.Server.Addr())
	assert.Equal(t, "demo1234", cfg.Demo.Password)
	assert.Equal(t, "0 4 * * *", cfg.DemoReset.CronSchedule)
	assert.Equal(t, []string{"*"}, cfg.Cors.AllowedOrigins)
	assert.Empty(t, cfg.Webhook.Secret)
	assert.Empty(t, cfg.Database.DSN)
	assert.True(t, cfg.DemoMode())
}

func TestNewConfigDatabase(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		wantDSN  string
		wantDemo bool
	}{
		{
			name: "host e banco",
			env: map[string]string{
				"DATABASE_URL":      "db:5432/opsboard?sslmode=disable",
				"DATABASE_USER":     "ops",
				"DATABASE_PASSWORD": "secret",
			},
			wantDSN: "postgres://ops:secret@db:5432/opsboard?sslmode=disable",
		},
		{
			name:    "url completa",
			env:     map[string]string{"DATABASE_URL": "postgresql://u:p@host/db"},
			wantDSN: "postgresql://u:p@host/db",
		},
		{
			name:     "demo forçado",
			env:      map[string]string{"DATABASE_URL": "db:5432/opsboard", "DEMO_MODE": "true"},
			wantDSN:  "postgres://postgres:root@db:5432/opsboard",
			wantDemo: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newTestConfig(t, tt.env)
			assert.Equal(t, tt.wantDSN, cfg.Database.DSN)
			assert.Equal(t, tt.wantDemo, cfg.DemoMode())
		})
	}
}

func TestNewConfigCorsOrigins(t *testing.T) {
	cfg := newTestConfig(t, map[string]string{
		"CORS_ALLOWED_ORIGINS": "https://app.example.com,https://admin.example.com",
	})

	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.Cors.AllowedOrigins)
}

func TestNewConfigWebhookSecretFromRender(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/services/srv-1/secret-files", r.URL.Path)
		assert.Equal(t, "Bearer rnd-key", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[{"secretFile":{"name":"webhook_secret","content":"s3cret\n"}}]`))
	}))
	defer server.Close()

	cfg := newTestConfig(t, map[string]string{
		"WEBHOOK_SECRET":    "",
		"RENDER_API_KEY":    "rnd-key",
		"RENDER_SERVICE_ID": "srv-1",
		"RENDER_BASE_URL":   server.URL,
	})

	assert.Equal(t, "s3cret", cfg.Webhook.Secret)
}

func TestRenderClientListSecretsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"unauthorized"}`))
	}))
	defer server.Close()

	client := NewRenderClient(&Config{Render: Render{APIKey: "x", BaseURL: server.URL}})
	_, err := client.ListSecrets("srv-1")
	assert.ErrorContains(t, err, "unauthorized")
}
