package log

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorrelationID(t *testing.T) {
	ctx, id := WithCorrelationID(context.Background())

	require.NotEmpty(t, id)
	assert.Equal(t, id, GetCorrelationID(ctx))
	assert.Empty(t, GetCorrelationID(context.Background()))
}

func TestForContextWritesCorrelationID(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	SetupTestLogger()

	buf := captureOutput(t)

	ctx, id := WithCorrelationID(context.Background())
	ForContext(ctx).Info("mensagem")

	assert.Contains(t, buf.String(), id)
}

func TestDevelopmentDropsNoisyFields(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	SetupTestLogger()

	buf := captureOutput(t)

	L.WithFields(Fields{"path": "/v1/tasks", "user_agent": "curl", "user_id": "u-42"}).Info("req")

	assert.Contains(t, buf.String(), "/v1/tasks")
	assert.Contains(t, buf.String(), "user_id=u-42")
	assert.NotContains(t, buf.String(), "curl")
}

func TestConfigureWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api.log")
	captureOutput(t)

	Configure("nope", FileOptions{Path: path})

	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
	L.Info("gravado no arquivo")
	assert.FileExists(t, path)
}

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()

	original := logrus.StandardLogger().Out
	t.Cleanup(func() { logrus.SetOutput(original) })

	var buf bytes.Buffer
	logrus.SetOutput(&buf)
	return &buf
}
