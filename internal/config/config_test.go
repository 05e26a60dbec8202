package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
server:
  port: 9000
  env: production
  cors_origins: ["https://tujitume.app"]
database:
  url: postgres://localhost/tujitume
auth:
  provider: hmac
  jwt_secret: from-file
`

func clearEnv(t *testing.T) {
	for _, key := range []string{"SERVER_ENV", "SERVER_PORT", "JWT_SECRET", "FIREBASE_PROJECT_ID",
		"FIREBASE_SERVICE_ACCOUNT_JSON", "FIREBASE_SERVICE_ACCOUNT_PATH", "SMTP_PASSWORD"} {
		t.Setenv(key, "")
	}
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "postgres://localhost/tujitume", cfg.Database.DSN)
	assert.Equal(t, "from-file", cfg.Auth.JWTSecret)
	assert.False(t, cfg.IsDevelopment())

	t.Run("env overrides secrets", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "from-env")
		cfg, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	})
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://env/db")
	t.Setenv("CORS_ORIGINS", "http://a.local, http://b.local,")
	t.Setenv("SERVER_PORT", "not-a-number")
	t.Setenv("EMAIL_ENABLED", "true")

	cfg := FromEnv()
	assert.Equal(t, "postgres://env/db", cfg.Database.DSN)
	assert.Equal(t, []string{"http://a.local", "http://b.local"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 0, cfg.Server.Port)
	assert.True(t, cfg.Email.Enabled)
}

func TestDefaultsAndValidate(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "firebase", cfg.Auth.Provider)
	assert.Equal(t, 30, cfg.Workers.NotificationRetentionDays)
	assert.True(t, cfg.IsDevelopment())

	assert.EqualError(t, cfg.Validate(), "database url is required")

	cfg.Database.DSN = "postgres://x"
	assert.NoError(t, cfg.Validate())

	cfg.Auth.Provider = "hmac"
	assert.Error(t, cfg.Validate(), "hmac требует секрет")
	cfg.Auth.JWTSecret = "s"
	assert.NoError(t, cfg.Validate())

	cfg.Email.Enabled = true
	assert.Error(t, cfg.Validate())

	cfg.Auth.Provider = "ldap"
	assert.Error(t, cfg.Validate())
}

func TestValidate_WorkerIntervals(t *testing.T) {
	tests := []struct {
		name      string
		interval  int
		retention int
		wantErr   string
	}{
		{name: "defaults", interval: 60, retention: 30},
		{name: "zero interval", interval: 0, retention: 30, wantErr: "cleanup_interval_minutes"},
		{name: "negative interval", interval: -5, retention: 30, wantErr: "cleanup_interval_minutes"},
		{name: "negative retention", interval: 60, retention: -1, wantErr: "notification_retention_days"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.applyDefaults()
			cfg.Database.DSN = "postgres://x"
			cfg.Workers.CleanupIntervalMinutes = tt.interval
			cfg.Workers.NotificationRetentionDays = tt.retention

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
