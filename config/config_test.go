package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("VENTURELINK_CONFIG", "")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "local", cfg.Backend)
	assert.Equal(t, "demo", cfg.TokenMode)
	assert.Equal(t, 7*24*time.Hour, cfg.TokenTTL)
	assert.True(t, cfg.SeedDemoData)
	assert.False(t, cfg.MailEnabled())
}

func TestLoadYAMLThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "venturelink.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "9000"
backend: memory
token_mode: jwt
jwt_secret: from-yaml
token_ttl: 2h
cors_origins: ["https://app.example.com"]
`), 0o600))

	t.Setenv("PORT", "9100")
	t.Setenv("SEED_DEMO_DATA", "false")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9100", cfg.Port, "env wins over yaml")
	assert.Equal(t, "memory", cfg.Backend)
	assert.Equal(t, "from-yaml", cfg.JWTSecret)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.False(t, cfg.SeedDemoData)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSOrigins)
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown backend":    {"STORE_BACKEND": "redis"},
		"jwt without secret": {"TOKEN_MODE": "jwt", "JWT_SECRET": ""},
		"s3 without bucket":  {"DOCUMENT_STORAGE": "s3", "S3_BUCKET_NAME": ""},
		"postgres no url":    {"STORE_BACKEND": "postgres", "DATABASE_URL": ""},
		"bad ttl":            {"TOKEN_TTL": "forever"},
		"bad seed flag":      {"SEED_DEMO_DATA": "maybe"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("VENTURELINK_CONFIG", "")
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			assert.Error(t, err)
		})
	}
}

func TestNewLogger(t *testing.T) {
	log, err := NewLogger("warn", false)
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(-1))

	log, err = NewLogger("warn", true)
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(-1), "verbose forces debug")

	_, err = NewLogger("loud", false)
	assert.Error(t, err)
}
