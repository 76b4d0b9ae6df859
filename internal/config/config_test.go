package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "secret")

	_, err := Load("")
	require.ErrorContains(t, err, "DATABASE_URL")
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/campuslane")
	t.Setenv("JWT_SECRET", "")

	_, err := Load("")
	require.ErrorContains(t, err, "JWT_SECRET")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/campuslane")
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, 24*time.Hour, cfg.Auth.JWTExpiry)
	require.Equal(t, "development", cfg.Environment)
	require.True(t, cfg.CORS.AllowAllOrigins)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("server:\n  port: 9000\nenvironment: production\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	t.Setenv("DATABASE_URL", "postgres://localhost/campuslane")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("SERVER_PORT", "9100")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 9100, cfg.Server.Port)
	require.Equal(t, "production", cfg.Environment)
	require.False(t, cfg.CORS.AllowAllOrigins)
}

func TestLoadCORSOrigins(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/campuslane")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://campus.example.org, https://admin.example.org")

	cfg, err := Load("")
	require.NoError(t, err)
	require.False(t, cfg.CORS.AllowAllOrigins)
	require.Equal(t, []string{"https://campus.example.org", "https://admin.example.org"}, cfg.CORS.AllowedOrigins)
}
