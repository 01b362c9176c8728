package config_test

import (
	"testing"

	"github.com/alkime/podcasts/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir()) // no .env here

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "/", cfg.BasePath)
	assert.Equal(t, config.DefaultBaseOrigin, cfg.BaseOrigin)
	assert.Equal(t, []string{"http://localhost:8080"}, cfg.AllowedOrigins)
	assert.Equal(t, "relaxed", cfg.CSPMode)
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PODCAST_BASE_ORIGIN", "https://podcasts.example.com")
	t.Setenv("BASE_PATH", "/app")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com,https://b.example.com")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://podcasts.example.com", cfg.BaseOrigin)
	assert.Equal(t, "/app", cfg.BasePath)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AllowedOrigins)
}

func TestLoadConfig_InvalidOrigin(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PODCAST_BASE_ORIGIN", "localhost:5001")

	cfg, err := config.LoadConfig()
	assert.Nil(t, cfg)
	assert.ErrorContains(t, err, "scheme must be http or https")
}

func TestValidate_BasePath(t *testing.T) {
	cfg := &config.Config{BaseOrigin: config.DefaultBaseOrigin, BasePath: "app"}

	err := cfg.Validate()
	assert.ErrorContains(t, err, "BASE_PATH")
}

func TestValidateBaseOrigin(t *testing.T) {
	tests := []struct {
		origin  string
		wantErr string
	}{
		{origin: "http://localhost:5001"},
		{origin: "https://example.com"},
		{origin: "", wantErr: "required"},
		{origin: "ftp://example.com", wantErr: "scheme"},
		{origin: "http://", wantErr: "missing host"},
	}

	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			err := config.ValidateBaseOrigin(tt.origin)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestBuildCSP(t *testing.T) {
	relaxed := config.BuildCSP("relaxed", "http://localhost:5001/")
	assert.Contains(t, relaxed, "media-src 'self' http://localhost:5001")
	assert.Contains(t, relaxed, "'unsafe-inline'")

	strict := config.BuildCSP("strict", "http://localhost:5001")
	assert.Contains(t, strict, "object-src 'none'")
	assert.Contains(t, strict, "media-src 'self' http://localhost:5001;")
	assert.NotContains(t, strict, "script-src 'self' 'unsafe-inline'")
}
