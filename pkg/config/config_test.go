package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/jhoicas/inventory-health/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "America/Bogota", cfg.App.Timezone)
	assert.Equal(t, language.Spanish, cfg.App.Language())
	assert.Equal(t, 60*time.Second, cfg.Cache.TTL)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_VariablesDeEntorno(t *testing.T) {
	t.Setenv("APP_TIMEZONE", "UTC")
	t.Setenv("APP_LOCALE", "en-US")
	t.Setenv("CACHE_TTL_SECONDS", "5")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)

	loc, err := cfg.App.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
	assert.Equal(t, language.AmericanEnglish, cfg.App.Language())
	assert.Equal(t, 5*time.Second, cfg.Cache.TTL)
	assert.Equal(t, 9090, cfg.HTTP.Port)
}

func TestLoad_ProductionSinSecret_Falla(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := config.Load()
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestValidate_AcumulaErrores(t *testing.T) {
	cfg := config.Config{
		App:   config.AppConfig{Timezone: "Marte/Olympus"},
		HTTP:  config.HTTPConfig{Port: 0},
		Cache: config.CacheConfig{TTL: 0},
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, "APP_TIMEZONE")
	assert.ErrorContains(t, err, "HTTP_PORT")
	assert.ErrorContains(t, err, "CACHE_TTL_SECONDS")
}

func TestDSN_EscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss:w", DBName: "inv", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss%3Aw@db:5432/inv?sslmode=disable", c.DSN())
}
