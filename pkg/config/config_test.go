package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 800*time.Millisecond, cfg.Enrichment.StrategyDelay)
	assert.Equal(t, 1500*time.Millisecond, cfg.Enrichment.GeocodeDebounce)
	assert.Equal(t, "https://viacep.com.br", cfg.Enrichment.ViaCEPBaseURL)
	assert.Empty(t, cfg.Redis.URL)
	assert.True(t, cfg.DB.AutoMigrate)
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("HTTP_PORT", "9090")
	v.Set("GEOCODE_DEBOUNCE", "200")
	v.Set("SUPPLIER_DRAFT_TTL", "5m")
	v.Set("NOMINATIM_RPS", "2.5")
	v.Set("DB_AUTO_MIGRATE", "false")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 200*time.Millisecond, cfg.Enrichment.GeocodeDebounce)
	assert.Equal(t, 5*time.Minute, cfg.Enrichment.DraftTTL)
	assert.InDelta(t, 2.5, cfg.Enrichment.NominatimRPS, 0.0001)
	assert.False(t, cfg.DB.AutoMigrate)
}

func TestFromViper_ProductionRequiresSecret(t *testing.T) {
	v := viper.New()
	v.Set("APP_ENV", "production")

	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss", DBName: "eproc", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss@db:5432/eproc?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
