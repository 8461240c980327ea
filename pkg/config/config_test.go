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
	assert.Equal(t, "production-portal", cfg.App.Name)
	assert.True(t, cfg.ERP.ReadOnly)
	assert.False(t, cfg.DB.ReadOnly)
	assert.Equal(t, 10, cfg.ERP.MaxConns)
	assert.Equal(t, 5, cfg.DB.MaxConns)
	assert.Equal(t, 5432, cfg.ERP.Port)
	assert.False(t, cfg.MRP.AllocateFinishedGoods)
	assert.Equal(t, 60*time.Second, cfg.MRP.FetchTimeout)
	assert.Equal(t, "T", cfg.MRP.FGPartPrefix)
	assert.Equal(t, []string{"DUARTE", "IRWINDALE"}, cfg.MRP.Warehouses)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("MRP_ALLOCATE_FINISHED_GOODS", "true")
	v.Set("MRP_FETCH_TIMEOUT_SECONDS", "15")
	v.Set("MRP_WAREHOUSES", " duarte , ,pomona")
	v.Set("ERP_DB_PORT", "1433")
	v.Set("LOG_LEVEL", "DEBUG")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.True(t, cfg.MRP.AllocateFinishedGoods)
	assert.Equal(t, 15*time.Second, cfg.MRP.FetchTimeout)
	assert.Equal(t, []string{"DUARTE", "POMONA"}, cfg.MRP.Warehouses)
	assert.Equal(t, 1433, cfg.ERP.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestFromViper_Invalido(t *testing.T) {
	v := viper.New()
	v.Set("MRP_FETCH_TIMEOUT_SECONDS", "0")
	_, err := fromViper(v)
	assert.Error(t, err)

	v = viper.New()
	v.Set("APP_ENV", "production")
	_, err = fromViper(v)
	assert.Error(t, err, "production sin JWT_SECRET")
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss", DBName: "erp", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss@db:5432/erp?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
