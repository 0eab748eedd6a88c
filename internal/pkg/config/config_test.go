package config

import (
	"context"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
	}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "HS256", cfg.Auth.JWTAlgorithm)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.AccessTokenTTL())
	assert.Equal(t, 5, cfg.Auth.LoginMaxAttempts)
	assert.Equal(t, 15*time.Minute, cfg.Auth.LoginWindow)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Empty(t, cfg.Mongo.URI)
	assert.Equal(t, 4, cfg.Audit.Workers)

	loc, err := cfg.Auth.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/Sao_Paulo", loc.String())
}

func TestLoadWith_Overrides(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":                  "s3cret",
		"ENV":                         "production",
		"ACCESS_TOKEN_EXPIRE_MINUTES": "30",
		"LOGIN_WINDOW":                "1h",
		"REDIS_ADDR":                  "redis:6379",
		"DB_MAX_OPEN_CONNS":           "25",
	}))
	require.NoError(t, err)

	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, 30*time.Minute, cfg.Auth.AccessTokenTTL())
	assert.Equal(t, time.Hour, cfg.Auth.LoginWindow)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
}

func TestLoadWith_Errors(t *testing.T) {
	cases := map[string]map[string]string{
		"missing secret":  {},
		"bad duration":    {"JWT_SECRET": "s", "LOGIN_WINDOW": "soon"},
		"zero token ttl":  {"JWT_SECRET": "s", "ACCESS_TOKEN_EXPIRE_MINUTES": "0"},
		"no attempts":     {"JWT_SECRET": "s", "LOGIN_MAX_ATTEMPTS": "0"},
		"non-numeric int": {"JWT_SECRET": "s", "REDIS_DB": "zero"},
	}

	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadWith(context.Background(), envconfig.MapLookuper(env))
			assert.Error(t, err)
		})
	}
}

func TestLocation_Unknown(t *testing.T) {
	_, err := AuthConfig{TokenTimeZone: "Mars/Olympus"}.Location()
	assert.Error(t, err)
}

func TestLoad_PanicsWithoutSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	assert.Panics(t, func() { Load() })
}
