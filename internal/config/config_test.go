package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// No config file exists in this package directory, so these tests
// exercise the env-plus-defaults path of Load.

func TestLoad_EnvOnly(t *testing.T) {
	t.Setenv("APP_AIRTABLE_APIKEY", "pat-test-key")
	t.Setenv("APP_AIRTABLE_BASEID", "appTestBase")
	t.Setenv("APP_AUTH_JWTSECRET", "test-signing-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "pat-test-key", cfg.Airtable.ApiKey)
	assert.Equal(t, "appTestBase", cfg.Airtable.BaseID)
	assert.Equal(t, "test-signing-secret", cfg.Auth.JWTSecret)

	// defaults still apply around the env overrides
	assert.Equal(t, 4000, cfg.App.Port)
	assert.Equal(t, "Projects", cfg.Airtable.ProjectsTable)
}

func TestLoad_EnvOverridesDefault(t *testing.T) {
	t.Setenv("APP_AIRTABLE_APIKEY", "pat-test-key")
	t.Setenv("APP_AIRTABLE_BASEID", "appTestBase")
	t.Setenv("APP_AUTH_JWTSECRET", "test-signing-secret")
	t.Setenv("APP_APP_PORT", "8080")
	t.Setenv("APP_REDIS_ADDR", "redis:6379")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
}

func TestLoad_MissingSecretsFail(t *testing.T) {
	t.Setenv("APP_AIRTABLE_APIKEY", "")
	t.Setenv("APP_AIRTABLE_BASEID", "")
	t.Setenv("APP_AUTH_JWTSECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "airtable.apikey")
}
