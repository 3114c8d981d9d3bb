package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleConfig struct {
	Env struct {
		ServiceName string `yaml:"serviceName"`
	} `yaml:"env"`
	JWT JWTConfig `yaml:"jwt"`
}

func writeSampleConfig(t *testing.T, dir string) {
	t.Helper()

	content := []byte(`env:
  serviceName: identity
jwt:
  issuer: identity
  audience: healthcare
  accessTokenTTL: 30m
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sample.yaml"), content, 0o600))
}

func TestLoadWithEnv_ReadsYAML(t *testing.T) {
	dir := t.TempDir()
	writeSampleConfig(t, dir)
	t.Chdir(dir)

	cfg, err := LoadWithEnv[sampleConfig]("sample")
	require.NoError(t, err)

	assert.Equal(t, "identity", cfg.Env.ServiceName)
	assert.Equal(t, "healthcare", cfg.JWT.Audience)
	assert.Equal(t, 30*time.Minute, cfg.JWT.AccessTokenTTL)
}

func TestLoadWithEnv_EnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	writeSampleConfig(t, dir)
	t.Chdir(dir)
	t.Setenv("JWT_ISSUER", "override")
	t.Setenv("JWT_ACCESSTOKENTTL", "2h")

	cfg, err := LoadWithEnv[sampleConfig]("sample")
	require.NoError(t, err)

	assert.Equal(t, "override", cfg.JWT.Issuer)
	assert.Equal(t, 2*time.Hour, cfg.JWT.AccessTokenTTL)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadWithEnv[sampleConfig]("absent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "absent.yaml not found")
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, defaultAccessTokenTTL, cfg.JWT.AccessTokenTTL)
	require.NotNil(t, cfg.Auth)
	assert.Equal(t, defaultBcryptCost, cfg.Auth.BcryptCost)
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{Driver: DriverSQLite},
		JWT:      JWTConfig{AccessTokenTTL: time.Minute},
		Auth:     &AuthConfig{BcryptCost: 4},
	}
	applyDefaults(cfg)

	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, time.Minute, cfg.JWT.AccessTokenTTL)
	assert.Equal(t, 4, cfg.Auth.BcryptCost)
}
