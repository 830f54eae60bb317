package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_YAMLThenEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte(`
app:
  port: "9090"
db:
  dsn: postgres://yaml
auth:
  jwt_secret: from-yaml
  token_lifespan: 30m
cloudinary:
  cloud_name: demo
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600))

	t.Setenv("DB_DSN", "postgres://env")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "postgres://env", cfg.DB.DSN, "env wins over yaml")
	assert.Equal(t, "from-yaml", cfg.Auth.JWTSecret)
	assert.Equal(t, 30*time.Minute, cfg.Auth.TokenLifespan)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "resumes", cfg.Cloudinary.Folder)
}

func TestConfig_Validate(t *testing.T) {
	var cfg Config
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_DSN")
	assert.Contains(t, err.Error(), "JWT_SECRET")
	assert.Contains(t, err.Error(), "cloudinary")

	cfg.DB.DSN = "postgres://x"
	cfg.Auth.JWTSecret = "s"
	cfg.Redis.Addr = "localhost:6379"
	cfg.Cloudinary.CloudName = "demo"
	cfg.Cloudinary.ApiKey = "key"
	cfg.Cloudinary.ApiSecret = "secret"
	assert.NoError(t, cfg.Validate())
}
