package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.test.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, "app:\n  env: test\n")

	conf, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:7700", conf.Meilisearch.Host)
	assert.Equal(t, "directus_memes", conf.Meilisearch.IndexName())
	assert.Equal(t, 8080, conf.Server.Http)
	assert.Equal(t, 100, conf.Outbox.BatchSize)
	assert.Equal(t, time.Second, conf.Outbox.PollInterval)
	assert.Equal(t, 5*time.Second, conf.Redis.LockTTL)
	assert.Equal(t, "memes_lifecycle", conf.RocketMQ.Topics.Lifecycle)
	assert.False(t, conf.RocketMQ.Enabled())
	assert.False(t, conf.Debug())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("MEILISEARCH_HOST", "http://search:7700")
	t.Setenv("MEILISEARCH_API_KEY", "master")
	t.Setenv("MEILISEARCH_INDEX_PREFIX", "prod_")
	t.Setenv("JWT_SECRET", "from-env")

	path := writeConfig(t, `
meilisearch:
  host: http://ignored:7700
  index_prefix: yaml_
  timeout: 3s
jwt:
  secret: from-yaml
outbox:
  poll_interval: 250ms
  max_attempts: 3
`)

	conf, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://search:7700", conf.Meilisearch.Host)
	assert.Equal(t, "master", conf.Meilisearch.ApiKey)
	assert.Equal(t, "prod_memes", conf.Meilisearch.IndexName())
	assert.Equal(t, 3*time.Second, conf.Meilisearch.Timeout)
	assert.Equal(t, "from-env", conf.Jwt.Secret)
	assert.Equal(t, 250*time.Millisecond, conf.Outbox.PollInterval)
	assert.Equal(t, 3, conf.Outbox.MaxAttempts)
}

func TestLoad_EmptyPrefixFromEnv(t *testing.T) {
	t.Setenv("MEILISEARCH_INDEX_PREFIX", "")

	conf, err := Load(writeConfig(t, "app:\n  env: test\n"))
	require.NoError(t, err)
	assert.Equal(t, "memes", conf.Meilisearch.IndexName())
}

func TestLoad_NodeID(t *testing.T) {
	conf, err := Load(writeConfig(t, "server:\n  node_id: 3\n"))
	require.NoError(t, err)
	require.NotNil(t, conf.Server.NodeID)
	assert.Equal(t, int64(3), *conf.Server.NodeID)

	t.Setenv("NODE_ID", "12")
	conf, err = Load(writeConfig(t, "server:\n  node_id: 3\n"))
	require.NoError(t, err)
	assert.Equal(t, int64(12), *conf.Server.NodeID)

	conf, err = Load(writeConfig(t, "app:\n  env: test\n"))
	require.NoError(t, err)
	assert.Equal(t, int64(12), *conf.Server.NodeID)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestMySQL_Dsn(t *testing.T) {
	m := &MySQL{Host: "db", Port: 3306, Username: "u", Password: "p", Database: "directus"}
	assert.Equal(t, "u:p@tcp(db:3306)/directus?charset=utf8mb4&parseTime=True&loc=Local", m.Dsn())
}
