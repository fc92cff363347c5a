package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "cfg.yaml")
	require.NoError(t, os.WriteFile(p, []byte(`
database:
  host: "localhost"
  port: 5432
  username: "u"
  password: "p"
  name: "db"
kafka:
  host: "localhost"
  port: 9092
  track_updated_topic_name: "track.updated"
redis:
  host: "localhost"
  port: 6379
silkway:
  http_addr: ":8080"
  kafka_consumer_group: "cargo-notifier"
  current_status_ttl_seconds: 600
  import_chunk_size: 50
  max_upload_mb: 200
`), 0o600))

	cfg, err := LoadConfig(p)
	require.NoError(t, err)
	require.Equal(t, "u", cfg.Database.Username)
	require.Equal(t, "track.updated", cfg.Kafka.TrackUpdatedTopicName)
	require.Equal(t, 6379, cfg.Redis.Port)
	require.Equal(t, ":8080", cfg.Silkway.HTTPAddr)
	require.Equal(t, 50, cfg.Silkway.ImportChunkSize)
	require.Equal(t, 200, cfg.Silkway.MaxUploadMB)
}

func TestLoadConfig_ConnString(t *testing.T) {
	cfg := &Config{}
	cfg.Database = DatabaseConfig{Host: "h", Port: 5432, Username: "u", Password: "p", DBName: "d"}
	require.Equal(t, "postgres://u:p@h:5432/d?sslmode=disable", cfg.ConnString())
}
