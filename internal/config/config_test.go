package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "pmsledger.db", cfg.Database.Path)
	assert.Equal(t, ":8888", cfg.Server.Addr)
	assert.Equal(t, "system", cfg.Server.DefaultActor)
	assert.Equal(t, 12, cfg.Charges.MaxCatchUpPeriods)
	assert.Empty(t, cfg.Kafka.Brokers)
	require.NoError(t, cfg.Validate())
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Charges.MaxCatchUpPeriods)
}

func TestRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Database.Path = "/var/lib/pms/ledger.db"
	cfg.Kafka.Brokers = []string{"kafka-1:9092", "kafka-2:9092"}
	cfg.Charges.MaxCatchUpPeriods = 3

	path := filepath.Join(t.TempDir(), "pmsledger.yaml")
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/pms/ledger.db", got.Database.Path)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, got.Kafka.Brokers)
	assert.Equal(t, 3, got.Charges.MaxCatchUpPeriods)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pmsledger.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database:\n  path: from-file.db\n"), 0o644))

	t.Setenv("PMS_DB", "from-env.db")
	t.Setenv("PMS_KAFKA_BROKERS", "a:9092, b:9092")
	t.Setenv("PMS_MAX_CATCH_UP", "6")
	t.Setenv("PMS_ACTOR", "nightly-job")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env.db", cfg.Database.Path)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 6, cfg.Charges.MaxCatchUpPeriods)
	assert.Equal(t, "nightly-job", cfg.Server.DefaultActor)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("PMS_MAX_CATCH_UP", "lots")
	_, err := Load("")
	require.Error(t, err)

	t.Setenv("PMS_MAX_CATCH_UP", "-1")
	_, err = Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_catch_up_periods")
}

func TestLoadParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database: [unclosed"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}
