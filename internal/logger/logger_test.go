package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupRejectsUnknownLevel(t *testing.T) {
	err := Setup(LogConfig{Level: "loud"})
	assert.Error(t, err)
}

func TestSetupWritesJSONToFile(t *testing.T) {
	t.Cleanup(func() {
		Discard()
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	})

	path := filepath.Join(t.TempDir(), "pms.log")
	require.NoError(t, Setup(LogConfig{Level: "info", Format: "json", Output: path}))

	l := WithComponent("accounting")
	l.Info().Str("lease_id", "L1").Msg("posted")
	log.Debug().Msg("below level")

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var line map[string]any
	require.NoError(t, json.Unmarshal(data, &line))
	assert.Equal(t, "accounting", line["component"])
	assert.Equal(t, "L1", line["lease_id"])
	assert.Equal(t, "posted", line["message"])
	assert.NotContains(t, string(data), "below level")
}
