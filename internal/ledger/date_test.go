package ledger

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDateJSON(t *testing.T) {
	type payload struct {
		Date Date `json:"date"`
	}
	b, err := json.Marshal(payload{Date: NewDate(2026, time.March, 1)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2026-03-01"}`, string(b))

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"date":"2026-02-28"}`), &p))
	assert.Equal(t, "2026-02-28", p.Date.String())

	require.NoError(t, json.Unmarshal([]byte(`{"date":null}`), &p))
	assert.True(t, p.Date.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`{"date":"03/01/2026"}`), &p))
}

func TestDateYAML(t *testing.T) {
	var v struct {
		Start Date `yaml:"start"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("start: 2026-01-15\n"), &v))
	assert.Equal(t, "2026-01-15", v.Start.String())
}

func TestDaysSince(t *testing.T) {
	assert.Equal(t, 45, MustParseDate("2026-02-15").DaysSince(MustParseDate("2026-01-01")))
	assert.Equal(t, 0, MustParseDate("2026-02-15").DaysSince(MustParseDate("2026-02-15")))
}

func TestDateOfDropsTimeOfDay(t *testing.T) {
	d := DateOf(time.Date(2026, 3, 1, 23, 59, 0, 0, time.UTC))
	assert.True(t, d.Equal(NewDate(2026, 3, 1)))
}
