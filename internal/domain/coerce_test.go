package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsTruthyToken(t *testing.T) {
	for _, s := range []string{"1", "true", "TRUE", "True", "sim", "SIM", "Sim", "yes", "YES", "y", "Y", "on", "ON", " sim "} {
		assert.True(t, IsTruthyToken(s), "expected %q to be truthy", s)
	}
	for _, s := range []string{"", "0", "false", "não", "nao", "no", "off", "2", "verdadeiro", "t"} {
		assert.False(t, IsTruthyToken(s), "expected %q to be falsy", s)
	}
}

func TestCoerceBool(t *testing.T) {
	assert.True(t, CoerceBool(true))
	assert.False(t, CoerceBool(false))
	assert.True(t, CoerceBool("Sim"))
	assert.False(t, CoerceBool("não"))
	assert.True(t, CoerceBool(float64(1)))
	assert.True(t, CoerceBool(1))
	assert.False(t, CoerceBool(float64(0)))
	assert.False(t, CoerceBool(float64(2)))
	assert.False(t, CoerceBool([]any{"sim"}))
	assert.False(t, CoerceBool(map[string]any{}))
}

func TestCoerceNumber(t *testing.T) {
	f, ok := CoerceNumber(float64(245))
	assert.True(t, ok)
	assert.InDelta(t, 245.0, f, 1e-9)

	f, ok = CoerceNumber(12)
	assert.True(t, ok)
	assert.InDelta(t, 12.0, f, 1e-9)

	f, ok = CoerceNumber(json.Number("3.5"))
	assert.True(t, ok)
	assert.InDelta(t, 3.5, f, 1e-9)

	_, ok = CoerceNumber("245")
	assert.False(t, ok, "numeric strings are not coerced")

	_, ok = CoerceNumber(true)
	assert.False(t, ok)

	_, ok = CoerceNumber(json.Number("abc"))
	assert.False(t, ok)
}

func TestCoerceString(t *testing.T) {
	s, ok := CoerceString("Macaé")
	assert.True(t, ok)
	assert.Equal(t, "Macaé", s)

	s, ok = CoerceString(float64(180))
	assert.True(t, ok)
	assert.Equal(t, "180", s)

	s, ok = CoerceString(5.2)
	assert.True(t, ok)
	assert.Equal(t, "5.2", s)

	s, ok = CoerceString(true)
	assert.True(t, ok)
	assert.Equal(t, "true", s)

	_, ok = CoerceString(nil)
	assert.False(t, ok)
}

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2025, time.April, 29, 10, 36, 0, 0, time.UTC)

	cases := []struct {
		name string
		raw  string
		want time.Time
	}{
		{name: "utc designator", raw: "2025-04-29T10:36:00Z", want: want},
		{name: "fractional seconds", raw: "2025-04-29T10:36:00.250Z", want: want.Add(250 * time.Millisecond)},
		{name: "offset", raw: "2025-04-29T07:36:00-03:00", want: want},
		{name: "no seconds with offset", raw: "2025-04-29T07:36-03:00", want: want},
		{name: "naive", raw: "2025-04-29T10:36:00", want: want},
		{name: "naive no seconds", raw: "2025-04-29T10:36", want: want},
		{name: "space separator", raw: "2025-04-29 10:36:00", want: want},
		{name: "date only", raw: "2025-04-29", want: time.Date(2025, time.April, 29, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ts := ParseTimestamp(tc.raw)
			assert.True(t, ts.Valid)
			assert.True(t, tc.want.Equal(ts.Time), "got %s", ts.Time)
			assert.Equal(t, tc.raw, ts.Raw)
		})
	}

	t.Run("malformed keeps raw", func(t *testing.T) {
		ts := ParseTimestamp("29 de abril, manhã")
		assert.False(t, ts.Valid)
		assert.Equal(t, "29 de abril, manhã", ts.Label("UTC"))
	})
}

func TestTimestampLabel(t *testing.T) {
	ts := ParseTimestamp("2025-04-29T07:36:00-03:00")
	assert.Equal(t, "29/04/2025 — 10:36 (Hora Local)", ts.Label("Hora Local"))
	assert.Equal(t, "29/04/2025 — 10:36 (UTC)", ts.Label("UTC"))
}
