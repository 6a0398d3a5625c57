package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, s string) Overrides {
	t.Helper()
	var o Overrides
	require.NoError(t, json.Unmarshal([]byte(s), &o))
	return o
}

func TestResolve_EmptyOverridesKeepsDefaults(t *testing.T) {
	got := Resolve(DefaultRecord(), nil)
	if diff := cmp.Diff(DefaultRecord(), got); diff != "" {
		t.Fatalf("resolved record mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_MissingKeysKeepDefaults(t *testing.T) {
	defaults := DefaultRecord()
	got := Resolve(defaults, decode(t, `{"unidade":"Macaé"}`))

	assert.Equal(t, "Macaé", got.Unit)

	got.Unit = defaults.Unit
	if diff := cmp.Diff(defaults, got); diff != "" {
		t.Fatalf("untouched fields changed (-want +got):\n%s", diff)
	}
}

func TestResolve_RateAndFlare(t *testing.T) {
	got := Resolve(DefaultRecord(), decode(t, `{"taxa_kgch4_h": 245, "flare_ativo": "não"}`))
	assert.InDelta(t, 245.0, got.RateKgPerHour, 1e-9)
	assert.False(t, got.FlareActive)
}

func TestResolve_BooleanTokensAppliedToEveryBoolField(t *testing.T) {
	keys := []string{KeyFlareActive, KeyPlumeDetected, KeyPlumeIdentified}
	for _, key := range keys {
		t.Run(key, func(t *testing.T) {
			defaults := DefaultRecord()
			defaults.FlareActive, defaults.PlumeDetected, defaults.PlumeIdentified = false, false, false

			for _, token := range []string{"1", "TRUE", "Sim", "yes", "Y", "On"} {
				got := Resolve(defaults, Overrides{key: token})
				assert.True(t, boolField(got, key), "token %q", token)
			}

			defaults.FlareActive, defaults.PlumeDetected, defaults.PlumeIdentified = true, true, true
			for _, token := range []string{"não", "0", "false", "nope", ""} {
				got := Resolve(defaults, Overrides{key: token})
				assert.False(t, boolField(got, key), "token %q", token)
			}
		})
	}
}

func boolField(r Record, key string) bool {
	switch key {
	case KeyFlareActive:
		return r.FlareActive
	case KeyPlumeDetected:
		return r.PlumeDetected
	default:
		return r.PlumeIdentified
	}
}

func TestResolve_NumericStringsKeepDefault(t *testing.T) {
	got := Resolve(DefaultRecord(), decode(t, `{"taxa_kgch4_h": "245", "incerteza_pct": [5]}`))
	assert.InDelta(t, 180.0, got.RateKgPerHour, 1e-9)
	assert.InDelta(t, 5.0, got.UncertaintyPct, 1e-9)
}

func TestResolve_UncertaintyNotRangeChecked(t *testing.T) {
	got := Resolve(DefaultRecord(), decode(t, `{"incerteza_pct": -12.5}`))
	assert.InDelta(t, -12.5, got.UncertaintyPct, 1e-9)
}

func TestResolve_NullKeepsDefault(t *testing.T) {
	got := Resolve(DefaultRecord(), decode(t, `{"unidade": null, "flare_ativo": null}`))
	assert.Equal(t, "Rio de Janeiro", got.Unit)
	assert.True(t, got.FlareActive)
}

func TestResolve_StringFieldsStringified(t *testing.T) {
	got := Resolve(DefaultRecord(), decode(t, `{"plataforma": 42, "estado_mar": true}`))
	assert.Equal(t, "42", got.Platform)
	assert.Equal(t, "true", got.SeaState)
}

func TestResolve_Timestamp(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		got := Resolve(DefaultRecord(), decode(t, `{"data_medicao": "2025-05-02T13:05:00Z"}`))
		assert.True(t, got.MeasuredAt.Valid)
		assert.Equal(t, "02/05/2025 — 13:05 (UTC)", got.MeasuredAt.Label("UTC"))
	})
	t.Run("malformed falls back to raw", func(t *testing.T) {
		got := Resolve(DefaultRecord(), decode(t, `{"data_medicao": "ontem às 10h"}`))
		assert.False(t, got.MeasuredAt.Valid)
		assert.Equal(t, "ontem às 10h", got.MeasuredAt.Label("UTC"))
	})
	t.Run("empty keeps default", func(t *testing.T) {
		got := Resolve(DefaultRecord(), decode(t, `{"data_medicao": ""}`))
		assert.Equal(t, DefaultRecord().MeasuredAt, got.MeasuredAt)
	})
	t.Run("non-string displayed as given", func(t *testing.T) {
		got := Resolve(DefaultRecord(), decode(t, `{"data_medicao": 20250429}`))
		assert.False(t, got.MeasuredAt.Valid)
		assert.Equal(t, "20250429", got.MeasuredAt.Label("UTC"))

		got = Resolve(DefaultRecord(), decode(t, `{"data_medicao": true}`))
		assert.Equal(t, "true", got.MeasuredAt.Label("UTC"))
	})
	t.Run("time value used directly", func(t *testing.T) {
		at := time.Date(2025, time.June, 1, 8, 0, 0, 0, time.UTC)
		got := Resolve(DefaultRecord(), Overrides{KeyMeasuredAt: at})
		assert.True(t, got.MeasuredAt.Valid)
		assert.Equal(t, "2025-06-01T08:00:00Z", got.MeasuredAt.Raw)
		assert.Equal(t, "01/06/2025 — 08:00 (UTC)", got.MeasuredAt.Label("UTC"))
	})
}

func TestResolve_LocalTimeIndependentOfTimestamp(t *testing.T) {
	got := Resolve(DefaultRecord(), decode(t, `{"data_medicao": "2025-05-02T13:05:00Z"}`))
	assert.Equal(t, "10h36", got.LocalTimeLabel)
}

func TestResolve_PassesReplacedWholesale(t *testing.T) {
	got := Resolve(DefaultRecord(), decode(t, `{"passes": [{"sat":"X1","t":"01/01/2025","ang":"10°"}]}`))
	require.Len(t, got.Passes, 1)
	assert.Equal(t, Pass{SatelliteID: "X1", TimestampLabel: "01/01/2025", IncidenceAngle: "10°"}, got.Passes[0])
}

func TestResolve_PassesPreserveOrder(t *testing.T) {
	got := Resolve(DefaultRecord(), decode(t, `{"passes": [
		{"sat":"C","t":"3","ang":"30°"},
		{"sat":"A","t":"1","ang":"10°"},
		{"sat":"B"}
	]}`))
	want := []Pass{
		{SatelliteID: "C", TimestampLabel: "3", IncidenceAngle: "30°"},
		{SatelliteID: "A", TimestampLabel: "1", IncidenceAngle: "10°"},
		{SatelliteID: "B"},
	}
	if diff := cmp.Diff(want, got.Passes); diff != "" {
		t.Fatalf("passes mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_EmptySequenceReplaces(t *testing.T) {
	got := Resolve(DefaultRecord(), decode(t, `{"passes": [], "objetos_detectados": []}`))
	assert.Empty(t, got.Passes)
	assert.Empty(t, got.DetectedObjects)
}

func TestResolve_NonSequenceKeepsDefault(t *testing.T) {
	got := Resolve(DefaultRecord(), decode(t, `{"objetos_detectados": "Flare", "passes": {"sat":"X"}}`))
	assert.Equal(t, []string{"Equipamentos Auxiliares"}, got.DetectedObjects)
	assert.Len(t, got.Passes, 3)
}

func TestResolve_ColorbarOptional(t *testing.T) {
	assert.Nil(t, Resolve(DefaultRecord(), nil).ColorbarMaxPpb)

	got := Resolve(DefaultRecord(), decode(t, `{"colorbar_max_ppb": 1500}`))
	require.NotNil(t, got.ColorbarMaxPpb)
	assert.InDelta(t, 1500.0, *got.ColorbarMaxPpb, 1e-9)
}

func TestResolve_UnknownKeysIgnored(t *testing.T) {
	got := Resolve(DefaultRecord(), decode(t, `{"operador": "Equipe B", "nivel": 3}`))
	if diff := cmp.Diff(DefaultRecord(), got); diff != "" {
		t.Fatalf("unknown keys changed the record (-want +got):\n%s", diff)
	}
}

func TestResolve_DoesNotAliasDefaults(t *testing.T) {
	defaults := DefaultRecord()
	got := Resolve(defaults, nil)
	got.Passes[0].SatelliteID = "changed"
	got.DetectedObjects[0] = "changed"
	assert.Equal(t, "GHGSat-C10", defaults.Passes[0].SatelliteID)
	assert.Equal(t, "Equipamentos Auxiliares", defaults.DetectedObjects[0])
}

func TestResolve_Deterministic(t *testing.T) {
	o := decode(t, `{"unidade":"Búzios","taxa_kgch4_h":12.5,"passes":[{"sat":"S"}]}`)
	assert.Equal(t, Resolve(DefaultRecord(), o), Resolve(DefaultRecord(), o))
}

func TestProfileDefaultRecord(t *testing.T) {
	p := DefaultProfile()
	p.Defaults = Overrides{KeyUnit: "Campos", KeyRate: 99}
	rec := p.DefaultRecord()
	assert.Equal(t, "Campos", rec.Unit)
	assert.InDelta(t, 99.0, rec.RateKgPerHour, 1e-9)
	assert.Equal(t, "FPSO", rec.Platform)
}
