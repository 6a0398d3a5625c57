package domain

import "time"

// Resolve merges an override record into defaults field by field. It is pure:
// the result shares no slices or pointers with its inputs.
//
// A key that is missing, null, or of the wrong type keeps its default. The
// acquisition timestamp is the exception: any value that fails to parse is
// kept, stringified, as the display value instead of falling back. A
// time.Time, as YAML decodes unquoted timestamps, is used directly.
func Resolve(defaults Record, overrides Overrides) Record {
	rec := defaults
	rec.DetectedObjects = append([]string(nil), defaults.DetectedObjects...)
	rec.Passes = append([]Pass(nil), defaults.Passes...)
	if defaults.ColorbarMaxPpb != nil {
		v := *defaults.ColorbarMaxPpb
		rec.ColorbarMaxPpb = &v
	}

	if len(overrides) == 0 {
		return rec
	}

	resolveString(overrides, KeyUnit, &rec.Unit)
	resolveString(overrides, KeyLocalTime, &rec.LocalTimeLabel)
	resolveString(overrides, KeySeaState, &rec.SeaState)
	resolveString(overrides, KeyPlatform, &rec.Platform)

	resolveNumber(overrides, KeyResolution, &rec.ResolutionM)
	resolveNumber(overrides, KeyRate, &rec.RateKgPerHour)
	resolveNumber(overrides, KeyUncertainty, &rec.UncertaintyPct)
	resolveNumber(overrides, KeyWindDirection, &rec.WindDirectionDeg)
	resolveNumber(overrides, KeyWindSpeedAvg, &rec.WindSpeedAvgMs)
	resolveNumber(overrides, KeyWindSpeedError, &rec.WindSpeedErrorMs)

	if v, ok := lookup(overrides, KeyColorbarMax); ok {
		if f, ok := CoerceNumber(v); ok {
			rec.ColorbarMaxPpb = &f
		}
	}

	resolveBool(overrides, KeyFlareActive, &rec.FlareActive)
	resolveBool(overrides, KeyPlumeDetected, &rec.PlumeDetected)
	resolveBool(overrides, KeyPlumeIdentified, &rec.PlumeIdentified)

	if v, ok := lookup(overrides, KeyMeasuredAt); ok {
		if t, ok := v.(time.Time); ok {
			rec.MeasuredAt = Timestamp{Time: t, Raw: t.Format(time.RFC3339), Valid: true}
		} else if s, ok := CoerceString(v); ok && s != "" {
			rec.MeasuredAt = ParseTimestamp(s)
		}
	}

	if v, ok := lookup(overrides, KeyDetectedObjects); ok {
		if objs, ok := coerceStrings(v); ok {
			rec.DetectedObjects = objs
		}
	}
	if v, ok := lookup(overrides, KeyPasses); ok {
		if passes, ok := coercePasses(v); ok {
			rec.Passes = passes
		}
	}

	return rec
}

// lookup treats a null value the same as a missing key.
func lookup(o Overrides, key string) (any, bool) {
	v, ok := o[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func resolveString(o Overrides, key string, dst *string) {
	if v, ok := lookup(o, key); ok {
		if s, ok := CoerceString(v); ok {
			*dst = s
		}
	}
}

func resolveNumber(o Overrides, key string, dst *float64) {
	if v, ok := lookup(o, key); ok {
		if f, ok := CoerceNumber(v); ok {
			*dst = f
		}
	}
}

func resolveBool(o Overrides, key string, dst *bool) {
	if v, ok := lookup(o, key); ok {
		*dst = CoerceBool(v)
	}
}
