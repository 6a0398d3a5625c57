package render

import (
	"encoding/json"
	"html/template"

	"github.com/couchcryptid/methane-report-service/internal/domain"
)

// Provider produces a slot value from a view. It returns false when the
// view does not carry what the slot needs.
type Provider func(View) (any, bool)

// Slots maps slot names to providers.
type Slots map[string]Provider

// Row is one label/value line of a metrics table.
type Row struct {
	Label string
	Value string
}

// AssetView is the template-facing form of an asset.
type AssetView struct {
	Present bool
	Src     template.URL
	Alt     string
	Role    string
}

// Field provides the display string stored under name.
func Field(name string) Provider {
	return func(v View) (any, bool) {
		s, ok := v.Fields[name]
		return s, ok
	}
}

// Rows provides a table fragment.
func Rows(build func(View) []Row) Provider {
	return func(v View) (any, bool) {
		return build(v), true
	}
}

// Asset provides an image selected from the record. An absent asset still
// fills the slot; templates show a placeholder for it.
func Asset(role, alt string, pick func(domain.Record) domain.AssetRef) Provider {
	return func(v View) (any, bool) {
		ref := pick(v.Record)
		return AssetView{
			Present: ref.Present(),
			Src:     template.URL(ref.DataURI()), //nolint:gosec // data URI built from local bytes or a data:image/ override
			Alt:     alt,
			Role:    role,
		}, true
	}
}

// JSON provides v marshaled for embedding in a script element.
func JSON(pick func(View) any) Provider {
	return func(v View) (any, bool) {
		b, err := json.Marshal(pick(v))
		if err != nil {
			return nil, false
		}
		return template.JS(b), true //nolint:gosec // output of json.Marshal
	}
}

// Slot names used by the standard layouts.
const (
	SlotLogo            = "logo"
	SlotFigure          = "figure"
	SlotFigureRGB       = "figure_rgb"
	SlotAcquisitionRows = "acquisition_rows"
	SlotSWIRRows        = "swir_rows"
	SlotRGBRows         = "rgb_rows"
	SlotMeteorologyRows = "met_rows"
	SlotPasses          = "passes"
	SlotPassesJSON      = "passes_json"
)

// DefaultSlots returns a fresh provider set covering every display field plus
// the tables, assets and passes used by the standard layouts.
func DefaultSlots() Slots {
	s := Slots{
		SlotLogo:            Asset(SlotLogo, "DAP ATLAS", func(r domain.Record) domain.AssetRef { return r.Logo }),
		SlotFigure:          Asset(SlotFigure, "figura", func(r domain.Record) domain.AssetRef { return r.Figure }),
		SlotFigureRGB:       Asset(SlotFigureRGB, "figura RGB", func(r domain.Record) domain.AssetRef { return r.FigureRGB }),
		SlotAcquisitionRows: Rows(AcquisitionRows),
		SlotSWIRRows:        Rows(SWIRRows),
		SlotRGBRows:         Rows(RGBRows),
		SlotMeteorologyRows: Rows(MeteorologyRows),
		SlotPasses: func(v View) (any, bool) {
			return v.Record.Passes, true
		},
		SlotPassesJSON: JSON(func(v View) any {
			if v.Record.Passes == nil {
				return []domain.Pass{}
			}
			return v.Record.Passes
		}),
	}
	for _, name := range []string{
		FieldUnit, FieldMeasuredAt, FieldMeasuredAtSource, FieldLocalTime, FieldResolution,
		FieldRate, FieldUncertainty, FieldSeaState, FieldPlatform, FieldDetectedObjects,
		FieldFlareActive, FieldPlumeDetected, FieldPlumeIdentified, FieldWindDirection,
		FieldWindSpeedAvg, FieldWindSpeedError, FieldColorbarMax, FieldPassCount,
		FieldGeneratedAt, FieldYear, FieldAppName, FieldReportTitle, FieldFigureTitle,
		FieldBadge, FieldCopyright, FieldDisclaimer,
	} {
		s[name] = Field(name)
	}
	return s
}
