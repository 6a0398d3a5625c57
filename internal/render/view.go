package render

import (
	"strings"
	"time"

	"github.com/couchcryptid/methane-report-service/internal/domain"
)

// View is what slot providers read from. Fields holds display strings keyed
// by field name; optional fields are missing from the map when unset.
type View struct {
	Record      domain.Record
	Brand       domain.Brand
	ZoneLabel   string
	GeneratedAt time.Time
	Fields      map[string]string
}

// Display field names.
const (
	FieldUnit             = "unit"
	FieldMeasuredAt       = "measured_at"
	FieldLocalTime        = "local_time"
	FieldResolution       = "resolution_m"
	FieldRate             = "rate_kgch4_h"
	FieldUncertainty      = "uncertainty_pct"
	FieldSeaState         = "sea_state"
	FieldPlatform         = "platform"
	FieldDetectedObjects  = "detected_objects"
	FieldFlareActive      = "flare_active"
	FieldPlumeDetected    = "plume_detected"
	FieldPlumeIdentified  = "plume_identified"
	FieldWindDirection    = "wind_direction_deg"
	FieldWindSpeedAvg     = "wind_speed_avg_ms"
	FieldWindSpeedError   = "wind_speed_error_ms"
	FieldColorbarMax      = "colorbar_max_ppb"
	FieldGeneratedAt      = "generated_at"
	FieldYear             = "year"
	FieldAppName          = "app_name"
	FieldReportTitle      = "report_title"
	FieldFigureTitle      = "figure_title"
	FieldBadge            = "badge"
	FieldCopyright        = "copyright"
	FieldDisclaimer       = "disclaimer"
	FieldPassCount        = "pass_count"
	FieldMeasuredAtSource = "measured_at_raw"
)

// NewView derives the display fields for rec.
func NewView(rec domain.Record, brand domain.Brand, zoneLabel string, generatedAt time.Time) View {
	f := map[string]string{
		FieldUnit:             rec.Unit,
		FieldMeasuredAt:       rec.MeasuredAt.Label(zoneLabel),
		FieldMeasuredAtSource: rec.MeasuredAt.Raw,
		FieldLocalTime:        rec.LocalTimeLabel,
		FieldResolution:       domain.FormatNumber(rec.ResolutionM),
		FieldRate:             domain.FormatNumber(rec.RateKgPerHour),
		FieldUncertainty:      domain.FormatNumber(rec.UncertaintyPct),
		FieldSeaState:         rec.SeaState,
		FieldPlatform:         rec.Platform,
		FieldDetectedObjects:  strings.Join(rec.DetectedObjects, ", "),
		FieldFlareActive:      yesNo(rec.FlareActive),
		FieldPlumeDetected:    yesNo(rec.PlumeDetected),
		FieldPlumeIdentified:  yesNo(rec.PlumeIdentified),
		FieldWindDirection:    domain.FormatNumber(rec.WindDirectionDeg),
		FieldWindSpeedAvg:     domain.FormatNumber(rec.WindSpeedAvgMs),
		FieldWindSpeedError:   domain.FormatNumber(rec.WindSpeedErrorMs),
		FieldPassCount:        domain.FormatNumber(float64(len(rec.Passes))),
		FieldGeneratedAt:      generatedAt.UTC().Format(time.RFC3339),
		FieldYear:             generatedAt.UTC().Format("2006"),
		FieldAppName:          brand.AppName,
		FieldReportTitle:      brand.ReportTitle,
		FieldFigureTitle:      brand.FigureTitle,
		FieldBadge:            brand.Badge,
		FieldCopyright:        brand.Copyright,
		FieldDisclaimer:       brand.Disclaimer,
	}
	if rec.ColorbarMaxPpb != nil {
		f[FieldColorbarMax] = domain.FormatNumber(*rec.ColorbarMaxPpb)
	}
	return View{
		Record:      rec,
		Brand:       brand,
		ZoneLabel:   zoneLabel,
		GeneratedAt: generatedAt,
		Fields:      f,
	}
}

func yesNo(b bool) string {
	if b {
		return "Sim"
	}
	return "Não"
}
