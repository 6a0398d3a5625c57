package domain

import (
	"encoding/base64"
	"time"
)

// Overrides is a decoded override record. Values keep the types the decoder
// produced (float64, string, bool, []any, map[string]any for JSON).
type Overrides map[string]any

// Pass is one satellite pass shown on the timeline.
type Pass struct {
	SatelliteID    string `json:"sat"`
	TimestampLabel string `json:"t"`
	IncidenceAngle string `json:"ang"`
}

// Timestamp is the acquisition instant. When the source string could not be
// parsed, Valid is false and Raw is displayed unchanged.
type Timestamp struct {
	Time  time.Time
	Raw   string
	Valid bool
}

// Label formats the instant as "DD/MM/YYYY — HH:MM (<zone>)" in UTC. Invalid
// timestamps return the raw input.
func (t Timestamp) Label(zone string) string {
	if !t.Valid {
		return t.Raw
	}
	return t.Time.UTC().Format("02/01/2006 — 15:04") + " (" + zone + ")"
}

// AssetRef is an embeddable image. The zero value is the absent asset.
type AssetRef struct {
	Data      []byte
	MediaType string
	Source    string // file the bytes were read from, empty for inline refs
	Inline    string // data URI supplied verbatim by an override record
}

// Present reports whether the asset can be embedded.
func (a AssetRef) Present() bool {
	return a.Inline != "" || len(a.Data) > 0
}

// DataURI returns a self-contained data URI, or "" for the absent asset.
func (a AssetRef) DataURI() string {
	if a.Inline != "" {
		return a.Inline
	}
	if len(a.Data) == 0 {
		return ""
	}
	return "data:" + a.MediaType + ";base64," + base64.StdEncoding.EncodeToString(a.Data)
}

// Record is the fully resolved set of report fields.
type Record struct {
	Unit           string
	MeasuredAt     Timestamp
	LocalTimeLabel string
	ResolutionM    float64

	RateKgPerHour  float64
	UncertaintyPct float64

	SeaState        string
	Platform        string
	DetectedObjects []string

	FlareActive     bool
	PlumeDetected   bool
	PlumeIdentified bool

	WindDirectionDeg float64
	WindSpeedAvgMs   float64
	WindSpeedErrorMs float64

	ColorbarMaxPpb *float64

	Passes []Pass

	Figure    AssetRef
	FigureRGB AssetRef
	Logo      AssetRef
}

// Document is a rendered, self-contained report page.
type Document struct {
	ID          string
	Layout      string
	ContentType string
	GeneratedAt time.Time
	HTML        []byte
}
