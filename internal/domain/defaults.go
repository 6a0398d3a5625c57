package domain

import "time"

// Override record keys.
const (
	KeyUnit            = "unidade"
	KeyMeasuredAt      = "data_medicao"
	KeyLocalTime       = "hora_local"
	KeyResolution      = "resolucao_m"
	KeyRate            = "taxa_kgch4_h"
	KeyUncertainty     = "incerteza_pct"
	KeySeaState        = "estado_mar"
	KeyPlatform        = "plataforma"
	KeyDetectedObjects = "objetos_detectados"
	KeyFlareActive     = "flare_ativo"
	KeyPlumeDetected   = "detec_pluma"
	KeyPlumeIdentified = "ident_pluma"
	KeyWindDirection   = "dir_vento_graus"
	KeyWindSpeedAvg    = "vento_media_ms"
	KeyWindSpeedError  = "vento_erro_ms"
	KeyColorbarMax     = "colorbar_max_ppb"
	KeyPasses          = "passes"
	KeyFigure          = "img_swir"
	KeyFigureRGB       = "img_rgb"
)

// DefaultMeasuredAt is the acquisition instant of the demonstration record.
const DefaultMeasuredAt = "2025-04-29T10:36:00Z"

// DefaultRecord returns the built-in demonstration record. Every call returns
// fresh slices so callers may not alias each other's defaults.
func DefaultRecord() Record {
	return Record{
		Unit: "Rio de Janeiro",
		MeasuredAt: Timestamp{
			Time:  time.Date(2025, time.April, 29, 10, 36, 0, 0, time.UTC),
			Raw:   DefaultMeasuredAt,
			Valid: true,
		},
		LocalTimeLabel:   "10h36",
		ResolutionM:      25,
		RateKgPerHour:    180,
		UncertaintyPct:   5,
		SeaState:         "Calmo",
		Platform:         "FPSO",
		DetectedObjects:  []string{"Equipamentos Auxiliares"},
		FlareActive:      true,
		PlumeDetected:    true,
		PlumeIdentified:  true,
		WindDirectionDeg: 270,
		WindSpeedAvgMs:   5.2,
		WindSpeedErrorMs: 2.0,
		Passes: []Pass{
			{SatelliteID: "GHGSat-C10", TimestampLabel: "29/04/2025 – 10:36", IncidenceAngle: "52°"},
			{SatelliteID: "GHGSat-C12", TimestampLabel: "30/04/2025 – 10:08", IncidenceAngle: "47°"},
			{SatelliteID: "GHGSat-C11", TimestampLabel: "01/05/2025 – 09:52", IncidenceAngle: "44°"},
		},
	}
}

// Brand holds the fixed strings printed on the dashboard.
type Brand struct {
	AppName     string `yaml:"app_name"`
	ReportTitle string `yaml:"report_title"`
	FigureTitle string `yaml:"figure_title"`
	Badge       string `yaml:"badge"`
	Copyright   string `yaml:"copyright"`
	Disclaimer  string `yaml:"disclaimer"`
}

// AssetCandidates lists file names to try for each image, highest priority first.
type AssetCandidates struct {
	Logo      []string `yaml:"logo"`
	Figure    []string `yaml:"figure"`
	FigureRGB []string `yaml:"figure_rgb"`
	Composite []string `yaml:"composite"`
}

// Profile is the immutable configuration a report build runs under. It is
// passed by value; nothing in the build mutates it.
type Profile struct {
	BaseDir         string
	MeasurementFile string
	ZoneLabel       string
	Layout          string
	Brand           Brand
	Assets          AssetCandidates

	// Defaults are override-style values applied on top of DefaultRecord
	// before the per-build override record.
	Defaults Overrides
}

// DefaultProfile returns the profile used when no profile file is configured.
func DefaultProfile() Profile {
	return Profile{
		BaseDir:         ".",
		MeasurementFile: "sample_measurement.json",
		ZoneLabel:       "Hora Local",
		Layout:          "single",
		Brand: Brand{
			AppName:     "DAP ATLAS",
			ReportTitle: "Relatório OGMP 2.0 • L5",
			FigureTitle: "Satélite CHGSAT – Sensor SWIR",
			Badge:       "SENSOR SWIR",
			Copyright:   "MAVIPE Sistemas Espaciais",
			Disclaimer: "Imagem ilustrativa criada para demonstração de capacidade tecnológica. " +
				"Não representa medições reais nem está vinculada a contratos, clientes ou operações comerciais.",
		},
		Assets: AssetCandidates{
			Logo: []string{"dapatlas_fundo_branco.png"},
			Figure: []string{
				"Screenshot 2025-10-08 114722.png",
				"Screenshot_2025-10-08_114722.png",
				"fig_swir.png",
				"split_combo.png",
				"swir.png",
				"figure.png",
				"WhatsApp Image 2025-10-08 at 1.51.03 AM.jpeg",
			},
			FigureRGB: []string{"fig_rgb.png", "rgb.png", "rgb.jpg"},
			Composite: []string{"split_combo.png", "composite.png", "fig_composite.png"},
		},
	}
}

// DefaultRecord returns the built-in defaults with the profile's own defaults
// resolved on top.
func (p Profile) DefaultRecord() Record {
	return Resolve(DefaultRecord(), p.Defaults)
}
