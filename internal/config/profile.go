package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/couchcryptid/methane-report-service/internal/domain"
)

// profileFile is the on-disk shape of a report profile. Every section is
// optional; unset values keep the base profile.
type profileFile struct {
	BaseDir         string                 `yaml:"base_dir"`
	MeasurementFile string                 `yaml:"measurement_file"`
	ZoneLabel       string                 `yaml:"zone_label"`
	Layout          string                 `yaml:"layout"`
	Brand           domain.Brand           `yaml:"brand"`
	Assets          domain.AssetCandidates `yaml:"assets"`
	Defaults        map[string]any         `yaml:"defaults"`
}

// ParseProfile decodes a YAML profile and layers it onto base.
func ParseProfile(data []byte, base domain.Profile) (domain.Profile, error) {
	var f profileFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return domain.Profile{}, fmt.Errorf("decode profile: %w", err)
	}

	p := base
	setString(&p.BaseDir, f.BaseDir)
	setString(&p.MeasurementFile, f.MeasurementFile)
	setString(&p.ZoneLabel, f.ZoneLabel)
	setString(&p.Layout, f.Layout)

	setString(&p.Brand.AppName, f.Brand.AppName)
	setString(&p.Brand.ReportTitle, f.Brand.ReportTitle)
	setString(&p.Brand.FigureTitle, f.Brand.FigureTitle)
	setString(&p.Brand.Badge, f.Brand.Badge)
	setString(&p.Brand.Copyright, f.Brand.Copyright)
	setString(&p.Brand.Disclaimer, f.Brand.Disclaimer)

	setList(&p.Assets.Logo, f.Assets.Logo)
	setList(&p.Assets.Figure, f.Assets.Figure)
	setList(&p.Assets.FigureRGB, f.Assets.FigureRGB)
	setList(&p.Assets.Composite, f.Assets.Composite)

	if len(f.Defaults) > 0 {
		merged := make(domain.Overrides, len(base.Defaults)+len(f.Defaults))
		for k, v := range base.Defaults {
			merged[k] = v
		}
		for k, v := range f.Defaults {
			merged[k] = v
		}
		p.Defaults = merged
	}
	return p, nil
}

// Profile builds the report profile: built-in defaults, then the
// REPORT_PROFILE file if set, then the individual REPORT_* variables.
func (c *Config) Profile() (domain.Profile, error) {
	p := domain.DefaultProfile()
	if c.ProfilePath != "" {
		data, err := os.ReadFile(c.ProfilePath)
		if err != nil {
			return domain.Profile{}, fmt.Errorf("read REPORT_PROFILE: %w", err)
		}
		if p, err = ParseProfile(data, p); err != nil {
			return domain.Profile{}, fmt.Errorf("REPORT_PROFILE %s: %w", c.ProfilePath, err)
		}
	}
	setString(&p.BaseDir, c.BaseDir)
	setString(&p.Layout, c.Layout)
	setString(&p.ZoneLabel, c.ZoneLabel)
	setString(&p.MeasurementFile, c.MeasurementFile)
	return p, nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setList(dst *[]string, v []string) {
	if v != nil {
		*dst = append([]string(nil), v...)
	}
}
