package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/methane-report-service/internal/domain"
)

const (
	sampleFigure = "fig_swir.png"
	sampleWidth  = 960
	sampleHeight = 540
)

func newSampleCmd(opts *rootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Write a sample override record and a placeholder SWIR figure into --dir",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := opts.logger(cmd)
			profile, err := opts.loadProfile()
			if err != nil {
				return err
			}
			if err := os.MkdirAll(profile.BaseDir, 0o755); err != nil {
				return fmt.Errorf("create %s: %w", profile.BaseDir, err)
			}

			record, err := json.MarshalIndent(sampleRecord(opts.clock.Now()), "", "  ")
			if err != nil {
				return err
			}
			recordPath := filepath.Join(profile.BaseDir, profile.MeasurementFile)
			if err := writeNew(recordPath, append(record, '\n'), force); err != nil {
				return err
			}
			logger.Info("sample record written", "path", recordPath)

			figurePath := filepath.Join(profile.BaseDir, sampleFigure)
			f, err := createNew(figurePath, force)
			if err != nil {
				return err
			}
			if err := png.Encode(f, placeholderFigure(sampleWidth, sampleHeight)); err != nil {
				_ = f.Close()
				return fmt.Errorf("encode %s: %w", figurePath, err)
			}
			if err := f.Close(); err != nil {
				return err
			}
			logger.Info("placeholder figure written", "path", figurePath)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing files")
	return cmd
}

// sampleRecord is a complete override record stamped with at.
func sampleRecord(at time.Time) map[string]any {
	at = at.UTC().Truncate(time.Minute)
	const passLabel = "02/01/2006 – 15:04"
	return map[string]any{
		domain.KeyUnit:            "Bacia de Campos",
		domain.KeyMeasuredAt:      at.Format(time.RFC3339),
		domain.KeyLocalTime:       at.Format("15h04"),
		domain.KeyResolution:      25,
		domain.KeyRate:            212.5,
		domain.KeyUncertainty:     7,
		domain.KeySeaState:        "Moderado",
		domain.KeyPlatform:        "FPSO",
		domain.KeyDetectedObjects: []string{"Flare", "Equipamentos Auxiliares"},
		domain.KeyFlareActive:     true,
		domain.KeyPlumeDetected:   true,
		domain.KeyPlumeIdentified: false,
		domain.KeyWindDirection:   135,
		domain.KeyWindSpeedAvg:    6.4,
		domain.KeyWindSpeedError:  1.5,
		domain.KeyColorbarMax:     1200,
		domain.KeyPasses: []domain.Pass{
			{SatelliteID: "GHGSat-C10", TimestampLabel: at.AddDate(0, 0, -1).Format(passLabel), IncidenceAngle: "49°"},
			{SatelliteID: "GHGSat-C12", TimestampLabel: at.Format(passLabel), IncidenceAngle: "44°"},
		},
	}
}

// placeholderFigure draws a dark sea with a soft plume-shaped highlight.
func placeholderFigure(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	cx, cy := float64(w)*0.4, float64(h)*0.55
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx := (float64(x) - cx) / (float64(w) * 0.35)
			dy := (float64(y) - cy) / (float64(h) * 0.18)
			plume := math.Exp(-(dx*dx + dy*dy) * 2)
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(12 + 230*plume),
				G: uint8(28 + 120*plume),
				B: uint8(48 + 20*(1-plume)),
				A: 255,
			})
		}
	}
	return img
}

func writeNew(path string, data []byte, force bool) error {
	f, err := createNew(path, force)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func createNew(path string, force bool) (*os.File, error) {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !force {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return nil, fmt.Errorf("%s exists (use --force to overwrite)", path)
	}
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, nil
}
