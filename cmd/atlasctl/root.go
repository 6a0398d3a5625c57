package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/couchcryptid/methane-report-service/internal/config"
	"github.com/couchcryptid/methane-report-service/internal/domain"
	"github.com/couchcryptid/methane-report-service/internal/observability"
	"github.com/couchcryptid/methane-report-service/internal/report"
)

// rootOptions are the flags shared by every subcommand.
type rootOptions struct {
	profile     string
	dir         string
	layout      string
	measurement string
	verbose     bool
	quiet       bool

	clock clockwork.Clock
}

func newRootCmd() *cobra.Command {
	return newRootCmdWithClock(clockwork.NewRealClock())
}

func newRootCmdWithClock(clock clockwork.Clock) *cobra.Command {
	opts := &rootOptions{clock: clock}

	cmd := &cobra.Command{
		Use:          "atlasctl",
		Short:        "Render methane emission reports from local assets and override records",
		SilenceUsage: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.profile, "profile", "", "YAML report profile")
	pf.StringVar(&opts.dir, "dir", "", "asset directory (overrides the profile base_dir)")
	pf.StringVar(&opts.layout, "layout", "", "layout name (single, split, composite, slide, sidebar)")
	pf.StringVar(&opts.measurement, "measurement", "", "override record file name, relative to --dir")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")
	pf.BoolVarP(&opts.quiet, "quiet", "q", false, "errors only")

	cmd.AddCommand(
		newRenderCmd(opts),
		newExportCmd(opts),
		newWatchCmd(opts),
		newSampleCmd(opts),
	)
	return cmd
}

func (o *rootOptions) logger(cmd *cobra.Command) *slog.Logger {
	level := "info"
	switch {
	case o.verbose:
		level = "debug"
	case o.quiet:
		level = "error"
	}
	return observability.NewLoggerWithOutput(cmd.ErrOrStderr(), level, "text")
}

// loadProfile layers the profile file and flags the same way the service
// layers REPORT_PROFILE and REPORT_* variables.
func (o *rootOptions) loadProfile() (domain.Profile, error) {
	cfg := &config.Config{
		ProfilePath:     o.profile,
		BaseDir:         o.dir,
		Layout:          o.layout,
		MeasurementFile: o.measurement,
	}
	return cfg.Profile()
}

func (o *rootOptions) newBuilder(logger *slog.Logger) (*report.Builder, error) {
	profile, err := o.loadProfile()
	if err != nil {
		return nil, err
	}
	metrics, err := observability.NewMetricsWithRegistry(prometheus.NewRegistry())
	if err != nil {
		return nil, err
	}
	return report.NewBuilder(profile, o.clock, metrics, logger)
}

// writeOutput writes data to path via a temporary file and rename, or to
// stdout when path is "-".
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
