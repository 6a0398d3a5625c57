package main

import (
	"context"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/methane-report-service/internal/report"
	"github.com/couchcryptid/methane-report-service/internal/watch"
)

func newWatchCmd(opts *rootOptions) *cobra.Command {
	var (
		output   string
		debounce time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-render the report whenever the asset directory or profile changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := opts.logger(cmd)
			profile, err := opts.loadProfile()
			if err != nil {
				return err
			}

			dirs := []string{profile.BaseDir}
			if opts.profile != "" {
				if pd := filepath.Dir(opts.profile); filepath.Clean(pd) != filepath.Clean(profile.BaseDir) {
					dirs = append(dirs, pd)
				}
			}

			// The profile is reloaded on each rebuild so edits to it apply.
			rebuild := func(ctx context.Context) error {
				b, err := opts.newBuilder(logger)
				if err != nil {
					return err
				}
				doc, err := b.Build(ctx, report.Request{})
				if err != nil {
					return err
				}
				return writeOutput(cmd, output, doc.HTML)
			}

			w := watch.New(rebuild, logger, watch.WithDebounce(debounce), watch.WithIgnore(output))
			return w.Run(cmd.Context(), dirs...)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "report.html", "output file")
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "quiet period before re-rendering")
	return cmd
}
