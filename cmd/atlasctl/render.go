package main

import (
	"github.com/spf13/cobra"

	"github.com/couchcryptid/methane-report-service/internal/report"
)

func newRenderCmd(opts *rootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the report to an HTML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := opts.logger(cmd)
			b, err := opts.newBuilder(logger)
			if err != nil {
				return err
			}
			doc, err := b.Build(cmd.Context(), report.Request{})
			if err != nil {
				return err
			}
			if err := writeOutput(cmd, output, doc.HTML); err != nil {
				return err
			}
			logger.Info("report written", "path", output, "layout", doc.Layout, "id", doc.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "report.html", `output file, "-" for stdout`)
	return cmd
}
