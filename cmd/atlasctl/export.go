package main

import (
	"github.com/spf13/cobra"

	"github.com/couchcryptid/methane-report-service/internal/adapter/browser"
	"github.com/couchcryptid/methane-report-service/internal/report"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	var (
		output     string
		format     string
		page       string
		target     string
		chromeBin  string
		controlURL string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render the report and export it as PNG or PDF through headless Chromium",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := browser.Request{
				Format: browser.Format(format),
				Target: browser.Target(target),
				Page:   browser.PageSize(page),
			}.Validate()
			if err != nil {
				return err
			}
			if output == "" {
				output = "report." + string(req.Format)
			}

			logger := opts.logger(cmd)
			b, err := opts.newBuilder(logger)
			if err != nil {
				return err
			}
			doc, err := b.Build(cmd.Context(), report.Request{})
			if err != nil {
				return err
			}

			exp, err := browser.NewExporter(cmd.Context(), browser.Options{Bin: chromeBin, ControlURL: controlURL}, logger)
			if err != nil {
				return err
			}
			defer func() { _ = exp.Close() }()

			data, err := exp.Export(cmd.Context(), doc.HTML, req)
			if err != nil {
				return err
			}
			if err := writeOutput(cmd, output, data); err != nil {
				return err
			}
			logger.Info("export written", "path", output, "format", req.Format, "bytes", len(data))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&output, "output", "o", "", "output file (default report.<format>)")
	f.StringVar(&format, "format", string(browser.FormatPNG), "png or pdf")
	f.StringVar(&page, "page", string(browser.PageA4), "PDF page size, A4 or A3 (landscape)")
	f.StringVar(&target, "target", string(browser.TargetStage), "PNG target, stage or figure")
	f.StringVar(&chromeBin, "chrome-bin", "", "Chromium binary (default: detected or downloaded)")
	f.StringVar(&controlURL, "control-url", "", "DevTools URL of an already running Chromium")
	return cmd
}
