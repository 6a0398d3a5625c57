// Package browser rasterizes and prints rendered documents with a headless
// Chromium driven by rod.
package browser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Format selects the export output.
type Format string

const (
	FormatPNG Format = "png"
	FormatPDF Format = "pdf"
)

// Target selects the element captured by a PNG export.
type Target string

const (
	TargetStage  Target = "stage"
	TargetFigure Target = "figure"
)

// PageSize is a paper size for PDF export.
type PageSize string

const (
	PageA4 PageSize = "A4"
	PageA3 PageSize = "A3"
)

// Raster and print constants.
const (
	LongEdgePx = 7680
	MaxScale   = 6.0
	MarginMM   = 10.0
)

const (
	mmPerInch   = 25.4
	viewportW   = 1600
	viewportH   = 1000
	stageQuery  = "#stage"
	figureQuery = "#visual"
)

// ErrInvalidExport is returned for unknown formats, targets, or page sizes.
var ErrInvalidExport = errors.New("invalid export option")

// Request describes one export.
type Request struct {
	Format Format
	Target Target
	Page   PageSize
}

// Validate fills defaults and rejects unknown values.
func (r Request) Validate() (Request, error) {
	if r.Format == "" {
		r.Format = FormatPNG
	}
	if r.Target == "" {
		r.Target = TargetStage
	}
	if r.Page == "" {
		r.Page = PageA4
	}
	r.Page = PageSize(strings.ToUpper(string(r.Page)))
	switch r.Format {
	case FormatPNG, FormatPDF:
	default:
		return r, fmt.Errorf("format %q: %w", r.Format, ErrInvalidExport)
	}
	switch r.Target {
	case TargetStage, TargetFigure:
	default:
		return r, fmt.Errorf("target %q: %w", r.Target, ErrInvalidExport)
	}
	if _, _, err := PaperInches(r.Page); err != nil {
		return r, err
	}
	return r, nil
}

// RasterScale returns the device scale factor that brings the long edge of a
// width x height CSS box to LongEdgePx, capped at MaxScale.
func RasterScale(width, height float64) float64 {
	long := max(width, height)
	if long <= 0 {
		return 1
	}
	return min(MaxScale, LongEdgePx/long)
}

// PaperInches returns the portrait width and height of a page size in inches.
// Exports rotate it to landscape.
func PaperInches(p PageSize) (width, height float64, err error) {
	switch p {
	case PageA4:
		return 210 / mmPerInch, 297 / mmPerInch, nil
	case PageA3:
		return 297 / mmPerInch, 420 / mmPerInch, nil
	}
	return 0, 0, fmt.Errorf("page %q: %w", p, ErrInvalidExport)
}

// PrintOptions builds the landscape print request for a page size.
func PrintOptions(p PageSize) (*proto.PagePrintToPDF, error) {
	w, h, err := PaperInches(p)
	if err != nil {
		return nil, err
	}
	margin := MarginMM / mmPerInch
	return &proto.PagePrintToPDF{
		Landscape:       true,
		PrintBackground: true,
		PaperWidth:      &w,
		PaperHeight:     &h,
		MarginTop:       &margin,
		MarginBottom:    &margin,
		MarginLeft:      &margin,
		MarginRight:     &margin,
	}, nil
}

// Exporter owns a Chromium instance. It is safe for sequential use.
type Exporter struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	logger   *slog.Logger
}

// Options configures how Chromium is reached. ControlURL wins over Bin; with
// neither set rod locates or downloads a browser.
type Options struct {
	Bin        string
	ControlURL string
}

// NewExporter launches or connects to Chromium.
func NewExporter(ctx context.Context, opts Options, logger *slog.Logger) (*Exporter, error) {
	e := &Exporter{logger: logger}
	controlURL := opts.ControlURL
	if controlURL == "" {
		l := launcher.New().Headless(true)
		if opts.Bin != "" {
			l = l.Bin(opts.Bin)
		}
		u, err := l.Context(ctx).Launch()
		if err != nil {
			return nil, fmt.Errorf("launch chromium: %w", err)
		}
		e.launcher = l
		controlURL = u
	}

	b := rod.New().ControlURL(controlURL).Context(ctx)
	if err := b.Connect(); err != nil {
		e.cleanup()
		return nil, fmt.Errorf("connect to chromium: %w", err)
	}
	e.browser = b
	logger.Debug("chromium connected", "control_url", controlURL)
	return e, nil
}

// Close shuts the browser down and removes the launcher's profile directory.
func (e *Exporter) Close() error {
	var err error
	if e.browser != nil {
		err = e.browser.Close()
	}
	e.cleanup()
	return err
}

func (e *Exporter) cleanup() {
	if e.launcher != nil {
		e.launcher.Kill()
		e.launcher.Cleanup()
	}
}

// Export loads html into a fresh page and produces a PNG or PDF.
func (e *Exporter) Export(ctx context.Context, html []byte, req Request) ([]byte, error) {
	req, err := req.Validate()
	if err != nil {
		return nil, err
	}

	page, err := e.browser.Context(ctx).Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}
	defer func() { _ = page.Close() }()

	if err := setViewport(page, viewportW, viewportH, 1); err != nil {
		return nil, err
	}
	if err := page.SetDocumentContent(string(html)); err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("wait load: %w", err)
	}

	if req.Format == FormatPDF {
		return e.printPDF(page, req.Page)
	}
	return e.screenshot(page, req.Target)
}

func (e *Exporter) screenshot(page *rod.Page, target Target) ([]byte, error) {
	query := stageQuery
	if target == TargetFigure {
		query = figureQuery
	}
	el, err := page.Element(query)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", query, err)
	}
	shape, err := el.Shape()
	if err != nil {
		return nil, fmt.Errorf("measure %s: %w", query, err)
	}
	box := shape.Box()
	scale := RasterScale(box.Width, box.Height)
	if err := setViewport(page, viewportW, viewportH, scale); err != nil {
		return nil, err
	}
	e.logger.Debug("capturing png", "target", target, "width", box.Width, "height", box.Height, "scale", scale)

	img, err := el.Screenshot(proto.PageCaptureScreenshotFormatPng, 0)
	if err != nil {
		return nil, fmt.Errorf("screenshot %s: %w", query, err)
	}
	return img, nil
}

func (e *Exporter) printPDF(page *rod.Page, size PageSize) ([]byte, error) {
	opts, err := PrintOptions(size)
	if err != nil {
		return nil, err
	}
	stream, err := page.PDF(opts)
	if err != nil {
		return nil, fmt.Errorf("print pdf: %w", err)
	}
	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("read pdf stream: %w", err)
	}
	e.logger.Debug("printed pdf", "page", size, "bytes", len(data))
	return data, nil
}

func setViewport(page *rod.Page, w, h int, scale float64) error {
	err := proto.EmulationSetDeviceMetricsOverride{
		Width:             w,
		Height:            h,
		DeviceScaleFactor: scale,
	}.Call(page)
	if err != nil {
		return fmt.Errorf("set viewport: %w", err)
	}
	return nil
}
