package browser

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/go-rod/rod/lib/launcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRasterScale(t *testing.T) {
	tests := []struct {
		name          string
		width, height float64
		want          float64
	}{
		{"wide stage", 1600, 900, 4.8},
		{"tall box", 800, 1920, 4},
		{"small figure capped", 640, 480, MaxScale},
		{"exact cap", 1280, 720, MaxScale},
		{"empty box", 0, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, RasterScale(tt.width, tt.height), 1e-9)
		})
	}
}

func TestRasterScale_LongEdge(t *testing.T) {
	w, h := 1920.0, 1080.0
	s := RasterScale(w, h)
	assert.InDelta(t, float64(LongEdgePx), w*s, 1e-6)
}

func TestPaperInches(t *testing.T) {
	w, h, err := PaperInches(PageA4)
	require.NoError(t, err)
	assert.InDelta(t, 8.27, w, 0.01)
	assert.InDelta(t, 11.69, h, 0.01)

	w, h, err = PaperInches(PageA3)
	require.NoError(t, err)
	assert.InDelta(t, 11.69, w, 0.01)
	assert.InDelta(t, 16.54, h, 0.01)

	_, _, err = PaperInches("letter")
	require.ErrorIs(t, err, ErrInvalidExport)
}

func TestPrintOptions(t *testing.T) {
	opts, err := PrintOptions(PageA3)
	require.NoError(t, err)
	assert.True(t, opts.Landscape)
	assert.True(t, opts.PrintBackground)
	require.NotNil(t, opts.MarginTop)
	assert.InDelta(t, 0.3937, *opts.MarginTop, 0.0001)
	assert.Equal(t, *opts.MarginTop, *opts.MarginRight)
}

func TestRequest_Validate(t *testing.T) {
	req, err := Request{}.Validate()
	require.NoError(t, err)
	assert.Equal(t, Request{Format: FormatPNG, Target: TargetStage, Page: PageA4}, req)

	req, err = Request{Format: FormatPDF, Page: "a3"}.Validate()
	require.NoError(t, err)
	assert.Equal(t, PageA3, req.Page)

	for _, bad := range []Request{{Format: "gif"}, {Target: "panel"}, {Page: "A5"}} {
		_, err := bad.Validate()
		require.ErrorIs(t, err, ErrInvalidExport)
	}
}

// TestExporter_Chromium runs only where a local Chromium exists.
func TestExporter_Chromium(t *testing.T) {
	if testing.Short() {
		t.Skip("short mode")
	}
	bin, ok := launcher.LookPath()
	if !ok {
		t.Skip("chromium not found")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	exp, err := NewExporter(ctx, Options{Bin: bin}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	defer func() { _ = exp.Close() }()

	html := []byte(`<!doctype html><html><body><div id="stage" style="width:640px;height:360px"><div id="visual" style="width:320px;height:180px;background:#123"></div></div></body></html>`)

	png, err := exp.Export(ctx, html, Request{Format: FormatPNG, Target: TargetFigure})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))

	pdf, err := exp.Export(ctx, html, Request{Format: FormatPDF, Page: PageA4})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}
