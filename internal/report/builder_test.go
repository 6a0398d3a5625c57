package report_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/methane-report-service/internal/domain"
	"github.com/couchcryptid/methane-report-service/internal/observability"
	"github.com/couchcryptid/methane-report-service/internal/render"
	"github.com/couchcryptid/methane-report-service/internal/report"
)

var buildTime = time.Date(2025, time.May, 2, 8, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newBuilder(t *testing.T, dir string, opts ...report.Option) (*report.Builder, *observability.Metrics) {
	t.Helper()
	profile := domain.DefaultProfile()
	profile.BaseDir = dir
	metrics := observability.NewMetricsForTesting()
	b, err := report.NewBuilder(profile, clockwork.NewFakeClockAt(buildTime), metrics, discardLogger(), opts...)
	require.NoError(t, err)
	return b, metrics
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestBuild_DefaultsWithoutFiles(t *testing.T) {
	b, metrics := newBuilder(t, t.TempDir())

	doc, err := b.Build(context.Background(), report.Request{})
	require.NoError(t, err)

	html := string(doc.HTML)
	assert.Contains(t, html, "Rio de Janeiro")
	assert.Contains(t, html, "<td>180</td>")
	assert.Contains(t, html, `data-placeholder="figure"`)
	assert.Equal(t, "single", doc.Layout)
	assert.Equal(t, report.ContentType, doc.ContentType)
	assert.Equal(t, buildTime, doc.GeneratedAt)
	assert.True(t, strings.HasPrefix(doc.ID, "single-"))
	assert.Len(t, doc.ID, len("single-")+16)

	assert.InDelta(t, 1.0, counterValue(t, metrics.DocumentsBuilt.WithLabelValues("single")), 1e-9)
	assert.InDelta(t, 1.0, counterValue(t, metrics.OverrideLoads.WithLabelValues("absent")), 1e-9)
	assert.InDelta(t, 1.0, counterValue(t, metrics.AssetResolutions.WithLabelValues("figure", "absent")), 1e-9)
}

func TestBuild_RateAndFlareOverrides(t *testing.T) {
	b, _ := newBuilder(t, t.TempDir())
	overrides := domain.Overrides{"taxa_kgch4_h": 245.0, "flare_ativo": "não"}

	rec, err := b.Record(report.Request{Overrides: overrides})
	require.NoError(t, err)
	assert.InDelta(t, 245.0, rec.RateKgPerHour, 1e-9)
	assert.False(t, rec.FlareActive)

	doc, err := b.Build(context.Background(), report.Request{Overrides: overrides})
	require.NoError(t, err)
	assert.Contains(t, string(doc.HTML), "<td>245</td>")
	assert.Contains(t, string(doc.HTML), "<td>Não ⚪</td>")
}

func TestBuild_PassesReplaced(t *testing.T) {
	b, _ := newBuilder(t, t.TempDir())
	overrides := b.ParseOverrides("test", []byte(`{"passes": [{"sat":"X1","t":"01/01/2025","ang":"10°"}]}`))

	rec, err := b.Record(report.Request{Overrides: overrides})
	require.NoError(t, err)
	want := []domain.Pass{{SatelliteID: "X1", TimestampLabel: "01/01/2025", IncidenceAngle: "10°"}}
	if diff := cmp.Diff(want, rec.Passes); diff != "" {
		t.Fatalf("passes mismatch (-want +got):\n%s", diff)
	}

	doc, err := b.Build(context.Background(), report.Request{Overrides: overrides})
	require.NoError(t, err)
	assert.Contains(t, string(doc.HTML), "<b>X1</b>")
	assert.NotContains(t, string(doc.HTML), "GHGSat-C10")
}

func TestBuild_UnfilledSlotProducesNoDocument(t *testing.T) {
	desc, err := render.NewDescriptor("colorbar",
		`<p>{{slot "unit"}}</p><p>máx {{slot "colorbar_max_ppb"}} ppb</p>`, render.DefaultSlots())
	require.NoError(t, err)

	profile := domain.DefaultProfile()
	profile.BaseDir = t.TempDir()
	profile.Layout = "colorbar"
	metrics := observability.NewMetricsForTesting()
	b, err := report.NewBuilder(profile, clockwork.NewFakeClockAt(buildTime), metrics, discardLogger(),
		report.WithLayouts(render.NewLayouts(desc)))
	require.NoError(t, err)

	doc, err := b.Build(context.Background(), report.Request{Overrides: domain.Overrides{}})
	require.ErrorIs(t, err, render.ErrUnfilledSlot)
	assert.Empty(t, doc.HTML)
	assert.Empty(t, doc.ID)
	assert.InDelta(t, 1.0, counterValue(t, metrics.RenderFailures.WithLabelValues("colorbar")), 1e-9)

	doc, err = b.Build(context.Background(), report.Request{Overrides: domain.Overrides{"colorbar_max_ppb": 1200.0}})
	require.NoError(t, err)
	assert.Equal(t, "<p>Rio de Janeiro</p><p>máx 1200 ppb</p>", string(doc.HTML))
}

func TestBuild_ReadsMeasurementFileAndAssets(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sample_measurement.json"),
		[]byte(`{"unidade":"Macaé","img_swir":"custom.jpg"}`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "custom.jpg"), []byte{0xff, 0xd8, 0xff}, 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dapatlas_fundo_branco.png"), []byte("logo"), 0o600))

	b, metrics := newBuilder(t, dir)
	doc, err := b.Build(context.Background(), report.Request{})
	require.NoError(t, err)

	html := string(doc.HTML)
	assert.Contains(t, html, "Unidade: Macaé")
	assert.Contains(t, html, `src="data:image/jpeg;base64,/9j/"`)
	assert.Contains(t, html, `src="data:image/png;base64,bG9nbw=="`)
	assert.NotContains(t, html, `data-placeholder="logo"`)
	assert.InDelta(t, 1.0, counterValue(t, metrics.OverrideLoads.WithLabelValues("parsed")), 1e-9)
	assert.InDelta(t, 1.0, counterValue(t, metrics.AssetResolutions.WithLabelValues("logo", "file")), 1e-9)
}

func TestBuild_MalformedFileFallsBack(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sample_measurement.json"), []byte(`{"unidade":`), 0o600))

	b, metrics := newBuilder(t, dir)
	doc, err := b.Build(context.Background(), report.Request{})
	require.NoError(t, err)
	assert.Contains(t, string(doc.HTML), "Rio de Janeiro")
	assert.InDelta(t, 1.0, counterValue(t, metrics.OverrideLoads.WithLabelValues("malformed")), 1e-9)
}

func TestBuild_ExplicitOverridesSkipFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sample_measurement.json"), []byte(`{"unidade":"Macaé"}`), 0o600))

	b, _ := newBuilder(t, dir)
	rec, err := b.Record(report.Request{Overrides: domain.Overrides{}})
	require.NoError(t, err)
	assert.Equal(t, "Rio de Janeiro", rec.Unit)
}

func TestBuild_EveryLayout(t *testing.T) {
	b, _ := newBuilder(t, t.TempDir())
	assert.Equal(t, []string{"composite", "sidebar", "single", "slide", "split"}, b.Layouts())

	for _, name := range b.Layouts() {
		t.Run(name, func(t *testing.T) {
			doc, err := b.Build(context.Background(), report.Request{Layout: name})
			require.NoError(t, err)
			assert.Equal(t, name, doc.Layout)
			assert.Contains(t, string(doc.HTML), "Rio de Janeiro")
		})
	}
}

func TestBuild_CompositePrefersCompositeImage(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fig_swir.png"), []byte("swir"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "composite.png"), []byte("combo"), 0o600))

	b, _ := newBuilder(t, dir)

	rec, err := b.Record(report.Request{Layout: "composite", Overrides: domain.Overrides{}})
	require.NoError(t, err)
	assert.Equal(t, []byte("combo"), rec.Figure.Data)

	rec, err = b.Record(report.Request{Layout: "single", Overrides: domain.Overrides{}})
	require.NoError(t, err)
	assert.Equal(t, []byte("swir"), rec.Figure.Data)
}

func TestBuild_SidebarSkipsFigureLookup(t *testing.T) {
	b, metrics := newBuilder(t, t.TempDir())
	_, err := b.Build(context.Background(), report.Request{Layout: "sidebar", Overrides: domain.Overrides{}})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, counterValue(t, metrics.AssetResolutions.WithLabelValues("figure", "absent")), 1e-9)
}

func TestBuild_UnknownLayout(t *testing.T) {
	b, _ := newBuilder(t, t.TempDir())
	_, err := b.Build(context.Background(), report.Request{Layout: "poster"})
	require.ErrorIs(t, err, render.ErrUnknownLayout)
}

func TestBuild_Deterministic(t *testing.T) {
	b, _ := newBuilder(t, t.TempDir())
	req := report.Request{Overrides: domain.Overrides{"unidade": "Búzios"}}

	a, err := b.Build(context.Background(), req)
	require.NoError(t, err)
	c, err := b.Build(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, a.HTML, c.HTML)
	assert.Equal(t, a.ID, c.ID)
}

func TestBuild_CancelledContext(t *testing.T) {
	b, _ := newBuilder(t, t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := b.Build(ctx, report.Request{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestNewBuilder_UnknownProfileLayout(t *testing.T) {
	profile := domain.DefaultProfile()
	profile.Layout = "poster"
	_, err := report.NewBuilder(profile, clockwork.NewFakeClock(), observability.NewMetricsForTesting(), discardLogger())
	require.ErrorIs(t, err, render.ErrUnknownLayout)
}

func TestCheckReadiness(t *testing.T) {
	b, _ := newBuilder(t, t.TempDir())
	require.NoError(t, b.CheckReadiness(context.Background()))

	missing, _ := newBuilder(t, filepath.Join(t.TempDir(), "gone"))
	require.Error(t, missing.CheckReadiness(context.Background()))
}

func TestDocumentID(t *testing.T) {
	a := report.DocumentID("single", []byte("<html>a</html>"))
	assert.Equal(t, a, report.DocumentID("single", []byte("<html>a</html>")))
	assert.NotEqual(t, a, report.DocumentID("single", []byte("<html>b</html>")))
	assert.NotEqual(t, a, report.DocumentID("split", []byte("<html>a</html>")))
}
