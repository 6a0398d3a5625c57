// Package report composes asset resolution, override loading, field
// resolution and rendering into a single document build.
package report

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/methane-report-service/internal/asset"
	"github.com/couchcryptid/methane-report-service/internal/domain"
	"github.com/couchcryptid/methane-report-service/internal/measurement"
	"github.com/couchcryptid/methane-report-service/internal/observability"
	"github.com/couchcryptid/methane-report-service/internal/render"
)

// ContentType is the media type of every built document.
const ContentType = "text/html; charset=utf-8"

// Request selects what to build. A nil Overrides loads the profile's
// measurement file; a non-nil one (even empty) is used instead of the file.
type Request struct {
	Layout    string
	Overrides domain.Overrides
}

// Builder builds documents under one immutable profile. It is safe for
// concurrent use.
type Builder struct {
	profile  domain.Profile
	defaults domain.Record
	layouts  *render.Layouts
	renderer *render.Renderer
	loader   *measurement.Loader
	clock    clockwork.Clock
	metrics  *observability.Metrics
	logger   *slog.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithLayouts replaces the standard layout set.
func WithLayouts(l *render.Layouts) Option {
	return func(b *Builder) { b.layouts = l }
}

// NewBuilder validates the standard layouts and returns a Builder. The
// profile's layout must be one of them.
func NewBuilder(profile domain.Profile, clock clockwork.Clock, metrics *observability.Metrics, logger *slog.Logger, opts ...Option) (*Builder, error) {
	b := &Builder{
		profile:  profile,
		defaults: profile.DefaultRecord(),
		renderer: render.NewRenderer(profile.Brand, profile.ZoneLabel),
		clock:    clock,
		metrics:  metrics,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.layouts == nil {
		layouts, err := render.StandardLayouts(render.DefaultSlots())
		if err != nil {
			return nil, fmt.Errorf("build layouts: %w", err)
		}
		b.layouts = layouts
	}
	if _, err := b.layouts.Get(profile.Layout); err != nil {
		return nil, fmt.Errorf("profile layout: %w", err)
	}
	b.loader = measurement.NewLoader(func(source string, o measurement.Outcome) {
		metrics.OverrideLoads.WithLabelValues(string(o)).Inc()
		if o == measurement.OutcomeMalformed {
			logger.Warn("override record malformed, using defaults", "source", source)
		}
	})
	return b, nil
}

// Profile returns the builder's profile.
func (b *Builder) Profile() domain.Profile { return b.profile }

// Layouts returns the names of the layouts the builder can render.
func (b *Builder) Layouts() []string { return b.layouts.Names() }

// MeasurementPath is the override file read when a request carries none.
func (b *Builder) MeasurementPath() string {
	return b.path(b.profile.MeasurementFile)
}

// ParseOverrides decodes an override record from bytes with the loader's
// best-effort policy. source names the origin in logs.
func (b *Builder) ParseOverrides(source string, data []byte) domain.Overrides {
	return b.loader.Parse(source, data)
}

// Record resolves the full field set for a request without rendering it.
func (b *Builder) Record(req Request) (domain.Record, error) {
	desc, err := b.descriptor(req.Layout)
	if err != nil {
		return domain.Record{}, err
	}
	return b.record(req, desc), nil
}

// Build produces one document. Only an unknown layout or a renderer failure
// is reported as an error; missing assets and bad overrides fall back to
// defaults.
func (b *Builder) Build(ctx context.Context, req Request) (domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return domain.Document{}, err
	}
	start := time.Now()

	desc, err := b.descriptor(req.Layout)
	if err != nil {
		return domain.Document{}, err
	}
	layout := desc.Name()

	rec := b.record(req, desc)
	generatedAt := b.clock.Now().UTC()

	html, err := b.renderer.Render(rec, generatedAt, desc)
	if err != nil {
		b.metrics.RenderFailures.WithLabelValues(layout).Inc()
		b.logger.Error("render failed", "layout", layout, "error", err)
		return domain.Document{}, err
	}

	doc := domain.Document{
		ID:          DocumentID(layout, html),
		Layout:      layout,
		ContentType: ContentType,
		GeneratedAt: generatedAt,
		HTML:        html,
	}

	b.metrics.DocumentsBuilt.WithLabelValues(layout).Inc()
	b.metrics.BuildDuration.WithLabelValues(layout).Observe(time.Since(start).Seconds())
	b.logger.Debug("report built", "layout", layout, "id", doc.ID, "bytes", len(html))
	return doc, nil
}

// CheckReadiness reports whether the profile's base directory is usable.
func (b *Builder) CheckReadiness(_ context.Context) error {
	info, err := os.Stat(b.baseDir())
	if err != nil {
		return fmt.Errorf("asset directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("asset directory %s is not a directory", b.baseDir())
	}
	return nil
}

// DocumentID derives a stable identifier from the layout and rendered bytes.
func DocumentID(layout string, html []byte) string {
	sum := sha256.Sum256(html)
	return layout + "-" + hex.EncodeToString(sum[:8])
}

func (b *Builder) descriptor(layout string) (*render.Descriptor, error) {
	if layout == "" {
		layout = b.profile.Layout
	}
	return b.layouts.Get(layout)
}

func (b *Builder) record(req Request, desc *render.Descriptor) domain.Record {
	overrides := req.Overrides
	if overrides == nil {
		overrides = b.loader.Load(b.MeasurementPath())
	}

	rec := domain.Resolve(b.defaults, overrides)

	slots := desc.Slots()
	uses := func(slot string) bool {
		_, found := slices.BinarySearch(slots, slot)
		return found
	}
	if uses(render.SlotLogo) {
		rec.Logo = b.resolver(render.SlotLogo).Resolve(b.profile.Assets.Logo)
	}
	if uses(render.SlotFigure) {
		rec.Figure = b.resolver(render.SlotFigure).ResolveOverride(overrides[domain.KeyFigure], b.figureCandidates(desc.Name()))
	}
	if uses(render.SlotFigureRGB) {
		rec.FigureRGB = b.resolver(render.SlotFigureRGB).ResolveOverride(overrides[domain.KeyFigureRGB], b.profile.Assets.FigureRGB)
	}
	return rec
}

// figureCandidates puts the composite images first for the composite layout.
func (b *Builder) figureCandidates(layout string) []string {
	if layout != render.LayoutComposite {
		return b.profile.Assets.Figure
	}
	out := make([]string, 0, len(b.profile.Assets.Composite)+len(b.profile.Assets.Figure))
	out = append(out, b.profile.Assets.Composite...)
	return append(out, b.profile.Assets.Figure...)
}

func (b *Builder) resolver(kind string) *asset.Resolver {
	return asset.NewResolver(b.baseDir(), asset.WithObserver(func(o asset.Outcome) {
		b.metrics.AssetResolutions.WithLabelValues(kind, string(o)).Inc()
	}))
}

func (b *Builder) baseDir() string {
	if b.profile.BaseDir == "" {
		return "."
	}
	return b.profile.BaseDir
}

func (b *Builder) path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(b.baseDir(), name)
}
