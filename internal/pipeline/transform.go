package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/methane-report-service/internal/domain"
	"github.com/couchcryptid/methane-report-service/internal/report"
)

// DocumentBuilder is the part of report.Builder the transformer needs.
type DocumentBuilder interface {
	Build(ctx context.Context, req report.Request) (domain.Document, error)
	ParseOverrides(source string, data []byte) domain.Overrides
}

// ReportTransformer renders each message value as an override record. The
// optional "layout" header selects the layout.
type ReportTransformer struct {
	builder DocumentBuilder
	logger  *slog.Logger
}

// NewTransformer creates a ReportTransformer.
func NewTransformer(builder DocumentBuilder, logger *slog.Logger) *ReportTransformer {
	return &ReportTransformer{builder: builder, logger: logger}
}

// Transform builds one document. A malformed value renders with defaults; only
// an unknown layout or a renderer failure is an error.
func (t *ReportTransformer) Transform(ctx context.Context, raw domain.RawEvent) (domain.OutputEvent, error) {
	source := fmt.Sprintf("%s/%d/%d", raw.Topic, raw.Partition, raw.Offset)
	overrides := t.builder.ParseOverrides(source, raw.Value)

	doc, err := t.builder.Build(ctx, report.Request{
		Layout:    raw.Headers[domain.HeaderLayout],
		Overrides: overrides,
	})
	if err != nil {
		return domain.OutputEvent{}, fmt.Errorf("build report from %s: %w", source, err)
	}

	t.logger.Debug("message rendered", "source", source, "id", doc.ID, "layout", doc.Layout)
	return domain.NewOutputEvent(doc, raw.Key), nil
}
