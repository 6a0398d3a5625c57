package domain

import (
	"context"
	"time"
)

// RawEvent is an unprocessed message from the source topic. Its value is an
// override record.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// OutputEvent is a rendered document destined for a sink.
type OutputEvent struct {
	Key         []byte
	Value       []byte
	Headers     map[string]string
	ContentType string
	GeneratedAt time.Time
}

// Message header names shared by sources and sinks.
const (
	HeaderLayout      = "layout"
	HeaderContentType = "content_type"
	HeaderGeneratedAt = "generated_at"
	HeaderSourceKey   = "source_key"
)

// NewOutputEvent wraps a rendered document for a sink. sourceKey is the key of
// the message the document was built from, if any.
func NewOutputEvent(doc Document, sourceKey []byte) OutputEvent {
	headers := map[string]string{
		HeaderLayout:      doc.Layout,
		HeaderContentType: doc.ContentType,
		HeaderGeneratedAt: doc.GeneratedAt.UTC().Format(time.RFC3339),
	}
	if len(sourceKey) > 0 {
		headers[HeaderSourceKey] = string(sourceKey)
	}
	return OutputEvent{
		Key:         []byte(doc.ID),
		Value:       doc.HTML,
		Headers:     headers,
		ContentType: doc.ContentType,
		GeneratedAt: doc.GeneratedAt,
	}
}
