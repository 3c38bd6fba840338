// Package agent holds the type handlers. Each handler receives normalized text, decides
// what the document asks for downstream and records its outcome in the record store.
package agent

import (
	"context"
	"time"

	"github.com/akolanti/DocRouter/internal/domain/documentModel"
	"github.com/akolanti/DocRouter/internal/metrics"
)

type TypeHandler interface {
	Name() string
	Process(ctx context.Context, content string, docID string, md documentModel.Metadata) (documentModel.HandlerResult, error)
}

func observe(agent string, status documentModel.Status, start time.Time) {
	metrics.CaptureExecutionMetrics(agent, time.Since(start))
	metrics.CaptureHandlerResult(agent, string(status))
}

// metadataIntent reads the intent label the dispatcher attached, whatever its Go type.
func metadataIntent(md documentModel.Metadata) documentModel.Intent {
	switch v := md[documentModel.MetaIntent].(type) {
	case documentModel.Intent:
		return documentModel.ParseIntent(string(v))
	case string:
		return documentModel.ParseIntent(v)
	default:
		return documentModel.IntentUnknown
	}
}

func metadataPhrases(md documentModel.Metadata) []string {
	switch v := md[documentModel.MetaKeyPhrases].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
