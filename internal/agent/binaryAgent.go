package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/akolanti/DocRouter/internal/domain/documentModel"
	"github.com/akolanti/DocRouter/internal/extract"
	"github.com/akolanti/DocRouter/pkg/logger_i"
)

// BinaryAgent summarizes extracted document text that did not look like a message.
type BinaryAgent struct {
	store  documentModel.RecordStore
	logger *logger_i.Logger
}

func NewBinaryAgent(store documentModel.RecordStore) *BinaryAgent {
	return &BinaryAgent{
		store:  store,
		logger: logger_i.NewLogger("BinaryAgent"),
	}
}

func (a *BinaryAgent) Name() string { return documentModel.AgentPDF }

func (a *BinaryAgent) Process(ctx context.Context, content string, docID string, md documentModel.Metadata) (documentModel.HandlerResult, error) {
	start := time.Now()
	result := documentModel.HandlerResult{
		DocumentID:  docID,
		Agent:       documentModel.AgentPDF,
		Intent:      metadataIntent(md),
		ContentType: documentModel.ContentPDF,
		Pages:       strings.Count(content, extract.PageBreak) + 1,
		Status:      documentModel.StatusProcessed,
	}
	observe(documentModel.AgentPDF, result.Status, start)

	if err := a.store.Put(ctx, docID, map[string]any{
		documentModel.KeyPDFProcessing: result,
		documentModel.KeyMetadata:      md,
	}); err != nil {
		return result, fmt.Errorf("record pdf result: %w", err)
	}
	a.logger.WithTrace(ctx).Debug("Processed binary document", "docId", docID, "pages", result.Pages)
	return result, nil
}
