package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/akolanti/DocRouter/internal/domain/documentModel"
	"github.com/akolanti/DocRouter/pkg/logger_i"
)

// EmailAgent handles free text and parsed email bodies. It never returns an error:
// failures, panics included, are stored and reported as a failed result.
type EmailAgent struct {
	store  documentModel.RecordStore
	logger *logger_i.Logger
}

func NewEmailAgent(store documentModel.RecordStore) *EmailAgent {
	return &EmailAgent{
		store:  store,
		logger: logger_i.NewLogger("EmailAgent"),
	}
}

func (a *EmailAgent) Name() string { return documentModel.AgentEmail }

func (a *EmailAgent) Process(ctx context.Context, content string, docID string, md documentModel.Metadata) (result documentModel.HandlerResult, err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			result, err = a.fail(ctx, docID, fmt.Errorf("panic: %v", r)), nil
		}
		observe(documentModel.AgentEmail, result.Status, start)
	}()

	entities := ExtractEntities(content)
	intent := metadataIntent(md)
	phrases := metadataPhrases(md)
	if len(phrases) == 0 {
		phrases = entities.KeyPhrases
	}

	result = documentModel.HandlerResult{
		DocumentID:      docID,
		Agent:           documentModel.AgentEmail,
		Intent:          intent,
		ExtractedFields: entities,
		Action:          DecideAction(intent, phrases),
		KeyPhrases:      phrases,
		Status:          documentModel.StatusProcessed,
	}

	if err := a.store.Put(ctx, docID, map[string]any{
		documentModel.KeyEmailProcessing: result,
		documentModel.KeyMetadata:        md,
	}); err != nil {
		return a.fail(ctx, docID, err), nil
	}
	a.logger.WithTrace(ctx).Info("Processed email document", "docId", docID, "intent", intent, "action", result.Action)
	return result, nil
}

func (a *EmailAgent) fail(ctx context.Context, docID string, cause error) documentModel.HandlerResult {
	log := a.logger.WithTrace(ctx).With("docId", docID)
	log.Error("Email processing failed", "error", cause)
	if err := a.store.Put(ctx, docID, map[string]any{documentModel.KeyError: cause.Error()}); err != nil {
		log.Error("Failed to record email failure", "error", err)
	}
	return documentModel.HandlerResult{
		DocumentID: docID,
		Agent:      documentModel.AgentEmail,
		Status:     documentModel.StatusFailed,
		Error:      cause.Error(),
	}
}
