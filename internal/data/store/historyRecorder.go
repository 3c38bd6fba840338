package store

import (
	"context"
	"time"

	"github.com/akolanti/DocRouter/internal/domain/documentModel"
	"github.com/akolanti/DocRouter/pkg/logger_i"
)

// HistoryRecorder is a RecordStore that also appends one history entry per successful
// write. A failed history append is logged and does not fail the write.
type HistoryRecorder struct {
	documentModel.RecordStore
	history documentModel.HistoryStore
	logger  *logger_i.Logger
}

func WithHistory(records documentModel.RecordStore, history documentModel.HistoryStore) *HistoryRecorder {
	return &HistoryRecorder{
		RecordStore: records,
		history:     history,
		logger:      logger_i.NewLogger("HistoryRecorder"),
	}
}

func (h *HistoryRecorder) Put(ctx context.Context, docID string, data map[string]any) error {
	if err := h.RecordStore.Put(ctx, docID, data); err != nil {
		return err
	}
	h.record(ctx, docID, documentModel.OperationPut, data)
	return nil
}

func (h *HistoryRecorder) Merge(ctx context.Context, docID string, data map[string]any) error {
	if err := h.RecordStore.Merge(ctx, docID, data); err != nil {
		return err
	}
	h.record(ctx, docID, documentModel.OperationMerge, data)
	return nil
}

func (h *HistoryRecorder) History(ctx context.Context, docID string) ([]documentModel.HistoryEntry, error) {
	return h.history.List(ctx, docID)
}

func (h *HistoryRecorder) record(ctx context.Context, docID string, op documentModel.WriteOperation, data map[string]any) {
	entry := documentModel.HistoryEntry{
		Timestamp: time.Now().UTC(),
		Operation: op,
		Keys:      sortedKeys(data),
	}
	if err := h.history.Append(ctx, docID, entry); err != nil {
		h.logger.WithTrace(ctx).Warn("Failed to append history", "docId", docID, "error", err)
	}
}
