package documentModel

import "context"

// RecordStore holds the latest snapshot per document id.
//
// Put is a shallow merge: every top-level key supplied replaces the stored key,
// keys not supplied are kept. Merge behaves the same except that extracted_fields
// is merged key by key. Concurrent writers to the same id are last writer wins per
// top-level key; there is no compare-and-swap.
type RecordStore interface {
	Put(ctx context.Context, docID string, data map[string]any) error
	Merge(ctx context.Context, docID string, data map[string]any) error
	Get(ctx context.Context, docID string) (Record, bool, error)
}

type HistoryStore interface {
	Append(ctx context.Context, docID string, entry HistoryEntry) error
	List(ctx context.Context, docID string) ([]HistoryEntry, error)
}
