package agent_test

import (
	"context"

	"github.com/akolanti/DocRouter/internal/domain/documentModel"
)

// MockRecordStore implements documentModel.RecordStore
type MockRecordStore struct {
	OnPut   func(ctx context.Context, docID string, data map[string]any) error
	OnMerge func(ctx context.Context, docID string, data map[string]any) error
	OnGet   func(ctx context.Context, docID string) (documentModel.Record, bool, error)

	PutCalls   int
	MergeCalls int
}

func (m *MockRecordStore) Put(ctx context.Context, docID string, data map[string]any) error {
	m.PutCalls++
	if m.OnPut != nil {
		return m.OnPut(ctx, docID, data)
	}
	return nil
}

func (m *MockRecordStore) Merge(ctx context.Context, docID string, data map[string]any) error {
	m.MergeCalls++
	if m.OnMerge != nil {
		return m.OnMerge(ctx, docID, data)
	}
	return nil
}

func (m *MockRecordStore) Get(ctx context.Context, docID string) (documentModel.Record, bool, error) {
	if m.OnGet != nil {
		return m.OnGet(ctx, docID)
	}
	return documentModel.Record{}, false, nil
}
