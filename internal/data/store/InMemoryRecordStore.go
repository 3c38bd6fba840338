package store

import (
	"context"
	"sync"
	"time"

	"github.com/akolanti/DocRouter/internal/domain/documentModel"
	"github.com/akolanti/DocRouter/pkg/logger_i"
)

var inMemLogger = logger_i.NewLogger("InMem RecordStore")

type InMemoryRecordStore struct {
	recordMutex *sync.RWMutex
	recordMap   map[string]documentModel.Record
	now         func() time.Time
}

func InitInMemoryRecordStore() *InMemoryRecordStore {
	return &InMemoryRecordStore{
		recordMutex: new(sync.RWMutex),
		recordMap:   make(map[string]documentModel.Record),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (store *InMemoryRecordStore) Put(ctx context.Context, docID string, data map[string]any) error {
	delta, err := normalizeData(data)
	if err != nil {
		return err
	}

	store.recordMutex.Lock()
	defer store.recordMutex.Unlock()
	existing := store.recordMap[docID]
	store.recordMap[docID] = documentModel.Record{
		DocID:     docID,
		Timestamp: store.now(),
		Data:      shallowMerge(existing.Data, delta),
	}
	inMemLogger.WithTrace(ctx).Debug("Saved record", "docId", docID, "keys", sortedKeys(delta))
	return nil
}

func (store *InMemoryRecordStore) Merge(ctx context.Context, docID string, data map[string]any) error {
	delta, err := normalizeData(data)
	if err != nil {
		return err
	}

	store.recordMutex.Lock()
	defer store.recordMutex.Unlock()
	existing := store.recordMap[docID]
	store.recordMap[docID] = documentModel.Record{
		DocID:     docID,
		Timestamp: store.now(),
		Data:      shallowMerge(existing.Data, mergeExtractedFields(existing.Data, delta)),
	}
	inMemLogger.WithTrace(ctx).Debug("Merged record", "docId", docID, "keys", sortedKeys(delta))
	return nil
}

func (store *InMemoryRecordStore) Get(ctx context.Context, docID string) (documentModel.Record, bool, error) {
	store.recordMutex.RLock()
	record, found := store.recordMap[docID]
	store.recordMutex.RUnlock()
	if !found {
		return documentModel.Record{}, false, nil
	}

	data, err := normalizeData(record.Data)
	if err != nil {
		return documentModel.Record{}, false, err
	}
	record.Data = data
	return record, true, nil
}
