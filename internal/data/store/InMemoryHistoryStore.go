package store

import (
	"context"
	"slices"
	"sync"

	"github.com/akolanti/DocRouter/internal/config"
	"github.com/akolanti/DocRouter/internal/domain/documentModel"
)

type InMemoryHistoryStore struct {
	historyLock *sync.RWMutex
	historyMap  map[string][]documentModel.HistoryEntry
	depth       int
}

func InitInMemoryHistoryStore() *InMemoryHistoryStore {
	return &InMemoryHistoryStore{
		historyLock: new(sync.RWMutex),
		historyMap:  make(map[string][]documentModel.HistoryEntry),
		depth:       config.HistoryDepth,
	}
}

func (store *InMemoryHistoryStore) Append(ctx context.Context, docID string, entry documentModel.HistoryEntry) error {
	store.historyLock.Lock()
	defer store.historyLock.Unlock()
	entries := append(store.historyMap[docID], entry)
	if len(entries) > store.depth {
		entries = entries[len(entries)-store.depth:]
	}
	store.historyMap[docID] = entries
	return nil
}

func (store *InMemoryHistoryStore) List(ctx context.Context, docID string) ([]documentModel.HistoryEntry, error) {
	store.historyLock.RLock()
	defer store.historyLock.RUnlock()
	return slices.Clone(store.historyMap[docID]), nil
}
