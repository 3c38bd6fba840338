package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/akolanti/DocRouter/internal/config"
	"github.com/akolanti/DocRouter/internal/data/redisStore"
	"github.com/akolanti/DocRouter/internal/domain/documentModel"
	"github.com/akolanti/DocRouter/pkg/logger_i"
)

const historyKeyPrefix = "history:"

type RedisHistoryStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

func GetRedisHistoryStore(ctx context.Context, opts redisStore.Options) *RedisHistoryStore {
	s := redisStore.GetRedisStore(ctx, opts, config.RedisHistoryStore)
	if s == nil {
		return nil
	}
	return NewRedisHistoryStore(s)
}

func NewRedisHistoryStore(s *redisStore.Store) *RedisHistoryStore {
	return &RedisHistoryStore{
		store:  s,
		logger: logger_i.NewLogger("HistoryStore"),
	}
}

func (s *RedisHistoryStore) Append(ctx context.Context, docID string, entry documentModel.HistoryEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	err = s.store.ListPushCapped(ctx, historyKeyPrefix+docID, data, config.HistoryDepth, config.RedisHistoryTTL)
	if err != nil {
		s.logger.WithTrace(ctx).Error("error saving history entry", "docId", docID, "error", err)
	}
	return err
}

func (s *RedisHistoryStore) List(ctx context.Context, docID string) ([]documentModel.HistoryEntry, error) {
	raw, err := s.store.ListGetAll(ctx, historyKeyPrefix+docID)
	if err != nil {
		s.logger.WithTrace(ctx).Error("Error getting history", "docId", docID, "error", err)
		return nil, err
	}

	entries := make([]documentModel.HistoryEntry, 0, len(raw))
	for _, item := range raw {
		var entry documentModel.HistoryEntry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			return nil, fmt.Errorf("decode history entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
