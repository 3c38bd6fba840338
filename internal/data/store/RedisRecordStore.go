package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/akolanti/DocRouter/internal/config"
	"github.com/akolanti/DocRouter/internal/data/redisStore"
	"github.com/akolanti/DocRouter/internal/domain/documentModel"
	"github.com/akolanti/DocRouter/pkg/logger_i"
)

const (
	recordKeyPrefix      = "record:"
	recordFieldPrefix    = "data."
	recordTimestampField = "timestamp"
)

// RedisRecordStore keeps one hash per document. Every top-level data key is its own
// hash field holding JSON, so a shallow merge is a single HSET.
type RedisRecordStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
	ttl    time.Duration
}

func GetRedisRecordStore(ctx context.Context, opts redisStore.Options) *RedisRecordStore {
	s := redisStore.GetRedisStore(ctx, opts, config.RedisRecordStore)
	if s == nil {
		return nil
	}
	return NewRedisRecordStore(s)
}

func NewRedisRecordStore(s *redisStore.Store) *RedisRecordStore {
	return &RedisRecordStore{
		store:  s,
		logger: logger_i.NewLogger("RecordStore"),
		ttl:    config.RedisRecordTTL,
	}
}

func recordKey(docID string) string {
	return recordKeyPrefix + docID
}

func (s *RedisRecordStore) Put(ctx context.Context, docID string, data map[string]any) error {
	delta, err := normalizeData(data)
	if err != nil {
		return err
	}
	return s.write(ctx, docID, delta)
}

// Merge reads the stored extracted_fields before writing. The read and the write are
// not atomic; a concurrent writer between them can be lost.
func (s *RedisRecordStore) Merge(ctx context.Context, docID string, data map[string]any) error {
	delta, err := normalizeData(data)
	if err != nil {
		return err
	}

	if _, ok := delta[documentModel.KeyExtractedFields]; ok {
		existing := map[string]any{}
		raw, err := s.store.HashGet(ctx, recordKey(docID), recordFieldPrefix+documentModel.KeyExtractedFields)
		if err != nil && !s.store.IsNil(err) {
			return fmt.Errorf("read extracted_fields: %w", err)
		}
		if err == nil {
			var current any
			if err := decodeValue([]byte(raw), &current); err != nil {
				return fmt.Errorf("decode extracted_fields: %w", err)
			}
			existing[documentModel.KeyExtractedFields] = current
		}
		delta = mergeExtractedFields(existing, delta)
	}
	return s.write(ctx, docID, delta)
}

func (s *RedisRecordStore) write(ctx context.Context, docID string, delta map[string]any) error {
	log := s.logger.WithTrace(ctx).With("docId", docID)

	fields := make(map[string]interface{}, len(delta)+1)
	for key, value := range delta {
		encoded, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("encode field %s: %w", key, err)
		}
		fields[recordFieldPrefix+key] = encoded
	}
	fields[recordTimestampField] = time.Now().UTC().Format(time.RFC3339Nano)

	if err := s.store.HashSetWithTTL(ctx, recordKey(docID), fields, s.ttl); err != nil {
		log.Error("Failed to write record", "error", err)
		return fmt.Errorf("%w: %v", documentModel.ErrStoreUnavailable, err)
	}
	log.Debug("Saved record to Redis", "keys", sortedKeys(delta))
	return nil
}

func (s *RedisRecordStore) Get(ctx context.Context, docID string) (documentModel.Record, bool, error) {
	log := s.logger.WithTrace(ctx).With("docId", docID)

	fields, err := s.store.HashGetAll(ctx, recordKey(docID))
	if err != nil {
		log.Error("Failed to read record", "error", err)
		return documentModel.Record{}, false, fmt.Errorf("%w: %v", documentModel.ErrStoreUnavailable, err)
	}
	if len(fields) == 0 {
		return documentModel.Record{}, false, nil
	}

	record := documentModel.Record{DocID: docID, Data: make(map[string]any, len(fields))}
	for field, raw := range fields {
		if field == recordTimestampField {
			record.Timestamp, err = time.Parse(time.RFC3339Nano, raw)
			if err != nil {
				log.Warn("Unreadable record timestamp", "value", raw)
			}
			continue
		}
		key, ok := strings.CutPrefix(field, recordFieldPrefix)
		if !ok {
			continue
		}
		var value any
		if err := decodeValue([]byte(raw), &value); err != nil {
			return documentModel.Record{}, false, fmt.Errorf("decode field %s: %w", key, err)
		}
		record.Data[key] = value
	}
	return record, true, nil
}
