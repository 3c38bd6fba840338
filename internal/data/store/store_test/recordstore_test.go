package store_test

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"sync"
	"testing"

	"github.com/akolanti/DocRouter/internal/config"
	"github.com/akolanti/DocRouter/internal/data/redisStore"
	"github.com/akolanti/DocRouter/internal/data/store"
	"github.com/akolanti/DocRouter/internal/domain/documentModel"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newRedisRecordStore(t *testing.T) documentModel.RecordStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return store.NewRedisRecordStore(redisStore.NewTestStore(client))
}

func recordStores(t *testing.T) map[string]documentModel.RecordStore {
	return map[string]documentModel.RecordStore{
		"memory": store.InitInMemoryRecordStore(),
		"redis":  newRedisRecordStore(t),
	}
}

func testCtx() context.Context {
	return context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")
}

func TestRecordStore_PutIsShallowMerge(t *testing.T) {
	for name, records := range recordStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := testCtx()

			if err := records.Put(ctx, "doc-1", map[string]any{
				"classification": map[string]any{"intent": "invoice"},
				"metadata":       map[string]any{"filename": "a.pdf"},
			}); err != nil {
				t.Fatalf("first Put: %v", err)
			}
			if err := records.Put(ctx, "doc-1", map[string]any{
				"metadata": map[string]any{"size": 10},
			}); err != nil {
				t.Fatalf("second Put: %v", err)
			}

			record, found, err := records.Get(ctx, "doc-1")
			if err != nil || !found {
				t.Fatalf("Get: found=%v err=%v", found, err)
			}
			if record.DocID != "doc-1" || record.Timestamp.IsZero() {
				t.Errorf("unexpected record header: %+v", record)
			}
			want := map[string]any{
				"classification": map[string]any{"intent": "invoice"},
				"metadata":       map[string]any{"size": json.Number("10")},
			}
			if !reflect.DeepEqual(record.Data, want) {
				t.Errorf("Data = %#v, want %#v", record.Data, want)
			}
		})
	}
}

func TestRecordStore_MergeDeepMergesExtractedFields(t *testing.T) {
	for name, records := range recordStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := testCtx()

			if err := records.Merge(ctx, "doc-2", map[string]any{
				"extracted_fields": map[string]any{"invoice_number": "INV-1", "vendor": "A"},
				"status":           "first",
			}); err != nil {
				t.Fatalf("first Merge: %v", err)
			}
			if err := records.Merge(ctx, "doc-2", map[string]any{
				"extracted_fields": map[string]any{"vendor": "B", "total_amount": 10},
				"status":           "second",
			}); err != nil {
				t.Fatalf("second Merge: %v", err)
			}

			record, found, err := records.Get(ctx, "doc-2")
			if err != nil || !found {
				t.Fatalf("Get: found=%v err=%v", found, err)
			}
			fields := record.Data["extracted_fields"].(map[string]any)
			wantFields := map[string]any{"invoice_number": "INV-1", "vendor": "B", "total_amount": json.Number("10")}
			if !reflect.DeepEqual(fields, wantFields) {
				t.Errorf("extracted_fields = %#v, want %#v", fields, wantFields)
			}
			if record.Data["status"] != "second" {
				t.Errorf("non extracted_fields keys must be overwritten, got %v", record.Data["status"])
			}
		})
	}
}

func TestRecordStore_KeepsLargeIntegers(t *testing.T) {
	const invoiceNumber = "12345678901234567891"
	for name, records := range recordStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := testCtx()
			if err := records.Put(ctx, "doc-big", map[string]any{
				"extracted_fields": map[string]any{"invoice_number": json.Number(invoiceNumber)},
			}); err != nil {
				t.Fatalf("Put: %v", err)
			}
			if err := records.Merge(ctx, "doc-big", map[string]any{
				"extracted_fields": map[string]any{"total_amount": json.Number("9007199254740993")},
			}); err != nil {
				t.Fatalf("Merge: %v", err)
			}

			record, found, err := records.Get(ctx, "doc-big")
			if err != nil || !found {
				t.Fatalf("Get: found=%v err=%v", found, err)
			}
			fields := record.Data["extracted_fields"].(map[string]any)
			if fields["invoice_number"] != json.Number(invoiceNumber) {
				t.Errorf("invoice_number = %#v, want %s", fields["invoice_number"], invoiceNumber)
			}
			if fields["total_amount"] != json.Number("9007199254740993") {
				t.Errorf("total_amount = %#v", fields["total_amount"])
			}
		})
	}
}

func TestRecordStore_GetMissing(t *testing.T) {
	for name, records := range recordStores(t) {
		t.Run(name, func(t *testing.T) {
			_, found, err := records.Get(testCtx(), "ghost-id")
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if found {
				t.Error("expected found=false for a missing document")
			}
		})
	}
}

func TestRecordStore_CallerCannotAliasStoredData(t *testing.T) {
	records := store.InitInMemoryRecordStore()
	ctx := testCtx()
	fields := map[string]any{"vendor": "A"}

	if err := records.Put(ctx, "doc-3", map[string]any{"extracted_fields": fields}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	fields["vendor"] = "mutated"

	record, _, _ := records.Get(ctx, "doc-3")
	got := record.Data["extracted_fields"].(map[string]any)["vendor"]
	if got != "A" {
		t.Errorf("stored value changed through caller map: %v", got)
	}
}

func TestRecordStore_ConcurrentWritersDistinctKeys(t *testing.T) {
	for name, records := range recordStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := testCtx()
			const workers = 20

			var wg sync.WaitGroup
			for i := 0; i < workers; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					docID := fmt.Sprintf("doc-%d", i)
					if err := records.Put(ctx, docID, map[string]any{"n": i}); err != nil {
						t.Errorf("Put(%s): %v", docID, err)
					}
				}(i)
			}
			wg.Wait()

			for i := 0; i < workers; i++ {
				record, found, err := records.Get(ctx, fmt.Sprintf("doc-%d", i))
				if err != nil || !found {
					t.Fatalf("Get(doc-%d): found=%v err=%v", i, found, err)
				}
				if record.Data["n"] != json.Number(strconv.Itoa(i)) {
					t.Errorf("doc-%d corrupted: %v", i, record.Data["n"])
				}
			}
		})
	}
}

func TestRedisRecordStore_Offline(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	records := store.NewRedisRecordStore(redisStore.NewTestStore(client))
	mr.Close()

	err := records.Put(testCtx(), "doc", map[string]any{"a": 1})
	if err == nil {
		t.Fatal("expected an error when redis is down")
	}
}

func TestOpenBackends_FallsBackToMemory(t *testing.T) {
	settings := config.Settings{
		StoreBackend: config.StoreBackendRedis,
		RedisAddr:    "127.0.0.1:1",
	}

	backends := store.OpenBackends(context.Background(), settings)
	if backends.Kind != config.StoreBackendMemory {
		t.Fatalf("Kind = %q, want memory fallback", backends.Kind)
	}
	if backends.Records == nil || backends.Jobs == nil {
		t.Fatal("fallback must provide every store")
	}
}

func TestOpenBackends_Memory(t *testing.T) {
	backends := store.OpenBackends(context.Background(), config.Settings{StoreBackend: config.StoreBackendMemory})
	if backends.Kind != config.StoreBackendMemory {
		t.Errorf("Kind = %q, want memory", backends.Kind)
	}
}
