package dispatcher_test

import (
	"context"
	"sync"

	"github.com/akolanti/DocRouter/internal/domain/documentModel"
	"github.com/akolanti/DocRouter/internal/extract"
)

type MockExtractor struct {
	OnExtractText func(ctx context.Context, content []byte) (string, error)
}

func (m *MockExtractor) ExtractText(ctx context.Context, content []byte) (string, error) {
	if m.OnExtractText != nil {
		return m.OnExtractText(ctx, content)
	}
	return string(content), nil
}

type MockParser struct {
	OnParseMessage func(ctx context.Context, content []byte) (extract.Message, error)
}

func (m *MockParser) ParseMessage(ctx context.Context, content []byte) (extract.Message, error) {
	if m.OnParseMessage != nil {
		return m.OnParseMessage(ctx, content)
	}
	return extract.Message{Body: string(content)}, nil
}

type MockHandler struct {
	AgentName string
	OnProcess func(ctx context.Context, content string, docID string, md documentModel.Metadata) (documentModel.HandlerResult, error)
}

func (m *MockHandler) Name() string { return m.AgentName }

func (m *MockHandler) Process(ctx context.Context, content string, docID string, md documentModel.Metadata) (documentModel.HandlerResult, error) {
	if m.OnProcess != nil {
		return m.OnProcess(ctx, content, docID, md)
	}
	return documentModel.HandlerResult{DocumentID: docID, Agent: m.AgentName, Status: documentModel.StatusProcessed}, nil
}

// CountingStore wraps a RecordStore and counts writes.
type CountingStore struct {
	documentModel.RecordStore
	mu     sync.Mutex
	writes int
}

func (c *CountingStore) Put(ctx context.Context, docID string, data map[string]any) error {
	c.mu.Lock()
	c.writes++
	c.mu.Unlock()
	return c.RecordStore.Put(ctx, docID, data)
}

func (c *CountingStore) Merge(ctx context.Context, docID string, data map[string]any) error {
	c.mu.Lock()
	c.writes++
	c.mu.Unlock()
	return c.RecordStore.Merge(ctx, docID, data)
}

func (c *CountingStore) Writes() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.writes
}

type MockPublisher struct {
	OnPublish func(ctx context.Context, event documentModel.ActionEvent) error
	Events    []documentModel.ActionEvent
}

func (m *MockPublisher) Publish(ctx context.Context, event documentModel.ActionEvent) error {
	m.Events = append(m.Events, event)
	if m.OnPublish != nil {
		return m.OnPublish(ctx, event)
	}
	return nil
}

func (m *MockPublisher) Close() error { return nil }
