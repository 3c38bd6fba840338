package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/akolanti/DocRouter/internal/domain/documentModel"
	"github.com/akolanti/DocRouter/pkg/logger_i"
	"github.com/tidwall/gjson"
)

// JSONAgent handles structured payloads. The payload's own keys decide its intent,
// whatever the caller put in metadata.
type JSONAgent struct {
	store  documentModel.RecordStore
	logger *logger_i.Logger
}

func NewJSONAgent(store documentModel.RecordStore) *JSONAgent {
	return &JSONAgent{
		store:  store,
		logger: logger_i.NewLogger("JSONAgent"),
	}
}

func (a *JSONAgent) Name() string { return documentModel.AgentJSON }

// Process never fails on bad input: malformed payloads come back as a failed result and
// the error text is stored. Only a store failure is returned as an error.
func (a *JSONAgent) Process(ctx context.Context, content string, docID string, md documentModel.Metadata) (documentModel.HandlerResult, error) {
	start := time.Now()
	log := a.logger.WithTrace(ctx).With("docId", docID)

	result := documentModel.HandlerResult{
		DocumentID:      docID,
		Agent:           documentModel.AgentJSON,
		ExtractedFields: map[string]any{},
		Metadata:        md,
	}

	fields, keys, err := decodeObject(content)
	if err != nil {
		log.Error("JSON processing failed", "error", err)
		result.Status = documentModel.StatusFailed
		result.Error = err.Error()
		observe(documentModel.AgentJSON, result.Status, start)
		if err := a.store.Put(ctx, docID, map[string]any{documentModel.KeyError: result.Error}); err != nil {
			return result, fmt.Errorf("record json failure: %w", err)
		}
		return result, nil
	}

	intent := intentFromFields(fields)
	validation := validateFields(keys, fields, schemaFor(intent))

	result.Intent = intent
	result.ExtractedFields = fields
	result.Validation = &validation
	result.Status = documentModel.StatusProcessed
	observe(documentModel.AgentJSON, result.Status, start)

	err = a.store.Merge(ctx, docID, map[string]any{
		documentModel.KeyExtractedFields:  fields,
		documentModel.KeyValidationResult: validation,
		documentModel.KeyProcessingResult: map[string]any{
			"agent":  documentModel.AgentJSON,
			"intent": intent,
		},
	})
	if err != nil {
		return result, fmt.Errorf("record json result: %w", err)
	}
	log.Info("Processed json document", "intent", intent, "valid", validation.IsValid)
	return result, nil
}

// decodeObject parses a single JSON object and returns it with its top-level keys in
// document order. Duplicate keys keep their first position.
func decodeObject(content string) (map[string]any, []string, error) {
	decoder := json.NewDecoder(strings.NewReader(content))
	decoder.UseNumber()

	var root any
	if err := decoder.Decode(&root); err != nil {
		return nil, nil, &documentModel.MalformedInputError{Cause: err}
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return nil, nil, &documentModel.MalformedInputError{Cause: errors.New("unexpected data after top-level value")}
	}
	if err := schemaFor(documentModel.IntentUnknown).compiled.Validate(root); err != nil {
		return nil, nil, &documentModel.MalformedInputError{Cause: fmt.Errorf("top-level value must be an object: %w", err)}
	}

	var keys []string
	seen := make(map[string]bool)
	gjson.Parse(content).ForEach(func(key, _ gjson.Result) bool {
		k := key.String()
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
		return true
	})
	return root.(map[string]any), keys, nil
}
