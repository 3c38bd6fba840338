package agent

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/akolanti/DocRouter/internal/domain/documentModel"
)

func TestFieldSchemas_CompiledRequirements(t *testing.T) {
	tests := []struct {
		intent       documentModel.Intent
		wantRequired []string
		fields       map[string]any
		wantErr      bool
	}{
		{
			intent:       documentModel.IntentInvoice,
			wantRequired: []string{"invoice_number", "date", "total_amount", "vendor"},
			fields:       map[string]any{"invoice_number": "INV-1", "date": "2023-01-01", "total_amount": json.Number("10"), "vendor": "A"},
		},
		{
			intent:       documentModel.IntentInvoice,
			wantRequired: []string{"invoice_number", "date", "total_amount", "vendor"},
			fields:       map[string]any{"invoice_number": "INV-1"},
			wantErr:      true,
		},
		{
			intent:       documentModel.IntentRFQ,
			wantRequired: []string{"rfq_number", "request_date", "items"},
			fields:       map[string]any{"rfq_number": "R1", "request_date": "2024-02-02", "items": []any{}, "notes": "x"},
		},
		{
			intent:       documentModel.IntentComplaint,
			wantRequired: []string{"complaint_id", "date_received", "description"},
			fields:       map[string]any{"complaint_id": "C9"},
			wantErr:      true,
		},
		{
			intent: documentModel.IntentUnknown,
			fields: map[string]any{"anything": true},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.intent), func(t *testing.T) {
			schema := schemaFor(tt.intent)
			if !reflect.DeepEqual(schema.required, tt.wantRequired) {
				t.Errorf("required = %v, want %v", schema.required, tt.wantRequired)
			}
			err := schema.compiled.Validate(tt.fields)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSchemaFor_FallsBackToOpenObject(t *testing.T) {
	schema := schemaFor(documentModel.IntentSyllabus)
	if len(schema.required) != 0 || len(schema.expected) != 0 {
		t.Fatalf("fallback schema = %v / %v, want empty", schema.required, schema.expected)
	}
	if err := schema.compiled.Validate([]any{1}); err == nil {
		t.Fatal("array accepted by object schema")
	}
}
