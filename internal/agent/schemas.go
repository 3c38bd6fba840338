package agent

import (
	"fmt"

	"github.com/akolanti/DocRouter/internal/domain/documentModel"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/tidwall/gjson"
)

// Presence only: extra keys are reported as anomalies but never fail validation, so the
// schemas leave additionalProperties open.
var schemaDocuments = map[documentModel.Intent]string{
	documentModel.IntentInvoice: `{
		"type": "object",
		"required": ["invoice_number", "date", "total_amount", "vendor"],
		"properties": {
			"invoice_number": {}, "date": {}, "total_amount": {}, "vendor": {},
			"due_date": {}, "tax_amount": {}, "line_items": {}
		}
	}`,
	documentModel.IntentRFQ: `{
		"type": "object",
		"required": ["rfq_number", "request_date", "items"],
		"properties": {
			"rfq_number": {}, "request_date": {}, "items": {},
			"delivery_date": {}, "special_requirements": {}
		}
	}`,
	documentModel.IntentComplaint: `{
		"type": "object",
		"required": ["complaint_id", "date_received", "description"],
		"properties": {
			"complaint_id": {}, "date_received": {}, "description": {},
			"customer_info": {}, "resolution_requested": {}
		}
	}`,
	documentModel.IntentUnknown: `{"type": "object"}`,
}

type fieldSchema struct {
	compiled *jsonschema.Schema
	required []string
	expected map[string]bool
}

var fieldSchemas = compileFieldSchemas(schemaDocuments)

func compileFieldSchemas(documents map[documentModel.Intent]string) map[documentModel.Intent]fieldSchema {
	out := make(map[documentModel.Intent]fieldSchema, len(documents))
	for intent, doc := range documents {
		schema := fieldSchema{
			compiled: jsonschema.MustCompileString(fmt.Sprintf("%s.json", intent), doc),
			expected: map[string]bool{},
		}
		parsed := gjson.Parse(doc)
		for _, name := range parsed.Get("required").Array() {
			schema.required = append(schema.required, name.String())
		}
		parsed.Get("properties").ForEach(func(key, _ gjson.Result) bool {
			schema.expected[key.String()] = true
			return true
		})
		out[intent] = schema
	}
	return out
}

// schemaFor falls back to the open object schema for intents without one.
func schemaFor(intent documentModel.Intent) fieldSchema {
	if schema, ok := fieldSchemas[intent]; ok {
		return schema
	}
	return fieldSchemas[documentModel.IntentUnknown]
}

// Checked in order; the first key present decides.
var intentKeys = []struct {
	key    string
	intent documentModel.Intent
}{
	{"invoice_number", documentModel.IntentInvoice},
	{"rfq_number", documentModel.IntentRFQ},
	{"complaint_id", documentModel.IntentComplaint},
}

func intentFromFields(fields map[string]any) documentModel.Intent {
	for _, k := range intentKeys {
		if _, ok := fields[k.key]; ok {
			return k.intent
		}
	}
	return documentModel.IntentUnknown
}

// validateFields runs the intent schema over fields, then lists the absent required
// fields in schema order and every key outside the schema in document order (keys).
// The open schema of unknown intents requires nothing, so every key is an anomaly.
func validateFields(keys []string, fields map[string]any, schema fieldSchema) documentModel.ValidationResult {
	result := documentModel.ValidationResult{
		IsValid:       schema.compiled.Validate(fields) == nil,
		MissingFields: []string{},
		Anomalies:     []string{},
	}
	if !result.IsValid {
		for _, field := range schema.required {
			if _, ok := fields[field]; !ok {
				result.MissingFields = append(result.MissingFields, field)
			}
		}
	}
	for _, key := range keys {
		if !schema.expected[key] {
			result.Anomalies = append(result.Anomalies, "Unexpected field: "+key)
		}
	}
	return result
}
