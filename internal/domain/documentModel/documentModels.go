package documentModel

import (
	"strings"
	"time"
)

type Intent string
type ContentType string
type Status string
type Action string
type Urgency string

const (
	IntentInvoice    Intent = "invoice"
	IntentRFQ        Intent = "rfq"
	IntentComplaint  Intent = "complaint"
	IntentRegulation Intent = "regulation"
	IntentSyllabus   Intent = "syllabus"
	IntentUnknown    Intent = "unknown"

	ContentPDF  ContentType = "pdf"
	ContentJSON ContentType = "json"
	ContentEML  ContentType = "eml"
	ContentTXT  ContentType = "txt"

	StatusProcessed Status = "processed"
	StatusFailed    Status = "failed"

	ActionCreateBillingRecord   Action = "create_billing_record"
	ActionCreateOpportunity     Action = "create_opportunity"
	ActionCreateSupportCase     Action = "create_support_case"
	ActionStoreKnowledgeBase    Action = "store_in_knowledge_base"
	ActionStoreLearningMaterial Action = "store_in_learning_materials"
	ActionCreateComplianceAlert Action = "create_compliance_alert"
	ActionCreateTicket          Action = "create_ticket"

	UrgencyHigh   Urgency = "high"
	UrgencyNormal Urgency = "normal"

	AgentJSON  = "json_agent"
	AgentEmail = "email_agent"
	AgentPDF   = "pdf_agent"
)

// Metadata keys read or written by the pipeline.
const (
	MetaIntent     = "intent"
	MetaKeyPhrases = "key_phrases"
	MetaFilename   = "filename"
	MetaSize       = "size"
	MetaSubject    = "subject"
	MetaSender     = "sender"
	MetaHeaders    = "headers"
)

// Record keys written to the store.
const (
	KeyClassification   = "classification"
	KeyMetadata         = "metadata"
	KeyExtractedFields  = "extracted_fields"
	KeyValidationResult = "validation_result"
	KeyProcessingResult = "processing_result"
	KeyEmailProcessing  = "email_processing"
	KeyPDFProcessing    = "pdf_processing"
	KeyError            = "error"
)

var knownIntents = map[Intent]bool{
	IntentInvoice:    true,
	IntentRFQ:        true,
	IntentComplaint:  true,
	IntentRegulation: true,
	IntentSyllabus:   true,
	IntentUnknown:    true,
}

// ParseIntent maps any label outside the closed set to IntentUnknown.
func ParseIntent(label string) Intent {
	intent := Intent(strings.ToLower(strings.TrimSpace(label)))
	if knownIntents[intent] {
		return intent
	}
	return IntentUnknown
}

// ParseContentType resolves a declared type. There is no sniffing fallback.
func ParseContentType(declared string) (ContentType, error) {
	switch ct := ContentType(strings.ToLower(strings.TrimSpace(declared))); ct {
	case ContentPDF, ContentJSON, ContentEML, ContentTXT:
		return ct, nil
	default:
		return "", &UnsupportedTypeError{Type: declared}
	}
}

type Metadata map[string]any

// With returns a copy of m with extra layered on top. m is left untouched.
func (m Metadata) With(extra map[string]any) Metadata {
	out := make(Metadata, len(m)+len(extra))
	for k, v := range m {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

func (m Metadata) String(key string) (string, bool) {
	v, ok := m[key].(string)
	return v, ok
}

type ValidationResult struct {
	IsValid       bool     `json:"is_valid"`
	MissingFields []string `json:"missing_fields"`
	Anomalies     []string `json:"anomalies"`
}

type EmailEntities struct {
	Sender     string   `json:"sender,omitempty"`
	Recipient  string   `json:"recipient,omitempty"`
	Date       string   `json:"date,omitempty"`
	Urgency    Urgency  `json:"urgency"`
	KeyPhrases []string `json:"key_phrases"`
}

// HandlerResult is the outcome of one type handler. Which fields are set depends on
// the agent that produced it.
type HandlerResult struct {
	DocumentID      string            `json:"document_id"`
	Agent           string            `json:"agent"`
	Status          Status            `json:"status"`
	Intent          Intent            `json:"intent,omitempty"`
	ExtractedFields any               `json:"extracted_fields,omitempty"`
	Validation      *ValidationResult `json:"validation,omitempty"`
	Action          Action            `json:"crm_action,omitempty"`
	KeyPhrases      []string          `json:"key_phrases,omitempty"`
	ContentType     ContentType       `json:"content_type,omitempty"`
	Pages           int               `json:"pages,omitempty"`
	Metadata        Metadata          `json:"metadata,omitempty"`
	Error           string            `json:"error,omitempty"`
}

type ProcessingStep struct {
	Agent  string        `json:"agent"`
	Result HandlerResult `json:"result"`
}

type ClassificationResult struct {
	DocumentID      string           `json:"document_id"`
	FileType        ContentType      `json:"file_type"`
	Intent          Intent           `json:"intent"`
	Metadata        Metadata         `json:"metadata"`
	ProcessingSteps []ProcessingStep `json:"processing_steps"`
	KeyPhrases      []string         `json:"key_phrases"`
}

// Record is the latest snapshot held for a document id.
type Record struct {
	DocID     string         `json:"doc_id"`
	Timestamp time.Time      `json:"timestamp"`
	Data      map[string]any `json:"data"`
}

type WriteOperation string

const (
	OperationPut   WriteOperation = "put"
	OperationMerge WriteOperation = "merge"
)

type HistoryEntry struct {
	Timestamp time.Time      `json:"timestamp"`
	Operation WriteOperation `json:"operation"`
	Keys      []string       `json:"keys"`
}

// ActionEvent is emitted for every processing step that decided a downstream action.
type ActionEvent struct {
	DocumentID string    `json:"document_id"`
	Agent      string    `json:"agent"`
	Intent     Intent    `json:"intent"`
	Action     Action    `json:"action"`
	Timestamp  time.Time `json:"timestamp"`
}
