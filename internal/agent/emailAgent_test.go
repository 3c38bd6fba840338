package agent_test

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"strconv"
	"testing"

	"github.com/akolanti/DocRouter/internal/agent"
	"github.com/akolanti/DocRouter/internal/data/store"
	"github.com/akolanti/DocRouter/internal/domain/documentModel"
)

func TestExtractEntities(t *testing.T) {
	text := "From alice@example.com to bob@company.org on 12/05/2024.\n" +
		"This is URGENT. How soon can you ship? What is the price? When will it arrive? Who signs?"

	got := agent.ExtractEntities(text)
	if got.Sender != "alice@example.com" || got.Recipient != "bob@company.org" {
		t.Errorf("sender/recipient = %q/%q", got.Sender, got.Recipient)
	}
	if got.Date != "12/05/2024" {
		t.Errorf("Date = %q", got.Date)
	}
	if got.Urgency != documentModel.UrgencyHigh {
		t.Errorf("Urgency = %q", got.Urgency)
	}
	want := []string{"How soon can you ship?", "What is the price?", "When will it arrive?"}
	if !reflect.DeepEqual(got.KeyPhrases, want) {
		t.Errorf("KeyPhrases = %q, want %q", got.KeyPhrases, want)
	}
}

func TestExtractEntities_Urgency(t *testing.T) {
	tests := []struct {
		text string
		want documentModel.Urgency
	}{
		{"Please reply URGENTLY", documentModel.UrgencyHigh},
		{"This is importantly late", documentModel.UrgencyHigh},
		{"Need this ASAP!", documentModel.UrgencyHigh},
		{"Respond immediately.", documentModel.UrgencyHigh},
		{"Nothing pressing here", documentModel.UrgencyNormal},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := agent.ExtractEntities(tt.text).Urgency; got != tt.want {
				t.Errorf("Urgency = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractEntities_Defaults(t *testing.T) {
	got := agent.ExtractEntities("Meeting moved to 3 March 2025")
	if got.Sender != "" || got.Recipient != "" {
		t.Errorf("unexpected addresses %q/%q", got.Sender, got.Recipient)
	}
	if got.Date != "3 March 2025" {
		t.Errorf("Date = %q", got.Date)
	}
	if got.Urgency != documentModel.UrgencyNormal {
		t.Errorf("Urgency = %q", got.Urgency)
	}
	if len(got.KeyPhrases) != 0 {
		t.Errorf("KeyPhrases = %v", got.KeyPhrases)
	}
}

func TestDecideAction(t *testing.T) {
	tests := []struct {
		name    string
		intent  documentModel.Intent
		phrases []string
		want    documentModel.Action
	}{
		{"invoice", documentModel.IntentInvoice, nil, documentModel.ActionCreateBillingRecord},
		{"rfq", documentModel.IntentRFQ, nil, documentModel.ActionCreateOpportunity},
		{"complaint", documentModel.IntentComplaint, nil, documentModel.ActionCreateSupportCase},
		{"regulation", documentModel.IntentRegulation, []string{"data retention"}, documentModel.ActionStoreKnowledgeBase},
		{"regulation with gdpr", documentModel.IntentRegulation, []string{"retention", "GDPR"}, documentModel.ActionCreateComplianceAlert},
		{"regulation with hipaa", documentModel.IntentRegulation, []string{" hipaa "}, documentModel.ActionCreateComplianceAlert},
		{"legal term inside a longer phrase", documentModel.IntentRegulation, []string{"GDPR compliance audit"}, documentModel.ActionStoreKnowledgeBase},
		{"legal term prefix", documentModel.IntentRegulation, []string{"soxhlet extraction"}, documentModel.ActionStoreKnowledgeBase},
		{"legal term ignored off regulation", documentModel.IntentComplaint, []string{"GDPR"}, documentModel.ActionCreateSupportCase},
		{"syllabus", documentModel.IntentSyllabus, nil, documentModel.ActionStoreLearningMaterial},
		{"unknown", documentModel.IntentUnknown, nil, documentModel.ActionCreateTicket},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := agent.DecideAction(tt.intent, tt.phrases); got != tt.want {
				t.Errorf("DecideAction = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEmailAgent_UsesMetadataPhrases(t *testing.T) {
	md := documentModel.Metadata{
		documentModel.MetaIntent:     "regulation",
		documentModel.MetaKeyPhrases: []any{"HIPAA", 7},
	}
	res, err := agent.NewEmailAgent(&MockRecordStore{}).Process(context.Background(), "Can you review this?", "doc", md)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if res.Action != documentModel.ActionCreateComplianceAlert {
		t.Errorf("Action = %q", res.Action)
	}
	if !reflect.DeepEqual(res.KeyPhrases, []string{"HIPAA"}) {
		t.Errorf("KeyPhrases = %v", res.KeyPhrases)
	}
}

func TestEmailAgent_FallsBackToQuestions(t *testing.T) {
	md := documentModel.Metadata{documentModel.MetaIntent: documentModel.IntentRFQ}
	res, _ := agent.NewEmailAgent(&MockRecordStore{}).Process(context.Background(), "Hi. Could you quote 40 desks?", "doc", md)
	if res.Intent != documentModel.IntentRFQ || res.Action != documentModel.ActionCreateOpportunity {
		t.Errorf("intent/action = %q/%q", res.Intent, res.Action)
	}
	if !reflect.DeepEqual(res.KeyPhrases, []string{"Could you quote 40 desks?"}) {
		t.Errorf("KeyPhrases = %v", res.KeyPhrases)
	}
}

func TestEmailAgent_Idempotent(t *testing.T) {
	ctx := context.Background()
	records := store.InitInMemoryRecordStore()
	a := agent.NewEmailAgent(records)
	md := documentModel.Metadata{documentModel.MetaIntent: "complaint", "filename": "note.txt"}
	content := "Dear Team, I am dissatisfied. Who can help? Regards,"

	if _, err := a.Process(ctx, content, "doc-idem", md); err != nil {
		t.Fatalf("first Process: %v", err)
	}
	first, _, _ := records.Get(ctx, "doc-idem")
	if _, err := a.Process(ctx, content, "doc-idem", md); err != nil {
		t.Fatalf("second Process: %v", err)
	}
	second, _, _ := records.Get(ctx, "doc-idem")

	if !reflect.DeepEqual(first.Data, second.Data) {
		t.Errorf("data differs between identical runs:\n%v\n%v", first.Data, second.Data)
	}
	if second.Timestamp.Before(first.Timestamp) {
		t.Errorf("timestamp went backwards")
	}
	if _, ok := second.Data[documentModel.KeyEmailProcessing]; !ok {
		t.Errorf("email_processing missing: %v", second.Data)
	}
}

func TestEmailAgent_StoreFailureIsAbsorbed(t *testing.T) {
	mock := &MockRecordStore{
		OnPut: func(ctx context.Context, docID string, data map[string]any) error {
			if _, ok := data[documentModel.KeyError]; ok {
				return nil
			}
			return errors.New("write refused")
		},
	}
	res, err := agent.NewEmailAgent(mock).Process(context.Background(), "hello", "doc", nil)
	if err != nil {
		t.Fatalf("email agent returned error: %v", err)
	}
	if res.Status != documentModel.StatusFailed || res.Error != "write refused" {
		t.Errorf("result = %+v", res)
	}
	if mock.PutCalls != 2 {
		t.Errorf("PutCalls = %d, want result write and error write", mock.PutCalls)
	}
}

func TestEmailAgent_PanicIsAbsorbed(t *testing.T) {
	mock := &MockRecordStore{}
	mock.OnPut = func(ctx context.Context, docID string, data map[string]any) error {
		if mock.PutCalls == 1 {
			panic("boom")
		}
		return nil
	}
	res, err := agent.NewEmailAgent(mock).Process(context.Background(), "hello", "doc", nil)
	if err != nil || res.Status != documentModel.StatusFailed {
		t.Fatalf("result = %+v, err = %v", res, err)
	}
}

func TestBinaryAgent_PageCount(t *testing.T) {
	tests := []struct {
		content string
		pages   int
	}{
		{"", 1},
		{"single page", 1},
		{"one\ftwo", 2},
		{"one\ftwo\f\f", 4},
	}
	for _, tt := range tests {
		ctx := context.Background()
		records := store.InitInMemoryRecordStore()
		res, err := agent.NewBinaryAgent(records).Process(ctx, tt.content, "pdf-doc", documentModel.Metadata{"filename": "a.pdf"})
		if err != nil {
			t.Fatalf("Process: %v", err)
		}
		if res.Pages != tt.pages || res.Status != documentModel.StatusProcessed {
			t.Errorf("content %q: pages=%d status=%q, want %d", tt.content, res.Pages, res.Status, tt.pages)
		}
		rec, _, _ := records.Get(ctx, "pdf-doc")
		summary := rec.Data[documentModel.KeyPDFProcessing].(map[string]any)
		if summary["pages"] != json.Number(strconv.Itoa(tt.pages)) {
			t.Errorf("stored pages = %v", summary["pages"])
		}
	}
}
