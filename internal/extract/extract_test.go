package extract

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/akolanti/DocRouter/internal/domain/documentModel"
	"github.com/akolanti/DocRouter/pkg/logger_i"
	"github.com/dslipak/pdf"
)

func TestEmailParser_ParseMessage(t *testing.T) {
	raw := strings.Join([]string{
		"From: Alice <alice@example.com>",
		"To: bob@company.com",
		"Subject: =?UTF-8?Q?Invoice_question?=",
		"Content-Type: text/plain; charset=utf-8",
		"",
		"Dear Bob,",
		"When is the payment due date?",
		"Regards,",
		"",
	}, "\r\n")

	msg, err := NewEmailParser().ParseMessage(context.Background(), []byte(raw))
	if err != nil {
		t.Fatalf("ParseMessage: %v", err)
	}
	if msg.Subject != "Invoice question" {
		t.Errorf("Subject = %q", msg.Subject)
	}
	if !strings.Contains(msg.Sender, "alice@example.com") {
		t.Errorf("Sender = %q", msg.Sender)
	}
	if !strings.Contains(msg.Body, "payment due date") {
		t.Errorf("Body = %q", msg.Body)
	}
	if len(msg.Headers["To"]) != 1 {
		t.Errorf("Headers = %v", msg.Headers)
	}
}

func TestEmailParser_Empty(t *testing.T) {
	_, err := NewEmailParser().ParseMessage(context.Background(), []byte("  \n"))
	if !errors.Is(err, documentModel.ErrParse) {
		t.Fatalf("err = %v, want ErrParse", err)
	}
}

func TestPDFExtractor_RejectsGarbage(t *testing.T) {
	tests := []struct {
		name    string
		content []byte
	}{
		{"empty", nil},
		{"not a pdf", []byte("this is definitely not a pdf")},
		{"truncated header", []byte("%PDF-1.4\n1 0 obj\n")},
	}

	extractor := NewPDFExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := extractor.ExtractText(context.Background(), tt.content)
			var extractionErr *documentModel.ExtractionError
			if !errors.As(err, &extractionErr) {
				t.Fatalf("err = %v, want ExtractionError", err)
			}
		})
	}
}

func TestPDFExtractor_StalledPageKeepsSlot(t *testing.T) {
	extractor := &PDFExtractor{
		logger:      logger_i.NewLogger("PDFExtractor"),
		pageTimeout: 20 * time.Millisecond,
		slots:       make(chan struct{}, 1),
	}
	release := make(chan struct{})
	stalled := func(map[string]*pdf.Font) (string, error) {
		<-release
		return "late", nil
	}
	quick := func(map[string]*pdf.Font) (string, error) { return "page text", nil }

	if _, err := extractor.protectExtract(context.Background(), stalled); !errors.Is(err, errPageTimeout) {
		t.Fatalf("stalled decode err = %v, want errPageTimeout", err)
	}
	if _, err := extractor.protectExtract(context.Background(), quick); !errors.Is(err, errDecodersBusy) {
		t.Fatalf("decode with no free slot err = %v, want errDecodersBusy", err)
	}

	close(release)
	deadline := time.Now().Add(time.Second)
	for len(extractor.slots) != 0 {
		if time.Now().After(deadline) {
			t.Fatal("stalled decode never released its slot")
		}
		time.Sleep(time.Millisecond)
	}

	text, err := extractor.protectExtract(context.Background(), quick)
	if err != nil || text != "page text" {
		t.Fatalf("protectExtract = (%q, %v), want page text", text, err)
	}
}

func TestPDFExtractor_CancelledContextStopsWaiting(t *testing.T) {
	extractor := &PDFExtractor{
		logger:      logger_i.NewLogger("PDFExtractor"),
		pageTimeout: time.Minute,
		slots:       make(chan struct{}, 1),
	}
	release := make(chan struct{})
	defer close(release)
	stalled := func(map[string]*pdf.Font) (string, error) {
		<-release
		return "", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := extractor.protectExtract(ctx, stalled); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want context.DeadlineExceeded", err)
	}
}

func TestPlainTextNormalizer_Passthrough(t *testing.T) {
	text, err := NewPlainTextNormalizer().NormalizeText(context.Background(), []byte("Dear Team,\nregards,"))
	if err != nil {
		t.Fatalf("NormalizeText: %v", err)
	}
	if text != "Dear Team,\nregards," {
		t.Errorf("text = %q", text)
	}
}

func TestPlainTextNormalizer_InvalidUTF8(t *testing.T) {
	text, _ := NewPlainTextNormalizer().NormalizeText(context.Background(), []byte{'o', 'k', 0xff})
	if text != "ok\uFFFD" {
		t.Errorf("text = %q", text)
	}
}

func TestIsRichText(t *testing.T) {
	if !isRichText([]byte(`{\rtf1\ansi hello}`)) {
		t.Error("rtf not detected")
	}
	if !isRichText([]byte("PK\x03\x04rest")) {
		t.Error("zip container not detected")
	}
	if isRichText([]byte("plain words")) {
		t.Error("plain text misdetected")
	}
}
