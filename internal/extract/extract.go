// Package extract turns raw upload bytes into text the classifier can read.
package extract

import "context"

// TextExtractor pulls plain text out of a binary payload (PDF).
type TextExtractor interface {
	ExtractText(ctx context.Context, content []byte) (string, error)
}

// MessageParser splits an RFC-822 message into body and headers.
type MessageParser interface {
	ParseMessage(ctx context.Context, content []byte) (Message, error)
}

// TextNormalizer decodes bytes declared as plain text.
type TextNormalizer interface {
	NormalizeText(ctx context.Context, content []byte) (string, error)
}

type Message struct {
	Subject string              `json:"subject"`
	Sender  string              `json:"sender"`
	Body    string              `json:"body"`
	Headers map[string][]string `json:"headers"`
}

// PageBreak separates pages in extracted PDF text.
const PageBreak = "\f"
