package extract

import (
	"bytes"
	"context"
	"errors"
	"strings"

	"github.com/akolanti/DocRouter/internal/domain/documentModel"
	"github.com/akolanti/DocRouter/pkg/logger_i"
	"github.com/jhillyerd/enmime"
)

type EmailParser struct {
	logger *logger_i.Logger
}

func NewEmailParser() *EmailParser {
	return &EmailParser{logger: logger_i.NewLogger("EmailParser")}
}

// ParseMessage decodes headers (RFC 2047 included) and picks the text body. HTML-only
// messages come back as their text rendering.
func (p *EmailParser) ParseMessage(ctx context.Context, content []byte) (Message, error) {
	log := p.logger.WithTrace(ctx)
	if len(bytes.TrimSpace(content)) == 0 {
		return Message{}, &documentModel.ParseError{Cause: errors.New("empty message")}
	}

	envelope, err := enmime.ReadEnvelope(bytes.NewReader(content))
	if err != nil {
		log.Error("Failed to parse email", "error", err)
		return Message{}, &documentModel.ParseError{Cause: err}
	}

	keys := envelope.GetHeaderKeys()
	if len(keys) == 0 {
		return Message{}, &documentModel.ParseError{Cause: errors.New("message has no headers")}
	}

	headers := make(map[string][]string, len(keys))
	for _, key := range keys {
		headers[key] = envelope.GetHeaderValues(key)
	}
	for _, perr := range envelope.Errors {
		log.Debug("email parsed with warnings", "warning", perr.Error())
	}

	return Message{
		Subject: envelope.GetHeader("Subject"),
		Sender:  envelope.GetHeader("From"),
		Body:    strings.TrimSpace(envelope.Text),
		Headers: headers,
	}, nil
}
