package extract

import (
	"bytes"
	"context"
	"strings"

	"github.com/akolanti/DocRouter/internal/domain/documentModel"
	"github.com/akolanti/DocRouter/pkg/logger_i"
	"github.com/lu4p/cat"
)

var (
	rtfMagic = []byte(`{\rtf`)
	zipMagic = []byte("PK\x03\x04")
)

// PlainTextNormalizer passes real text through. Word processor exports uploaded as
// "txt" (rtf, docx, odt) are converted to their text.
type PlainTextNormalizer struct {
	logger *logger_i.Logger
}

func NewPlainTextNormalizer() *PlainTextNormalizer {
	return &PlainTextNormalizer{logger: logger_i.NewLogger("TextNormalizer")}
}

func (n *PlainTextNormalizer) NormalizeText(ctx context.Context, content []byte) (string, error) {
	if isRichText(content) {
		n.logger.WithTrace(ctx).Debug("converting rich text payload")
		text, err := cat.FromBytes(content)
		if err != nil {
			return "", &documentModel.ExtractionError{Cause: err}
		}
		return text, nil
	}
	return strings.ToValidUTF8(string(content), "\uFFFD"), nil
}

func isRichText(content []byte) bool {
	trimmed := bytes.TrimLeft(content, " \t\r\n\ufeff")
	return bytes.HasPrefix(trimmed, rtfMagic) || bytes.HasPrefix(content, zipMagic)
}
