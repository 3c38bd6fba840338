package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/akolanti/DocRouter/internal/config"
	"github.com/akolanti/DocRouter/internal/domain/documentModel"
	"github.com/akolanti/DocRouter/pkg/logger_i"
	"github.com/dslipak/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var (
	errPageTimeout  = errors.New("page extraction timeout")
	errDecodersBusy = errors.New("no page decoder available")
)

// pageDecodeSlots caps decode goroutines process wide. A timed out decode keeps
// its slot until GetPlainText returns, so stalled pages cannot pile up.
var pageDecodeSlots = make(chan struct{}, config.MaxPageDecodes)

type PDFExtractor struct {
	logger      *logger_i.Logger
	pageTimeout time.Duration
	slots       chan struct{}
}

func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{
		logger:      logger_i.NewLogger("PDFExtractor"),
		pageTimeout: config.PageExtractTimeout,
		slots:       pageDecodeSlots,
	}
}

// ExtractText validates the document structure with pdfcpu, then reads the text layer
// page by page. Pages are joined with PageBreak. A page that fails to decode is
// skipped but still counted, so the page count survives.
func (e *PDFExtractor) ExtractText(ctx context.Context, content []byte) (string, error) {
	log := e.logger.WithTrace(ctx)
	if len(content) == 0 {
		return "", &documentModel.ExtractionError{Cause: errors.New("empty pdf payload")}
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	pdfCtx, err := api.ReadValidateAndOptimize(bytes.NewReader(content), conf)
	if err != nil {
		log.Error("pdf failed structural validation", "error", err)
		return "", &documentModel.ExtractionError{Cause: fmt.Errorf("invalid pdf: %w", err)}
	}
	declaredPages := pdfCtx.PageCount

	reader, err := openReader(content)
	if err != nil {
		log.Error("failed opening of pdf payload", "error", err)
		return "", &documentModel.ExtractionError{Cause: fmt.Errorf("failed to open pdf: %w", err)}
	}

	numPages := reader.NumPage()
	log.Debug("extracting pdf", "pages", numPages, "declaredPages", declaredPages)

	pages := make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return "", &documentModel.ExtractionError{Cause: err}
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := e.protectExtract(ctx, page.GetPlainText)
		if errors.Is(err, errDecodersBusy) || ctx.Err() != nil {
			log.Error("Stopping pdf extraction", "page", i, "error", err)
			return "", &documentModel.ExtractionError{Cause: err}
		}
		if err != nil {
			log.Warn("Error parsing page content", "page", i, "error", err)
			pages = append(pages, "")
			continue
		}
		pages = append(pages, strings.TrimSpace(text))
	}

	return strings.Join(pages, PageBreak), nil
}

func openReader(content []byte) (reader *pdf.Reader, err error) {
	defer func() {
		if r := recover(); r != nil {
			reader, err = nil, fmt.Errorf("pdf reader panic: %v", r)
		}
	}()
	return pdf.NewReader(bytes.NewReader(content), int64(len(content)))
}

// protectExtract bounds a single page decode; malformed content streams can spin.
// The decode itself cannot be interrupted, so on timeout or cancellation it is left
// running and only its slot bounds it.
func (e *PDFExtractor) protectExtract(ctx context.Context, decode func(map[string]*pdf.Font) (string, error)) (string, error) {
	timer := time.NewTimer(e.pageTimeout)
	defer timer.Stop()

	select {
	case e.slots <- struct{}{}:
	case <-timer.C:
		return "", errDecodersBusy
	case <-ctx.Done():
		return "", ctx.Err()
	}

	type result struct {
		content string
		err     error
	}
	resChan := make(chan result, 1)

	go func() {
		defer func() { <-e.slots }()
		defer func() {
			if r := recover(); r != nil {
				resChan <- result{err: fmt.Errorf("page decode panic: %v", r)}
			}
		}()
		content, err := decode(nil)
		resChan <- result{content, err}
	}()

	select {
	case r := <-resChan:
		return r.content, r.err
	case <-timer.C:
		return "", errPageTimeout
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
