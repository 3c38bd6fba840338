package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/akolanti/DocRouter/internal/agent"
	"github.com/akolanti/DocRouter/internal/classifier"
	"github.com/akolanti/DocRouter/internal/config"
	"github.com/akolanti/DocRouter/internal/domain/documentModel"
	"github.com/akolanti/DocRouter/internal/extract"
	"github.com/akolanti/DocRouter/internal/metrics"
	"github.com/akolanti/DocRouter/internal/publisher"
	"github.com/akolanti/DocRouter/pkg/logger_i"
)

// Service is the only entry point callers get. Handlers, extractors and the store stay
// behind the private struct.
type Service interface {
	Classify(ctx context.Context, content []byte, declaredType string, docID string, md documentModel.Metadata) (documentModel.ClassificationResult, error)
}

type Dependencies struct {
	Store      documentModel.RecordStore
	PDF        extract.TextExtractor
	Mail       extract.MessageParser
	Text       extract.TextNormalizer
	JSON       agent.TypeHandler
	Email      agent.TypeHandler
	Binary     agent.TypeHandler
	Publisher  publisher.ActionPublisher
	PhraseSize int
}

// route normalizes one content type into text and runs its handler.
type route func(ctx context.Context, req *request) error

type request struct {
	content    []byte
	docID      string
	metadata   documentModel.Metadata
	intent     documentModel.Intent
	keyPhrases []string
	steps      []documentModel.ProcessingStep
}

type service struct {
	store      documentModel.RecordStore
	pdf        extract.TextExtractor
	mail       extract.MessageParser
	text       extract.TextNormalizer
	json       agent.TypeHandler
	email      agent.TypeHandler
	binary     agent.TypeHandler
	publisher  publisher.ActionPublisher
	phraseSize int
	routes     map[documentModel.ContentType]route
	logger     *logger_i.Logger
}

// NewDefaultService wires the stock extractors and handlers around one store.
func NewDefaultService(store documentModel.RecordStore, pub publisher.ActionPublisher) Service {
	return NewService(Dependencies{
		Store:     store,
		PDF:       extract.NewPDFExtractor(),
		Mail:      extract.NewEmailParser(),
		Text:      extract.NewPlainTextNormalizer(),
		JSON:      agent.NewJSONAgent(store),
		Email:     agent.NewEmailAgent(store),
		Binary:    agent.NewBinaryAgent(store),
		Publisher: pub,
	})
}

func NewService(deps Dependencies) Service {
	s := &service{
		store:      deps.Store,
		pdf:        deps.PDF,
		mail:       deps.Mail,
		text:       deps.Text,
		json:       deps.JSON,
		email:      deps.Email,
		binary:     deps.Binary,
		publisher:  deps.Publisher,
		phraseSize: deps.PhraseSize,
		logger:     logger_i.NewLogger("Dispatcher"),
	}
	if s.publisher == nil {
		s.publisher = publisher.NoopPublisher{}
	}
	if s.phraseSize <= 0 {
		s.phraseSize = config.KeyPhraseLimit
	}
	s.routes = map[documentModel.ContentType]route{
		documentModel.ContentPDF:  s.routePDF,
		documentModel.ContentJSON: s.routeJSON,
		documentModel.ContentEML:  s.routeMessage,
		documentModel.ContentTXT:  s.routeText,
	}
	return s
}

// Classify runs one document end to end. Extraction, parsing, handler and store errors
// are logged and returned; nothing is summarized for a failed document.
func (s *service) Classify(ctx context.Context, content []byte, declaredType string, docID string, md documentModel.Metadata) (documentModel.ClassificationResult, error) {
	log := s.logger.WithTrace(ctx).With("docId", docID, "fileType", declaredType)

	contentType, err := documentModel.ParseContentType(declaredType)
	if err != nil {
		return documentModel.ClassificationResult{}, s.failed(log, err)
	}

	req := &request{
		content:    content,
		docID:      docID,
		metadata:   md.With(nil),
		intent:     documentModel.IntentUnknown,
		keyPhrases: []string{},
		steps:      []documentModel.ProcessingStep{},
	}
	if err := s.routes[contentType](ctx, req); err != nil {
		return documentModel.ClassificationResult{}, s.failed(log, err)
	}

	err = s.store.Put(ctx, docID, map[string]any{
		documentModel.KeyClassification: map[string]any{
			"file_type":   contentType,
			"intent":      req.intent,
			"key_phrases": req.keyPhrases,
		},
		documentModel.KeyMetadata: req.metadata,
	})
	if err != nil {
		return documentModel.ClassificationResult{}, s.failed(log, fmt.Errorf("write classification summary: %w", err))
	}

	metrics.CaptureClassification(string(contentType), string(req.intent))
	log.Info("Document classified", "intent", req.intent, "steps", len(req.steps))
	s.publishActions(ctx, req)

	return documentModel.ClassificationResult{
		DocumentID:      docID,
		FileType:        contentType,
		Intent:          req.intent,
		Metadata:        req.metadata,
		ProcessingSteps: req.steps,
		KeyPhrases:      req.keyPhrases,
	}, nil
}

func (s *service) routePDF(ctx context.Context, req *request) error {
	text, err := s.pdf.ExtractText(ctx, req.content)
	if err != nil {
		return err
	}
	s.analyze(req, text)

	handler := s.binary
	if classifier.LooksLikeEmail(text) {
		handler = s.email
	}
	return s.run(ctx, req, handler, text)
}

// routeJSON trusts the caller's intent label for the summary; the handler infers its
// own from the payload keys.
func (s *service) routeJSON(ctx context.Context, req *request) error {
	if label, ok := req.metadata[documentModel.MetaIntent]; ok {
		req.intent = documentModel.ParseIntent(fmt.Sprint(label))
	}
	return s.runWith(ctx, req, s.json, string(req.content), req.metadata)
}

func (s *service) routeMessage(ctx context.Context, req *request) error {
	msg, err := s.mail.ParseMessage(ctx, req.content)
	if err != nil {
		return err
	}
	req.metadata = req.metadata.With(map[string]any{
		documentModel.MetaSubject: msg.Subject,
		documentModel.MetaSender:  msg.Sender,
		documentModel.MetaHeaders: msg.Headers,
	})
	s.analyze(req, msg.Body)
	return s.run(ctx, req, s.email, msg.Body)
}

func (s *service) routeText(ctx context.Context, req *request) error {
	text, err := s.text.NormalizeText(ctx, req.content)
	if err != nil {
		return err
	}
	s.analyze(req, text)
	return s.run(ctx, req, s.email, text)
}

func (s *service) analyze(req *request, text string) {
	req.intent = classifier.DetectIntent(text)
	req.keyPhrases = classifier.ExtractKeyPhrases(text, s.phraseSize)
}

// run hands the text downstream with the detected intent and key phrases attached.
// The phrases must be in place before the handler decides its action.
func (s *service) run(ctx context.Context, req *request, handler agent.TypeHandler, text string) error {
	downstream := req.metadata.With(map[string]any{
		documentModel.MetaIntent:     string(req.intent),
		documentModel.MetaKeyPhrases: req.keyPhrases,
	})
	return s.runWith(ctx, req, handler, text, downstream)
}

func (s *service) runWith(ctx context.Context, req *request, handler agent.TypeHandler, text string, md documentModel.Metadata) error {
	result, err := handler.Process(ctx, text, req.docID, md)
	if err != nil {
		return fmt.Errorf("%s: %w", handler.Name(), err)
	}
	req.steps = append(req.steps, documentModel.ProcessingStep{Agent: handler.Name(), Result: result})
	return nil
}

func (s *service) publishActions(ctx context.Context, req *request) {
	for _, step := range req.steps {
		if step.Result.Action == "" || step.Result.Status != documentModel.StatusProcessed {
			continue
		}
		event := documentModel.ActionEvent{
			DocumentID: req.docID,
			Agent:      step.Agent,
			Intent:     req.intent,
			Action:     step.Result.Action,
			Timestamp:  time.Now().UTC(),
		}
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.WithTrace(ctx).Warn("Failed to publish action", "docId", req.docID, "action", event.Action, "error", err)
		}
	}
}

func (s *service) failed(log *logger_i.Logger, err error) error {
	reason := failureReason(err)
	metrics.CaptureDispatchFailure(reason)
	log.Error("Classification failed", "reason", reason, "error", err)
	return err
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, documentModel.ErrUnsupportedType):
		return "unsupported_type"
	case errors.Is(err, documentModel.ErrExtraction):
		return "extraction"
	case errors.Is(err, documentModel.ErrParse):
		return "parse"
	default:
		return "processing"
	}
}
