package service

import (
	"context"
	"errors"
	"io"
	"strings"

	"go.uber.org/zap"
)

// ErrEmptyMessage is returned before any external call when the chat message
// is blank.
var ErrEmptyMessage = errors.New("message must not be empty")

// Translator is the language bridge the orchestrator depends on.
type Translator interface {
	Detect(ctx context.Context, text string) (string, error)
	Translate(ctx context.Context, text, src, dst string) (string, error)
}

// ImageDescriber provides advisory image context. Failures are folded into
// the returned string, never surfaced as errors.
type ImageDescriber interface {
	Describe(ctx context.Context, imagePath string) string
}

// Responder produces the English reply. Failures are folded into the reply
// text.
type Responder interface {
	Respond(ctx context.Context, userTextEN, contextStr string) string
}

// BookingIngestor persists bookings from an uploaded CSV and reports the
// aggregate outcome as prompt context.
type BookingIngestor interface {
	Ingest(ctx context.Context, r io.Reader) IngestResult
}

// AskInput is one chat turn. ImagePath and BookingCSV are optional.
type AskInput struct {
	Message    string
	ImagePath  string
	BookingCSV io.Reader
}

// AskOutput is the transient result of one chat turn; nothing about the
// exchange is retained across requests.
type AskOutput struct {
	DetectedLang string
	Response     string
}

// ChatService sequences one chat request: detect language, translate the
// message to the English pivot, gather optional image and booking context,
// call the responder, translate the reply back. Only translation failures
// propagate as errors; model and image failures ride inside the reply text
// and are translated back like any other answer.
type ChatService struct {
	translator Translator
	vision     ImageDescriber
	responder  Responder
	bookings   BookingIngestor
	logger     *zap.Logger
}

func NewChatService(
	translator Translator,
	vision ImageDescriber,
	responder Responder,
	bookings BookingIngestor,
	logger *zap.Logger,
) *ChatService {
	return &ChatService{
		translator: translator,
		vision:     vision,
		responder:  responder,
		bookings:   bookings,
		logger:     logger,
	}
}

func (s *ChatService) HandleAsk(ctx context.Context, in AskInput) (*AskOutput, error) {
	message := strings.TrimSpace(in.Message)
	if message == "" {
		return nil, ErrEmptyMessage
	}

	// Every request goes through detection and translate-in, attachments or
	// not.
	detectedLang, err := s.translator.Detect(ctx, message)
	if err != nil {
		return nil, err
	}

	messageEN, err := s.translator.Translate(ctx, message, detectedLang, "en")
	if err != nil {
		return nil, err
	}

	var contextParts []string
	if in.ImagePath != "" {
		contextParts = append(contextParts, s.vision.Describe(ctx, in.ImagePath))
	}
	if in.BookingCSV != nil {
		result := s.bookings.Ingest(ctx, in.BookingCSV)
		s.logger.Info("Booking CSV ingested", zap.Int("processed", result.Processed))
		contextParts = append(contextParts, result.Context)
	}
	contextStr := strings.Join(contextParts, "\n")

	replyEN := s.responder.Respond(ctx, messageEN, contextStr)

	// Error replies are translated back too; they are not exempt.
	reply, err := s.translator.Translate(ctx, replyEN, "en", detectedLang)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Chat turn completed",
		zap.String("lang", detectedLang),
		zap.Bool("image", in.ImagePath != ""),
		zap.Bool("booking_csv", in.BookingCSV != nil),
	)

	return &AskOutput{
		DetectedLang: detectedLang,
		Response:     reply,
	}, nil
}
