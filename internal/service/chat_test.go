package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"go.uber.org/zap"
)

// stubTranslator reverses text for any non-English target and reverses it
// back on the way out, so a translate-in/translate-out round trip through
// the same pair is its own inverse.
type stubTranslator struct {
	lang string
	fail bool
}

func (s *stubTranslator) Detect(_ context.Context, _ string) (string, error) {
	if s.fail {
		return "", fmt.Errorf("%w: connection refused", ErrTranslationUnavailable)
	}
	return s.lang, nil
}

func (s *stubTranslator) Translate(_ context.Context, text, src, dst string) (string, error) {
	if s.fail {
		return "", fmt.Errorf("%w: connection refused", ErrTranslationUnavailable)
	}
	if src == dst {
		return text, nil
	}
	runes := []rune(text)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes), nil
}

type stubVision struct {
	description string
}

func (s *stubVision) Describe(_ context.Context, _ string) string {
	return s.description
}

type stubResponder struct {
	reply      string
	gotText    string
	gotContext string
}

func (s *stubResponder) Respond(_ context.Context, userTextEN, contextStr string) string {
	s.gotText = userTextEN
	s.gotContext = contextStr
	return s.reply
}

type stubIngestor struct {
	result IngestResult
	called bool
}

func (s *stubIngestor) Ingest(_ context.Context, _ io.Reader) IngestResult {
	s.called = true
	return s.result
}

func newChatServiceForTest(tr Translator, v ImageDescriber, r Responder, b BookingIngestor) *ChatService {
	return NewChatService(tr, v, r, b, zap.NewNop())
}

func TestHandleAskTranslationRoundTrip(t *testing.T) {
	translator := &stubTranslator{lang: "es"}
	responder := &stubResponder{reply: "Welcome to the hotel"}
	svc := newChatServiceForTest(translator, &stubVision{}, responder, &stubIngestor{})

	out, err := svc.HandleAsk(context.Background(), AskInput{Message: "hola"})
	if err != nil {
		t.Fatalf("HandleAsk() error = %v", err)
	}

	if out.DetectedLang != "es" {
		t.Errorf("expected detected lang es, got %q", out.DetectedLang)
	}
	// Reverse-in then reverse-out through the same pair is the identity
	in, _ := translator.Translate(context.Background(), "hola", "es", "en")
	roundTripped, _ := translator.Translate(context.Background(), in, "en", "es")
	if roundTripped != "hola" {
		t.Fatalf("stub translator must be its own inverse, got %q", roundTripped)
	}
	// The responder saw the pivot-language text
	if responder.gotText != "aloh" {
		t.Errorf("responder got %q, want translated input", responder.gotText)
	}
}

func TestHandleAskEmptyMessage(t *testing.T) {
	svc := newChatServiceForTest(&stubTranslator{lang: "en"}, &stubVision{}, &stubResponder{}, &stubIngestor{})

	if _, err := svc.HandleAsk(context.Background(), AskInput{Message: "   "}); !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
}

func TestHandleAskModelFailureBecomesTranslatedReply(t *testing.T) {
	translator := &stubTranslator{lang: "fr"}
	responder := &stubResponder{reply: "Error: model unavailable"}
	svc := newChatServiceForTest(translator, &stubVision{}, responder, &stubIngestor{})

	out, err := svc.HandleAsk(context.Background(), AskInput{Message: "bonjour"})
	if err != nil {
		t.Fatalf("model failure must not fail the request: %v", err)
	}

	// The error string is translated back like any other answer
	want, _ := translator.Translate(context.Background(), "Error: model unavailable", "en", "fr")
	if out.Response != want {
		t.Errorf("expected translated error reply %q, got %q", want, out.Response)
	}
}

func TestHandleAskNoAttachmentsMeansEmptyContext(t *testing.T) {
	responder := &stubResponder{reply: "ok"}
	ingestor := &stubIngestor{}
	svc := newChatServiceForTest(&stubTranslator{lang: "en"}, &stubVision{description: "should not appear"}, responder, ingestor)

	if _, err := svc.HandleAsk(context.Background(), AskInput{Message: "hello"}); err != nil {
		t.Fatalf("HandleAsk() error = %v", err)
	}

	if responder.gotContext != "" {
		t.Errorf("expected empty context, got %q", responder.gotContext)
	}
	if ingestor.called {
		t.Error("ingestor must not run without a CSV")
	}
}

func TestHandleAskImageAndBookingContextOrder(t *testing.T) {
	responder := &stubResponder{reply: "ok"}
	ingestor := &stubIngestor{result: IngestResult{Processed: 1, Context: "Processed booking for Alice"}}
	svc := newChatServiceForTest(
		&stubTranslator{lang: "en"},
		&stubVision{description: "Extracted text: none\nImage context: pool area"},
		responder,
		ingestor,
	)

	_, err := svc.HandleAsk(context.Background(), AskInput{
		Message:    "hello",
		ImagePath:  "photo.png",
		BookingCSV: strings.NewReader("x"),
	})
	if err != nil {
		t.Fatalf("HandleAsk() error = %v", err)
	}

	imageIdx := strings.Index(responder.gotContext, "Image context")
	bookingIdx := strings.Index(responder.gotContext, "Processed booking")
	if imageIdx == -1 || bookingIdx == -1 {
		t.Fatalf("context missing a section: %q", responder.gotContext)
	}
	if imageIdx > bookingIdx {
		t.Errorf("image info must precede booking info: %q", responder.gotContext)
	}
}

func TestHandleAskTranslationFailurePropagates(t *testing.T) {
	svc := newChatServiceForTest(&stubTranslator{fail: true}, &stubVision{}, &stubResponder{}, &stubIngestor{})

	_, err := svc.HandleAsk(context.Background(), AskInput{Message: "hello"})
	if !errors.Is(err, ErrTranslationUnavailable) {
		t.Fatalf("expected ErrTranslationUnavailable, got %v", err)
	}
}
