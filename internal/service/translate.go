package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"hotel-concierge/pkg/config"

	"go.uber.org/zap"
)

// ErrTranslationUnavailable wraps any transport or decode failure from the
// translation endpoint. The chat handler surfaces it as a 502.
var ErrTranslationUnavailable = errors.New("translation service unavailable")

// TranslateService is the language bridge: it detects the language of free
// text and translates to and from the English pivot using the public
// translate web endpoint.
type TranslateService struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

func NewTranslateService(cfg *config.TranslateConfig, logger *zap.Logger) *TranslateService {
	return &TranslateService{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		logger:     logger,
	}
}

// Detect returns the language code of text. Callers must not pass empty
// text; the handler rejects empty messages before the bridge is reached.
func (s *TranslateService) Detect(ctx context.Context, text string) (string, error) {
	_, detected, err := s.call(ctx, text, "auto", "en")
	if err != nil {
		return "", err
	}
	if detected == "" {
		return "", fmt.Errorf("%w: no language detected", ErrTranslationUnavailable)
	}

	s.logger.Debug("Language detected", zap.String("lang", detected))
	return detected, nil
}

// Translate translates text from src to dst.
func (s *TranslateService) Translate(ctx context.Context, text, src, dst string) (string, error) {
	translated, _, err := s.call(ctx, text, src, dst)
	if err != nil {
		return "", err
	}
	return translated, nil
}

// call performs one request against the translate_a/single endpoint. The
// response is a nested JSON array: element 0 holds the translated segments,
// element 2 the detected source language.
func (s *TranslateService) call(ctx context.Context, text, src, dst string) (translated, detected string, err error) {
	params := url.Values{}
	params.Set("client", "gtx")
	params.Set("sl", src)
	params.Set("tl", dst)
	params.Set("dt", "t")
	params.Set("q", text)

	endpoint := s.baseURL + "/translate_a/single?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrTranslationUnavailable, err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrTranslationUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.logger.Warn("Translate endpoint returned non-200",
			zap.Int("status", resp.StatusCode),
			zap.String("src", src),
			zap.String("dst", dst),
		)
		return "", "", fmt.Errorf("%w: status %d", ErrTranslationUnavailable, resp.StatusCode)
	}

	var raw []any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrTranslationUnavailable, err)
	}

	if len(raw) == 0 {
		return "", "", fmt.Errorf("%w: empty response", ErrTranslationUnavailable)
	}

	segments, ok := raw[0].([]any)
	if !ok {
		return "", "", fmt.Errorf("%w: unexpected response shape", ErrTranslationUnavailable)
	}

	var sb strings.Builder
	for _, seg := range segments {
		parts, ok := seg.([]any)
		if !ok || len(parts) == 0 {
			continue
		}
		if piece, ok := parts[0].(string); ok {
			sb.WriteString(piece)
		}
	}

	if len(raw) > 2 {
		if lang, ok := raw[2].(string); ok {
			detected = lang
		}
	}

	return sb.String(), detected, nil
}
