package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"hotel-concierge/pkg/config"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const conciergeFraming = "You are a hotel concierge AI. Use this knowledge base:"

// LLMService is the concierge responder. It composes the knowledge base,
// the per-request context string and the translated user message into a
// single prompt and sends one chat completion request. No conversation
// history is carried between calls.
type LLMService struct {
	client      *openai.Client
	model       string
	temperature float32
	knowledge   *KnowledgeBase
	logger      *zap.Logger
}

func NewLLMService(cfg *config.OpenAIConfig, knowledge *KnowledgeBase, logger *zap.Logger) *LLMService {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &LLMService{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		knowledge:   knowledge,
		logger:      logger,
	}
}

// Respond returns the model's English reply for the translated user message.
// It never returns an error: a failed call becomes a reply of the form
// "Error: <cause>", which the orchestrator translates and shows like any
// other answer.
func (s *LLMService) Respond(ctx context.Context, userTextEN, contextStr string) string {
	prompt := s.buildPrompt(userTextEN, contextStr)

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.model,
		Temperature: s.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt},
		},
	})
	if err != nil {
		s.logger.Error("Chat completion failed", zap.Error(err))
		return fmt.Sprintf("Error: %v", err)
	}

	if len(resp.Choices) == 0 {
		s.logger.Error("Chat completion returned no choices")
		return "Error: no response from model"
	}

	return resp.Choices[0].Message.Content
}

func (s *LLMService) buildPrompt(userTextEN, contextStr string) string {
	var sb strings.Builder
	sb.WriteString(conciergeFraming)
	sb.WriteString("\n")
	sb.WriteString(s.knowledge.Serialized())
	sb.WriteString("\n\n")
	if contextStr != "" {
		sb.WriteString(contextStr)
		sb.WriteString("\n\n")
	}
	sb.WriteString("User: ")
	sb.WriteString(userTextEN)
	return sb.String()
}
