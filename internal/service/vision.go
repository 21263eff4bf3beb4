package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const visionPrompt = `Look at the attached image from a hotel guest.
Reply in exactly this format, nothing else:
Extracted text: <any text visible in the image, or "none">
Image context: <one-line description of what the image shows>`

var imageMimeTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// VisionService turns an uploaded image into a text description (extracted
// text plus a short caption) used as advisory context in the concierge
// prompt.
type VisionService struct {
	llm    *LLMService
	logger *zap.Logger
}

func NewVisionService(llm *LLMService, logger *zap.Logger) *VisionService {
	return &VisionService{
		llm:    llm,
		logger: logger,
	}
}

// Describe returns a text description of the image at path. It never fails
// past its boundary: any internal error becomes a descriptive string, since
// enrichment is advisory context and a broken image must not abort the chat
// turn.
func (s *VisionService) Describe(ctx context.Context, imagePath string) string {
	mimeType, ok := imageMimeTypes[strings.ToLower(filepath.Ext(imagePath))]
	if !ok {
		s.logger.Warn("Unsupported image format", zap.String("file", imagePath))
		return fmt.Sprintf("Error processing image: unsupported format %s (supported: jpg, jpeg, png)", filepath.Ext(imagePath))
	}

	data, err := os.ReadFile(imagePath)
	if err != nil {
		s.logger.Warn("Failed to read image", zap.String("file", imagePath), zap.Error(err))
		return fmt.Sprintf("Error processing image: %v", err)
	}

	description, err := s.describeViaModel(ctx, data, mimeType)
	if err != nil {
		s.logger.Warn("Image description failed", zap.String("file", imagePath), zap.Error(err))
		return fmt.Sprintf("Error processing image: %v", err)
	}

	s.logger.Info("Image described",
		zap.String("file", imagePath),
		zap.Int("description_length", len(description)),
	)

	return description
}

func (s *VisionService) describeViaModel(ctx context.Context, data []byte, mimeType string) (string, error) {
	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))

	resp, err := s.llm.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.llm.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: visionPrompt},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    dataURL,
							Detail: openai.ImageURLDetailAuto,
						},
					},
				},
			},
		},
	})
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from model")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
