package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"hotel-concierge/internal/dto"
	"hotel-concierge/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ChatHandler struct {
	chatService *service.ChatService
	uploadDir   string
	bookingDir  string
	logger      *zap.Logger
}

func NewChatHandler(chatService *service.ChatService, uploadDir, bookingDir string, logger *zap.Logger) *ChatHandler {
	for _, dir := range []string{uploadDir, bookingDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			logger.Warn("Failed to create upload directory", zap.String("dir", dir), zap.Error(err))
		}
	}

	return &ChatHandler{
		chatService: chatService,
		uploadDir:   uploadDir,
		bookingDir:  bookingDir,
		logger:      logger,
	}
}

// Ask handles one chat turn. Form fields: message (required), image
// (optional file), booking_csv (optional file). The reply is always a JSON
// object with a single "response" field; internal model and image failures
// show up inside that field, not in the HTTP status.
func (h *ChatHandler) Ask(c *fiber.Ctx) error {
	message := c.FormValue("message")
	if message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Message is required",
		})
	}

	input := service.AskInput{Message: message}

	if file, err := c.FormFile("image"); err == nil && file != nil {
		imagePath, err := h.saveUpload(file, h.uploadDir)
		if err != nil {
			h.logger.Error("Failed to save uploaded image", zap.Error(err))
		} else {
			input.ImagePath = imagePath
		}
	}

	if file, err := c.FormFile("booking_csv"); err == nil && file != nil {
		csvPath, err := h.saveUpload(file, h.bookingDir)
		if err != nil {
			h.logger.Error("Failed to save booking CSV", zap.Error(err))
		} else {
			f, err := os.Open(csvPath)
			if err != nil {
				h.logger.Error("Failed to reopen booking CSV", zap.Error(err))
			} else {
				defer f.Close()
				input.BookingCSV = f
			}
		}
	}

	out, err := h.chatService.HandleAsk(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyMessage):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Message is required",
			})
		case errors.Is(err, service.ErrTranslationUnavailable):
			h.logger.Error("Translation unavailable", zap.Error(err))
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": "Translation service unavailable",
			})
		default:
			h.logger.Error("Chat turn failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to process message",
			})
		}
	}

	return c.JSON(dto.AskResponse{Response: out.Response})
}

// saveUpload stores an uploaded file under dir with a generated name,
// keeping the original extension.
func (h *ChatHandler) saveUpload(file *multipart.FileHeader, dir string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	name := uuid.New().String() + filepath.Ext(file.Filename)
	path := filepath.Join(dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return "", err
	}

	return path, nil
}
