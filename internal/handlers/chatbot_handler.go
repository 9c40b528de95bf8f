package handlers

import (
	"rapidreads/internal/apperrors"
	"rapidreads/internal/services"
	"rapidreads/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RequestValidator checks a decoded request body against its validate tags.
type RequestValidator interface {
	Validate(s any, msgs validation.Messages) error
}

// ChatbotHandler serves the keyword chatbot.
type ChatbotHandler struct {
	chatbot  *services.ChatbotService
	validate RequestValidator
	log      *zap.Logger
}

// NewChatbotHandler creates a new ChatbotHandler.
func NewChatbotHandler(chatbot *services.ChatbotService, validate RequestValidator, log *zap.Logger) *ChatbotHandler {
	return &ChatbotHandler{chatbot: chatbot, validate: validate, log: log}
}

// RegisterRoutes mounts the chatbot endpoint. It needs no authentication.
func (h *ChatbotHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/chatbot/respond", h.HandleRespond)
}

// HandleRespond answers a customer message. Anything other than a validation
// failure gets the apology reply rather than the generic error body.
func (h *ChatbotHandler) HandleRespond(c *fiber.Ctx) error {
	var req validation.ChatbotRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := h.validate.Validate(req, validation.ChatbotMessages); err != nil {
		if apperrors.KindOf(err) == apperrors.KindInvalidInput {
			return err
		}
		h.log.Error("chatbot validation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"response": services.ChatbotFailureReply,
		})
	}

	return c.JSON(fiber.Map{
		"response": h.chatbot.Respond(c.UserContext(), req.Message),
	})
}
