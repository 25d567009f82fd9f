package handlers

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"roundtable/internal/llm"
	"roundtable/internal/models"
	"roundtable/internal/services"
)

// ArthurChatter is the conversation controller surface the handler
// drives. *services.ArthurService satisfies it.
type ArthurChatter interface {
	Chat(ctx context.Context, req *models.ArthurChatRequest) (*services.ChatResult, error)
}

// ArthurHandler is the HTTP boundary of the assistant: it validates the
// request envelope, drives the conversation loop to a final answer, and
// translates model-boundary failures into distinct caller-visible
// categories.
type ArthurHandler struct {
	arthur ArthurChatter
}

// NewArthurHandler creates the Arthur chat handler.
func NewArthurHandler(arthur ArthurChatter) *ArthurHandler {
	return &ArthurHandler{arthur: arthur}
}

// Chat handles POST /api/arthur/chat.
// Body: {"messages": [...], "organizationId": "...", "userId": "..."}
func (h *ArthurHandler) Chat(c *fiber.Ctx) error {
	var req models.ArthurChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if req.OrganizationID == "" || req.UserID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing organizationId or userId"})
	}
	if len(req.Messages) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing messages"})
	}

	// When auth middleware established an identity, the body must agree
	// with it: the assistant acts as the authenticated user, nobody else.
	if authUser, ok := c.Locals("user_id").(string); ok && authUser != "" && authUser != req.UserID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "userId does not match the authenticated user"})
	}

	result, err := h.arthur.Chat(c.Context(), &req)
	if err != nil {
		status, message := classifyChatError(err)
		slog.Error("arthur chat failed", "status", status, "error", err,
			"organization_id", req.OrganizationID, "user_id", req.UserID)
		return c.Status(status).JSON(fiber.Map{"error": message})
	}

	return c.JSON(models.ArthurChatResponse{
		Message: result.Message,
		Usage:   result.Usage,
	})
}

// classifyChatError maps failures at the model boundary to distinct
// caller-facing categories with distinct retry guidance. Nothing is
// retried internally; the caller decides.
func classifyChatError(err error) (int, string) {
	switch {
	case llm.IsOverloaded(err):
		return fiber.StatusServiceUnavailable,
			"The AI service is currently experiencing high traffic. Please wait a moment and try again."
	case llm.IsAuthError(err):
		return fiber.StatusUnauthorized,
			"AI service authentication failed. Please check that the API key is configured correctly."
	case llm.IsNotFound(err):
		return fiber.StatusNotFound,
			"The AI model could not be found. Please check that a valid model name is configured."
	case llm.IsRateLimited(err):
		return fiber.StatusTooManyRequests,
			"Rate limit exceeded. Please wait a moment before trying again."
	case errors.Is(err, services.ErrLoopExceeded):
		return fiber.StatusServiceUnavailable,
			"The request took too many steps to complete. Please try again or simplify your request."
	default:
		return fiber.StatusInternalServerError,
			"An error occurred while processing your request"
	}
}
