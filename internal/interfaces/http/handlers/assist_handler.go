package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"prompthash.backend/internal/domain/entities"
	domainerrors "prompthash.backend/internal/domain/errors"
	"prompthash.backend/internal/interfaces/http/response"
	"prompthash.backend/internal/usecases"
)

// AssistHandler bridges chat and prompt-improvement requests to the AI
// gateway. All endpoints accept GET with query params or POST with JSON.
type AssistHandler struct {
	assistUsecase *usecases.AssistUsecase
}

func NewAssistHandler(assistUsecase *usecases.AssistUsecase) *AssistHandler {
	return &AssistHandler{assistUsecase: assistUsecase}
}

// Chat forwards a chat prompt to the gateway.
// GET|POST /api/v1/assist/chat
func (h *AssistHandler) Chat(c *gin.Context) {
	var input entities.ChatInput
	if err := c.ShouldBind(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("prompt is required"))
		return
	}

	reply, err := h.assistUsecase.Chat(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, reply)
}

// ImprovePrompt rewrites a prompt via the gateway, returning the original
// text unchanged when the gateway cannot help.
// GET|POST /api/v1/assist/improve-prompt
func (h *AssistHandler) ImprovePrompt(c *gin.Context) {
	var input entities.ImprovePromptInput
	if err := c.ShouldBind(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("prompt is required"))
		return
	}

	result, err := h.assistUsecase.ImprovePrompt(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// GenerateImage requests an image-producing completion.
// GET|POST /api/v1/assist/generate-image
func (h *AssistHandler) GenerateImage(c *gin.Context) {
	var input entities.GenerateImageInput
	if err := c.ShouldBind(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("prompt is required"))
		return
	}

	reply, err := h.assistUsecase.GenerateImage(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, reply)
}

// Models lists the models the gateway advertises.
// GET /api/v1/assist/models
func (h *AssistHandler) Models(c *gin.Context) {
	models, err := h.assistUsecase.Models(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"models": models})
}

// Health reports gateway reachability.
// GET /api/v1/assist/health
func (h *AssistHandler) Health(c *gin.Context) {
	if err := h.assistUsecase.Health(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"status": "ok"})
}
