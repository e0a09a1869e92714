package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"prompthash.backend/internal/domain/entities"
	domainerrors "prompthash.backend/internal/domain/errors"
	"prompthash.backend/internal/interfaces/http/response"
	"prompthash.backend/internal/usecases"
)

// PromptHandler handles prompt persistence endpoints
type PromptHandler struct {
	promptUsecase *usecases.PromptUsecase
}

func NewPromptHandler(promptUsecase *usecases.PromptUsecase) *PromptHandler {
	return &PromptHandler{promptUsecase: promptUsecase}
}

// Create persists a prompt record directly, without the on-chain workflow.
// POST /api/prompts
func (h *PromptHandler) Create(c *gin.Context) {
	var input entities.CreatePromptInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid request body"))
		return
	}

	prompt, err := h.promptUsecase.CreatePrompt(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message": "Prompt created successfully",
		"prompt":  prompt,
	})
}

// List returns prompts newest-first, optionally filtered by category or
// owner wallet address.
// GET /api/prompts?category=&walletAddress=
func (h *PromptHandler) List(c *gin.Context) {
	var filter entities.PromptFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid query parameters"))
		return
	}

	prompts, err := h.promptUsecase.ListPrompts(c.Request.Context(), &filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	if prompts == nil {
		prompts = []*entities.Prompt{}
	}
	response.Success(c, http.StatusOK, prompts)
}
