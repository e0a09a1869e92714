package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"prompthash.backend/internal/domain/entities"
	domainerrors "prompthash.backend/internal/domain/errors"
	"prompthash.backend/internal/interfaces/http/response"
	"prompthash.backend/internal/usecases"
)

// UserHandler handles wallet registration endpoints
type UserHandler struct {
	userUsecase *usecases.UserUsecase
}

func NewUserHandler(userUsecase *usecases.UserUsecase) *UserHandler {
	return &UserHandler{userUsecase: userUsecase}
}

// Register registers a wallet address, creating the user on first sight.
// Idempotent per address.
// POST /api/user
func (h *UserHandler) Register(c *gin.Context) {
	var input entities.RegisterUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("walletAddress is required"))
		return
	}

	result, err := h.userUsecase.Register(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user":         result.User,
		"sessionToken": result.SessionToken,
	})
}

// GetByWallet returns the user for a wallet address.
// GET /api/v1/users/:walletAddress
func (h *UserHandler) GetByWallet(c *gin.Context) {
	user, err := h.userUsecase.GetByWallet(c.Request.Context(), c.Param("walletAddress"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}
