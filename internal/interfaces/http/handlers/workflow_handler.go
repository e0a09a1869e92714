package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"prompthash.backend/internal/domain/entities"
	domainerrors "prompthash.backend/internal/domain/errors"
	"prompthash.backend/internal/interfaces/http/middleware"
	"prompthash.backend/internal/interfaces/http/response"
	"prompthash.backend/internal/usecases"
)

// WorkflowHandler exposes the on-chain marketplace workflows
type WorkflowHandler struct {
	submission *usecases.SubmissionUsecase
	purchase   *usecases.PurchaseUsecase
	listing    *usecases.ListingUsecase
}

func NewWorkflowHandler(
	submission *usecases.SubmissionUsecase,
	purchase *usecases.PurchaseUsecase,
	listing *usecases.ListingUsecase,
) *WorkflowHandler {
	return &WorkflowHandler{
		submission: submission,
		purchase:   purchase,
		listing:    listing,
	}
}

// Submit runs the full prompt submission workflow: on-chain createPrompt,
// confirmation, then persistence.
// POST /api/v1/workflows/submissions
func (h *WorkflowHandler) Submit(c *gin.Context) {
	var input struct {
		entities.SubmissionInput
		WalletAddress string `json:"walletAddress"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid request body"))
		return
	}

	wallet := middleware.WalletFromRequest(c, input.WalletAddress)
	result, err := h.submission.Submit(c.Request.Context(), wallet, &input.SubmissionInput)
	middleware.ObserveWorkflow("submission", err)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, result)
}

// Purchase runs the buy workflow for a token id.
// POST /api/v1/workflows/purchases
func (h *WorkflowHandler) Purchase(c *gin.Context) {
	var input struct {
		entities.PurchaseInput
		WalletAddress string `json:"walletAddress"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid request body"))
		return
	}

	wallet := middleware.WalletFromRequest(c, input.WalletAddress)
	result, err := h.purchase.Purchase(c.Request.Context(), wallet, &input.PurchaseInput)
	middleware.ObserveWorkflow("purchase", err)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// Listing runs the list-for-sale workflow for a token id.
// POST /api/v1/workflows/listings
func (h *WorkflowHandler) Listing(c *gin.Context) {
	var input struct {
		entities.ListingInput
		WalletAddress string `json:"walletAddress"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid request body"))
		return
	}

	wallet := middleware.WalletFromRequest(c, input.WalletAddress)
	result, err := h.listing.List(c.Request.Context(), wallet, &input.ListingInput)
	middleware.ObserveWorkflow("listing", err)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// ButtonState projects the buy button label and disabled flag from the
// caller's wallet state.
// GET /api/v1/workflows/purchases/button-state
func (h *WorkflowHandler) ButtonState(c *gin.Context) {
	var input entities.ButtonStateInput
	if err := c.ShouldBindQuery(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid query parameters"))
		return
	}
	response.Success(c, http.StatusOK, usecases.ButtonState(&input))
}
