package usecases

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"prompthash.backend/internal/domain/entities"
	domainerrors "prompthash.backend/internal/domain/errors"
	"prompthash.backend/internal/infrastructure/blockchain"
	"prompthash.backend/pkg/logger"
)

// SubmissionUsecase drives the prompt submission workflow. The on-chain
// createPrompt call is strictly ordered before the database write: the write
// happens only after a confirmation receipt is observed.
type SubmissionUsecase struct {
	session blockchain.SigningSession
	prompts *PromptUsecase
}

func NewSubmissionUsecase(session blockchain.SigningSession, prompts *PromptUsecase) *SubmissionUsecase {
	return &SubmissionUsecase{
		session: session,
		prompts: prompts,
	}
}

// Submit runs the workflow: validate, send createPrompt on-chain, wait for
// confirmation, then persist. A persistence failure after confirmation is
// surfaced as a partial failure carrying the transaction hash; it is not
// retried and the on-chain action is not rolled back.
func (u *SubmissionUsecase) Submit(ctx context.Context, walletAddress string, input *entities.SubmissionInput) (*entities.SubmissionResult, error) {
	trace := []entities.WorkflowState{entities.WorkflowIdle}

	if strings.TrimSpace(walletAddress) == "" {
		return nil, domainerrors.WalletNotConnected()
	}

	trace = append(trace, entities.WorkflowValidating)
	if fields := validateSubmission(input); len(fields) > 0 {
		return nil, domainerrors.Validation("Validation failed", fields)
	}

	trace = append(trace, entities.WorkflowBlockchainPending)
	handle, err := u.session.SendTransaction(ctx, blockchain.ContractCall{
		Method: "createPrompt",
		Args:   []interface{}{input.Image, input.Title},
	})
	if err != nil {
		return nil, domainerrors.Provider(err)
	}

	trace = append(trace, entities.WorkflowBlockchainConfirming)
	if _, err := u.session.AwaitConfirmation(ctx, handle); err != nil {
		return nil, domainerrors.Provider(err)
	}

	trace = append(trace, entities.WorkflowDatabaseSaving)
	prompt, err := u.prompts.CreatePrompt(ctx, &entities.CreatePromptInput{
		Image:         input.Image,
		Title:         input.Title,
		Content:       input.Content,
		Category:      input.Category,
		Price:         input.Price,
		Rating:        int(input.Rating),
		WalletAddress: walletAddress,
		TxHash:        handle.Hash,
	})
	if err != nil {
		logger.Error(ctx, "prompt persistence failed after on-chain confirmation",
			zap.String("tx_hash", handle.Hash),
			zap.Error(err))
		return nil, domainerrors.PartialFailure(handle.Hash, err)
	}

	trace = append(trace, entities.WorkflowComplete)
	return &entities.SubmissionResult{
		State:  entities.WorkflowComplete,
		Trace:  trace,
		TxHash: handle.Hash,
		Prompt: prompt,
	}, nil
}

// validateSubmission mirrors the marketplace form checks field by field.
func validateSubmission(input *entities.SubmissionInput) map[string]string {
	fields := make(map[string]string)
	if input == nil {
		fields["body"] = "request body is required"
		return fields
	}

	if strings.TrimSpace(input.Image) == "" {
		fields["image"] = "Image URL is required"
	}
	switch {
	case strings.TrimSpace(input.Title) == "":
		fields["title"] = "Title is required"
	case len(input.Title) < 3:
		fields["title"] = "Title must be at least 3 characters"
	}
	switch {
	case strings.TrimSpace(input.Content) == "":
		fields["content"] = "Content is required"
	case len(input.Content) < 10:
		fields["content"] = "Content must be at least 10 characters"
	}
	if input.Category == "" {
		fields["category"] = "Category is required"
	}
	switch {
	case input.Price == 0:
		fields["price"] = "Price is required"
	case input.Price < 0:
		fields["price"] = "Price must be a positive number"
	}
	switch {
	case input.Rating == 0:
		fields["rating"] = "Rating is required"
	case input.Rating < 1 || input.Rating > 5:
		fields["rating"] = "Rating must be between 1 and 5"
	}
	return fields
}
