package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/volatiletech/null/v8"

	"prompthash.backend/internal/domain/entities"
	domainerrors "prompthash.backend/internal/domain/errors"
	"prompthash.backend/internal/domain/repositories"
)

// PromptUsecase is the persistence gateway for prompt records
type PromptUsecase struct {
	promptRepo repositories.PromptRepository
	userRepo   repositories.UserRepository
}

func NewPromptUsecase(promptRepo repositories.PromptRepository, userRepo repositories.UserRepository) *PromptUsecase {
	return &PromptUsecase{
		promptRepo: promptRepo,
		userRepo:   userRepo,
	}
}

// CreatePrompt validates the input, resolves or creates the owner by wallet
// address and persists the prompt. The returned record carries the owner
// expanded to {username, walletAddress}.
func (u *PromptUsecase) CreatePrompt(ctx context.Context, input *entities.CreatePromptInput) (*entities.Prompt, error) {
	if input == nil {
		return nil, domainerrors.BadRequest("request body is required")
	}

	if missing := missingPromptFields(input); len(missing) > 0 {
		fields := make(map[string]string, len(missing))
		for _, name := range missing {
			fields[name] = "required"
		}
		return nil, domainerrors.Validation(
			fmt.Sprintf("Missing required fields: %s", strings.Join(missing, ", ")),
			fields,
		)
	}

	owner, err := u.userRepo.GetOrCreateByWallet(ctx, input.WalletAddress)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}

	prompt := &entities.Prompt{
		Image:    input.Image,
		Title:    input.Title,
		Content:  input.Content,
		Category: input.Category,
		Price:    input.Price,
		Rating:   input.Rating,
		OwnerID:  owner.ID,
		TxHash:   null.NewString(input.TxHash, input.TxHash != ""),
	}

	created, err := u.promptRepo.Create(ctx, prompt)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	return created, nil
}

// ListPrompts returns prompts newest-first, optionally narrowed by category
// or owning wallet address. An unknown wallet address yields an empty list.
func (u *PromptUsecase) ListPrompts(ctx context.Context, filter *entities.PromptFilter) ([]*entities.Prompt, error) {
	prompts, err := u.promptRepo.List(ctx, filter)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	return prompts, nil
}

// missingPromptFields reports absent mandatory fields with their display
// names, in a stable order. A zero price counts as missing.
func missingPromptFields(input *entities.CreatePromptInput) []string {
	var missing []string
	if input.Image == "" {
		missing = append(missing, "Image URL")
	}
	if input.Title == "" {
		missing = append(missing, "Title")
	}
	if input.Content == "" {
		missing = append(missing, "Content")
	}
	if input.WalletAddress == "" {
		missing = append(missing, "Wallet Address")
	}
	if input.Price == 0 {
		missing = append(missing, "Price")
	}
	return missing
}
