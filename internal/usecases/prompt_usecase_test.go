package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"prompthash.backend/internal/domain/entities"
	domainerrors "prompthash.backend/internal/domain/errors"
)

func TestPromptUsecase_CreatePrompt_MissingFieldsMessage(t *testing.T) {
	_, _, _, prompts := newMarketFixture(t)

	_, err := prompts.CreatePrompt(context.Background(), &entities.CreatePromptInput{})
	require.Error(t, err)

	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, 400, appErr.Status)
	// The message names every missing field, in a stable order.
	require.Equal(t, "Missing required fields: Image URL, Title, Content, Wallet Address, Price", appErr.Message)
}

func TestPromptUsecase_CreatePrompt_NamesOnlyMissingFields(t *testing.T) {
	_, _, _, prompts := newMarketFixture(t)

	_, err := prompts.CreatePrompt(context.Background(), &entities.CreatePromptInput{
		Image:         "http://x/y.png",
		Content:       "0123456789",
		WalletAddress: "0xaaa",
	})
	require.Error(t, err)

	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, "Missing required fields: Title, Price", appErr.Message)
}

func TestPromptUsecase_CreatePrompt_DefaultsAndOwnerExpansion(t *testing.T) {
	_, _, _, prompts := newMarketFixture(t)

	created, err := prompts.CreatePrompt(context.Background(), &entities.CreatePromptInput{
		Image:         "http://x/y.png",
		Title:         "My Prompt",
		Content:       "0123456789",
		WalletAddress: "0xABC",
		Price:         5,
	})
	require.NoError(t, err)

	require.Equal(t, "Other", created.Category)
	require.Equal(t, 3, created.Rating)
	require.EqualValues(t, 1, created.PromptTokenID)
	require.NotNil(t, created.Owner)
	require.Equal(t, "0xabc", created.Owner.WalletAddress)
	require.NotEmpty(t, created.Owner.Username)
}

func TestPromptUsecase_CreatePrompt_ImplicitUserCreation(t *testing.T) {
	_, _, userRepo, prompts := newMarketFixture(t)
	ctx := context.Background()

	_, err := prompts.CreatePrompt(ctx, &entities.CreatePromptInput{
		Image:         "http://x/y.png",
		Title:         "My Prompt",
		Content:       "0123456789",
		WalletAddress: "0xNewWallet",
		Price:         5,
	})
	require.NoError(t, err)

	user, err := userRepo.GetByWallet(ctx, "0xnewwallet")
	require.NoError(t, err)
	require.Equal(t, 4, user.Rating)
}

func TestPromptUsecase_ListPrompts(t *testing.T) {
	_, _, _, prompts := newMarketFixture(t)
	ctx := context.Background()

	seedPrompt(t, prompts, "0xaaa", 1)
	seedPrompt(t, prompts, "0xbbb", 2)

	all, err := prompts.ListPrompts(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)

	none, err := prompts.ListPrompts(ctx, &entities.PromptFilter{WalletAddress: "0xghost"})
	require.NoError(t, err)
	require.Empty(t, none)
}
