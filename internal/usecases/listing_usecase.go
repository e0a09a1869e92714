package usecases

import (
	"context"
	"math/big"
	"strings"

	"prompthash.backend/internal/domain/entities"
	domainerrors "prompthash.backend/internal/domain/errors"
	"prompthash.backend/internal/domain/repositories"
	"prompthash.backend/internal/infrastructure/blockchain"
	"prompthash.backend/pkg/utils"
)

// ListingUsecase drives the list-for-sale workflow. The price is converted
// to base units without markup.
type ListingUsecase struct {
	session    blockchain.SigningSession
	promptRepo repositories.PromptRepository
}

func NewListingUsecase(session blockchain.SigningSession, promptRepo repositories.PromptRepository) *ListingUsecase {
	return &ListingUsecase{
		session:    session,
		promptRepo: promptRepo,
	}
}

// List puts a prompt up for sale on-chain and returns the caller's own
// prompts, refreshed, scoped by the connected wallet address.
func (u *ListingUsecase) List(ctx context.Context, walletAddress string, input *entities.ListingInput) (*entities.ListingResult, error) {
	if strings.TrimSpace(walletAddress) == "" {
		return nil, domainerrors.WalletNotConnected()
	}
	if input == nil || input.PromptTokenID <= 0 {
		return nil, domainerrors.BadRequest("Invalid prompt token ID")
	}
	if input.Price <= 0 {
		return nil, domainerrors.BadRequest("Price must be a positive number")
	}

	priceWei, err := utils.ToBaseUnits(input.Price)
	if err != nil {
		return nil, domainerrors.BadRequest(err.Error())
	}

	handle, err := u.session.SendTransaction(ctx, blockchain.ContractCall{
		Method: "listPromptForSale",
		Args:   []interface{}{big.NewInt(input.PromptTokenID), priceWei},
	})
	if err != nil {
		return nil, domainerrors.Provider(err)
	}

	if _, err := u.session.AwaitConfirmation(ctx, handle); err != nil {
		return nil, domainerrors.Provider(err)
	}

	refreshed, err := u.promptRepo.List(ctx, &entities.PromptFilter{WalletAddress: walletAddress})
	if err != nil {
		refreshed = nil
	}

	return &entities.ListingResult{
		State:     entities.WorkflowComplete,
		TxHash:    handle.Hash,
		ValueWei:  priceWei.String(),
		Refreshed: refreshed,
	}, nil
}
