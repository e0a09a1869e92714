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

// PurchaseUsecase drives the buy workflow. The payment value is the listed
// price times the markup factor, converted to base units. Preconditions are
// checked before any on-chain call is made.
type PurchaseUsecase struct {
	session      blockchain.SigningSession
	promptRepo   repositories.PromptRepository
	markupFactor float64
}

func NewPurchaseUsecase(session blockchain.SigningSession, promptRepo repositories.PromptRepository, markupFactor float64) *PurchaseUsecase {
	return &PurchaseUsecase{
		session:      session,
		promptRepo:   promptRepo,
		markupFactor: markupFactor,
	}
}

// Purchase buys the prompt with the given token id on behalf of the buyer
// wallet. On confirmation the prompt is marked sold for the ownership sync
// job, and a fresh listing is returned to the caller.
func (u *PurchaseUsecase) Purchase(ctx context.Context, buyerAddress string, input *entities.PurchaseInput) (*entities.PurchaseResult, error) {
	if strings.TrimSpace(buyerAddress) == "" {
		return nil, domainerrors.WalletNotConnected()
	}
	if input == nil || input.PromptTokenID <= 0 {
		return nil, domainerrors.BadRequest("Invalid prompt token ID")
	}

	prompt, err := u.promptRepo.GetByTokenID(ctx, input.PromptTokenID)
	if err != nil {
		return nil, domainerrors.NotFound("prompt not found")
	}

	if prompt.Owner != nil && strings.EqualFold(prompt.Owner.WalletAddress, buyerAddress) {
		return nil, domainerrors.SelfPurchase()
	}

	value, err := u.paymentValue(prompt.Price)
	if err != nil {
		return nil, domainerrors.BadRequest(err.Error())
	}

	handle, err := u.session.SendTransaction(ctx, blockchain.ContractCall{
		Method: "buyPrompt",
		Args:   []interface{}{big.NewInt(input.PromptTokenID)},
		Value:  value,
	})
	if err != nil {
		return nil, domainerrors.Provider(err)
	}

	if _, err := u.session.AwaitConfirmation(ctx, handle); err != nil {
		return nil, domainerrors.Provider(err)
	}

	if err := u.promptRepo.MarkSold(ctx, input.PromptTokenID); err != nil {
		return nil, domainerrors.PartialFailure(handle.Hash, err)
	}

	// Read-only refresh; ownership of record is synced from the chain by
	// the background job.
	refreshed, err := u.promptRepo.List(ctx, nil)
	if err != nil {
		refreshed = nil
	}

	return &entities.PurchaseResult{
		State:     entities.WorkflowComplete,
		TxHash:    handle.Hash,
		ValueWei:  value.String(),
		Refreshed: refreshed,
	}, nil
}

// paymentValue converts price*markup to base units without float drift.
func (u *PurchaseUsecase) paymentValue(price float64) (*big.Int, error) {
	wei, err := utils.ToBaseUnits(price)
	if err != nil {
		return nil, err
	}
	return utils.ApplyMarkup(wei, u.markupFactor), nil
}

// ButtonState projects the four purchase axes into a single presentational
// state. Precedence: not-connected > is-owner > in-flight > default.
func ButtonState(input *entities.ButtonStateInput) *entities.ButtonState {
	if input == nil || !input.Connected {
		return &entities.ButtonState{Label: "Connect Wallet", Disabled: true, Variant: "outline"}
	}
	if input.OwnerAddress != "" && strings.EqualFold(input.BuyerAddress, input.OwnerAddress) {
		return &entities.ButtonState{Label: "Your Prompt", Disabled: true, Variant: "secondary"}
	}
	if input.Pending {
		return &entities.ButtonState{Label: "Confirming...", Disabled: true, Variant: "default"}
	}
	if input.Confirming {
		return &entities.ButtonState{Label: "Processing...", Disabled: true, Variant: "default"}
	}
	return &entities.ButtonState{Label: "Buy Now", Disabled: false, Variant: "default"}
}
