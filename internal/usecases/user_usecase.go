package usecases

import (
	"context"
	"errors"
	"strings"

	"prompthash.backend/internal/domain/entities"
	domainerrors "prompthash.backend/internal/domain/errors"
	"prompthash.backend/internal/domain/repositories"
	"prompthash.backend/pkg/jwt"
)

// UserUsecase handles wallet-based registration
type UserUsecase struct {
	userRepo   repositories.UserRepository
	jwtService *jwt.Service
}

func NewUserUsecase(userRepo repositories.UserRepository, jwtService *jwt.Service) *UserUsecase {
	return &UserUsecase{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Register creates the user for a wallet address if it does not exist yet and
// issues a session token. Registration is idempotent per address.
func (u *UserUsecase) Register(ctx context.Context, input *entities.RegisterUserInput) (*entities.RegisterUserResponse, error) {
	if input == nil || strings.TrimSpace(input.WalletAddress) == "" {
		return nil, domainerrors.BadRequest("walletAddress is required")
	}

	user, err := u.userRepo.GetOrCreateByWallet(ctx, input.WalletAddress)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}

	token, err := u.jwtService.Generate(user.WalletAddress, user.Username)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}

	return &entities.RegisterUserResponse{
		User:         user,
		SessionToken: token,
	}, nil
}

// GetByWallet looks a user up by wallet address.
func (u *UserUsecase) GetByWallet(ctx context.Context, walletAddress string) (*entities.User, error) {
	if strings.TrimSpace(walletAddress) == "" {
		return nil, domainerrors.BadRequest("walletAddress is required")
	}

	user, err := u.userRepo.GetByWallet(ctx, walletAddress)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("User not found. Please connect your wallet first.")
		}
		return nil, domainerrors.InternalError(err)
	}
	return user, nil
}
