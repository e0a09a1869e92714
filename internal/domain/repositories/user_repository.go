package repositories

import (
	"context"

	"prompthash.backend/internal/domain/entities"
)

// UserRepository defines user data operations. Lookups are keyed by the
// lowercased wallet address.
type UserRepository interface {
	GetByWallet(ctx context.Context, walletAddress string) (*entities.User, error)
	GetOrCreateByWallet(ctx context.Context, walletAddress string) (*entities.User, error)
}
