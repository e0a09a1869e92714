package repositories

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"gorm.io/gorm"
	"prompthash.backend/internal/domain/entities"
	domainerrors "prompthash.backend/internal/domain/errors"
	"prompthash.backend/internal/infrastructure/models"
	"prompthash.backend/pkg/utils"
)

// DefaultUserRating is assigned to implicitly created users.
const DefaultUserRating = 4

// UserRepository implements user data operations keyed by wallet address
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByWallet gets a user by lowercased wallet address
func (r *UserRepository) GetByWallet(ctx context.Context, walletAddress string) (*entities.User, error) {
	var m models.User
	addr := strings.ToLower(strings.TrimSpace(walletAddress))
	if err := r.db.WithContext(ctx).Where("wallet_address = ?", addr).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toUserEntity(&m), nil
}

// GetOrCreateByWallet resolves a user by wallet address, creating one with a
// generated username when the address has never been seen. Creation is
// idempotent: a concurrent create of the same address resolves to the row
// that won the unique index.
func (r *UserRepository) GetOrCreateByWallet(ctx context.Context, walletAddress string) (*entities.User, error) {
	addr := strings.ToLower(strings.TrimSpace(walletAddress))
	if addr == "" {
		return nil, domainerrors.BadRequest("wallet address is required")
	}

	if user, err := r.GetByWallet(ctx, addr); err == nil {
		return user, nil
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	m := &models.User{
		ID:            utils.GenerateUUIDv7(),
		WalletAddress: addr,
		Username:      generateUsername(),
		Rating:        DefaultUserRating,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return r.GetByWallet(ctx, addr)
		}
		return nil, err
	}
	return toUserEntity(m), nil
}

// generateUsername produces "user" plus a random six-digit suffix.
func generateUsername() string {
	return fmt.Sprintf("user%d", 100000+rand.Intn(900000))
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate key")
}

func toUserEntity(m *models.User) *entities.User {
	return &entities.User{
		ID:            m.ID,
		WalletAddress: m.WalletAddress,
		Username:      m.Username,
		Rating:        m.Rating,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
