package repositories

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
	domainerrors "prompthash.backend/internal/domain/errors"
)

func TestUserRepository_GetOrCreateByWallet_CreatesWithDefaults(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user, err := repo.GetOrCreateByWallet(ctx, "0xAbCdEf0123456789")
	require.NoError(t, err)
	require.Equal(t, "0xabcdef0123456789", user.WalletAddress)
	require.Regexp(t, regexp.MustCompile(`^user\d{6}$`), user.Username)
	require.Equal(t, DefaultUserRating, user.Rating)
	require.NotEqual(t, user.ID.String(), "00000000-0000-0000-0000-000000000000")
}

func TestUserRepository_GetOrCreateByWallet_Idempotent(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	first, err := repo.GetOrCreateByWallet(ctx, "0xAAA")
	require.NoError(t, err)

	// Same address with different casing resolves to the same row.
	second, err := repo.GetOrCreateByWallet(ctx, "0xaaa")
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, first.Username, second.Username)
}

func TestUserRepository_GetOrCreateByWallet_EmptyAddress(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)

	_, err := repo.GetOrCreateByWallet(context.Background(), "   ")
	require.Error(t, err)
}

func TestUserRepository_GetByWallet_NotFound(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)

	_, err := repo.GetByWallet(context.Background(), "0xmissing")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestIsUniqueViolation(t *testing.T) {
	require.False(t, isUniqueViolation(nil))
	require.True(t, isUniqueViolation(errSentinel("UNIQUE constraint failed: users.wallet_address")))
	require.True(t, isUniqueViolation(errSentinel(`duplicate key value violates unique constraint "idx_users_wallet_address"`)))
	require.False(t, isUniqueViolation(errSentinel("connection refused")))
}

type errSentinel string

func (e errSentinel) Error() string { return string(e) }
