package usecases

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"prompthash.backend/internal/infrastructure/blockchain"
	"prompthash.backend/internal/infrastructure/repositories"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")

	require.NoError(t, db.Exec(`CREATE TABLE users (
		id TEXT PRIMARY KEY,
		wallet_address TEXT UNIQUE NOT NULL,
		username TEXT NOT NULL,
		rating INTEGER NOT NULL DEFAULT 4,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`).Error)
	require.NoError(t, db.Exec(`CREATE TABLE prompts (
		id TEXT PRIMARY KEY,
		image TEXT NOT NULL,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT 'Other',
		price REAL NOT NULL,
		rating INTEGER NOT NULL DEFAULT 3,
		prompt_token_id INTEGER NOT NULL UNIQUE,
		owner_id TEXT NOT NULL,
		tx_hash TEXT,
		sold_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`).Error)
	return db
}

func newMarketFixture(t *testing.T) (*gorm.DB, *repositories.PromptRepository, *repositories.UserRepository, *PromptUsecase) {
	t.Helper()
	db := newTestDB(t)
	promptRepo := repositories.NewPromptRepository(db)
	userRepo := repositories.NewUserRepository(db)
	return db, promptRepo, userRepo, NewPromptUsecase(promptRepo, userRepo)
}

// fakeSession records contract calls in order and lets tests fail or observe
// each stage.
type fakeSession struct {
	address    string
	hash       string
	sendErr    error
	confirmErr error
	calls      []blockchain.ContractCall
	confirmed  []string
	onConfirm  func()
}

func (f *fakeSession) Address() (string, error) {
	return f.address, nil
}

func (f *fakeSession) SendTransaction(_ context.Context, call blockchain.ContractCall) (*blockchain.TxHandle, error) {
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	f.calls = append(f.calls, call)
	hash := f.hash
	if hash == "" {
		hash = fmt.Sprintf("0xhash%d", len(f.calls))
	}
	return &blockchain.TxHandle{Hash: hash}, nil
}

func (f *fakeSession) AwaitConfirmation(_ context.Context, handle *blockchain.TxHandle) (*types.Receipt, error) {
	if f.confirmErr != nil {
		return nil, f.confirmErr
	}
	f.confirmed = append(f.confirmed, handle.Hash)
	if f.onConfirm != nil {
		f.onConfirm()
	}
	return &types.Receipt{Status: types.ReceiptStatusSuccessful}, nil
}
