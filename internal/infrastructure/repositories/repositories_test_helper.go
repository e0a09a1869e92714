package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		wallet_address TEXT UNIQUE NOT NULL,
		username TEXT NOT NULL,
		rating INTEGER NOT NULL DEFAULT 4,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createPromptTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE prompts (
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
	);`)
}

func createMarketTables(t *testing.T, db *gorm.DB) {
	createUserTable(t, db)
	createPromptTable(t, db)
}
