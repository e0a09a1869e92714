package handlers

import (
	"fmt"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"prompthash.backend/internal/infrastructure/repositories"
	"prompthash.backend/internal/usecases"
	"prompthash.backend/pkg/jwt"
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

type handlerFixture struct {
	router        *gin.Engine
	promptUsecase *usecases.PromptUsecase
	userUsecase   *usecases.UserUsecase
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := newTestDB(t)
	promptRepo := repositories.NewPromptRepository(db)
	userRepo := repositories.NewUserRepository(db)
	jwtService := jwt.NewService("test-secret", time.Hour)

	promptUsecase := usecases.NewPromptUsecase(promptRepo, userRepo)
	userUsecase := usecases.NewUserUsecase(userRepo, jwtService)

	promptHandler := NewPromptHandler(promptUsecase)
	userHandler := NewUserHandler(userUsecase)

	r := gin.New()
	r.POST("/api/prompts", promptHandler.Create)
	r.GET("/api/prompts", promptHandler.List)
	r.POST("/api/user", userHandler.Register)
	r.GET("/api/v1/users/:walletAddress", userHandler.GetByWallet)

	return &handlerFixture{
		router:        r,
		promptUsecase: promptUsecase,
		userUsecase:   userUsecase,
	}
}
