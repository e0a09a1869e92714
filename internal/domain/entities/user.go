package entities

import (
	"time"

	"github.com/google/uuid"
)

// User represents a marketplace user. Identity is the wallet address,
// stored lowercased; a user is created implicitly the first time an
// address is seen by any write path.
type User struct {
	ID            uuid.UUID `json:"id"`
	WalletAddress string    `json:"walletAddress"`
	Username      string    `json:"username"`
	Rating        int       `json:"rating"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// PromptOwner is the expanded owner view embedded in prompt responses.
type PromptOwner struct {
	Username      string `json:"username"`
	WalletAddress string `json:"walletAddress"`
}

// RegisterUserInput represents input for wallet registration
type RegisterUserInput struct {
	WalletAddress string `json:"walletAddress" binding:"required"`
}

// RegisterUserResponse represents the registration response
type RegisterUserResponse struct {
	User         *User  `json:"user"`
	SessionToken string `json:"sessionToken,omitempty"`
}
