package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// DefaultCategory is assigned when a prompt is created without a category.
const DefaultCategory = "Other"

// Known categories. The column stays a free string; these are the values
// the marketplace UI offers.
var Categories = []string{
	"Marketing",
	"Creative Writing",
	"Programming",
	"Music",
	"Gaming",
	DefaultCategory,
}

// Prompt represents a marketplace prompt. PromptTokenID correlates the
// record with the on-chain asset minted by the marketplace contract.
type Prompt struct {
	ID            uuid.UUID    `json:"id"`
	Image         string       `json:"image"`
	Title         string       `json:"title"`
	Content       string       `json:"content"`
	Category      string       `json:"category"`
	Price         float64      `json:"price"`
	Rating        int          `json:"rating"`
	PromptTokenID int64        `json:"promptTokenId"`
	OwnerID       uuid.UUID    `json:"-"`
	Owner         *PromptOwner `json:"owner,omitempty"`
	TxHash        null.String  `json:"txHash,omitempty"`
	SoldAt        null.Time    `json:"soldAt,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

// CreatePromptInput represents input for creating a prompt record.
// Price mirrors the original API's falsy-field check: a zero price is
// treated as missing.
type CreatePromptInput struct {
	Image         string  `json:"image"`
	Title         string  `json:"title"`
	Content       string  `json:"content"`
	WalletAddress string  `json:"walletAddress"`
	Price         float64 `json:"price"`
	Category      string  `json:"category"`
	Rating        int     `json:"rating"`
	TxHash        string  `json:"txHash"`
}

// PromptFilter narrows prompt listings
type PromptFilter struct {
	Category      string `form:"category"`
	WalletAddress string `form:"walletAddress"`
}
