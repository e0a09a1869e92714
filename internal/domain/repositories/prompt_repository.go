package repositories

import (
	"context"

	"github.com/google/uuid"
	"prompthash.backend/internal/domain/entities"
)

// PromptRepository defines prompt data operations
type PromptRepository interface {
	// Create persists a prompt. A zero PromptTokenID is allocated by the
	// repository; the created record is returned with the owner expanded.
	Create(ctx context.Context, prompt *entities.Prompt) (*entities.Prompt, error)
	GetByTokenID(ctx context.Context, tokenID int64) (*entities.Prompt, error)
	// List returns prompts newest-first. A filter wallet address with no
	// matching user yields an empty result, not an error.
	List(ctx context.Context, filter *entities.PromptFilter) ([]*entities.Prompt, error)
	// NextTokenID returns max(prompt_token_id)+1, or 1 for an empty table.
	// When the max query fails it falls back to count+1.
	NextTokenID(ctx context.Context) (int64, error)
	// UpdateOwner moves the cached owner of a token to another user.
	UpdateOwner(ctx context.Context, tokenID int64, ownerID uuid.UUID) error
	// ListRecentlySold returns prompts whose ownership may be stale,
	// for the ownership sync job.
	ListRecentlySold(ctx context.Context, limit int) ([]*entities.Prompt, error)
	MarkSold(ctx context.Context, tokenID int64) error
}
