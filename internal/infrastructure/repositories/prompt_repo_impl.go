package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"prompthash.backend/internal/domain/entities"
	domainerrors "prompthash.backend/internal/domain/errors"
	"prompthash.backend/internal/infrastructure/models"
	"prompthash.backend/pkg/utils"
)

// DefaultPromptRating is assigned to prompts created without a rating.
const DefaultPromptRating = 3

// tokenIDAllocAttempts bounds retries when two creations race for the
// same token id and one loses the unique index.
const tokenIDAllocAttempts = 5

// PromptRepository implements prompt data operations
type PromptRepository struct {
	db *gorm.DB
}

// NewPromptRepository creates a new prompt repository
func NewPromptRepository(db *gorm.DB) *PromptRepository {
	return &PromptRepository{db: db}
}

// NextTokenID returns max(prompt_token_id)+1, or 1 when no prompt exists.
// If the max query fails it falls back to count+1.
func (r *PromptRepository) NextTokenID(ctx context.Context) (int64, error) {
	var maxID int64
	err := r.db.WithContext(ctx).
		Model(&models.Prompt{}).
		Select("COALESCE(MAX(prompt_token_id), 0)").
		Scan(&maxID).Error
	if err == nil {
		return maxID + 1, nil
	}

	var count int64
	if countErr := r.db.WithContext(ctx).Model(&models.Prompt{}).Count(&count).Error; countErr != nil {
		return 0, countErr
	}
	return count + 1, nil
}

// Create persists a prompt, allocating the token id when the caller left it
// zero. Allocation and insert run in one transaction; the unique index on
// prompt_token_id turns a concurrent duplicate into a retry instead of two
// rows sharing an id.
func (r *PromptRepository) Create(ctx context.Context, prompt *entities.Prompt) (*entities.Prompt, error) {
	if prompt.ID == uuid.Nil {
		prompt.ID = utils.GenerateUUIDv7()
	}
	if prompt.Category == "" {
		prompt.Category = entities.DefaultCategory
	}
	if prompt.Rating == 0 {
		prompt.Rating = DefaultPromptRating
	}

	explicitTokenID := prompt.PromptTokenID != 0

	err := retry.Do(
		func() error {
			return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
				tokenID := prompt.PromptTokenID
				if !explicitTokenID {
					var err error
					tokenID, err = (&PromptRepository{db: tx}).NextTokenID(ctx)
					if err != nil {
						return err
					}
				}

				m := &models.Prompt{
					ID:            prompt.ID,
					Image:         prompt.Image,
					Title:         prompt.Title,
					Content:       prompt.Content,
					Category:      prompt.Category,
					Price:         prompt.Price,
					Rating:        prompt.Rating,
					PromptTokenID: tokenID,
					OwnerID:       prompt.OwnerID,
					TxHash:        prompt.TxHash.Ptr(),
				}
				if err := tx.Create(m).Error; err != nil {
					return err
				}
				prompt.PromptTokenID = tokenID
				return nil
			})
		},
		retry.Context(ctx),
		retry.Attempts(tokenIDAllocAttempts),
		retry.RetryIf(func(err error) bool {
			return !explicitTokenID && isUniqueViolation(err)
		}),
		retry.LastErrorOnly(true),
		retry.Delay(0),
	)
	if err != nil {
		return nil, err
	}

	return r.GetByTokenID(ctx, prompt.PromptTokenID)
}

// GetByTokenID gets a prompt by its on-chain token id with owner expanded
func (r *PromptRepository) GetByTokenID(ctx context.Context, tokenID int64) (*entities.Prompt, error) {
	var m models.Prompt
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Where("prompt_token_id = ?", tokenID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toPromptEntity(&m), nil
}

// List returns prompts newest-first, optionally filtered by category and
// owner wallet address. An unknown wallet address yields an empty result.
func (r *PromptRepository) List(ctx context.Context, filter *entities.PromptFilter) ([]*entities.Prompt, error) {
	query := r.db.WithContext(ctx).Preload("Owner").Order("created_at DESC")

	if filter != nil {
		if filter.Category != "" {
			query = query.Where("category = ?", filter.Category)
		}
		if filter.WalletAddress != "" {
			var owner models.User
			addr := strings.ToLower(strings.TrimSpace(filter.WalletAddress))
			err := r.db.WithContext(ctx).Where("wallet_address = ?", addr).First(&owner).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return []*entities.Prompt{}, nil
				}
				return nil, err
			}
			query = query.Where("owner_id = ?", owner.ID)
		}
	}

	var promptModels []models.Prompt
	if err := query.Find(&promptModels).Error; err != nil {
		return nil, err
	}

	prompts := make([]*entities.Prompt, 0, len(promptModels))
	for i := range promptModels {
		prompts = append(prompts, toPromptEntity(&promptModels[i]))
	}
	return prompts, nil
}

// MarkSold flags a prompt so the ownership sync job re-reads its on-chain owner
func (r *PromptRepository) MarkSold(ctx context.Context, tokenID int64) error {
	result := r.db.WithContext(ctx).
		Model(&models.Prompt{}).
		Where("prompt_token_id = ?", tokenID).
		Update("sold_at", time.Now())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ListRecentlySold returns prompts flagged as sold, oldest flag first
func (r *PromptRepository) ListRecentlySold(ctx context.Context, limit int) ([]*entities.Prompt, error) {
	var promptModels []models.Prompt
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Where("sold_at IS NOT NULL").
		Order("sold_at ASC").
		Limit(limit).
		Find(&promptModels).Error
	if err != nil {
		return nil, err
	}

	prompts := make([]*entities.Prompt, 0, len(promptModels))
	for i := range promptModels {
		prompts = append(prompts, toPromptEntity(&promptModels[i]))
	}
	return prompts, nil
}

// UpdateOwner moves the cached owner of a token and clears the sold flag
func (r *PromptRepository) UpdateOwner(ctx context.Context, tokenID int64, ownerID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&models.Prompt{}).
		Where("prompt_token_id = ?", tokenID).
		Updates(map[string]interface{}{
			"owner_id": ownerID,
			"sold_at":  nil,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func toPromptEntity(m *models.Prompt) *entities.Prompt {
	e := &entities.Prompt{
		ID:            m.ID,
		Image:         m.Image,
		Title:         m.Title,
		Content:       m.Content,
		Category:      m.Category,
		Price:         m.Price,
		Rating:        m.Rating,
		PromptTokenID: m.PromptTokenID,
		OwnerID:       m.OwnerID,
		TxHash:        null.StringFromPtr(m.TxHash),
		SoldAt:        null.TimeFromPtr(m.SoldAt),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	if m.Owner != nil {
		e.Owner = &entities.PromptOwner{
			Username:      m.Owner.Username,
			WalletAddress: m.Owner.WalletAddress,
		}
	}
	return e
}
