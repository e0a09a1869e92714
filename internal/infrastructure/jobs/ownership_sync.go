package jobs

import (
	"context"
	"log"
	"time"

	"prompthash.backend/internal/domain/repositories"
	"prompthash.backend/internal/infrastructure/blockchain"
)

// OwnershipSyncJob reconciles off-chain prompt owners with the contract.
// Purchases transfer the token on-chain only, so the database owner column is
// a cache that this job refreshes from ownerOf.
type OwnershipSyncJob struct {
	prompts  repositories.PromptRepository
	users    repositories.UserRepository
	reader   *blockchain.MarketplaceReader
	interval time.Duration
	stop     chan struct{}
}

func NewOwnershipSyncJob(
	prompts repositories.PromptRepository,
	users repositories.UserRepository,
	reader *blockchain.MarketplaceReader,
	interval time.Duration,
) *OwnershipSyncJob {
	return &OwnershipSyncJob{
		prompts:  prompts,
		users:    users,
		reader:   reader,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

func (j *OwnershipSyncJob) Start(ctx context.Context) {
	log.Println("🕐 Starting ownership sync job...")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("⏹️ Ownership sync job stopped (context cancelled)")
			return
		case <-j.stop:
			log.Println("⏹️ Ownership sync job stopped")
			return
		case <-ticker.C:
			j.syncSoldPrompts(ctx)
		}
	}
}

func (j *OwnershipSyncJob) Stop() {
	close(j.stop)
}

func (j *OwnershipSyncJob) syncSoldPrompts(ctx context.Context) {
	sold, err := j.prompts.ListRecentlySold(ctx, 100)
	if err != nil {
		log.Printf("❌ Error fetching sold prompts: %v", err)
		return
	}

	if len(sold) == 0 {
		return
	}

	log.Printf("🔄 Syncing ownership for %d sold prompts...", len(sold))

	synced := 0
	for _, prompt := range sold {
		chainOwner, err := j.reader.OwnerOf(ctx, prompt.PromptTokenID)
		if err != nil {
			log.Printf("❌ Error reading owner of token %d: %v", prompt.PromptTokenID, err)
			continue
		}

		if prompt.Owner != nil && chainOwner == prompt.Owner.WalletAddress {
			// Already consistent, clear the sold marker.
			if err := j.prompts.UpdateOwner(ctx, prompt.PromptTokenID, prompt.OwnerID); err != nil {
				log.Printf("❌ Error clearing sold marker for token %d: %v", prompt.PromptTokenID, err)
			}
			continue
		}

		owner, err := j.users.GetOrCreateByWallet(ctx, chainOwner)
		if err != nil {
			log.Printf("❌ Error resolving owner %s: %v", chainOwner, err)
			continue
		}

		if err := j.prompts.UpdateOwner(ctx, prompt.PromptTokenID, owner.ID); err != nil {
			log.Printf("❌ Error updating owner of token %d: %v", prompt.PromptTokenID, err)
			continue
		}
		synced++
	}

	if synced > 0 {
		log.Printf("✅ Synced ownership for %d prompts", synced)
	}
}
