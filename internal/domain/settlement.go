package domain

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/raidpot-lab/backend/internal/common"
	"github.com/raidpot-lab/backend/internal/domain/notification/event"
	"github.com/raidpot-lab/backend/internal/entity"
	"github.com/raidpot-lab/backend/internal/repository"
	"github.com/raidpot-lab/backend/pkg/errorx"
	"github.com/raidpot-lab/backend/pkg/pubsub"
	"github.com/raidpot-lab/backend/pkg/xcontext"
)

// SettlementResult reports what a settlement attempt did. Rescheduled means
// the item's deadline moved forward after the caller decided to settle, so
// nothing was settled and the countdown should resume at ResumeAt.
type SettlementResult struct {
	Item        *entity.AuctionItem
	WinnerID    string
	Amount      int64
	Rescheduled bool
	ResumeAt    time.Time
}

// SettlementEngine moves an expired auction from active to completed. It is
// the only writer of the settlement transfer: winner gold down, raid pot up,
// ledger record appended, all in one transaction.
type SettlementEngine interface {
	CompleteAuction(ctx context.Context, itemID string) (*SettlementResult, error)
}

type settlementEngine struct {
	itemRepo   repository.AuctionItemRepository
	raidRepo   repository.RaidRepository
	userRepo   repository.UserRepository
	goldTxRepo repository.GoldTransactionRepository
	publisher  pubsub.Publisher
}

func NewSettlementEngine(
	itemRepo repository.AuctionItemRepository,
	raidRepo repository.RaidRepository,
	userRepo repository.UserRepository,
	goldTxRepo repository.GoldTransactionRepository,
	publisher pubsub.Publisher,
) *settlementEngine {
	return &settlementEngine{
		itemRepo:   itemRepo,
		raidRepo:   raidRepo,
		userRepo:   userRepo,
		goldTxRepo: goldTxRepo,
		publisher:  publisher,
	}
}

// CompleteAuction is idempotent. The first check after taking the item row
// lock is the status: anything other than active means another settlement
// already won the race and this call is a no-op.
func (e *settlementEngine) CompleteAuction(
	ctx context.Context, itemID string,
) (*SettlementResult, error) {
	cfg := xcontext.Configs(ctx).Auction

	ctx, cancel := context.WithTimeout(ctx, cfg.SettleTxTimeout)
	defer cancel()

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	item, err := e.itemRepo.GetByIDForUpdate(ctx, itemID)
	if err != nil {
		if common.IsRetryableDBError(err) {
			return nil, errorx.New(errorx.ConflictRetry, "Too much contention, please retry")
		}

		xcontext.Logger(ctx).Errorf("Cannot get auction item: %v", err)
		return nil, errorx.Unknown
	}

	if item.Status != entity.AuctionItemActive {
		// Already settled, stopped, or cancelled.
		return &SettlementResult{Item: item}, nil
	}

	now := time.Now()
	if item.EndsAt.Valid && item.EndsAt.Time.After(now) {
		// An anti-snipe extension committed between the expiry decision and
		// this lock. Nothing to settle yet.
		return &SettlementResult{
			Item:        item,
			Rescheduled: true,
			ResumeAt:    item.EndsAt.Time,
		}, nil
	}

	result := &SettlementResult{Item: item}
	if item.WinnerID.Valid && item.CurrentBid > 0 {
		winner, err := e.userRepo.GetByIDForUpdate(ctx, item.WinnerID.String)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get winner: %v", err)
			return nil, errorx.Unknown
		}

		// Admission guarantees gold >= locked >= this bid, so a failure here
		// is an accounting bug, not a user error.
		if err := e.userRepo.DecreaseGold(ctx, winner.ID, item.CurrentBid); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot charge winner %s: %v", winner.ID, err)
			return nil, errorx.Unknown
		}

		if err := e.raidRepo.IncreasePot(ctx, item.RaidID, item.CurrentBid); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot credit pot: %v", err)
			return nil, errorx.Unknown
		}

		goldTx := &entity.GoldTransaction{
			Base:   entity.Base{ID: uuid.NewString()},
			UserID: winner.ID,
			RaidID: sql.NullString{Valid: true, String: item.RaidID},
			ItemID: sql.NullString{Valid: true, String: item.ID},
			Amount: -item.CurrentBid,
			Reason: entity.GoldTxSettlement,
			Note:   item.Name,
		}

		if err := e.goldTxRepo.Create(ctx, goldTx); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot append ledger record: %v", err)
			return nil, errorx.Unknown
		}

		result.WinnerID = winner.ID
		result.Amount = item.CurrentBid
	} else {
		// No bids: the item completes unsold.
		item.WinnerID = sql.NullString{}
		item.CurrentBid = 0
	}

	item.Status = entity.AuctionItemCompleted
	item.CompletedAt = sql.NullTime{Valid: true, Time: now}
	item.Version++

	if err := e.itemRepo.Update(ctx, item); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update auction item: %v", err)
		return nil, errorx.Unknown
	}

	if err := commitDBTransaction(ctx); err != nil {
		return nil, err
	}

	potTotal := int64(0)
	if raid, err := e.raidRepo.GetByID(ctx, item.RaidID); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot get raid for completed event: %v", err)
	} else {
		potTotal = raid.Pot
	}

	publishEvent(ctx, e.publisher, common.RaidChannel(item.RaidID), &event.AuctionCompletedEvent{
		RaidID:      item.RaidID,
		ItemID:      item.ID,
		WinnerID:    result.WinnerID,
		FinalAmount: result.Amount,
		PotTotal:    potTotal,
	})

	if result.WinnerID != "" {
		winner, err := e.userRepo.GetByID(ctx, result.WinnerID)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot get winner for balance event: %v", err)
		} else {
			publishEvent(ctx, e.publisher, common.UserChannel(winner.ID), &event.BalanceChangedEvent{
				UserID: winner.ID,
				Gold:   winner.Gold,
				Delta:  -result.Amount,
				Reason: string(entity.GoldTxSettlement),
			})
		}
	}

	return result, nil
}
