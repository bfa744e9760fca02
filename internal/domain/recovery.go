package domain

import (
	"context"
	"time"

	"github.com/raidpot-lab/backend/internal/common"
	"github.com/raidpot-lab/backend/internal/domain/notification/event"
	"github.com/raidpot-lab/backend/internal/model"
	"github.com/raidpot-lab/backend/internal/repository"
	"github.com/raidpot-lab/backend/pkg/errorx"
	"github.com/raidpot-lab/backend/pkg/pubsub"
	"github.com/raidpot-lab/backend/pkg/xcontext"
)

// RecoveryDomain reconciles the store with the in-process countdowns after a
// restart. Countdowns are advisory; the store rows are the truth this run
// restores from.
type RecoveryDomain interface {
	Recover(ctx context.Context, req *model.RecoverRequest) (*model.RecoverResponse, error)
}

type recoveryDomain struct {
	itemRepo       repository.AuctionItemRepository
	raidRepo       repository.RaidRepository
	preAuctionRepo repository.PreAuctionRepository
	auctionDomain  AuctionDomain
	settlement     SettlementEngine
	publisher      pubsub.Publisher
}

func NewRecoveryDomain(
	itemRepo repository.AuctionItemRepository,
	raidRepo repository.RaidRepository,
	preAuctionRepo repository.PreAuctionRepository,
	auctionDomain AuctionDomain,
	settlement SettlementEngine,
	publisher pubsub.Publisher,
) *recoveryDomain {
	return &recoveryDomain{
		itemRepo:       itemRepo,
		raidRepo:       raidRepo,
		preAuctionRepo: preAuctionRepo,
		auctionDomain:  auctionDomain,
		settlement:     settlement,
		publisher:      publisher,
	}
}

// Recover settles every active auction whose deadline passed while the
// process was down, resumes the countdown of those still live, and sweeps
// raids whose shared pre-auction deadline expired. One failing item never
// aborts the run.
func (d *recoveryDomain) Recover(
	ctx context.Context, req *model.RecoverRequest,
) (*model.RecoverResponse, error) {
	resp := &model.RecoverResponse{}

	items, err := d.itemRepo.GetAllActive(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get active auction items: %v", err)
		return nil, errorx.Unknown
	}

	now := time.Now()
	for i := range items {
		item := &items[i]

		if item.EndsAt.Valid && item.EndsAt.Time.After(now) {
			d.auctionDomain.ResumeCountdown(ctx, item)
			resp.ResumedAuctions++
			continue
		}

		result, err := d.settlement.CompleteAuction(ctx, item.ID)
		if err != nil && isConflictRetry(err) {
			result, err = d.settlement.CompleteAuction(ctx, item.ID)
		}

		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot settle expired item %s: %v", item.ID, err)
			resp.FailedAuctions++
			continue
		}

		if result.Rescheduled {
			d.auctionDomain.ResumeCountdown(ctx, result.Item)
			resp.ResumedAuctions++
			continue
		}

		resp.SettledAuctions++
	}

	raids, err := d.raidRepo.GetPreAuctionExpired(ctx, now)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get expired pre-auction raids: %v", err)
		return nil, errorx.Unknown
	}

	for i := range raids {
		raid := &raids[i]

		ended, err := d.endExpiredPreAuctions(ctx, raid.ID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot end pre-auctions of raid %s: %v", raid.ID, err)
			continue
		}

		if ended > 0 {
			resp.EndedPreAuctionItems += ended
			publishEvent(ctx, d.publisher, common.RaidChannel(raid.ID), &event.PreAuctionEndedEvent{
				RaidID:     raid.ID,
				EndedItems: ended,
			})
		}
	}

	return resp, nil
}

func (d *recoveryDomain) endExpiredPreAuctions(ctx context.Context, raidID string) (int64, error) {
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	// Re-take the raid under lock; the deadline may have moved or a leader
	// sweep may have run since the scan.
	raid, err := d.raidRepo.GetByIDForUpdate(ctx, raidID)
	if err != nil {
		return 0, err
	}

	if !raid.PreAuctionEndsAt.Valid || raid.PreAuctionEndsAt.Time.After(time.Now()) {
		return 0, nil
	}

	ended, err := d.preAuctionRepo.EndActiveItemsByRaidID(ctx, raid.ID)
	if err != nil {
		return 0, err
	}

	if err := commitDBTransaction(ctx); err != nil {
		return 0, err
	}

	return ended, nil
}
