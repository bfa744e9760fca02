package domain

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/raidpot-lab/backend/internal/common"
	"github.com/raidpot-lab/backend/internal/domain/countdown"
	"github.com/raidpot-lab/backend/internal/domain/notification/event"
	"github.com/raidpot-lab/backend/internal/entity"
	"github.com/raidpot-lab/backend/internal/model"
	"github.com/raidpot-lab/backend/internal/repository"
	"github.com/raidpot-lab/backend/pkg/errorx"
	"github.com/raidpot-lab/backend/pkg/pubsub"
	"github.com/raidpot-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type DistributionDomain interface {
	Preview(ctx context.Context, req *model.PreviewDistributionRequest) (*model.PreviewDistributionResponse, error)
	Distribute(ctx context.Context, req *model.DistributePotRequest) (*model.DistributePotResponse, error)
	CancelRaid(ctx context.Context, req *model.CancelRaidRequest) (*model.CancelRaidResponse, error)
}

type distributionDomain struct {
	raidRepo        repository.RaidRepository
	participantRepo repository.ParticipantRepository
	itemRepo        repository.AuctionItemRepository
	bidRepo         repository.BidRepository
	userRepo        repository.UserRepository
	goldTxRepo      repository.GoldTransactionRepository
	raidRoleVerifier *common.RaidRoleVerifier
	countdowns      *countdown.Registry
	publisher       pubsub.Publisher
}

func NewDistributionDomain(
	raidRepo repository.RaidRepository,
	participantRepo repository.ParticipantRepository,
	itemRepo repository.AuctionItemRepository,
	bidRepo repository.BidRepository,
	userRepo repository.UserRepository,
	goldTxRepo repository.GoldTransactionRepository,
	raidRoleVerifier *common.RaidRoleVerifier,
	countdowns *countdown.Registry,
	publisher pubsub.Publisher,
) *distributionDomain {
	return &distributionDomain{
		raidRepo:         raidRepo,
		participantRepo:  participantRepo,
		itemRepo:         itemRepo,
		bidRepo:          bidRepo,
		userRepo:         userRepo,
		goldTxRepo:       goldTxRepo,
		raidRoleVerifier: raidRoleVerifier,
		countdowns:       countdowns,
		publisher:        publisher,
	}
}

// Preview computes the payout of the current pot without touching any
// balance. Any participant can preview.
func (d *distributionDomain) Preview(
	ctx context.Context, req *model.PreviewDistributionRequest,
) (*model.PreviewDistributionResponse, error) {
	raid, err := d.raidRepo.GetByID(ctx, req.RaidID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found raid")
		}

		xcontext.Logger(ctx).Errorf("Cannot get raid: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.raidRoleVerifier.Verify(ctx, raid.ID,
		entity.RaidRoleLeader, entity.RaidRoleOfficer, entity.RaidRoleMember); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	participants, err := d.participantRepo.GetByRaidID(ctx, raid.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get participants: %v", err)
		return nil, errorx.Unknown
	}

	shares, retained, err := computeShares(raid, participants)
	if err != nil {
		return nil, err
	}

	return &model.PreviewDistributionResponse{
		PotTotal: raid.Pot,
		Shares:   convertShares(participants, shares),
		Retained: retained,
	}, nil
}

// Distribute pays the pot out to every participant and completes the raid.
// Leader only, and only once every auction item has finished.
func (d *distributionDomain) Distribute(
	ctx context.Context, req *model.DistributePotRequest,
) (*model.DistributePotResponse, error) {
	cfg := xcontext.Configs(ctx).Auction

	ctx, cancel := context.WithTimeout(ctx, cfg.PayoutTxTimeout)
	defer cancel()

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	raid, err := d.raidRepo.GetByIDForUpdate(ctx, req.RaidID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found raid")
		}

		xcontext.Logger(ctx).Errorf("Cannot get raid: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.raidRoleVerifier.Verify(ctx, raid.ID, entity.RaidRoleLeader); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	if raid.Status != entity.RaidActive {
		return nil, errorx.New(errorx.Unavailable, "Raid is not active")
	}

	unfinished, err := d.itemRepo.CountUnfinishedByRaidID(ctx, raid.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count unfinished items: %v", err)
		return nil, errorx.Unknown
	}

	if unfinished > 0 {
		return nil, errorx.New(errorx.AuctionsPending,
			"%d auctions have not finished yet", unfinished)
	}

	participants, err := d.participantRepo.GetByRaidID(ctx, raid.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get participants: %v", err)
		return nil, errorx.Unknown
	}

	potTotal := raid.Pot
	shares := map[string]int64{}
	retained := int64(0)
	if potTotal > 0 {
		shares, retained, err = computeShares(raid, participants)
		if err != nil {
			return nil, err
		}
	}

	now := time.Now()
	distributed := int64(0)

	// Participants arrive ordered by user_id, which fixes the user row lock
	// order against concurrent payouts.
	for _, p := range participants {
		share := shares[p.UserID]
		if share > 0 {
			if _, err := d.userRepo.GetByIDForUpdate(ctx, p.UserID); err != nil {
				xcontext.Logger(ctx).Errorf("Cannot lock participant %s: %v", p.UserID, err)
				return nil, errorx.Unknown
			}

			if err := d.userRepo.IncreaseGold(ctx, p.UserID, share); err != nil {
				xcontext.Logger(ctx).Errorf("Cannot pay participant %s: %v", p.UserID, err)
				return nil, errorx.Unknown
			}

			goldTx := &entity.GoldTransaction{
				Base:   entity.Base{ID: uuid.NewString()},
				UserID: p.UserID,
				RaidID: sql.NullString{Valid: true, String: raid.ID},
				Amount: share,
				Reason: entity.GoldTxPotPayout,
				Note:   raid.Name,
			}

			if err := d.goldTxRepo.Create(ctx, goldTx); err != nil {
				xcontext.Logger(ctx).Errorf("Cannot append ledger record: %v", err)
				return nil, errorx.Unknown
			}

			distributed += share
		}

		if err := d.participantRepo.SetPaidAt(ctx, raid.ID, p.UserID, now); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot mark participant paid: %v", err)
			return nil, errorx.Unknown
		}
	}

	raid.Status = entity.RaidCompleted
	raid.Pot = 0
	if err := d.raidRepo.Update(ctx, raid); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update raid: %v", err)
		return nil, errorx.Unknown
	}

	if err := commitDBTransaction(ctx); err != nil {
		return nil, err
	}

	publishEvent(ctx, d.publisher, common.RaidChannel(raid.ID), &event.PotDistributedEvent{
		RaidID:      raid.ID,
		PotTotal:    potTotal,
		Distributed: distributed,
		Retained:    retained,
	})

	for _, p := range participants {
		if shares[p.UserID] > 0 {
			d.publishBalanceChanged(ctx, p.UserID, shares[p.UserID], entity.GoldTxPotPayout)
		}
	}

	return &model.DistributePotResponse{
		PotTotal:    potTotal,
		Distributed: distributed,
		Retained:    retained,
		Shares:      convertShares(participants, shares),
	}, nil
}

// CancelRaid aborts everything in one transaction: the running auction loses
// its bids, settled winners get their gold back, the pot zeroes and the raid
// closes. Only the leader can cancel.
func (d *distributionDomain) CancelRaid(
	ctx context.Context, req *model.CancelRaidRequest,
) (*model.CancelRaidResponse, error) {
	cfg := xcontext.Configs(ctx).Auction

	ctx, cancel := context.WithTimeout(ctx, cfg.PayoutTxTimeout)
	defer cancel()

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	raid, err := d.raidRepo.GetByIDForUpdate(ctx, req.RaidID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found raid")
		}

		xcontext.Logger(ctx).Errorf("Cannot get raid: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.raidRoleVerifier.Verify(ctx, raid.ID, entity.RaidRoleLeader); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	if raid.Status != entity.RaidActive {
		return nil, errorx.New(errorx.Unavailable, "Raid is not active")
	}

	items, err := d.itemRepo.GetByRaidID(ctx, raid.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get auction items: %v", err)
		return nil, errorx.Unknown
	}

	now := time.Now()
	var cancelledItemIDs []string
	refunds := map[string]int64{}
	refundedBids := int64(0)
	refundedGold := int64(0)

	for i := range items {
		item := &items[i]
		switch item.Status {
		case entity.AuctionItemActive:
			// Unsettled bids only lock balance; deleting them releases the
			// lock with no transfer to reverse.
			if err := d.bidRepo.DeleteByItemID(ctx, item.ID); err != nil {
				xcontext.Logger(ctx).Errorf("Cannot delete bids: %v", err)
				return nil, errorx.Unknown
			}

			cancelledItemIDs = append(cancelledItemIDs, item.ID)

		case entity.AuctionItemCompleted:
			if item.WinnerID.Valid && item.CurrentBid > 0 {
				if _, err := d.userRepo.GetByIDForUpdate(ctx, item.WinnerID.String); err != nil {
					xcontext.Logger(ctx).Errorf("Cannot lock winner: %v", err)
					return nil, errorx.Unknown
				}

				if err := d.userRepo.IncreaseGold(ctx, item.WinnerID.String, item.CurrentBid); err != nil {
					xcontext.Logger(ctx).Errorf("Cannot refund winner: %v", err)
					return nil, errorx.Unknown
				}

				goldTx := &entity.GoldTransaction{
					Base:   entity.Base{ID: uuid.NewString()},
					UserID: item.WinnerID.String,
					RaidID: sql.NullString{Valid: true, String: raid.ID},
					ItemID: sql.NullString{Valid: true, String: item.ID},
					Amount: item.CurrentBid,
					Reason: entity.GoldTxRefund,
					Note:   item.Name,
				}

				if err := d.goldTxRepo.Create(ctx, goldTx); err != nil {
					xcontext.Logger(ctx).Errorf("Cannot append ledger record: %v", err)
					return nil, errorx.Unknown
				}

				refunds[item.WinnerID.String] += item.CurrentBid
				refundedBids++
				refundedGold += item.CurrentBid
			}
		}

		if item.Status != entity.AuctionItemCancelled {
			item.Status = entity.AuctionItemCancelled
			item.CompletedAt = sql.NullTime{Valid: true, Time: now}
			item.Version++
			if err := d.itemRepo.Update(ctx, item); err != nil {
				xcontext.Logger(ctx).Errorf("Cannot update auction item: %v", err)
				return nil, errorx.Unknown
			}
		}
	}

	raid.Status = entity.RaidCancelled
	raid.Pot = 0
	raid.CancelledReason = req.Reason
	if err := d.raidRepo.Update(ctx, raid); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update raid: %v", err)
		return nil, errorx.Unknown
	}

	if err := commitDBTransaction(ctx); err != nil {
		return nil, err
	}

	for _, itemID := range cancelledItemIDs {
		d.countdowns.Cancel(itemID)
	}

	publishEvent(ctx, d.publisher, common.RaidChannel(raid.ID), &event.RaidCancelledEvent{
		RaidID: raid.ID,
		Reason: req.Reason,
	})

	for userID, amount := range refunds {
		d.publishBalanceChanged(ctx, userID, amount, entity.GoldTxRefund)
	}

	return &model.CancelRaidResponse{
		RefundedBids: refundedBids,
		RefundedGold: refundedGold,
	}, nil
}

func (d *distributionDomain) publishBalanceChanged(
	ctx context.Context, userID string, delta int64, reason entity.GoldTransactionReasonType,
) {
	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot get user for balance event: %v", err)
		return
	}

	publishEvent(ctx, d.publisher, common.UserChannel(userID), &event.BalanceChangedEvent{
		UserID: userID,
		Gold:   user.Gold,
		Delta:  delta,
		Reason: string(reason),
	})
}

func convertShares(
	participants []entity.RaidParticipant, shares map[string]int64,
) []model.ParticipantShare {
	result := make([]model.ParticipantShare, 0, len(participants))
	for _, p := range participants {
		result = append(result, model.ParticipantShare{
			UserID: p.UserID,
			Role:   string(p.Role),
			Share:  shares[p.UserID],
		})
	}

	return result
}
