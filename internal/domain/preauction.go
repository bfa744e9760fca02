package domain

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/raidpot-lab/backend/internal/common"
	"github.com/raidpot-lab/backend/internal/domain/notification/event"
	"github.com/raidpot-lab/backend/internal/entity"
	"github.com/raidpot-lab/backend/internal/model"
	"github.com/raidpot-lab/backend/internal/repository"
	"github.com/raidpot-lab/backend/pkg/errorx"
	"github.com/raidpot-lab/backend/pkg/pubsub"
	"github.com/raidpot-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type PreAuctionDomain interface {
	PlaceBid(ctx context.Context, req *model.PlacePreBidRequest) (*model.PlacePreBidResponse, error)
	End(ctx context.Context, req *model.EndPreAuctionsRequest) (*model.EndPreAuctionsResponse, error)
	Claim(ctx context.Context, req *model.ClaimPreAuctionRequest) (*model.ClaimPreAuctionResponse, error)
	Unclaim(ctx context.Context, req *model.UnclaimPreAuctionRequest) (*model.UnclaimPreAuctionResponse, error)
}

type preAuctionDomain struct {
	preAuctionRepo  repository.PreAuctionRepository
	raidRepo        repository.RaidRepository
	userRepo        repository.UserRepository
	goldTxRepo      repository.GoldTransactionRepository
	raidRoleVerifier *common.RaidRoleVerifier
	balance         *common.BalanceCalculator
	publisher       pubsub.Publisher
}

func NewPreAuctionDomain(
	preAuctionRepo repository.PreAuctionRepository,
	raidRepo repository.RaidRepository,
	userRepo repository.UserRepository,
	goldTxRepo repository.GoldTransactionRepository,
	raidRoleVerifier *common.RaidRoleVerifier,
	balance *common.BalanceCalculator,
	publisher pubsub.Publisher,
) *preAuctionDomain {
	return &preAuctionDomain{
		preAuctionRepo:   preAuctionRepo,
		raidRepo:         raidRepo,
		userRepo:         userRepo,
		goldTxRepo:       goldTxRepo,
		raidRoleVerifier: raidRoleVerifier,
		balance:          balance,
		publisher:        publisher,
	}
}

// PlaceBid admits a bid on a pre-auction item. Admission follows the live
// auction rules against the raid's shared deadline; there is no per-item
// countdown and no anti-snipe extension.
func (d *preAuctionDomain) PlaceBid(
	ctx context.Context, req *model.PlacePreBidRequest,
) (*model.PlacePreBidResponse, error) {
	cfg := xcontext.Configs(ctx).Auction

	if req.Amount <= 0 {
		return nil, errorx.New(errorx.BadRequest, "Bid amount must be a positive number")
	}

	if req.Amount > cfg.MaxBid {
		return nil, errorx.New(errorx.BadRequest, "Bid amount must not exceed %d gold", cfg.MaxBid)
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.BidTxTimeout)
	defer cancel()

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	item, err := d.preAuctionRepo.GetItemByIDForUpdate(ctx, req.ItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found pre-auction item")
		}

		if common.IsRetryableDBError(err) {
			return nil, errorx.New(errorx.ConflictRetry, "Too much contention, please retry")
		}

		xcontext.Logger(ctx).Errorf("Cannot get pre-auction item: %v", err)
		return nil, errorx.Unknown
	}

	if item.Status != entity.PreAuctionItemActive {
		return nil, errorx.New(errorx.Unavailable, "Pre-auction is not active")
	}

	raid, err := d.raidRepo.GetByID(ctx, item.RaidID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get raid: %v", err)
		return nil, errorx.Unknown
	}

	if raid.Status != entity.RaidActive {
		return nil, errorx.New(errorx.Unavailable, "Raid is not active")
	}

	if raid.PreAuctionEndsAt.Valid && time.Now().After(raid.PreAuctionEndsAt.Time) {
		return nil, errorx.New(errorx.AuctionEnded, "Pre-auction has already ended")
	}

	minRequired := minRequiredPreBid(item)
	if req.Amount < minRequired {
		return nil, errorx.New(errorx.BidTooLow, "Bid must be at least %d gold", minRequired).
			With("min_required", minRequired)
	}

	userID := xcontext.RequestUserID(ctx)
	if item.WinnerID.Valid && item.WinnerID.String == userID {
		return nil, errorx.New(errorx.AlreadyWinning, "You are already the highest bidder")
	}

	if err := d.raidRoleVerifier.Verify(ctx, raid.ID,
		entity.RaidRoleLeader, entity.RaidRoleOfficer, entity.RaidRoleMember); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	user, err := d.userRepo.GetByIDForUpdate(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	available, err := d.balance.AvailableGold(ctx, user)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot compute available gold: %v", err)
		return nil, errorx.Unknown
	}

	if available < req.Amount {
		return nil, errorx.New(errorx.InsufficientBalance,
			"You only have %d spendable gold", available)
	}

	if err := d.preAuctionRepo.ClearWinningBidByItemID(ctx, item.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot clear previous winning bid: %v", err)
		return nil, errorx.Unknown
	}

	bid := &entity.PreAuctionBid{
		Base:             entity.Base{ID: uuid.NewString()},
		PreAuctionItemID: item.ID,
		UserID:           userID,
		Amount:           req.Amount,
		IsWinning:        true,
	}

	if err := d.preAuctionRepo.CreateBid(ctx, bid); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create bid: %v", err)
		return nil, errorx.Unknown
	}

	item.CurrentBid = req.Amount
	item.WinnerID = sql.NullString{Valid: true, String: userID}
	item.Version++

	if err := d.preAuctionRepo.UpdateItem(ctx, item); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update pre-auction item: %v", err)
		return nil, errorx.Unknown
	}

	if err := commitDBTransaction(ctx); err != nil {
		return nil, err
	}

	publishEvent(ctx, d.publisher, common.RaidChannel(item.RaidID), &event.PreAuctionBidEvent{
		ItemID:     item.ID,
		BidderID:   userID,
		CurrentBid: item.CurrentBid,
	})

	return &model.PlacePreBidResponse{
		CurrentBid: item.CurrentBid,
		MinNextBid: minRequiredPreBid(item),
	}, nil
}

// End closes every active pre-auction item of the raid at once. The leader
// can sweep before the shared deadline; the recovery run calls the same path
// after it.
func (d *preAuctionDomain) End(
	ctx context.Context, req *model.EndPreAuctionsRequest,
) (*model.EndPreAuctionsResponse, error) {
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

	if err := d.raidRoleVerifier.Verify(ctx, raid.ID, entity.RaidRoleLeader, entity.RaidRoleOfficer); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	ended, err := d.endRaidPreAuctions(ctx, raid)
	if err != nil {
		return nil, err
	}

	if err := commitDBTransaction(ctx); err != nil {
		return nil, err
	}

	if ended > 0 {
		publishEvent(ctx, d.publisher, common.RaidChannel(raid.ID), &event.PreAuctionEndedEvent{
			RaidID:     raid.ID,
			EndedItems: ended,
		})
	}

	return &model.EndPreAuctionsResponse{EndedItems: ended}, nil
}

// endRaidPreAuctions runs inside the caller's transaction, with the raid row
// already locked.
func (d *preAuctionDomain) endRaidPreAuctions(ctx context.Context, raid *entity.Raid) (int64, error) {
	ended, err := d.preAuctionRepo.EndActiveItemsByRaidID(ctx, raid.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot end pre-auction items: %v", err)
		return 0, errorx.Unknown
	}

	now := time.Now()
	if !raid.PreAuctionEndsAt.Valid || raid.PreAuctionEndsAt.Time.After(now) {
		raid.PreAuctionEndsAt = sql.NullTime{Valid: true, Time: now}
		if err := d.raidRepo.Update(ctx, raid); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot update raid: %v", err)
			return 0, errorx.Unknown
		}
	}

	return ended, nil
}

// Claim charges the winner of an ended pre-auction item: the item dropped
// during the raid and the winner takes it at the final bid.
func (d *preAuctionDomain) Claim(
	ctx context.Context, req *model.ClaimPreAuctionRequest,
) (*model.ClaimPreAuctionResponse, error) {
	cfg := xcontext.Configs(ctx).Auction

	ctx, cancel := context.WithTimeout(ctx, cfg.SettleTxTimeout)
	defer cancel()

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	item, err := d.lockEndedItem(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}

	var winnerID string
	var amount int64
	if item.WinnerID.Valid && item.CurrentBid > 0 {
		winner, err := d.userRepo.GetByIDForUpdate(ctx, item.WinnerID.String)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get winner: %v", err)
			return nil, errorx.Unknown
		}

		if err := d.userRepo.DecreaseGold(ctx, winner.ID, item.CurrentBid); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot charge winner %s: %v", winner.ID, err)
			return nil, errorx.Unknown
		}

		if err := d.raidRepo.IncreasePot(ctx, item.RaidID, item.CurrentBid); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot credit pot: %v", err)
			return nil, errorx.Unknown
		}

		goldTx := &entity.GoldTransaction{
			Base:   entity.Base{ID: uuid.NewString()},
			UserID: winner.ID,
			RaidID: sql.NullString{Valid: true, String: item.RaidID},
			ItemID: sql.NullString{Valid: true, String: item.ID},
			Amount: -item.CurrentBid,
			Reason: entity.GoldTxPreAuctionClaim,
			Note:   item.Name,
		}

		if err := d.goldTxRepo.Create(ctx, goldTx); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot append ledger record: %v", err)
			return nil, errorx.Unknown
		}

		winnerID = winner.ID
		amount = item.CurrentBid
	}

	item.Status = entity.PreAuctionItemClaimed
	item.Version++
	if err := d.preAuctionRepo.UpdateItem(ctx, item); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update pre-auction item: %v", err)
		return nil, errorx.Unknown
	}

	if err := commitDBTransaction(ctx); err != nil {
		return nil, err
	}

	if winnerID != "" {
		d.publishBalanceChanged(ctx, winnerID, -amount, entity.GoldTxPreAuctionClaim)
	}

	return &model.ClaimPreAuctionResponse{Item: model.ConvertPreAuctionItem(item)}, nil
}

// Unclaim releases an ended pre-auction item whose physical drop never
// happened. The winner is not charged and their locked gold frees up.
func (d *preAuctionDomain) Unclaim(
	ctx context.Context, req *model.UnclaimPreAuctionRequest,
) (*model.UnclaimPreAuctionResponse, error) {
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	item, err := d.lockEndedItem(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}

	item.Status = entity.PreAuctionItemUnclaimed
	item.Version++
	if err := d.preAuctionRepo.UpdateItem(ctx, item); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update pre-auction item: %v", err)
		return nil, errorx.Unknown
	}

	if err := commitDBTransaction(ctx); err != nil {
		return nil, err
	}

	return &model.UnclaimPreAuctionResponse{Item: model.ConvertPreAuctionItem(item)}, nil
}

// lockEndedItem locks the item row, checks the caller can manage the raid
// and that the item is in the ended state.
func (d *preAuctionDomain) lockEndedItem(
	ctx context.Context, itemID string,
) (*entity.PreAuctionItem, error) {
	item, err := d.preAuctionRepo.GetItemByIDForUpdate(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found pre-auction item")
		}

		xcontext.Logger(ctx).Errorf("Cannot get pre-auction item: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.raidRoleVerifier.Verify(ctx, item.RaidID, entity.RaidRoleLeader, entity.RaidRoleOfficer); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	if item.Status != entity.PreAuctionItemEnded {
		return nil, errorx.New(errorx.Unavailable, "Pre-auction item has not ended")
	}

	return item, nil
}

func (d *preAuctionDomain) publishBalanceChanged(
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

func minRequiredPreBid(item *entity.PreAuctionItem) int64 {
	if item.WinnerID.Valid {
		return item.CurrentBid + item.MinIncrement
	}

	if item.StartingBid > item.MinIncrement {
		return item.StartingBid
	}

	return item.MinIncrement
}
