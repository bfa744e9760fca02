package domain

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync"
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

type AuctionDomain interface {
	Start(ctx context.Context, req *model.StartAuctionRequest) (*model.StartAuctionResponse, error)
	PlaceBid(ctx context.Context, req *model.PlaceBidRequest) (*model.PlaceBidResponse, error)
	Stop(ctx context.Context, req *model.StopAuctionRequest) (*model.StopAuctionResponse, error)
	Skip(ctx context.Context, req *model.SkipAuctionRequest) (*model.SkipAuctionResponse, error)
	ReAuction(ctx context.Context, req *model.ReAuctionRequest) (*model.ReAuctionResponse, error)
	Get(ctx context.Context, req *model.GetAuctionRequest) (*model.GetAuctionResponse, error)

	// ResumeCountdown restarts the in-process countdown of an item that is
	// still active in the store. Used by the recovery run after a restart.
	ResumeCountdown(ctx context.Context, item *entity.AuctionItem)
}

type auctionDomain struct {
	itemRepo        repository.AuctionItemRepository
	bidRepo         repository.BidRepository
	raidRepo        repository.RaidRepository
	userRepo        repository.UserRepository
	goldTxRepo      repository.GoldTransactionRepository
	raidRoleVerifier *common.RaidRoleVerifier
	balance         *common.BalanceCalculator
	settlement      SettlementEngine
	countdowns      *countdown.Registry
	publisher       pubsub.Publisher

	// raidOf caches the owning raid of items with a running countdown, so
	// per-second ticks do not query the store.
	raidOf *xsync.MapOf[string, string]
}

func NewAuctionDomain(
	itemRepo repository.AuctionItemRepository,
	bidRepo repository.BidRepository,
	raidRepo repository.RaidRepository,
	userRepo repository.UserRepository,
	goldTxRepo repository.GoldTransactionRepository,
	raidRoleVerifier *common.RaidRoleVerifier,
	balance *common.BalanceCalculator,
	settlement SettlementEngine,
	countdowns *countdown.Registry,
	publisher pubsub.Publisher,
) *auctionDomain {
	d := &auctionDomain{
		itemRepo:         itemRepo,
		bidRepo:          bidRepo,
		raidRepo:         raidRepo,
		userRepo:         userRepo,
		goldTxRepo:       goldTxRepo,
		raidRoleVerifier: raidRoleVerifier,
		balance:          balance,
		settlement:       settlement,
		countdowns:       countdowns,
		publisher:        publisher,
		raidOf:           xsync.NewMapOf[string](),
	}

	countdowns.SetHandler(d)
	return d
}

func (d *auctionDomain) Start(
	ctx context.Context, req *model.StartAuctionRequest,
) (*model.StartAuctionResponse, error) {
	cfg := xcontext.Configs(ctx).Auction

	duration := time.Duration(req.DurationSeconds) * time.Second
	if duration == 0 {
		duration = cfg.DefaultDuration
	}

	if duration < cfg.MinDuration || duration > cfg.MaxDuration {
		return nil, errorx.New(errorx.BadRequest, "Duration must be between %s and %s",
			cfg.MinDuration, cfg.MaxDuration)
	}

	if req.StartingBid < 0 || req.MinIncrement < 0 {
		return nil, errorx.New(errorx.BadRequest, "Starting bid and increment must not be negative")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	// Lock order is raid first, then item, the same order cancellation and
	// payout take. The unlocked read only resolves the owning raid.
	item, err := d.itemRepo.GetByID(ctx, req.ItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found auction item")
		}

		xcontext.Logger(ctx).Errorf("Cannot get auction item: %v", err)
		return nil, errorx.Unknown
	}

	raid, err := d.raidRepo.GetByIDForUpdate(ctx, item.RaidID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found raid")
		}

		if common.IsRetryableDBError(err) {
			return nil, errorx.New(errorx.ConflictRetry, "Too much contention, please retry")
		}

		xcontext.Logger(ctx).Errorf("Cannot get raid: %v", err)
		return nil, errorx.Unknown
	}

	item, err = d.itemRepo.GetByIDForUpdate(ctx, item.ID)
	if err != nil {
		if common.IsRetryableDBError(err) {
			return nil, errorx.New(errorx.ConflictRetry, "Too much contention, please retry")
		}

		xcontext.Logger(ctx).Errorf("Cannot get auction item: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.raidRoleVerifier.Verify(ctx, raid.ID, entity.RaidRoleLeader, entity.RaidRoleOfficer); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	if raid.Status != entity.RaidActive {
		return nil, errorx.New(errorx.Unavailable, "Raid is not active")
	}

	if item.Status != entity.AuctionItemPending {
		return nil, errorx.New(errorx.Unavailable, "Auction item was already started")
	}

	// One active auction per raid. The raid row lock serializes concurrent
	// starts against this count.
	activeCount, err := d.itemRepo.CountActiveByRaidID(ctx, raid.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count active items: %v", err)
		return nil, errorx.Unknown
	}

	if activeCount > 0 {
		return nil, errorx.New(errorx.Unavailable, "Another auction is already running in this raid")
	}

	if req.StartingBid > 0 {
		item.StartingBid = req.StartingBid
	}

	if req.MinIncrement > 0 {
		item.MinIncrement = req.MinIncrement
	}

	if item.MinIncrement <= 0 {
		return nil, errorx.New(errorx.BadRequest, "Minimum increment must be a positive number")
	}

	now := time.Now()
	item.Status = entity.AuctionItemActive
	item.CurrentBid = item.StartingBid
	item.WinnerID = sql.NullString{}
	item.Duration = duration
	item.StartedAt = sql.NullTime{Valid: true, Time: now}
	item.EndsAt = sql.NullTime{Valid: true, Time: now.Add(duration)}
	item.CompletedAt = sql.NullTime{}
	item.Version++

	if err := d.itemRepo.Update(ctx, item); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update auction item: %v", err)
		return nil, errorx.Unknown
	}

	if err := commitDBTransaction(ctx); err != nil {
		return nil, err
	}

	d.raidOf.Store(item.ID, raid.ID)
	d.countdowns.Start(item.ID, item.EndsAt.Time)

	publishEvent(ctx, d.publisher, common.RaidChannel(raid.ID), &event.AuctionStartedEvent{
		RaidID:       raid.ID,
		ItemID:       item.ID,
		ItemName:     item.Name,
		StartingBid:  item.StartingBid,
		MinIncrement: item.MinIncrement,
		EndsAt:       item.EndsAt.Time,
	})

	return &model.StartAuctionResponse{Item: model.ConvertAuctionItem(item)}, nil
}

func (d *auctionDomain) PlaceBid(
	ctx context.Context, req *model.PlaceBidRequest,
) (*model.PlaceBidResponse, error) {
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

	// Lock order is fixed everywhere: item row first, then user row.
	item, err := d.itemRepo.GetByIDForUpdate(ctx, req.ItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found auction item")
		}

		if common.IsRetryableDBError(err) {
			return nil, errorx.New(errorx.ConflictRetry, "Too much contention, please retry")
		}

		xcontext.Logger(ctx).Errorf("Cannot get auction item: %v", err)
		return nil, errorx.Unknown
	}

	if item.Status != entity.AuctionItemActive {
		return nil, errorx.New(errorx.Unavailable, "Auction is not active")
	}

	now := time.Now()
	if item.EndsAt.Valid && now.After(item.EndsAt.Time) {
		return nil, errorx.New(errorx.AuctionEnded, "Auction has already ended")
	}

	minRequired := minRequiredBid(item)
	if req.Amount < minRequired {
		return nil, errorx.New(errorx.BidTooLow, "Bid must be at least %d gold", minRequired).
			With("min_required", minRequired)
	}

	userID := xcontext.RequestUserID(ctx)
	if item.WinnerID.Valid && item.WinnerID.String == userID {
		return nil, errorx.New(errorx.AlreadyWinning, "You are already the highest bidder")
	}

	if err := d.raidRoleVerifier.Verify(ctx, item.RaidID,
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

	// Computed under the user row lock, so a settlement in flight on another
	// item cannot change the result between the check and the commit.
	available, err := d.balance.AvailableGold(ctx, user)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot compute available gold: %v", err)
		return nil, errorx.Unknown
	}

	if available < req.Amount {
		return nil, errorx.New(errorx.InsufficientBalance,
			"You only have %d spendable gold", available)
	}

	if err := d.bidRepo.ClearWinningByItemID(ctx, item.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot clear previous winning bid: %v", err)
		return nil, errorx.Unknown
	}

	bid := &entity.Bid{
		Base:      entity.Base{ID: uuid.NewString()},
		ItemID:    item.ID,
		UserID:    userID,
		Amount:    req.Amount,
		IsWinning: true,
	}

	if err := d.bidRepo.Create(ctx, bid); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create bid: %v", err)
		return nil, errorx.Unknown
	}

	item.CurrentBid = req.Amount
	item.WinnerID = sql.NullString{Valid: true, String: userID}
	item.Version++

	// Anti-snipe: a bid inside the threshold pushes the deadline forward.
	// This happens in the same transaction as the admission, never in the
	// ticker, so a last-moment bid cannot race a concurrent expiry.
	extended := false
	if item.EndsAt.Valid && item.EndsAt.Time.Sub(now) < cfg.AntiSnipeThreshold {
		item.EndsAt = sql.NullTime{Valid: true, Time: now.Add(cfg.AntiSnipeWindow)}
		extended = true
	}

	if err := d.itemRepo.Update(ctx, item); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update auction item: %v", err)
		return nil, errorx.Unknown
	}

	if err := commitDBTransaction(ctx); err != nil {
		return nil, err
	}

	if extended {
		d.countdowns.Extend(item.ID, item.EndsAt.Time)
	}

	raidChannel := common.RaidChannel(item.RaidID)
	publishEvent(ctx, d.publisher, raidChannel, &event.AuctionBidEvent{
		ItemID:     item.ID,
		BidderID:   userID,
		CurrentBid: item.CurrentBid,
		MinNextBid: minRequiredBid(item),
	})

	if extended {
		publishEvent(ctx, d.publisher, raidChannel, &event.AuctionExtendedEvent{
			ItemID: item.ID,
			EndsAt: item.EndsAt.Time,
		})
	}

	return &model.PlaceBidResponse{
		CurrentBid: item.CurrentBid,
		MinNextBid: minRequiredBid(item),
		EndsAt:     item.EndsAt.Time,
		Extended:   extended,
	}, nil
}

func (d *auctionDomain) Stop(
	ctx context.Context, req *model.StopAuctionRequest,
) (*model.StopAuctionResponse, error) {
	item, err := d.resetActiveItem(ctx, req.ItemID, entity.AuctionItemPending)
	if err != nil {
		return nil, err
	}

	d.countdowns.Cancel(item.ID)
	d.raidOf.Delete(item.ID)

	publishEvent(ctx, d.publisher, common.RaidChannel(item.RaidID),
		&event.AuctionStoppedEvent{ItemID: item.ID})

	return &model.StopAuctionResponse{}, nil
}

func (d *auctionDomain) Skip(
	ctx context.Context, req *model.SkipAuctionRequest,
) (*model.SkipAuctionResponse, error) {
	item, err := d.resetActiveItem(ctx, req.ItemID, entity.AuctionItemCompleted)
	if err != nil {
		return nil, err
	}

	d.countdowns.Cancel(item.ID)
	d.raidOf.Delete(item.ID)

	publishEvent(ctx, d.publisher, common.RaidChannel(item.RaidID),
		&event.AuctionSkippedEvent{ItemID: item.ID})

	return &model.SkipAuctionResponse{}, nil
}

// resetActiveItem stops an active auction, deletes its bids (fully
// releasing any locked balance) and moves it to the target status: back to
// pending for stop, completed-unsold for skip.
func (d *auctionDomain) resetActiveItem(
	ctx context.Context, itemID string, target entity.AuctionItemStatusType,
) (*entity.AuctionItem, error) {
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	item, err := d.itemRepo.GetByIDForUpdate(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found auction item")
		}

		xcontext.Logger(ctx).Errorf("Cannot get auction item: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.raidRoleVerifier.Verify(ctx, item.RaidID, entity.RaidRoleLeader, entity.RaidRoleOfficer); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	if item.Status != entity.AuctionItemActive {
		return nil, errorx.New(errorx.Unavailable, "Auction is not active")
	}

	if err := d.bidRepo.DeleteByItemID(ctx, item.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete bids: %v", err)
		return nil, errorx.Unknown
	}

	item.Status = target
	item.WinnerID = sql.NullString{}
	item.StartedAt = sql.NullTime{}
	item.EndsAt = sql.NullTime{}
	item.Version++

	switch target {
	case entity.AuctionItemPending:
		item.CurrentBid = item.StartingBid
		item.CompletedAt = sql.NullTime{}
	case entity.AuctionItemCompleted:
		// Skipped items complete unsold.
		item.CurrentBid = 0
		item.CompletedAt = sql.NullTime{Valid: true, Time: time.Now()}
	}

	if err := d.itemRepo.Update(ctx, item); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update auction item: %v", err)
		return nil, errorx.Unknown
	}

	if err := commitDBTransaction(ctx); err != nil {
		return nil, err
	}

	return item, nil
}

// ReAuction resets a completed item back to pending. The pot credit of the
// previous settlement is reversed and the previous winner refunded inside
// the same transaction.
func (d *auctionDomain) ReAuction(
	ctx context.Context, req *model.ReAuctionRequest,
) (*model.ReAuctionResponse, error) {
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	item, err := d.itemRepo.GetByIDForUpdate(ctx, req.ItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found auction item")
		}

		xcontext.Logger(ctx).Errorf("Cannot get auction item: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.raidRoleVerifier.Verify(ctx, item.RaidID, entity.RaidRoleLeader, entity.RaidRoleOfficer); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	if item.Status != entity.AuctionItemCompleted {
		return nil, errorx.New(errorx.Unavailable, "Only completed auctions can be re-auctioned")
	}

	var refundedUserID string
	var refundedAmount int64
	if item.WinnerID.Valid && item.CurrentBid > 0 {
		winner, err := d.userRepo.GetByIDForUpdate(ctx, item.WinnerID.String)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get winner: %v", err)
			return nil, errorx.Unknown
		}

		if err := d.userRepo.IncreaseGold(ctx, winner.ID, item.CurrentBid); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot refund winner: %v", err)
			return nil, errorx.Unknown
		}

		if err := d.raidRepo.DecreasePot(ctx, item.RaidID, item.CurrentBid); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot reverse pot credit: %v", err)
			return nil, errorx.Unknown
		}

		goldTx := &entity.GoldTransaction{
			Base:   entity.Base{ID: uuid.NewString()},
			UserID: winner.ID,
			RaidID: sql.NullString{Valid: true, String: item.RaidID},
			ItemID: sql.NullString{Valid: true, String: item.ID},
			Amount: item.CurrentBid,
			Reason: entity.GoldTxReAuctionReversal,
			Note:   item.Name,
		}

		if err := d.goldTxRepo.Create(ctx, goldTx); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot append ledger record: %v", err)
			return nil, errorx.Unknown
		}

		refundedUserID = winner.ID
		refundedAmount = item.CurrentBid
	}

	if err := d.bidRepo.DeleteByItemID(ctx, item.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete bids: %v", err)
		return nil, errorx.Unknown
	}

	item.Status = entity.AuctionItemPending
	item.CurrentBid = item.StartingBid
	item.WinnerID = sql.NullString{}
	item.StartedAt = sql.NullTime{}
	item.EndsAt = sql.NullTime{}
	item.CompletedAt = sql.NullTime{}
	item.Version++

	if err := d.itemRepo.Update(ctx, item); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update auction item: %v", err)
		return nil, errorx.Unknown
	}

	if err := commitDBTransaction(ctx); err != nil {
		return nil, err
	}

	if refundedUserID != "" {
		d.publishBalanceChanged(ctx, refundedUserID, refundedAmount, entity.GoldTxReAuctionReversal)
	}

	return &model.ReAuctionResponse{Item: model.ConvertAuctionItem(item)}, nil
}

func (d *auctionDomain) Get(
	ctx context.Context, req *model.GetAuctionRequest,
) (*model.GetAuctionResponse, error) {
	item, err := d.itemRepo.GetByID(ctx, req.ItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found auction item")
		}

		xcontext.Logger(ctx).Errorf("Cannot get auction item: %v", err)
		return nil, errorx.Unknown
	}

	bids, err := d.bidRepo.GetByItemID(ctx, item.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get bids: %v", err)
		return nil, errorx.Unknown
	}

	clientBids := make([]model.Bid, 0, len(bids))
	for i := range bids {
		clientBids = append(clientBids, model.ConvertBid(&bids[i]))
	}

	return &model.GetAuctionResponse{
		Item: model.ConvertAuctionItem(item),
		Bids: clientBids,
	}, nil
}

func (d *auctionDomain) ResumeCountdown(ctx context.Context, item *entity.AuctionItem) {
	if !item.EndsAt.Valid {
		xcontext.Logger(ctx).Warnf("Active item %s has no deadline, skipped resume", item.ID)
		return
	}

	d.raidOf.Store(item.ID, item.RaidID)
	d.countdowns.Start(item.ID, item.EndsAt.Time)
}

func (d *auctionDomain) OnTick(ctx context.Context, itemID string, remaining time.Duration) {
	publishEvent(ctx, d.publisher, d.raidChannelOf(ctx, itemID), &event.AuctionTickEvent{
		ItemID:           itemID,
		RemainingSeconds: int64(remaining.Seconds()),
	})
}

func (d *auctionDomain) OnEndingSoon(ctx context.Context, itemID string, remaining time.Duration) {
	publishEvent(ctx, d.publisher, d.raidChannelOf(ctx, itemID), &event.AuctionEndingEvent{
		ItemID:           itemID,
		RemainingSeconds: int64(remaining.Seconds()),
	})
}

// OnExpire fires exactly once per countdown. The settlement itself is
// idempotent, so a racing recovery run or a countdown that outlived a
// cancelation cannot double-settle.
func (d *auctionDomain) OnExpire(ctx context.Context, itemID string) {
	result, err := d.settlement.CompleteAuction(ctx, itemID)
	if err != nil && isConflictRetry(err) {
		// Internal trigger, so the retry-once contract is honored here.
		result, err = d.settlement.CompleteAuction(ctx, itemID)
	}

	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot complete auction %s: %v", itemID, err)
		return
	}

	if result.Rescheduled {
		// The deadline moved forward after this countdown fired; resume
		// with the remaining time instead of settling.
		d.countdowns.Start(itemID, result.ResumeAt)
		return
	}

	d.raidOf.Delete(itemID)
}

func (d *auctionDomain) raidChannelOf(ctx context.Context, itemID string) string {
	if raidID, ok := d.raidOf.Load(itemID); ok {
		return common.RaidChannel(raidID)
	}

	item, err := d.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot resolve raid of item %s: %v", itemID, err)
		return common.RaidChannel("")
	}

	d.raidOf.Store(itemID, item.RaidID)
	return common.RaidChannel(item.RaidID)
}

func (d *auctionDomain) publishBalanceChanged(
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

func minRequiredBid(item *entity.AuctionItem) int64 {
	if item.WinnerID.Valid {
		return item.CurrentBid + item.MinIncrement
	}

	// No bids yet: the opening bid must meet the starting price, or the
	// minimum increment when the item starts at zero.
	if item.StartingBid > item.MinIncrement {
		return item.StartingBid
	}

	return item.MinIncrement
}
