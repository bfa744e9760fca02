package common

import (
	"context"

	"github.com/raidpot-lab/backend/internal/entity"
	"github.com/raidpot-lab/backend/internal/repository"
)

// BalanceCalculator derives the spendable part of a user balance. It is a
// pure read; callers that admit bids must run it inside the transaction
// that holds the user row lock, so it cannot race a concurrent settlement.
type BalanceCalculator struct {
	bidRepo        repository.BidRepository
	preAuctionRepo repository.PreAuctionRepository
}

func NewBalanceCalculator(
	bidRepo repository.BidRepository,
	preAuctionRepo repository.PreAuctionRepository,
) *BalanceCalculator {
	return &BalanceCalculator{
		bidRepo:        bidRepo,
		preAuctionRepo: preAuctionRepo,
	}
}

// LockedGold is the sum of the user's winning bids on active auctions plus
// winning pre-auction bids on active or ended (not yet claimed) items.
func (c *BalanceCalculator) LockedGold(ctx context.Context, userID string) (int64, error) {
	liveLocked, err := c.bidRepo.SumWinningAmountByUserID(ctx, userID)
	if err != nil {
		return 0, err
	}

	preLocked, err := c.preAuctionRepo.SumWinningAmountByUserID(ctx, userID)
	if err != nil {
		return 0, err
	}

	return liveLocked + preLocked, nil
}

func (c *BalanceCalculator) AvailableGold(ctx context.Context, user *entity.User) (int64, error) {
	locked, err := c.LockedGold(ctx, user.ID)
	if err != nil {
		return 0, err
	}

	return user.Gold - locked, nil
}
