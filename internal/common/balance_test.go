package common

import (
	"testing"

	"github.com/google/uuid"
	"github.com/raidpot-lab/backend/internal/entity"
	"github.com/raidpot-lab/backend/internal/repository"
	"github.com/raidpot-lab/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func TestBalanceCalculator(t *testing.T) {
	ctx := testutil.MockContext()
	bidRepo := repository.NewBidRepository()
	preAuctionRepo := repository.NewPreAuctionRepository()
	calculator := NewBalanceCalculator(bidRepo, preAuctionRepo)

	user, err := testutil.SampleUser(ctx, &entity.User{Gold: 1000})
	require.NoError(t, err)

	activeItem, err := testutil.SampleAuctionItem(ctx, &entity.AuctionItem{
		Status: entity.AuctionItemActive,
	})
	require.NoError(t, err)

	completedItem, err := testutil.SampleAuctionItem(ctx, &entity.AuctionItem{
		Status: entity.AuctionItemCompleted,
	})
	require.NoError(t, err)

	preItem, err := testutil.SamplePreAuctionItem(ctx, nil)
	require.NoError(t, err)

	// Winning bid on an active auction locks.
	require.NoError(t, bidRepo.Create(ctx, &entity.Bid{
		Base:      entity.Base{ID: uuid.NewString()},
		ItemID:    activeItem.ID,
		UserID:    user.ID,
		Amount:    200,
		IsWinning: true,
	}))

	// An outbid (non-winning) bid does not lock.
	require.NoError(t, bidRepo.Create(ctx, &entity.Bid{
		Base:   entity.Base{ID: uuid.NewString()},
		ItemID: activeItem.ID,
		UserID: user.ID,
		Amount: 150,
	}))

	// A winning bid on a completed auction does not lock.
	require.NoError(t, bidRepo.Create(ctx, &entity.Bid{
		Base:      entity.Base{ID: uuid.NewString()},
		ItemID:    completedItem.ID,
		UserID:    user.ID,
		Amount:    500,
		IsWinning: true,
	}))

	// A winning pre-auction bid on an active item locks.
	require.NoError(t, preAuctionRepo.CreateBid(ctx, &entity.PreAuctionBid{
		Base:             entity.Base{ID: uuid.NewString()},
		PreAuctionItemID: preItem.ID,
		UserID:           user.ID,
		Amount:           100,
		IsWinning:        true,
	}))

	locked, err := calculator.LockedGold(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, int64(300), locked)

	available, err := calculator.AvailableGold(ctx, &user)
	require.NoError(t, err)
	require.Equal(t, int64(700), available)
}
