package domain

import (
	"testing"
	"time"

	"github.com/raidpot-lab/backend/internal/entity"
	"github.com/raidpot-lab/backend/internal/model"
	"github.com/raidpot-lab/backend/pkg/errorx"
	"github.com/raidpot-lab/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_auctionDomain_Start(t *testing.T) {
	s := newSuite(t)

	// A member cannot start an auction.
	_, err := s.auctionDomain.Start(s.as(s.Member.ID), &model.StartAuctionRequest{
		ItemID: s.Item.ID,
	})
	require.Error(t, err)
	require.Equal(t, errorx.PermissionDenied, err.(errorx.Error).Code)

	// Duration outside the allowed range.
	_, err = s.auctionDomain.Start(s.as(s.Leader.ID), &model.StartAuctionRequest{
		ItemID:          s.Item.ID,
		DurationSeconds: 864000,
	})
	require.Error(t, err)
	require.Equal(t, errorx.BadRequest, err.(errorx.Error).Code)

	resp, err := s.auctionDomain.Start(s.as(s.Leader.ID), &model.StartAuctionRequest{
		ItemID:          s.Item.ID,
		DurationSeconds: 60,
	})
	require.NoError(t, err)
	require.Equal(t, string(entity.AuctionItemActive), resp.Item.Status)
	require.Equal(t, s.Item.StartingBid, resp.Item.CurrentBid)
	require.NotNil(t, resp.Item.EndsAt)
	require.True(t, s.countdowns.Running(s.Item.ID))

	// Starting an already active item fails.
	_, err = s.auctionDomain.Start(s.as(s.Leader.ID), &model.StartAuctionRequest{
		ItemID: s.Item.ID,
	})
	require.Error(t, err)
	require.Equal(t, errorx.Unavailable, err.(errorx.Error).Code)

	// A second item in the same raid cannot start while the first runs.
	other, err := testutil.SampleAuctionItem(s.ctx, &entity.AuctionItem{RaidID: s.Raid.ID})
	require.NoError(t, err)
	_, err = s.auctionDomain.Start(s.as(s.Leader.ID), &model.StartAuctionRequest{
		ItemID: other.ID,
	})
	require.Error(t, err)
	require.Equal(t, errorx.Unavailable, err.(errorx.Error).Code)

	s.countdowns.Cancel(s.Item.ID)
}

func Test_auctionDomain_Start_orphanItem(t *testing.T) {
	s := newSuite(t)

	// The raid row is resolved and locked before the item; an item pointing
	// at a raid that no longer exists fails there.
	orphan, err := testutil.SampleAuctionItem(s.ctx, &entity.AuctionItem{RaidID: "gone-raid"})
	require.NoError(t, err)

	_, err = s.auctionDomain.Start(s.as(s.Leader.ID), &model.StartAuctionRequest{
		ItemID: orphan.ID,
	})
	require.Error(t, err)
	require.Equal(t, errorx.NotFound, err.(errorx.Error).Code)
}

func Test_auctionDomain_PlaceBid(t *testing.T) {
	s := newSuite(t)
	s.activateItem(t, time.Now().Add(time.Hour))

	// The opening bid may match the starting price exactly.
	resp, err := s.auctionDomain.PlaceBid(s.as(s.Member.ID), &model.PlaceBidRequest{
		ItemID: s.Item.ID,
		Amount: 100,
	})
	require.NoError(t, err)
	require.Equal(t, int64(100), resp.CurrentBid)
	require.Equal(t, int64(110), resp.MinNextBid)
	require.False(t, resp.Extended)

	// Below the minimum next bid.
	_, err = s.auctionDomain.PlaceBid(s.as(s.Officer.ID), &model.PlaceBidRequest{
		ItemID: s.Item.ID,
		Amount: 105,
	})
	require.Error(t, err)
	require.Equal(t, errorx.BidTooLow, err.(errorx.Error).Code)
	require.Equal(t, int64(110), err.(errorx.Error).Metadata["min_required"])

	// The current winner cannot raise against themselves.
	_, err = s.auctionDomain.PlaceBid(s.as(s.Member.ID), &model.PlaceBidRequest{
		ItemID: s.Item.ID,
		Amount: 200,
	})
	require.Error(t, err)
	require.Equal(t, errorx.AlreadyWinning, err.(errorx.Error).Code)

	// Outbidding releases the previous winner's lock and takes over.
	resp, err = s.auctionDomain.PlaceBid(s.as(s.Officer.ID), &model.PlaceBidRequest{
		ItemID: s.Item.ID,
		Amount: 150,
	})
	require.NoError(t, err)
	require.Equal(t, int64(150), resp.CurrentBid)

	item := s.reloadItem(t)
	require.Equal(t, s.Officer.ID, item.WinnerID.String)

	// Gold stays untouched until settlement; only the lock moves.
	require.Equal(t, int64(1000), s.reloadUser(t, s.Member.ID).Gold)
	require.Equal(t, int64(1000), s.reloadUser(t, s.Officer.ID).Gold)
}

func Test_auctionDomain_PlaceBid_outsider(t *testing.T) {
	s := newSuite(t)
	s.activateItem(t, time.Now().Add(time.Hour))

	// Authenticated, funded, but not in the raid roster.
	outsider, err := testutil.SampleUser(s.ctx, &entity.User{Gold: 1000})
	require.NoError(t, err)

	_, err = s.auctionDomain.PlaceBid(s.as(outsider.ID), &model.PlaceBidRequest{
		ItemID: s.Item.ID,
		Amount: 100,
	})
	require.Error(t, err)
	require.Equal(t, errorx.PermissionDenied, err.(errorx.Error).Code)

	// Nothing was admitted.
	item := s.reloadItem(t)
	require.False(t, item.WinnerID.Valid)
	bids, err := s.bidRepo.GetByItemID(s.ctx, s.Item.ID)
	require.NoError(t, err)
	require.Empty(t, bids)
}

func Test_auctionDomain_PlaceBid_insufficientBalance(t *testing.T) {
	s := newSuite(t)
	s.activateItem(t, time.Now().Add(time.Hour))

	// Winning 800 on the first item locks it against the second.
	_, err := s.auctionDomain.PlaceBid(s.as(s.Member.ID), &model.PlaceBidRequest{
		ItemID: s.Item.ID,
		Amount: 800,
	})
	require.NoError(t, err)

	other, err := testutil.SampleAuctionItem(s.ctx, &entity.AuctionItem{
		RaidID: s.Raid.ID,
		Status: entity.AuctionItemActive,
	})
	require.NoError(t, err)

	otherItem, err := s.itemRepo.GetByID(s.ctx, other.ID)
	require.NoError(t, err)
	otherItem.CurrentBid = otherItem.StartingBid
	otherItem.EndsAt = nullTime(time.Now().Add(time.Hour))
	require.NoError(t, s.itemRepo.Update(s.ctx, otherItem))

	_, err = s.auctionDomain.PlaceBid(s.as(s.Member.ID), &model.PlaceBidRequest{
		ItemID: other.ID,
		Amount: 300,
	})
	require.Error(t, err)
	require.Equal(t, errorx.InsufficientBalance, err.(errorx.Error).Code)

	// 200 still fits: 1000 gold minus the 800 lock.
	_, err = s.auctionDomain.PlaceBid(s.as(s.Member.ID), &model.PlaceBidRequest{
		ItemID: other.ID,
		Amount: 200,
	})
	require.NoError(t, err)
}

func Test_auctionDomain_PlaceBid_afterDeadline(t *testing.T) {
	s := newSuite(t)
	s.activateItem(t, time.Now().Add(-time.Second))

	_, err := s.auctionDomain.PlaceBid(s.as(s.Member.ID), &model.PlaceBidRequest{
		ItemID: s.Item.ID,
		Amount: 100,
	})
	require.Error(t, err)
	require.Equal(t, errorx.AuctionEnded, err.(errorx.Error).Code)
}

func Test_auctionDomain_PlaceBid_antiSnipe(t *testing.T) {
	s := newSuite(t)

	// Deadline inside the anti-snipe threshold.
	s.activateItem(t, time.Now().Add(5*time.Second))

	resp, err := s.auctionDomain.PlaceBid(s.as(s.Member.ID), &model.PlaceBidRequest{
		ItemID: s.Item.ID,
		Amount: 100,
	})
	require.NoError(t, err)
	require.True(t, resp.Extended)

	item := s.reloadItem(t)
	require.True(t, item.EndsAt.Time.After(time.Now().Add(10*time.Second)))
}

func Test_auctionDomain_StopAndSkip(t *testing.T) {
	s := newSuite(t)
	s.activateItem(t, time.Now().Add(time.Hour))

	_, err := s.auctionDomain.PlaceBid(s.as(s.Member.ID), &model.PlaceBidRequest{
		ItemID: s.Item.ID,
		Amount: 100,
	})
	require.NoError(t, err)

	_, err = s.auctionDomain.Stop(s.as(s.Leader.ID), &model.StopAuctionRequest{ItemID: s.Item.ID})
	require.NoError(t, err)

	item := s.reloadItem(t)
	require.Equal(t, entity.AuctionItemPending, item.Status)
	require.Equal(t, item.StartingBid, item.CurrentBid)
	require.False(t, item.WinnerID.Valid)

	// The deleted bids no longer lock the member's balance.
	bids, err := s.bidRepo.GetByItemID(s.ctx, s.Item.ID)
	require.NoError(t, err)
	require.Empty(t, bids)

	// Skip completes the item unsold.
	s.activateItem(t, time.Now().Add(time.Hour))
	_, err = s.auctionDomain.Skip(s.as(s.Leader.ID), &model.SkipAuctionRequest{ItemID: s.Item.ID})
	require.NoError(t, err)

	item = s.reloadItem(t)
	require.Equal(t, entity.AuctionItemCompleted, item.Status)
	require.Equal(t, int64(0), item.CurrentBid)
	require.False(t, item.WinnerID.Valid)
	require.True(t, item.CompletedAt.Valid)
}

func Test_auctionDomain_ReAuction(t *testing.T) {
	s := newSuite(t)
	s.activateItem(t, time.Now().Add(time.Hour))

	_, err := s.auctionDomain.PlaceBid(s.as(s.Member.ID), &model.PlaceBidRequest{
		ItemID: s.Item.ID,
		Amount: 300,
	})
	require.NoError(t, err)

	// Force the deadline into the past and settle.
	item := s.reloadItem(t)
	item.EndsAt = nullTime(time.Now().Add(-time.Second))
	require.NoError(t, s.itemRepo.Update(s.ctx, item))

	result, err := s.settlementEngine.CompleteAuction(s.ctx, s.Item.ID)
	require.NoError(t, err)
	require.Equal(t, s.Member.ID, result.WinnerID)
	require.Equal(t, int64(700), s.reloadUser(t, s.Member.ID).Gold)
	require.Equal(t, int64(300), s.reloadRaid(t).Pot)

	// Re-auction reverses the settlement.
	resp, err := s.auctionDomain.ReAuction(s.as(s.Leader.ID), &model.ReAuctionRequest{
		ItemID: s.Item.ID,
	})
	require.NoError(t, err)
	require.Equal(t, string(entity.AuctionItemPending), resp.Item.Status)
	require.Equal(t, int64(1000), s.reloadUser(t, s.Member.ID).Gold)
	require.Equal(t, int64(0), s.reloadRaid(t).Pot)

	// A pending item cannot be re-auctioned again.
	_, err = s.auctionDomain.ReAuction(s.as(s.Leader.ID), &model.ReAuctionRequest{
		ItemID: s.Item.ID,
	})
	require.Error(t, err)
	require.Equal(t, errorx.Unavailable, err.(errorx.Error).Code)
}
