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

func (s *suite) samplePreItem(t *testing.T, init *entity.PreAuctionItem) entity.PreAuctionItem {
	base := &entity.PreAuctionItem{RaidID: s.Raid.ID}
	if init != nil {
		base = init
		base.RaidID = s.Raid.ID
	}

	item, err := testutil.SamplePreAuctionItem(s.ctx, base)
	require.NoError(t, err)
	return item
}

func (s *suite) setPreAuctionDeadline(t *testing.T, deadline time.Time) {
	raid := s.reloadRaid(t)
	raid.PreAuctionEndsAt = nullTime(deadline)
	require.NoError(t, s.raidRepo.Update(s.ctx, raid))
}

func Test_preAuctionDomain_PlaceBid(t *testing.T) {
	s := newSuite(t)
	s.setPreAuctionDeadline(t, time.Now().Add(time.Hour))
	item := s.samplePreItem(t, nil)

	resp, err := s.preAuctionDomain.PlaceBid(s.as(s.Member.ID), &model.PlacePreBidRequest{
		ItemID: item.ID,
		Amount: 100,
	})
	require.NoError(t, err)
	require.Equal(t, int64(100), resp.CurrentBid)
	require.Equal(t, int64(110), resp.MinNextBid)

	// A pre-auction bid locks balance the same way a live bid does.
	locked, err := s.preAuctionRepo.SumWinningAmountByUserID(s.ctx, s.Member.ID)
	require.NoError(t, err)
	require.Equal(t, int64(100), locked)

	// No charge happens at admission.
	require.Equal(t, int64(1000), s.reloadUser(t, s.Member.ID).Gold)

	// Below the minimum next bid.
	_, err = s.preAuctionDomain.PlaceBid(s.as(s.Officer.ID), &model.PlacePreBidRequest{
		ItemID: item.ID,
		Amount: 105,
	})
	require.Error(t, err)
	require.Equal(t, errorx.BidTooLow, err.(errorx.Error).Code)

	// After the shared deadline every item refuses bids.
	s.setPreAuctionDeadline(t, time.Now().Add(-time.Second))
	_, err = s.preAuctionDomain.PlaceBid(s.as(s.Officer.ID), &model.PlacePreBidRequest{
		ItemID: item.ID,
		Amount: 200,
	})
	require.Error(t, err)
	require.Equal(t, errorx.AuctionEnded, err.(errorx.Error).Code)
}

func Test_preAuctionDomain_EndClaimUnclaim(t *testing.T) {
	s := newSuite(t)
	s.setPreAuctionDeadline(t, time.Now().Add(time.Hour))
	won := s.samplePreItem(t, nil)
	unsold := s.samplePreItem(t, nil)

	_, err := s.preAuctionDomain.PlaceBid(s.as(s.Member.ID), &model.PlacePreBidRequest{
		ItemID: won.ID,
		Amount: 200,
	})
	require.NoError(t, err)

	// Members cannot sweep.
	_, err = s.preAuctionDomain.End(s.as(s.Member.ID), &model.EndPreAuctionsRequest{
		RaidID: s.Raid.ID,
	})
	require.Error(t, err)
	require.Equal(t, errorx.PermissionDenied, err.(errorx.Error).Code)

	resp, err := s.preAuctionDomain.End(s.as(s.Leader.ID), &model.EndPreAuctionsRequest{
		RaidID: s.Raid.ID,
	})
	require.NoError(t, err)
	require.Equal(t, int64(2), resp.EndedItems)

	// Ended but unclaimed gold stays locked.
	locked, err := s.preAuctionRepo.SumWinningAmountByUserID(s.ctx, s.Member.ID)
	require.NoError(t, err)
	require.Equal(t, int64(200), locked)

	// Claim charges the winner and credits the pot.
	claimResp, err := s.preAuctionDomain.Claim(s.as(s.Leader.ID), &model.ClaimPreAuctionRequest{
		ItemID: won.ID,
	})
	require.NoError(t, err)
	require.Equal(t, string(entity.PreAuctionItemClaimed), claimResp.Item.Status)
	require.Equal(t, int64(800), s.reloadUser(t, s.Member.ID).Gold)
	require.Equal(t, int64(200), s.reloadRaid(t).Pot)

	ledger, err := s.goldTxRepo.GetByUserID(s.ctx, s.Member.ID, 10)
	require.NoError(t, err)
	require.Len(t, ledger, 1)
	require.Equal(t, entity.GoldTxPreAuctionClaim, ledger[0].Reason)

	// The claimed item no longer locks anything.
	locked, err = s.preAuctionRepo.SumWinningAmountByUserID(s.ctx, s.Member.ID)
	require.NoError(t, err)
	require.Equal(t, int64(0), locked)

	// Unclaiming an item without a winner charges nobody.
	unclaimResp, err := s.preAuctionDomain.Unclaim(s.as(s.Leader.ID), &model.UnclaimPreAuctionRequest{
		ItemID: unsold.ID,
	})
	require.NoError(t, err)
	require.Equal(t, string(entity.PreAuctionItemUnclaimed), unclaimResp.Item.Status)

	// A claimed item cannot be claimed again.
	_, err = s.preAuctionDomain.Claim(s.as(s.Leader.ID), &model.ClaimPreAuctionRequest{
		ItemID: won.ID,
	})
	require.Error(t, err)
	require.Equal(t, errorx.Unavailable, err.(errorx.Error).Code)
}
