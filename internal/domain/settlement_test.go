package domain

import (
	"testing"
	"time"

	"github.com/raidpot-lab/backend/internal/entity"
	"github.com/raidpot-lab/backend/internal/model"
	"github.com/stretchr/testify/require"
)

func Test_settlementEngine_CompleteAuction(t *testing.T) {
	s := newSuite(t)
	s.activateItem(t, time.Now().Add(time.Hour))

	_, err := s.auctionDomain.PlaceBid(s.as(s.Member.ID), &model.PlaceBidRequest{
		ItemID: s.Item.ID,
		Amount: 250,
	})
	require.NoError(t, err)

	item := s.reloadItem(t)
	item.EndsAt = nullTime(time.Now().Add(-time.Second))
	require.NoError(t, s.itemRepo.Update(s.ctx, item))

	result, err := s.settlementEngine.CompleteAuction(s.ctx, s.Item.ID)
	require.NoError(t, err)
	require.False(t, result.Rescheduled)
	require.Equal(t, s.Member.ID, result.WinnerID)
	require.Equal(t, int64(250), result.Amount)

	// Gold moved, pot credited, ledger appended, item completed.
	require.Equal(t, int64(750), s.reloadUser(t, s.Member.ID).Gold)
	require.Equal(t, int64(250), s.reloadRaid(t).Pot)

	item = s.reloadItem(t)
	require.Equal(t, entity.AuctionItemCompleted, item.Status)
	require.True(t, item.CompletedAt.Valid)

	ledger, err := s.goldTxRepo.GetByUserID(s.ctx, s.Member.ID, 10)
	require.NoError(t, err)
	require.Len(t, ledger, 1)
	require.Equal(t, int64(-250), ledger[0].Amount)
	require.Equal(t, entity.GoldTxSettlement, ledger[0].Reason)

	// The settled winner's gold is no longer locked.
	wallet, err := s.walletDomain.Get(s.as(s.Member.ID), &model.GetWalletRequest{})
	require.NoError(t, err)
	require.Equal(t, int64(750), wallet.Gold)
	require.Equal(t, int64(0), wallet.Locked)
	require.Equal(t, int64(750), wallet.Available)
}

func Test_settlementEngine_CompleteAuction_idempotent(t *testing.T) {
	s := newSuite(t)
	s.activateItem(t, time.Now().Add(time.Hour))

	_, err := s.auctionDomain.PlaceBid(s.as(s.Member.ID), &model.PlaceBidRequest{
		ItemID: s.Item.ID,
		Amount: 250,
	})
	require.NoError(t, err)

	item := s.reloadItem(t)
	item.EndsAt = nullTime(time.Now().Add(-time.Second))
	require.NoError(t, s.itemRepo.Update(s.ctx, item))

	_, err = s.settlementEngine.CompleteAuction(s.ctx, s.Item.ID)
	require.NoError(t, err)

	// A racing second settlement is a no-op: the winner is charged once.
	result, err := s.settlementEngine.CompleteAuction(s.ctx, s.Item.ID)
	require.NoError(t, err)
	require.Empty(t, result.WinnerID)
	require.Equal(t, int64(750), s.reloadUser(t, s.Member.ID).Gold)
	require.Equal(t, int64(250), s.reloadRaid(t).Pot)
}

func Test_settlementEngine_CompleteAuction_unsold(t *testing.T) {
	s := newSuite(t)
	s.activateItem(t, time.Now().Add(-time.Second))

	result, err := s.settlementEngine.CompleteAuction(s.ctx, s.Item.ID)
	require.NoError(t, err)
	require.Empty(t, result.WinnerID)

	item := s.reloadItem(t)
	require.Equal(t, entity.AuctionItemCompleted, item.Status)
	require.Equal(t, int64(0), item.CurrentBid)
	require.False(t, item.WinnerID.Valid)
	require.Equal(t, int64(0), s.reloadRaid(t).Pot)
}

func Test_settlementEngine_CompleteAuction_rescheduled(t *testing.T) {
	s := newSuite(t)

	// The deadline moved forward after the expiry decision was made.
	endsAt := time.Now().Add(time.Minute)
	s.activateItem(t, endsAt)

	result, err := s.settlementEngine.CompleteAuction(s.ctx, s.Item.ID)
	require.NoError(t, err)
	require.True(t, result.Rescheduled)
	require.WithinDuration(t, endsAt, result.ResumeAt, time.Second)

	item := s.reloadItem(t)
	require.Equal(t, entity.AuctionItemActive, item.Status)
}
