package domain

import (
	"testing"
	"time"

	"github.com/raidpot-lab/backend/internal/entity"
	"github.com/raidpot-lab/backend/internal/model"
	"github.com/stretchr/testify/require"
)

func Test_recoveryDomain_Recover(t *testing.T) {
	s := newSuite(t)

	// An auction whose deadline passed while the process was down.
	s.activateItem(t, time.Now().Add(time.Hour))
	_, err := s.auctionDomain.PlaceBid(s.as(s.Member.ID), &model.PlaceBidRequest{
		ItemID: s.Item.ID,
		Amount: 150,
	})
	require.NoError(t, err)

	expired := s.reloadItem(t)
	expired.EndsAt = nullTime(time.Now().Add(-time.Minute))
	require.NoError(t, s.itemRepo.Update(s.ctx, expired))

	// An auction in another raid that is still live.
	live, err := s.itemRepo.GetByID(s.ctx, s.liveItemFixture(t))
	require.NoError(t, err)

	resp, err := s.recoveryDomain.Recover(s.ctx, &model.RecoverRequest{})
	require.NoError(t, err)
	require.Equal(t, int64(1), resp.SettledAuctions)
	require.Equal(t, int64(1), resp.ResumedAuctions)
	require.Equal(t, int64(0), resp.FailedAuctions)

	// The expired auction settled with its winner.
	item := s.reloadItem(t)
	require.Equal(t, entity.AuctionItemCompleted, item.Status)
	require.Equal(t, int64(850), s.reloadUser(t, s.Member.ID).Gold)
	require.Equal(t, int64(150), s.reloadRaid(t).Pot)

	// The live auction only got its countdown back.
	require.True(t, s.countdowns.Running(live.ID))
	liveAfter, err := s.itemRepo.GetByID(s.ctx, live.ID)
	require.NoError(t, err)
	require.Equal(t, entity.AuctionItemActive, liveAfter.Status)

	s.countdowns.Cancel(live.ID)
}

func Test_recoveryDomain_Recover_expiredPreAuctions(t *testing.T) {
	s := newSuite(t)
	s.setPreAuctionDeadline(t, time.Now().Add(-time.Minute))
	s.samplePreItem(t, nil)
	s.samplePreItem(t, nil)

	resp, err := s.recoveryDomain.Recover(s.ctx, &model.RecoverRequest{})
	require.NoError(t, err)
	require.Equal(t, int64(2), resp.EndedPreAuctionItems)

	items, err := s.preAuctionRepo.GetItemsByRaidID(s.ctx, s.Raid.ID)
	require.NoError(t, err)
	for _, item := range items {
		require.Equal(t, entity.PreAuctionItemEnded, item.Status)
	}

	// A second run has nothing left to sweep.
	resp, err = s.recoveryDomain.Recover(s.ctx, &model.RecoverRequest{})
	require.NoError(t, err)
	require.Equal(t, int64(0), resp.EndedPreAuctionItems)
}

// liveItemFixture creates an active item with a future deadline in a second
// raid, so the one-active-per-raid rule is not violated.
func (s *suite) liveItemFixture(t *testing.T) string {
	other := &entity.Raid{
		Base:        entity.Base{ID: "live-raid"},
		Name:        "live-raid",
		Status:      entity.RaidActive,
		LeaderID:    s.Leader.ID,
		SplitPolicy: entity.SplitEqual,
	}
	require.NoError(t, s.raidRepo.Create(s.ctx, other))

	item := &entity.AuctionItem{
		Base:         entity.Base{ID: "live-item"},
		RaidID:       other.ID,
		Name:         "live-item",
		Status:       entity.AuctionItemActive,
		StartingBid:  100,
		CurrentBid:   100,
		MinIncrement: 10,
		StartedAt:    nullTime(time.Now()),
		EndsAt:       nullTime(time.Now().Add(time.Hour)),
	}
	require.NoError(t, s.itemRepo.Create(s.ctx, item))

	return item.ID
}
