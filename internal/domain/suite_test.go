package domain

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/raidpot-lab/backend/internal/common"
	"github.com/raidpot-lab/backend/internal/domain/countdown"
	"github.com/raidpot-lab/backend/internal/entity"
	"github.com/raidpot-lab/backend/internal/repository"
	"github.com/raidpot-lab/backend/pkg/testutil"
	"github.com/raidpot-lab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

// suite wires every domain against one in-memory database with a standard
// fixture: an active raid led by Leader, with Officer and Member in the
// roster and a pending auction item.
type suite struct {
	ctx       context.Context
	publisher *testutil.MockPublisher

	userRepo        repository.UserRepository
	raidRepo        repository.RaidRepository
	participantRepo repository.ParticipantRepository
	itemRepo        repository.AuctionItemRepository
	bidRepo         repository.BidRepository
	preAuctionRepo  repository.PreAuctionRepository
	goldTxRepo      repository.GoldTransactionRepository

	countdowns *countdown.Registry

	auctionDomain      *auctionDomain
	settlementEngine   SettlementEngine
	distributionDomain DistributionDomain
	preAuctionDomain   PreAuctionDomain
	recoveryDomain     RecoveryDomain
	walletDomain       WalletDomain

	Leader  entity.User
	Officer entity.User
	Member  entity.User
	Raid    entity.Raid
	Item    entity.AuctionItem
}

func newSuite(t *testing.T) *suite {
	s := &suite{
		ctx:             testutil.MockContext(),
		publisher:       &testutil.MockPublisher{},
		userRepo:        repository.NewUserRepository(),
		raidRepo:        repository.NewRaidRepository(),
		participantRepo: repository.NewParticipantRepository(),
		itemRepo:        repository.NewAuctionItemRepository(),
		bidRepo:         repository.NewBidRepository(),
		preAuctionRepo:  repository.NewPreAuctionRepository(),
		goldTxRepo:      repository.NewGoldTransactionRepository(),
	}

	cfg := xcontext.Configs(s.ctx).Auction
	s.countdowns = countdown.NewRegistry(s.ctx, cfg.TickInterval, cfg.EndingSoonBand)

	roleVerifier := common.NewRaidRoleVerifier(s.participantRepo)
	balance := common.NewBalanceCalculator(s.bidRepo, s.preAuctionRepo)

	s.settlementEngine = NewSettlementEngine(
		s.itemRepo, s.raidRepo, s.userRepo, s.goldTxRepo, s.publisher)
	s.auctionDomain = NewAuctionDomain(
		s.itemRepo, s.bidRepo, s.raidRepo, s.userRepo, s.goldTxRepo,
		roleVerifier, balance, s.settlementEngine, s.countdowns, s.publisher)
	s.distributionDomain = NewDistributionDomain(
		s.raidRepo, s.participantRepo, s.itemRepo, s.bidRepo, s.userRepo,
		s.goldTxRepo, roleVerifier, s.countdowns, s.publisher)
	s.preAuctionDomain = NewPreAuctionDomain(
		s.preAuctionRepo, s.raidRepo, s.userRepo, s.goldTxRepo,
		roleVerifier, balance, s.publisher)
	s.recoveryDomain = NewRecoveryDomain(
		s.itemRepo, s.raidRepo, s.preAuctionRepo,
		s.auctionDomain, s.settlementEngine, s.publisher)
	s.walletDomain = NewWalletDomain(s.userRepo, s.goldTxRepo, balance)

	var err error
	s.Leader, err = testutil.SampleUser(s.ctx, &entity.User{Gold: 1000})
	require.NoError(t, err)
	s.Officer, err = testutil.SampleUser(s.ctx, &entity.User{Gold: 1000})
	require.NoError(t, err)
	s.Member, err = testutil.SampleUser(s.ctx, &entity.User{Gold: 1000})
	require.NoError(t, err)

	s.Raid, err = testutil.SampleRaid(s.ctx, &entity.Raid{LeaderID: s.Leader.ID})
	require.NoError(t, err)

	for _, p := range []struct {
		userID string
		role   entity.RaidRoleType
	}{
		{s.Leader.ID, entity.RaidRoleLeader},
		{s.Officer.ID, entity.RaidRoleOfficer},
		{s.Member.ID, entity.RaidRoleMember},
	} {
		_, err = testutil.SampleParticipant(s.ctx, &entity.RaidParticipant{
			UserID: p.userID,
			RaidID: s.Raid.ID,
			Role:   p.role,
		})
		require.NoError(t, err)
	}

	s.Item, err = testutil.SampleAuctionItem(s.ctx, &entity.AuctionItem{RaidID: s.Raid.ID})
	require.NoError(t, err)

	return s
}

func (s *suite) as(userID string) context.Context {
	return xcontext.WithRequestUserID(s.ctx, userID)
}

// activateItem puts the fixture item directly into the active state without
// going through Start, so tests control the deadline precisely.
func (s *suite) activateItem(t *testing.T, endsAt time.Time) {
	item, err := s.itemRepo.GetByID(s.ctx, s.Item.ID)
	require.NoError(t, err)

	now := time.Now()
	item.Status = entity.AuctionItemActive
	item.CurrentBid = item.StartingBid
	item.Duration = endsAt.Sub(now)
	item.StartedAt = nullTime(now)
	item.EndsAt = nullTime(endsAt)
	require.NoError(t, s.itemRepo.Update(s.ctx, item))
	s.Item = *item
}

func (s *suite) reloadItem(t *testing.T) *entity.AuctionItem {
	item, err := s.itemRepo.GetByID(s.ctx, s.Item.ID)
	require.NoError(t, err)
	return item
}

func (s *suite) reloadUser(t *testing.T, id string) *entity.User {
	user, err := s.userRepo.GetByID(s.ctx, id)
	require.NoError(t, err)
	return user
}

func (s *suite) reloadRaid(t *testing.T) *entity.Raid {
	raid, err := s.raidRepo.GetByID(s.ctx, s.Raid.ID)
	require.NoError(t, err)
	return raid
}

func (s *suite) newMember(t *testing.T, gold int64) entity.User {
	user, err := testutil.SampleUser(s.ctx, &entity.User{Gold: gold})
	require.NoError(t, err)

	_, err = testutil.SampleParticipant(s.ctx, &entity.RaidParticipant{
		UserID: user.ID,
		RaidID: s.Raid.ID,
		Role:   entity.RaidRoleMember,
	})
	require.NoError(t, err)

	return user
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Valid: true, Time: t}
}
