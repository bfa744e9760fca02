package testutil

import (
	"context"
	"time"

	"github.com/raidpot-lab/backend/config"
	"github.com/raidpot-lab/backend/internal/entity"
	"github.com/raidpot-lab/backend/pkg/logger"
	"github.com/raidpot-lab/backend/pkg/xcontext"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func MockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	cfg := config.Configs{
		Env: "test",
		Auth: config.AuthConfigs{
			TokenSecret:     "secret",
			TokenExpiration: time.Minute,
		},
		Auction: config.AuctionConfigs{
			MaxBid:             1_000_000_000,
			DefaultDuration:    time.Minute,
			MinDuration:        time.Second,
			MaxDuration:        time.Hour,
			TickInterval:       time.Second,
			EndingSoonBand:     10 * time.Second,
			AntiSnipeThreshold: 10 * time.Second,
			AntiSnipeWindow:    15 * time.Second,
			BidTxTimeout:       5 * time.Second,
			SettleTxTimeout:    10 * time.Second,
			PayoutTxTimeout:    30 * time.Second,
		},
	}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.SILENCE))
	ctx = xcontext.WithDB(ctx, db)

	if err := entity.MigrateTable(ctx); err != nil {
		panic(err)
	}

	return ctx
}

func MockContextWithUserID(userID string) context.Context {
	return xcontext.WithRequestUserID(MockContext(), userID)
}
