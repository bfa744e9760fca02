package entity

import (
	"context"

	"github.com/raidpot-lab/backend/pkg/xcontext"
)

func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&User{},
		&Raid{},
		&RaidParticipant{},
		&AuctionItem{},
		&Bid{},
		&PreAuctionItem{},
		&PreAuctionBid{},
		&GoldTransaction{},
	)
}
