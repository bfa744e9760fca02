package entity

import (
	"database/sql"

	"github.com/raidpot-lab/backend/pkg/enum"
)

type PreAuctionItemStatusType string

var (
	PreAuctionItemActive    = enum.New(PreAuctionItemStatusType("active"))
	PreAuctionItemEnded     = enum.New(PreAuctionItemStatusType("ended"))
	PreAuctionItemClaimed   = enum.New(PreAuctionItemStatusType("claimed"))
	PreAuctionItemUnclaimed = enum.New(PreAuctionItemStatusType("unclaimed"))
)

// PreAuctionItem is bid on before the roster locks. It is keyed by a catalog
// item rather than a raid-specific instance and shares the raid-wide
// deadline instead of running its own countdown. The winner is only charged
// if the physical item later drops and the item is claimed.
type PreAuctionItem struct {
	Base

	RaidID string `gorm:"index"`
	Raid   Raid   `gorm:"foreignKey:RaidID"`

	CatalogItemID string `gorm:"index"`
	Name          string

	Status PreAuctionItemStatusType `gorm:"index"`

	StartingBid  int64
	CurrentBid   int64
	MinIncrement int64

	WinnerID sql.NullString
	Winner   User `gorm:"foreignKey:WinnerID"`

	Version int64
}
