package entity

import (
	"database/sql"
	"time"

	"github.com/raidpot-lab/backend/pkg/enum"
)

type AuctionItemStatusType string

var (
	AuctionItemPending   = enum.New(AuctionItemStatusType("pending"))
	AuctionItemActive    = enum.New(AuctionItemStatusType("active"))
	AuctionItemCompleted = enum.New(AuctionItemStatusType("completed"))
	AuctionItemCancelled = enum.New(AuctionItemStatusType("cancelled"))
)

// AuctionItem is one unit being bid on inside a raid. At most one item per
// raid is active at a time; the status and EndsAt columns are the source of
// truth for whether an auction is running, never the in-process countdown.
type AuctionItem struct {
	Base

	RaidID string `gorm:"index"`
	Raid   Raid   `gorm:"foreignKey:RaidID"`

	Name   string
	Status AuctionItemStatusType `gorm:"index"`

	StartingBid  int64
	CurrentBid   int64
	MinIncrement int64

	WinnerID sql.NullString
	Winner   User `gorm:"foreignKey:WinnerID"`

	Duration    time.Duration
	StartedAt   sql.NullTime
	EndsAt      sql.NullTime
	CompletedAt sql.NullTime

	Version int64
}
