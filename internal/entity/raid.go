package entity

import (
	"database/sql"

	"github.com/raidpot-lab/backend/pkg/enum"
)

type RaidStatusType string

var (
	RaidActive    = enum.New(RaidStatusType("active"))
	RaidCompleted = enum.New(RaidStatusType("completed"))
	RaidCancelled = enum.New(RaidStatusType("cancelled"))
)

type SplitPolicyType string

var (
	SplitEqual        = enum.New(SplitPolicyType("equal"))
	SplitCustom       = enum.New(SplitPolicyType("custom"))
	SplitRoleWeighted = enum.New(SplitPolicyType("role_weighted"))
)

type Raid struct {
	Base

	Name   string
	Status RaidStatusType

	LeaderID string
	Leader   User `gorm:"foreignKey:LeaderID"`

	// Pot accumulates the gold of settled auctions until it is distributed
	// back to the participants.
	Pot int64

	SplitPolicy      SplitPolicyType
	LeaderCutPercent int64

	// PreAuctionEndsAt is the shared deadline of every pre-auction item in
	// this raid. Null when the raid runs no pre-auction round.
	PreAuctionEndsAt sql.NullTime

	CancelledReason string
}
