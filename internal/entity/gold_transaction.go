package entity

import (
	"database/sql"

	"github.com/raidpot-lab/backend/pkg/enum"
)

type GoldTransactionReasonType string

var (
	GoldTxSettlement        = enum.New(GoldTransactionReasonType("auction_settlement"))
	GoldTxPreAuctionClaim   = enum.New(GoldTransactionReasonType("pre_auction_claim"))
	GoldTxPotPayout         = enum.New(GoldTransactionReasonType("pot_payout"))
	GoldTxRefund            = enum.New(GoldTransactionReasonType("refund"))
	GoldTxReAuctionReversal = enum.New(GoldTransactionReasonType("re_auction_reversal"))
)

// GoldTransaction is the immutable ledger. One record is appended inside
// every transaction that mutates a user balance; Amount is signed from the
// user's point of view.
type GoldTransaction struct {
	Base

	UserID string `gorm:"index"`
	User   User   `gorm:"foreignKey:UserID"`

	RaidID sql.NullString
	ItemID sql.NullString

	Amount int64
	Reason GoldTransactionReasonType
	Note   string
}
