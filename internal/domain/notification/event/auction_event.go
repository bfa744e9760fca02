package event

import "time"

type AuctionStartedEvent struct {
	RaidID       string    `json:"raid_id"`
	ItemID       string    `json:"item_id"`
	ItemName     string    `json:"item_name"`
	StartingBid  int64     `json:"starting_bid"`
	MinIncrement int64     `json:"min_increment"`
	EndsAt       time.Time `json:"ends_at"`
}

func (*AuctionStartedEvent) Op() string { return "auction_started" }

type AuctionTickEvent struct {
	ItemID           string `json:"item_id"`
	RemainingSeconds int64  `json:"remaining_seconds"`
}

func (*AuctionTickEvent) Op() string { return "auction_tick" }

type AuctionEndingEvent struct {
	ItemID           string `json:"item_id"`
	RemainingSeconds int64  `json:"remaining_seconds"`
}

func (*AuctionEndingEvent) Op() string { return "auction_ending" }

type AuctionBidEvent struct {
	ItemID     string `json:"item_id"`
	BidderID   string `json:"bidder_id"`
	CurrentBid int64  `json:"current_bid"`
	MinNextBid int64  `json:"min_next_bid"`
}

func (*AuctionBidEvent) Op() string { return "auction_bid" }

type AuctionExtendedEvent struct {
	ItemID string    `json:"item_id"`
	EndsAt time.Time `json:"ends_at"`
}

func (*AuctionExtendedEvent) Op() string { return "auction_extended" }

type AuctionCompletedEvent struct {
	RaidID      string `json:"raid_id"`
	ItemID      string `json:"item_id"`
	WinnerID    string `json:"winner_id,omitempty"`
	FinalAmount int64  `json:"final_amount"`
	PotTotal    int64  `json:"pot_total"`
}

func (*AuctionCompletedEvent) Op() string { return "auction_completed" }

type AuctionStoppedEvent struct {
	ItemID string `json:"item_id"`
}

func (*AuctionStoppedEvent) Op() string { return "auction_stopped" }

type AuctionSkippedEvent struct {
	ItemID string `json:"item_id"`
}

func (*AuctionSkippedEvent) Op() string { return "auction_skipped" }

type PreAuctionBidEvent struct {
	ItemID     string `json:"item_id"`
	BidderID   string `json:"bidder_id"`
	CurrentBid int64  `json:"current_bid"`
}

func (*PreAuctionBidEvent) Op() string { return "pre_auction_bid" }

type PreAuctionEndedEvent struct {
	RaidID     string `json:"raid_id"`
	EndedItems int64  `json:"ended_items"`
}

func (*PreAuctionEndedEvent) Op() string { return "pre_auction_ended" }

type PotDistributedEvent struct {
	RaidID      string `json:"raid_id"`
	PotTotal    int64  `json:"pot_total"`
	Distributed int64  `json:"distributed"`
	Retained    int64  `json:"retained"`
}

func (*PotDistributedEvent) Op() string { return "pot_distributed" }

type RaidCancelledEvent struct {
	RaidID string `json:"raid_id"`
	Reason string `json:"reason"`
}

func (*RaidCancelledEvent) Op() string { return "raid_cancelled" }

// BalanceChangedEvent goes to the user's private channel, never to a raid
// room.
type BalanceChangedEvent struct {
	UserID string `json:"user_id"`
	Gold   int64  `json:"gold"`
	Delta  int64  `json:"delta"`
	Reason string `json:"reason"`
}

func (*BalanceChangedEvent) Op() string { return "balance_changed" }
