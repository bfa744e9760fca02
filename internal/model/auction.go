package model

import "time"

type AuctionItem struct {
	ID           string     `json:"id"`
	RaidID       string     `json:"raid_id"`
	Name         string     `json:"name"`
	Status       string     `json:"status"`
	StartingBid  int64      `json:"starting_bid"`
	CurrentBid   int64      `json:"current_bid"`
	MinIncrement int64      `json:"min_increment"`
	WinnerID     string     `json:"winner_id,omitempty"`
	StartedAt    *time.Time `json:"started_at,omitempty"`
	EndsAt       *time.Time `json:"ends_at,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

type Bid struct {
	ID        string    `json:"id"`
	ItemID    string    `json:"item_id"`
	UserID    string    `json:"user_id"`
	Amount    int64     `json:"amount"`
	IsWinning bool      `json:"is_winning"`
	CreatedAt time.Time `json:"created_at"`
}

type StartAuctionRequest struct {
	ItemID string `json:"item_id"`

	// DurationSeconds falls back to the configured default when zero.
	DurationSeconds int64 `json:"duration_seconds"`
	StartingBid     int64 `json:"starting_bid"`
	MinIncrement    int64 `json:"min_increment"`
}

type StartAuctionResponse struct {
	Item AuctionItem `json:"item"`
}

type PlaceBidRequest struct {
	ItemID string `json:"item_id"`
	Amount int64  `json:"amount"`
}

type PlaceBidResponse struct {
	CurrentBid int64     `json:"current_bid"`
	MinNextBid int64     `json:"min_next_bid"`
	EndsAt     time.Time `json:"ends_at"`
	Extended   bool      `json:"extended"`
}

type StopAuctionRequest struct {
	ItemID string `json:"item_id"`
}

type StopAuctionResponse struct{}

type SkipAuctionRequest struct {
	ItemID string `json:"item_id"`
}

type SkipAuctionResponse struct{}

type ReAuctionRequest struct {
	ItemID string `json:"item_id"`
}

type ReAuctionResponse struct {
	Item AuctionItem `json:"item"`
}

type GetAuctionRequest struct {
	ItemID string `json:"item_id"`
}

type GetAuctionResponse struct {
	Item AuctionItem `json:"item"`
	Bids []Bid       `json:"bids"`
}
