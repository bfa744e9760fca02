package model

type PreAuctionItem struct {
	ID            string `json:"id"`
	RaidID        string `json:"raid_id"`
	CatalogItemID string `json:"catalog_item_id"`
	Name          string `json:"name"`
	Status        string `json:"status"`
	StartingBid   int64  `json:"starting_bid"`
	CurrentBid    int64  `json:"current_bid"`
	MinIncrement  int64  `json:"min_increment"`
	WinnerID      string `json:"winner_id,omitempty"`
}

type PlacePreBidRequest struct {
	ItemID string `json:"item_id"`
	Amount int64  `json:"amount"`
}

type PlacePreBidResponse struct {
	CurrentBid int64 `json:"current_bid"`
	MinNextBid int64 `json:"min_next_bid"`
}

type EndPreAuctionsRequest struct {
	RaidID string `json:"raid_id"`
}

type EndPreAuctionsResponse struct {
	EndedItems int64 `json:"ended_items"`
}

type ClaimPreAuctionRequest struct {
	ItemID string `json:"item_id"`
}

type ClaimPreAuctionResponse struct {
	Item PreAuctionItem `json:"item"`
}

type UnclaimPreAuctionRequest struct {
	ItemID string `json:"item_id"`
}

type UnclaimPreAuctionResponse struct {
	Item PreAuctionItem `json:"item"`
}
