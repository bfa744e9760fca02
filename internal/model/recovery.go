package model

type RecoverRequest struct{}

type RecoverResponse struct {
	ResumedAuctions      int64 `json:"resumed_auctions"`
	SettledAuctions      int64 `json:"settled_auctions"`
	FailedAuctions       int64 `json:"failed_auctions"`
	EndedPreAuctionItems int64 `json:"ended_pre_auction_items"`
}
