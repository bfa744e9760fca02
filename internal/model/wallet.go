package model

import "time"

type GoldTransaction struct {
	ID        string    `json:"id"`
	RaidID    string    `json:"raid_id,omitempty"`
	ItemID    string    `json:"item_id,omitempty"`
	Amount    int64     `json:"amount"`
	Reason    string    `json:"reason"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type GetWalletRequest struct{}

type GetWalletResponse struct {
	Gold               int64             `json:"gold"`
	Locked             int64             `json:"locked"`
	Available          int64             `json:"available"`
	RecentTransactions []GoldTransaction `json:"recent_transactions"`
}
