package entity

// Bid is immutable once created except for the IsWinning flag. At most one
// bid per item has IsWinning set, and that bid's amount always equals the
// item's CurrentBid.
type Bid struct {
	Base

	ItemID string      `gorm:"index"`
	Item   AuctionItem `gorm:"foreignKey:ItemID"`

	UserID string `gorm:"index"`
	User   User   `gorm:"foreignKey:UserID"`

	Amount    int64
	IsWinning bool
}
