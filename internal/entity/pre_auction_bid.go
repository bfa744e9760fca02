package entity

type PreAuctionBid struct {
	Base

	PreAuctionItemID string         `gorm:"index"`
	PreAuctionItem   PreAuctionItem `gorm:"foreignKey:PreAuctionItemID"`

	UserID string `gorm:"index"`
	User   User   `gorm:"foreignKey:UserID"`

	Amount    int64
	IsWinning bool
}
