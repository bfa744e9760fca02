package entity

type User struct {
	Base

	Name string `gorm:"index:idx_users_name,unique"`

	// Gold is the user's full balance. The spendable part is always derived
	// by subtracting the gold committed to currently-winning bids; nothing
	// ever debits Gold outside of settlement, distribution, refund or
	// re-auction reversal transactions.
	Gold int64
}
