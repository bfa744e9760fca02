package model

import (
	"database/sql"
	"time"

	"github.com/raidpot-lab/backend/internal/entity"
)

func ConvertAuctionItem(item *entity.AuctionItem) AuctionItem {
	return AuctionItem{
		ID:           item.ID,
		RaidID:       item.RaidID,
		Name:         item.Name,
		Status:       string(item.Status),
		StartingBid:  item.StartingBid,
		CurrentBid:   item.CurrentBid,
		MinIncrement: item.MinIncrement,
		WinnerID:     item.WinnerID.String,
		StartedAt:    nullTimePtr(item.StartedAt),
		EndsAt:       nullTimePtr(item.EndsAt),
		CompletedAt:  nullTimePtr(item.CompletedAt),
	}
}

func ConvertBid(bid *entity.Bid) Bid {
	return Bid{
		ID:        bid.ID,
		ItemID:    bid.ItemID,
		UserID:    bid.UserID,
		Amount:    bid.Amount,
		IsWinning: bid.IsWinning,
		CreatedAt: bid.CreatedAt,
	}
}

func ConvertPreAuctionItem(item *entity.PreAuctionItem) PreAuctionItem {
	return PreAuctionItem{
		ID:            item.ID,
		RaidID:        item.RaidID,
		CatalogItemID: item.CatalogItemID,
		Name:          item.Name,
		Status:        string(item.Status),
		StartingBid:   item.StartingBid,
		CurrentBid:    item.CurrentBid,
		MinIncrement:  item.MinIncrement,
		WinnerID:      item.WinnerID.String,
	}
}

func ConvertGoldTransaction(tx *entity.GoldTransaction) GoldTransaction {
	return GoldTransaction{
		ID:        tx.ID,
		RaidID:    tx.RaidID.String,
		ItemID:    tx.ItemID.String,
		Amount:    tx.Amount,
		Reason:    string(tx.Reason),
		Note:      tx.Note,
		CreatedAt: tx.CreatedAt,
	}
}

func nullTimePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}

	return &t.Time
}
