package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/raidpot-lab/backend/internal/entity"
	"github.com/raidpot-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type BidRepository interface {
	Create(ctx context.Context, bid *entity.Bid) error
	GetWinningByItemID(ctx context.Context, itemID string) (*entity.Bid, error)
	ClearWinningByItemID(ctx context.Context, itemID string) error
	DeleteByItemID(ctx context.Context, itemID string) error
	GetByItemID(ctx context.Context, itemID string) ([]entity.Bid, error)
	SumWinningAmountByUserID(ctx context.Context, userID string) (int64, error)
}

type bidRepository struct{}

func NewBidRepository() *bidRepository {
	return &bidRepository{}
}

func (r *bidRepository) Create(ctx context.Context, bid *entity.Bid) error {
	return xcontext.DB(ctx).Create(bid).Error
}

func (r *bidRepository) GetWinningByItemID(ctx context.Context, itemID string) (*entity.Bid, error) {
	var result entity.Bid
	err := xcontext.DB(ctx).Take(&result, "item_id=? AND is_winning=?", itemID, true).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *bidRepository) ClearWinningByItemID(ctx context.Context, itemID string) error {
	err := xcontext.DB(ctx).
		Model(&entity.Bid{}).
		Where("item_id=? AND is_winning=?", itemID, true).
		Update("is_winning", false).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return nil
}

func (r *bidRepository) DeleteByItemID(ctx context.Context, itemID string) error {
	return xcontext.DB(ctx).Delete(&entity.Bid{}, "item_id=?", itemID).Error
}

func (r *bidRepository) GetByItemID(ctx context.Context, itemID string) ([]entity.Bid, error) {
	var result []entity.Bid
	err := xcontext.DB(ctx).
		Order("created_at DESC").
		Find(&result, "item_id=?", itemID).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// SumWinningAmountByUserID returns the gold this user has committed to
// currently-winning bids on active auctions. It must be recomputed on every
// admission check; concurrent settlements change it between calls.
func (r *bidRepository) SumWinningAmountByUserID(ctx context.Context, userID string) (int64, error) {
	var result sql.NullInt64
	err := xcontext.DB(ctx).
		Model(&entity.Bid{}).
		Select("SUM(bids.amount)").
		Joins("JOIN auction_items ON auction_items.id = bids.item_id").
		Where("bids.user_id=? AND bids.is_winning=?", userID, true).
		Where("auction_items.status=?", entity.AuctionItemActive).
		Scan(&result).Error
	if err != nil {
		return 0, err
	}

	return result.Int64, nil
}
