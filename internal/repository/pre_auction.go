package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/raidpot-lab/backend/internal/entity"
	"github.com/raidpot-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type PreAuctionRepository interface {
	CreateItem(ctx context.Context, item *entity.PreAuctionItem) error
	GetItemByID(ctx context.Context, id string) (*entity.PreAuctionItem, error)
	GetItemByIDForUpdate(ctx context.Context, id string) (*entity.PreAuctionItem, error)
	UpdateItem(ctx context.Context, item *entity.PreAuctionItem) error
	GetItemsByRaidID(ctx context.Context, raidID string) ([]entity.PreAuctionItem, error)
	EndActiveItemsByRaidID(ctx context.Context, raidID string) (int64, error)

	CreateBid(ctx context.Context, bid *entity.PreAuctionBid) error
	GetWinningBidByItemID(ctx context.Context, itemID string) (*entity.PreAuctionBid, error)
	ClearWinningBidByItemID(ctx context.Context, itemID string) error
	SumWinningAmountByUserID(ctx context.Context, userID string) (int64, error)
}

type preAuctionRepository struct{}

func NewPreAuctionRepository() *preAuctionRepository {
	return &preAuctionRepository{}
}

func (r *preAuctionRepository) CreateItem(ctx context.Context, item *entity.PreAuctionItem) error {
	return xcontext.DB(ctx).Create(item).Error
}

func (r *preAuctionRepository) GetItemByID(ctx context.Context, id string) (*entity.PreAuctionItem, error) {
	var result entity.PreAuctionItem
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *preAuctionRepository) GetItemByIDForUpdate(ctx context.Context, id string) (*entity.PreAuctionItem, error) {
	var result entity.PreAuctionItem
	if err := lockForUpdate(xcontext.DB(ctx)).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *preAuctionRepository) UpdateItem(ctx context.Context, item *entity.PreAuctionItem) error {
	return xcontext.DB(ctx).Save(item).Error
}

func (r *preAuctionRepository) GetItemsByRaidID(ctx context.Context, raidID string) ([]entity.PreAuctionItem, error) {
	var result []entity.PreAuctionItem
	if err := xcontext.DB(ctx).Find(&result, "raid_id=?", raidID).Error; err != nil {
		return nil, err
	}

	return result, nil
}

// EndActiveItemsByRaidID bulk-transitions every active pre-auction item of
// the raid to ended. No per-item settlement happens here; winners are only
// charged when the physical item drops and is claimed.
func (r *preAuctionRepository) EndActiveItemsByRaidID(ctx context.Context, raidID string) (int64, error) {
	tx := xcontext.DB(ctx).
		Model(&entity.PreAuctionItem{}).
		Where("raid_id=? AND status=?", raidID, entity.PreAuctionItemActive).
		Update("status", entity.PreAuctionItemEnded)

	if tx.Error != nil {
		return 0, tx.Error
	}

	return tx.RowsAffected, nil
}

func (r *preAuctionRepository) CreateBid(ctx context.Context, bid *entity.PreAuctionBid) error {
	return xcontext.DB(ctx).Create(bid).Error
}

func (r *preAuctionRepository) GetWinningBidByItemID(ctx context.Context, itemID string) (*entity.PreAuctionBid, error) {
	var result entity.PreAuctionBid
	err := xcontext.DB(ctx).Take(&result, "pre_auction_item_id=? AND is_winning=?", itemID, true).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *preAuctionRepository) ClearWinningBidByItemID(ctx context.Context, itemID string) error {
	err := xcontext.DB(ctx).
		Model(&entity.PreAuctionBid{}).
		Where("pre_auction_item_id=? AND is_winning=?", itemID, true).
		Update("is_winning", false).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return nil
}

// SumWinningAmountByUserID counts active and ended items: an ended but
// unclaimed pre-auction bid is still committed gold.
func (r *preAuctionRepository) SumWinningAmountByUserID(ctx context.Context, userID string) (int64, error) {
	var result sql.NullInt64
	err := xcontext.DB(ctx).
		Model(&entity.PreAuctionBid{}).
		Select("SUM(pre_auction_bids.amount)").
		Joins("JOIN pre_auction_items ON pre_auction_items.id = pre_auction_bids.pre_auction_item_id").
		Where("pre_auction_bids.user_id=? AND pre_auction_bids.is_winning=?", userID, true).
		Where("pre_auction_items.status IN (?)",
			[]entity.PreAuctionItemStatusType{entity.PreAuctionItemActive, entity.PreAuctionItemEnded}).
		Scan(&result).Error
	if err != nil {
		return 0, err
	}

	return result.Int64, nil
}
