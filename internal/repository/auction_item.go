package repository

import (
	"context"

	"github.com/raidpot-lab/backend/internal/entity"
	"github.com/raidpot-lab/backend/pkg/xcontext"
)

type AuctionItemRepository interface {
	Create(ctx context.Context, item *entity.AuctionItem) error
	GetByID(ctx context.Context, id string) (*entity.AuctionItem, error)
	GetByIDForUpdate(ctx context.Context, id string) (*entity.AuctionItem, error)
	Update(ctx context.Context, item *entity.AuctionItem) error
	GetByRaidID(ctx context.Context, raidID string) ([]entity.AuctionItem, error)
	GetAllActive(ctx context.Context) ([]entity.AuctionItem, error)
	CountActiveByRaidID(ctx context.Context, raidID string) (int64, error)
	CountUnfinishedByRaidID(ctx context.Context, raidID string) (int64, error)
}

type auctionItemRepository struct{}

func NewAuctionItemRepository() *auctionItemRepository {
	return &auctionItemRepository{}
}

func (r *auctionItemRepository) Create(ctx context.Context, item *entity.AuctionItem) error {
	return xcontext.DB(ctx).Create(item).Error
}

func (r *auctionItemRepository) GetByID(ctx context.Context, id string) (*entity.AuctionItem, error) {
	var result entity.AuctionItem
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *auctionItemRepository) GetByIDForUpdate(ctx context.Context, id string) (*entity.AuctionItem, error) {
	var result entity.AuctionItem
	if err := lockForUpdate(xcontext.DB(ctx)).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

// Update saves the full item row. Callers hold the row lock taken by
// GetByIDForUpdate and have already bumped the version counter.
func (r *auctionItemRepository) Update(ctx context.Context, item *entity.AuctionItem) error {
	return xcontext.DB(ctx).Save(item).Error
}

func (r *auctionItemRepository) GetByRaidID(ctx context.Context, raidID string) ([]entity.AuctionItem, error) {
	var result []entity.AuctionItem
	if err := xcontext.DB(ctx).Find(&result, "raid_id=?", raidID).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *auctionItemRepository) GetAllActive(ctx context.Context) ([]entity.AuctionItem, error) {
	var result []entity.AuctionItem
	err := xcontext.DB(ctx).Find(&result, "status=?", entity.AuctionItemActive).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *auctionItemRepository) CountActiveByRaidID(ctx context.Context, raidID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.AuctionItem{}).
		Where("raid_id=? AND status=?", raidID, entity.AuctionItemActive).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *auctionItemRepository) CountUnfinishedByRaidID(ctx context.Context, raidID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.AuctionItem{}).
		Where("raid_id=? AND status IN (?)", raidID,
			[]entity.AuctionItemStatusType{entity.AuctionItemPending, entity.AuctionItemActive}).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
