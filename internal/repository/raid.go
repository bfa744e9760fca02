package repository

import (
	"context"
	"errors"
	"time"

	"github.com/raidpot-lab/backend/internal/entity"
	"github.com/raidpot-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type RaidRepository interface {
	Create(ctx context.Context, raid *entity.Raid) error
	GetByID(ctx context.Context, id string) (*entity.Raid, error)
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Raid, error)
	IncreasePot(ctx context.Context, id string, amount int64) error
	DecreasePot(ctx context.Context, id string, amount int64) error
	Update(ctx context.Context, raid *entity.Raid) error
	GetPreAuctionExpired(ctx context.Context, now time.Time) ([]entity.Raid, error)
}

type raidRepository struct{}

func NewRaidRepository() *raidRepository {
	return &raidRepository{}
}

func (r *raidRepository) Create(ctx context.Context, raid *entity.Raid) error {
	return xcontext.DB(ctx).Create(raid).Error
}

func (r *raidRepository) GetByID(ctx context.Context, id string) (*entity.Raid, error) {
	var result entity.Raid
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *raidRepository) GetByIDForUpdate(ctx context.Context, id string) (*entity.Raid, error) {
	var result entity.Raid
	if err := lockForUpdate(xcontext.DB(ctx)).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *raidRepository) IncreasePot(ctx context.Context, id string, amount int64) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Raid{}).
		Where("id=?", id).
		Update("pot", gorm.Expr("pot+?", amount))

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *raidRepository) DecreasePot(ctx context.Context, id string, amount int64) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Raid{}).
		Where("id=? AND pot >= ?", id, amount).
		Update("pot", gorm.Expr("pot-?", amount))

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return errors.New("not found raid or pot is too small")
	}

	return nil
}

func (r *raidRepository) Update(ctx context.Context, raid *entity.Raid) error {
	return xcontext.DB(ctx).Save(raid).Error
}

// GetPreAuctionExpired returns active raids whose shared pre-auction
// deadline has already passed and which still hold active pre-auction items.
func (r *raidRepository) GetPreAuctionExpired(ctx context.Context, now time.Time) ([]entity.Raid, error) {
	var result []entity.Raid
	err := xcontext.DB(ctx).
		Where("status = ?", entity.RaidActive).
		Where("pre_auction_ends_at IS NOT NULL AND pre_auction_ends_at < ?", now).
		Where("EXISTS (SELECT 1 FROM pre_auction_items"+
			" WHERE pre_auction_items.raid_id = raids.id AND pre_auction_items.status = ?"+
			" AND pre_auction_items.deleted_at IS NULL)", entity.PreAuctionItemActive).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
