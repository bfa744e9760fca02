package repository

import (
	"context"

	"github.com/raidpot-lab/backend/internal/entity"
	"github.com/raidpot-lab/backend/pkg/xcontext"
)

type GoldTransactionRepository interface {
	Create(ctx context.Context, tx *entity.GoldTransaction) error
	GetByUserID(ctx context.Context, userID string, limit int) ([]entity.GoldTransaction, error)
	GetByRaidID(ctx context.Context, raidID string) ([]entity.GoldTransaction, error)
}

type goldTransactionRepository struct{}

func NewGoldTransactionRepository() *goldTransactionRepository {
	return &goldTransactionRepository{}
}

func (r *goldTransactionRepository) Create(ctx context.Context, tx *entity.GoldTransaction) error {
	return xcontext.DB(ctx).Create(tx).Error
}

func (r *goldTransactionRepository) GetByUserID(
	ctx context.Context, userID string, limit int,
) ([]entity.GoldTransaction, error) {
	var result []entity.GoldTransaction
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *goldTransactionRepository) GetByRaidID(ctx context.Context, raidID string) ([]entity.GoldTransaction, error) {
	var result []entity.GoldTransaction
	err := xcontext.DB(ctx).
		Where("raid_id=?", raidID).
		Order("created_at DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
