package repository

import (
	"context"
	"time"

	"github.com/raidpot-lab/backend/internal/entity"
	"github.com/raidpot-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type ParticipantRepository interface {
	Create(ctx context.Context, participant *entity.RaidParticipant) error
	Get(ctx context.Context, raidID, userID string) (*entity.RaidParticipant, error)
	GetByRaidID(ctx context.Context, raidID string) ([]entity.RaidParticipant, error)
	SetPaidAt(ctx context.Context, raidID, userID string, paidAt time.Time) error
}

type participantRepository struct{}

func NewParticipantRepository() *participantRepository {
	return &participantRepository{}
}

func (r *participantRepository) Create(ctx context.Context, participant *entity.RaidParticipant) error {
	return xcontext.DB(ctx).Create(participant).Error
}

func (r *participantRepository) Get(ctx context.Context, raidID, userID string) (*entity.RaidParticipant, error) {
	var result entity.RaidParticipant
	err := xcontext.DB(ctx).Take(&result, "raid_id=? AND user_id=?", raidID, userID).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *participantRepository) GetByRaidID(ctx context.Context, raidID string) ([]entity.RaidParticipant, error) {
	var result []entity.RaidParticipant
	err := xcontext.DB(ctx).
		Where("raid_id=?", raidID).
		Order("user_id ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *participantRepository) SetPaidAt(ctx context.Context, raidID, userID string, paidAt time.Time) error {
	tx := xcontext.DB(ctx).
		Model(&entity.RaidParticipant{}).
		Where("raid_id=? AND user_id=?", raidID, userID).
		Update("paid_at", paidAt)

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
