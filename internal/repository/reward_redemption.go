package repository

import (
	"context"

	"github.com/wastebounty/backend/internal/entity"
	"github.com/wastebounty/backend/pkg/xcontext"
)

type RewardRedemptionRepository interface {
	Create(ctx context.Context, data *entity.RewardRedemption) error
	GetByUserID(ctx context.Context, userID string, offset, limit int) ([]entity.RewardRedemption, error)
	SumReserved(ctx context.Context, userID string) (int64, error)
}

type rewardRedemptionRepository struct{}

func NewRewardRedemptionRepository() RewardRedemptionRepository {
	return &rewardRedemptionRepository{}
}

func (r *rewardRedemptionRepository) Create(ctx context.Context, data *entity.RewardRedemption) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *rewardRedemptionRepository) GetByUserID(
	ctx context.Context, userID string, offset, limit int,
) ([]entity.RewardRedemption, error) {
	result := []entity.RewardRedemption{}
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("requested_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *rewardRedemptionRepository) SumReserved(ctx context.Context, userID string) (int64, error) {
	var total int64
	err := xcontext.DB(ctx).
		Model(&entity.RewardRedemption{}).
		Select("COALESCE(SUM(points), 0)").
		Where("user_id=? AND status IN (?)", userID, entity.ReservingRedemptionStatuses).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}

	return total, nil
}
