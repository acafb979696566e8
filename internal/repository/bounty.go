package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/wastebounty/backend/internal/entity"
	"github.com/wastebounty/backend/pkg/geoutil"
	"github.com/wastebounty/backend/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrStaleBounty is returned by the conditional updates when the bounty is
// no longer in the expected status.
var ErrStaleBounty = errors.New("bounty status changed concurrently")

type BountyFilter struct {
	Status     []entity.BountyStatus
	ReporterID string
	CleanerID  string

	// Area keeps only bounties inside the box of these two corners.
	SouthWest *geoutil.Point
	NorthEast *geoutil.Point
}

type BountyRepository interface {
	Create(ctx context.Context, data *entity.Bounty) error
	GetByID(ctx context.Context, id string) (*entity.Bounty, error)
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Bounty, error)
	GetList(ctx context.Context, filter BountyFilter, offset, limit int) ([]entity.Bounty, error)
	Claim(ctx context.Context, id, cleanerID string, claimedAt sql.NullTime) error
	Complete(ctx context.Context, id, afterImage string, completedAt sql.NullTime) error
	CountByStatus(ctx context.Context, status ...entity.BountyStatus) (int64, error)
	SumEarned(ctx context.Context, userID string) (int64, error)
}

type bountyRepository struct{}

func NewBountyRepository() BountyRepository {
	return &bountyRepository{}
}

func (r *bountyRepository) Create(ctx context.Context, data *entity.Bounty) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *bountyRepository) GetByID(ctx context.Context, id string) (*entity.Bounty, error) {
	var result entity.Bounty
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

// GetByIDForUpdate must be called inside a transaction. The row stays locked
// until the transaction ends.
func (r *bountyRepository) GetByIDForUpdate(ctx context.Context, id string) (*entity.Bounty, error) {
	var result entity.Bounty
	err := xcontext.DB(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Take(&result, "id=?", id).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *bountyRepository) GetList(
	ctx context.Context, filter BountyFilter, offset, limit int,
) ([]entity.Bounty, error) {
	result := []entity.Bounty{}
	tx := xcontext.DB(ctx).
		Offset(offset).
		Limit(limit).
		Order("created_at DESC")

	if len(filter.Status) > 0 {
		tx = tx.Where("status IN (?)", filter.Status)
	}

	if filter.ReporterID != "" {
		tx = tx.Where("reporter_id=?", filter.ReporterID)
	}

	if filter.CleanerID != "" {
		tx = tx.Where("cleaner_id=?", filter.CleanerID)
	}

	if filter.SouthWest != nil && filter.NorthEast != nil {
		tx = tx.Where("lat BETWEEN ? AND ? AND lon BETWEEN ? AND ?",
			filter.SouthWest.Lat, filter.NorthEast.Lat, filter.SouthWest.Lon, filter.NorthEast.Lon)
	}

	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *bountyRepository) Claim(ctx context.Context, id, cleanerID string, claimedAt sql.NullTime) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Bounty{}).
		Where("id=? AND status=?", id, entity.BountyOpen).
		Updates(map[string]any{
			"cleaner_id": cleanerID,
			"claimed_at": claimedAt,
			"status":     entity.BountyClaimed,
		})
	return checkTransition(tx)
}

func (r *bountyRepository) Complete(
	ctx context.Context, id, afterImage string, completedAt sql.NullTime,
) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Bounty{}).
		Where("id=? AND status=?", id, entity.BountyClaimed).
		Updates(map[string]any{
			"after_image":  afterImage,
			"completed_at": completedAt,
			"status":       entity.BountyCompleted,
		})
	return checkTransition(tx)
}

func (r *bountyRepository) CountByStatus(ctx context.Context, status ...entity.BountyStatus) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.Bounty{}).
		Where("status IN (?)", status).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// SumEarned adds up the reporter share and the cleaner share of every
// completed bounty the user took part in. The two roles are summed
// independently.
func (r *bountyRepository) SumEarned(ctx context.Context, userID string) (int64, error) {
	var result struct {
		Reporter int64
		Cleaner  int64
	}

	err := xcontext.DB(ctx).
		Model(&entity.Bounty{}).
		Select(
			"COALESCE(SUM(CASE WHEN reporter_id = ? THEN points_reporter ELSE 0 END), 0) AS reporter, "+
				"COALESCE(SUM(CASE WHEN cleaner_id = ? THEN points_cleaner ELSE 0 END), 0) AS cleaner",
			userID, userID,
		).
		Where("status=?", entity.BountyCompleted).
		Where("reporter_id=? OR cleaner_id=?", userID, userID).
		Scan(&result).Error
	if err != nil {
		return 0, err
	}

	return result.Reporter + result.Cleaner, nil
}

func checkTransition(tx *gorm.DB) error {
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected != 1 {
		return ErrStaleBounty
	}

	return nil
}
