package model

import (
	"strconv"

	"github.com/wastebounty/backend/internal/entity"
)

func ConvertUser(user *entity.User) User {
	if user == nil {
		return User{}
	}

	return User{
		ID:        user.ID,
		Name:      user.Name,
		BirthDate: user.BirthDate,
		Region:    user.Region,
		Phone:     user.Phone,
	}
}

func ConvertBounty(bounty *entity.Bounty) Bounty {
	if bounty == nil {
		return Bounty{}
	}

	labels := make([]Detection, 0, len(bounty.Labels))
	for _, d := range bounty.Labels {
		labels = append(labels, Detection{Label: d.Label, Confidence: d.Confidence})
	}

	result := Bounty{
		ID:             bounty.ID,
		ReporterID:     bounty.ReporterID,
		CleanerID:      bounty.CleanerID.String,
		Status:         string(bounty.Status),
		BeforeImage:    bounty.BeforeImage,
		AfterImage:     bounty.AfterImage.String,
		NumObjects:     bounty.NumObjects,
		PointsReporter: bounty.PointsReporter,
		PointsCleaner:  bounty.PointsCleaner,
		Labels:         labels,
		CreatedAt:      bounty.CreatedAt.Format(DefaultTimeLayout),
	}

	if bounty.HasLocation() {
		lat, lon := bounty.Lat.Float64, bounty.Lon.Float64
		result.Lat = &lat
		result.Lon = &lon
	}

	if bounty.ClaimedAt.Valid {
		result.ClaimedAt = bounty.ClaimedAt.Time.Format(DefaultTimeLayout)
	}

	if bounty.CompletedAt.Valid {
		result.CompletedAt = bounty.CompletedAt.Time.Format(DefaultTimeLayout)
	}

	return result
}

func ConvertRedemption(redemption *entity.RewardRedemption) Redemption {
	if redemption == nil {
		return Redemption{}
	}

	return Redemption{
		ID:          strconv.FormatInt(redemption.ID, 10),
		UserID:      redemption.UserID,
		WalletType:  redemption.WalletType,
		FullName:    redemption.FullName,
		Phone:       redemption.Phone,
		Points:      redemption.Points,
		Amount:      redemption.Amount,
		Status:      string(redemption.Status),
		RequestedAt: redemption.RequestedAt.Format(DefaultTimeLayout),
	}
}
