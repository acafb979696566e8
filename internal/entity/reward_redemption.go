package entity

import (
	"time"

	"github.com/wastebounty/backend/pkg/enum"
)

type RedemptionStatus string

var (
	RedemptionPending  = enum.New(RedemptionStatus("PENDING"))
	RedemptionApproved = enum.New(RedemptionStatus("APPROVED"))
	RedemptionPaid     = enum.New(RedemptionStatus("PAID"))
	RedemptionRejected = enum.New(RedemptionStatus("REJECTED"))
)

// ReservingRedemptionStatuses are the statuses whose points are no longer
// redeemable.
var ReservingRedemptionStatuses = []RedemptionStatus{
	RedemptionPending,
	RedemptionApproved,
	RedemptionPaid,
}

type RewardRedemption struct {
	SnowFlakeBase

	UserID      string `gorm:"index;not null"`
	WalletType  string
	FullName    string
	Phone       string
	Points      int
	Amount      int
	Status      RedemptionStatus `gorm:"index;default:PENDING"`
	RequestedAt time.Time
}
