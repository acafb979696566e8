package migration

import (
	"context"
	"database/sql"
	"time"

	"github.com/wastebounty/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// Snapshots of the tables as they were when this migrator was written.
// NOTE: DO NOT change these structs, add a new migrator instead.

type Base0001 struct {
	ID        string `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

type user0001 struct {
	Base0001
	Name         string
	BirthDate    string
	Region       string
	Phone        string
	PasswordHash string
}

func (user0001) TableName() string { return "users" }

type bounty0001 struct {
	Base0001
	ReporterID     string         `gorm:"index;not null"`
	CleanerID      sql.NullString `gorm:"index"`
	Lat            sql.NullFloat64
	Lon            sql.NullFloat64
	ClaimedAt      sql.NullTime
	CompletedAt    sql.NullTime
	BeforeImage    string
	AfterImage     sql.NullString
	Status         string `gorm:"index;not null"`
	NumObjects     int
	PointsReporter int
	PointsCleaner  int
	LabelsJSON     string `gorm:"column:labels_json;type:text"`
}

func (bounty0001) TableName() string { return "bounties" }

type rewardRedemption0001 struct {
	ID          int64 `gorm:"primaryKey;autoIncrement:false"`
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
	UserID      string         `gorm:"index;not null"`
	WalletType  string
	FullName    string
	Phone       string
	Points      int
	Amount      int
	Status      string `gorm:"index;default:PENDING"`
	RequestedAt time.Time
}

func (rewardRedemption0001) TableName() string { return "reward_redemptions" }

func migrate0001(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(&user0001{}, &bounty0001{}, &rewardRedemption0001{})
}
