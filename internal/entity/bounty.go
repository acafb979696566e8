package entity

import (
	"database/sql"

	"github.com/wastebounty/backend/pkg/enum"
)

type BountyStatus string

var (
	BountyOpen      = enum.New(BountyStatus("OPEN"))
	BountyClaimed   = enum.New(BountyStatus("CLAIMED"))
	BountyCompleted = enum.New(BountyStatus("COMPLETED"))
)

type Detection struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

type Bounty struct {
	Base

	ReporterID string         `gorm:"index;not null"`
	CleanerID  sql.NullString `gorm:"index"`

	Lat sql.NullFloat64
	Lon sql.NullFloat64

	ClaimedAt   sql.NullTime
	CompletedAt sql.NullTime

	BeforeImage string
	AfterImage  sql.NullString

	Status         BountyStatus `gorm:"index;not null"`
	NumObjects     int
	PointsReporter int
	PointsCleaner  int
	Labels         Array[Detection] `gorm:"column:labels_json;type:text"`
}

func (b *Bounty) HasLocation() bool {
	return b.Lat.Valid && b.Lon.Valid
}
