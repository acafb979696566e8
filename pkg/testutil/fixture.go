package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wastebounty/backend/internal/entity"
	"github.com/wastebounty/backend/internal/repository"
	"github.com/wastebounty/backend/pkg/idutil"
	"github.com/wastebounty/backend/pkg/xcontext"
)

var (
	// User1 reports, User2 and User3 clean.
	User1 = &entity.User{
		Base:   entity.Base{ID: "user1"},
		Name:   "User One",
		Region: "Jakarta",
		Phone:  "6281100000001",
	}

	User2 = &entity.User{
		Base:   entity.Base{ID: "user2"},
		Name:   "User Two",
		Region: "Bandung",
		Phone:  "6281100000002",
	}

	User3 = &entity.User{
		Base:   entity.Base{ID: "user3"},
		Name:   "User Three",
		Region: "Surabaya",
		Phone:  "6281100000003",
	}

	Users = []*entity.User{User1, User2, User3}
)

func CreateFixtureDb(ctx context.Context) {
	userRepo := repository.NewUserRepository()
	for _, u := range Users {
		user := *u
		if err := userRepo.Create(ctx, &user); err != nil {
			panic(err)
		}
	}
}

// InsertCompletedBounty stores a finished bounty directly, bypassing the
// state machine. It is the quickest way to give a user earned points.
func InsertCompletedBounty(ctx context.Context, reporterID, cleanerID string, pointsReporter int) *entity.Bounty {
	now := time.Now()
	bounty := &entity.Bounty{
		Base:           entity.Base{ID: uuid.NewString()},
		ReporterID:     reporterID,
		CleanerID:      sql.NullString{String: cleanerID, Valid: true},
		Lat:            sql.NullFloat64{Float64: 0, Valid: true},
		Lon:            sql.NullFloat64{Float64: 0, Valid: true},
		ClaimedAt:      sql.NullTime{Time: now, Valid: true},
		CompletedAt:    sql.NullTime{Time: now, Valid: true},
		BeforeImage:    "before.jpg",
		AfterImage:     sql.NullString{String: "after.jpg", Valid: true},
		Status:         entity.BountyCompleted,
		NumObjects:     1,
		PointsReporter: pointsReporter,
		PointsCleaner:  2 * pointsReporter,
		Labels:         entity.Array[entity.Detection]{{Label: "Other", Confidence: 1}},
	}

	if err := repository.NewBountyRepository().Create(ctx, bounty); err != nil {
		panic(err)
	}

	return bounty
}

func InsertRedemption(
	ctx context.Context, userID string, points int, status entity.RedemptionStatus,
) *entity.RewardRedemption {
	redemption := &entity.RewardRedemption{
		SnowFlakeBase: entity.SnowFlakeBase{ID: idutil.NextSnowflake()},
		UserID:        userID,
		WalletType:    "DANA",
		FullName:      "Fixture",
		Phone:         "620000",
		Points:        points,
		Amount:        points,
		Status:        status,
		RequestedAt:   time.Now(),
	}

	if err := repository.NewRewardRedemptionRepository().Create(ctx, redemption); err != nil {
		panic(err)
	}

	return redemption
}

// FailCommitsAfter makes every transaction that runs the given statement
// ("INSERT" or "UPDATE") on table fail at COMMIT. A trigger writes a row
// that violates a deferred foreign key, which sqlite only checks on commit.
func FailCommitsAfter(ctx context.Context, event, table string) {
	stmts := []string{
		"PRAGMA foreign_keys = ON",
		"CREATE TABLE IF NOT EXISTS commit_guards (id INTEGER PRIMARY KEY)",
		"CREATE TABLE IF NOT EXISTS commit_guard_refs (" +
			"guard_id INTEGER REFERENCES commit_guards(id) DEFERRABLE INITIALLY DEFERRED)",
		fmt.Sprintf("CREATE TRIGGER fail_commit_%[1]s_%[2]s AFTER %[1]s ON %[2]s "+
			"BEGIN INSERT INTO commit_guard_refs (guard_id) VALUES (-1); END", event, table),
	}

	db := xcontext.DB(ctx)
	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			panic(err)
		}
	}
}
