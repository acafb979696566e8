package migration

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/wastebounty/backend/internal/entity"
	"github.com/wastebounty/backend/pkg/logger"
	"github.com/wastebounty/backend/pkg/xcontext"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newContext(t *testing.T) context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	ctx := xcontext.WithLogger(context.Background(), logger.NewNopLogger())
	return xcontext.WithDB(ctx, db)
}

func TestMigrate(t *testing.T) {
	ctx := newContext(t)
	require.NoError(t, Migrate(ctx))

	db := xcontext.DB(ctx)
	require.True(t, db.Migrator().HasTable(&entity.User{}))
	require.True(t, db.Migrator().HasTable(&entity.Bounty{}))
	require.True(t, db.Migrator().HasTable(&entity.RewardRedemption{}))
	require.True(t, db.Migrator().HasIndex("bounties", "idx_bounties_status_reporter"))

	version, err := currentVersion(ctx)
	require.NoError(t, err)
	require.Equal(t, len(migrators), version)

	// A second run is a no-op.
	require.NoError(t, Migrate(ctx))
}

func TestMigrate_ColumnsCoverEntities(t *testing.T) {
	ctx := newContext(t)
	require.NoError(t, Migrate(ctx))
	db := xcontext.DB(ctx)

	for _, model := range []any{&entity.User{}, &entity.Bounty{}, &entity.RewardRedemption{}} {
		stmt := &gorm.Statement{DB: db}
		require.NoError(t, stmt.Parse(model))

		for _, column := range []string{"id", "updated_at", "deleted_at"} {
			require.True(t, db.Migrator().HasColumn(model, column), "%s.%s", stmt.Schema.Table, column)
		}

		for _, column := range stmt.Schema.DBNames {
			require.True(t, db.Migrator().HasColumn(model, column), "%s.%s", stmt.Schema.Table, column)
		}
	}

	require.True(t, db.Migrator().HasColumn(&entity.User{}, "created_at"))
	require.True(t, db.Migrator().HasColumn(&entity.Bounty{}, "created_at"))
}

func TestMigrate_RoundTrip(t *testing.T) {
	ctx := newContext(t)
	require.NoError(t, Migrate(ctx))
	db := xcontext.DB(ctx)

	user := &entity.User{Base: entity.Base{ID: "user1"}, Name: "User One", Phone: "6281100000001"}
	require.NoError(t, db.Create(user).Error)

	var gotUser entity.User
	require.NoError(t, db.Take(&gotUser, "id = ?", "user1").Error)
	require.Equal(t, "User One", gotUser.Name)
	require.False(t, gotUser.CreatedAt.IsZero())

	bounty := &entity.Bounty{
		Base:           entity.Base{ID: "bounty1"},
		ReporterID:     "user1",
		Lat:            sql.NullFloat64{Float64: -6.2, Valid: true},
		Lon:            sql.NullFloat64{Float64: 106.8, Valid: true},
		BeforeImage:    "before.jpg",
		Status:         entity.BountyOpen,
		NumObjects:     2,
		PointsReporter: 6,
		PointsCleaner:  12,
		Labels:         entity.Array[entity.Detection]{{Label: "PET_Bottles", Confidence: 0.9}},
	}
	require.NoError(t, db.Create(bounty).Error)

	var gotBounty entity.Bounty
	require.NoError(t, db.Take(&gotBounty, "id = ?", "bounty1").Error)
	require.Equal(t, entity.BountyOpen, gotBounty.Status)
	require.Equal(t, 12, gotBounty.PointsCleaner)
	require.Len(t, gotBounty.Labels, 1)

	redemption := &entity.RewardRedemption{
		SnowFlakeBase: entity.SnowFlakeBase{ID: 42},
		UserID:        "user1",
		WalletType:    "DANA",
		FullName:      "User One",
		Phone:         "6281100000001",
		Points:        6,
		Amount:        6,
		Status:        entity.RedemptionPending,
		RequestedAt:   time.Now(),
	}
	require.NoError(t, db.Create(redemption).Error)

	var gotRedemption entity.RewardRedemption
	require.NoError(t, db.Take(&gotRedemption, "id = ?", 42).Error)
	require.Equal(t, entity.RedemptionPending, gotRedemption.Status)
	require.Equal(t, 6, gotRedemption.Amount)
}

func TestRun_UnknownVersion(t *testing.T) {
	ctx := newContext(t)
	require.Error(t, Run(ctx, 0))
	require.Error(t, Run(ctx, len(migrators)+1))
}
