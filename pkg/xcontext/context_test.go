package xcontext

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type record struct {
	ID   int
	Name string
}

func newDBContext(t *testing.T) context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&record{}))
	return WithDB(context.Background(), db)
}

func TestWithCommitDBTransaction(t *testing.T) {
	ctx := newDBContext(t)

	txCtx := WithDBTransaction(ctx)
	defer WithRollbackDBTransaction(txCtx)
	require.NoError(t, DB(txCtx).Create(&record{ID: 1, Name: "kept"}).Error)

	txCtx, err := WithCommitDBTransaction(txCtx)
	require.NoError(t, err)

	var got record
	require.NoError(t, DB(txCtx).Take(&got, 1).Error)
	require.Equal(t, "kept", got.Name)
}

func TestWithCommitDBTransaction_ReportsFailure(t *testing.T) {
	ctx := newDBContext(t)

	txCtx := WithDBTransaction(ctx)
	require.NoError(t, DB(txCtx).Create(&record{ID: 1, Name: "lost"}).Error)

	// The transaction ends underneath the caller.
	require.NoError(t, DB(txCtx).Rollback().Error)

	txCtx, err := WithCommitDBTransaction(txCtx)
	require.Error(t, err)

	var count int64
	require.NoError(t, DB(txCtx).Model(&record{}).Count(&count).Error)
	require.Zero(t, count)
}
