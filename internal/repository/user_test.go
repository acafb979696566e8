package repository_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wastebounty/backend/internal/entity"
	"github.com/wastebounty/backend/internal/repository"
	"github.com/wastebounty/backend/pkg/testutil"
	"github.com/wastebounty/backend/pkg/xcontext"
	"gorm.io/gorm"
)

func TestUserRepository(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	repo := repository.NewUserRepository()

	user, err := repo.GetByID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, testutil.User1.Name, user.Name)

	_, err = repo.GetByID(ctx, "nobody")
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	// Duplicated ids are rejected by the primary key.
	require.Error(t, repo.Create(ctx, &entity.User{Base: entity.Base{ID: testutil.User1.ID}}))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(len(testutil.Users)), count)

	txCtx := xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(txCtx)

	locked, err := repo.GetByIDForUpdate(txCtx, testutil.User2.ID)
	require.NoError(t, err)
	require.Equal(t, testutil.User2.ID, locked.ID)
}
