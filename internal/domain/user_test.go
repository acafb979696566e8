package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wastebounty/backend/internal/domain/ledger"
	"github.com/wastebounty/backend/internal/entity"
	"github.com/wastebounty/backend/internal/model"
	"github.com/wastebounty/backend/internal/repository"
	"github.com/wastebounty/backend/pkg/errorx"
	"github.com/wastebounty/backend/pkg/testutil"
)

func newUserDomain() UserDomain {
	return NewUserDomain(
		repository.NewUserRepository(),
		ledger.New(repository.NewBountyRepository(), repository.NewRewardRedemptionRepository()),
	)
}

func TestUserDomain_GetMe(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	testutil.InsertCompletedBounty(ctx, testutil.User3.ID, testutil.User2.ID, 2)
	testutil.InsertRedemption(ctx, testutil.User2.ID, 1, entity.RedemptionApproved)
	d := newUserDomain()

	resp, err := d.GetMe(testutil.MockContextWithUserID(ctx, testutil.User2.ID), &model.GetMeRequest{})
	require.NoError(t, err)
	require.Equal(t, testutil.User2.Name, resp.User.Name)
	require.Equal(t, 3, resp.Points)

	_, err = d.GetMe(ctx, &model.GetMeRequest{})
	require.True(t, errorx.Is(err, errorx.Unauthenticated))

	_, err = d.GetMe(testutil.MockContextWithUserID(ctx, "ghost"), &model.GetMeRequest{})
	require.True(t, errorx.Is(err, errorx.NotFound))
}

func TestUserDomain_GetPoints(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	testutil.InsertCompletedBounty(ctx, testutil.User1.ID, testutil.User2.ID, 4)
	d := newUserDomain()

	resp, err := d.GetPoints(testutil.MockContextWithUserID(ctx, testutil.User1.ID), &model.GetPointsRequest{})
	require.NoError(t, err)
	require.Equal(t, 4, resp.Points)

	anonymous, err := d.GetPoints(ctx, &model.GetPointsRequest{})
	require.NoError(t, err)
	require.Zero(t, anonymous.Points)
}
