package domain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wastebounty/backend/internal/client"
	"github.com/wastebounty/backend/internal/domain/ledger"
	"github.com/wastebounty/backend/internal/domain/lifecycle"
	"github.com/wastebounty/backend/internal/entity"
	"github.com/wastebounty/backend/internal/model"
	"github.com/wastebounty/backend/internal/repository"
	"github.com/wastebounty/backend/pkg/errorx"
	"github.com/wastebounty/backend/pkg/keylock"
	"github.com/wastebounty/backend/pkg/testutil"
	"github.com/wastebounty/backend/pkg/xcontext"
)

func newRedemptionDomain(ctx context.Context) RedemptionDomain {
	redemptionRepo := repository.NewRewardRedemptionRepository()
	l := ledger.New(repository.NewBountyRepository(), redemptionRepo)
	queue := lifecycle.NewRedemptionQueue(
		redemptionRepo,
		repository.NewUserRepository(),
		l,
		client.NewNoopNotifier(),
		keylock.New(),
		xcontext.Configs(ctx).Redemption,
	)

	return NewRedemptionDomain(redemptionRepo, queue, l)
}

func TestRedemptionDomain_Request(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	testutil.InsertCompletedBounty(ctx, testutil.User1.ID, testutil.User2.ID, 5)
	d := newRedemptionDomain(ctx)

	_, err := d.Request(ctx, &model.RequestRedemptionRequest{WalletType: "DANA", FullName: "A", Phone: "1"})
	require.True(t, errorx.Is(err, errorx.Unauthenticated))

	userCtx := testutil.MockContextWithUserID(ctx, testutil.User1.ID)

	_, err = d.Request(userCtx, &model.RequestRedemptionRequest{WalletType: "PAYPAL", FullName: "A", Phone: "1"})
	require.True(t, errorx.Is(err, errorx.InvalidWallet))

	_, err = d.Request(userCtx, &model.RequestRedemptionRequest{WalletType: "dana", Phone: "1"})
	require.True(t, errorx.Is(err, errorx.MissingField))

	_, err = d.Request(userCtx, &model.RequestRedemptionRequest{
		WalletType: "dana", FullName: "User One", Phone: "62811", Amount: ptr(6),
	})
	require.True(t, errorx.Is(err, errorx.ExceedsBalance))

	resp, err := d.Request(userCtx, &model.RequestRedemptionRequest{
		WalletType: "dana", FullName: "User One", Phone: "62811", Amount: ptr(2),
	})
	require.NoError(t, err)
	require.Equal(t, "DANA", resp.WalletType)
	require.Equal(t, 2, resp.Points)
	require.Equal(t, 2, resp.Amount)
	require.Equal(t, string(entity.RedemptionPending), resp.Status)

	rest, err := d.Request(userCtx, &model.RequestRedemptionRequest{
		WalletType: "OVO", FullName: "User One", Phone: "62811",
	})
	require.NoError(t, err)
	require.Equal(t, 3, rest.Points)

	_, err = d.Request(userCtx, &model.RequestRedemptionRequest{
		WalletType: "OVO", FullName: "User One", Phone: "62811",
	})
	require.True(t, errorx.Is(err, errorx.InsufficientBalance))
}

func TestRedemptionDomain_GetMyRedemptions(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	testutil.InsertCompletedBounty(ctx, testutil.User1.ID, testutil.User2.ID, 10)
	testutil.InsertRedemption(ctx, testutil.User1.ID, 4, entity.RedemptionPaid)
	testutil.InsertRedemption(ctx, testutil.User1.ID, 3, entity.RedemptionRejected)
	testutil.InsertRedemption(ctx, testutil.User2.ID, 1, entity.RedemptionPending)
	d := newRedemptionDomain(ctx)

	resp, err := d.GetMyRedemptions(
		testutil.MockContextWithUserID(ctx, testutil.User1.ID),
		&model.GetMyRedemptionsRequest{Limit: 10},
	)
	require.NoError(t, err)
	require.Len(t, resp.Redemptions, 2)
	require.Equal(t, 6, resp.Balance)
	for _, r := range resp.Redemptions {
		require.Equal(t, testutil.User1.ID, r.UserID)
	}
}
