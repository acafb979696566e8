package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wastebounty/backend/internal/model"
	"github.com/wastebounty/backend/internal/repository"
	"github.com/wastebounty/backend/pkg/errorx"
	"github.com/wastebounty/backend/pkg/testutil"
	"github.com/wastebounty/backend/pkg/xcontext"
)

func TestAuthDomain_RegisterAndLogin(t *testing.T) {
	ctx := testutil.MockContext()
	d := NewAuthDomain(repository.NewUserRepository())

	registerResp, err := d.Register(ctx, &model.RegisterRequest{
		UserID:          " sari ",
		Name:            "Sari",
		Region:          "Bali",
		Phone:           "628123",
		Password:        "hunter22",
		PasswordConfirm: "hunter22",
	})
	require.NoError(t, err)
	require.Equal(t, "sari", registerResp.User.ID)
	require.Equal(t, "628123", registerResp.User.Phone)

	stored, err := repository.NewUserRepository().GetByID(ctx, "sari")
	require.NoError(t, err)
	require.NotEqual(t, "hunter22", stored.PasswordHash)

	_, err = d.Register(ctx, &model.RegisterRequest{
		UserID: "sari", Name: "Other", Password: "x", PasswordConfirm: "x",
	})
	require.True(t, errorx.Is(err, errorx.AlreadyExists))

	loginResp, err := d.Login(ctx, &model.LoginRequest{UserID: "sari", Password: "hunter22"})
	require.NoError(t, err)
	require.Equal(t, "sari", loginResp.User.ID)
	require.Equal(t, xcontext.Configs(ctx).Auth.AccessToken.Name, loginResp.CookieName)

	var token model.AccessToken
	require.NoError(t, xcontext.TokenEngine(ctx).Verify(loginResp.AccessToken, &token))
	require.Equal(t, "sari", token.ID)
	require.Equal(t, "sari", loginResp.SessionInfo()[model.SessionUserID])
}

func TestAuthDomain_RegisterValidation(t *testing.T) {
	ctx := testutil.MockContext()
	d := NewAuthDomain(repository.NewUserRepository())

	_, err := d.Register(ctx, &model.RegisterRequest{UserID: "a", Password: "x", PasswordConfirm: "x"})
	require.True(t, errorx.Is(err, errorx.MissingField))

	_, err = d.Register(ctx, &model.RegisterRequest{
		UserID: "a", Name: "A", Password: "x", PasswordConfirm: "y",
	})
	require.True(t, errorx.Is(err, errorx.BadRequest))
}

func TestAuthDomain_LoginFailure(t *testing.T) {
	ctx := testutil.MockContext()
	d := NewAuthDomain(repository.NewUserRepository())

	_, err := d.Register(ctx, &model.RegisterRequest{
		UserID: "budi", Name: "Budi", Password: "secret1", PasswordConfirm: "secret1",
	})
	require.NoError(t, err)

	_, wrongPassword := d.Login(ctx, &model.LoginRequest{UserID: "budi", Password: "nope"})
	require.True(t, errorx.Is(wrongPassword, errorx.Unauthenticated))

	_, unknownUser := d.Login(ctx, &model.LoginRequest{UserID: "ghost", Password: "secret1"})
	require.True(t, errorx.Is(unknownUser, errorx.Unauthenticated))
	require.Equal(t, wrongPassword.Error(), unknownUser.Error())
}

func TestAuthDomain_Logout(t *testing.T) {
	ctx := testutil.MockContext()
	d := NewAuthDomain(repository.NewUserRepository())

	resp, err := d.Logout(ctx, &model.LogoutRequest{})
	require.NoError(t, err)
	require.Nil(t, resp.SessionInfo())
	require.Equal(t, -1, resp.CookieInfo()[0].MaxAge)
}
