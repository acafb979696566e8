package domain

import (
	"context"
	"errors"
	"strings"

	"github.com/wastebounty/backend/internal/entity"
	"github.com/wastebounty/backend/internal/model"
	"github.com/wastebounty/backend/internal/repository"
	"github.com/wastebounty/backend/pkg/errorx"
	"github.com/wastebounty/backend/pkg/xcontext"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthDomain interface {
	Register(context.Context, *model.RegisterRequest) (*model.RegisterResponse, error)
	Login(context.Context, *model.LoginRequest) (*model.LoginResponse, error)
	Logout(context.Context, *model.LogoutRequest) (*model.LogoutResponse, error)
}

type authDomain struct {
	userRepo repository.UserRepository
}

func NewAuthDomain(userRepo repository.UserRepository) AuthDomain {
	return &authDomain{userRepo: userRepo}
}

func (d *authDomain) Register(
	ctx context.Context, req *model.RegisterRequest,
) (*model.RegisterResponse, error) {
	userID := strings.TrimSpace(req.UserID)
	name := strings.TrimSpace(req.Name)
	if userID == "" || name == "" || req.Password == "" {
		return nil, errorx.New(errorx.MissingField, "User id, name and password are required")
	}

	if req.Password != req.PasswordConfirm {
		return nil, errorx.New(errorx.BadRequest, "Password confirmation does not match")
	}

	_, err := d.userRepo.GetByID(ctx, userID)
	if err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "User id %s is already used", userID)
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot hash password: %v", err)
		return nil, errorx.Unknown
	}

	user := &entity.User{
		Base:         entity.Base{ID: userID},
		Name:         name,
		BirthDate:    strings.TrimSpace(req.BirthDate),
		Region:       strings.TrimSpace(req.Region),
		Phone:        strings.TrimSpace(req.Phone),
		PasswordHash: string(hash),
	}

	if err := d.userRepo.Create(ctx, user); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create user: %v", err)
		return nil, errorx.Unknown
	}

	return &model.RegisterResponse{User: model.ConvertUser(user)}, nil
}

func (d *authDomain) Login(
	ctx context.Context, req *model.LoginRequest,
) (*model.LoginResponse, error) {
	wrongCredential := errorx.New(errorx.Unauthenticated, "Wrong user id or password")

	user, err := d.userRepo.GetByID(ctx, strings.TrimSpace(req.UserID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, wrongCredential
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, wrongCredential
	}

	tokenCfg := xcontext.Configs(ctx).Auth.AccessToken
	accessToken, err := xcontext.TokenEngine(ctx).Generate(
		tokenCfg.Expiration, model.AccessToken{ID: user.ID, Name: user.Name})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return nil, errorx.Unknown
	}

	return &model.LoginResponse{
		User:             model.ConvertUser(user),
		AccessToken:      accessToken,
		CookieName:       tokenCfg.Name,
		CookieExpiration: tokenCfg.Expiration,
	}, nil
}

func (d *authDomain) Logout(
	ctx context.Context, req *model.LogoutRequest,
) (*model.LogoutResponse, error) {
	return &model.LogoutResponse{
		CookieName: xcontext.Configs(ctx).Auth.AccessToken.Name,
	}, nil
}
