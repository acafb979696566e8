package domain

import (
	"context"
	"errors"

	"github.com/wastebounty/backend/internal/domain/ledger"
	"github.com/wastebounty/backend/internal/model"
	"github.com/wastebounty/backend/internal/repository"
	"github.com/wastebounty/backend/pkg/errorx"
	"github.com/wastebounty/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type UserDomain interface {
	GetMe(context.Context, *model.GetMeRequest) (*model.GetMeResponse, error)
	GetPoints(context.Context, *model.GetPointsRequest) (*model.GetPointsResponse, error)
}

type userDomain struct {
	userRepo repository.UserRepository
	ledger   ledger.Ledger
}

func NewUserDomain(userRepo repository.UserRepository, ledger ledger.Ledger) UserDomain {
	return &userDomain{userRepo: userRepo, ledger: ledger}
}

func (d *userDomain) GetMe(ctx context.Context, req *model.GetMeRequest) (*model.GetMeResponse, error) {
	userID, err := requestUserID(ctx)
	if err != nil {
		return nil, err
	}

	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	points, err := d.ledger.Balance(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get balance: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetMeResponse{User: model.ConvertUser(user), Points: points}, nil
}

// GetPoints answers 0 for anonymous callers.
func (d *userDomain) GetPoints(
	ctx context.Context, req *model.GetPointsRequest,
) (*model.GetPointsResponse, error) {
	points, err := d.ledger.Balance(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get balance: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetPointsResponse{Points: points}, nil
}
