package domain

import (
	"context"

	"github.com/wastebounty/backend/internal/domain/ledger"
	"github.com/wastebounty/backend/internal/domain/lifecycle"
	"github.com/wastebounty/backend/internal/model"
	"github.com/wastebounty/backend/internal/repository"
	"github.com/wastebounty/backend/pkg/errorx"
	"github.com/wastebounty/backend/pkg/xcontext"
)

type RedemptionDomain interface {
	Request(context.Context, *model.RequestRedemptionRequest) (*model.RequestRedemptionResponse, error)
	GetMyRedemptions(context.Context, *model.GetMyRedemptionsRequest) (*model.GetMyRedemptionsResponse, error)
}

type redemptionDomain struct {
	redemptionRepo repository.RewardRedemptionRepository
	queue          *lifecycle.RedemptionQueue
	ledger         ledger.Ledger
}

func NewRedemptionDomain(
	redemptionRepo repository.RewardRedemptionRepository,
	queue *lifecycle.RedemptionQueue,
	ledger ledger.Ledger,
) RedemptionDomain {
	return &redemptionDomain{
		redemptionRepo: redemptionRepo,
		queue:          queue,
		ledger:         ledger,
	}
}

func (d *redemptionDomain) Request(
	ctx context.Context, req *model.RequestRedemptionRequest,
) (*model.RequestRedemptionResponse, error) {
	userID, err := requestUserID(ctx)
	if err != nil {
		return nil, err
	}

	redemption, err := d.queue.Request(ctx, userID, lifecycle.RedemptionRequest{
		WalletType: req.WalletType,
		FullName:   req.FullName,
		Phone:      req.Phone,
		Amount:     req.Amount,
	})
	if err != nil {
		return nil, err
	}

	resp := model.RequestRedemptionResponse(model.ConvertRedemption(redemption))
	return &resp, nil
}

func (d *redemptionDomain) GetMyRedemptions(
	ctx context.Context, req *model.GetMyRedemptionsRequest,
) (*model.GetMyRedemptionsResponse, error) {
	userID, err := requestUserID(ctx)
	if err != nil {
		return nil, err
	}

	limit, err := normalizeLimit(ctx, req.Limit)
	if err != nil {
		return nil, err
	}

	redemptions, err := d.redemptionRepo.GetByUserID(ctx, userID, req.Offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get redemptions: %v", err)
		return nil, errorx.Unknown
	}

	balance, err := d.ledger.Balance(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get balance: %v", err)
		return nil, errorx.Unknown
	}

	result := make([]model.Redemption, 0, len(redemptions))
	for i := range redemptions {
		result = append(result, model.ConvertRedemption(&redemptions[i]))
	}

	return &model.GetMyRedemptionsResponse{Redemptions: result, Balance: balance}, nil
}
