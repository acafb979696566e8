// Package ledger computes redeemable point balances. It never writes.
package ledger

import (
	"context"

	"github.com/wastebounty/backend/internal/repository"
)

type Ledger interface {
	Balance(ctx context.Context, userID string) (int, error)
}

type ledger struct {
	bountyRepo     repository.BountyRepository
	redemptionRepo repository.RewardRedemptionRepository
}

func New(
	bountyRepo repository.BountyRepository,
	redemptionRepo repository.RewardRedemptionRepository,
) *ledger {
	return &ledger{
		bountyRepo:     bountyRepo,
		redemptionRepo: redemptionRepo,
	}
}

// Balance is max(0, earned - reserved). Call it with a transaction context
// to read a consistent snapshot.
func (l *ledger) Balance(ctx context.Context, userID string) (int, error) {
	if userID == "" {
		return 0, nil
	}

	earned, err := l.bountyRepo.SumEarned(ctx, userID)
	if err != nil {
		return 0, err
	}

	reserved, err := l.redemptionRepo.SumReserved(ctx, userID)
	if err != nil {
		return 0, err
	}

	if earned <= reserved {
		return 0, nil
	}

	return int(earned - reserved), nil
}
