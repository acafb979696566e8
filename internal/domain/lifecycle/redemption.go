package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/wastebounty/backend/config"
	"github.com/wastebounty/backend/internal/client"
	"github.com/wastebounty/backend/internal/common"
	"github.com/wastebounty/backend/internal/domain/ledger"
	"github.com/wastebounty/backend/internal/entity"
	"github.com/wastebounty/backend/internal/repository"
	"github.com/wastebounty/backend/pkg/errorx"
	"github.com/wastebounty/backend/pkg/idutil"
	"github.com/wastebounty/backend/pkg/keylock"
	"github.com/wastebounty/backend/pkg/xcontext"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

type RedemptionRequest struct {
	WalletType string
	FullName   string
	Phone      string

	// Amount defaults to the whole balance when nil.
	Amount *int
}

type RedemptionQueue struct {
	redemptionRepo repository.RewardRedemptionRepository
	userRepo       repository.UserRepository
	ledger         ledger.Ledger
	notifier       client.Notifier
	locks          *keylock.Locker
	cfg            config.RedemptionConfigs
	now            func() time.Time
}

func NewRedemptionQueue(
	redemptionRepo repository.RewardRedemptionRepository,
	userRepo repository.UserRepository,
	ledger ledger.Ledger,
	notifier client.Notifier,
	locks *keylock.Locker,
	cfg config.RedemptionConfigs,
) *RedemptionQueue {
	if len(cfg.Wallets) == 0 {
		cfg.Wallets = config.DefaultWallets()
	}

	if cfg.PointsToCurrencyRate <= 0 {
		cfg.PointsToCurrencyRate = config.PointsToCurrencyRate
	}

	return &RedemptionQueue{
		redemptionRepo: redemptionRepo,
		userRepo:       userRepo,
		ledger:         ledger,
		notifier:       notifier,
		locks:          locks,
		cfg:            cfg,
		now:            time.Now,
	}
}

func userLockKey(id string) string {
	return "user/" + id
}

// Request enqueues a PENDING redemption. The balance read and the insert
// happen under the user's lock, so two concurrent requests cannot both
// spend the same points.
func (q *RedemptionQueue) Request(
	ctx context.Context, userID string, req RedemptionRequest,
) (*entity.RewardRedemption, error) {
	walletType := strings.ToUpper(strings.TrimSpace(req.WalletType))
	if !slices.Contains(q.cfg.Wallets, walletType) {
		return nil, errorx.New(errorx.InvalidWallet, "Wallet %s is not supported", req.WalletType)
	}

	fullName := strings.TrimSpace(req.FullName)
	phone := strings.TrimSpace(req.Phone)
	if fullName == "" || phone == "" {
		return nil, errorx.New(errorx.MissingField, "Full name and phone are required")
	}

	unlock := q.locks.Lock(userLockKey(userID))
	defer unlock()

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if _, err := q.userRepo.GetByIDForUpdate(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot lock user: %v", err)
		return nil, errorx.Unknown
	}

	balance, err := q.ledger.Balance(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get balance: %v", err)
		return nil, errorx.Unknown
	}

	if balance <= 0 {
		return nil, errorx.New(errorx.InsufficientBalance, "You have no points to redeem")
	}

	points := balance
	if req.Amount != nil {
		points = *req.Amount
		if points <= 0 {
			return nil, errorx.New(errorx.InvalidAmount, "Amount must be a positive number")
		}

		if points > balance {
			return nil, errorx.New(errorx.ExceedsBalance, "Amount %d exceeds your balance of %d", points, balance)
		}
	}

	redemption := &entity.RewardRedemption{
		SnowFlakeBase: entity.SnowFlakeBase{ID: idutil.NextSnowflake()},
		UserID:        userID,
		WalletType:    walletType,
		FullName:      fullName,
		Phone:         phone,
		Points:        points,
		Amount:        points * q.cfg.PointsToCurrencyRate,
		Status:        entity.RedemptionPending,
		RequestedAt:   q.now(),
	}

	if err := q.redemptionRepo.Create(ctx, redemption); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create redemption: %v", err)
		return nil, errorx.Unknown
	}

	ctx, err = xcontext.WithCommitDBTransaction(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit redemption: %v", err)
		return nil, errorx.Unknown
	}

	common.IncRedemptionRequest(walletType)
	q.notifier.Notify(ctx, client.NotificationEvent{
		Type:  client.EventRedemptionRequested,
		Phone: phone,
		Message: fmt.Sprintf("Your request to redeem %d points to %s is waiting for review.",
			points, walletType),
	})

	return redemption, nil
}
