package domain

import (
	"context"
	"errors"

	"github.com/wastebounty/backend/internal/common"
	"github.com/wastebounty/backend/internal/domain/ledger"
	"github.com/wastebounty/backend/internal/entity"
	"github.com/wastebounty/backend/internal/model"
	"github.com/wastebounty/backend/internal/repository"
	"github.com/wastebounty/backend/pkg/errorx"
	"github.com/wastebounty/backend/pkg/xcontext"
	"github.com/wastebounty/backend/pkg/xredis"
	"golang.org/x/sync/errgroup"
)

type StatisticDomain interface {
	GetStats(context.Context, *model.GetStatsRequest) (*model.GetStatsResponse, error)
	RefreshCommunityStats(context.Context) (*model.CommunityStats, error)
}

type statisticDomain struct {
	bountyRepo  repository.BountyRepository
	userRepo    repository.UserRepository
	ledger      ledger.Ledger
	redisClient xredis.Client
}

func NewStatisticDomain(
	bountyRepo repository.BountyRepository,
	userRepo repository.UserRepository,
	ledger ledger.Ledger,
	redisClient xredis.Client,
) StatisticDomain {
	return &statisticDomain{
		bountyRepo:  bountyRepo,
		userRepo:    userRepo,
		ledger:      ledger,
		redisClient: redisClient,
	}
}

// GetStats serves the community counters from cache and falls back to the
// database when the cache is cold. TotalPoints is the caller's balance.
func (d *statisticDomain) GetStats(
	ctx context.Context, req *model.GetStatsRequest,
) (*model.GetStatsResponse, error) {
	var stats model.CommunityStats
	err := d.redisClient.GetObj(ctx, common.CommunityStatsKey, &stats)
	if err != nil {
		if !errors.Is(err, xredis.ErrNotFound) {
			xcontext.Logger(ctx).Warnf("Cannot read community stats from cache: %v", err)
		}

		fresh, err := d.RefreshCommunityStats(ctx)
		if err != nil {
			return nil, err
		}
		stats = *fresh
	}

	points, err := d.ledger.Balance(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get balance: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetStatsResponse{CommunityStats: stats, TotalPoints: points}, nil
}

// RefreshCommunityStats recomputes the counters and stores them in cache.
func (d *statisticDomain) RefreshCommunityStats(ctx context.Context) (*model.CommunityStats, error) {
	stats := model.CommunityStats{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats.ActiveBountiesCount, err = d.bountyRepo.CountByStatus(
			gctx, entity.BountyOpen, entity.BountyClaimed)
		return err
	})
	g.Go(func() error {
		var err error
		stats.TotalCleanedLocations, err = d.bountyRepo.CountByStatus(gctx, entity.BountyCompleted)
		return err
	})
	g.Go(func() error {
		var err error
		stats.CommunityUsersCount, err = d.userRepo.Count(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count community stats: %v", err)
		return nil, errorx.Unknown
	}

	err := d.redisClient.SetObj(ctx, common.CommunityStatsKey, stats, common.CommunityStatsTTL)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot cache community stats: %v", err)
	}

	return &stats, nil
}
