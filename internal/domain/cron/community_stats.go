package cron

import (
	"context"
	"time"

	"github.com/wastebounty/backend/internal/domain"
	"github.com/wastebounty/backend/pkg/xcontext"
)

const communityStatsInterval = 5 * time.Minute

// CommunityStatsCronJob keeps the cached community counters warm so the
// stats endpoint rarely touches the database.
type CommunityStatsCronJob struct {
	statisticDomain domain.StatisticDomain
}

func NewCommunityStatsCronJob(statisticDomain domain.StatisticDomain) *CommunityStatsCronJob {
	return &CommunityStatsCronJob{statisticDomain: statisticDomain}
}

func (job *CommunityStatsCronJob) Do(ctx context.Context) {
	stats, err := job.statisticDomain.RefreshCommunityStats(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot refresh community stats: %v", err)
		return
	}

	xcontext.Logger(ctx).Infof("Community stats refreshed: %d active, %d cleaned, %d users",
		stats.ActiveBountiesCount, stats.TotalCleanedLocations, stats.CommunityUsersCount)
}

func (job *CommunityStatsCronJob) RunNow() bool {
	return true
}

func (job *CommunityStatsCronJob) Next() time.Time {
	return time.Now().Add(communityStatsInterval)
}
