package main

import (
	"github.com/urfave/cli/v2"
	"github.com/wastebounty/backend/internal/domain"
	"github.com/wastebounty/backend/internal/domain/cron"
	"github.com/wastebounty/backend/internal/domain/ledger"
	"github.com/wastebounty/backend/pkg/xcontext"
)

func (s *srv) startCron(*cli.Context) error {
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	s.migrateDB()
	s.loadRedisClient()
	s.loadRepos()

	s.ledger = ledger.New(s.bountyRepo, s.redemptionRepo)
	s.statisticDomain = domain.NewStatisticDomain(s.bountyRepo, s.userRepo, s.ledger, s.redisClient)

	ctx, stop := s.withShutdown()
	defer stop()

	cronJobManager := cron.NewCronJobManager()
	cronJobManager.Register(cron.NewCommunityStatsCronJob(s.statisticDomain))
	cronJobManager.Start(ctx)

	return nil
}
