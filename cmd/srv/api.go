package main

import (
	"net/http"

	"github.com/urfave/cli/v2"
	"github.com/wastebounty/backend/internal/middleware"
	"github.com/wastebounty/backend/pkg/prometheus"
	"github.com/wastebounty/backend/pkg/router"
	"github.com/wastebounty/backend/pkg/xcontext"
)

func (s *srv) startApi(*cli.Context) error {
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	s.migrateDB()
	s.loadRedisClient()
	s.loadStorage()
	s.loadPublisher()
	s.loadClassifier()
	s.loadRepos()
	s.loadDomains()
	s.loadRouter()

	cfg := xcontext.Configs(s.ctx)
	s.server = &http.Server{
		Addr:    cfg.ApiServer.Address(),
		Handler: s.router.Handler(cfg.ApiServer.ServerConfigs),
	}

	xcontext.Logger(s.ctx).Infof("Starting server on port: %s", cfg.ApiServer.Port)
	if err := s.server.ListenAndServe(); err != nil {
		return err
	}

	xcontext.Logger(s.ctx).Infof("Server stop")
	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.ctx)
	s.router.AddCloser(middleware.Logger())
	s.router.AddCloser(middleware.Prometheus())
	s.router.Handle("/metrics", prometheus.NewHandler())
	s.router.Static("/static/", "./web")

	// Auth API
	authRouter := s.router.Branch()
	authRouter.After(middleware.HandleSaveSession())
	authRouter.After(middleware.HandleSetCookies())
	{
		router.POST(authRouter, "/register", s.authDomain.Register)
		router.POST(authRouter, "/login", s.authDomain.Login)
		router.POST(authRouter, "/logout", s.authDomain.Logout)
	}

	// These following APIs need an authenticated user.
	authVerifier := middleware.NewAuthVerifier().WithAccessToken().WithSession()
	needAuthRouter := s.router.Branch()
	needAuthRouter.Before(authVerifier.Middleware())
	{
		// User API
		router.GET(needAuthRouter, "/getMe", s.userDomain.GetMe)

		// Bounty API
		router.POST(needAuthRouter, "/createBounty", s.bountyDomain.Create)
		router.POST(needAuthRouter, "/claimBounty", s.bountyDomain.Claim)
		router.POST(needAuthRouter, "/completeBounty", s.bountyDomain.Complete)
		router.GET(needAuthRouter, "/getMyBounties", s.bountyDomain.GetMyBounties)

		// Redemption API
		router.POST(needAuthRouter, "/requestRedemption", s.redemptionDomain.Request)
		router.GET(needAuthRouter, "/getMyRedemptions", s.redemptionDomain.GetMyRedemptions)
	}

	// Public API, personalized when the caller is authenticated.
	optionalAuthRouter := s.router.Branch()
	optionalAuthRouter.Before(middleware.NewAuthVerifier().WithAccessToken().WithSession().Optional().Middleware())
	{
		router.GET(optionalAuthRouter, "/getPoints", s.userDomain.GetPoints)
		router.GET(optionalAuthRouter, "/getStats", s.statisticDomain.GetStats)
		router.GET(optionalAuthRouter, "/getBounty", s.bountyDomain.Get)
		router.GET(optionalAuthRouter, "/getListBounty", s.bountyDomain.GetList)
	}
}
