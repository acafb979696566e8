package main

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/sessions"
	"github.com/urfave/cli/v2"
	"github.com/wastebounty/backend/config"
	"github.com/wastebounty/backend/internal/client"
	"github.com/wastebounty/backend/internal/domain"
	"github.com/wastebounty/backend/internal/domain/detection"
	"github.com/wastebounty/backend/internal/domain/ledger"
	"github.com/wastebounty/backend/internal/domain/lifecycle"
	"github.com/wastebounty/backend/internal/repository"
	"github.com/wastebounty/backend/migration"
	"github.com/wastebounty/backend/pkg/authenticator"
	"github.com/wastebounty/backend/pkg/kafka"
	"github.com/wastebounty/backend/pkg/keylock"
	"github.com/wastebounty/backend/pkg/logger"
	"github.com/wastebounty/backend/pkg/pubsub"
	"github.com/wastebounty/backend/pkg/router"
	"github.com/wastebounty/backend/pkg/storage"
	"github.com/wastebounty/backend/pkg/xcontext"
	"github.com/wastebounty/backend/pkg/xredis"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type srv struct {
	ctx context.Context
	app *cli.App

	userRepo       repository.UserRepository
	bountyRepo     repository.BountyRepository
	redemptionRepo repository.RewardRedemptionRepository

	ledger          ledger.Ledger
	bountyMachine   *lifecycle.BountyMachine
	redemptionQueue *lifecycle.RedemptionQueue

	authDomain         domain.AuthDomain
	userDomain         domain.UserDomain
	bountyDomain       domain.BountyDomain
	redemptionDomain   domain.RedemptionDomain
	statisticDomain    domain.StatisticDomain
	notificationDomain domain.NotificationDomain

	publisher   pubsub.Publisher
	redisClient xredis.Client
	storage     storage.Storage
	classifier  client.DetectionClassifier
	notifier    client.Notifier

	router *router.Router
	server *http.Server

	// closers run when the command returns.
	closers []func(context.Context) error
}

// setup runs before every command.
func (s *srv) setup(cctx *cli.Context) error {
	cfg, err := config.Load(cctx.String("config"))
	if err != nil {
		return err
	}

	s.ctx = xcontext.WithConfigs(s.ctx, cfg)
	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLogger(cfg.LogLevel))
	s.ctx = xcontext.WithHTTPClient(s.ctx, &http.Client{Timeout: cfg.Classifier.Timeout})
	s.ctx = xcontext.WithTokenEngine(s.ctx, authenticator.NewTokenEngine(cfg.Auth.TokenSecret))
	s.ctx = xcontext.WithSessionStore(s.ctx, s.newSessionStore(cfg.Session))
	return nil
}

func (s *srv) teardown(*cli.Context) error {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](s.ctx); err != nil {
			xcontext.Logger(s.ctx).Warnf("Cannot close resource: %v", err)
		}
	}

	return nil
}

func (s *srv) newSessionStore(cfg config.SessionConfigs) sessions.Store {
	store := sessions.NewCookieStore([]byte(cfg.Secret))
	store.Options.HttpOnly = true
	store.Options.SameSite = http.SameSiteLaxMode
	return store
}

func (s *srv) newDatabase() *gorm.DB {
	cfg := xcontext.Configs(s.ctx).Database

	var dialector gorm.Dialector
	switch strings.ToLower(cfg.Driver) {
	case "mysql":
		dialector = mysql.New(mysql.Config{
			DSN:                       cfg.ConnectionString(),
			DefaultStringSize:         256,
			DisableDatetimePrecision:  true,
			DontSupportRenameIndex:    true,
			DontSupportRenameColumn:   true,
			SkipInitializeWithVersion: false,
		})
	case "sqlite", "":
		dialector = sqlite.Open(cfg.File)
	default:
		log.Fatalf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		panic(err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		panic(err)
	}

	sqlDB.SetConnMaxLifetime(time.Hour)
	if cfg.Driver == "sqlite" || cfg.Driver == "" {
		// A single writer avoids "database is locked" under concurrent requests.
		sqlDB.SetMaxOpenConns(1)
	}

	s.closers = append(s.closers, func(context.Context) error { return sqlDB.Close() })
	return db
}

func (s *srv) migrateDB() {
	if err := migration.Migrate(s.ctx); err != nil {
		panic(err)
	}
}

func (s *srv) loadRedisClient() {
	var err error
	s.redisClient, err = xredis.NewClient(s.ctx)
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadStorage() {
	var err error
	s.storage, err = storage.NewS3Storage(xcontext.Configs(s.ctx).Storage)
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadPublisher() {
	cfg := xcontext.Configs(s.ctx)
	if !cfg.Notification.Enable {
		s.notifier = client.NewNoopNotifier()
		return
	}

	publisher, err := kafka.NewPublisher("api", []string{cfg.Kafka.Addr})
	if err != nil {
		panic(err)
	}

	s.publisher = publisher
	s.notifier = client.NewNotifier(publisher, cfg.Notification.Topic)
	s.closers = append(s.closers, publisher.Stop)
}

func (s *srv) loadClassifier() {
	s.classifier = client.NewDetectionClassifier(xcontext.Configs(s.ctx).Classifier)
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.bountyRepo = repository.NewBountyRepository()
	s.redemptionRepo = repository.NewRewardRedemptionRepository()
}

func (s *srv) loadLifecycle() {
	cfg := xcontext.Configs(s.ctx)
	locks := keylock.New()

	s.ledger = ledger.New(s.bountyRepo, s.redemptionRepo)
	s.bountyMachine = lifecycle.NewBountyMachine(
		s.bountyRepo,
		s.userRepo,
		s.notifier,
		detection.NewPolicy(cfg.Bounty),
		locks,
	)
	s.redemptionQueue = lifecycle.NewRedemptionQueue(
		s.redemptionRepo,
		s.userRepo,
		s.ledger,
		s.notifier,
		locks,
		cfg.Redemption,
	)
}

func (s *srv) loadDomains() {
	s.loadLifecycle()

	s.authDomain = domain.NewAuthDomain(s.userRepo)
	s.userDomain = domain.NewUserDomain(s.userRepo, s.ledger)
	s.bountyDomain = domain.NewBountyDomain(s.bountyRepo, s.bountyMachine, s.classifier, s.storage)
	s.redemptionDomain = domain.NewRedemptionDomain(s.redemptionRepo, s.redemptionQueue, s.ledger)
	s.statisticDomain = domain.NewStatisticDomain(s.bountyRepo, s.userRepo, s.ledger, s.redisClient)
}
