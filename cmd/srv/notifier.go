package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
	"github.com/wastebounty/backend/internal/client"
	"github.com/wastebounty/backend/internal/domain"
	"github.com/wastebounty/backend/pkg/kafka"
	"github.com/wastebounty/backend/pkg/xcontext"
)

func (s *srv) startNotifier(*cli.Context) error {
	cfg := xcontext.Configs(s.ctx)
	s.notificationDomain = domain.NewNotificationDomain(
		client.NewRelayCaller(cfg.Notification.RelayEndpoint))

	subscriber, err := kafka.NewSubscriber(
		"notifier",
		[]string{cfg.Kafka.Addr},
		[]string{cfg.Notification.Topic},
		s.notificationDomain.Subscribe,
	)
	if err != nil {
		return err
	}
	s.closers = append(s.closers, subscriber.Stop)

	ctx, stop := s.withShutdown()
	defer stop()

	xcontext.Logger(s.ctx).Infof("Notifier subscribed to %s", cfg.Notification.Topic)
	subscriber.Subscribe(ctx)
	return nil
}

func (s *srv) withShutdown() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(s.ctx, os.Interrupt, syscall.SIGTERM)
}
