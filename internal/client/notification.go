package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/wastebounty/backend/pkg/api"
	"github.com/wastebounty/backend/pkg/pubsub"
	"github.com/wastebounty/backend/pkg/xcontext"
)

const (
	EventBountyClaimed       = "bounty_claimed"
	EventBountyCompleted     = "bounty_completed"
	EventRedemptionRequested = "redemption_requested"
)

type NotificationEvent struct {
	Type    string `mapstructure:"type"`
	Phone   string `mapstructure:"phone"`
	Message string `mapstructure:"message"`
}

// Notifier sends best-effort messages. It has no error to return because
// no caller is allowed to fail on it.
type Notifier interface {
	Notify(ctx context.Context, events ...NotificationEvent)
}

type notifier struct {
	publisher pubsub.Publisher
	topic     string
}

func NewNotifier(publisher pubsub.Publisher, topic string) *notifier {
	return &notifier{publisher: publisher, topic: topic}
}

func (n *notifier) Notify(ctx context.Context, events ...NotificationEvent) {
	for _, event := range events {
		if event.Phone == "" {
			continue
		}

		msg, err := EncodeNotificationEvent(event)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot encode notification event: %v", err)
			continue
		}

		err = n.publisher.Publish(ctx, n.topic, &pubsub.Pack{
			Key: []byte(event.Phone),
			Msg: msg,
		})
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot publish %s notification: %v", event.Type, err)
		}
	}
}

type noopNotifier struct{}

func NewNoopNotifier() *noopNotifier {
	return &noopNotifier{}
}

func (noopNotifier) Notify(context.Context, ...NotificationEvent) {}

func EncodeNotificationEvent(event NotificationEvent) ([]byte, error) {
	m := map[string]any{}
	if err := mapstructure.Decode(event, &m); err != nil {
		return nil, err
	}

	return json.Marshal(m)
}

func DecodeNotificationEvent(msg []byte) (NotificationEvent, error) {
	m := map[string]any{}
	if err := json.Unmarshal(msg, &m); err != nil {
		return NotificationEvent{}, err
	}

	var event NotificationEvent
	if err := mapstructure.Decode(m, &event); err != nil {
		return NotificationEvent{}, err
	}

	return event, nil
}

// RelayCaller delivers a message to a phone through the WhatsApp relay.
type RelayCaller interface {
	Send(ctx context.Context, phone, message string) error
}

type relayCaller struct {
	generator api.Generator
}

func NewRelayCaller(endpoint string) *relayCaller {
	return &relayCaller{generator: api.NewGenerator(endpoint)}
}

func (c *relayCaller) Send(ctx context.Context, phone, message string) error {
	resp, err := c.generator.New("/send").
		Body(api.JSON{"phone": phone, "message": message}).
		POST(ctx)
	if err != nil {
		return err
	}

	if resp.Code < 200 || resp.Code >= 300 {
		return fmt.Errorf("relay responded with status %d", resp.Code)
	}

	return nil
}
