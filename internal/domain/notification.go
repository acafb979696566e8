package domain

import (
	"context"
	"time"

	"github.com/wastebounty/backend/internal/client"
	"github.com/wastebounty/backend/pkg/pubsub"
	"github.com/wastebounty/backend/pkg/xcontext"
)

// NotificationDomain forwards queued notification events to the relay.
type NotificationDomain interface {
	Subscribe(ctx context.Context, pack *pubsub.Pack, t time.Time)
}

type notificationDomain struct {
	relay client.RelayCaller
}

func NewNotificationDomain(relay client.RelayCaller) NotificationDomain {
	return &notificationDomain{relay: relay}
}

// Subscribe never retries. A lost notification is acceptable.
func (d *notificationDomain) Subscribe(ctx context.Context, pack *pubsub.Pack, t time.Time) {
	event, err := client.DecodeNotificationEvent(pack.Msg)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot decode notification event: %v", err)
		return
	}

	if err := d.relay.Send(ctx, event.Phone, event.Message); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot relay %s notification published at %s: %v",
			event.Type, t.Format(time.RFC3339), err)
		return
	}

	xcontext.Logger(ctx).Debugf("Relayed %s notification", event.Type)
}
