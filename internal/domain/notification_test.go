package domain

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/wastebounty/backend/internal/client"
	"github.com/wastebounty/backend/pkg/pubsub"
	"github.com/wastebounty/backend/pkg/testutil"
)

type mockRelay struct {
	err  error
	sent [][2]string
}

func (m *mockRelay) Send(ctx context.Context, phone, message string) error {
	m.sent = append(m.sent, [2]string{phone, message})
	return m.err
}

func TestNotificationDomain_Subscribe(t *testing.T) {
	ctx := testutil.MockContext()
	relay := &mockRelay{}
	d := NewNotificationDomain(relay)

	msg, err := client.EncodeNotificationEvent(client.NotificationEvent{
		Type:    client.EventBountyClaimed,
		Phone:   "62811",
		Message: "claimed",
	})
	require.NoError(t, err)

	d.Subscribe(ctx, &pubsub.Pack{Key: []byte("62811"), Msg: msg}, time.Now())
	require.Equal(t, [][2]string{{"62811", "claimed"}}, relay.sent)

	d.Subscribe(ctx, &pubsub.Pack{Msg: []byte("not json")}, time.Now())
	require.Len(t, relay.sent, 1)

	relay.err = errors.New("relay down")
	require.NotPanics(t, func() {
		d.Subscribe(ctx, &pubsub.Pack{Msg: msg}, time.Now())
	})
	require.Len(t, relay.sent, 2)
}
