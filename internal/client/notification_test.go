package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wastebounty/backend/pkg/pubsub"
	"github.com/wastebounty/backend/pkg/testutil"
)

func TestNotifier_Notify(t *testing.T) {
	publisher := &testutil.MockPublisher{}
	n := NewNotifier(publisher, "bounty_notification")

	n.Notify(context.Background(),
		NotificationEvent{Type: EventBountyClaimed, Phone: "6281", Message: "claimed"},
		NotificationEvent{Type: EventBountyClaimed, Message: "user without phone"},
	)

	packs := publisher.Packs()
	require.Len(t, packs, 1)
	require.Equal(t, []byte("6281"), packs[0].Key)

	event, err := DecodeNotificationEvent(packs[0].Msg)
	require.NoError(t, err)
	require.Equal(t, NotificationEvent{Type: EventBountyClaimed, Phone: "6281", Message: "claimed"}, event)
}

func TestNotifier_PublishFailureIsSwallowed(t *testing.T) {
	publisher := &testutil.MockPublisher{
		PublishFunc: func(context.Context, string, *pubsub.Pack) error {
			return errors.New("broker down")
		},
	}

	n := NewNotifier(publisher, "bounty_notification")
	require.NotPanics(t, func() {
		n.Notify(context.Background(), NotificationEvent{Type: EventBountyCompleted, Phone: "6281"})
	})
	require.Len(t, publisher.Packs(), 1)
}

func TestRelayCaller_Send(t *testing.T) {
	var got map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/send", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := NewRelayCaller(server.URL)
	require.NoError(t, c.Send(context.Background(), "6281", "hello"))
	require.Equal(t, map[string]string{"phone": "6281", "message": "hello"}, got)
}

func TestRelayCaller_Rejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	require.Error(t, NewRelayCaller(server.URL).Send(context.Background(), "6281", "hello"))
}
