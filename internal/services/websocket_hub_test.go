package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendMessageQueuesWhileConnected(t *testing.T) {
	hub := NewWebSocketHub()
	client := hub.NewClient("c1", nil)

	client.SendMessage(WSMessage{Type: WSTypePong})

	select {
	case data := <-client.Send:
		assert.Contains(t, string(data), WSTypePong)
	default:
		t.Fatal("expected a queued message")
	}
}

func TestSendMessageAfterDisconnectIsDropped(t *testing.T) {
	hub := NewWebSocketHub()
	go hub.Run()

	client := hub.NewClient("c1", nil)
	hub.Register(client)
	hub.Unregister(client)

	require.Eventually(t, func() bool {
		return hub.GetClientCount() == 0
	}, time.Second, 5*time.Millisecond)

	// A debounced name-check reply runs on its own timer goroutine and
	// can land well after the connection went away.
	assert.NotPanics(t, func() {
		client.SendMessage(WSMessage{
			Type:    WSTypeNameCheckResult,
			Payload: NameCheckPayload{Name: "Georgia", Available: true},
		})
	})
}

func TestCloseSendIsIdempotent(t *testing.T) {
	hub := NewWebSocketHub()
	client := hub.NewClient("c1", nil)

	assert.NotPanics(t, func() {
		client.closeSend()
		client.closeSend()
	})
}
