package socket

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	var msg Message
	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	_, p, err := conn.ReadMessage()
	require.NoError(t, err, "failed to read message from websocket")
	require.NoError(t, json.Unmarshal(p, &msg))
	return msg
}

func TestHubBroadcast(t *testing.T) {
	hub := NewHub()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ServeWs(hub, w, r, r.URL.Query().Get("user_id"))
	}))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")

	conn1, _, err := websocket.DefaultDialer.Dial(wsURL+"?user_id=u1", nil)
	require.NoError(t, err)
	defer conn1.Close()
	conn2, _, err := websocket.DefaultDialer.Dial(wsURL+"?user_id=u2", nil)
	require.NoError(t, err)
	defer conn2.Close()

	require.Eventually(t, func() bool { return hub.Online() == 2 }, time.Second, 10*time.Millisecond)

	require.NoError(t, hub.Broadcast("like_notification", map[string]any{"action": "liked"}))

	for _, conn := range []*websocket.Conn{conn1, conn2} {
		msg := readMessage(t, conn)
		assert.Equal(t, "like_notification", msg.Event)
		assert.Equal(t, map[string]any{"action": "liked"}, msg.Payload)
		assert.NotEmpty(t, msg.Timestamp)
	}
}

func TestHubUnregisterOnClose(t *testing.T) {
	hub := NewHub()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ServeWs(hub, w, r, "u1")
	}))
	defer server.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http"), nil)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return hub.Online() == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return hub.Online() == 0 }, time.Second, 10*time.Millisecond)

	// 无连接时广播不报错
	assert.NoError(t, hub.Broadcast("like_notification", nil))
}
