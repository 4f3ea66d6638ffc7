package live

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEvent struct {
	Type    string `json:"type"`
	Payload int    `json:"payload"`
}

func startHub(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	go hub.Run(ctx)

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Attach(conn, r.URL.Query().Get("room"))
	}))

	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server, room string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?room=" + room
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHub_BroadcastToRoom(t *testing.T) {
	hub, srv := startHub(t)

	badgeConn := dial(t, srv, "badge_7")
	otherConn := dial(t, srv, "badge_8")

	require.Eventually(t, func() bool {
		return hub.RoomSize("badge_7") == 1 && hub.RoomSize("badge_8") == 1
	}, 2*time.Second, 10*time.Millisecond)

	hub.BroadcastToRoom("badge_7", testEvent{Type: "BADGE_UPDATED", Payload: 7})

	var got testEvent
	require.NoError(t, badgeConn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, badgeConn.ReadJSON(&got))
	assert.Equal(t, testEvent{Type: "BADGE_UPDATED", Payload: 7}, got)

	// В другую комнату сообщение не попадает
	require.NoError(t, otherConn.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err := otherConn.ReadMessage()
	assert.Error(t, err)
}

func TestHub_UnregisterOnDisconnect(t *testing.T) {
	hub, srv := startHub(t)

	conn := dial(t, srv, "tournament_3")
	require.Eventually(t, func() bool { return hub.RoomSize("tournament_3") == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return hub.RoomSize("tournament_3") == 0 }, 2*time.Second, 10*time.Millisecond)

	// Рассылка в пустую комнату ничего не ломает
	hub.BroadcastToRoom("tournament_3", testEvent{Type: "TEAM_UPDATED"})
}
