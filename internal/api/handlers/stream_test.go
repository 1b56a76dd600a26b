package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"nursery-locator/internal/api/dto"
	"nursery-locator/internal/domain"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func viewNumbered(n int) domain.View {
	return domain.View{Panel: domain.DetailPanel{Kind: domain.PanelNearest, Capacity: n}}
}

// streamServer upgrades every request and subscribes it to sessionID on hub.
func streamServer(t *testing.T, hub *ViewHub, sessionID string, current func() (domain.View, error)) *httptest.Server {
	t.Helper()

	up := NewUpgrader(nil)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := up.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		if err := hub.Subscribe(sessionID, conn, current); err != nil {
			conn.Close()
			return
		}
		defer hub.Unsubscribe(sessionID, conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dialStream(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()

	conn, res, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	res.Body.Close()
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readPanel(t *testing.T, conn *websocket.Conn) dto.PanelResponse {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var msg struct {
		Type    string           `json:"type"`
		Payload dto.ViewResponse `json:"payload"`
	}
	require.NoError(t, conn.ReadJSON(&msg))
	require.Equal(t, "view", msg.Type)
	return msg.Payload.Panel
}

func TestViewHubStalledSubscriberDoesNotBlockPublish(t *testing.T) {
	hub := NewViewHub()
	srv := streamServer(t, hub, "s-1", func() (domain.View, error) { return viewNumbered(0), nil })

	conn := dialStream(t, srv)
	readPanel(t, conn)
	require.Equal(t, 1, hub.Subscribers("s-1"))

	// The client stops reading; large views fill the socket buffers quickly.
	big := viewNumbered(1)
	big.Markers = []domain.Marker{{Kind: domain.MarkerFacility, Popup: strings.Repeat("x", 256<<10)}}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			hub.Publish("s-1", big)
		}
	}()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("Publish blocked on a stalled subscriber")
	}
	assert.Equal(t, 0, hub.Subscribers("s-1"), "stalled subscriber should be dropped")
}

func TestViewHubStreamEndsOnLatestView(t *testing.T) {
	hub := NewViewHub()

	// Mirrors the locator: the session is saved, then the view is published.
	var stored atomic.Int64
	current := func() (domain.View, error) { return viewNumbered(int(stored.Load())), nil }
	srv := streamServer(t, hub, "s-1", current)

	const clicks = 10
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 1; i <= clicks; i++ {
			stored.Store(int64(i))
			hub.Publish("s-1", viewNumbered(i))
		}
	}()

	conn := dialStream(t, srv)
	wg.Wait()

	// Nothing is published after the loop, so the last message must be the
	// final stored view whether or not the clicks raced the subscription.
	last := -1
	for last != clicks {
		got := readPanel(t, conn).Capacity
		if got < last {
			t.Fatalf("stream went backwards: %d after %d", got, last)
		}
		last = got
	}
}

func TestViewHubSubscribeError(t *testing.T) {
	hub := NewViewHub()
	srv := streamServer(t, hub, "s-1", func() (domain.View, error) { return domain.View{}, assert.AnError })

	conn := dialStream(t, srv)
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
	assert.Equal(t, 0, hub.Subscribers("s-1"))
}
