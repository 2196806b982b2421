package stream

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/runboard/internal/contracts"
	"github.com/wonny/runboard/internal/roster"
	"github.com/wonny/runboard/pkg/logger"
)

func startHub(t *testing.T, store *roster.Store) (string, *Hub) {
	t.Helper()

	hub := NewHub(store, logger.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	srv := httptest.NewServer(hub)
	go hub.Run(ctx)

	t.Cleanup(func() {
		cancel()
		srv.Close()
	})
	return "ws" + strings.TrimPrefix(srv.URL, "http"), hub
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg Message
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func TestHub_SendsCurrentOnConnect(t *testing.T) {
	store := roster.NewStore(logger.Nop())
	_, err := store.Install(&contracts.Roster{ID: "gen-1", Year: "2025", Unit: "km"})
	require.NoError(t, err)

	url, _ := startHub(t, store)
	conn := dial(t, url)

	msg := readMessage(t, conn)
	assert.Equal(t, "current", msg.Event)
	assert.Equal(t, "gen-1", msg.Data.ID)
}

func TestHub_BroadcastsInstalls(t *testing.T) {
	store := roster.NewStore(logger.Nop())
	url, hub := startHub(t, store)
	conn := dial(t, url)

	require.Eventually(t, func() bool { return hub.Count() == 1 }, time.Second, 10*time.Millisecond)

	_, err := store.Install(&contracts.Roster{ID: "gen-2", Year: "2025", Unit: "mi"})
	require.NoError(t, err)

	msg := readMessage(t, conn)
	assert.Equal(t, "generation", msg.Event)
	assert.Equal(t, "gen-2", msg.Data.ID)
	assert.Equal(t, "mi", msg.Data.Unit)
	assert.Equal(t, uint64(1), msg.Data.Sequence)
}

func TestHub_UnregistersOnDisconnect(t *testing.T) {
	store := roster.NewStore(logger.Nop())
	url, hub := startHub(t, store)

	conn := dial(t, url)
	require.Eventually(t, func() bool { return hub.Count() == 1 }, time.Second, 10*time.Millisecond)

	conn.Close()
	assert.Eventually(t, func() bool { return hub.Count() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_BroadcastRacesUnregister(t *testing.T) {
	hub := NewHub(roster.NewStore(logger.Nop()), logger.Nop())

	for round := 0; round < 50; round++ {
		clients := make([]*client, 200)
		for i := range clients {
			clients[i] = &client{send: make(chan []byte, sendBufSize)}
			hub.register(clients[i])
		}

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			for _, c := range clients {
				hub.unregister(c)
			}
		}()
		go func() {
			defer wg.Done()
			for i := 0; i < 20; i++ {
				assert.NotPanics(t, func() {
					hub.broadcast(Message{Event: "generation", Data: roster.GenerationInfo{ID: "gen"}})
				})
			}
		}()
		wg.Wait()

		require.Equal(t, 0, hub.Count())
	}
}

func TestHub_OfferAfterClose(t *testing.T) {
	hub := NewHub(roster.NewStore(logger.Nop()), logger.Nop())
	c := &client{send: make(chan []byte, 1)}
	hub.register(c)

	assert.True(t, hub.offer(c, []byte("a")))
	assert.False(t, hub.offer(c, []byte("b")), "full buffer")

	hub.closeAll()
	assert.NotPanics(t, func() {
		assert.False(t, hub.offer(c, []byte("c")))
		hub.unregister(c)
	})
}

func TestHub_BroadcastDropsFullClient(t *testing.T) {
	hub := NewHub(roster.NewStore(logger.Nop()), logger.Nop())
	c := &client{send: make(chan []byte, 1)}
	hub.register(c)

	hub.broadcast(Message{Event: "generation"})
	require.Equal(t, 1, hub.Count())

	hub.broadcast(Message{Event: "generation"})
	assert.Equal(t, 0, hub.Count())

	_, open := <-c.send
	assert.True(t, open, "queued message still readable")
	_, open = <-c.send
	assert.False(t, open)
}
