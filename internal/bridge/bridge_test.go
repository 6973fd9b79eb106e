package bridge

import (
	"encoding/json"
	"io"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/sethgrid/catflip/internal/art"
	"github.com/sethgrid/catflip/internal/catalog"
	"github.com/sethgrid/catflip/internal/game"
	"github.com/sethgrid/catflip/internal/wellbeing"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	cat := catalog.Default()
	h := NewHandler(Options{
		Catalog: cat,
		NewSession: func() *game.Session {
			return game.New(cat,
				game.WithRand(rand.New(rand.NewSource(1))),
				game.WithTurnsPerRound(2),
				game.WithStartingMoney(100),
			)
		},
		TickInterval: time.Hour,
		PushInterval: time.Hour,
		Wellbeing:    wellbeing.ComputationAverage,
	}, zap.NewNop(), NewMetrics())
	t.Cleanup(h.Close)
	return h
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, msg ClientMessage) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(msg))
}

func read(t *testing.T, conn *websocket.Conn) ServerMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg ServerMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func get(t *testing.T, url string) string {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestWebsocketRound(t *testing.T) {
	h := newTestHandler(t)
	srv := httptest.NewServer(h.Routes())
	defer srv.Close()
	conn := dial(t, srv)

	msg := read(t, conn)
	require.Equal(t, MsgState, msg.Type)
	assert.Equal(t, 2, msg.Game.TurnsLeft)
	assert.Equal(t, 100, msg.Game.Money)
	assert.Equal(t, art.FrameDefault, msg.Frame)
	assert.InDelta(t, 50, msg.Wellbeing, 1e-9)

	send(t, conn, ClientMessage{Type: MsgAction, Action: "pet"})
	msg = read(t, conn)
	require.Equal(t, MsgState, msg.Type)
	assert.Equal(t, 65.0, msg.Pet.Vitals.Happiness)
	assert.Equal(t, art.FramePetting, msg.Frame)
	assert.Equal(t, 1, msg.Game.TurnsLeft)

	send(t, conn, ClientMessage{Type: MsgUseItem, Item: "fish"})
	msg = read(t, conn)
	assert.Equal(t, MsgRejected, msg.Type)
	assert.Equal(t, game.ReasonInsufficientInventory, msg.Reason)

	send(t, conn, ClientMessage{Type: MsgBuy, Item: "starPin"})
	msg = read(t, conn)
	assert.Equal(t, MsgError, msg.Type)
	assert.Equal(t, "insufficient_funds", msg.Code)

	send(t, conn, ClientMessage{Type: MsgAction, Action: "tickle"})
	msg = read(t, conn)
	assert.Equal(t, "unknown_action", msg.Code)

	send(t, conn, ClientMessage{Type: "dance"})
	msg = read(t, conn)
	assert.Equal(t, "unknown_message", msg.Code)

	send(t, conn, ClientMessage{Type: MsgBuy, Item: "fish"})
	msg = read(t, conn)
	require.Equal(t, MsgState, msg.Type)
	assert.Equal(t, 0, msg.Game.Money)
	assert.Equal(t, 1, msg.Game.Inventory["fish"])

	send(t, conn, ClientMessage{Type: MsgUseItem, Item: "fish"})
	msg = read(t, conn)
	require.Equal(t, MsgEvent, msg.Type)
	assert.Equal(t, game.EventRoundEnded, msg.Event.Type)
	assert.Len(t, msg.Event.Buyers, 3)
	msg = read(t, conn)
	require.Equal(t, MsgState, msg.Type)
	assert.Equal(t, game.PhaseSelling, msg.Game.Phase)
	require.Len(t, msg.Game.Offers, 3)
	want := msg.Game.Offers[0].Total

	send(t, conn, ClientMessage{Type: MsgSell, Buyer: 0})
	msg = read(t, conn)
	require.Equal(t, MsgEvent, msg.Type)
	assert.Equal(t, game.EventCatSold, msg.Event.Type)
	assert.Equal(t, want, msg.Event.Price)
	msg = read(t, conn)
	assert.Equal(t, game.EventRoundStarted, msg.Event.Type)
	msg = read(t, conn)
	require.Equal(t, MsgState, msg.Type)
	require.NotNil(t, msg.Sale)
	assert.Equal(t, want, msg.Sale.Price)
	assert.Equal(t, want, msg.Game.Money)
	assert.Equal(t, game.PhaseCaring, msg.Game.Phase)
	assert.Len(t, msg.Game.SoldCats, 1)

	metrics := get(t, srv.URL+"/metrics")
	assert.Contains(t, metrics, `catflip_actions_total{action="pet"} 1`)
	assert.Contains(t, metrics, `catflip_actions_total{action="fish"} 1`)
	assert.Contains(t, metrics, `catflip_rejections_total{reason="insufficient_inventory"} 1`)
	assert.Contains(t, metrics, "catflip_sales_total 1")
	assert.Contains(t, metrics, "catflip_rounds_ended_total 1")
	assert.Contains(t, metrics, "catflip_connections 1")
}

func TestHandlerCloseEndsSessions(t *testing.T) {
	h := newTestHandler(t)
	srv := httptest.NewServer(h.Routes())
	defer srv.Close()
	conn := dial(t, srv)

	read(t, conn)
	h.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}

func TestHTTPRoutes(t *testing.T) {
	h := newTestHandler(t)
	srv := httptest.NewServer(h.Routes())
	defer srv.Close()

	assert.JSONEq(t, `{"status":"ok"}`, get(t, srv.URL+"/healthz"))

	var cat catalog.Catalog
	require.NoError(t, json.Unmarshal([]byte(get(t, srv.URL+"/catalog")), &cat))
	assert.Len(t, cat.Buyers, 5)
	assert.Len(t, cat.Consumables, 4)
}

func TestErrorMessage(t *testing.T) {
	s := game.New(catalog.Default(), game.WithRand(rand.New(rand.NewSource(1))))

	_, err := s.SellTo(0)
	assert.Equal(t, ServerMessage{Type: MsgError, Code: "not_selling", Error: err.Error()}, errorMessage(err))

	_, err = s.UseItem("milk")
	msg := errorMessage(err)
	assert.Equal(t, MsgRejected, msg.Type)
	assert.Equal(t, game.ReasonInsufficientInventory, msg.Reason)

	assert.Equal(t, "internal", errorMessage(io.EOF).Code)
}

func TestWriteJSONLogsEncodeFailure(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	rec := httptest.NewRecorder()

	writeJSON(rec, zap.New(core), http.StatusOK, map[string]any{"bad": make(chan int)})

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "failed to write json response", entry.Message)
	assert.Contains(t, entry.ContextMap(), "error")
}
