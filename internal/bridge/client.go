package bridge

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/sethgrid/catflip/internal/game"
	"github.com/sethgrid/catflip/internal/pet"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second
	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second
	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

// client is one websocket connection and the session it plays. Only run
// touches the session.
type client struct {
	conn     *websocket.Conn
	session  *game.Session
	log      *zap.Logger
	metrics  *Metrics
	opts     Options
	commands chan ClientMessage
	send     chan []byte
}

func newClient(conn *websocket.Conn, session *game.Session, h *Handler) *client {
	return &client{
		conn:     conn,
		session:  session,
		log:      h.log.With(zap.String("remote", conn.RemoteAddr().String())),
		metrics:  h.metrics,
		opts:     h.opts,
		commands: make(chan ClientMessage, 16),
		send:     make(chan []byte, 256),
	}
}

// readPump decodes client messages and hands them to run. It returns when
// the connection fails or ctx ends.
func (c *client) readPump(ctx context.Context) {
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.Warn("websocket read failed", zap.Error(err))
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			c.log.Debug("malformed client message", zap.Error(err))
			continue
		}

		select {
		case c.commands <- msg:
		case <-ctx.Done():
			return
		}
	}
}

// run owns the session: it applies commands, advances simulated time with
// the wall clock and pushes state. It closes send on exit.
func (c *client) run(ctx context.Context) {
	defer close(c.send)

	unsubscribe := c.session.Subscribe(func(e game.Event) {
		c.metrics.observe(e)
		c.queue(ServerMessage{Type: MsgEvent, Event: &e})
	})
	defer unsubscribe()

	tick := time.NewTicker(c.opts.TickInterval)
	defer tick.Stop()
	push := time.NewTicker(c.opts.PushInterval)
	defer push.Stop()

	c.pushState()
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-c.commands:
			c.handle(msg)
		case now := <-tick.C:
			c.session.Tick(now.Sub(last).Seconds())
			last = now
		case <-push.C:
			c.pushState()
		}
	}
}

func (c *client) handle(msg ClientMessage) {
	var (
		err  error
		sale *game.SaleResult
	)

	switch msg.Type {
	case MsgAction:
		_, err = c.session.PerformAction(pet.ActionKind(msg.Action))
		if err == nil {
			c.metrics.actions.WithLabelValues(msg.Action).Inc()
		}
	case MsgUseItem:
		_, err = c.session.UseItem(msg.Item)
		if err == nil {
			c.metrics.actions.WithLabelValues(msg.Item).Inc()
		}
	case MsgBuy:
		err = c.session.Purchase(msg.Item)
	case MsgSell:
		var res game.SaleResult
		res, err = c.session.SellTo(msg.Buyer)
		if err == nil {
			sale = &res
		}
	case MsgDispose:
		_, err = c.session.DisposeDeadPet()
	case MsgNewRound:
		_, err = c.session.StartNewRound()
	case MsgState:
	default:
		c.queue(ServerMessage{Type: MsgError, Code: "unknown_message", Error: "unknown message type " + msg.Type})
		return
	}

	if err != nil {
		reply := errorMessage(err)
		label := string(reply.Reason)
		if label == "" {
			label = reply.Code
		}
		c.metrics.rejections.WithLabelValues(label).Inc()
		c.log.Debug("command failed", zap.String("type", msg.Type), zap.Error(err))
		c.queue(reply)
		return
	}

	state := stateMessage(c.session, c.opts.Wellbeing)
	state.Sale = sale
	c.queue(state)
}

func (c *client) pushState() {
	c.queue(stateMessage(c.session, c.opts.Wellbeing))
}

// queue never blocks run. A client too slow to drain its buffer loses
// messages; the next state push resynchronises it.
func (c *client) queue(msg ServerMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		c.log.Error("failed to encode message", zap.Error(err))
		return
	}
	select {
	case c.send <- data:
	default:
		c.log.Warn("send buffer full, dropping message", zap.String("type", msg.Type))
	}
}

// writePump pumps messages from run to the websocket connection.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
