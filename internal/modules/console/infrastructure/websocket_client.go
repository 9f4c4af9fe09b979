package infrastructure

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"impactAdminWs/internal/modules/console/domain"
)

const (
	pingInterval = 30 * time.Second
	readTimeout  = 60 * time.Second
	writeTimeout = 5 * time.Second
	maxFrameSize = 1 << 16
)

// Client is one console websocket connection.
type Client struct {
	hub        *Hub
	conn       *websocket.Conn
	send       chan []byte
	operatorID string
	sessionID  string
	commands   *CommandProcessor
	subscribed map[string]struct{}

	mu         sync.Mutex
	closed     bool
	draining   bool
	closeOnce  sync.Once
	closeHooks []func(*Client)
}

// NewClient builds a client with a buffered outbox. Commands the processor does
// not handle itself go to commandFn.
func NewClient(hub *Hub, conn *websocket.Conn, operatorID, sessionID string, buf int, commandFn CommandHandler) *Client {
	if buf <= 0 {
		buf = 64
	}
	client := &Client{
		hub:        hub,
		conn:       conn,
		send:       make(chan []byte, buf),
		operatorID: operatorID,
		sessionID:  sessionID,
		subscribed: make(map[string]struct{}),
	}
	client.commands = NewCommandProcessor(hub, commandFn)
	return client
}

func (c *Client) OperatorID() string { return c.operatorID }

func (c *Client) SessionID() string { return c.sessionID }

// AddCloseHook registers a callback run once when the client closes.
func (c *Client) AddCloseHook(fn func(*Client)) {
	if fn == nil {
		return
	}
	c.mu.Lock()
	c.closeHooks = append(c.closeHooks, fn)
	c.mu.Unlock()
}

func (c *Client) SendDomainMessage(msg *domain.Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("websocket marshal error", slog.Any("error", err))
		return
	}
	c.enqueue(data)
}

// SendAndClose queues msg as the last frame; the connection closes once it is written.
func (c *Client) SendAndClose(msg *domain.Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("websocket marshal error", slog.Any("error", err))
		data = nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.draining {
		return
	}
	c.draining = true
	if data != nil {
		select {
		case c.send <- data:
		default:
		}
	}
	select {
	case c.send <- nil:
	default:
		go c.hub.detachClient(c)
	}
}

func (c *Client) enqueue(data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.draining {
		return
	}
	select {
	case c.send <- data:
	default:
		slog.Warn("websocket send buffer full", slog.String("sessionId", c.sessionID))
		go c.hub.detachClient(c)
	}
}

func (c *Client) close() {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.closed = true
		close(c.send)
		hooks := c.closeHooks
		c.closeHooks = nil
		c.mu.Unlock()

		_ = c.conn.Close()
		for _, hook := range hooks {
			func(h func(*Client)) {
				defer func() {
					if r := recover(); r != nil {
						slog.Warn("ws close hook panic", slog.Any("error", r))
					}
				}()
				h(c)
			}(hook)
		}
	})
}

// WritePump owns every write to the connection. A nil frame ends the session
// with a normal close.
func (c *Client) WritePump() {
	ping := time.NewTicker(pingInterval)
	defer func() {
		ping.Stop()
		c.hub.detachClient(c)
	}()

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				return
			}
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if msg == nil {
				_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session closed"))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				slog.Warn("websocket write error", slog.Any("error", err))
				return
			}
		case <-ping.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout)); err != nil {
				slog.Warn("websocket ping error", slog.Any("error", err))
				return
			}
		}
	}
}

func (c *Client) ReadPump() {
	c.conn.SetReadLimit(maxFrameSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(readTimeout))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(readTimeout))
	})
	defer c.hub.detachClient(c)
	for {
		var cmd Command
		_ = c.conn.SetReadDeadline(time.Now().Add(readTimeout))
		if err := c.conn.ReadJSON(&cmd); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.Warn("websocket read error", slog.String("sessionId", c.sessionID), slog.Any("error", err))
			}
			return
		}
		c.commands.Process(c, cmd)
	}
}
