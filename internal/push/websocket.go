package push

import (
	"context"
	"fmt"
	"sync"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"github.com/davmoraru/wayfind/internal/logger"
)

// frame is the wire format: one topic, one payload.
type frame struct {
	Topic string `json:"topic"`
	Data  string `json:"data"`
}

// WSChannel is a Channel over a single outbound WebSocket connection.
// Connect establishes the link exactly once; a second call is a no-op,
// so handler re-registration cannot open duplicate sockets.
type WSChannel struct {
	url    string
	logger logger.Logger

	mu        sync.Mutex
	conn      *websocket.Conn
	connected bool
	closed    bool

	subsMu sync.RWMutex
	next   int
	subs   map[string]map[int]Handler
}

func NewWSChannel(url string, log logger.Logger) *WSChannel {
	return &WSChannel{
		url:    url,
		logger: log,
		subs:   make(map[string]map[int]Handler),
	}
}

// Connect dials the endpoint and starts the read loop. Idempotent.
func (c *WSChannel) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.connected {
		return nil
	}
	if c.closed {
		return fmt.Errorf("channel is closed")
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return fmt.Errorf("dialing %s: %w", c.url, err)
	}
	c.conn = conn
	c.connected = true

	go c.readLoop(conn)
	return nil
}

func (c *WSChannel) readLoop(conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			c.mu.Lock()
			closed := c.closed
			c.connected = false
			c.mu.Unlock()
			if !closed {
				c.logger.Warn("push connection lost", logger.Error(err))
			}
			return
		}

		var f frame
		if err := json.Unmarshal(data, &f); err != nil {
			c.logger.Warn("dropping malformed push frame", logger.Error(err))
			continue
		}
		c.dispatch(f)
	}
}

func (c *WSChannel) dispatch(f frame) {
	c.subsMu.RLock()
	handlers := make([]Handler, 0, len(c.subs[f.Topic]))
	for _, h := range c.subs[f.Topic] {
		handlers = append(handlers, h)
	}
	c.subsMu.RUnlock()

	for _, h := range handlers {
		h(f.Data)
	}
}

func (c *WSChannel) Subscribe(topic string, h Handler) func() {
	c.subsMu.Lock()
	defer c.subsMu.Unlock()

	if c.subs[topic] == nil {
		c.subs[topic] = make(map[int]Handler)
	}
	id := c.next
	c.next++
	c.subs[topic][id] = h

	return func() {
		c.subsMu.Lock()
		defer c.subsMu.Unlock()
		delete(c.subs[topic], id)
	}
}

func (c *WSChannel) Publish(_ context.Context, topic, payload string) error {
	body, err := json.Marshal(frame{Topic: topic, Data: payload})
	if err != nil {
		return fmt.Errorf("encoding push frame: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected {
		return fmt.Errorf("channel is not connected")
	}
	if err := c.conn.WriteMessage(websocket.TextMessage, body); err != nil {
		return fmt.Errorf("writing push frame: %w", err)
	}
	return nil
}

func (c *WSChannel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	if !c.connected {
		return nil
	}
	c.connected = false
	return c.conn.Close()
}
