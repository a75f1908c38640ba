package ws

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"tienlen/internal/app"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 256
)

// client is one websocket connection watching one room as one identity.
type client struct {
	conn     *websocket.Conn
	room     *app.Room
	roomID   string
	roomName string
	identity string

	mu     sync.Mutex
	send   chan Outbound
	closed bool
}

func newClient(conn *websocket.Conn, room *app.Room, identity string) *client {
	return &client{
		conn:     conn,
		room:     room,
		roomID:   room.ID,
		roomName: room.Name(),
		identity: identity,
		send:     make(chan Outbound, sendBuffer),
	}
}

// deliver queues msg without blocking. A full queue closes the client and deliver reports false.
func (c *client) deliver(msg Outbound) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return true
	}
	select {
	case c.send <- msg:
		return true
	default:
		c.closed = true
		close(c.send)
		return false
	}
}

func (c *client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
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

// readPump feeds decoded messages to handle until the connection fails.
func (c *client) readPump(handle func(Inbound)) error {
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error { return c.conn.SetReadDeadline(time.Now().Add(pongWait)) })
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return err
		}
		var in Inbound
		if err := json.Unmarshal(data, &in); err != nil {
			c.deliver(errorMessage("", fmt.Errorf("%w: %v", errBadRequest, err)))
			continue
		}
		handle(in)
	}
}
