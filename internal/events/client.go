package events

import (
	"context"
	"time"

	ws "github.com/coder/websocket"
)

const (
	sendBufferSize = 16
	pingInterval   = 30 * time.Second
)

// Client is one WebSocket subscriber. A client opened with a profile id only
// receives that profile's events plus household-wide ones; an empty profile
// subscribes to everything (the parent dashboard view).
type Client struct {
	hub     *Hub
	conn    *ws.Conn
	profile string
	send    chan []byte
}

func NewClient(hub *Hub, conn *ws.Conn, profile string) *Client {
	return &Client{
		hub:     hub,
		conn:    conn,
		profile: profile,
		send:    make(chan []byte, sendBufferSize),
	}
}

// wants reports whether an event belongs on this client's stream. Events
// without a profile id are household-wide and go to everyone.
func (c *Client) wants(ev Event) bool {
	return c.profile == "" || ev.ProfileID == "" || c.profile == ev.ProfileID
}

// Run registers the client, starts the write pump, and blocks reading until
// the connection closes, then unregisters.
func (c *Client) Run(ctx context.Context) {
	c.hub.Register(c)
	defer c.hub.Unregister(c)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go c.writePump(ctx)
	c.readPump(ctx)
}

// readPump reads and discards incoming messages; the event stream is one-way.
func (c *Client) readPump(ctx context.Context) {
	for {
		if _, _, err := c.conn.Read(ctx); err != nil {
			return
		}
	}
}

// writePump drains the send channel onto the socket and pings periodically to
// detect stale connections.
func (c *Client) writePump(ctx context.Context) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				return
			}
			if err := c.conn.Write(ctx, ws.MessageText, msg); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.conn.Ping(ctx); err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}
