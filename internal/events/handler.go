package events

import (
	"log/slog"
	"net/http"

	ws "github.com/coder/websocket"
)

// Handler returns an HTTP handler that upgrades connections to WebSocket and
// runs them as hub clients. A profile_id query parameter narrows the stream
// to that profile's events.
func Handler(hub *Hub, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := ws.Accept(w, r, &ws.AcceptOptions{
			InsecureSkipVerify: true, // household LAN, any origin
		})
		if err != nil {
			logger.Error("websocket accept", "error", err)
			return
		}
		defer conn.Close(ws.StatusNormalClosure, "")

		client := NewClient(hub, conn, r.URL.Query().Get("profile_id"))
		client.Run(r.Context())
	}
}
