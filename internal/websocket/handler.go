package websocket

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// RegisterRoutes exposes the session event stream.
func RegisterRoutes(r fiber.Router, hub *Hub) {
	r.Use("/session/:id/ws", UpgradeMiddleware)
	r.Get("/session/:id/ws", websocket.New(func(conn *websocket.Conn) {
		ServeWs(hub, conn, conn.Params("id"))
	}))
}

// UpgradeMiddleware rejects plain HTTP requests on websocket routes.
func UpgradeMiddleware(ctx *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(ctx) {
		return ctx.Next()
	}
	return fiber.ErrUpgradeRequired
}

// ServeWs handles one websocket peer for a session.
func ServeWs(hub *Hub, conn *websocket.Conn, sessionID string) {
	client := &Client{Hub: hub, Conn: conn, SessionID: sessionID, Send: make(chan []byte, 256)}
	client.Hub.register <- client

	go client.writePump()
	client.readPump() // Run readPump in current goroutine (handler)
}
