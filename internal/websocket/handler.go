package websocket

import (
	"strings"

	"robinrocks-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// ServeWs attaches a socket to the hub and blocks until it closes.
func ServeWs(hub *Hub, c *websocket.Conn, userID string) {
	client := &Client{Hub: hub, Conn: c, UserID: userID, Send: make(chan []byte, sendBuffer)}
	hub.register <- client

	go client.writePump()
	client.readPump()
}

// Handshake authenticates the upgrade request. Browsers cannot set headers
// on a socket so the token may come in the query string.
func Handshake(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		tokenStr := c.Query("token")
		if tokenStr == "" {
			tokenStr = strings.TrimPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
		}
		if tokenStr == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing token")
		}

		userID, err := serverutils.ParseToken(tokenStr, secret)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}
		c.Locals("user_id", userID)
		return c.Next()
	}
}

// Route registers GET /ws on r.
func Route(r fiber.Router, hub *Hub, secret string) {
	r.Get("/ws", Handshake(secret), websocket.New(func(conn *websocket.Conn) {
		userID, _ := conn.Locals("user_id").(string)
		ServeWs(hub, conn, userID)
	}))
}
