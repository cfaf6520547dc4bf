package websocket

import (
	"github.com/gofiber/websocket/v2"
)

// ServeWs wires one upgraded connection into the hub and blocks until the
// connection closes.
func ServeWs(hub *Hub, c *websocket.Conn, uid string, router InboundRouter, assigned bool) {
	client := &Client{Hub: hub, Conn: c, UID: uid, Send: make(chan []byte, 256), Router: router}
	client.Hub.register <- client

	// A connection that arrived without an identity learns its new uid
	// first, before any workflow event.
	if assigned {
		hub.Send(uid, "uid:assign", map[string]string{"uid": uid})
	}

	// Allow collection of memory referenced by the caller by doing all work in
	// new goroutines.
	go client.writePump()
	client.readPump() // Run readPump in current goroutine (handler)
}
