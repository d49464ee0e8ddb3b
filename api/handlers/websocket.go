package handlers

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// notificationHub tracks connected users (uid -> *websocket.Conn)
type notificationHub struct {
	clients map[string]*websocket.Conn
	mutex   sync.Mutex
}

var hub = &notificationHub{
	clients: make(map[string]*websocket.Conn),
}

// HandleNotificationsWebSocket registers a websocket client for push
// notifications. The uid comes from the query string; delivery is
// best-effort and the durable copy always lands in the user document first.
func HandleNotificationsWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		zap.S().Warnw("websocket upgrade failed", "error", err)
		return
	}

	uid := r.URL.Query().Get("uid")
	if uid == "" {
		conn.Close()
		return
	}

	hub.mutex.Lock()
	hub.clients[uid] = conn
	hub.mutex.Unlock()
	zap.S().Infow("websocket client connected", "uid", uid)

	conn.SetCloseHandler(func(code int, text string) error {
		hub.mutex.Lock()
		delete(hub.clients, uid)
		hub.mutex.Unlock()
		zap.S().Infow("websocket client disconnected", "uid", uid)
		return nil
	})

	// drain reads until the client goes away
	for {
		if _, _, err := conn.NextReader(); err != nil {
			conn.Close()
			break
		}
	}
}

// PushToUser sends an event to one connected user, dropping the connection
// on write failure.
func PushToUser(uid, event string, data interface{}) {
	hub.mutex.Lock()
	conn, exists := hub.clients[uid]
	hub.mutex.Unlock()
	if !exists {
		return
	}

	err := conn.WriteJSON(map[string]interface{}{
		"event": event,
		"data":  data,
	})
	if err != nil {
		zap.S().Warnw("websocket push failed", "uid", uid, "error", err)
		hub.mutex.Lock()
		delete(hub.clients, uid)
		hub.mutex.Unlock()
		conn.Close()
	}
}
