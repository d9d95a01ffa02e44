package inspect

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// feed manages websocket subscribers to the navigation stream.
type feed struct {
	clients  map[string]*websocket.Conn
	mu       sync.RWMutex
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

func newFeed(logger *slog.Logger) *feed {
	return &feed{
		clients: make(map[string]*websocket.Conn),
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // inspection server is a dev tool
			},
		},
	}
}

// handleWebSocket upgrades the connection and holds it until the client
// disconnects. Clients only receive; inbound messages are drained and
// discarded.
func (f *feed) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		f.logger.Warn("inspect: websocket upgrade failed", "error", err)
		return
	}

	id := uuid.NewString()
	f.mu.Lock()
	f.clients[id] = conn
	f.mu.Unlock()
	f.logger.Debug("inspect: websocket client connected", "client", id)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	f.mu.Lock()
	delete(f.clients, id)
	f.mu.Unlock()
	conn.Close()
	f.logger.Debug("inspect: websocket client disconnected", "client", id)
}

// broadcast sends one frame to every connected client, dropping clients
// whose writes fail.
func (f *feed) broadcast(fr frame) {
	data, err := json.Marshal(fr)
	if err != nil {
		f.logger.Error("inspect: encoding frame", "error", err)
		return
	}

	f.mu.RLock()
	conns := make(map[string]*websocket.Conn, len(f.clients))
	for id, conn := range f.clients {
		conns[id] = conn
	}
	f.mu.RUnlock()

	for id, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			f.mu.Lock()
			delete(f.clients, id)
			f.mu.Unlock()
			conn.Close()
			f.logger.Debug("inspect: dropping websocket client", "client", id, "error", err)
		}
	}
}

func (f *feed) clientCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.clients)
}

func (f *feed) close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, conn := range f.clients {
		conn.Close()
		delete(f.clients, id)
	}
}
