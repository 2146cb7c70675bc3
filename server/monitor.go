package server

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/ingpabc-ai/citasMB/bot"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
)

const monitorWriteTimeout = 10 * time.Second

// Monitor pushes session events (manual review entered, handoff, proposal,
// confirmation) to connected operator consoles over WebSocket. It implements
// bot.Notifier; publishing to zero listeners is a no-op.
type Monitor struct {
	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns map[*websocket.Conn]bool
}

// NewMonitor creates the operator event hub.
func NewMonitor(allowedOrigins []string) *Monitor {
	return &Monitor{
		conns: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 4 * 1024,
			CheckOrigin: func(r *http.Request) bool {
				// Check allowed origins
				origin := r.Header.Get("Origin")
				for _, allowed := range allowedOrigins {
					if allowed == "*" || allowed == origin {
						return true
					}
				}
				return false
			},
		},
	}
}

func (m *Monitor) handleEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := m.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Monitor WebSocket upgrade failed: %v", err)
		return
	}

	m.mu.Lock()
	m.conns[conn] = true
	m.mu.Unlock()
	log.Printf("👀 Operator console connected (%d active)", m.Count())

	// Drain the connection; operators only listen. The read loop exits when
	// the console disconnects.
	go func() {
		defer m.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Publish implements bot.Notifier. Slow or dead consoles are dropped rather
// than blocking the reply cycle.
func (m *Monitor) Publish(evt bot.Event) {
	frame, err := sonic.Marshal(evt)
	if err != nil {
		log.Printf("⚠️ Monitor event encode failed: %v", err)
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for conn := range m.conns {
		_ = conn.SetWriteDeadline(time.Now().Add(monitorWriteTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
			conn.Close()
			delete(m.conns, conn)
		}
	}
}

// Count returns the number of connected consoles.
func (m *Monitor) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.conns)
}

// Close disconnects all consoles.
func (m *Monitor) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for conn := range m.conns {
		conn.Close()
		delete(m.conns, conn)
	}
}

func (m *Monitor) drop(conn *websocket.Conn) {
	m.mu.Lock()
	if m.conns[conn] {
		conn.Close()
		delete(m.conns, conn)
	}
	m.mu.Unlock()
	log.Printf("👀 Operator console disconnected (%d active)", m.Count())
}
