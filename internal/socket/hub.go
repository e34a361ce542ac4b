package socket

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Hub tracks open dashboard connections, keyed by company id. A company may
// have several tabs open at once.
type Hub struct {
	mu      sync.RWMutex
	clients map[string][]*websocket.Conn
}

func NewHub() *Hub {
	return &Hub{clients: make(map[string][]*websocket.Conn)}
}

// Register adds a dashboard connection for a company.
func (h *Hub) Register(companyID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[companyID] = append(h.clients[companyID], conn)
	logrus.Infof("socket: dashboard connected for company %s", companyID)
}

// Unregister removes one connection for a company.
func (h *Hub) Unregister(companyID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conns := h.clients[companyID]
	for i, c := range conns {
		if c == conn {
			h.clients[companyID] = append(conns[:i:i], conns[i+1:]...)
			break
		}
	}
	if len(h.clients[companyID]) == 0 {
		delete(h.clients, companyID)
	}
	logrus.Infof("socket: dashboard disconnected for company %s", companyID)
}

// Send pushes a JSON event to every open dashboard of a company. An offline
// company is not an error; a failed write only drops that message.
func (h *Hub) Send(companyID string, event any) {
	payload, err := json.Marshal(event)
	if err != nil {
		logrus.Warnf("socket: marshal event: %v", err)
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, conn := range h.clients[companyID] {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			logrus.Warnf("socket: write to company %s failed: %v", companyID, err)
		}
	}
}
