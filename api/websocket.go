package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/coindash/market-data/events"
	"github.com/coindash/market-data/fetcher"
)

const wsWriteTimeout = 10 * time.Second

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// The dashboard may be served from a different origin than this API
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsMessage is the frame pushed to connected dashboards
type wsMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// wsHub pushes a fresh top-coins snapshot to every connected client
// whenever the fetcher replaces cached data
type wsHub struct {
	fetcherService *fetcher.Service

	mu      sync.Mutex
	clients map[*websocket.Conn]*sync.Mutex

	ctx          context.Context
	cancel       context.CancelFunc
	subscription *events.Subscription
}

func newWSHub(fetcherService *fetcher.Service) *wsHub {
	return &wsHub{
		fetcherService: fetcherService,
		clients:        make(map[*websocket.Conn]*sync.Mutex),
	}
}

func (h *wsHub) start(ctx context.Context) {
	h.ctx, h.cancel = context.WithCancel(ctx)
	h.subscription = h.fetcherService.SubscribeUpdates().Watch(h.ctx, h.broadcastTopCoins, false)
}

func (h *wsHub) stop() {
	if h.subscription != nil {
		h.subscription.Cancel()
	}
	if h.cancel != nil {
		h.cancel()
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		conn.Close()
	}
	h.clients = make(map[*websocket.Conn]*sync.Mutex)
}

// handleWS upgrades the connection, sends the current snapshot and then
// keeps the client registered for refresh pushes
func (h *wsHub) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("API: websocket upgrade failed: %v", err)
		return
	}

	writeMu := &sync.Mutex{}

	h.mu.Lock()
	h.clients[conn] = writeMu
	h.mu.Unlock()

	if coins, err := h.fetcherService.TopCoins(r.Context(), 0); err == nil {
		h.send(conn, writeMu, wsMessage{Type: "top_coins", Data: coins})
	}

	// Reader loop exists only to detect the client going away
	go func() {
		defer h.remove(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (h *wsHub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	conn.Close()
}

// broadcastTopCoins reads the (just refreshed) cached snapshot and
// pushes it to every client
func (h *wsHub) broadcastTopCoins() {
	coins, err := h.fetcherService.TopCoins(h.ctx, 0)
	if err != nil {
		log.Printf("API: websocket broadcast skipped: %v", err)
		return
	}

	message := wsMessage{Type: "top_coins", Data: coins}

	h.mu.Lock()
	conns := make(map[*websocket.Conn]*sync.Mutex, len(h.clients))
	for conn, writeMu := range h.clients {
		conns[conn] = writeMu
	}
	h.mu.Unlock()

	for conn, writeMu := range conns {
		h.send(conn, writeMu, message)
	}
}

func (h *wsHub) send(conn *websocket.Conn, writeMu *sync.Mutex, message wsMessage) {
	payload, err := json.Marshal(message)
	if err != nil {
		return
	}

	writeMu.Lock()
	defer writeMu.Unlock()

	conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		h.remove(conn)
	}
}
