// Package wshub implements the WebSocket fan-out layer: topic
// subscriptions, liveness pings, and a periodic broadcast tick that
// recomputes and pushes flight batches to every subscribed client. The
// per-connection read/write pump split and the JSON {type, data} message
// envelope follow the shape SkySpy's ws.Client uses on the client side,
// mirrored here for the server.
package wshub

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/DoROAD-AI/skylink/internal/flightservice"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	pingInterval   = 30 * time.Second
	pongGrace      = 10 * time.Second
	broadcastTick  = 15 * time.Second
	sendBufferSize = 32

	// defaultAnchorLat/Lon/RadiusKm are the hard-coded viewport used by
	// the periodic broadcast: Prague, 100km. Every "flights"-subscribed
	// client receives this same batch regardless of where it actually
	// is looking; indexing subscriptions by viewport would fix this but
	// is out of scope here, per the recorded open question.
	defaultAnchorLat = 50.0755
	defaultAnchorLon = 14.4378
	defaultRadiusKm  = 100
	flightsTopic     = "flights"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// envelope is the outbound message shape every push uses.
type envelope struct {
	Type      string `json:"type"`
	Data      any    `json:"data"`
	Timestamp int64  `json:"timestamp"`
}

func newEnvelope(msgType string, data any) envelope {
	return envelope{Type: msgType, Data: data, Timestamp: time.Now().UnixMilli()}
}

// inbound is the shape of a message received from a client.
type inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type requestFlightsPayload struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Radius    float64 `json:"radius"`
}

// client is one subscribed WebSocket peer.
type client struct {
	id   int64
	conn *websocket.Conn
	send chan []byte

	mu         sync.Mutex
	topics     map[string]bool
	lastPongAt time.Time
}

func (c *client) subscribed(topic string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.topics[topic]
}

func (c *client) setSubscribed(topic string, on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if on {
		c.topics[topic] = true
	} else {
		delete(c.topics, topic)
	}
}

func (c *client) touchPong() {
	c.mu.Lock()
	c.lastPongAt = time.Now()
	c.mu.Unlock()
}

func (c *client) pongAge() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return time.Since(c.lastPongAt)
}

// Hub owns the set of connected clients and the periodic broadcast loop.
// The zero value is not usable; construct with New.
type Hub struct {
	flights *flightservice.Service

	nextID  atomic.Int64
	mu      sync.RWMutex
	clients map[int64]*client
}

// New constructs a Hub backed by flights for both on-demand and periodic
// broadcast queries.
func New(flights *flightservice.Service) *Hub {
	return &Hub{
		flights: flights,
		clients: make(map[int64]*client),
	}
}

// Handler upgrades the request to a WebSocket connection and starts its
// read/write pumps. Register it on whatever route the HTTP server uses
// for the WebSocket endpoint (e.g. GET /ws).
func (h *Hub) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		h.accept(conn)
	}
}

func (h *Hub) accept(conn *websocket.Conn) {
	cl := &client{
		id:         h.nextID.Add(1),
		conn:       conn,
		send:       make(chan []byte, sendBufferSize),
		topics:     make(map[string]bool),
		lastPongAt: time.Now(),
	}

	h.mu.Lock()
	h.clients[cl.id] = cl
	h.mu.Unlock()

	h.enqueue(cl, newEnvelope("connection", gin.H{
		"clientId": cl.id,
		"message":  "connected",
	}))

	go h.writePump(cl)
	go h.readPump(cl)
}

func (h *Hub) remove(cl *client) {
	h.mu.Lock()
	delete(h.clients, cl.id)
	h.mu.Unlock()
	cl.conn.Close()
}

// enqueue marshals msg and queues it for cl, closing cl if its send
// buffer is full rather than blocking the caller.
func (h *Hub) enqueue(cl *client, msg envelope) {
	body, err := json.Marshal(msg)
	if err != nil {
		return
	}
	select {
	case cl.send <- body:
	default:
		h.remove(cl)
	}
}

func (h *Hub) readPump(cl *client) {
	defer h.remove(cl)

	cl.conn.SetPongHandler(func(string) error {
		cl.touchPong()
		return nil
	})

	for {
		_, raw, err := cl.conn.ReadMessage()
		if err != nil {
			return
		}

		var msg inbound
		if err := json.Unmarshal(raw, &msg); err != nil {
			h.enqueue(cl, newEnvelope("error", gin.H{"message": "malformed message"}))
			continue
		}

		h.dispatch(cl, msg)
	}
}

func (h *Hub) dispatch(cl *client, msg inbound) {
	switch msg.Type {
	case "subscribe_flights":
		cl.setSubscribed(flightsTopic, true)
		h.enqueue(cl, newEnvelope("subscription", gin.H{"subscribed": []string{flightsTopic}}))
	case "unsubscribe_flights":
		cl.setSubscribed(flightsTopic, false)
		h.enqueue(cl, newEnvelope("subscription", gin.H{"subscribed": []string{}}))
	case "request_flights":
		var payload requestFlightsPayload
		if err := json.Unmarshal(msg.Data, &payload); err != nil {
			h.enqueue(cl, newEnvelope("error", gin.H{"message": "invalid request_flights payload"}))
			return
		}
		radius := payload.Radius
		if radius <= 0 {
			radius = defaultRadiusKm
		}
		flights, err := h.flights.GetFlightsInArea(payload.Latitude, payload.Longitude, radius, "")
		if err != nil {
			h.enqueue(cl, newEnvelope("error", gin.H{"message": "flight lookup failed"}))
			return
		}
		h.broadcastTo(flightsTopic, newEnvelope("flight_update", flights))
	case "ping":
		h.enqueue(cl, newEnvelope("pong", nil))
	default:
		h.enqueue(cl, newEnvelope("error", gin.H{"message": "unknown message type: " + msg.Type}))
	}
}

// broadcastTo sends msg to every connected client subscribed to topic.
func (h *Hub) broadcastTo(topic string, msg envelope) {
	h.mu.RLock()
	targets := make([]*client, 0, len(h.clients))
	for _, cl := range h.clients {
		if cl.subscribed(topic) {
			targets = append(targets, cl)
		}
	}
	h.mu.RUnlock()

	for _, cl := range targets {
		h.enqueue(cl, msg)
	}
}

func (h *Hub) writePump(cl *client) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		h.remove(cl)
	}()

	for {
		select {
		case body, ok := <-cl.send:
			if !ok {
				return
			}
			if err := cl.conn.WriteMessage(websocket.TextMessage, body); err != nil {
				return
			}
		case <-ticker.C:
			if cl.pongAge() > pingInterval+pongGrace {
				return
			}
			if err := cl.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// RunBroadcastLoop periodically recomputes the default-anchor flight
// batch and pushes it to every "flights"-subscribed client, until stop is
// closed. Run it as a goroutine from main.go.
func (h *Hub) RunBroadcastLoop(stop <-chan struct{}) {
	ticker := time.NewTicker(broadcastTick)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			h.tick()
		}
	}
}

func (h *Hub) tick() {
	if !h.anySubscribed(flightsTopic) {
		return
	}

	flights, err := h.flights.GetFlightsInArea(defaultAnchorLat, defaultAnchorLon, defaultRadiusKm, "")
	if err != nil {
		log.Printf("[wshub] periodic broadcast fetch failed: %v", err)
		return
	}
	h.broadcastTo(flightsTopic, newEnvelope("flight_update", flights))
}

func (h *Hub) anySubscribed(topic string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, cl := range h.clients {
		if cl.subscribed(topic) {
			return true
		}
	}
	return false
}

// ClientCount reports how many clients are currently connected, for
// diagnostics.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
