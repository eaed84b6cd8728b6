package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/cx-tal-miterani/seat-inventory/internal/inventory"
)

// MessageType represents the type of WebSocket message
type MessageType string

const (
	MessageTypeSeatReserved   MessageType = "seat_reserved"
	MessageTypeSeatBooked     MessageType = "seat_booked"
	MessageTypeSeatReleased   MessageType = "seat_released"
	MessageTypeHoldsReclaimed MessageType = "holds_reclaimed"
)

// SeatUpdate represents one seat status change
type SeatUpdate struct {
	SeatID        string     `json:"seatId"`
	SeatNumber    string     `json:"seatNumber,omitempty"`
	Status        string     `json:"status"`
	ReservedUntil *time.Time `json:"reservedUntil,omitempty"`
}

// Message represents a WebSocket message
type Message struct {
	Type      MessageType  `json:"type"`
	FlightID  string       `json:"flightId"`
	Seats     []SeatUpdate `json:"seats,omitempty"`
	Reclaimed int          `json:"reclaimed,omitempty"`
	Timestamp int64        `json:"timestamp"`
}

const (
	writeWait  = 10 * time.Second
	pingPeriod = 50 * time.Second
	pongWait   = 60 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client represents a WebSocket client watching one flight
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	send     chan []byte
	flightID uuid.UUID
}

// Hub manages WebSocket connections per flight
type Hub struct {
	clients    map[uuid.UUID]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan *Message
	mu         sync.RWMutex
}

var globalHub *Hub
var hubOnce sync.Once

// GetHub returns the global hub instance
func GetHub() *Hub {
	hubOnce.Do(func() {
		globalHub = NewHub()
		go globalHub.Run()
	})
	return globalHub
}

// NewHub creates a new Hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *Message, 256),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.flightID] == nil {
				h.clients[client.flightID] = make(map[*Client]bool)
			}
			h.clients[client.flightID][client] = true
			log.Printf("WebSocket: Client registered for flight %s (total: %d)", client.flightID, len(h.clients[client.flightID]))
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.flightID]; ok {
				if _, ok := clients[client]; ok {
					delete(clients, client)
					close(client.send)
					if len(clients) == 0 {
						delete(h.clients, client.flightID)
					}
				}
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			flightID, err := uuid.Parse(message.FlightID)
			if err != nil {
				log.Printf("WebSocket: Invalid flight ID in broadcast: %s", message.FlightID)
				continue
			}

			data, err := json.Marshal(message)
			if err != nil {
				log.Printf("WebSocket: Failed to marshal message: %v", err)
				continue
			}

			h.mu.RLock()
			clients := h.clients[flightID]
			h.mu.RUnlock()

			for client := range clients {
				select {
				case client.send <- data:
				default:
					h.mu.Lock()
					delete(h.clients[flightID], client)
					close(client.send)
					h.mu.Unlock()
				}
			}
		}
	}
}

// BroadcastSeatChange notifies clients watching a flight that one seat
// changed status
func (h *Hub) BroadcastSeatChange(msgType MessageType, seat *inventory.Seat) {
	msg := &Message{
		Type:     msgType,
		FlightID: seat.FlightID.String(),
		Seats: []SeatUpdate{{
			SeatID:        seat.ID.String(),
			SeatNumber:    seat.SeatNumber,
			Status:        string(seat.Status),
			ReservedUntil: seat.ReservedUntil,
		}},
		Timestamp: time.Now().UnixMilli(),
	}
	h.broadcast <- msg
}

// BroadcastReservation notifies clients that a seat was put on hold
func (h *Hub) BroadcastReservation(res *inventory.Reservation) {
	until := res.ReservedUntil
	msg := &Message{
		Type:     MessageTypeSeatReserved,
		FlightID: res.FlightID.String(),
		Seats: []SeatUpdate{{
			SeatID:        res.SeatID.String(),
			SeatNumber:    res.SeatNumber,
			Status:        string(inventory.SeatStatusReserved),
			ReservedUntil: &until,
		}},
		Timestamp: time.Now().UnixMilli(),
	}
	h.broadcast <- msg
}

// GetClientCount returns the number of clients watching a flight
func (h *Hub) GetClientCount(flightID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[flightID])
}

// HandleWebSocket upgrades the connection and registers the client with
// the flight it watches
func HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	flightID, err := uuid.Parse(mux.Vars(r)["flightId"])
	if err != nil {
		http.Error(w, "invalid flight id", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket: Upgrade failed: %v", err)
		return
	}

	hub := GetHub()
	client := &Client{
		hub:      hub,
		conn:     conn,
		send:     make(chan []byte, 64),
		flightID: flightID,
	}
	hub.register <- client

	go client.writePump()
	go client.readPump()
}

// readPump drains (and discards) inbound frames so control messages are
// processed, unregistering the client when the connection drops
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump forwards hub broadcasts to the connection and keeps it
// alive with pings
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
