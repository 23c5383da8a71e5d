// File: /ws/hub.go
package ws

import (
	"encoding/json"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"chatmini-api/metrics"
)

// Hub is the in-process topic registry: one RoomHub per room id, created
// lazily and kept for the life of the process.
type Hub struct {
	mu    sync.RWMutex
	rooms map[uint]*RoomHub
}

func NewHub() *Hub { return &Hub{rooms: make(map[uint]*RoomHub)} }

// GetRoom returns the room's hub, starting one if none exists yet.
func (h *Hub) GetRoom(roomID uint) *RoomHub {
	h.mu.RLock()
	room := h.rooms[roomID]
	h.mu.RUnlock()
	if room != nil {
		return room
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	room = h.rooms[roomID]
	if room != nil {
		return room
	}
	room = NewRoomHub(roomID)
	h.rooms[roomID] = room
	go room.run()
	return room
}

// Broadcast publishes an event to every session subscribed to the room.
// Delivery is at-most-once and best-effort; nothing is acknowledged and a
// failed send never affects the data already committed.
func (h *Hub) Broadcast(roomID uint, evt Event) {
	b, err := json.Marshal(evt)
	if err != nil {
		log.Error().Err(err).Uint("room_id", roomID).Msg("marshal broadcast event")
		return
	}
	h.GetRoom(roomID).broadcast <- b
}

func (h *Hub) Online(roomID uint) int {
	h.mu.RLock()
	room := h.rooms[roomID]
	h.mu.RUnlock()
	if room == nil {
		return 0
	}
	return room.Online()
}

// RoomHub owns the client set for one room. All mutation happens on the
// run goroutine via the three channels.
type RoomHub struct {
	roomID     uint
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	online     int32
}

func NewRoomHub(roomID uint) *RoomHub {
	return &RoomHub{
		roomID:     roomID,
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
	}
}

func (rh *RoomHub) run() {
	for {
		select {
		case c := <-rh.register:
			rh.clients[c] = true
			atomic.StoreInt32(&rh.online, int32(len(rh.clients)))
			metrics.WsConnections.Inc()
		case c := <-rh.unregister:
			if _, ok := rh.clients[c]; ok {
				delete(rh.clients, c)
				close(c.send)
				atomic.StoreInt32(&rh.online, int32(len(rh.clients)))
				metrics.WsConnections.Dec()
			}
		case msg := <-rh.broadcast:
			for c := range rh.clients {
				select {
				case c.send <- msg:
				default:
					// Slow consumer: drop it rather than block the room.
					close(c.send)
					delete(rh.clients, c)
					atomic.StoreInt32(&rh.online, int32(len(rh.clients)))
					metrics.WsConnections.Dec()
				}
			}
		}
	}
}

// Online returns the number of live connections in the room.
func (rh *RoomHub) Online() int { return int(atomic.LoadInt32(&rh.online)) }
