package booking

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"

	"sevabook/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// The selection page is served from the same origin; relax for dev.
		return true
	},
}

var (
	subscribers = make(map[string][]*websocket.Conn)
	mu          sync.Mutex
)

// HandleSlotWS subscribes a client to live occupancy updates for one slot.
// The selection page uses this to grey out slots as they fill.
func HandleSlotWS(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	key := models.SlotKey(ps.ByName("date"), ps.ByName("session"), ps.ByName("slot"))

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "WebSocket upgrade failed", http.StatusBadRequest)
		return
	}

	mu.Lock()
	subscribers[key] = append(subscribers[key], conn)
	mu.Unlock()

	for {
		// Keeps the connection alive until the client disconnects.
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	mu.Lock()
	conns := subscribers[key]
	newList := make([]*websocket.Conn, 0, len(conns))
	for _, c := range conns {
		if c != conn {
			newList = append(newList, c)
		}
	}
	subscribers[key] = newList
	mu.Unlock()

	conn.Close()
}

type occupancyEvent struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// BroadcastOccupancy pushes the new count to every subscriber of the slot.
func BroadcastOccupancy(date, session, slot string, count int) {
	key := models.SlotKey(date, session, slot)
	data, err := json.Marshal(occupancyEvent{Key: key, Count: count})
	if err != nil {
		return
	}

	mu.Lock()
	defer mu.Unlock()

	conns := subscribers[key]
	newList := conns[:0]
	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err == nil {
			newList = append(newList, conn)
		} else {
			conn.Close()
		}
	}
	subscribers[key] = newList
}
