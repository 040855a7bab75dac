package handlers

import (
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/tripeasy-dev/tripeasy/internal/types"
	"github.com/tripeasy-dev/tripeasy/internal/utils"
)

var (
	tripClients   = make(map[uint]map[*websocket.Conn]bool)
	tripClientsMu sync.RWMutex
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// BroadcastTripRefresh tells every open workspace for the trip to refetch.
// Mutating handlers call it after a successful write.
func BroadcastTripRefresh(tripID uint) {
	tripClientsMu.RLock()
	clients, exists := tripClients[tripID]
	if !exists || len(clients) == 0 {
		tripClientsMu.RUnlock()
		return
	}

	clientsCopy := make([]*websocket.Conn, 0, len(clients))
	for conn := range clients {
		clientsCopy = append(clientsCopy, conn)
	}
	tripClientsMu.RUnlock()

	for _, conn := range clientsCopy {
		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			log.Printf("Failed to set write deadline for broadcast: %v", err)
			continue
		}

		err := conn.WriteJSON(map[string]string{
			"type":    "refresh",
			"message": "Trip workspace updated",
			"trip_id": strconv.FormatUint(uint64(tripID), 10),
		})

		if err != nil {
			log.Printf("Failed to broadcast refresh to client: %v", err)
			tripClientsMu.Lock()
			if clients, exists := tripClients[tripID]; exists {
				delete(clients, conn)
				if len(clients) == 0 {
					delete(tripClients, tripID)
				}
			}
			tripClientsMu.Unlock()
			conn.Close()
		}
	}
}

func WebSocket(c *gin.Context) {
	tripID, err := utils.ParseUintParam(c, "trip_id")

	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Only trip members may subscribe to the workspace feed.
	if _, ok := requireTripRole(c, tripID); !ok {
		return
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			for _, allowed := range types.AllowedOrigins {
				if origin == allowed {
					return true
				}
			}
			return false
		},
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	conn.SetReadLimit(maxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.Printf("Failed to set initial read deadline: %v", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			log.Printf("Failed to set read deadline in pong handler: %v", err)
		}
		return nil
	})

	tripClientsMu.Lock()
	if tripClients[tripID] == nil {
		tripClients[tripID] = make(map[*websocket.Conn]bool)
	}
	tripClients[tripID][conn] = true
	tripClientsMu.Unlock()

	defer func() {
		tripClientsMu.Lock()

		if clients, exists := tripClients[tripID]; exists {
			delete(clients, conn)

			if len(clients) == 0 {
				delete(tripClients, tripID)
			}
		}

		tripClientsMu.Unlock()
		conn.Close()

		log.Printf("WebSocket connection closed for trip %d", tripID)
	}()

	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		log.Printf("Failed to set write deadline for welcome message: %v", err)
		return
	}

	err = conn.WriteJSON(map[string]string{
		"type":    "connected",
		"message": "WebSocket connection established",
		"trip_id": strconv.FormatUint(uint64(tripID), 10),
	})

	if err != nil {
		log.Printf("Failed to send welcome message: %v", err)
		return
	}

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	go func() {
		for range ticker.C {
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				log.Printf("Failed to set write deadline for trip %d: %v", tripID, err)
				return
			}
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("Ping failed for trip %d: %v", tripID, err)
				return
			}
		}
	}()

	for {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			log.Printf("Failed to set read deadline for trip %d: %v", tripID, err)
			break
		}

		messageType, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error for trip %d: %v", tripID, err)
			}
			break
		}

		switch messageType {
		case websocket.TextMessage:
			log.Printf("Received message from client in trip %d: %s", tripID, string(message))
		case websocket.PongMessage:
			log.Printf("Received pong from trip %d", tripID)
		}
	}
}
