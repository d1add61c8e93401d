package services

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Event names pushed to connected dashboards
const (
	EventLoanCreated     = "loan_created"
	EventPaymentRecorded = "payment_recorded"
	EventLoanClosed      = "loan_closed"
)

// Event is a real-time notification pushed to a shop's open sessions
type Event struct {
	Type   string      `json:"type"`
	ShopID int64       `json:"shopId,omitempty"`
	Data   interface{} `json:"data,omitempty"`
}

// Client is one connected dashboard session
type Client struct {
	ID     string
	ShopID int64
	Conn   *websocket.Conn
	Send   chan Event
	hub    *Hub
}

// Hub maintains the set of connected clients grouped by shop and fans
// events out to them
type Hub struct {
	clients    map[*Client]bool
	shops      map[int64]map[*Client]bool
	broadcast  chan Event
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
}

// EventService upgrades connections and pushes shop-scoped events
type EventService struct {
	hub      *Hub
	upgrader websocket.Upgrader
	auth     *AuthService
}

// NewEventService creates a new event service and starts its hub
func NewEventService(auth *AuthService) *EventService {
	hub := &Hub{
		clients:    make(map[*Client]bool),
		shops:      make(map[int64]map[*Client]bool),
		broadcast:  make(chan Event),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}

	service := &EventService{
		hub: hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		auth: auth,
	}

	go hub.run()
	return service
}

// HandleWebSocket authenticates the connection and joins it to its shop.
// Browsers cannot set headers on websocket upgrades, so the token comes
// in a query parameter.
func (s *EventService) HandleWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Missing token"})
		return
	}

	claims, err := s.auth.ValidateToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid token"})
		return
	}

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.WithError(err).Warn("websocket upgrade failed")
		return
	}

	client := &Client{
		ID:     uuid.NewString(),
		ShopID: claims.ShopID,
		Conn:   conn,
		Send:   make(chan Event, 256),
		hub:    s.hub,
	}

	s.hub.register <- client

	go client.writePump()
	go client.readPump()
}

// Publish sends an event to every open session of one shop
func (s *EventService) Publish(shopID int64, eventType string, data interface{}) {
	s.hub.broadcast <- Event{Type: eventType, ShopID: shopID, Data: data}
}

func (h *Hub) run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			if h.shops[client.ShopID] == nil {
				h.shops[client.ShopID] = make(map[*Client]bool)
			}
			h.shops[client.ShopID][client] = true
			h.mutex.Unlock()

			select {
			case client.Send <- Event{Type: "connected"}:
			default:
				h.drop(client)
			}

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				h.removeFromShop(client)
				close(client.Send)
			}
			h.mutex.Unlock()

		case event := <-h.broadcast:
			h.mutex.RLock()
			clients := h.shops[event.ShopID]
			var stale []*Client
			for client := range clients {
				select {
				case client.Send <- event:
				default:
					stale = append(stale, client)
				}
			}
			h.mutex.RUnlock()

			for _, client := range stale {
				h.drop(client)
			}
		}
	}
}

func (h *Hub) drop(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		h.removeFromShop(client)
		close(client.Send)
	}
}

// removeFromShop must be called with the hub mutex held
func (h *Hub) removeFromShop(client *Client) {
	if shopClients, ok := h.shops[client.ShopID]; ok {
		delete(shopClients, client)
		if len(shopClients) == 0 {
			delete(h.shops, client.ShopID)
		}
	}
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.Conn.Close()
	}()

	for {
		var event Event
		if err := c.Conn.ReadJSON(&event); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logrus.WithError(err).Debug("websocket read error")
			}
			break
		}

		// Clients only send pings; events flow one way
		if event.Type == "ping" {
			select {
			case c.Send <- Event{Type: "pong"}:
			default:
				return
			}
		}
	}
}

func (c *Client) writePump() {
	defer c.Conn.Close()

	for event := range c.Send {
		if err := c.Conn.WriteJSON(event); err != nil {
			logrus.WithError(err).Debug("websocket write error")
			return
		}
	}
	c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}
