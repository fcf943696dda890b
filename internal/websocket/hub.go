package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/cleberrangel/capacidad-recursos-api/internal/logger"
	"github.com/cleberrangel/capacidad-recursos-api/internal/metrics"
)

// Tipos de mensagem enviados aos painéis
const (
	TypeConnection   = "connection"
	TypeModelUpdated = "modelo_actualizado"
	TypePong         = "pong"
)

// Hub maintains the set of active clients and broadcasts messages to the clients
type Hub struct {
	// Registered clients
	clients map[*Client]bool

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Mutex for thread-safe operations
	mutex sync.RWMutex

	// Logger
	logger *zerolog.Logger
}

// Client is a middleman between the websocket connection and the hub
type Client struct {
	// The websocket connection
	conn *websocket.Conn

	// Buffered channel of outbound messages
	Send chan []byte

	// Identificação da conexão
	ID         string
	RemoteAddr string

	// Hub reference
	Hub *Hub

	// Connection metadata
	ConnectedAt time.Time
	LastPing    time.Time

	closeOnce sync.Once
}

// Message represents a generic WebSocket message
type Message struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// painel somente leitura; qualquer origem
		return true
	},
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     logger.Global(),
	}
}

// Run processa registros até o contexto ser cancelado
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case <-ctx.Done():
			h.closeAll()
			return
		}
	}
}

// registerClient registers a new client
func (h *Hub) registerClient(client *Client) {
	h.mutex.Lock()
	h.clients[client] = true
	total := len(h.clients)
	h.mutex.Unlock()

	// Track metrics
	metrics.Get().IncrementWSConnection()

	h.logger.Info().
		Str("client_id", client.ID).
		Str("remote_addr", client.RemoteAddr).
		Int("connections", total).
		Msg("WebSocket client registered")

	// Send welcome message
	welcome := Message{
		Type:      TypeConnection,
		Data:      map[string]string{"status": "connected", "client_id": client.ID},
		Timestamp: time.Now(),
	}
	client.SendMessage(welcome)
}

// unregisterClient unregisters a client
func (h *Hub) unregisterClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if _, ok := h.clients[client]; !ok {
		return
	}
	h.dropLocked(client)

	h.logger.Info().
		Str("client_id", client.ID).
		Int("remaining_connections", len(h.clients)).
		Msg("WebSocket client unregistered")
}

// dropLocked remove o cliente e fecha o canal; exige h.mutex travado
func (h *Hub) dropLocked(client *Client) {
	delete(h.clients, client)
	client.closeSend()
	metrics.Get().DecrementWSConnection()
}

// Broadcast envia a mensagem a todos os clientes conectados. Clientes com
// fila cheia são desconectados.
func (h *Hub) Broadcast(message interface{}) {
	data, err := json.Marshal(message)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to marshal broadcast message")
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	for client := range h.clients {
		select {
		case client.Send <- data:
			metrics.Get().IncrementWSMessageOut()
		default:
			h.logger.Warn().
				Str("client_id", client.ID).
				Msg("Failed to send message to client, closing connection")
			h.dropLocked(client)
		}
	}
}

// Notify publica um evento tipado (usado pelo serviço de painel)
func (h *Hub) Notify(msgType string, data interface{}) {
	h.Broadcast(Message{
		Type:      msgType,
		Data:      data,
		Timestamp: time.Now(),
	})
}

// GetConnectionCount returns the total number of active connections
func (h *Hub) GetConnectionCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

func (h *Hub) closeAll() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for client := range h.clients {
		h.dropLocked(client)
	}
}

// RegisterClient is a public method to register a client (for testing)
func (h *Hub) RegisterClient(client *Client) {
	h.registerClient(client)
}

// UnregisterClient is a public method to unregister a client (for testing)
func (h *Hub) UnregisterClient(client *Client) {
	h.unregisterClient(client)
}
