package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// drainWelcomeMessage drains the welcome message sent during client registration
func drainWelcomeMessage(client *Client) {
	select {
	case <-client.Send:
	case <-time.After(100 * time.Millisecond):
	}
}

func newTestClient(hub *Hub, id string, buffer int) *Client {
	return &Client{
		ID:          id,
		RemoteAddr:  "127.0.0.1",
		Send:        make(chan []byte, buffer),
		Hub:         hub,
		ConnectedAt: time.Now(),
		LastPing:    time.Now(),
	}
}

func TestRegisterSendsWelcome(t *testing.T) {
	hub := NewHub()
	client := newTestClient(hub, "c1", 4)
	hub.RegisterClient(client)

	select {
	case raw := <-client.Send:
		var msg Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if msg.Type != TypeConnection {
			t.Errorf("Type = %q, want %q", msg.Type, TypeConnection)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("welcome message not sent")
	}

	if hub.GetConnectionCount() != 1 {
		t.Errorf("GetConnectionCount = %d, want 1", hub.GetConnectionCount())
	}
	hub.UnregisterClient(client)
	if hub.GetConnectionCount() != 0 {
		t.Errorf("GetConnectionCount after unregister = %d", hub.GetConnectionCount())
	}
	// segunda remoção não deve entrar em pânico
	hub.UnregisterClient(client)
}

func TestBroadcastDropsSlowClients(t *testing.T) {
	hub := NewHub()
	fast := newTestClient(hub, "fast", 4)
	slow := newTestClient(hub, "slow", 1)
	hub.RegisterClient(fast)
	hub.RegisterClient(slow)
	drainWelcomeMessage(fast)
	// slow continua com a mensagem de boas-vindas na fila cheia

	hub.Notify(TypeModelUpdated, map[string]string{"model_id": "m1"})

	select {
	case raw := <-fast.Send:
		var msg Message
		if err := json.Unmarshal(raw, &msg); err != nil || msg.Type != TypeModelUpdated {
			t.Errorf("unexpected message %s (%v)", raw, err)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("fast client did not receive broadcast")
	}

	if hub.GetConnectionCount() != 1 {
		t.Errorf("slow client should be dropped, connections = %d", hub.GetConnectionCount())
	}
}

// **Feature: capacidad-recursos, Property 6: Model updates reach every dashboard**
// For any number of connected clients, a broadcast is delivered once to each
func TestBroadcastDeliveryProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("every client receives the update", prop.ForAll(
		func(n int, modelID string) bool {
			hub := NewHub()
			clients := make([]*Client, n)
			for i := range clients {
				clients[i] = newTestClient(hub, fmt.Sprintf("c%d", i), 4)
				hub.RegisterClient(clients[i])
				drainWelcomeMessage(clients[i])
			}

			hub.Notify(TypeModelUpdated, map[string]string{"model_id": modelID})

			for _, c := range clients {
				select {
				case raw := <-c.Send:
					var msg struct {
						Type string            `json:"type"`
						Data map[string]string `json:"data"`
					}
					if err := json.Unmarshal(raw, &msg); err != nil {
						return false
					}
					if msg.Type != TypeModelUpdated || msg.Data["model_id"] != modelID {
						return false
					}
				case <-time.After(100 * time.Millisecond):
					return false
				}
				if len(c.Send) != 0 {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 20),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

func TestServeWSPingPong(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub()
	go hub.Run(ctx)

	router := gin.New()
	router.GET("/ws", hub.ServeWS)
	srv := httptest.NewServer(router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var welcome Message
	if err := conn.ReadJSON(&welcome); err != nil || welcome.Type != TypeConnection {
		t.Fatalf("welcome = %+v, err = %v", welcome, err)
	}

	if err := conn.WriteJSON(Message{Type: "ping"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	var pong Message
	if err := conn.ReadJSON(&pong); err != nil || pong.Type != TypePong {
		t.Fatalf("pong = %+v, err = %v", pong, err)
	}
}
