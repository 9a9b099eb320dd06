// Package stream pushes live simulation progress to WebSocket subscribers.
// The engine publishes step and run events through the hub while a comparison
// is executing, so dashboards can watch coverage converge in real time.
package stream

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// Event is the envelope every subscriber receives. Type discriminates the
// payload: "step" carries per-step progress, "run" carries run lifecycle.
type Event struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// StepEvent reports progress through one simulation time step.
type StepEvent struct {
	Architecture    string  `json:"architecture"`
	Step            int     `json:"step"`
	TotalSteps      int     `json:"total_steps"`
	TimeMinutes     float64 `json:"time_minutes"`
	FeasibleLinks   int     `json:"feasible_links"`
	EvaluatedLinks  int     `json:"evaluated_links"`
	CoveredSats     int     `json:"covered_sats"`
	ConstellationSz int     `json:"constellation_size"`
}

// RunEvent reports the start or completion of one architecture's run.
type RunEvent struct {
	Architecture    string  `json:"architecture"`
	Phase           string  `json:"phase"` // "started" | "finished" | "failed"
	CoveragePercent float64 `json:"coverage_percent,omitempty"`
	ElapsedMs       float64 `json:"elapsed_ms,omitempty"`
	Error           string  `json:"error,omitempty"`
}

// Hub manages WebSocket subscribers and fans events out to all of them.
// It is safe for concurrent use; register, unregister, and broadcast all
// go through channels owned by the Run loop.
type Hub struct {
	subscribers map[*websocket.Conn]struct{}
	register    chan *websocket.Conn
	unregister  chan *websocket.Conn
	events      chan []byte
	upgrader    websocket.Upgrader
}

// NewHub allocates a hub with buffered channels.
// Call Run in a goroutine to start the event loop.
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[*websocket.Conn]struct{}),
		register:    make(chan *websocket.Conn, 16),
		unregister:  make(chan *websocket.Conn, 16),
		events:      make(chan []byte, 256),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// Run processes registrations, unregistrations, event fan-out, and keepalive
// pings in a single select loop. It closes all subscribers when ctx is
// cancelled.
func (h *Hub) Run(ctx context.Context) {
	ping := time.NewTicker(20 * time.Second)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			for c := range h.subscribers {
				_ = c.Close()
			}
			return

		case c := <-h.register:
			h.subscribers[c] = struct{}{}

		case c := <-h.unregister:
			delete(h.subscribers, c)
			_ = c.Close()

		case msg := <-h.events:
			for c := range h.subscribers {
				_ = c.SetWriteDeadline(time.Now().Add(3 * time.Second))
				if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
					delete(h.subscribers, c)
					_ = c.Close()
				}
			}

		case <-ping.C:
			for c := range h.subscribers {
				_ = c.SetWriteDeadline(time.Now().Add(2 * time.Second))
				if err := c.WriteMessage(websocket.PingMessage, nil); err != nil {
					delete(h.subscribers, c)
					_ = c.Close()
				}
			}
		}
	}
}

// Handler returns an http.Handler that upgrades incoming requests to
// WebSocket connections and registers them as subscribers.
func (h *Hub) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := h.upgrader.Upgrade(w, r, nil)
		if err != nil {
			http.Error(w, "websocket upgrade failed", http.StatusBadRequest)
			return
		}
		h.register <- conn

		go func() {
			defer func() { h.unregister <- conn }()
			_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
			conn.SetPongHandler(func(string) error {
				_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
				return nil
			})

			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()
	})
}

// PublishStep queues a step event for delivery to all subscribers.
func (h *Hub) PublishStep(e StepEvent) {
	h.publish("step", e)
}

// PublishRun queues a run lifecycle event for delivery to all subscribers.
func (h *Hub) PublishRun(e RunEvent) {
	h.publish("run", e)
}

// publish wraps the payload in the event envelope and enqueues it. If the
// event channel is full the message is silently dropped to avoid blocking
// the simulation loop.
func (h *Hub) publish(eventType string, payload any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return
	}
	b, err := json.Marshal(Event{Type: eventType, Payload: raw})
	if err != nil {
		return
	}
	select {
	case h.events <- b:
	default:
	}
}
