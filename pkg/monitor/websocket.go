package monitor

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"digital.vasic.exercises/pkg/metrics"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebSocketServer exposes live session progress over HTTP: a
// WebSocket event stream at /ws, JSON snapshots at /stats and
// /board, and Prometheus text metrics at /metrics.
type WebSocketServer struct {
	mu        sync.RWMutex
	collector *EventCollector
	board     *BoardData
	metrics   *metrics.Collector
	clients   map[chan []byte]struct{}
	addr      string
	server    *http.Server
}

// NewWebSocketServer creates a new live monitoring server.
func NewWebSocketServer(
	addr string,
	collector *EventCollector,
	board *BoardData,
	collectorMetrics *metrics.Collector,
) *WebSocketServer {
	s := &WebSocketServer{
		addr:      addr,
		collector: collector,
		board:     board,
		metrics:   collectorMetrics,
		clients:   make(map[chan []byte]struct{}),
	}
	s.collector.OnEvent(func(event SessionEvent) {
		s.board.UpdateFromEvent(event)
		data, err := json.Marshal(event)
		if err != nil {
			return
		}
		s.broadcast(data)
	})
	return s
}

// Handler returns the HTTP handler serving all monitor
// endpoints.
func (s *WebSocketServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/stats", s.handleStats)
	mux.HandleFunc("/board", s.handleBoard)
	mux.HandleFunc("/metrics", s.handleMetrics)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	return mux
}

// Start begins serving until ctx is cancelled.
func (s *WebSocketServer) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		s.server.Close()
	}()

	if err := s.server.ListenAndServe(); err != http.ErrServerClosed {
		return fmt.Errorf("monitor server: %w", err)
	}
	return nil
}

// Stop gracefully shuts down the server.
func (s *WebSocketServer) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

func (s *WebSocketServer) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ch := make(chan []byte, 32)
	s.mu.Lock()
	s.clients[ch] = struct{}{}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.clients, ch)
		s.mu.Unlock()
	}()

	// Send the current board state first so a client joining
	// mid-session starts from a complete picture.
	snap := s.board.Snapshot()
	if data, err := json.Marshal(snap); err == nil {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}

	// Reader goroutine detects the client going away.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-done:
			return
		case data := <-ch:
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		}
	}
}

func (s *WebSocketServer) handleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.collector.Stats())
}

func (s *WebSocketServer) handleBoard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	snap := s.board.Snapshot()
	json.NewEncoder(w).Encode(snap)
}

func (s *WebSocketServer) handleMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	if s.metrics == nil {
		return
	}
	fmt.Fprint(w, s.metrics.Render())
}

func (s *WebSocketServer) broadcast(data []byte) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for ch := range s.clients {
		select {
		case ch <- data:
		default:
			// Client too slow, skip
		}
	}
}
