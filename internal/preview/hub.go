package preview

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/funtimes-cube4/internal/voxel"
)

const (
	writeWait = 200 * time.Millisecond
	sendQueue = 8 // frames buffered per client before new ones are skipped
)

// client owns one connection. Only its writer goroutine touches conn for
// writing.
type client struct {
	conn *websocket.Conn
	send chan []byte
}

func (cl *client) writeLoop() {
	defer cl.conn.Close()
	for b := range cl.send {
		cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := cl.conn.WriteMessage(websocket.TextMessage, b); err != nil {
			log.Debug().Err(err).Str("remote", cl.conn.RemoteAddr().String()).Msg("drop preview client")
			return
		}
	}
}

// Hub fans committed frames out to websocket viewers. It is read-only:
// anything a client sends is discarded.
type Hub struct {
	mu      sync.Mutex
	layout  voxel.Layout
	driver  string
	clients map[*client]bool
	frameID uint64
	last    []byte
	start   time.Time
}

func NewHub(l voxel.Layout, driver string) *Hub {
	return &Hub{
		layout:  l,
		driver:  driver,
		clients: map[*client]bool{},
		start:   time.Now(),
	}
}

type frameMsg struct {
	T       int64  `json:"t"`
	FrameID uint64 `json:"frame_id"`
	RGB     []byte `json:"rgb"`
}

// WriteFrame implements voxel.Sink. It never waits on the network: a
// client whose queue is full misses the frame.
func (h *Hub) WriteFrame(f *voxel.Frame) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.frameID = f.Seq
	h.last = append(h.last[:0], f.RGB...)
	if len(h.clients) == 0 {
		return nil
	}
	b, err := json.Marshal(frameMsg{T: time.Now().UnixNano(), FrameID: f.Seq, RGB: h.last})
	if err != nil {
		return err
	}
	for cl := range h.clients {
		select {
		case cl.send <- b:
		default:
		}
	}
	return nil
}

func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) register(cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[cl] = true
	h.queueHello(cl)
}

// unregister stops cl's writer; it is safe to call more than once.
func (h *Hub) unregister(cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[cl] {
		delete(h.clients, cl)
		close(cl.send)
	}
}

func (h *Hub) HandleFramesWS(w http.ResponseWriter, r *http.Request) {
	up := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	cl := &client{conn: conn, send: make(chan []byte, sendQueue)}
	h.register(cl)
	go cl.writeLoop()

	go func() {
		defer h.unregister(cl)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// queueHello queues the topology and, when there is one, the latest frame.
// Callers hold h.mu.
func (h *Hub) queueHello(cl *client) {
	top := map[string]any{
		"dim":    map[string]int{"x": voxel.Size, "y": voxel.Size, "z": voxel.Size},
		"order":  map[string]bool{"xFlipEveryRow": h.layout.Order.XFlipEveryRow, "yFlipEveryLayer": h.layout.Order.YFlipEveryLayer},
		"count":  h.layout.Count(),
		"driver": h.driver,
	}
	b, _ := json.Marshal(top)
	cl.send <- b

	if h.frameID == 0 {
		return
	}
	b, _ = json.Marshal(frameMsg{T: time.Now().UnixNano(), FrameID: h.frameID, RGB: h.last})
	cl.send <- b
}

func (h *Hub) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	resp := map[string]any{
		"frame_id": h.frameID,
		"uptime_s": time.Since(h.start).Seconds(),
		"count":    h.layout.Count(),
		"clients":  len(h.clients),
		"driver":   h.driver,
	}
	h.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.HandleFramesWS)
	mux.HandleFunc("/health", h.HandleHealth)
	return mux
}

// Serve listens on addr until ctx is done.
func (h *Hub) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: h.Handler()}
	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(sctx)
		h.closeAll()
	}()
	log.Info().Str("addr", addr).Msg("preview listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for cl := range h.clients {
		delete(h.clients, cl)
		close(cl.send)
	}
}
