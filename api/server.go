package api

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/matt-g-everett/afterimage/stream"
)

const snapshotInterval = 200 * time.Millisecond

// Api serves snapshots of the running scene over HTTP.
type Api struct {
	mu     sync.RWMutex
	latest *stream.Frame
	timer  stream.Timer
	server *http.Server
}

// NewApi creates an Api listening on addr once Serve is called.
func NewApi(addr string) *Api {
	a := new(Api)
	mux := http.NewServeMux()
	mux.HandleFunc("/frame.png", a.handleFrame)
	mux.HandleFunc("/healthz", a.handleHealth)
	a.server = &http.Server{Addr: addr, Handler: mux}
	return a
}

// Observe keeps a copy of the most recent frame. Copies are taken at a
// reduced rate since the render loop calls this every frame.
func (a *Api) Observe(f *stream.Frame, now time.Time) {
	a.mu.RLock()
	first := a.latest == nil
	a.mu.RUnlock()
	if first {
		a.timer.Restart(now)
	} else if !a.timer.Fired(now, snapshotInterval) {
		return
	}
	snapshot := f.Clone()
	a.mu.Lock()
	a.latest = snapshot
	a.mu.Unlock()
}

func (a *Api) handleFrame(w http.ResponseWriter, r *http.Request) {
	a.mu.RLock()
	f := a.latest
	a.mu.RUnlock()
	if f == nil {
		http.Error(w, "no frame rendered yet", http.StatusServiceUnavailable)
		return
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, f.Image()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(buf.Bytes())
}

func (a *Api) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("ok\n"))
}

// Handler exposes the routes, mainly for tests.
func (a *Api) Handler() http.Handler {
	return a.server.Handler
}

// Serve listens until Shutdown is called.
func (a *Api) Serve() {
	log.Printf("Listening on %s...", a.server.Addr)
	if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("api: %v", err)
	}
}

// Shutdown stops the server.
func (a *Api) Shutdown(ctx context.Context) error {
	return a.server.Shutdown(ctx)
}
