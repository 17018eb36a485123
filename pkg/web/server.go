package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/ritzau/folia-viewer/pkg/logging"
	"github.com/ritzau/folia-viewer/pkg/provider"
	"github.com/ritzau/folia-viewer/pkg/pubsub"
	"github.com/ritzau/folia-viewer/pkg/viewer"
)

//go:embed static/*
var staticFiles embed.FS

// maxBodyBytes bounds request bodies. Search requests are small.
const maxBodyBytes = 1 << 20

// topics that may be subscribed to over SSE.
var topics = map[string]bool{
	pubsub.TopicStatus: true,
	pubsub.TopicFrame:  true,
	pubsub.TopicPatch:  true,
}

// Server represents the web server
type Server struct {
	router    *mux.Router
	handler   http.Handler
	viewer    *viewer.Viewer
	publisher pubsub.Publisher
}

// NewServer creates a web server in front of v. Subscriptions are served
// from publisher, which should be the one v publishes to.
func NewServer(v *viewer.Viewer, publisher pubsub.Publisher) *Server {
	s := &Server{
		router:    mux.NewRouter(),
		viewer:    v,
		publisher: publisher,
	}
	s.setupRoutes()
	s.handler = logging.NewRequestMiddleware("/api/graph/input", "/health/")(s.router)
	return s
}

// Handler returns the router wrapped in request logging.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) setupRoutes() {
	// SSE subscription endpoints
	s.router.HandleFunc("/api/subscribe/{topic}", s.handleSubscribe).Methods("GET")

	// Graph API
	s.router.HandleFunc("/api/graphs/search", s.handleSearch).Methods("POST")
	s.router.HandleFunc("/api/graph/reload", s.handleReload).Methods("POST")
	s.router.HandleFunc("/api/graph/status", s.handleStatus).Methods("GET")
	s.router.HandleFunc("/api/graph/frame", s.handleFrame).Methods("GET")
	s.router.HandleFunc("/api/graph/input", s.handleInput).Methods("POST")
	s.router.HandleFunc("/api/graph/tidy", s.handleTidy).Methods("POST")

	// Operations
	s.router.HandleFunc("/health/live", s.handleLive).Methods("GET")
	s.router.HandleFunc("/health/ready", s.handleReady).Methods("GET")
	s.router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Serve static files
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		logging.Fatal("failed to open embedded static files", "error", err)
	}
	s.router.PathPrefix("/").Handler(http.FileServer(http.FS(staticFS)))
}

func (s *Server) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	topic := mux.Vars(r)["topic"]
	if !topics[topic] {
		http.Error(w, fmt.Sprintf("unknown topic %q", topic), http.StatusNotFound)
		return
	}

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	// Send initial comment to establish connection (Safari compatibility)
	fmt.Fprintf(w, ": connected\n\n")
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}

	sub, err := s.publisher.Subscribe(r.Context(), topic)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer sub.Close()

	for event := range sub.Events() {
		if err := pubsub.WriteSSE(w, event); err != nil {
			logging.DebugContext(r.Context(), "SSE client went away", "topic", topic, "error", err)
			return
		}
		if flusher, ok := w.(http.Flusher); ok {
			flusher.Flush()
		}
	}
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req provider.Request
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := s.viewer.Load(r.Context(), req)
	s.writeLoadResult(w, result, err)
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	result, err := s.viewer.Reload(r.Context())
	if errors.Is(err, viewer.ErrNothingToReload) {
		writeError(w, http.StatusConflict, err)
		return
	}
	s.writeLoadResult(w, result, err)
}

func (s *Server) writeLoadResult(w http.ResponseWriter, result *viewer.Result, err error) {
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, result)
	case errors.Is(err, provider.ErrInvalidRequest):
		writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, viewer.ErrSuperseded):
		writeError(w, http.StatusConflict, err)
	case result != nil:
		// Fetch failures still carry the error status for display.
		writeJSON(w, http.StatusBadGateway, result)
	default:
		writeError(w, http.StatusBadGateway, err)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.viewer.Status())
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	frame, err := s.viewer.Frame()
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, frame)
}

func (s *Server) handleInput(w http.ResponseWriter, r *http.Request) {
	var ev viewer.InputEvent
	if err := decodeJSON(w, r, &ev); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := s.viewer.Input(ev)
	switch {
	case errors.Is(err, viewer.ErrNoSession):
		writeError(w, http.StatusNotFound, err)
	case err != nil:
		writeError(w, http.StatusBadRequest, err)
	default:
		writeJSON(w, http.StatusOK, result)
	}
}

func (s *Server) handleTidy(w http.ResponseWriter, r *http.Request) {
	result, err := s.viewer.Tidy()
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady fails while a graph load is in flight.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	status := s.viewer.Status()
	if !s.viewer.Ready() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": status.State})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": status.State})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Warn("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// Start serves on host:port until ctx is cancelled, then shuts down
// gracefully. It returns nil after a clean shutdown.
func (s *Server) Start(ctx context.Context, host string, port int) error {
	addr := net.JoinHostPort(host, strconv.Itoa(port))
	// Requests inherit ctx so open SSE streams end on shutdown.
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info("starting web server", "url", "http://"+addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("web server failed: %w", err)
	case <-ctx.Done():
	}

	logging.Info("shutting down web server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("web server shutdown failed: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
