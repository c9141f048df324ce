package ops

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// Server exposes the worker's health surface. Liveness is unconditional;
// readiness delegates to a probe so the binary reports ready only once its
// dependencies are reachable.
type Server struct {
	httpServer *http.Server
	ready      func(ctx context.Context) error
}

func NewServer(port string, ready func(ctx context.Context) error) *Server {
	s := &Server{ready: ready}

	router := mux.NewRouter()
	router.HandleFunc("/healthz", s.healthz).Methods("GET")
	router.HandleFunc("/readyz", s.readyz).Methods("GET")

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%s", port),
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
	return s
}

func (s *Server) Start() error {
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("ops server failed: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	writeStatus(w, http.StatusOK, "ok")
}

func (s *Server) readyz(w http.ResponseWriter, r *http.Request) {
	if s.ready != nil {
		if err := s.ready(r.Context()); err != nil {
			writeStatus(w, http.StatusServiceUnavailable, err.Error())
			return
		}
	}
	writeStatus(w, http.StatusOK, "ready")
}

func writeStatus(w http.ResponseWriter, code int, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"status": status})
}
