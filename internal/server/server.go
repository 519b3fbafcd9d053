// Package server exposes the webhook surface: batch ingress from the
// monitoring service, operator button-press callbacks from the chat bot, and
// a health endpoint.
package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/scopelock/leadflow/internal/config"
	"github.com/scopelock/leadflow/internal/notify"
	"github.com/scopelock/leadflow/internal/pipeline"
	"github.com/scopelock/leadflow/internal/store"
)

// Server holds the webhook handlers and their dependencies.
type Server struct {
	cfg        config.ServerConfig
	pipeline   *pipeline.Pipeline
	store      store.Store
	dispatcher *notify.Dispatcher

	// baseCtx outlives individual requests: batch processing continues
	// after the webhook response is written, and stops on shutdown.
	baseCtx context.Context
}

// New creates a Server. baseCtx governs asynchronous work spawned by
// handlers; cancel it to stop in-flight batch processing.
func New(baseCtx context.Context, cfg config.ServerConfig, p *pipeline.Pipeline, st store.Store, d *notify.Dispatcher) *Server {
	return &Server{
		cfg:        cfg,
		pipeline:   p,
		store:      st,
		dispatcher: d,
		baseCtx:    baseCtx,
	}
}

// Routes returns the HTTP mux with all webhook endpoints registered.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/webhook/job-batch", requireMethod(http.MethodPost, s.handleJobBatch))
	mux.HandleFunc("/webhook/bot-callback", requireMethod(http.MethodPost, s.handleBotCallback))
	mux.HandleFunc("/health", requireMethod(http.MethodGet, s.handleHealth))
	return mux
}

// requireMethod emulates the method-qualified ServeMux patterns available in
// newer Go releases: wrong-method requests get 405 with an Allow header.
func requireMethod(method string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			w.Header().Set("Allow", method)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		h(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
