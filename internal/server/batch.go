package server

import (
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/scopelock/leadflow/internal/model"
)

// handleJobBatch receives a batch of listings, acknowledges immediately, and
// fans the jobs out for asynchronous processing. Internal failures still
// yield a 200 unless strict errors are configured: the monitoring service
// auto-disables webhooks that keep failing.
func (s *Server) handleJobBatch(w http.ResponseWriter, r *http.Request) {
	zap.L().Info("server: batch received", zap.Time("at", time.Now().UTC()))

	if s.cfg.WebhookSecret != "" && !s.authorized(r) {
		zap.L().Error("server: invalid webhook authentication")
		writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "Unauthorized"})
		return
	}

	var payload model.BatchPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		zap.L().Error("server: batch decode failed", zap.Error(err))
		status := http.StatusOK
		if s.cfg.StrictErrors {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, map[string]any{"received": true, "error": err.Error()})
		return
	}

	if len(payload.Projects) == 0 {
		zap.L().Warn("server: no projects in batch payload")
		writeJSON(w, http.StatusOK, map[string]any{"received": true, "processed": 0})
		return
	}

	// Acknowledge before processing: the upstream delivery timeout is short.
	writeJSON(w, http.StatusOK, map[string]any{
		"received":   true,
		"total":      payload.Total,
		"processing": len(payload.Projects),
	})

	go s.pipeline.ProcessBatch(s.baseCtx, payload)
}

// authorized checks the Basic auth header the monitoring service sends:
// base64 of ":" + secret, with an empty username.
func (s *Server) authorized(r *http.Request) bool {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		zap.L().Warn("server: no authorization header in webhook request")
		return false
	}

	expected := "Basic " + base64.StdEncoding.EncodeToString([]byte(":"+s.cfg.WebhookSecret))
	return subtle.ConstantTimeCompare([]byte(authHeader), []byte(expected)) == 1
}

// handleHealth reports service status and the current approval store size.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	count, err := s.store.ApprovalCount(r.Context())
	if err != nil {
		zap.L().Warn("server: approval count failed", zap.Error(err))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":          "healthy",
		"service":         "leadflow-webhook",
		"timestamp":       time.Now().UTC().Format(time.RFC3339),
		"proposalsStored": count,
	})
}
