package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/scopelock/leadflow/internal/model"
	"github.com/scopelock/leadflow/internal/notify"
	"github.com/scopelock/leadflow/internal/store"
)

// callbackUpdate is the relevant subset of the bot API's callback payload.
type callbackUpdate struct {
	CallbackQuery *callbackQuery `json:"callback_query"`
}

type callbackQuery struct {
	Data string       `json:"data"`
	From callbackUser `json:"from"`
}

type callbackUser struct {
	ID int64 `json:"id"`
}

// handleBotCallback routes operator button presses. The bot API retries
// failed callbacks aggressively, so this handler always answers {ok:true}.
func (s *Server) handleBotCallback(w http.ResponseWriter, r *http.Request) {
	defer writeJSON(w, http.StatusOK, map[string]any{"ok": true})

	var update callbackUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		zap.L().Error("server: callback decode failed", zap.Error(err))
		return
	}
	if update.CallbackQuery == nil {
		return
	}

	action, jobID, ok := splitCallbackData(update.CallbackQuery.Data)
	if !ok {
		zap.L().Warn("server: malformed callback data",
			zap.String("data", update.CallbackQuery.Data),
		)
		return
	}
	chatID := strconv.FormatInt(update.CallbackQuery.From.ID, 10)

	zap.L().Info("server: operator callback",
		zap.String("action", action),
		zap.String("job_id", jobID),
	)

	if err := s.applyCallback(r.Context(), action, jobID, chatID); err != nil {
		zap.L().Error("server: callback handling failed",
			zap.String("action", action),
			zap.String("job_id", jobID),
			zap.Error(err),
		)
	}
}

func (s *Server) applyCallback(ctx context.Context, action, jobID, chatID string) error {
	pa, err := s.store.GetApproval(ctx, jobID)
	if eris.Is(err, store.ErrNotFound) {
		s.notifyOperator(ctx, chatID, "❌ Proposal not found (may have expired)")
		return nil
	}
	if err != nil {
		return eris.Wrap(err, "server: get approval")
	}

	switch action {
	case notify.ActionSubmit:
		s.notifyOperator(ctx, chatID, submitInstructions(pa))
		// Kept, not deleted: a later "sent" follow-up still references it.
		if err := s.store.MarkApproved(ctx, jobID, time.Now().UTC()); err != nil {
			return eris.Wrap(err, "server: mark approved")
		}

	case notify.ActionEdit:
		s.notifyOperator(ctx, chatID, editEcho(pa))

	case notify.ActionSkip:
		s.notifyOperator(ctx, chatID, "⏭️ Skipped. No action taken.")
		if err := s.store.DeleteApproval(ctx, jobID); err != nil {
			return eris.Wrap(err, "server: delete approval")
		}

	default:
		zap.L().Warn("server: unknown callback action", zap.String("action", action))
	}

	return nil
}

// notifyOperator relays a message to the operator chat when a dispatcher is
// configured. Callback state changes apply either way.
func (s *Server) notifyOperator(ctx context.Context, chatID, text string) {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.SendOperatorMessage(ctx, chatID, text)
}

// splitCallbackData parses the "<action>_<jobID>" token carried by inline
// buttons. Job IDs never contain underscores except the generated "gen_"
// prefix, so only the first underscore separates.
func splitCallbackData(data string) (action, jobID string, ok bool) {
	action, jobID, found := strings.Cut(data, "_")
	if !found || action == "" || jobID == "" {
		return "", "", false
	}
	return action, jobID, true
}

func submitInstructions(pa *model.PendingApproval) string {
	return fmt.Sprintf(`✅ Approved! Here's what to do:

1. Open: %s
2. Click "Submit Proposal"
3. Copy the proposal below and paste into cover letter
4. Set your bid amount
5. Submit

**Full proposal:**
%s

---

Reply "sent %s" when done to update tracker.`, pa.Job.Link, pa.Proposal, pa.JobID)
}

func editEcho(pa *model.PendingApproval) string {
	return fmt.Sprintf(`✏️ Edit mode:

**Current proposal:**
%s

Send me your edited version and I'll update it.`, pa.Proposal)
}
