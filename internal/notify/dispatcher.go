// Package notify delivers proposal notifications to the operator's chat
// with inline approve/edit/skip controls. Delivery is best-effort: failures
// are logged, never returned to the pipeline.
package notify

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/scopelock/leadflow/internal/model"
	"github.com/scopelock/leadflow/internal/resilience"
	"github.com/scopelock/leadflow/pkg/telegram"
)

// Callback actions encoded into inline button tokens as "<action>_<jobID>".
const (
	ActionSubmit = "submit"
	ActionEdit   = "edit"
	ActionSkip   = "skip"
)

const previewLength = 400

// Dispatcher sends proposal notifications and operator messages.
type Dispatcher struct {
	client telegram.Client
	chatID string
	retry  resilience.RetryConfig
}

// NewDispatcher creates a Dispatcher delivering to the given operator chat.
func NewDispatcher(client telegram.Client, chatID string) *Dispatcher {
	cfg := resilience.DefaultRetryConfig()
	cfg.OnRetry = resilience.RetryLogger("telegram", "send")
	return &Dispatcher{
		client: client,
		chatID: chatID,
		retry:  cfg,
	}
}

// NotifyProposal sends the evaluation summary with inline controls, then
// uploads the full proposal as a text attachment. Never returns an error.
func (d *Dispatcher) NotifyProposal(ctx context.Context, job model.Job, eval model.Evaluation, proposal model.Proposal) {
	if d.chatID == "" {
		zap.L().Error("notify: telegram not configured, skipping notification",
			zap.String("job_id", job.ID),
		)
		return
	}

	msg := telegram.Message{
		ChatID:         d.chatID,
		Text:           BuildSummary(job, eval, proposal.Text),
		ParseMode:      "Markdown",
		DisablePreview: true,
		ReplyMarkup: &telegram.InlineKeyboard{
			InlineKeyboard: [][]telegram.Button{{
				{Text: "✅ Submit", CallbackData: ActionSubmit + "_" + job.ID},
				{Text: "✏️ Edit", CallbackData: ActionEdit + "_" + job.ID},
				{Text: "❌ Skip", CallbackData: ActionSkip + "_" + job.ID},
			}},
		},
	}

	err := resilience.Do(ctx, d.retry, func(ctx context.Context) error {
		return d.client.SendMessage(ctx, msg)
	})
	if err != nil {
		zap.L().Error("notify: send failed",
			zap.String("job_id", job.ID),
			zap.Error(err),
		)
		return
	}

	zap.L().Info("notify: notification sent", zap.String("job_id", job.ID))

	doc := telegram.Document{
		ChatID:   d.chatID,
		Filename: fmt.Sprintf("proposal_%s.txt", job.ID),
		Content:  []byte(proposal.Text),
		Caption:  "Full proposal for: " + job.Title,
	}
	err = resilience.Do(ctx, d.retry, func(ctx context.Context) error {
		return d.client.SendDocument(ctx, doc)
	})
	if err != nil {
		zap.L().Error("notify: document upload failed",
			zap.String("job_id", job.ID),
			zap.Error(err),
		)
	}
}

// SendOperatorMessage delivers a plain instructional message to a specific
// chat (used by callback handling). Never returns an error.
func (d *Dispatcher) SendOperatorMessage(ctx context.Context, chatID, text string) {
	msg := telegram.Message{
		ChatID:    chatID,
		Text:      text,
		ParseMode: "Markdown",
	}
	err := resilience.Do(ctx, d.retry, func(ctx context.Context) error {
		return d.client.SendMessage(ctx, msg)
	})
	if err != nil {
		zap.L().Error("notify: operator message failed",
			zap.String("chat_id", chatID),
			zap.Error(err),
		)
	}
}

// BuildSummary renders the notification text: confidence header, listing
// facts, the evaluator's reasoning, and a truncated proposal preview.
func BuildSummary(job model.Job, eval model.Evaluation, proposal string) string {
	header := "⚠️ **REVIEW NEEDED**"
	if eval.Confidence >= 80 {
		header = "✅ **HIGH CONFIDENCE**"
	}

	preview := proposal
	if r := []rune(preview); len(r) > previewLength {
		preview = string(r[:previewLength]) + "..."
	}

	feedName := job.FeedName
	if feedName == "" {
		feedName = "Unknown"
	}

	return fmt.Sprintf(`%s (%d%%)

📋 **%s**
💰 Budget: %s
📊 Client: %s spent, %s⭐, %d hires
📢 Proposals: %d
🎯 Feed: %s

**Evaluator reasoning:**
%s

**Urgency:** %d/10 | **Pain:** %d/10

**Proposal preview:**
%s

[Full proposal attached below]

🔗 %s`,
		header, eval.Confidence,
		job.Title, job.Budget,
		job.Client.TotalSpent, job.Client.Rating, job.Client.Hires,
		job.ProposalsCount, feedName,
		eval.Reason,
		eval.Urgency, eval.Pain,
		preview,
		job.Link,
	)
}
