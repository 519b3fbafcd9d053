package evaluator

import (
	"fmt"
	"strings"

	"github.com/scopelock/leadflow/internal/model"
)

// BuildPrompt renders the bounded evaluation request for a job: listing
// content, client reputation, competitive context, and the three-tier
// decision guidance the engine must apply.
func BuildPrompt(job model.Job) string {
	var b strings.Builder

	b.WriteString("You are the lead intelligence evaluator for a fixed-price AI delivery studio.\n\n")

	b.WriteString("**JOB POST:**\n\n")
	fmt.Fprintf(&b, "Title: %s\n", job.Title)
	fmt.Fprintf(&b, "Budget: %s\n", job.Budget)
	fmt.Fprintf(&b, "Description:\n%s\n\n", job.Description)

	b.WriteString("**CLIENT INFO:**\n\n")
	fmt.Fprintf(&b, "- Total spent: %s\n", job.Client.TotalSpent)
	fmt.Fprintf(&b, "- Rating: %s\n", job.Client.Rating)
	fmt.Fprintf(&b, "- Hires: %d\n", job.Client.Hires)
	fmt.Fprintf(&b, "- Payment verified: %t\n", job.Client.PaymentVerified)
	fmt.Fprintf(&b, "- Location: %s\n\n", job.Client.Location)

	b.WriteString("**COMPETITION:**\n\n")
	fmt.Fprintf(&b, "- Current proposals: %d\n\n", job.ProposalsCount)

	b.WriteString("**CONTEXT:**\n\n")
	fmt.Fprintf(&b, "- Feed: %s\n", job.FeedName)
	fmt.Fprintf(&b, "- Link: %s\n\n", job.Link)

	b.WriteString("---\n\n**EVALUATE THIS JOB:**\n\n")
	b.WriteString("Use the three-tier evaluation system:\n\n")
	b.WriteString("**STRONG GO:** Payment verified + $3K+ budget + $5K+ client spend\n")
	b.WriteString("**QUALIFIED MAYBE:** Payment verified + $2K+ budget + one positive signal\n")
	b.WriteString("**HARD NO:** Payment unverified, <$2K, wrong domain\n\n")

	b.WriteString("**OUTPUT FORMAT (required):**\n\n")
	b.WriteString("DECISION: [GO or NO-GO]\n")
	b.WriteString("REASON: [One clear sentence explaining why]\n")
	b.WriteString("URGENCY: [1-10, how time-sensitive is this]\n")
	b.WriteString("PAIN: [1-10, how painful is their problem]\n")
	b.WriteString("CONFIDENCE: [0-100, how confident are you in this decision]\n\n")

	b.WriteString("Remember:\n")
	b.WriteString("- We do fixed-price milestones with Evidence Sprints\n")
	b.WriteString("- We prove value with executable acceptance criteria\n")
	b.WriteString("- Sweet spot: $3-15K AI/ML projects with serious clients\n\n")
	b.WriteString("GO if this is a good fit. NO-GO if not. Be decisive.")

	return b.String()
}
