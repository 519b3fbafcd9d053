// Package proposal assembles the outbound proposal document for accepted
// jobs: portfolio proof selection, pain-point extraction, an evidence-sprint
// scope derived from the listing, and budget-based pricing.
package proposal

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/scopelock/leadflow/internal/config"
	"github.com/scopelock/leadflow/internal/evaluator"
	"github.com/scopelock/leadflow/internal/model"
)

// painPhrases flag sentences in a description that describe the client's
// actual problem.
var painPhrases = []string{
	"struggling with",
	"need help",
	"looking for",
	"want to",
	"trying to",
	"challenge",
	"problem",
	"issue",
}

// genericFeatures fill the sprint scope when a description has no list
// structure to mine.
var genericFeatures = []string{
	"Core AI integration (model selection, prompting, context)",
	"Working prototype with basic UI",
	"Performance metrics (latency, accuracy, cost)",
}

var bulletRe = regexp.MustCompile(`^[\d\-\*•]+[.)]?\s*`)

// Tier is one pricing tier keyed off the listing's budget magnitude.
type Tier struct {
	SprintPrice   int
	BuildEstimate string
}

// Drafter assembles proposals from a fixed catalog and config-supplied
// signature strings.
type Drafter struct {
	cfg config.ProposalConfig
}

// NewDrafter creates a Drafter.
func NewDrafter(cfg config.ProposalConfig) *Drafter {
	return &Drafter{cfg: cfg}
}

// Draft assembles the full proposal document for a GO-decided job.
func (d *Drafter) Draft(job model.Job, eval model.Evaluation) model.Proposal {
	exhibits := SelectExhibits(job)

	sections := []string{
		d.buildHook(job),
		d.buildApproach(),
		d.buildProofSection(exhibits),
		d.buildSprintScope(job),
		d.buildPricing(job),
		d.buildCTA(),
	}

	text := strings.Join(sections, "\n\n") +
		"\n\n---\n\n" +
		d.cfg.Sender + "\n" +
		d.cfg.Tagline + "\n" +
		d.cfg.SiteURL

	return model.Proposal{JobID: job.ID, Text: text}
}

// SelectExhibits picks 1-4 portfolio exhibits by keyword-matching the
// listing against category triggers. The baseline exhibit is always first;
// if nothing else matched, the supplemental exhibit is appended so the
// proposal carries at least two proof points.
func SelectExhibits(job model.Job) []Exhibit {
	text := strings.ToLower(job.Title + " " + job.Description)

	exhibits := []Exhibit{baselineExhibit}
	for _, rule := range exhibitRules {
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				exhibits = append(exhibits, rule.exhibit)
				break
			}
		}
	}

	if len(exhibits) == 1 {
		exhibits = append(exhibits, supplementalExhibit)
	}

	return exhibits
}

// ExtractPainPoints returns sentences from the description containing stock
// trouble-indicator phrases, falling back to a generic phrase.
func ExtractPainPoints(description string) []string {
	var points []string
	for _, sentence := range regexp.MustCompile(`[.!?]`).Split(description, -1) {
		lower := strings.ToLower(sentence)
		for _, phrase := range painPhrases {
			if strings.Contains(lower, phrase) {
				points = append(points, strings.TrimSpace(sentence))
				break
			}
		}
	}
	if len(points) == 0 {
		return []string{"a solution"}
	}
	return points
}

// ExtractFeatures returns bullet or numbered list lines from the
// description as candidate sprint features, falling back to generic
// placeholders.
func ExtractFeatures(description string) []string {
	var features []string
	for _, line := range strings.Split(description, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if bulletRe.MatchString(trimmed) {
			if f := strings.TrimSpace(bulletRe.ReplaceAllString(trimmed, "")); f != "" {
				features = append(features, f)
			}
		}
	}
	if len(features) == 0 {
		return append([]string{}, genericFeatures...)
	}
	return features
}

// PricingTier computes the tier for a budget value. Thresholds are fixed:
// $10K and up takes the top tier, $5K the middle, everything else the base.
func PricingTier(budgetValue int) Tier {
	switch {
	case budgetValue >= 10000:
		return Tier{SprintPrice: 5000, BuildEstimate: "$12-18K (3-4 milestones)"}
	case budgetValue >= 5000:
		return Tier{SprintPrice: 4000, BuildEstimate: "$8-12K (2-3 milestones)"}
	default:
		return Tier{SprintPrice: 3500, BuildEstimate: "TBD after Evidence Sprint"}
	}
}

func (d *Drafter) buildHook(job model.Job) string {
	painPoints := ExtractPainPoints(job.Description)

	return fmt.Sprintf(`I see you need %s.

Here's how I'd approach it: **Evidence Sprint first** (working prototype in 2 weeks), then fixed-price milestones with executable acceptance criteria.

You'll know exactly what you're getting before committing to the full build.`, painPoints[0])
}

func (d *Drafter) buildApproach() string {
	return fmt.Sprintf(`**My Approach:**

1. **Evidence Sprint** (2 weeks, $3-6K)
   - Working prototype showing core concept
   - Technical proof (not just mockups)
   - Risk validation before big investment

2. **Lock the Scope** (if Evidence Sprint succeeds)
   - We co-write executable acceptance criteria
   - Fixed-price milestones, payment when tests pass

3. **Deliver with Proof**
   - Every milestone: working demo + quantified deltas
   - Public proof log: %s/proof
   - Executable tests you can run yourself`, d.cfg.SiteURL)
}

func (d *Drafter) buildProofSection(exhibits []Exhibit) string {
	var b strings.Builder
	b.WriteString("**Relevant Work:**\n\n")

	for _, ex := range exhibits {
		if ex.GitHub != "" {
			fmt.Fprintf(&b, "- **%s** (%s GitHub stars) - %s\n", ex.Name, ex.Stars, ex.Relevance)
			fmt.Fprintf(&b, "  %s\n\n", ex.GitHub)
			continue
		}
		fmt.Fprintf(&b, "- **%s** (%s) - %s\n", ex.Name, ex.Live, ex.Relevance)
		if ex.Detail != "" {
			fmt.Fprintf(&b, "  %s\n", ex.Detail)
		}
		b.WriteString("\n")
	}

	b.WriteString("Full portfolio: github.com/mind-protocol\n")
	fmt.Fprintf(&b, "Process details: %s/process", d.cfg.SiteURL)

	return b.String()
}

func (d *Drafter) buildSprintScope(job model.Job) string {
	features := ExtractFeatures(job.Description)
	if len(features) > 3 {
		features = features[:3]
	}

	var lines []string
	for i, f := range features {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, f))
	}

	return fmt.Sprintf(`**Evidence Sprint Scope** (what you'd get in 2 weeks):

%s

This proves the concept works before you commit to the full budget.

Demo: ≤90 seconds, quantified results (e.g., "p95 latency <300ms", "accuracy >85%%").`, strings.Join(lines, "\n"))
}

func (d *Drafter) buildPricing(job model.Job) string {
	tier := PricingTier(evaluator.ParseAmount(job.Budget))

	return fmt.Sprintf(`**Pricing:**

- Evidence Sprint: $%s (2 weeks)
- Full build: %s

Payment when acceptance tests pass, not hours.`, formatThousands(tier.SprintPrice), tier.BuildEstimate)
}

func (d *Drafter) buildCTA() string {
	return fmt.Sprintf(`**Next Steps:**

1. Quick call to align on Evidence Sprint scope (15 min)
2. I draft the acceptance criteria for the sprint
3. You approve → we start
4. 2 weeks → working prototype

Book here: %s

Or reply with questions. Happy to clarify the approach.`, d.cfg.BookingURL)
}

// formatThousands renders 5000 as "5,000".
func formatThousands(n int) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteString(",")
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
