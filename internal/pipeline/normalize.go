package pipeline

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"time"

	"github.com/scopelock/leadflow/internal/model"
)

// jobIDRe matches the stable listing token embedded in the monitoring
// service's tracking URLs (format: ~01146ebeb34b098d8c).
var jobIDRe = regexp.MustCompile(`~([a-f0-9]+)`)

// Normalize converts one raw project record into the canonical Job shape.
// It never fails: every missing field gets a defined default.
func Normalize(project model.Project, feed *model.Feed) model.Job {
	job := model.Job{
		ID:              extractJobID(project),
		Title:           project.Title,
		Description:     project.Description,
		Budget:          defaultString(project.Budget, "Not specified"),
		BudgetType:      defaultString(project.BudgetType, "fixed"),
		ProposalsCount:  0, // not provided in webhook deliveries
		FeedName:        feedName(project, feed),
		Link:            extractLink(project.URL),
		PostedAt:        parsePostedAt(project.Published),
		Skills:          emptyIfNil(project.Skills),
		Categories:      emptyIfNil(project.Categories),
		Duration:        project.Duration,
		Engagement:      project.Engagement,
		ExperienceLevel: project.ExperienceLevel,
		JobType:         project.JobType,
		Questions:       emptyIfNil(project.Questions),
		USOnly:          project.USOnly,
		UKOnly:          project.UKOnly,
	}

	job.Client = normalizeClient(project.ClientDetails)

	// Raw record kept for diagnostics only; marshal errors just drop it.
	if raw, err := json.Marshal(project); err == nil {
		job.RawPayload = raw
	}

	return job
}

func normalizeClient(cd *model.ClientDetails) model.Client {
	if cd == nil {
		return model.Client{
			TotalSpent: "$0",
			Rating:     "0",
			Location:   "Unknown",
			Rank:       "Unknown",
		}
	}

	return model.Client{
		TotalSpent:      "$" + formatAmount(cd.TotalSpent),
		Rating:          formatRating(cd.Rating),
		Hires:           cd.TotalHires,
		PaymentVerified: cd.PaymentMethodVerified,
		Location:        countryName(cd.Country),
		Rank:            defaultString(cd.Rank, "Unknown"),
		Reviews:         cd.Reviews,
	}
}

// extractJobID pulls the listing token from the source URL. When no token is
// present, a deterministic digest of the listing content stands in, so
// re-delivered listings keep the same identifier.
func extractJobID(project model.Project) string {
	if m := jobIDRe.FindStringSubmatch(project.URL); m != nil {
		return m[1]
	}

	sum := sha256.Sum256([]byte(project.Title + "\n" + project.Description + "\n" + project.URL))
	return "gen_" + hex.EncodeToString(sum[:8])
}

// extractLink decodes the tracking-redirect url= parameter when present,
// otherwise passes the URL through unchanged.
func extractLink(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	if target := u.Query().Get("url"); target != "" {
		return target
	}
	return rawURL
}

func feedName(project model.Project, feed *model.Feed) string {
	if len(project.Filters) > 0 && project.Filters[0].Name != "" {
		return project.Filters[0].Name
	}
	if feed != nil && feed.Name != "" {
		return feed.Name
	}
	return "Unknown Feed"
}

func parsePostedAt(published string) time.Time {
	if published != "" {
		if t, err := time.Parse(time.RFC3339, published); err == nil {
			return t
		}
	}
	return time.Now().UTC()
}

func formatAmount(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	// Strip trailing ".00" so whole amounts read naturally.
	if len(s) > 3 && s[len(s)-3:] == ".00" {
		s = s[:len(s)-3]
	}
	return insertThousands(s)
}

func insertThousands(s string) string {
	intPart := s
	fracPart := ""
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			intPart, fracPart = s[:i], s[i:]
			break
		}
	}

	if len(intPart) <= 3 {
		return intPart + fracPart
	}

	var out []byte
	lead := len(intPart) % 3
	if lead > 0 {
		out = append(out, intPart[:lead]...)
	}
	for i := lead; i < len(intPart); i += 3 {
		if len(out) > 0 {
			out = append(out, ',')
		}
		out = append(out, intPart[i:i+3]...)
	}
	return string(out) + fracPart
}

func formatRating(v float64) string {
	if v == 0 {
		return "0"
	}
	s := fmt.Sprintf("%g", v)
	return s
}

func countryName(c *model.Country) string {
	if c == nil || c.Name == "" {
		return "Unknown"
	}
	return c.Name
}

func defaultString(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func emptyIfNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
