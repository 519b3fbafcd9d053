package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/scopelock/leadflow/internal/model"
)

func TestNormalize_ExtractsJobIDFromURL(t *testing.T) {
	project := model.Project{
		Title: "AI chatbot",
		URL:   "https://app.vollna.com/r?url=https%3A%2F%2Fwww.upwork.com%2Fjobs%2F~01146ebeb34b098d8c",
	}

	job := Normalize(project, nil)

	assert.Equal(t, "01146ebeb34b098d8c", job.ID)
	assert.Equal(t, "https://www.upwork.com/jobs/~01146ebeb34b098d8c", job.Link)
}

func TestNormalize_GeneratedIDIsDeterministic(t *testing.T) {
	project := model.Project{
		Title:       "Build a scraper",
		Description: "Scrape listings nightly.",
		URL:         "https://example.com/listing/12345",
	}

	first := Normalize(project, nil)
	second := Normalize(project, nil)

	assert.Equal(t, first.ID, second.ID)
	assert.Regexp(t, `^gen_[0-9a-f]{16}$`, first.ID)
	// The URL passes through untouched when there is no url= parameter.
	assert.Equal(t, project.URL, first.Link)
}

func TestNormalize_Defaults(t *testing.T) {
	job := Normalize(model.Project{Title: "Bare listing"}, nil)

	assert.Equal(t, "Not specified", job.Budget)
	assert.Equal(t, "fixed", job.BudgetType)
	assert.Equal(t, "Unknown Feed", job.FeedName)
	assert.Equal(t, "$0", job.Client.TotalSpent)
	assert.Equal(t, "0", job.Client.Rating)
	assert.Equal(t, "Unknown", job.Client.Location)
	assert.Equal(t, "Unknown", job.Client.Rank)
	assert.NotNil(t, job.Skills)
	assert.Empty(t, job.Skills)
	assert.WithinDuration(t, time.Now().UTC(), job.PostedAt, 5*time.Second)
}

func TestNormalize_FeedNamePrecedence(t *testing.T) {
	project := model.Project{
		Title:   "Listing",
		Filters: []model.Feed{{Name: "AI Jobs"}},
	}
	feed := &model.Feed{Name: "Batch Feed"}

	assert.Equal(t, "AI Jobs", Normalize(project, feed).FeedName)

	project.Filters = nil
	assert.Equal(t, "Batch Feed", Normalize(project, feed).FeedName)
}

func TestNormalize_ClientDetails(t *testing.T) {
	project := model.Project{
		Title: "Listing",
		ClientDetails: &model.ClientDetails{
			TotalSpent:            82639.95,
			TotalHires:            14,
			Rating:                4.9,
			PaymentMethodVerified: true,
			Reviews:               11,
			Rank:                  "top",
			Country:               &model.Country{Name: "Germany", ISOCode2: "DE"},
		},
	}

	job := Normalize(project, nil)

	assert.Equal(t, "$82,639.95", job.Client.TotalSpent)
	assert.Equal(t, "4.9", job.Client.Rating)
	assert.Equal(t, 14, job.Client.Hires)
	assert.True(t, job.Client.PaymentVerified)
	assert.Equal(t, "Germany", job.Client.Location)
	assert.Equal(t, "top", job.Client.Rank)
}

func TestNormalize_WholeAmountDropsCents(t *testing.T) {
	project := model.Project{
		Title:         "Listing",
		ClientDetails: &model.ClientDetails{TotalSpent: 12000},
	}

	assert.Equal(t, "$12,000", Normalize(project, nil).Client.TotalSpent)
}

func TestNormalize_ParsesPublishedTimestamp(t *testing.T) {
	project := model.Project{
		Title:     "Listing",
		Published: "2026-08-12T09:30:00Z",
	}

	job := Normalize(project, nil)

	assert.Equal(t, time.Date(2026, 8, 12, 9, 30, 0, 0, time.UTC), job.PostedAt)
}

func TestInsertThousands(t *testing.T) {
	assert.Equal(t, "999", insertThousands("999"))
	assert.Equal(t, "1,000", insertThousands("1000"))
	assert.Equal(t, "82,639.95", insertThousands("82639.95"))
	assert.Equal(t, "1,234,567", insertThousands("1234567"))
}
