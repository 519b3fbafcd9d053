package model

// BatchPayload is the inbound webhook body from the monitoring service. One
// payload carries every project that matched a filter since the last delivery.
type BatchPayload struct {
	Total      int       `json:"total"`
	ResultsURL string    `json:"results_url"`
	Filter     *Feed     `json:"filter,omitempty"`
	Filters    []Feed    `json:"filters,omitempty"`
	Projects   []Project `json:"projects"`
}

// Project is one raw listing as delivered by the monitoring service. Shape is
// theirs, not ours; the normalizer converts it into a Job.
type Project struct {
	URL             string         `json:"url"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	Skills          []string       `json:"skills"`
	BudgetType      string         `json:"budget_type"`
	Budget          string         `json:"budget"`
	ClientDetails   *ClientDetails `json:"client_details,omitempty"`
	Filters         []Feed         `json:"filters,omitempty"`
	Published       string         `json:"published"`
	Categories      []string       `json:"categories"`
	Duration        string         `json:"duration"`
	Engagement      string         `json:"engagement"`
	ExperienceLevel string         `json:"experience_level"`
	JobType         string         `json:"job_type"`
	Questions       []string       `json:"questions"`
	USOnly          bool           `json:"us_only"`
	UKOnly          bool           `json:"uk_only"`
}

// ClientDetails is the raw client reputation block on a Project.
type ClientDetails struct {
	Rank                  string   `json:"rank"`
	PaymentMethodVerified bool     `json:"payment_method_verified"`
	TotalSpent            float64  `json:"total_spent"`
	TotalHires            int      `json:"total_hires"`
	Rating                float64  `json:"rating"`
	Reviews               int      `json:"reviews"`
	Country               *Country `json:"country,omitempty"`
}

// Country is the client's country on a Project.
type Country struct {
	Name     string `json:"name"`
	ISOCode2 string `json:"iso_code2"`
}
