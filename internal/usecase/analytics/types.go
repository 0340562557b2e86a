package analytics

// Placeholder labels substituted for null grouping keys
const (
	UnknownBudgetLabel  = "Unknown"
	UnknownUseCaseLabel = "Desconocido"
	UnassignedSeller    = "Sin asignar"
)

// Overview is the top-line dashboard summary
type Overview struct {
	TotalClients         int64 `json:"total_clients"`
	TotalClassifications int64 `json:"total_classifications"`
	ClosedMeetings       int64 `json:"closed_meetings"`
	OpenMeetings         int64 `json:"open_meetings"`
}

// Funnel counts meetings per pipeline stage. The buckets deliberately
// overlap: a closed meeting with a low fit score counts in both evaluation
// and closed.
type Funnel struct {
	Discovery   int64 `json:"discovery"`
	Evaluation  int64 `json:"evaluation"`
	Negotiation int64 `json:"negotiation"`
	Closed      int64 `json:"closed"`
}

// MonthlyPoint is one month of the conversion time series
type MonthlyPoint struct {
	Month      string  `json:"month"`
	Total      int     `json:"total"`
	Closed     int     `json:"closed"`
	Conversion float64 `json:"conversion"`
}

// HeatmapCell is one (urgency, budget_tier) cell of the cross-tab
type HeatmapCell struct {
	Urgency    int     `json:"urgency"`
	BudgetTier string  `json:"budget_tier"`
	Total      int     `json:"total"`
	Closed     int     `json:"closed"`
	Conversion float64 `json:"conversion"`
}

// UseCaseCount is one use-case group
type UseCaseCount struct {
	UseCase string `json:"use_case"`
	Total   int    `json:"total"`
}

// PainCount is one pain label with its frequency
type PainCount struct {
	Pain  string `json:"pain"`
	Count int    `json:"count"`
}

// SentimentPoint is one sentiment level with outcome counts
type SentimentPoint struct {
	Sentiment int `json:"sentiment"`
	Total     int `json:"total"`
	Closed    int `json:"closed"`
	Open      int `json:"open"`
}

// SellerConversion is one seller's outcome ratio
type SellerConversion struct {
	Seller     string  `json:"seller"`
	Total      int     `json:"total"`
	Closed     int     `json:"closed"`
	Conversion float64 `json:"conversion"`
}

// OriginCount is one lead-origin group
type OriginCount struct {
	Origin string `json:"origin"`
	Total  int    `json:"total"`
}

// AutomatizationOutcome is one automatization flag value with outcomes
type AutomatizationOutcome struct {
	Automatization bool `json:"automatization"`
	Total          int  `json:"total"`
	Closed         int  `json:"closed"`
	Open           int  `json:"open"`
}

// ClientFilter narrows the client listing. Seller matches against each
// client's latest dated meeting; Window is one of 7d, 30d, 90d or all and is
// anchored to the greatest meeting_date in the data rather than wall-clock
// time.
type ClientFilter struct {
	Seller string
	Window string
}
