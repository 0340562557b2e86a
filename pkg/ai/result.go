package ai

// Result is the structured judgment returned by the external classifier.
// The jsonschema tags drive the response-format schema sent with each call;
// the validate tags are checked again on the way back in, since a schema
// constraint the provider ignored must not reach the store.
type Result struct {
	Sentiment        int      `json:"sentiment" jsonschema:"minimum=-2,maximum=2" validate:"gte=-2,lte=2"`
	Urgency          int      `json:"urgency" jsonschema:"minimum=0,maximum=3" validate:"gte=0,lte=3"`
	BudgetTier       *string  `json:"budget_tier" jsonschema:"enum=Low,enum=Medium,enum=High" validate:"omitempty,oneof=Low Medium High"`
	BuyerRole        *string  `json:"buyer_role"`
	UseCase          *string  `json:"use_case"`
	Pains            []string `json:"pains"`
	Objections       []string `json:"objections"`
	Competitors      []string `json:"competitors"`
	Risks            []string `json:"risks"`
	NextStepClarity  *int     `json:"next_step_clarity" jsonschema:"minimum=0,maximum=3" validate:"omitempty,gte=0,lte=3"`
	Origin           *string  `json:"origin"`
	Automatization   *bool    `json:"automatization"`
	FitScore         float64  `json:"fit_score" jsonschema:"minimum=0,maximum=1" validate:"gte=0,lte=1"`
	CloseProbability float64  `json:"close_probability" jsonschema:"minimum=0,maximum=1" validate:"gte=0,lte=1"`
	Summary          string   `json:"summary"`
}
