package entities

import (
	"time"

	"gorm.io/datatypes"
)

// Budget tier labels returned by the classifier
const (
	BudgetTierLow    = "Low"
	BudgetTierMedium = "Medium"
	BudgetTierHigh   = "High"
)

// Classification is the structured judgment produced by the external
// classifier for exactly one Meeting. The unique index on transcript_id
// enforces the one-to-one relationship at the store level.
type Classification struct {
	ID               uint                        `json:"id" gorm:"primaryKey"`
	TranscriptID     uint                        `json:"transcript_id" gorm:"not null;uniqueIndex"`
	Sentiment        int                         `json:"sentiment" gorm:"not null"`
	Urgency          int                         `json:"urgency" gorm:"not null"`
	BudgetTier       *string                     `json:"budget_tier" gorm:"type:varchar(20)"`
	BuyerRole        *string                     `json:"buyer_role" gorm:"type:varchar(50)"`
	UseCase          *string                     `json:"use_case" gorm:"type:varchar(120)"`
	Pains            datatypes.JSONSlice[string] `json:"pains" gorm:"type:jsonb"`
	Objections       datatypes.JSONSlice[string] `json:"objections" gorm:"type:jsonb"`
	Competitors      datatypes.JSONSlice[string] `json:"competitors" gorm:"type:jsonb"`
	Risks            datatypes.JSONSlice[string] `json:"risks" gorm:"type:jsonb"`
	NextStepClarity  *int                        `json:"next_step_clarity"`
	Origin           *string                     `json:"origin" gorm:"type:varchar(120)"`
	Automatization   *bool                       `json:"automatization"`
	FitScore         float64                     `json:"fit_score" gorm:"not null;default:0"`
	CloseProbability float64                     `json:"close_probability" gorm:"not null;default:0"`
	Summary          string                      `json:"summary" gorm:"type:text"`
	CreatedAt        time.Time                   `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt        time.Time                   `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Classification) TableName() string {
	return "classifications"
}
