package repositories

import (
	"context"
	"time"

	"gorm.io/datatypes"

	"github.com/dealsense/dealsense/internal/domain/entities"
)

// MeetingDateRow is one dated meeting with its outcome
type MeetingDateRow struct {
	MeetingDate time.Time
	Closed      bool
}

// HeatmapRow is one (urgency, budget_tier) cell before labeling
type HeatmapRow struct {
	Urgency    int
	BudgetTier *string
	Total      int
	Closed     int
}

// UseCaseRow is one use_case group before labeling
type UseCaseRow struct {
	UseCase *string
	Total   int
}

// SentimentRow is one sentiment group with outcome counts
type SentimentRow struct {
	Sentiment int
	Total     int
	Closed    int
}

// SellerRow is one assigned_seller group with outcome counts
type SellerRow struct {
	AssignedSeller *string
	Total          int
	Closed         int
}

// OriginRow is one lead-origin group
type OriginRow struct {
	Origin string
	Total  int
}

// AutomatizationRow is one automatization group with outcome counts
type AutomatizationRow struct {
	Automatization bool
	Total          int
	Closed         int
}

// AnalyticsRepository defines the read-only queries behind the aggregation
// engine. Implementations never write; bucketing and sorting rules live in
// the usecase layer.
type AnalyticsRepository interface {
	CountClients(ctx context.Context) (int64, error)
	CountClassifications(ctx context.Context) (int64, error)
	CountMeetingsByOutcome(ctx context.Context, closed bool) (int64, error)
	CountMeetingsWithoutClassification(ctx context.Context) (int64, error)
	CountClassificationsFitBelow(ctx context.Context, threshold float64) (int64, error)
	CountClassificationsFitBetween(ctx context.Context, lo, hi float64) (int64, error)
	MeetingDates(ctx context.Context) ([]MeetingDateRow, error)
	HeatmapRows(ctx context.Context) ([]HeatmapRow, error)
	UseCaseRows(ctx context.Context, status string) ([]UseCaseRow, error)
	PainLists(ctx context.Context) ([]datatypes.JSONSlice[string], error)
	ObjectionLists(ctx context.Context) ([]datatypes.JSONSlice[string], error)
	SentimentRows(ctx context.Context) ([]SentimentRow, error)
	SellerRows(ctx context.Context) ([]SellerRow, error)
	OriginRows(ctx context.Context) ([]OriginRow, error)
	AutomatizationRows(ctx context.Context) ([]AutomatizationRow, error)
	ClientsWithMeetings(ctx context.Context) ([]entities.Client, error)
}
