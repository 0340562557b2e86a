package repository

import (
	"context"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/dealsense/dealsense/internal/domain/entities"
	"github.com/dealsense/dealsense/internal/domain/repositories"
)

// AnalyticsRepository serves the read-only queries behind the aggregation
// engine. It never writes; bucketing and sorting rules live in the usecase.
type AnalyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

func (r *AnalyticsRepository) CountClients(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entities.Client{}).Count(&n).Error
	return n, err
}

func (r *AnalyticsRepository) CountClassifications(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entities.Classification{}).Count(&n).Error
	return n, err
}

func (r *AnalyticsRepository) CountMeetingsByOutcome(ctx context.Context, closed bool) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&entities.Meeting{}).
		Where("closed = ?", closed).
		Count(&n).Error
	return n, err
}

// CountMeetingsWithoutClassification counts meetings still in discovery,
// i.e. with no classification row
func (r *AnalyticsRepository) CountMeetingsWithoutClassification(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&entities.Meeting{}).
		Joins("LEFT JOIN classifications ON classifications.transcript_id = meetings.id").
		Where("classifications.id IS NULL").
		Count(&n).Error
	return n, err
}

func (r *AnalyticsRepository) CountClassificationsFitBelow(ctx context.Context, threshold float64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&entities.Classification{}).
		Where("fit_score < ?", threshold).
		Count(&n).Error
	return n, err
}

func (r *AnalyticsRepository) CountClassificationsFitBetween(ctx context.Context, lo, hi float64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&entities.Classification{}).
		Where("fit_score >= ? AND fit_score < ?", lo, hi).
		Count(&n).Error
	return n, err
}

// MeetingDates returns every meeting with a non-null meeting_date
func (r *AnalyticsRepository) MeetingDates(ctx context.Context) ([]repositories.MeetingDateRow, error) {
	var rows []repositories.MeetingDateRow
	err := r.db.WithContext(ctx).
		Model(&entities.Meeting{}).
		Select("meeting_date, closed").
		Where("meeting_date IS NOT NULL").
		Scan(&rows).Error
	return rows, err
}

// HeatmapRows groups classifications by (urgency, budget_tier) with outcomes
func (r *AnalyticsRepository) HeatmapRows(ctx context.Context) ([]repositories.HeatmapRow, error) {
	var rows []repositories.HeatmapRow
	err := r.db.WithContext(ctx).
		Table("classifications").
		Select("classifications.urgency AS urgency, classifications.budget_tier AS budget_tier, COUNT(*) AS total, SUM(CASE WHEN meetings.closed = ? THEN 1 ELSE 0 END) AS closed", true).
		Joins("JOIN meetings ON meetings.id = classifications.transcript_id").
		Group("classifications.urgency, classifications.budget_tier").
		Scan(&rows).Error
	return rows, err
}

// UseCaseRows groups classifications by use_case, optionally restricted to
// closed or open meetings
func (r *AnalyticsRepository) UseCaseRows(ctx context.Context, status string) ([]repositories.UseCaseRow, error) {
	query := r.db.WithContext(ctx).
		Table("classifications").
		Select("classifications.use_case AS use_case, COUNT(*) AS total").
		Joins("JOIN meetings ON meetings.id = classifications.transcript_id").
		Group("classifications.use_case")

	switch status {
	case "closed":
		query = query.Where("meetings.closed = ?", true)
	case "open":
		query = query.Where("meetings.closed = ?", false)
	}

	var rows []repositories.UseCaseRow
	err := query.Scan(&rows).Error
	return rows, err
}

// PainLists returns the raw pains list of every classification
func (r *AnalyticsRepository) PainLists(ctx context.Context) ([]datatypes.JSONSlice[string], error) {
	var lists []datatypes.JSONSlice[string]
	err := r.db.WithContext(ctx).
		Model(&entities.Classification{}).
		Pluck("pains", &lists).Error
	return lists, err
}

// ObjectionLists returns the raw objections list of every classification
func (r *AnalyticsRepository) ObjectionLists(ctx context.Context) ([]datatypes.JSONSlice[string], error) {
	var lists []datatypes.JSONSlice[string]
	err := r.db.WithContext(ctx).
		Model(&entities.Classification{}).
		Pluck("objections", &lists).Error
	return lists, err
}

// SentimentRows groups classifications by sentiment with outcomes
func (r *AnalyticsRepository) SentimentRows(ctx context.Context) ([]repositories.SentimentRow, error) {
	var rows []repositories.SentimentRow
	err := r.db.WithContext(ctx).
		Table("classifications").
		Select("classifications.sentiment AS sentiment, COUNT(*) AS total, SUM(CASE WHEN meetings.closed = ? THEN 1 ELSE 0 END) AS closed", true).
		Joins("JOIN meetings ON meetings.id = classifications.transcript_id").
		Group("classifications.sentiment").
		Scan(&rows).Error
	return rows, err
}

// SellerRows groups meetings by assigned seller with outcomes
func (r *AnalyticsRepository) SellerRows(ctx context.Context) ([]repositories.SellerRow, error) {
	var rows []repositories.SellerRow
	err := r.db.WithContext(ctx).
		Table("meetings").
		Select("assigned_seller, COUNT(*) AS total, SUM(CASE WHEN closed = ? THEN 1 ELSE 0 END) AS closed", true).
		Group("assigned_seller").
		Scan(&rows).Error
	return rows, err
}

// OriginRows groups classifications by lead origin, skipping rows where the
// classifier reported none
func (r *AnalyticsRepository) OriginRows(ctx context.Context) ([]repositories.OriginRow, error) {
	var rows []repositories.OriginRow
	err := r.db.WithContext(ctx).
		Table("classifications").
		Select("origin, COUNT(*) AS total").
		Where("origin IS NOT NULL").
		Group("origin").
		Scan(&rows).Error
	return rows, err
}

// AutomatizationRows groups classifications by the automatization flag with
// outcomes, skipping rows where the classifier returned null
func (r *AnalyticsRepository) AutomatizationRows(ctx context.Context) ([]repositories.AutomatizationRow, error) {
	var rows []repositories.AutomatizationRow
	err := r.db.WithContext(ctx).
		Table("classifications").
		Select("classifications.automatization AS automatization, COUNT(*) AS total, SUM(CASE WHEN meetings.closed = ? THEN 1 ELSE 0 END) AS closed", true).
		Joins("JOIN meetings ON meetings.id = classifications.transcript_id").
		Where("classifications.automatization IS NOT NULL").
		Group("classifications.automatization").
		Scan(&rows).Error
	return rows, err
}

// ClientsWithMeetings returns all clients with meetings and classifications
// preloaded, for the filtered client listing
func (r *AnalyticsRepository) ClientsWithMeetings(ctx context.Context) ([]entities.Client, error) {
	var clients []entities.Client
	err := r.db.WithContext(ctx).
		Preload("Meetings").
		Preload("Meetings.Classification").
		Order("id").
		Find(&clients).Error
	return clients, err
}
