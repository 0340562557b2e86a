// Package analytics computes the read-side aggregates served by the metrics
// endpoints. Every aggregate is computed fresh per call from current stored
// data; nothing here writes or caches.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	apperrors "github.com/dealsense/dealsense/errors"
	"github.com/dealsense/dealsense/internal/domain/entities"
	"github.com/dealsense/dealsense/internal/domain/repositories"
)

// Fit-score thresholds splitting classifications into funnel stages
const (
	evaluationFitCeiling  = 0.6
	negotiationFitCeiling = 0.8
)

// Service computes analytics aggregates
type Service struct {
	repo   repositories.AnalyticsRepository
	logger *zap.Logger
}

// NewService creates an analytics service
func NewService(repo repositories.AnalyticsRepository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Overview returns the top-line totals
func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	totalClients, err := s.repo.CountClients(ctx)
	if err != nil {
		return nil, apperrors.ErrInternal(err)
	}
	totalClassifications, err := s.repo.CountClassifications(ctx)
	if err != nil {
		return nil, apperrors.ErrInternal(err)
	}
	closed, err := s.repo.CountMeetingsByOutcome(ctx, true)
	if err != nil {
		return nil, apperrors.ErrInternal(err)
	}
	open, err := s.repo.CountMeetingsByOutcome(ctx, false)
	if err != nil {
		return nil, apperrors.ErrInternal(err)
	}
	return &Overview{
		TotalClients:         totalClients,
		TotalClassifications: totalClassifications,
		ClosedMeetings:       closed,
		OpenMeetings:         open,
	}, nil
}

// Funnel returns the overlapping stage counts: discovery is meetings without
// a classification, evaluation and negotiation are fit-score bands, closed is
// meetings marked closed regardless of fit.
func (s *Service) Funnel(ctx context.Context) (*Funnel, error) {
	discovery, err := s.repo.CountMeetingsWithoutClassification(ctx)
	if err != nil {
		return nil, apperrors.ErrInternal(err)
	}
	evaluation, err := s.repo.CountClassificationsFitBelow(ctx, evaluationFitCeiling)
	if err != nil {
		return nil, apperrors.ErrInternal(err)
	}
	negotiation, err := s.repo.CountClassificationsFitBetween(ctx, evaluationFitCeiling, negotiationFitCeiling)
	if err != nil {
		return nil, apperrors.ErrInternal(err)
	}
	closed, err := s.repo.CountMeetingsByOutcome(ctx, true)
	if err != nil {
		return nil, apperrors.ErrInternal(err)
	}
	return &Funnel{
		Discovery:   discovery,
		Evaluation:  evaluation,
		Negotiation: negotiation,
		Closed:      closed,
	}, nil
}

// MonthlyConversion groups dated meetings into "YYYY-MM" buckets, sorted
// ascending. Lexicographic order on the label is chronological order.
func (s *Service) MonthlyConversion(ctx context.Context) ([]MonthlyPoint, error) {
	rows, err := s.repo.MeetingDates(ctx)
	if err != nil {
		return nil, apperrors.ErrInternal(err)
	}

	buckets := make(map[string]*MonthlyPoint)
	for _, row := range rows {
		label := fmt.Sprintf("%04d-%02d", row.MeetingDate.Year(), int(row.MeetingDate.Month()))
		point, ok := buckets[label]
		if !ok {
			point = &MonthlyPoint{Month: label}
			buckets[label] = point
		}
		point.Total++
		if row.Closed {
			point.Closed++
		}
	}

	series := make([]MonthlyPoint, 0, len(buckets))
	for _, point := range buckets {
		point.Conversion = ratio(point.Closed, point.Total)
		series = append(series, *point)
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Month < series[j].Month })
	return series, nil
}

// Heatmap returns the urgency by budget-tier cross-tab. Null budget tiers
// are labeled "Unknown".
func (s *Service) Heatmap(ctx context.Context) ([]HeatmapCell, error) {
	rows, err := s.repo.HeatmapRows(ctx)
	if err != nil {
		return nil, apperrors.ErrInternal(err)
	}

	cells := make([]HeatmapCell, 0, len(rows))
	for _, row := range rows {
		label := UnknownBudgetLabel
		if row.BudgetTier != nil {
			label = *row.BudgetTier
		}
		cells = append(cells, HeatmapCell{
			Urgency:    row.Urgency,
			BudgetTier: label,
			Total:      row.Total,
			Closed:     row.Closed,
			Conversion: ratio(row.Closed, row.Total),
		})
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Urgency != cells[j].Urgency {
			return cells[i].Urgency < cells[j].Urgency
		}
		return cells[i].BudgetTier < cells[j].BudgetTier
	})
	return cells, nil
}

// UseCaseDistribution groups classifications by use case, optionally
// restricted to closed or open meetings, sorted descending by count. Null
// use cases are labeled "Desconocido".
func (s *Service) UseCaseDistribution(ctx context.Context, status string) ([]UseCaseCount, error) {
	switch status {
	case "", "all", "closed", "open":
	default:
		return nil, apperrors.ErrInvalidArgument("status must be one of: all, closed, open")
	}

	rows, err := s.repo.UseCaseRows(ctx, status)
	if err != nil {
		return nil, apperrors.ErrInternal(err)
	}

	counts := make([]UseCaseCount, 0, len(rows))
	for _, row := range rows {
		label := UnknownUseCaseLabel
		if row.UseCase != nil {
			label = *row.UseCase
		}
		counts = append(counts, UseCaseCount{UseCase: label, Total: row.Total})
	}
	sort.SliceStable(counts, func(i, j int) bool { return counts[i].Total > counts[j].Total })
	return counts, nil
}

// PainDistribution flattens pain labels across classifications into
// frequency counts, sorted descending by count. Blank entries are dropped;
// comparison is exact-string.
func (s *Service) PainDistribution(ctx context.Context) ([]PainCount, error) {
	lists, err := s.repo.PainLists(ctx)
	if err != nil {
		return nil, apperrors.ErrInternal(err)
	}

	frequency := make(map[string]int)
	for _, list := range lists {
		for _, pain := range list {
			if strings.TrimSpace(pain) == "" {
				continue
			}
			frequency[pain]++
		}
	}

	counts := make([]PainCount, 0, len(frequency))
	for pain, count := range frequency {
		counts = append(counts, PainCount{Pain: pain, Count: count})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Pain < counts[j].Pain
	})
	return counts, nil
}

// AvailablePains returns the sorted distinct set of non-empty pain labels
func (s *Service) AvailablePains(ctx context.Context) ([]string, error) {
	lists, err := s.repo.PainLists(ctx)
	if err != nil {
		return nil, apperrors.ErrInternal(err)
	}
	return distinctSorted(lists), nil
}

// AvailableObjections returns the sorted distinct set of non-empty objection
// labels
func (s *Service) AvailableObjections(ctx context.Context) ([]string, error) {
	lists, err := s.repo.ObjectionLists(ctx)
	if err != nil {
		return nil, apperrors.ErrInternal(err)
	}
	return distinctSorted(lists), nil
}

// SentimentConversion cross-tabs sentiment against outcomes, sorted
// ascending by sentiment
func (s *Service) SentimentConversion(ctx context.Context) ([]SentimentPoint, error) {
	rows, err := s.repo.SentimentRows(ctx)
	if err != nil {
		return nil, apperrors.ErrInternal(err)
	}

	points := make([]SentimentPoint, 0, len(rows))
	for _, row := range rows {
		points = append(points, SentimentPoint{
			Sentiment: row.Sentiment,
			Total:     row.Total,
			Closed:    row.Closed,
			Open:      row.Total - row.Closed,
		})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Sentiment < points[j].Sentiment })
	return points, nil
}

// SellerConversion groups meetings by assigned seller, sorted descending by
// raw conversion ratio with no sample-size weighting. Null sellers are
// labeled "Sin asignar".
func (s *Service) SellerConversion(ctx context.Context) ([]SellerConversion, error) {
	rows, err := s.repo.SellerRows(ctx)
	if err != nil {
		return nil, apperrors.ErrInternal(err)
	}

	conversions := make([]SellerConversion, 0, len(rows))
	for _, row := range rows {
		label := UnassignedSeller
		if row.AssignedSeller != nil {
			label = *row.AssignedSeller
		}
		conversions = append(conversions, SellerConversion{
			Seller:     label,
			Total:      row.Total,
			Closed:     row.Closed,
			Conversion: ratio(row.Closed, row.Total),
		})
	}
	sort.SliceStable(conversions, func(i, j int) bool {
		return conversions[i].Conversion > conversions[j].Conversion
	})
	return conversions, nil
}

// OriginDistribution groups classifications by lead origin, sorted
// descending by count
func (s *Service) OriginDistribution(ctx context.Context) ([]OriginCount, error) {
	rows, err := s.repo.OriginRows(ctx)
	if err != nil {
		return nil, apperrors.ErrInternal(err)
	}

	counts := make([]OriginCount, 0, len(rows))
	for _, row := range rows {
		counts = append(counts, OriginCount{Origin: row.Origin, Total: row.Total})
	}
	sort.SliceStable(counts, func(i, j int) bool { return counts[i].Total > counts[j].Total })
	return counts, nil
}

// AutomatizationOutcomes cross-tabs the automatization flag against
// outcomes, with true sorted before false
func (s *Service) AutomatizationOutcomes(ctx context.Context) ([]AutomatizationOutcome, error) {
	rows, err := s.repo.AutomatizationRows(ctx)
	if err != nil {
		return nil, apperrors.ErrInternal(err)
	}

	outcomes := make([]AutomatizationOutcome, 0, len(rows))
	for _, row := range rows {
		outcomes = append(outcomes, AutomatizationOutcome{
			Automatization: row.Automatization,
			Total:          row.Total,
			Closed:         row.Closed,
			Open:           row.Total - row.Closed,
		})
	}
	sort.Slice(outcomes, func(i, j int) bool {
		return outcomes[i].Automatization && !outcomes[j].Automatization
	})
	return outcomes, nil
}

// ListClients returns clients filtered by seller and by a relative date
// window. Both filters evaluate against each client's latest dated meeting;
// the window is anchored to the greatest meeting_date present in the data so
// results do not drift with wall-clock time.
func (s *Service) ListClients(ctx context.Context, filter ClientFilter) ([]entities.Client, error) {
	cutoffDays, err := windowDays(filter.Window)
	if err != nil {
		return nil, err
	}

	clients, err := s.repo.ClientsWithMeetings(ctx)
	if err != nil {
		return nil, apperrors.ErrInternal(err)
	}

	var anchor *time.Time
	if cutoffDays > 0 {
		for i := range clients {
			for j := range clients[i].Meetings {
				date := clients[i].Meetings[j].MeetingDate
				if date == nil {
					continue
				}
				if anchor == nil || date.After(*anchor) {
					anchor = date
				}
			}
		}
	}

	filtered := make([]entities.Client, 0, len(clients))
	for _, client := range clients {
		latest := client.LatestMeeting()

		if filter.Seller != "" {
			if latest == nil || latest.AssignedSeller == nil || *latest.AssignedSeller != filter.Seller {
				continue
			}
		}

		if cutoffDays > 0 && anchor != nil {
			cutoff := anchor.AddDate(0, 0, -cutoffDays)
			if latest == nil || latest.MeetingDate.Before(cutoff) {
				continue
			}
		}

		filtered = append(filtered, client)
	}
	return filtered, nil
}

// windowDays maps a window token to its day span; 0 means no window filter
func windowDays(window string) (int, error) {
	switch window {
	case "", "all":
		return 0, nil
	case "7d":
		return 7, nil
	case "30d":
		return 30, nil
	case "90d":
		return 90, nil
	default:
		return 0, apperrors.ErrInvalidArgument("window must be one of: 7d, 30d, 90d, all")
	}
}

// ratio guards conversion math against empty denominators
func ratio(closed, total int) float64 {
	if total == 0 {
		return 0.0
	}
	return float64(closed) / float64(total)
}

func distinctSorted(lists []datatypes.JSONSlice[string]) []string {
	seen := make(map[string]struct{})
	for _, list := range lists {
		for _, label := range list {
			if strings.TrimSpace(label) == "" {
				continue
			}
			seen[label] = struct{}{}
		}
	}
	labels := make([]string, 0, len(seen))
	for label := range seen {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}
