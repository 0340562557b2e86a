package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	apperrors "github.com/dealsense/dealsense/errors"
	"github.com/dealsense/dealsense/internal/adapter/repository"
	"github.com/dealsense/dealsense/internal/domain/entities"
	"github.com/dealsense/dealsense/internal/testutil"
)

func newService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db := testutil.NewTestDB(t)
	return NewService(repository.NewAnalyticsRepository(db), zap.NewNop()), db
}

type meetingSeed struct {
	seller         string
	date           *time.Time
	closed         bool
	classification *entities.Classification
}

func seedClient(t *testing.T, db *gorm.DB, name string, meetings ...meetingSeed) *entities.Client {
	t.Helper()
	client := &entities.Client{Name: name}
	require.NoError(t, db.Create(client).Error)
	for i, seed := range meetings {
		meeting := &entities.Meeting{
			ClientID:    client.ID,
			MeetingDate: seed.date,
			Closed:      seed.closed,
			Transcript:  name + " transcript",
		}
		if seed.seller != "" {
			seller := seed.seller
			meeting.AssignedSeller = &seller
		}
		if i > 0 {
			// keep transcripts distinct so natural keys stay unambiguous
			meeting.Transcript = meeting.Transcript + string(rune('a'+i))
		}
		require.NoError(t, db.Create(meeting).Error)
		if seed.classification != nil {
			seed.classification.TranscriptID = meeting.ID
			require.NoError(t, db.Create(seed.classification).Error)
		}
	}
	return client
}

func dateAt(value string) *time.Time {
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return &parsed
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool { return &b }

func TestOverview(t *testing.T) {
	svc, db := newService(t)
	seedClient(t, db, "Ana",
		meetingSeed{closed: true, classification: &entities.Classification{Summary: "a"}},
		meetingSeed{closed: false},
	)
	seedClient(t, db, "Bruno",
		meetingSeed{closed: false, classification: &entities.Classification{Summary: "b"}},
	)

	overview, err := svc.Overview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(2), overview.TotalClients)
	assert.Equal(t, int64(2), overview.TotalClassifications)
	assert.Equal(t, int64(1), overview.ClosedMeetings)
	assert.Equal(t, int64(2), overview.OpenMeetings)
}

func TestFunnelBucketsOverlap(t *testing.T) {
	svc, db := newService(t)
	// closed meeting with low fit counts in both evaluation and closed
	seedClient(t, db, "Ana",
		meetingSeed{closed: true, classification: &entities.Classification{FitScore: 0.3}},
	)
	// open meeting in the negotiation band
	seedClient(t, db, "Bruno",
		meetingSeed{classification: &entities.Classification{FitScore: 0.7}},
	)
	// unclassified meeting stays in discovery
	seedClient(t, db, "Carla", meetingSeed{})

	funnel, err := svc.Funnel(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(1), funnel.Discovery)
	assert.Equal(t, int64(1), funnel.Evaluation)
	assert.Equal(t, int64(1), funnel.Negotiation)
	assert.Equal(t, int64(1), funnel.Closed)
}

func TestMonthlyConversionSortsChronologically(t *testing.T) {
	svc, db := newService(t)
	seedClient(t, db, "Ana",
		meetingSeed{date: dateAt("2024-03-01"), closed: true},
		meetingSeed{date: dateAt("2024-01-15")},
		meetingSeed{date: dateAt("2024-01-20"), closed: true},
		meetingSeed{}, // undated, excluded
	)

	series, err := svc.MonthlyConversion(context.Background())
	require.NoError(t, err)

	require.Len(t, series, 2)
	assert.Equal(t, "2024-01", series[0].Month)
	assert.Equal(t, 2, series[0].Total)
	assert.Equal(t, 1, series[0].Closed)
	assert.InDelta(t, 0.5, series[0].Conversion, 1e-9)
	assert.Equal(t, "2024-03", series[1].Month)
	assert.InDelta(t, 1.0, series[1].Conversion, 1e-9)
}

func TestHeatmapLabelsNullBudget(t *testing.T) {
	svc, db := newService(t)
	seedClient(t, db, "Ana",
		meetingSeed{closed: true, classification: &entities.Classification{Urgency: 1}},
		meetingSeed{closed: false, classification: &entities.Classification{Urgency: 1}},
	)

	cells, err := svc.Heatmap(context.Background())
	require.NoError(t, err)

	require.Len(t, cells, 1)
	assert.Equal(t, 1, cells[0].Urgency)
	assert.Equal(t, "Unknown", cells[0].BudgetTier)
	assert.Equal(t, 2, cells[0].Total)
	assert.Equal(t, 1, cells[0].Closed)
	assert.InDelta(t, 0.5, cells[0].Conversion, 1e-9)
}

func TestUseCaseDistribution(t *testing.T) {
	svc, db := newService(t)
	seedClient(t, db, "Ana",
		meetingSeed{closed: true, classification: &entities.Classification{UseCase: strPtr("reporting")}},
		meetingSeed{classification: &entities.Classification{UseCase: strPtr("reporting")}},
		meetingSeed{classification: &entities.Classification{}},
	)

	all, err := svc.UseCaseDistribution(context.Background(), "all")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, UseCaseCount{UseCase: "reporting", Total: 2}, all[0])
	assert.Equal(t, UseCaseCount{UseCase: "Desconocido", Total: 1}, all[1])

	closed, err := svc.UseCaseDistribution(context.Background(), "closed")
	require.NoError(t, err)
	require.Len(t, closed, 1)
	assert.Equal(t, UseCaseCount{UseCase: "reporting", Total: 1}, closed[0])

	_, err = svc.UseCaseDistribution(context.Background(), "won")
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorCode_INVALID_ARGUMENT, appErr.Code)
}

func TestPainDistributionAndAvailability(t *testing.T) {
	svc, db := newService(t)
	seedClient(t, db, "Ana",
		meetingSeed{classification: &entities.Classification{
			Pains: datatypes.JSONSlice[string]{"pricing", "onboarding", ""},
		}},
		meetingSeed{classification: &entities.Classification{
			Pains: datatypes.JSONSlice[string]{"pricing"},
		}},
	)

	distribution, err := svc.PainDistribution(context.Background())
	require.NoError(t, err)
	require.Len(t, distribution, 2)
	assert.Equal(t, PainCount{Pain: "pricing", Count: 2}, distribution[0])
	assert.Equal(t, PainCount{Pain: "onboarding", Count: 1}, distribution[1])

	available, err := svc.AvailablePains(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"onboarding", "pricing"}, available)
}

func TestAvailableObjections(t *testing.T) {
	svc, db := newService(t)
	seedClient(t, db, "Ana",
		meetingSeed{classification: &entities.Classification{
			Objections: datatypes.JSONSlice[string]{"too expensive", "no time", ""},
		}},
		meetingSeed{classification: &entities.Classification{
			Objections: datatypes.JSONSlice[string]{"too expensive"},
		}},
		meetingSeed{classification: &entities.Classification{}},
	)

	available, err := svc.AvailableObjections(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"no time", "too expensive"}, available)
}

func TestSentimentConversionSortsAscending(t *testing.T) {
	svc, db := newService(t)
	seedClient(t, db, "Ana",
		meetingSeed{closed: true, classification: &entities.Classification{Sentiment: 1}},
		meetingSeed{classification: &entities.Classification{Sentiment: -2}},
		meetingSeed{classification: &entities.Classification{Sentiment: 1}},
	)

	points, err := svc.SentimentConversion(context.Background())
	require.NoError(t, err)

	require.Len(t, points, 2)
	assert.Equal(t, SentimentPoint{Sentiment: -2, Total: 1, Closed: 0, Open: 1}, points[0])
	assert.Equal(t, SentimentPoint{Sentiment: 1, Total: 2, Closed: 1, Open: 1}, points[1])
}

func TestSellerConversionSortsByRawRatio(t *testing.T) {
	svc, db := newService(t)
	// Laura closes 1 of 1, Pedro closes 2 of 3; raw ratio puts Laura first
	seedClient(t, db, "Ana", meetingSeed{seller: "Laura", closed: true})
	seedClient(t, db, "Bruno",
		meetingSeed{seller: "Pedro", closed: true},
		meetingSeed{seller: "Pedro", closed: true},
		meetingSeed{seller: "Pedro"},
	)
	seedClient(t, db, "Carla", meetingSeed{})

	conversions, err := svc.SellerConversion(context.Background())
	require.NoError(t, err)

	require.Len(t, conversions, 3)
	assert.Equal(t, "Laura", conversions[0].Seller)
	assert.InDelta(t, 1.0, conversions[0].Conversion, 1e-9)
	assert.Equal(t, "Pedro", conversions[1].Seller)
	assert.Equal(t, "Sin asignar", conversions[2].Seller)
	assert.InDelta(t, 0.0, conversions[2].Conversion, 1e-9)
}

func TestOriginDistributionSkipsNulls(t *testing.T) {
	svc, db := newService(t)
	seedClient(t, db, "Ana",
		meetingSeed{classification: &entities.Classification{Origin: strPtr("referral")}},
		meetingSeed{classification: &entities.Classification{Origin: strPtr("referral")}},
		meetingSeed{classification: &entities.Classification{Origin: strPtr("ads")}},
		meetingSeed{classification: &entities.Classification{}},
	)

	counts, err := svc.OriginDistribution(context.Background())
	require.NoError(t, err)

	require.Len(t, counts, 2)
	assert.Equal(t, OriginCount{Origin: "referral", Total: 2}, counts[0])
	assert.Equal(t, OriginCount{Origin: "ads", Total: 1}, counts[1])
}

func TestAutomatizationOutcomesSortTrueFirst(t *testing.T) {
	svc, db := newService(t)
	seedClient(t, db, "Ana",
		meetingSeed{closed: true, classification: &entities.Classification{Automatization: boolPtr(false)}},
		meetingSeed{closed: true, classification: &entities.Classification{Automatization: boolPtr(true)}},
		meetingSeed{classification: &entities.Classification{Automatization: boolPtr(true)}},
		meetingSeed{classification: &entities.Classification{}},
	)

	outcomes, err := svc.AutomatizationOutcomes(context.Background())
	require.NoError(t, err)

	require.Len(t, outcomes, 2)
	assert.Equal(t, AutomatizationOutcome{Automatization: true, Total: 2, Closed: 1, Open: 1}, outcomes[0])
	assert.Equal(t, AutomatizationOutcome{Automatization: false, Total: 1, Closed: 1, Open: 0}, outcomes[1])
}

func TestListClientsFiltersBySellerOnLatestMeeting(t *testing.T) {
	svc, db := newService(t)
	// Ana's latest meeting belongs to Laura even though an earlier one was Pedro's
	seedClient(t, db, "Ana",
		meetingSeed{seller: "Pedro", date: dateAt("2024-01-01")},
		meetingSeed{seller: "Laura", date: dateAt("2024-02-01")},
	)
	seedClient(t, db, "Bruno", meetingSeed{seller: "Pedro", date: dateAt("2024-02-01")})

	clients, err := svc.ListClients(context.Background(), ClientFilter{Seller: "Laura"})
	require.NoError(t, err)

	require.Len(t, clients, 1)
	assert.Equal(t, "Ana", clients[0].Name)
}

func TestListClientsWindowAnchorsToMaxMeetingDate(t *testing.T) {
	svc, db := newService(t)
	seedClient(t, db, "Ana", meetingSeed{date: dateAt("2024-03-01")})
	seedClient(t, db, "Bruno", meetingSeed{date: dateAt("2024-02-25")})
	seedClient(t, db, "Carla", meetingSeed{date: dateAt("2023-11-01")})

	// anchor is 2024-03-01, so 7d keeps Ana and Bruno but drops Carla
	clients, err := svc.ListClients(context.Background(), ClientFilter{Window: "7d"})
	require.NoError(t, err)
	require.Len(t, clients, 2)
	assert.Equal(t, "Ana", clients[0].Name)
	assert.Equal(t, "Bruno", clients[1].Name)

	all, err := svc.ListClients(context.Background(), ClientFilter{Window: "all"})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = svc.ListClients(context.Background(), ClientFilter{Window: "14d"})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorCode_INVALID_ARGUMENT, appErr.Code)
}

func TestAggregatesOnEmptyData(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	overview, err := svc.Overview(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), overview.TotalClients)

	series, err := svc.MonthlyConversion(ctx)
	require.NoError(t, err)
	assert.Empty(t, series)

	cells, err := svc.Heatmap(ctx)
	require.NoError(t, err)
	assert.Empty(t, cells)

	available, err := svc.AvailablePains(ctx)
	require.NoError(t, err)
	assert.Empty(t, available)
}
