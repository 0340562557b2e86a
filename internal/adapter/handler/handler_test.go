package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dealsense/dealsense/internal/adapter/repository"
	"github.com/dealsense/dealsense/internal/domain/entities"
	"github.com/dealsense/dealsense/internal/testutil"
	"github.com/dealsense/dealsense/internal/usecase/analytics"
	"github.com/dealsense/dealsense/internal/usecase/classify"
	"github.com/dealsense/dealsense/internal/usecase/clients"
	"github.com/dealsense/dealsense/internal/usecase/ingest"
	"github.com/dealsense/dealsense/internal/usecase/meetings"
	"github.com/dealsense/dealsense/pkg/ai"
	"github.com/dealsense/dealsense/pkg/config"
	pkgvalidator "github.com/dealsense/dealsense/pkg/validator"
)

type okClassifier struct{}

func (okClassifier) Classify(ctx context.Context, prompt string) (*ai.Result, error) {
	return &ai.Result{Sentiment: 1, FitScore: 0.7, CloseProbability: 0.5, Summary: "ok"}, nil
}

func newTestServer(t *testing.T) (*echo.Echo, *config.Config, func() *entities.Meeting) {
	t.Helper()
	db := testutil.NewTestDB(t)
	logger := zap.NewNop()

	cfg := &config.Config{}
	cfg.Server.Environment = "test"
	cfg.Classifier = config.ClassifierConfig{Model: "test", MaxAttempts: 2, RetryInterval: time.Millisecond}
	cfg.Ingest = config.IngestConfig{
		NameColumns:       []string{"Nombre"},
		EmailColumns:      []string{"Correo Electronico"},
		PhoneColumns:      []string{"Numero de Telefono"},
		SellerColumns:     []string{"Vendedor asignado"},
		DateColumns:       []string{"Fecha de la Reunion"},
		ClosedColumns:     []string{"closed"},
		TranscriptColumns: []string{"Transcripcion"},
	}

	clientsService := clients.NewService(repository.NewClientRepository(db), logger)
	meetingsService := meetings.NewService(repository.NewMeetingRepository(db), logger)
	classifyService := classify.NewService(
		repository.NewMeetingRepository(db),
		repository.NewClassificationRepository(db),
		okClassifier{},
		cfg.Classifier,
		logger,
	)
	ingestService := ingest.NewService(clientsService, meetingsService, classifyService, nil, cfg.Ingest, logger)
	analyticsService := analytics.NewService(repository.NewAnalyticsRepository(db), logger)

	e := echo.New()
	e.Validator = pkgvalidator.New()
	router := NewRouter(
		cfg,
		NewIngest(ingestService, logger),
		NewClassify(classifyService, logger),
		NewClients(clientsService, analyticsService, logger),
		NewMeetings(meetingsService, logger),
		NewMetrics(analyticsService, logger),
	)
	router.Setup(e)

	seed := func() *entities.Meeting {
		client := &entities.Client{Name: "Acme"}
		require.NoError(t, db.Create(client).Error)
		meeting := &entities.Meeting{ClientID: client.ID, Transcript: "hola", Closed: true}
		require.NoError(t, db.Create(meeting).Error)
		return meeting
	}
	return e, cfg, seed
}

func doRequest(e *echo.Echo, method, target, body, contentType string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	e, _, _ := newTestServer(t)
	rec := doRequest(e, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestClassifyEndpointCreatesAndReplays(t *testing.T) {
	e, _, seed := newTestServer(t)
	meeting := seed()

	rec := doRequest(e, http.MethodPost, "/v1/classify/1", "", "")
	assert.Equal(t, http.StatusCreated, rec.Code)

	var outcome classify.Outcome
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &outcome))
	assert.True(t, outcome.Created)
	assert.Equal(t, meeting.ID, outcome.MeetingID)

	// second call is a replay, not a new classification
	rec = doRequest(e, http.MethodPost, "/v1/classify/1", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &outcome))
	assert.False(t, outcome.Created)
}

func TestClassifyEndpointNotFound(t *testing.T) {
	e, _, _ := newTestServer(t)
	rec := doRequest(e, http.MethodPost, "/v1/classify/999", "", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"NOT_FOUND"`)
}

func TestClassifyBatchValidation(t *testing.T) {
	e, _, _ := newTestServer(t)
	rec := doRequest(e, http.MethodPost, "/v1/classify/batch", `{"ids":[]}`, echo.MIMEApplicationJSON)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"INVALID_ARGUMENT"`)
}

func TestIngestEndpointRequiresFile(t *testing.T) {
	e, _, _ := newTestServer(t)
	rec := doRequest(e, http.MethodPost, "/v1/ingest/csv", "", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMetricsOverviewEndpoint(t *testing.T) {
	e, _, seed := newTestServer(t)
	seed()

	rec := doRequest(e, http.MethodGet, "/v1/metrics/overview", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var overview analytics.Overview
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &overview))
	assert.Equal(t, int64(1), overview.TotalClients)
	assert.Equal(t, int64(1), overview.ClosedMeetings)
}

func TestClientsListRejectsBadWindow(t *testing.T) {
	e, _, _ := newTestServer(t)
	rec := doRequest(e, http.MethodGet, "/v1/clients?window=14d", "", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"INVALID_ARGUMENT"`)
}
