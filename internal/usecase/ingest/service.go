// Package ingest turns raw CSV uploads into resolved clients, meetings and
// classifications. Rows commit independently; a fatal classification error
// stops the remaining file but keeps everything already persisted.
package ingest

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/dealsense/dealsense/errors"
	"github.com/dealsense/dealsense/internal/usecase/classify"
	"github.com/dealsense/dealsense/internal/usecase/clients"
	"github.com/dealsense/dealsense/internal/usecase/meetings"
	"github.com/dealsense/dealsense/pkg/config"
)

// defaultClientName is assigned when a row carries no usable name column
const defaultClientName = "Cliente sin nombre"

// dateFormats are tried in order; the first successful parse wins
var dateFormats = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
}

// truthyTokens are the accepted case-insensitive spellings of "closed"
var truthyTokens = map[string]bool{
	"1": true, "true": true, "yes": true, "y": true, "si": true,
}

// Counters summarizes one ingestion run
type Counters struct {
	RunID            string `json:"run_id"`
	Processed        int    `json:"processed"`
	InsertedClients  int    `json:"inserted_clients"`
	InsertedMeetings int    `json:"inserted_meetings"`
	Classified       int    `json:"classified"`
}

// Archiver stores the raw uploaded file for later audit. Archiving is
// best-effort; ingestion proceeds even when the archive write fails.
type Archiver interface {
	Archive(ctx context.Context, runID, filename string, data []byte) (string, error)
}

// Service drives the row-by-row ingestion pipeline
type Service struct {
	clients  *clients.Service
	meetings *meetings.Service
	classify *classify.Service
	archiver Archiver
	cfg      config.IngestConfig
	logger   *zap.Logger
}

// NewService constructs an ingestion service. archiver may be nil when no
// object storage is configured.
func NewService(
	clientsSvc *clients.Service,
	meetingsSvc *meetings.Service,
	classifySvc *classify.Service,
	archiver Archiver,
	cfg config.IngestConfig,
	logger *zap.Logger,
) *Service {
	return &Service{
		clients:  clientsSvc,
		meetings: meetingsSvc,
		classify: classifySvc,
		archiver: archiver,
		cfg:      cfg,
		logger:   logger,
	}
}

// Ingest parses the CSV payload and runs client resolution, meeting
// resolution and classification per row. Parse irregularities never skip a
// row; missing fields resolve to nulls and defaults. A fatal classification
// failure aborts the remaining rows and returns the counters accumulated so
// far alongside the error.
func (s *Service) Ingest(ctx context.Context, data []byte, filename string) (Counters, error) {
	counters := Counters{RunID: uuid.NewString()}

	if s.archiver != nil {
		if object, err := s.archiver.Archive(ctx, counters.RunID, filename, data); err != nil {
			s.logger.Warn("failed to archive upload, continuing",
				zap.String("run_id", counters.RunID),
				zap.Error(err),
			)
		} else {
			s.logger.Info("archived upload",
				zap.String("run_id", counters.RunID),
				zap.String("object", object),
			)
		}
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return counters, apperrors.ErrInvalidArgument("CSV payload is empty or has no header row")
	}
	columns := indexColumns(header)

	for rowNum := 1; ; rowNum++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return counters, apperrors.ErrIngestFailed(rowNum, err)
		}

		row := newRow(columns, record)
		counters.Processed++

		client, clientCreated, err := s.clients.Upsert(ctx, clients.UpsertInput{
			Name:  row.stringOr(s.cfg.NameColumns, defaultClientName),
			Email: row.optional(s.cfg.EmailColumns),
			Phone: row.optional(s.cfg.PhoneColumns),
		})
		if err != nil {
			return counters, apperrors.ErrIngestFailed(rowNum, err)
		}
		if clientCreated {
			counters.InsertedClients++
		}

		meeting, meetingCreated, err := s.meetings.Upsert(ctx, client, meetings.UpsertInput{
			AssignedSeller: row.optional(s.cfg.SellerColumns),
			MeetingDate:    parseDate(row.optional(s.cfg.DateColumns)),
			Closed:         parseClosed(row.optional(s.cfg.ClosedColumns)),
			Transcript:     row.optional(s.cfg.TranscriptColumns),
		})
		if err != nil {
			return counters, apperrors.ErrIngestFailed(rowNum, err)
		}
		if meetingCreated {
			counters.InsertedMeetings++
		}

		outcome, err := s.classify.Classify(ctx, meeting.ID)
		if err != nil {
			return counters, err
		}
		if outcome.Created {
			counters.Classified++
		}
	}

	s.logger.Info("ingestion run finished",
		zap.String("run_id", counters.RunID),
		zap.Int("processed", counters.Processed),
		zap.Int("inserted_clients", counters.InsertedClients),
		zap.Int("inserted_meetings", counters.InsertedMeetings),
		zap.Int("classified", counters.Classified),
	)
	return counters, nil
}

// row resolves logical fields against a parsed CSV record using ordered
// column-name fallback lists.
type row struct {
	columns map[string]int
	record  []string
}

func indexColumns(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimPrefix(strings.TrimSpace(name), "\uFEFF")
		if _, exists := columns[name]; !exists {
			columns[name] = i
		}
	}
	return columns
}

func newRow(columns map[string]int, record []string) row {
	return row{columns: columns, record: record}
}

// optional returns the first present non-empty value among the candidate
// column names, or nil
func (r row) optional(candidates []string) *string {
	for _, name := range candidates {
		idx, ok := r.columns[name]
		if !ok || idx >= len(r.record) {
			continue
		}
		value := strings.TrimSpace(r.record[idx])
		if value != "" {
			return &value
		}
	}
	return nil
}

func (r row) stringOr(candidates []string, fallback string) string {
	if value := r.optional(candidates); value != nil {
		return *value
	}
	return fallback
}

func parseDate(raw *string) *time.Time {
	if raw == nil {
		return nil
	}
	for _, format := range dateFormats {
		if parsed, err := time.Parse(format, *raw); err == nil {
			return &parsed
		}
	}
	return nil
}

// parseClosed always yields a concrete boolean: anything that is not a
// truthy token, including an absent column, is false. A re-ingested row
// without the flag therefore resets a stored closed=true.
func parseClosed(raw *string) *bool {
	closed := false
	if raw != nil {
		closed = truthyTokens[strings.ToLower(strings.TrimSpace(*raw))]
	}
	return &closed
}
