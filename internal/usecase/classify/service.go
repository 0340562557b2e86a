// Package classify orchestrates the external classification of meetings:
// at most one external call per meeting under normal operation, constant
// backoff under rate-limit pressure, and store-level arbitration when two
// requests race on the same meeting.
package classify

import (
	"context"
	"errors"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	apperrors "github.com/dealsense/dealsense/errors"
	"github.com/dealsense/dealsense/internal/domain/entities"
	"github.com/dealsense/dealsense/internal/domain/repositories"
	"github.com/dealsense/dealsense/pkg/ai"
	"github.com/dealsense/dealsense/pkg/config"
	"gorm.io/datatypes"
)

// Outcome is the result of classifying one meeting. Created reports whether
// an external call was actually made, as opposed to returning the stored
// classification.
type Outcome struct {
	MeetingID      uint                     `json:"transcript_id"`
	Created        bool                     `json:"created"`
	Classification *entities.Classification `json:"classification"`
}

// Service orchestrates classification calls and persistence
type Service struct {
	meetings        repositories.MeetingRepository
	classifications repositories.ClassificationRepository
	classifier      ai.Classifier
	validate        *validator.Validate
	cfg             config.ClassifierConfig
	logger          *zap.Logger
}

// NewService constructs a classification orchestrator
func NewService(
	meetings repositories.MeetingRepository,
	classifications repositories.ClassificationRepository,
	classifier ai.Classifier,
	cfg config.ClassifierConfig,
	logger *zap.Logger,
) *Service {
	return &Service{
		meetings:        meetings,
		classifications: classifications,
		classifier:      classifier,
		validate:        validator.New(),
		cfg:             cfg,
		logger:          logger,
	}
}

// Classify classifies a single meeting. When the meeting already owns a
// classification it is returned unchanged with Created=false and no external
// call is made. Rate-limit failures are retried at a fixed interval up to the
// configured attempt budget; any other classifier failure propagates
// immediately.
func (s *Service) Classify(ctx context.Context, meetingID uint) (*Outcome, error) {
	meeting, err := s.meetings.GetByID(ctx, meetingID)
	if err != nil {
		return nil, apperrors.ErrInternal(err)
	}
	if meeting == nil {
		return nil, apperrors.ErrMeetingNotFound(meetingID)
	}

	existing, err := s.classifications.GetByMeetingID(ctx, meetingID)
	if err != nil {
		return nil, apperrors.ErrInternal(err)
	}
	if existing != nil {
		return &Outcome{MeetingID: meetingID, Created: false, Classification: existing}, nil
	}

	// Known pain labels are queried fresh per call so the taxonomy
	// self-reinforces across successive classifications.
	knownPains, err := s.classifications.DistinctPains(ctx)
	if err != nil {
		return nil, apperrors.ErrInternal(err)
	}
	prompt := ai.BuildPrompt(meeting.Transcript, knownPains)

	result, err := s.callWithRetry(ctx, meetingID, prompt)
	if err != nil {
		return nil, err
	}

	if err := s.validate.Struct(result); err != nil {
		return nil, apperrors.ErrInvalidClassifierOutput(err)
	}

	classification := resultToEntity(meetingID, result)
	winner, inserted, err := s.classifications.CreateIfAbsent(ctx, classification)
	if err != nil {
		return nil, apperrors.ErrInternal(err)
	}
	if !inserted {
		s.logger.Warn("classification raced with a concurrent writer, adopting stored result",
			zap.Uint("meeting_id", meetingID),
		)
	}

	return &Outcome{MeetingID: meetingID, Created: true, Classification: winner}, nil
}

// ClassifyBatch classifies each meeting in turn. A missing meeting is
// skipped; any other failure aborts the remaining batch.
func (s *Service) ClassifyBatch(ctx context.Context, meetingIDs []uint) ([]Outcome, error) {
	outcomes := make([]Outcome, 0, len(meetingIDs))
	for _, id := range meetingIDs {
		outcome, err := s.Classify(ctx, id)
		if err != nil {
			if appErr, ok := apperrors.AsAppError(err); ok && appErr.Code == apperrors.ErrorCode_NOT_FOUND {
				s.logger.Debug("skipping unknown meeting in batch", zap.Uint("meeting_id", id))
				continue
			}
			return outcomes, err
		}
		outcomes = append(outcomes, *outcome)
	}
	return outcomes, nil
}

// List returns a page of classifications plus the total count
func (s *Service) List(ctx context.Context, offset, limit int) ([]entities.Classification, int64, error) {
	items, total, err := s.classifications.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, apperrors.ErrInternal(err)
	}
	return items, total, nil
}

func (s *Service) callWithRetry(ctx context.Context, meetingID uint, prompt string) (*ai.Result, error) {
	attempt := 0
	operation := func() (*ai.Result, error) {
		attempt++
		result, err := s.classifier.Classify(ctx, prompt)
		if err != nil {
			if ai.IsRateLimit(err) {
				s.logger.Warn("classifier rate limited, backing off",
					zap.Uint("meeting_id", meetingID),
					zap.Int("attempt", attempt),
					zap.Duration("interval", s.cfg.RetryInterval),
				)
				return nil, err
			}
			return nil, backoff.Permanent(err)
		}
		return result, nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(s.cfg.RetryInterval), uint64(s.cfg.MaxAttempts-1)),
		ctx,
	)

	result, err := backoff.RetryWithData(operation, policy)
	if err != nil {
		if ai.IsRateLimit(err) {
			return nil, apperrors.ErrRateLimitExceeded(s.cfg.MaxAttempts, err)
		}
		if errors.Is(err, ai.ErrInvalidOutput) {
			return nil, apperrors.ErrInvalidClassifierOutput(err)
		}
		return nil, apperrors.ErrInternal(err)
	}
	return result, nil
}

func resultToEntity(meetingID uint, result *ai.Result) *entities.Classification {
	return &entities.Classification{
		TranscriptID:     meetingID,
		Sentiment:        result.Sentiment,
		Urgency:          result.Urgency,
		BudgetTier:       result.BudgetTier,
		BuyerRole:        result.BuyerRole,
		UseCase:          result.UseCase,
		Pains:            datatypes.JSONSlice[string](result.Pains),
		Objections:       datatypes.JSONSlice[string](result.Objections),
		Competitors:      datatypes.JSONSlice[string](result.Competitors),
		Risks:            datatypes.JSONSlice[string](result.Risks),
		NextStepClarity:  result.NextStepClarity,
		Origin:           result.Origin,
		Automatization:   result.Automatization,
		FitScore:         result.FitScore,
		CloseProbability: result.CloseProbability,
		Summary:          result.Summary,
	}
}
