// Package meetings resolves incoming meeting rows onto stored meetings by
// natural key, merging instead of duplicating on re-upload.
package meetings

import (
	"context"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/dealsense/dealsense/errors"
	"github.com/dealsense/dealsense/internal/domain/entities"
	"github.com/dealsense/dealsense/internal/domain/repositories"
)

// UpsertInput carries the incoming fields of one meeting row. Nil fields are
// "not provided" and never erase stored data.
type UpsertInput struct {
	AssignedSeller *string
	MeetingDate    *time.Time
	Closed         *bool
	Transcript     *string
}

// Service resolves meetings for a client
type Service struct {
	repo   repositories.MeetingRepository
	logger *zap.Logger
}

// NewService constructs a meeting resolver service
func NewService(repo repositories.MeetingRepository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Upsert finds or creates a meeting for the client. Resolution order, first
// match wins: identical meeting_date, then byte-identical transcript, else a
// new meeting. On a match every non-nil incoming field overwrites the stored
// value. Returns whether a new meeting was created.
func (s *Service) Upsert(ctx context.Context, client *entities.Client, in UpsertInput) (*entities.Meeting, bool, error) {
	var meeting *entities.Meeting

	if in.MeetingDate != nil {
		found, err := s.repo.FindByClientAndDate(ctx, client.ID, *in.MeetingDate)
		if err != nil {
			return nil, false, apperrors.ErrInternal(err)
		}
		meeting = found
	}
	if meeting == nil && in.Transcript != nil && *in.Transcript != "" {
		found, err := s.repo.FindByClientAndTranscript(ctx, client.ID, *in.Transcript)
		if err != nil {
			return nil, false, apperrors.ErrInternal(err)
		}
		meeting = found
	}

	if meeting != nil {
		applyFields(meeting, in)
		if err := s.repo.Update(ctx, meeting); err != nil {
			return nil, false, apperrors.ErrInternal(err)
		}
		return meeting, false, nil
	}

	meeting = &entities.Meeting{ClientID: client.ID}
	applyFields(meeting, in)
	if err := s.repo.Create(ctx, meeting); err != nil {
		return nil, false, apperrors.ErrInternal(err)
	}
	s.logger.Debug("created meeting",
		zap.Uint("meeting_id", meeting.ID),
		zap.Uint("client_id", client.ID),
	)
	return meeting, true, nil
}

// applyFields copies every non-nil incoming field onto the meeting
func applyFields(meeting *entities.Meeting, in UpsertInput) {
	if in.AssignedSeller != nil {
		meeting.AssignedSeller = in.AssignedSeller
	}
	if in.MeetingDate != nil {
		meeting.MeetingDate = in.MeetingDate
	}
	if in.Closed != nil {
		meeting.Closed = *in.Closed
	}
	if in.Transcript != nil {
		meeting.Transcript = *in.Transcript
	}
}

// Get retrieves a meeting by id with its classification
func (s *Service) Get(ctx context.Context, id uint) (*entities.Meeting, error) {
	meeting, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.ErrInternal(err)
	}
	if meeting == nil {
		return nil, apperrors.ErrMeetingNotFound(id)
	}
	return meeting, nil
}

// List returns a page of meetings plus the total count
func (s *Service) List(ctx context.Context, offset, limit int) ([]entities.Meeting, int64, error) {
	items, total, err := s.repo.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, apperrors.ErrInternal(err)
	}
	return items, total, nil
}
