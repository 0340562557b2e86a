package repositories

import (
	"context"

	"github.com/dealsense/dealsense/internal/domain/entities"
)

// ClassificationRepository defines persistence operations for classifications
type ClassificationRepository interface {
	GetByMeetingID(ctx context.Context, meetingID uint) (*entities.Classification, error)
	// CreateIfAbsent inserts keyed on transcript_id. When a concurrent writer
	// already persisted a classification for the same meeting, the stored
	// winner is returned with created=false instead of being overwritten.
	CreateIfAbsent(ctx context.Context, classification *entities.Classification) (*entities.Classification, bool, error)
	// DistinctPains returns the sorted distinct set of non-empty pain labels
	// across all classifications, queried fresh on every call.
	DistinctPains(ctx context.Context) ([]string, error)
	List(ctx context.Context, offset, limit int) ([]entities.Classification, int64, error)
}
