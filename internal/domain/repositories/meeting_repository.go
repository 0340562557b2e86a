package repositories

import (
	"context"
	"time"

	"github.com/dealsense/dealsense/internal/domain/entities"
)

// MeetingRepository defines persistence operations for meetings
type MeetingRepository interface {
	Create(ctx context.Context, meeting *entities.Meeting) error
	Update(ctx context.Context, meeting *entities.Meeting) error
	GetByID(ctx context.Context, id uint) (*entities.Meeting, error)
	// Natural-key lookups used by the upsert path, in resolution order
	FindByClientAndDate(ctx context.Context, clientID uint, date time.Time) (*entities.Meeting, error)
	FindByClientAndTranscript(ctx context.Context, clientID uint, transcript string) (*entities.Meeting, error)
	List(ctx context.Context, offset, limit int) ([]entities.Meeting, int64, error)
}
