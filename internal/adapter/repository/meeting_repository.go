package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/dealsense/dealsense/internal/domain/entities"
	domainrepo "github.com/dealsense/dealsense/internal/domain/repositories"
)

// MeetingRepository handles meeting data operations
type MeetingRepository struct {
	db *gorm.DB
}

// NewMeetingRepository creates a new meeting repository
func NewMeetingRepository(db *gorm.DB) *MeetingRepository {
	return &MeetingRepository{db: db}
}

var _ domainrepo.MeetingRepository = (*MeetingRepository)(nil)

// Create creates a new meeting
func (r *MeetingRepository) Create(ctx context.Context, meeting *entities.Meeting) error {
	if meeting == nil {
		return errors.New("meeting cannot be nil")
	}
	return r.db.WithContext(ctx).Create(meeting).Error
}

// Update saves changed meeting fields
func (r *MeetingRepository) Update(ctx context.Context, meeting *entities.Meeting) error {
	if meeting == nil {
		return errors.New("meeting cannot be nil")
	}
	return r.db.WithContext(ctx).Save(meeting).Error
}

// GetByID retrieves a meeting with its classification preloaded
func (r *MeetingRepository) GetByID(ctx context.Context, id uint) (*entities.Meeting, error) {
	var meeting entities.Meeting
	err := r.db.WithContext(ctx).
		Preload("Classification").
		First(&meeting, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &meeting, nil
}

// FindByClientAndDate retrieves a meeting by its (client, meeting_date) natural key
func (r *MeetingRepository) FindByClientAndDate(ctx context.Context, clientID uint, date time.Time) (*entities.Meeting, error) {
	var meeting entities.Meeting
	err := r.db.WithContext(ctx).
		Where("client_id = ? AND meeting_date = ?", clientID, date).
		First(&meeting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &meeting, nil
}

// FindByClientAndTranscript retrieves a meeting whose transcript is byte-identical
func (r *MeetingRepository) FindByClientAndTranscript(ctx context.Context, clientID uint, transcript string) (*entities.Meeting, error) {
	var meeting entities.Meeting
	err := r.db.WithContext(ctx).
		Where("client_id = ? AND transcript = ?", clientID, transcript).
		First(&meeting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &meeting, nil
}

// List returns a page of meetings with classifications preloaded plus the total count
func (r *MeetingRepository) List(ctx context.Context, offset, limit int) ([]entities.Meeting, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&entities.Meeting{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var meetings []entities.Meeting
	err := r.db.WithContext(ctx).
		Preload("Classification").
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&meetings).Error
	if err != nil {
		return nil, 0, err
	}
	return meetings, total, nil
}
