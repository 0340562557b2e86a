package repository

import (
	"context"
	"errors"
	"sort"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dealsense/dealsense/internal/domain/entities"
	domainrepo "github.com/dealsense/dealsense/internal/domain/repositories"
)

// ClassificationRepository handles classification data operations
type ClassificationRepository struct {
	db *gorm.DB
}

// NewClassificationRepository creates a new classification repository
func NewClassificationRepository(db *gorm.DB) *ClassificationRepository {
	return &ClassificationRepository{db: db}
}

var _ domainrepo.ClassificationRepository = (*ClassificationRepository)(nil)

// GetByMeetingID retrieves the classification owned by a meeting
func (r *ClassificationRepository) GetByMeetingID(ctx context.Context, meetingID uint) (*entities.Classification, error) {
	var classification entities.Classification
	err := r.db.WithContext(ctx).
		Where("transcript_id = ?", meetingID).
		First(&classification).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &classification, nil
}

// CreateIfAbsent inserts a classification unless one already exists for the
// same meeting. The unique index on transcript_id arbitrates concurrent
// writers: a conflicting insert affects zero rows, and the stored winner is
// re-read and returned instead of being overwritten.
func (r *ClassificationRepository) CreateIfAbsent(ctx context.Context, classification *entities.Classification) (*entities.Classification, bool, error) {
	if classification == nil {
		return nil, false, errors.New("classification cannot be nil")
	}

	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "transcript_id"}},
		DoNothing: true,
	}).Create(classification)
	if res.Error != nil {
		return nil, false, res.Error
	}

	if res.RowsAffected == 0 {
		winner, err := r.GetByMeetingID(ctx, classification.TranscriptID)
		if err != nil {
			return nil, false, err
		}
		if winner == nil {
			return nil, false, errors.New("classification conflict with no stored winner")
		}
		return winner, false, nil
	}

	return classification, true, nil
}

// DistinctPains returns the sorted distinct set of non-empty pain labels.
// Labels live inside JSON list columns, so flattening happens here rather
// than in SQL.
func (r *ClassificationRepository) DistinctPains(ctx context.Context) ([]string, error) {
	var lists []datatypes.JSONSlice[string]
	err := r.db.WithContext(ctx).
		Model(&entities.Classification{}).
		Pluck("pains", &lists).Error
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	for _, list := range lists {
		for _, pain := range list {
			if pain == "" {
				continue
			}
			seen[pain] = struct{}{}
		}
	}

	pains := make([]string, 0, len(seen))
	for pain := range seen {
		pains = append(pains, pain)
	}
	sort.Strings(pains)
	return pains, nil
}

// List returns a page of classifications plus the total count
func (r *ClassificationRepository) List(ctx context.Context, offset, limit int) ([]entities.Classification, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&entities.Classification{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var classifications []entities.Classification
	err := r.db.WithContext(ctx).
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&classifications).Error
	if err != nil {
		return nil, 0, err
	}
	return classifications, total, nil
}
