package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/dealsense/dealsense/internal/domain/entities"
	domainrepo "github.com/dealsense/dealsense/internal/domain/repositories"
)

// ClientRepository handles client data operations
type ClientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a new client repository
func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

var _ domainrepo.ClientRepository = (*ClientRepository)(nil)

// Create creates a new client
func (r *ClientRepository) Create(ctx context.Context, client *entities.Client) error {
	if client == nil {
		return errors.New("client cannot be nil")
	}
	return r.db.WithContext(ctx).Create(client).Error
}

// Update saves changed client fields
func (r *ClientRepository) Update(ctx context.Context, client *entities.Client) error {
	if client == nil {
		return errors.New("client cannot be nil")
	}
	return r.db.WithContext(ctx).Save(client).Error
}

// GetByID retrieves a client with its meetings and their classifications
func (r *ClientRepository) GetByID(ctx context.Context, id uint) (*entities.Client, error) {
	var client entities.Client
	err := r.db.WithContext(ctx).
		Preload("Meetings").
		Preload("Meetings.Classification").
		First(&client, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &client, nil
}

// FindByNameAndEmailHash retrieves the client matching exactly (name, email_hash)
func (r *ClientRepository) FindByNameAndEmailHash(ctx context.Context, name string, emailHash *string) (*entities.Client, error) {
	query := r.db.WithContext(ctx).Where("name = ?", name)
	if emailHash == nil {
		query = query.Where("email_hash IS NULL")
	} else {
		query = query.Where("email_hash = ?", *emailHash)
	}

	var client entities.Client
	if err := query.First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &client, nil
}

// List returns a page of clients with meetings preloaded plus the total count
func (r *ClientRepository) List(ctx context.Context, offset, limit int) ([]entities.Client, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&entities.Client{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var clients []entities.Client
	err := r.db.WithContext(ctx).
		Preload("Meetings").
		Preload("Meetings.Classification").
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&clients).Error
	if err != nil {
		return nil, 0, err
	}
	return clients, total, nil
}
