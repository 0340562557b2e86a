package repositories

import (
	"context"

	"github.com/dealsense/dealsense/internal/domain/entities"
)

// ClientRepository defines persistence operations for clients
type ClientRepository interface {
	Create(ctx context.Context, client *entities.Client) error
	Update(ctx context.Context, client *entities.Client) error
	GetByID(ctx context.Context, id uint) (*entities.Client, error)
	// FindByNameAndEmailHash looks up the unique client matching exactly
	// (name, email_hash). Phone hashes are intentionally not a lookup key.
	FindByNameAndEmailHash(ctx context.Context, name string, emailHash *string) (*entities.Client, error)
	List(ctx context.Context, offset, limit int) ([]entities.Client, int64, error)
}
