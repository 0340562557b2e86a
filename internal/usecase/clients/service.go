// Package clients resolves noisy contact rows into deduplicated client
// identities.
package clients

import (
	"context"

	"go.uber.org/zap"

	apperrors "github.com/dealsense/dealsense/errors"
	"github.com/dealsense/dealsense/internal/domain/entities"
	"github.com/dealsense/dealsense/internal/domain/repositories"
	"github.com/dealsense/dealsense/pkg/identity"
)

// UpsertInput carries the raw identity fields of one incoming row
type UpsertInput struct {
	Name  string
	Email *string
	Phone *string
}

// Service resolves client identities
type Service struct {
	repo   repositories.ClientRepository
	logger *zap.Logger
}

// NewService constructs a client resolver service
func NewService(repo repositories.ClientRepository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Upsert finds or creates the client identified by (name, email_hash).
// Matching never considers the phone hash; on a match, hashes that are newly
// available but previously absent are backfilled, and stored hashes are never
// overwritten. Returns whether a new client was created. Empty names are
// accepted as-is.
func (s *Service) Upsert(ctx context.Context, in UpsertInput) (*entities.Client, bool, error) {
	emailHash := identity.HashIdentifier(in.Email)
	phoneHash := identity.HashIdentifier(in.Phone)

	var client *entities.Client
	if emailHash != nil || phoneHash != nil {
		found, err := s.repo.FindByNameAndEmailHash(ctx, in.Name, emailHash)
		if err != nil {
			return nil, false, apperrors.ErrInternal(err)
		}
		client = found
	}

	if client == nil {
		client = &entities.Client{
			Name:      in.Name,
			EmailHash: emailHash,
			PhoneHash: phoneHash,
		}
		if err := s.repo.Create(ctx, client); err != nil {
			return nil, false, apperrors.ErrInternal(err)
		}
		s.logger.Debug("created client",
			zap.Uint("client_id", client.ID),
			zap.String("name", client.Name),
		)
		return client, true, nil
	}

	changed := false
	if client.EmailHash == nil && emailHash != nil {
		client.EmailHash = emailHash
		changed = true
	}
	if client.PhoneHash == nil && phoneHash != nil {
		client.PhoneHash = phoneHash
		changed = true
	}
	if changed {
		if err := s.repo.Update(ctx, client); err != nil {
			return nil, false, apperrors.ErrInternal(err)
		}
	}

	return client, false, nil
}

// Get retrieves a client by id with its meetings
func (s *Service) Get(ctx context.Context, id uint) (*entities.Client, error) {
	client, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.ErrInternal(err)
	}
	if client == nil {
		return nil, apperrors.ErrClientNotFound(id)
	}
	return client, nil
}

// List returns a page of clients plus the total count
func (s *Service) List(ctx context.Context, offset, limit int) ([]entities.Client, int64, error) {
	items, total, err := s.repo.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, apperrors.ErrInternal(err)
	}
	return items, total, nil
}
