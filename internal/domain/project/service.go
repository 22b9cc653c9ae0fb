package project

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Avi9631/partner-platform/internal/domain/listing"
	"github.com/Avi9631/partner-platform/internal/pkg/logger"
)

type Service struct {
	repo     *Repository
	verifier *listing.Verifier
}

func NewService(db *sqlx.DB, repo *Repository, drafts listing.DraftResetter) *Service {
	return &Service{
		repo:     repo,
		verifier: listing.NewVerifier(db, drafts, table, EntityType),
	}
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Project, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID) ([]Project, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) List(ctx context.Context, filter Filter, page, limit int) ([]Project, int, error) {
	return s.repo.List(ctx, filter, page, limit)
}

func (s *Service) SearchNearby(ctx context.Context, q listing.NearbyQuery) ([]NearbyProject, error) {
	return s.repo.SearchNearby(ctx, q)
}

func (s *Service) UpdateVerificationStatus(ctx context.Context, id uuid.UUID, status string, verifiedBy uuid.UUID, notes string) error {
	return s.verifier.Update(ctx, id, status, verifiedBy, notes)
}

func (s *Service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return err
	}
	logger.LogInfo(ctx, "Project deleted", "entity_id", id.String())
	return nil
}
