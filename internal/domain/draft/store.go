package draft

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const draftColumns = `id, user_id, draft_type, draft_data, draft_status, published_id, published_type, created_at, updated_at`

// Store persists listing drafts. Reads are always scoped to the owner, so a
// foreign draft looks exactly like a missing one.
type Store struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, userID uuid.UUID, t Type, data Data) (*Draft, error) {
	if data == nil {
		data = Data{}
	}
	var d Draft
	err := s.db.GetContext(ctx, &d, `
		INSERT INTO listing_drafts (user_id, draft_type, draft_data)
		VALUES ($1, $2, $3)
		RETURNING `+draftColumns, userID, string(t), data)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Get loads a draft owned by userID. An empty t matches any type.
func (s *Store) Get(ctx context.Context, draftID, userID uuid.UUID, t Type) (*Draft, error) {
	return getDraft(ctx, s.db, draftID, userID, t, false)
}

// GetForUpdateTx is Get with a row lock held until tx ends.
func (s *Store) GetForUpdateTx(ctx context.Context, tx *sqlx.Tx, draftID, userID uuid.UUID, t Type) (*Draft, error) {
	return getDraft(ctx, tx, draftID, userID, t, true)
}

func getDraft(ctx context.Context, q sqlx.QueryerContext, draftID, userID uuid.UUID, t Type, lock bool) (*Draft, error) {
	query := `SELECT ` + draftColumns + `
		FROM listing_drafts
		WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL
		  AND ($3::text = '' OR draft_type = $3)`
	if lock {
		query += ` FOR UPDATE`
	}

	var d Draft
	err := sqlx.GetContext(ctx, q, &d, query, draftID, userID, string(t))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ListByUser returns the user's drafts, newest first. Empty filters match all.
func (s *Store) ListByUser(ctx context.Context, userID uuid.UUID, t Type, status Status) ([]Draft, error) {
	drafts := []Draft{}
	err := s.db.SelectContext(ctx, &drafts, `
		SELECT `+draftColumns+`
		FROM listing_drafts
		WHERE user_id = $1 AND deleted_at IS NULL
		  AND ($2::text = '' OR draft_type = $2)
		  AND ($3::text = '' OR draft_status = $3)
		ORDER BY updated_at DESC
	`, userID, string(t), string(status))
	return drafts, err
}

// UpdateStep replaces one top-level step key and leaves the others intact.
func (s *Store) UpdateStep(ctx context.Context, draftID, userID uuid.UUID, stepID string, stepData json.RawMessage) (*Draft, error) {
	var d Draft
	err := s.db.GetContext(ctx, &d, `
		UPDATE listing_drafts
		SET draft_data = draft_data || jsonb_build_object($3::text, $4::jsonb),
		    updated_at = now()
		WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL
		RETURNING `+draftColumns, draftID, userID, stepID, string(stepData))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Delete soft-deletes an unpublished draft.
func (s *Store) Delete(ctx context.Context, draftID, userID uuid.UUID) error {
	d, err := s.Get(ctx, draftID, userID, "")
	if err != nil {
		return err
	}
	if d.Status == StatusPublished {
		return ErrDraftPublished
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE listing_drafts SET deleted_at = now(), updated_at = now()
		WHERE id = $1 AND user_id = $2 AND draft_status = 'DRAFT' AND deleted_at IS NULL
	`, draftID, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrDraftPublished
	}
	return nil
}

// MarkPublishedTx records the published entity. There is no reverse path
// apart from ResetToDraftTx on admin rejection.
func (s *Store) MarkPublishedTx(ctx context.Context, tx *sqlx.Tx, draftID, publishedID uuid.UUID, publishedType string) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE listing_drafts
		SET draft_status = 'PUBLISHED', published_id = $2, published_type = $3, updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL
	`, draftID, publishedID, publishedType)
	if err != nil {
		return fmt.Errorf("mark draft published: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ResetToDraftTx returns the draft behind a rejected entity to DRAFT so the
// partner can edit and publish again.
func (s *Store) ResetToDraftTx(ctx context.Context, tx *sqlx.Tx, publishedType string, publishedID uuid.UUID) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE listing_drafts
		SET draft_status = 'DRAFT', updated_at = now()
		WHERE published_type = $1 AND published_id = $2 AND deleted_at IS NULL
	`, publishedType, publishedID)
	return err
}
