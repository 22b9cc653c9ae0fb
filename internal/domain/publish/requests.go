package publish

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Preview is the short entity summary returned to the client.
type Preview map[string]interface{}

func (p Preview) Value() (driver.Value, error) {
	if p == nil {
		return "{}", nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (p *Preview) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*p = Preview{}
		return nil
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	}
	return errors.New("publish: unsupported preview type")
}

// record is a stored publish result keyed by (user, idempotency key).
type record struct {
	UserID         uuid.UUID `db:"user_id"`
	IdempotencyKey string    `db:"idempotency_key"`
	DraftID        uuid.UUID `db:"draft_id"`
	EntityID       uuid.UUID `db:"entity_id"`
	EntityType     string    `db:"entity_type"`
	IsUpdate       bool      `db:"is_update"`
	Preview        Preview   `db:"preview"`
	CreatedAt      time.Time `db:"created_at"`
}

// Requests persists publish results for replay.
type Requests struct {
	db *sqlx.DB
}

func NewRequests(db *sqlx.DB) *Requests {
	return &Requests{db: db}
}

func (r *Requests) findTx(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, key string) (*record, error) {
	var rec record
	err := tx.GetContext(ctx, &rec, `
		SELECT user_id, idempotency_key, draft_id, entity_id, entity_type, is_update, preview, created_at
		FROM publish_requests
		WHERE user_id = $1 AND idempotency_key = $2`, userID, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *Requests) insertTx(ctx context.Context, tx *sqlx.Tx, rec *record) error {
	_, err := tx.NamedExecContext(ctx, `
		INSERT INTO publish_requests (user_id, idempotency_key, draft_id, entity_id, entity_type, is_update, preview)
		VALUES (:user_id, :idempotency_key, :draft_id, :entity_id, :entity_type, :is_update, :preview)`, rec)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return ErrKeyConflict
	}
	return err
}

func (r *Requests) deleteTx(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, key string) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM publish_requests WHERE user_id = $1 AND idempotency_key = $2`, userID, key)
	return err
}

// PurgeOlderThan deletes replay records created before the cutoff.
func (r *Requests) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM publish_requests WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
