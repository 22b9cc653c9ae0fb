package publish

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/Avi9631/partner-platform/internal/domain/draft"
	"github.com/Avi9631/partner-platform/internal/domain/schema"
	"github.com/Avi9631/partner-platform/internal/domain/wallet"
	"github.com/Avi9631/partner-platform/internal/pkg/database"
	"github.com/Avi9631/partner-platform/internal/pkg/lock"
	"github.com/Avi9631/partner-platform/internal/pkg/logger"
)

// DraftStore is the part of the draft store the workflow needs.
type DraftStore interface {
	GetForUpdateTx(ctx context.Context, tx *sqlx.Tx, draftID, userID uuid.UUID, t draft.Type) (*draft.Draft, error)
	MarkPublishedTx(ctx context.Context, tx *sqlx.Tx, draftID, publishedID uuid.UUID, publishedType string) error
}

// Ledger charges the publish fee inside the publish transaction.
type Ledger interface {
	DebitTx(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, amount decimal.Decimal, reason string, meta wallet.Metadata, referenceID string) (*wallet.Result, error)
}

// Locker guards a draft against concurrent publishes across instances.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (*lock.Lock, error)
}

// Notifier receives committed publishes.
type Notifier interface {
	ListingPublished(ctx context.Context, userID uuid.UUID, entityType string, entityID uuid.UUID, isUpdate bool)
	BalanceChanged(ctx context.Context, userID uuid.UUID, balance decimal.Decimal)
}

type Request struct {
	UserID         uuid.UUID
	DraftID        uuid.UUID
	DraftType      draft.Type
	IdempotencyKey string
}

type Result struct {
	EntityID       uuid.UUID
	EntityType     string
	EntityKey      string
	IsUpdate       bool
	Preview        Preview
	Replayed       bool
	NewBalance     *decimal.Decimal
	IdempotencyKey string
}

type Config struct {
	Fee     decimal.Decimal
	LockTTL time.Duration
}

// Workflow publishes drafts: validate, upsert the entity, charge the fee
// and mark the draft published in one transaction.
type Workflow struct {
	db       *sqlx.DB
	drafts   DraftStore
	ledger   Ledger
	requests *Requests
	locker   Locker
	notifier Notifier
	targets  map[draft.Type]Target
	cfg      Config
}

// NewWorkflow wires the workflow. locker and notifier may be nil.
func NewWorkflow(db *sqlx.DB, drafts DraftStore, ledger Ledger, requests *Requests, locker Locker, notifier Notifier, cfg Config, targets ...Target) *Workflow {
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = 30 * time.Second
	}
	w := &Workflow{
		db:       db,
		drafts:   drafts,
		ledger:   ledger,
		requests: requests,
		locker:   locker,
		notifier: notifier,
		targets:  make(map[draft.Type]Target, len(targets)),
		cfg:      cfg,
	}
	for _, t := range targets {
		w.targets[t.DraftType()] = t
	}
	return w
}

// Publish runs the publish transaction for one draft.
func (w *Workflow) Publish(ctx context.Context, req Request) (*Result, error) {
	target, ok := w.targets[req.DraftType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTarget, req.DraftType)
	}

	l := logger.FromContext(ctx).With().
		Str("user_id", req.UserID.String()).
		Str("draft_id", req.DraftID.String()).
		Str("entity_type", target.EntityType()).
		Logger()
	ctx = logger.WithContext(ctx, &l)

	release, err := w.acquire(ctx, req.DraftID)
	if err != nil {
		return nil, err
	}
	defer release()

	var res *Result
	err = database.InTx(ctx, w.db, func(tx *sqlx.Tx) error {
		var txErr error
		res, txErr = w.publishTx(ctx, tx, target, req)
		return txErr
	})
	if err != nil {
		if !expected(err) {
			l.Error().Err(err).Msg("Publish failed")
		}
		return nil, err
	}

	if res.Replayed {
		l.Info().Str("idempotency_key", res.IdempotencyKey).Msg("Publish replayed")
		return res, nil
	}

	l.Info().
		Str("entity_id", res.EntityID.String()).
		Bool("is_update", res.IsUpdate).
		Str("amount", w.cfg.Fee.String()).
		Msg("Listing published")

	if w.notifier != nil {
		w.notifier.ListingPublished(ctx, req.UserID, res.EntityType, res.EntityID, res.IsUpdate)
		if res.NewBalance != nil {
			w.notifier.BalanceChanged(ctx, req.UserID, *res.NewBalance)
		}
	}
	return res, nil
}

func (w *Workflow) acquire(ctx context.Context, draftID uuid.UUID) (func(), error) {
	if w.locker == nil {
		return func() {}, nil
	}
	lk, err := w.locker.Acquire(ctx, draftID.String(), w.cfg.LockTTL)
	if errors.Is(err, lock.ErrNotAcquired) {
		return nil, ErrPublishInProgress
	}
	if err != nil {
		// The draft row lock still serialises publishes.
		logger.LogWarn(ctx, "Publish lock unavailable, relying on row lock", "error", err.Error())
		return func() {}, nil
	}
	return func() {
		if err := lk.Release(context.WithoutCancel(ctx)); err != nil {
			logger.LogWarn(ctx, "Publish lock release failed", "error", err.Error())
		}
	}, nil
}

func (w *Workflow) publishTx(ctx context.Context, tx *sqlx.Tx, target Target, req Request) (*Result, error) {
	d, err := w.drafts.GetForUpdateTx(ctx, tx, req.DraftID, req.UserID, target.DraftType())
	if err != nil {
		return nil, err
	}
	if d.IsEmpty() {
		return nil, draft.ErrEmptyDraft
	}

	if verr := schema.ValidateDraft(string(d.Type), d.Data); verr != nil {
		return nil, verr
	}

	key := req.IdempotencyKey
	if key == "" {
		if key, err = DeriveKey(d.ID, d.Data); err != nil {
			return nil, fmt.Errorf("derive idempotency key: %w", err)
		}
	}

	prev, err := w.requests.findTx(ctx, tx, req.UserID, key)
	if err != nil {
		return nil, fmt.Errorf("lookup publish request: %w", err)
	}
	if prev != nil {
		if prev.DraftID != d.ID {
			return nil, ErrKeyConflict
		}
		if !replayable(d, prev) {
			// The draft left PUBLISHED (admin rejection) or now points at
			// another entity, so the stored outcome no longer describes it.
			if err := w.requests.deleteTx(ctx, tx, req.UserID, key); err != nil {
				return nil, fmt.Errorf("drop stale publish request: %w", err)
			}
			prev = nil
		}
	}
	if prev != nil {
		return &Result{
			EntityID:       prev.EntityID,
			EntityType:     prev.EntityType,
			EntityKey:      target.EntityKey(),
			IsUpdate:       prev.IsUpdate,
			Preview:        prev.Preview,
			Replayed:       true,
			IdempotencyKey: key,
		}, nil
	}

	out, err := target.Upsert(ctx, tx, req.UserID, d)
	if err != nil {
		return nil, err
	}

	meta := wallet.Metadata{
		target.EntityKey() + "Id": out.EntityID.String(),
		"type":                    target.EntityType() + "_PUBLISH",
		"draftId":                 d.ID.String(),
	}
	debit, err := w.ledger.DebitTx(ctx, tx, req.UserID, w.cfg.Fee, target.Label()+" listing published", meta, key)
	if err != nil {
		return nil, err
	}

	if err := w.drafts.MarkPublishedTx(ctx, tx, d.ID, out.EntityID, target.EntityType()); err != nil {
		return nil, err
	}

	if err := w.requests.insertTx(ctx, tx, &record{
		UserID:         req.UserID,
		IdempotencyKey: key,
		DraftID:        d.ID,
		EntityID:       out.EntityID,
		EntityType:     target.EntityType(),
		IsUpdate:       out.IsUpdate,
		Preview:        out.Preview,
	}); err != nil {
		return nil, err
	}

	balance := debit.NewBalance
	return &Result{
		EntityID:       out.EntityID,
		EntityType:     target.EntityType(),
		EntityKey:      target.EntityKey(),
		IsUpdate:       out.IsUpdate,
		Preview:        out.Preview,
		NewBalance:     &balance,
		IdempotencyKey: key,
	}, nil
}

func replayable(d *draft.Draft, prev *record) bool {
	return d.Status == draft.StatusPublished && d.PublishedID != nil && *d.PublishedID == prev.EntityID
}

// expected errors are client-facing outcomes, not failures worth an error log.
func expected(err error) bool {
	var verr *schema.DraftValidationError
	return errors.As(err, &verr) ||
		errors.Is(err, draft.ErrNotFound) ||
		errors.Is(err, draft.ErrEmptyDraft) ||
		errors.Is(err, wallet.ErrInsufficientFunds) ||
		errors.Is(err, ErrPublishInProgress) ||
		errors.Is(err, ErrKeyConflict)
}
