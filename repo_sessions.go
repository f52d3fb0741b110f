package storefront

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Sessions stores the provider-issued session tokens. The token string is the
// primary key, so this repository does not fit the generic uuid-keyed shape
// and talks to bun directly.
type Sessions interface {
	Get(ctx context.Context, token string) (*UserSession, error)
	Create(ctx context.Context, session *UserSession) error
	CreateTx(ctx context.Context, tx bun.IDB, session *UserSession) error
	Delete(ctx context.Context, token string) error
	DeleteForUser(ctx context.Context, userID uuid.UUID) error
	DeleteForUserTx(ctx context.Context, tx bun.IDB, userID uuid.UUID) error
}

type sessions struct {
	db *bun.DB
}

var _ Sessions = (*sessions)(nil)

func NewSessionsRepository(db *bun.DB) Sessions {
	return &sessions{db: db}
}

// Get returns the session row for a token, or ErrNotAuthenticated when no row
// exists. Expiry is the caller's concern; the row is returned as stored.
func (r *sessions) Get(ctx context.Context, token string) (*UserSession, error) {
	record := &UserSession{}
	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.session_token = ?", token).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotAuthenticated
		}
		return nil, err
	}

	return record, nil
}

func (r *sessions) Create(ctx context.Context, session *UserSession) error {
	return r.CreateTx(ctx, r.db, session)
}

func (r *sessions) CreateTx(ctx context.Context, tx bun.IDB, session *UserSession) error {
	_, err := tx.NewInsert().
		Model(session).
		Exec(ctx)
	return err
}

// Delete removes the session row if present. Idempotent: deleting an unknown
// token is not an error.
func (r *sessions) Delete(ctx context.Context, token string) error {
	_, err := r.db.NewDelete().
		Model((*UserSession)(nil)).
		Where("session_token = ?", token).
		Exec(ctx)
	return err
}

func (r *sessions) DeleteForUser(ctx context.Context, userID uuid.UUID) error {
	return r.DeleteForUserTx(ctx, r.db, userID)
}

func (r *sessions) DeleteForUserTx(ctx context.Context, tx bun.IDB, userID uuid.UUID) error {
	_, err := tx.NewDelete().
		Model((*UserSession)(nil)).
		Where("user_id = ?", userID).
		Exec(ctx)
	return err
}
