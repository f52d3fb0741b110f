package storefront

import (
	"context"
	"fmt"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Users is the repository for user records. On top of the generic CRUD the
// backing struct embeds, it carries the provisioning rule that the first user
// ever created becomes owner, and the owner-guarded admin-flag update.
type Users interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByEmailTx(ctx context.Context, tx bun.IDB, email string) (*User, error)
	GetByUserID(ctx context.Context, id uuid.UUID) (*User, error)
	GetOrProvision(ctx context.Context, record *User) (*User, bool, error)
	GetOrProvisionTx(ctx context.Context, tx bun.IDB, record *User) (*User, bool, error)
	SetAdmin(ctx context.Context, email string, isAdmin bool) (*User, error)
	List(ctx context.Context) ([]*User, error)
	CountTx(ctx context.Context, tx bun.IDB) (int, error)
}

type users struct {
	repository.Repository[*User]
	db *bun.DB
}

var _ Users = (*users)(nil)

func NewUsersRepository(db *bun.DB) Users {
	repo := repository.NewRepository[*User](db, repository.ModelHandlers[*User]{
		NewRecord: func() *User { return &User{} },
		GetID: func(u *User) uuid.UUID {
			if u == nil {
				return uuid.Nil
			}
			return u.ID
		},
		SetID: func(u *User, id uuid.UUID) {
			if u != nil {
				u.ID = id
			}
		},
		GetIdentifier: func() string {
			return "email"
		},
	})

	return &users{
		Repository: repo,
		db:         db,
	}
}

func (a *users) GetByEmail(ctx context.Context, email string) (*User, error) {
	return a.GetByEmailTx(ctx, a.db, email)
}

func (a *users) GetByEmailTx(ctx context.Context, tx bun.IDB, email string) (*User, error) {
	record := &User{}
	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.email = ?", email).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, fmt.Errorf("user %s: %w", email, repository.ErrRecordNotFound)
		}
		return nil, err
	}

	return record, nil
}

func (a *users) GetByUserID(ctx context.Context, id uuid.UUID) (*User, error) {
	record := &User{}
	err := a.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, fmt.Errorf("user %s: %w", id, repository.ErrRecordNotFound)
		}
		return nil, err
	}

	return record, nil
}

func (a *users) GetOrProvision(ctx context.Context, record *User) (*User, bool, error) {
	return a.GetOrProvisionTx(ctx, a.db, record)
}

// GetOrProvisionTx looks the user up by email and creates the record when the
// email is unseen. When the users table is empty at creation time the new user
// is granted both owner and admin; callers must run this inside a transaction
// so the count and insert serialize, and the unique email constraint decides
// the winner if two first registrations race.
func (a *users) GetOrProvisionTx(ctx context.Context, tx bun.IDB, record *User) (*User, bool, error) {
	user, err := a.GetByEmailTx(ctx, tx, record.Email)
	if err == nil {
		return user, false, nil
	}

	if !repository.IsRecordNotFound(err) {
		return nil, false, err
	}

	count, err := a.CountTx(ctx, tx)
	if err != nil {
		return nil, false, err
	}

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if count == 0 {
		record.IsAdmin = true
		record.IsOwner = true
	}

	created, err := a.Repository.CreateTx(ctx, tx, record)
	if err != nil {
		return nil, false, err
	}

	return created, true, nil
}

// SetAdmin flips the is_admin flag of the user with the given email. Owners
// are refused as targets; their flags are immutable through the API.
func (a *users) SetAdmin(ctx context.Context, email string, isAdmin bool) (*User, error) {
	target, err := a.GetByEmail(ctx, email)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if target.IsOwner {
		return nil, ErrOwnerImmutable
	}

	target.IsAdmin = isAdmin
	_, err = a.db.NewUpdate().
		Model(target).
		Column("is_admin").
		WherePK().
		Exec(ctx)
	if err != nil {
		return nil, err
	}

	return target, nil
}

func (a *users) List(ctx context.Context) ([]*User, error) {
	var records []*User
	err := a.db.NewSelect().
		Model(&records).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (a *users) CountTx(ctx context.Context, tx bun.IDB) (int, error) {
	return tx.NewSelect().Model((*User)(nil)).Count(ctx)
}
