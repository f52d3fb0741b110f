package storefront

import (
	"context"
	"strings"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// CategoryPatch carries the fields of a partial category update. Nil means
// the field was absent from the request and stays untouched.
type CategoryPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (p CategoryPatch) Empty() bool {
	return p.Name == nil && p.Description == nil
}

// Categories is the category repository. Creates and renames enforce the
// case-insensitive name uniqueness rule inside a transaction.
type Categories interface {
	List(ctx context.Context) ([]*Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Category, error)
	CreateUnique(ctx context.Context, record *Category) (*Category, error)
	UpdateFields(ctx context.Context, id uuid.UUID, patch CategoryPatch) (*Category, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

type categories struct {
	repository.Repository[*Category]
	db *bun.DB
}

var _ Categories = (*categories)(nil)

func NewCategoriesRepository(db *bun.DB) Categories {
	repo := repository.NewRepository[*Category](db, repository.ModelHandlers[*Category]{
		NewRecord: func() *Category { return &Category{} },
		GetID: func(c *Category) uuid.UUID {
			if c == nil {
				return uuid.Nil
			}
			return c.ID
		},
		SetID: func(c *Category, id uuid.UUID) {
			if c != nil {
				c.ID = id
			}
		},
		GetIdentifier: func() string {
			return "name"
		},
	})

	return &categories{
		Repository: repo,
		db:         db,
	}
}

func (r *categories) List(ctx context.Context) ([]*Category, error) {
	var records []*Category
	err := r.db.NewSelect().
		Model(&records).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *categories) GetByID(ctx context.Context, id uuid.UUID) (*Category, error) {
	record := &Category{}
	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	return record, nil
}

// CreateUnique inserts the category after checking no other category carries
// the same name in any casing. Check and insert share one transaction.
func (r *categories) CreateUnique(ctx context.Context, record *Category) (*Category, error) {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}

	var created *Category
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		taken, err := r.nameTaken(ctx, tx, record.Name, uuid.Nil)
		if err != nil {
			return err
		}
		if taken {
			return ErrDuplicateCategoryName
		}

		created, err = r.Repository.CreateTx(ctx, tx, record)
		return err
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// UpdateFields applies a partial update. An empty patch is a client error.
// Renaming a category to the name it already has (case-insensitively) is not
// a collision; renaming onto a different existing category is.
func (r *categories) UpdateFields(ctx context.Context, id uuid.UUID, patch CategoryPatch) (*Category, error) {
	if patch.Empty() {
		return nil, ErrNoUpdateFields
	}

	record := &Category{}
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		err := tx.NewSelect().
			Model(record).
			Where("?TableAlias.id = ?", id).
			Limit(1).
			Scan(ctx)
		if err != nil {
			if repository.IsRecordNotFound(err) {
				return ErrCategoryNotFound
			}
			return err
		}

		columns := make([]string, 0, 2)

		if patch.Name != nil {
			if !strings.EqualFold(record.Name, *patch.Name) {
				taken, err := r.nameTaken(ctx, tx, *patch.Name, id)
				if err != nil {
					return err
				}
				if taken {
					return ErrDuplicateCategoryName
				}
			}
			record.Name = *patch.Name
			columns = append(columns, "name")
		}

		if patch.Description != nil {
			record.Description = *patch.Description
			columns = append(columns, "description")
		}

		_, err = tx.NewUpdate().
			Model(record).
			Column(columns...).
			WherePK().
			Exec(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	return record, nil
}

// DeleteByID removes the category, reporting not found when no row matched.
func (r *categories) DeleteByID(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.NewDelete().
		Model((*Category)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCategoryNotFound
	}

	return nil
}

func (r *categories) nameTaken(ctx context.Context, tx bun.IDB, name string, exclude uuid.UUID) (bool, error) {
	q := tx.NewSelect().
		Model((*Category)(nil)).
		Where("LOWER(?TableAlias.name) = LOWER(?)", name)

	if exclude != uuid.Nil {
		q = q.Where("?TableAlias.id != ?", exclude)
	}

	count, err := q.Count(ctx)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
