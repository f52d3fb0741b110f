package storefront

import (
	"context"
	"strings"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ProductFilter narrows and orders a product listing. Zero values mean the
// dimension is not filtered.
type ProductFilter struct {
	Search      string
	Category    string
	MinPrice    *float64
	MaxPrice    *float64
	StockStatus string
	SortBy      string
}

// ProductPatch carries the fields of a partial product update. Nil means the
// field was absent from the request and stays untouched.
type ProductPatch struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	ImageURL    *string  `json:"imageUrl"`
	Stock       *int     `json:"stock"`
}

func (p ProductPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.Price == nil &&
		p.Category == nil && p.ImageURL == nil && p.Stock == nil
}

// Products is the product repository, including the dynamically filtered
// listing the storefront search runs on.
type Products interface {
	List(ctx context.Context, filter ProductFilter) ([]*Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)
	CreateProduct(ctx context.Context, record *Product) (*Product, error)
	UpdateFields(ctx context.Context, id uuid.UUID, patch ProductPatch) (*Product, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

type products struct {
	repository.Repository[*Product]
	db *bun.DB
}

var _ Products = (*products)(nil)

func NewProductsRepository(db *bun.DB) Products {
	repo := repository.NewRepository[*Product](db, repository.ModelHandlers[*Product]{
		NewRecord: func() *Product { return &Product{} },
		GetID: func(p *Product) uuid.UUID {
			if p == nil {
				return uuid.Nil
			}
			return p.ID
		},
		SetID: func(p *Product, id uuid.UUID) {
			if p != nil {
				p.ID = id
			}
		},
		GetIdentifier: func() string {
			return "name"
		},
	})

	return &products{
		Repository: repo,
		db:         db,
	}
}

// List applies the filter dimensions that are set and orders the result.
// Search is one case-insensitive pattern ORed across name, description and
// category. Unknown sort values fall back to newest-first.
func (r *products) List(ctx context.Context, filter ProductFilter) ([]*Product, error) {
	var records []*Product
	q := r.db.NewSelect().Model(&records)

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		q = q.Where(
			"(LOWER(?TableAlias.name) LIKE ? OR LOWER(?TableAlias.description) LIKE ? OR LOWER(?TableAlias.category) LIKE ?)",
			pattern, pattern, pattern,
		)
	}

	if filter.Category != "" {
		q = q.Where("?TableAlias.category = ?", filter.Category)
	}

	if filter.MinPrice != nil {
		q = q.Where("?TableAlias.price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		q = q.Where("?TableAlias.price <= ?", *filter.MaxPrice)
	}

	switch filter.StockStatus {
	case StockStatusIn:
		q = q.Where("?TableAlias.stock >= ?", lowStockThreshold)
	case StockStatusLow:
		q = q.Where("?TableAlias.stock > 0 AND ?TableAlias.stock < ?", lowStockThreshold)
	case StockStatusOut:
		q = q.Where("?TableAlias.stock = 0")
	}

	switch filter.SortBy {
	case SortPriceAsc:
		q = q.Order("price ASC")
	case SortPriceDesc:
		q = q.Order("price DESC")
	default:
		q = q.Order("created_at DESC")
	}

	if err := q.Scan(ctx); err != nil {
		return nil, err
	}

	return records, nil
}

func (r *products) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	record := &Product{}
	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	return record, nil
}

func (r *products) CreateProduct(ctx context.Context, record *Product) (*Product, error) {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	return r.Repository.Create(ctx, record)
}

// UpdateFields applies a partial update; an empty patch is a client error.
func (r *products) UpdateFields(ctx context.Context, id uuid.UUID, patch ProductPatch) (*Product, error) {
	if patch.Empty() {
		return nil, ErrNoUpdateFields
	}

	record, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	columns := make([]string, 0, 6)

	if patch.Name != nil {
		record.Name = *patch.Name
		columns = append(columns, "name")
	}
	if patch.Description != nil {
		record.Description = *patch.Description
		columns = append(columns, "description")
	}
	if patch.Price != nil {
		record.Price = *patch.Price
		columns = append(columns, "price")
	}
	if patch.Category != nil {
		record.Category = *patch.Category
		columns = append(columns, "category")
	}
	if patch.ImageURL != nil {
		record.ImageURL = *patch.ImageURL
		columns = append(columns, "image_url")
	}
	if patch.Stock != nil {
		record.Stock = *patch.Stock
		columns = append(columns, "stock")
	}

	_, err = r.db.NewUpdate().
		Model(record).
		Column(columns...).
		WherePK().
		Exec(ctx)
	if err != nil {
		return nil, err
	}

	return record, nil
}

// DeleteByID removes the product, reporting not found when no row matched.
func (r *products) DeleteByID(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.NewDelete().
		Model((*Product)(nil)).
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
		return ErrProductNotFound
	}

	return nil
}
