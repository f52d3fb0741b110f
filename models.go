package storefront

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is a catalog admin/customer record. The very first user provisioned in
// the system is flagged as owner; owners are admin-equivalent for every gate
// and their own flags cannot be changed through the API.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            uuid.UUID  `bun:"id,pk" json:"id"`
	Email         string     `bun:"email,notnull,unique" json:"email"`
	Name          string     `bun:"name,notnull" json:"name"`
	Picture       string     `bun:"picture" json:"picture"`
	IsAdmin       bool       `bun:"is_admin,notnull" json:"is_admin"`
	IsOwner       bool       `bun:"is_owner,notnull" json:"is_owner"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
}

// IsElevated reports whether the user passes the admin gate. Owner implies
// admin for permission checks even if the is_admin flag was never set.
func (u *User) IsElevated() bool {
	if u == nil {
		return false
	}
	return u.IsAdmin || u.IsOwner
}

// UserSession is one provider-issued session token bound to a user. The token
// itself is the primary key; the provider mints it and we trust it as-is.
type UserSession struct {
	bun.BaseModel `bun:"table:user_sessions,alias:sess"`
	Token         string     `bun:"session_token,pk" json:"session_token"`
	UserID        uuid.UUID  `bun:"user_id,notnull" json:"user_id"`
	ExpiresAt     time.Time  `bun:"expires_at,notnull" json:"expires_at"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
}

// Expired reports whether the session is past its expiry at the given instant.
func (s *UserSession) Expired(now time.Time) bool {
	return s.ExpiresAt.Before(now)
}

// Category groups products. Names are unique case-insensitively; the check
// runs at write time inside a transaction.
type Category struct {
	bun.BaseModel `bun:"table:categories,alias:cat"`
	ID            uuid.UUID  `bun:"id,pk" json:"id"`
	Name          string     `bun:"name,notnull" json:"name"`
	Description   string     `bun:"description" json:"description"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"createdAt,omitempty"`
}

// Product is a catalog entry. Category is a free-text reference, not a
// foreign key, matching how the storefront filters.
type Product struct {
	bun.BaseModel `bun:"table:products,alias:prd"`
	ID            uuid.UUID  `bun:"id,pk" json:"id"`
	Name          string     `bun:"name,notnull" json:"name"`
	Description   string     `bun:"description,notnull" json:"description"`
	Price         float64    `bun:"price,notnull" json:"price"`
	Category      string     `bun:"category,notnull" json:"category"`
	ImageURL      string     `bun:"image_url,notnull" json:"imageUrl"`
	Stock         int        `bun:"stock,notnull" json:"stock"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"createdAt,omitempty"`
}

// Stock status filter values and the fixed boundary between low and in stock.
const (
	StockStatusIn  = "in_stock"
	StockStatusLow = "low_stock"
	StockStatusOut = "out_of_stock"

	lowStockThreshold = 10
)

// StockStatus derives the product's bucket using the fixed thresholds.
func (p *Product) StockStatus() string {
	switch {
	case p.Stock >= lowStockThreshold:
		return StockStatusIn
	case p.Stock > 0:
		return StockStatusLow
	default:
		return StockStatusOut
	}
}

// Sort options accepted by product listing. Anything else falls back to newest.
const (
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortNewest    = "newest"
)
