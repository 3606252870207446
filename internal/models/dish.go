package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/platewise/mealbudget-backend/internal/apperr"
)

// Dish is a menu item. Names are not unique; lookups by name take the
// row with the lowest id.
type Dish struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Type      string          `json:"type"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"created_at"`
}

func (d *Dish) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return apperr.Validation("name required")
	}
	if strings.TrimSpace(d.Type) == "" {
		return apperr.Validation("type required")
	}
	if d.Price.IsNegative() {
		return apperr.Validation("price must be >= 0")
	}
	return nil
}

// DishPatch carries a partial update for a dish. A zero value means
// "not supplied": an empty name or type and a zero price are skipped.
// This makes a literal zero price impossible to set through an edit,
// which mirrors the long-standing behavior of the API.
type DishPatch struct {
	Name  string          `json:"name"`
	Type  string          `json:"type"`
	Price decimal.Decimal `json:"price"`
}
