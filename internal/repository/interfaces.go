package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/platewise/mealbudget-backend/internal/models"
)

type Users interface {
	Create(u models.User) (models.User, error)
	GetByEmail(email string) (models.User, error)
	UpdatePasswordHash(email, hash string) error
	// SetBudget overwrites both monthly_budget and remaining_balance.
	SetBudget(email string, amount decimal.Decimal) error

	// AdjustBalanceTx applies a delta to remaining_balance inside the
	// caller's transaction. The UPDATE takes a row lock, so concurrent
	// adjustments against the same user serialize on commit order.
	AdjustBalanceTx(ctx context.Context, tx pgx.Tx, email string, delta decimal.Decimal) (decimal.Decimal, error)
}

type Dishes interface {
	List() ([]models.Dish, error)
	Create(d models.Dish) (models.Dish, error)
	GetByID(id int64) (models.Dish, error)
	// GetByName returns the first match by lowest id; names are not unique.
	GetByName(name string) (models.Dish, error)
	Update(d models.Dish) error
	Delete(id int64) error
}

type MealLogs interface {
	GetByID(id int64) (models.MealLog, error)
	// ListViews returns the user's meals newest date first, each joined
	// against the dish's current price and type (0 / "" when dangling).
	ListViews(email string) ([]models.MealView, error)
	ListViewsByDate(email string, date time.Time) ([]models.MealView, error)

	InsertTx(ctx context.Context, tx pgx.Tx, m models.MealLog) (models.MealLog, error)
	DeleteTx(ctx context.Context, tx pgx.Tx, id int64) error

	// WithTx runs fn inside a single database transaction (pgx.Tx).
	WithTx(ctx context.Context, fn func(pgx.Tx) error) error
}

type AuditLogs interface {
	Create(l models.AuditLog) error
}
