package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MealLog is one logged meal. It references the user by email and the
// dish by name — weak references resolved at read time, never enforced
// by a foreign key. A renamed or deleted dish leaves the row dangling;
// dangling rows resolve to price 0 and type "".
type MealLog struct {
	ID        int64     `json:"id"`
	UserEmail string    `json:"user_email"`
	DishName  string    `json:"dish_name"`
	MealDate  time.Time `json:"date"`
	CreatedAt time.Time `json:"created_at"`
}

// MealView is a meal log enriched with the dish's current price and
// type. Current, not historical: if the dish was edited after the meal
// was logged, the view shows today's menu values.
type MealView struct {
	ID        int64           `json:"id"`
	DishName  string          `json:"dish_name"`
	DishType  string          `json:"dish_type"`
	Price     decimal.Decimal `json:"price"`
	MealDate  string          `json:"date"`
}

// Summary reports the two ledgers side by side. TotalSpent is recomputed
// from current dish prices and is not guaranteed to equal
// MonthlyBudget - RemainingBalance once prices changed or dishes were
// deleted; both numbers are returned as-is.
type Summary struct {
	MonthlyBudget    decimal.Decimal `json:"monthly_budget"`
	TotalSpent       decimal.Decimal `json:"total_spent"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
}
