package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/platewise/mealbudget-backend/internal/apperr"
)

type User struct {
	ID           string `json:"id"`
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	// MonthlyBudget is the fixed reference amount; RemainingBalance is the
	// running ledger total. The ledger service is the only writer of
	// RemainingBalance.
	MonthlyBudget    decimal.Decimal `json:"monthly_budget"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

func (u *User) Validate() error {
	if strings.TrimSpace(u.FullName) == "" {
		return apperr.Validation("full_name required")
	}
	if strings.TrimSpace(u.Email) == "" {
		return apperr.Validation("email required")
	}
	if !strings.Contains(u.Email, "@") {
		return apperr.Validation("invalid email")
	}
	return nil
}
