package services

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/platewise/mealbudget-backend/internal/apperr"
	"github.com/platewise/mealbudget-backend/internal/metrics"
	"github.com/platewise/mealbudget-backend/internal/models"
	repo "github.com/platewise/mealbudget-backend/internal/repository"
	"github.com/platewise/mealbudget-backend/internal/worker"
)

// LedgerService owns every write to remaining_balance. The invariant it
// maintains: remaining_balance == monthly_budget minus the prices
// debited for the user's meal logs, applied incrementally. Both halves
// of each ledger mutation (meal row + balance delta) commit in one
// transaction, with the balance applied as an in-place UPDATE so
// concurrent requests serialize on the row lock.
type LedgerService struct {
	users  repo.Users
	dishes repo.Dishes
	meals  repo.MealLogs
	aud    *auditor

	now func() time.Time
}

func NewLedgerService(users repo.Users, dishes repo.Dishes, meals repo.MealLogs, logs repo.AuditLogs, wp *worker.Pool) *LedgerService {
	return &LedgerService{
		users:  users,
		dishes: dishes,
		meals:  meals,
		aud:    newAuditor(logs, wp),
		now:    time.Now,
	}
}

func (s *LedgerService) GetBudget(email string) (decimal.Decimal, error) {
	u, err := s.users.GetByEmail(email)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return u.RemainingBalance, nil
}

// SetBudget overwrites both monthly_budget and remaining_balance. It is
// a reset, not an adjustment: any spending accrued against the old
// budget stops affecting the balance.
func (s *LedgerService) SetBudget(email string, amount decimal.Decimal) error {
	if err := s.users.SetBudget(email, amount); err != nil {
		return err
	}
	s.aud.record("user", email, "budget_set", map[string]any{"amount": amount.StringFixed(2)})
	return nil
}

// LogMeal resolves the dish by exact name (first match on duplicates),
// then inserts the meal row and debits its current price from the
// user's balance in one transaction. Returns the deducted amount.
// Balances may go negative; this is a tracker, not a spending cap.
func (s *LedgerService) LogMeal(ctx context.Context, email, dishName string, date time.Time) (decimal.Decimal, error) {
	dish, err := s.dishes.GetByName(dishName)
	if err != nil {
		return decimal.Decimal{}, err
	}

	err = s.meals.WithTx(ctx, func(tx pgx.Tx) error {
		m := models.MealLog{UserEmail: email, DishName: dish.Name, MealDate: date}
		if _, err := s.meals.InsertTx(ctx, tx, m); err != nil {
			return err
		}
		_, err := s.users.AdjustBalanceTx(ctx, tx, email, dish.Price.Neg())
		return err
	})
	if err != nil {
		return decimal.Decimal{}, err
	}

	metrics.MealsLogged.Inc()
	s.aud.record("meal", email, "logged", map[string]any{
		"dish":     dish.Name,
		"deducted": dish.Price.StringFixed(2),
	})
	return dish.Price, nil
}

// DeleteMeal refunds the dish's CURRENT menu price, which may differ
// from what was charged if the dish was edited since. If the dish or
// the user is gone the refund is skipped silently and the row is
// deleted anyway.
func (s *LedgerService) DeleteMeal(ctx context.Context, id int64) error {
	meal, err := s.meals.GetByID(id)
	if err != nil {
		return err
	}

	refund := decimal.Zero
	if dish, err := s.dishes.GetByName(meal.DishName); err == nil {
		refund = dish.Price
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return err
	}

	err = s.meals.WithTx(ctx, func(tx pgx.Tx) error {
		if !refund.IsZero() {
			if _, err := s.users.AdjustBalanceTx(ctx, tx, meal.UserEmail, refund); err != nil {
				if !errors.Is(err, apperr.ErrNotFound) {
					return err
				}
			}
		}
		return s.meals.DeleteTx(ctx, tx, id)
	})
	if err != nil {
		return err
	}

	metrics.MealsDeleted.Inc()
	s.aud.record("meal", strconv.FormatInt(id, 10), "deleted", map[string]any{
		"refunded": refund.StringFixed(2),
	})
	return nil
}

// ListToday filters the user's meals to the server-local calendar date.
// Not timezone-aware; that limitation is part of the contract.
func (s *LedgerService) ListToday(email string) ([]models.MealView, error) {
	y, m, d := s.now().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return s.meals.ListViewsByDate(email, today)
}

func (s *LedgerService) History(email string) ([]models.MealView, error) {
	return s.meals.ListViews(email)
}

// Summarize recomputes total_spent from current dish prices over the
// full history. It is an independent ledger from remaining_balance:
// the two diverge once a logged dish's price changes or the dish is
// deleted, and both are reported without reconciliation.
func (s *LedgerService) Summarize(email string) (models.Summary, error) {
	u, err := s.users.GetByEmail(email)
	if err != nil {
		return models.Summary{}, err
	}
	views, err := s.meals.ListViews(email)
	if err != nil {
		return models.Summary{}, err
	}
	total := decimal.Zero
	for _, v := range views {
		total = total.Add(v.Price)
	}
	return models.Summary{
		MonthlyBudget:    u.MonthlyBudget,
		TotalSpent:       total,
		RemainingBalance: u.RemainingBalance,
	}, nil
}
