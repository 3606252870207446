package services

import (
	"context"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/platewise/mealbudget-backend/internal/apperr"
	"github.com/platewise/mealbudget-backend/internal/models"
)

// In-memory stand-ins for the postgres repositories. WithTx snapshots
// the mutable state and restores it when fn fails, mirroring a rollback.

type memState struct {
	users    map[string]models.User
	dishes   []models.Dish
	meals    []models.MealLog
	audits   []models.AuditLog
	nextDish int64
	nextMeal int64
}

func newMemState() *memState {
	return &memState{users: map[string]models.User{}, nextDish: 1, nextMeal: 1}
}

type memUsers struct{ st *memState }

func (r *memUsers) Create(u models.User) (models.User, error) {
	if _, ok := r.st.users[u.Email]; ok {
		return models.User{}, apperr.Conflict("email already registered")
	}
	u.ID = u.Email
	r.st.users[u.Email] = u
	return u, nil
}

func (r *memUsers) GetByEmail(email string) (models.User, error) {
	u, ok := r.st.users[email]
	if !ok {
		return models.User{}, apperr.NotFound("user %s", email)
	}
	return u, nil
}

func (r *memUsers) UpdatePasswordHash(email, hash string) error {
	u, ok := r.st.users[email]
	if !ok {
		return apperr.NotFound("user %s", email)
	}
	u.PasswordHash = hash
	r.st.users[email] = u
	return nil
}

func (r *memUsers) SetBudget(email string, amount decimal.Decimal) error {
	u, ok := r.st.users[email]
	if !ok {
		return apperr.NotFound("user %s", email)
	}
	u.MonthlyBudget = amount
	u.RemainingBalance = amount
	r.st.users[email] = u
	return nil
}

func (r *memUsers) AdjustBalanceTx(_ context.Context, _ pgx.Tx, email string, delta decimal.Decimal) (decimal.Decimal, error) {
	u, ok := r.st.users[email]
	if !ok {
		return decimal.Decimal{}, apperr.NotFound("user %s", email)
	}
	u.RemainingBalance = u.RemainingBalance.Add(delta)
	r.st.users[email] = u
	return u.RemainingBalance, nil
}

type memDishes struct{ st *memState }

func (r *memDishes) List() ([]models.Dish, error) {
	return append([]models.Dish(nil), r.st.dishes...), nil
}

func (r *memDishes) Create(d models.Dish) (models.Dish, error) {
	d.ID = r.st.nextDish
	r.st.nextDish++
	r.st.dishes = append(r.st.dishes, d)
	return d, nil
}

func (r *memDishes) GetByID(id int64) (models.Dish, error) {
	for _, d := range r.st.dishes {
		if d.ID == id {
			return d, nil
		}
	}
	return models.Dish{}, apperr.NotFound("dish %d", id)
}

func (r *memDishes) GetByName(name string) (models.Dish, error) {
	best := models.Dish{}
	found := false
	for _, d := range r.st.dishes {
		if d.Name == name && (!found || d.ID < best.ID) {
			best = d
			found = true
		}
	}
	if !found {
		return models.Dish{}, apperr.NotFound("dish %q", name)
	}
	return best, nil
}

func (r *memDishes) Update(d models.Dish) error {
	for i := range r.st.dishes {
		if r.st.dishes[i].ID == d.ID {
			r.st.dishes[i] = d
			return nil
		}
	}
	return apperr.NotFound("dish %d", d.ID)
}

func (r *memDishes) Delete(id int64) error {
	for i := range r.st.dishes {
		if r.st.dishes[i].ID == id {
			r.st.dishes = append(r.st.dishes[:i], r.st.dishes[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("dish %d", id)
}

type memMeals struct{ st *memState }

func (r *memMeals) GetByID(id int64) (models.MealLog, error) {
	for _, m := range r.st.meals {
		if m.ID == id {
			return m, nil
		}
	}
	return models.MealLog{}, apperr.NotFound("meal %d", id)
}

func (r *memMeals) view(m models.MealLog) models.MealView {
	v := models.MealView{
		ID:       m.ID,
		DishName: m.DishName,
		MealDate: m.MealDate.Format("2006-01-02"),
		Price:    decimal.Zero,
	}
	if d, err := (&memDishes{r.st}).GetByName(m.DishName); err == nil {
		v.DishType = d.Type
		v.Price = d.Price
	}
	return v
}

func (r *memMeals) ListViews(email string) ([]models.MealView, error) {
	var logs []models.MealLog
	for _, m := range r.st.meals {
		if m.UserEmail == email {
			logs = append(logs, m)
		}
	}
	sort.Slice(logs, func(i, j int) bool {
		if !logs[i].MealDate.Equal(logs[j].MealDate) {
			return logs[i].MealDate.After(logs[j].MealDate)
		}
		return logs[i].ID > logs[j].ID
	})
	var out []models.MealView
	for _, m := range logs {
		out = append(out, r.view(m))
	}
	return out, nil
}

func (r *memMeals) ListViewsByDate(email string, date time.Time) ([]models.MealView, error) {
	day := date.Format("2006-01-02")
	var out []models.MealView
	for _, m := range r.st.meals {
		if m.UserEmail == email && m.MealDate.Format("2006-01-02") == day {
			out = append(out, r.view(m))
		}
	}
	return out, nil
}

func (r *memMeals) InsertTx(_ context.Context, _ pgx.Tx, m models.MealLog) (models.MealLog, error) {
	m.ID = r.st.nextMeal
	r.st.nextMeal++
	r.st.meals = append(r.st.meals, m)
	return m, nil
}

func (r *memMeals) DeleteTx(_ context.Context, _ pgx.Tx, id int64) error {
	for i := range r.st.meals {
		if r.st.meals[i].ID == id {
			r.st.meals = append(r.st.meals[:i], r.st.meals[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("meal %d", id)
}

func (r *memMeals) WithTx(_ context.Context, fn func(pgx.Tx) error) error {
	users := make(map[string]models.User, len(r.st.users))
	for k, v := range r.st.users {
		users[k] = v
	}
	meals := append([]models.MealLog(nil), r.st.meals...)
	nextMeal := r.st.nextMeal

	if err := fn(nil); err != nil {
		r.st.users = users
		r.st.meals = meals
		r.st.nextMeal = nextMeal
		return err
	}
	return nil
}

type memAudit struct{ st *memState }

func (r *memAudit) Create(l models.AuditLog) error {
	r.st.audits = append(r.st.audits, l)
	return nil
}

type harness struct {
	st       *memState
	accounts *AccountService
	menu     *MenuService
	ledger   *LedgerService
}

func newHarness() *harness {
	st := newMemState()
	users := &memUsers{st}
	dishes := &memDishes{st}
	meals := &memMeals{st}
	audit := &memAudit{st}
	return &harness{
		st:       st,
		accounts: NewAccountService(users, audit, nil),
		menu:     NewMenuService(dishes, audit, nil),
		ledger:   NewLedgerService(users, dishes, meals, audit, nil),
	}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func patchPrice(s string) models.DishPatch { return models.DishPatch{Price: dec(s)} }
