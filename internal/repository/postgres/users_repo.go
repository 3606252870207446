package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/platewise/mealbudget-backend/internal/apperr"
	"github.com/platewise/mealbudget-backend/internal/models"
)

type usersRepo struct{ pool *pgxpool.Pool }

const userCols = `id, full_name, email, password_hash, monthly_budget, remaining_balance, created_at, updated_at`

func (r *usersRepo) Create(u models.User) (models.User, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	err := r.pool.QueryRow(context.Background(),
		`INSERT INTO users(id, full_name, email, password_hash, monthly_budget, remaining_balance)
		 VALUES($1,$2,$3,$4,$5,$6)
		 RETURNING `+userCols,
		u.ID, u.FullName, u.Email, u.PasswordHash, u.MonthlyBudget, u.RemainingBalance,
	).Scan(&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.MonthlyBudget, &u.RemainingBalance, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return models.User{}, apperr.Conflict("email already registered")
		}
		return models.User{}, err
	}
	return u, nil
}

func (r *usersRepo) GetByEmail(email string) (models.User, error) {
	var u models.User
	err := r.pool.QueryRow(context.Background(),
		`SELECT `+userCols+` FROM users WHERE email=$1`, email,
	).Scan(&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.MonthlyBudget, &u.RemainingBalance, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.User{}, apperr.NotFound("user %s", email)
	}
	return u, err
}

func (r *usersRepo) UpdatePasswordHash(email, hash string) error {
	ct, err := r.pool.Exec(context.Background(),
		`UPDATE users SET password_hash=$2, updated_at=now() WHERE email=$1`, email, hash)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return apperr.NotFound("user %s", email)
	}
	return nil
}

func (r *usersRepo) SetBudget(email string, amount decimal.Decimal) error {
	ct, err := r.pool.Exec(context.Background(),
		`UPDATE users
		    SET monthly_budget=$2,
		        remaining_balance=$2,
		        updated_at=now()
		  WHERE email=$1`,
		email, amount)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return apperr.NotFound("user %s", email)
	}
	return nil
}

func (r *usersRepo) AdjustBalanceTx(ctx context.Context, tx pgx.Tx, email string, delta decimal.Decimal) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := tx.QueryRow(ctx,
		`UPDATE users
		    SET remaining_balance = remaining_balance + $2,
		        updated_at = now()
		  WHERE email = $1
		  RETURNING remaining_balance`,
		email, delta,
	).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return decimal.Decimal{}, apperr.NotFound("user %s", email)
	}
	return balance, err
}
