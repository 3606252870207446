package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/platewise/mealbudget-backend/internal/apperr"
	"github.com/platewise/mealbudget-backend/internal/models"
)

type mealLogsRepo struct{ pool *pgxpool.Pool }

func (r *mealLogsRepo) GetByID(id int64) (models.MealLog, error) {
	var m models.MealLog
	err := r.pool.QueryRow(context.Background(),
		`SELECT id, user_email, dish_name, meal_date, created_at FROM meal_logs WHERE id=$1`, id,
	).Scan(&m.ID, &m.UserEmail, &m.DishName, &m.MealDate, &m.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.MealLog{}, apperr.NotFound("meal %d", id)
	}
	return m, err
}

// viewQuery resolves each row's dish at read time. The lateral join
// mirrors GetByName's lowest-id rule; COALESCE supplies the dangling
// defaults (price 0, type "") when the dish is gone.
const viewQuery = `
SELECT m.id, m.dish_name, COALESCE(d.type, ''), COALESCE(d.price, 0), m.meal_date
  FROM meal_logs m
  LEFT JOIN LATERAL (
       SELECT type, price FROM dishes WHERE name = m.dish_name ORDER BY id LIMIT 1
  ) d ON true
 WHERE m.user_email = $1`

func (r *mealLogsRepo) ListViews(email string) ([]models.MealView, error) {
	rows, err := r.pool.Query(context.Background(),
		viewQuery+` ORDER BY m.meal_date DESC, m.id DESC`, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanViews(rows)
}

func (r *mealLogsRepo) ListViewsByDate(email string, date time.Time) ([]models.MealView, error) {
	rows, err := r.pool.Query(context.Background(),
		viewQuery+` AND m.meal_date = $2 ORDER BY m.id`, email, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanViews(rows)
}

func scanViews(rows pgx.Rows) ([]models.MealView, error) {
	var out []models.MealView
	for rows.Next() {
		var v models.MealView
		var date time.Time
		if err := rows.Scan(&v.ID, &v.DishName, &v.DishType, &v.Price, &date); err != nil {
			return nil, err
		}
		v.MealDate = date.Format("2006-01-02")
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *mealLogsRepo) InsertTx(ctx context.Context, tx pgx.Tx, m models.MealLog) (models.MealLog, error) {
	err := tx.QueryRow(ctx,
		`INSERT INTO meal_logs(user_email, dish_name, meal_date)
		 VALUES($1,$2,$3)
		 RETURNING id, user_email, dish_name, meal_date, created_at`,
		m.UserEmail, m.DishName, m.MealDate,
	).Scan(&m.ID, &m.UserEmail, &m.DishName, &m.MealDate, &m.CreatedAt)
	return m, err
}

func (r *mealLogsRepo) DeleteTx(ctx context.Context, tx pgx.Tx, id int64) error {
	ct, err := tx.Exec(ctx, `DELETE FROM meal_logs WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return apperr.NotFound("meal %d", id)
	}
	return nil
}

func (r *mealLogsRepo) WithTx(ctx context.Context, fn func(pgx.Tx) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.ReadCommitted,
		AccessMode: pgx.ReadWrite,
	})
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}
