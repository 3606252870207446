package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/platewise/mealbudget-backend/internal/apperr"
	"github.com/platewise/mealbudget-backend/internal/models"
)

type dishesRepo struct{ pool *pgxpool.Pool }

const dishCols = `id, name, type, price, created_at`

func (r *dishesRepo) List() ([]models.Dish, error) {
	rows, err := r.pool.Query(context.Background(),
		`SELECT `+dishCols+` FROM dishes ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Dish
	for rows.Next() {
		var d models.Dish
		if err := rows.Scan(&d.ID, &d.Name, &d.Type, &d.Price, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *dishesRepo) Create(d models.Dish) (models.Dish, error) {
	err := r.pool.QueryRow(context.Background(),
		`INSERT INTO dishes(name, type, price) VALUES($1,$2,$3) RETURNING `+dishCols,
		d.Name, d.Type, d.Price,
	).Scan(&d.ID, &d.Name, &d.Type, &d.Price, &d.CreatedAt)
	return d, err
}

func (r *dishesRepo) GetByID(id int64) (models.Dish, error) {
	var d models.Dish
	err := r.pool.QueryRow(context.Background(),
		`SELECT `+dishCols+` FROM dishes WHERE id=$1`, id,
	).Scan(&d.ID, &d.Name, &d.Type, &d.Price, &d.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Dish{}, apperr.NotFound("dish %d", id)
	}
	return d, err
}

// GetByName takes the lowest id on duplicate names; insertion order is
// the tie-break the rest of the system assumes.
func (r *dishesRepo) GetByName(name string) (models.Dish, error) {
	var d models.Dish
	err := r.pool.QueryRow(context.Background(),
		`SELECT `+dishCols+` FROM dishes WHERE name=$1 ORDER BY id LIMIT 1`, name,
	).Scan(&d.ID, &d.Name, &d.Type, &d.Price, &d.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Dish{}, apperr.NotFound("dish %q", name)
	}
	return d, err
}

func (r *dishesRepo) Update(d models.Dish) error {
	ct, err := r.pool.Exec(context.Background(),
		`UPDATE dishes SET name=$2, type=$3, price=$4 WHERE id=$1`,
		d.ID, d.Name, d.Type, d.Price)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return apperr.NotFound("dish %d", d.ID)
	}
	return nil
}

func (r *dishesRepo) Delete(id int64) error {
	ct, err := r.pool.Exec(context.Background(), `DELETE FROM dishes WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return apperr.NotFound("dish %d", id)
	}
	return nil
}
