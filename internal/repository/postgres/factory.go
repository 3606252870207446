package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	repo "github.com/platewise/mealbudget-backend/internal/repository"
)

type Repositories struct {
	Users     repo.Users
	Dishes    repo.Dishes
	MealLogs  repo.MealLogs
	AuditLogs repo.AuditLogs
}

func NewRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Users:     &usersRepo{pool},
		Dishes:    &dishesRepo{pool},
		MealLogs:  &mealLogsRepo{pool},
		AuditLogs: &auditLogsRepo{pool},
	}
}
