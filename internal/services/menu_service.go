package services

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/platewise/mealbudget-backend/internal/models"
	repo "github.com/platewise/mealbudget-backend/internal/repository"
	"github.com/platewise/mealbudget-backend/internal/worker"
)

type MenuService struct {
	dishes repo.Dishes
	aud    *auditor
}

func NewMenuService(dishes repo.Dishes, logs repo.AuditLogs, wp *worker.Pool) *MenuService {
	return &MenuService{dishes: dishes, aud: newAuditor(logs, wp)}
}

func (s *MenuService) List() ([]models.Dish, error) {
	return s.dishes.List()
}

func (s *MenuService) Add(name, dishType string, price decimal.Decimal) (models.Dish, error) {
	d := models.Dish{Name: name, Type: dishType, Price: price}
	if err := d.Validate(); err != nil {
		return models.Dish{}, err
	}
	created, err := s.dishes.Create(d)
	if err != nil {
		return models.Dish{}, err
	}
	s.aud.record("dish", strconv.FormatInt(created.ID, 10), "added", map[string]any{"name": created.Name})
	return created, nil
}

// Edit applies only the supplied fields. Falsy values count as "not
// supplied": an empty name or type and a zero price are skipped, so a
// price cannot be edited to exactly zero. Long-standing behavior,
// preserved on purpose.
func (s *MenuService) Edit(id int64, patch models.DishPatch) (models.Dish, error) {
	d, err := s.dishes.GetByID(id)
	if err != nil {
		return models.Dish{}, err
	}
	if patch.Name != "" {
		d.Name = patch.Name
	}
	if patch.Type != "" {
		d.Type = patch.Type
	}
	if !patch.Price.IsZero() {
		d.Price = patch.Price
	}
	if err := s.dishes.Update(d); err != nil {
		return models.Dish{}, err
	}
	s.aud.record("dish", strconv.FormatInt(id, 10), "edited", nil)
	return d, nil
}

// Delete removes the menu row only. Meal logs referencing the dish by
// name stay behind and resolve to price 0 / type "" from then on.
func (s *MenuService) Delete(id int64) error {
	if err := s.dishes.Delete(id); err != nil {
		return err
	}
	s.aud.record("dish", strconv.FormatInt(id, 10), "deleted", nil)
	return nil
}
