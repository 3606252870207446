package services

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/platewise/mealbudget-backend/internal/apperr"
	"github.com/platewise/mealbudget-backend/internal/auth"
	"github.com/platewise/mealbudget-backend/internal/models"
	repo "github.com/platewise/mealbudget-backend/internal/repository"
	"github.com/platewise/mealbudget-backend/internal/worker"
)

type AccountService struct {
	users repo.Users
	aud   *auditor
}

func NewAccountService(users repo.Users, logs repo.AuditLogs, wp *worker.Pool) *AccountService {
	return &AccountService{users: users, aud: newAuditor(logs, wp)}
}

// Register creates a user with monthly_budget and remaining_balance both
// set to initialBudget. Email matching is case-sensitive; the unique
// index decides conflicts.
func (s *AccountService) Register(fullName, email, password string, initialBudget decimal.Decimal) (models.User, error) {
	u := models.User{
		FullName:         strings.TrimSpace(fullName),
		Email:            strings.TrimSpace(email),
		MonthlyBudget:    initialBudget,
		RemainingBalance: initialBudget,
	}
	if err := u.Validate(); err != nil {
		return models.User{}, err
	}
	if password == "" {
		return models.User{}, apperr.Validation("password required")
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}
	u.PasswordHash = hash

	created, err := s.users.Create(u)
	if err != nil {
		return models.User{}, err
	}
	s.aud.record("user", created.Email, "registered", nil)
	return created, nil
}

// Authenticate returns the user's display name. Unknown email and wrong
// password collapse into the same error so callers cannot enumerate
// accounts.
func (s *AccountService) Authenticate(email, password string) (string, error) {
	u, err := s.users.GetByEmail(email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return "", apperr.ErrInvalidCredentials
		}
		return "", err
	}
	if err := auth.VerifyPassword(password, u.PasswordHash); err != nil {
		return "", apperr.ErrInvalidCredentials
	}
	return u.FullName, nil
}

func (s *AccountService) ChangePassword(email, oldPassword, newPassword string) error {
	if _, err := s.Authenticate(email, oldPassword); err != nil {
		return err
	}
	if newPassword == "" {
		return apperr.Validation("new_password required")
	}
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePasswordHash(email, hash); err != nil {
		return err
	}
	s.aud.record("user", email, "password_changed", nil)
	return nil
}
