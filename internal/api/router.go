package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"

	"github.com/platewise/mealbudget-backend/internal/apperr"
	"github.com/platewise/mealbudget-backend/internal/api/httpx"
	"github.com/platewise/mealbudget-backend/internal/api/validate"
	"github.com/platewise/mealbudget-backend/internal/config"
	"github.com/platewise/mealbudget-backend/internal/middleware"
	"github.com/platewise/mealbudget-backend/internal/models"
	"github.com/platewise/mealbudget-backend/internal/services"
)

const dateLayout = "2006-01-02"

func NewRouter(cfg config.Config, accounts *services.AccountService, menu *services.MenuService, ledger *services.LedgerService) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.HTTPMetrics, middleware.RateLimit(cfg.RateRPS))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	// health & metrics
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		// ---------- accounts ----------
		r.Post("/signup", func(w http.ResponseWriter, r *http.Request) {
			var req struct {
				FullName string           `json:"full_name"`
				Email    string           `json:"email"`
				Password string           `json:"password"`
				Budget   *decimal.Decimal `json:"budget"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid json", nil)
				return
			}
			if errs := validate.Collect(
				validate.Required("full_name", req.FullName),
				validate.Required("email", req.Email),
				validate.Required("password", req.Password),
			); errs != nil {
				httpx.WriteError(w, http.StatusBadRequest, "validation_error", "missing required fields", errs)
				return
			}
			budget := decimal.Zero
			if req.Budget != nil {
				budget = *req.Budget
			}
			if _, err := accounts.Register(req.FullName, req.Email, req.Password, budget); err != nil {
				httpx.WriteServiceError(w, err)
				return
			}
			httpx.WriteJSON(w, http.StatusCreated, map[string]string{"message": "user registered"})
		})

		r.Post("/login", func(w http.ResponseWriter, r *http.Request) {
			var req struct{ Email, Password string }
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid json", nil)
				return
			}
			if errs := validate.Collect(
				validate.Required("email", req.Email),
				validate.Required("password", req.Password),
			); errs != nil {
				httpx.WriteError(w, http.StatusBadRequest, "validation_error", "missing email or password", errs)
				return
			}
			fullName, err := accounts.Authenticate(req.Email, req.Password)
			if err != nil {
				httpx.WriteServiceError(w, err)
				return
			}
			httpx.WriteJSON(w, http.StatusOK, map[string]string{"full_name": fullName})
		})

		r.Post("/change_password", func(w http.ResponseWriter, r *http.Request) {
			var req struct {
				Email       string `json:"email"`
				OldPassword string `json:"old_password"`
				NewPassword string `json:"new_password"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid json", nil)
				return
			}
			if errs := validate.Collect(
				validate.Required("email", req.Email),
				validate.Required("old_password", req.OldPassword),
				validate.Required("new_password", req.NewPassword),
			); errs != nil {
				httpx.WriteError(w, http.StatusBadRequest, "validation_error", "missing required fields", errs)
				return
			}
			if err := accounts.ChangePassword(req.Email, req.OldPassword, req.NewPassword); err != nil {
				httpx.WriteServiceError(w, err)
				return
			}
			httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "password updated"})
		})

		// ---------- budget ----------
		r.Get("/budget", func(w http.ResponseWriter, r *http.Request) {
			email := r.URL.Query().Get("email")
			if email == "" {
				httpx.WriteError(w, http.StatusBadRequest, "validation_error", "email required", nil)
				return
			}
			balance, err := ledger.GetBudget(email)
			if err != nil {
				httpx.WriteServiceError(w, err)
				return
			}
			httpx.WriteJSON(w, http.StatusOK, map[string]decimal.Decimal{"budget": balance})
		})

		r.Post("/budget", func(w http.ResponseWriter, r *http.Request) {
			var req struct {
				Email  string           `json:"email"`
				Budget *decimal.Decimal `json:"budget"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid json", nil)
				return
			}
			if req.Email == "" || req.Budget == nil {
				httpx.WriteError(w, http.StatusBadRequest, "validation_error", "email and budget required", nil)
				return
			}
			if err := ledger.SetBudget(req.Email, *req.Budget); err != nil {
				httpx.WriteServiceError(w, err)
				return
			}
			httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "budget updated"})
		})

		// ---------- dishes ----------
		r.Get("/dishes", func(w http.ResponseWriter, r *http.Request) {
			dishes, err := menu.List()
			if err != nil {
				httpx.WriteServiceError(w, err)
				return
			}
			if dishes == nil {
				dishes = []models.Dish{}
			}
			httpx.WriteJSON(w, http.StatusOK, dishes)
		})

		r.Post("/dishes", func(w http.ResponseWriter, r *http.Request) {
			var req struct {
				Name  string           `json:"name"`
				Type  string           `json:"type"`
				Price *decimal.Decimal `json:"price"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid json", nil)
				return
			}
			if req.Name == "" || req.Type == "" || req.Price == nil {
				httpx.WriteError(w, http.StatusBadRequest, "validation_error", "name, type and price required", nil)
				return
			}
			dish, err := menu.Add(req.Name, req.Type, *req.Price)
			if err != nil {
				httpx.WriteServiceError(w, err)
				return
			}
			httpx.WriteJSON(w, http.StatusCreated, dish)
		})

		r.Put("/dishes/{id}", func(w http.ResponseWriter, r *http.Request) {
			id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
			if err != nil {
				httpx.WriteError(w, http.StatusNotFound, "not_found", "dish not found", nil)
				return
			}
			var patch models.DishPatch
			if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
				httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid json", nil)
				return
			}
			dish, err := menu.Edit(id, patch)
			if err != nil {
				httpx.WriteServiceError(w, err)
				return
			}
			httpx.WriteJSON(w, http.StatusOK, dish)
		})

		r.Delete("/dishes/{id}", func(w http.ResponseWriter, r *http.Request) {
			id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
			if err != nil {
				httpx.WriteError(w, http.StatusNotFound, "not_found", "dish not found", nil)
				return
			}
			if err := menu.Delete(id); err != nil {
				httpx.WriteServiceError(w, err)
				return
			}
			httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "dish deleted"})
		})

		// ---------- meals ----------
		r.Post("/meals", func(w http.ResponseWriter, r *http.Request) {
			var req struct {
				UserEmail string `json:"user_email"`
				DishName  string `json:"dish_name"`
				Date      string `json:"date"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid json", nil)
				return
			}
			if errs := validate.Collect(
				validate.Required("user_email", req.UserEmail),
				validate.Required("dish_name", req.DishName),
				validate.Required("date", req.Date),
			); errs != nil {
				httpx.WriteError(w, http.StatusBadRequest, "validation_error", "missing required fields", errs)
				return
			}
			date, err := time.Parse(dateLayout, req.Date)
			if err != nil {
				httpx.WriteServiceError(w, apperr.Validation("date must be YYYY-MM-DD"))
				return
			}
			deducted, err := ledger.LogMeal(r.Context(), req.UserEmail, req.DishName, date)
			if err != nil {
				httpx.WriteServiceError(w, err)
				return
			}
			httpx.WriteJSON(w, http.StatusCreated, map[string]decimal.Decimal{"deducted": deducted})
		})

		r.Delete("/meals/{id}", func(w http.ResponseWriter, r *http.Request) {
			id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
			if err != nil {
				httpx.WriteError(w, http.StatusNotFound, "not_found", "meal not found", nil)
				return
			}
			if err := ledger.DeleteMeal(r.Context(), id); err != nil {
				httpx.WriteServiceError(w, err)
				return
			}
			httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "meal deleted"})
		})

		r.Get("/meals/today", func(w http.ResponseWriter, r *http.Request) {
			email := r.URL.Query().Get("email")
			if email == "" {
				httpx.WriteError(w, http.StatusBadRequest, "validation_error", "email required", nil)
				return
			}
			meals, err := ledger.ListToday(email)
			if err != nil {
				httpx.WriteServiceError(w, err)
				return
			}
			if meals == nil {
				meals = []models.MealView{}
			}
			httpx.WriteJSON(w, http.StatusOK, meals)
		})

		r.Get("/meals/history", func(w http.ResponseWriter, r *http.Request) {
			email := r.URL.Query().Get("email")
			if email == "" {
				httpx.WriteError(w, http.StatusBadRequest, "validation_error", "email required", nil)
				return
			}
			meals, err := ledger.History(email)
			if err != nil {
				httpx.WriteServiceError(w, err)
				return
			}
			if meals == nil {
				meals = []models.MealView{}
			}
			httpx.WriteJSON(w, http.StatusOK, meals)
		})

		r.Get("/meals/summary", func(w http.ResponseWriter, r *http.Request) {
			email := r.URL.Query().Get("email")
			if email == "" {
				httpx.WriteError(w, http.StatusBadRequest, "validation_error", "email required", nil)
				return
			}
			summary, err := ledger.Summarize(email)
			if err != nil {
				httpx.WriteServiceError(w, err)
				return
			}
			httpx.WriteJSON(w, http.StatusOK, summary)
		})
	})

	return r
}
