package services

import (
	"log/slog"

	"github.com/platewise/mealbudget-backend/internal/metrics"
	"github.com/platewise/mealbudget-backend/internal/models"
	repo "github.com/platewise/mealbudget-backend/internal/repository"
	"github.com/platewise/mealbudget-backend/internal/worker"
)

// auditor writes best-effort audit rows off the request path. A failed
// write is counted and logged, never surfaced to the caller.
type auditor struct {
	logs repo.AuditLogs
	wp   *worker.Pool
}

func newAuditor(logs repo.AuditLogs, wp *worker.Pool) *auditor {
	return &auditor{logs: logs, wp: wp}
}

func (a *auditor) record(entityType, entityID, action string, details map[string]any) {
	if a == nil || a.logs == nil {
		return
	}
	l := models.AuditLog{
		EntityType: entityType,
		EntityID:   &entityID,
		Action:     action,
		Details:    details,
	}
	write := func() {
		if err := a.logs.Create(l); err != nil {
			metrics.AuditFailures.Inc()
			slog.Warn("audit write failed", "entity", entityType, "action", action, "err", err)
		}
	}
	if a.wp == nil {
		write()
		return
	}
	a.wp.Submit(write)
	metrics.WorkerQueueDepth.Set(float64(a.wp.Depth()))
}
