package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/internal/config"
	"github.com/jakechorley/duty-roster/pkg/core/balancer"
	"github.com/jakechorley/duty-roster/pkg/core/calendar"
	"github.com/jakechorley/duty-roster/pkg/core/model"
	"github.com/jakechorley/duty-roster/pkg/db"
)

// TaskRotaResult contains a generated task schedule and its statistics.
type TaskRotaResult struct {
	RunID string
	Days  []balancer.TaskDay
	Stats []balancer.WorkerStats

	// Targets holds the per-category fair share each worker would carry
	// if assignments tracked availability exactly.
	Targets map[string]decimal.Decimal

	// AvailableDays counts, per worker, the workdays they were present for.
	AvailableDays map[string]int

	// SkippedDays are workdays with fewer eligible workers than the
	// smallest headcount the rule table covers.
	SkippedDays []time.Time
}

// BuildTaskRota generates the daily task schedule for the inclusive date
// range.
func BuildTaskRota(ctx context.Context, store db.VacationStore, cfg *config.Config, logger *zap.Logger, start, end time.Time, holidaysOff []time.Time) (*TaskRotaResult, error) {
	logger.Info("Building task rota",
		zap.String("start", start.Format(model.DateFormat)),
		zap.String("end", end.Format(model.DateFormat)),
		zap.Strings("categories", cfg.Tasks.Categories))

	days, vacations, err := resolveRange(ctx, store, cfg, logger,
		calendar.HolidayPolicy(cfg.Tasks.HolidayPolicy), start, end, holidaysOff)
	if err != nil {
		return nil, err
	}

	taskBalancer := &balancer.TaskBalancer{
		Roster:     cfg.Roster,
		Categories: cfg.Tasks.Categories,
		Rules:      cfg.TaskRules(),
	}
	result := taskBalancer.Run(calendar.Workdays(days), vacations)

	logger.Info("Task rota built",
		zap.Int("workdays", len(result.Days)),
		zap.Int("skipped_days", len(result.SkippedDays)))

	return &TaskRotaResult{
		RunID:         uuid.New().String(),
		Days:          result.Days,
		Stats:         balancer.AggregateTasks(cfg.Roster, result.Days),
		Targets:       balancer.TaskTargets(result.AvailableDays, len(cfg.Tasks.Categories)),
		AvailableDays: result.AvailableDays,
		SkippedDays:   result.SkippedDays,
	}, nil
}
