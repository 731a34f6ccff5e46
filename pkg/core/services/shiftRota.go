package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/internal/config"
	"github.com/jakechorley/duty-roster/pkg/core/balancer"
	"github.com/jakechorley/duty-roster/pkg/core/calendar"
	"github.com/jakechorley/duty-roster/pkg/core/model"
	"github.com/jakechorley/duty-roster/pkg/db"
)

// ShiftRotaResult contains a generated shift schedule and its statistics.
type ShiftRotaResult struct {
	RunID        string
	CalendarDays []calendar.Day
	Days         []balancer.ShiftDay
	Stats        []balancer.WorkerStats

	// TargetPerWorker is the fairness baseline reported alongside the
	// actual counts.
	TargetPerWorker int

	// EmptyDays are workdays where the whole roster was unavailable.
	EmptyDays []time.Time
}

// BuildShiftRota generates the shift-slot schedule for the inclusive date
// range. holidaysOff are the calendar holidays (or ad-hoc dates) to treat as
// actual non-workdays on top of the configured holiday policy.
func BuildShiftRota(ctx context.Context, store db.VacationStore, cfg *config.Config, logger *zap.Logger, start, end time.Time, holidaysOff []time.Time) (*ShiftRotaResult, error) {
	logger.Info("Building shift rota",
		zap.String("start", start.Format(model.DateFormat)),
		zap.String("end", end.Format(model.DateFormat)),
		zap.Strings("slots", cfg.Shifts.Slots))

	days, vacations, err := resolveRange(ctx, store, cfg, logger,
		calendar.HolidayPolicy(cfg.Shifts.HolidayPolicy), start, end, holidaysOff)
	if err != nil {
		return nil, err
	}

	shiftBalancer := &balancer.ShiftBalancer{
		Roster: cfg.Roster,
		Slots:  cfg.Shifts.Slots,
	}
	result := shiftBalancer.Run(calendar.Workdays(days), vacations)

	logger.Info("Shift rota built",
		zap.Int("workdays", len(result.Days)),
		zap.Int("empty_days", len(result.EmptyDays)),
		zap.Int("target_per_worker", result.TargetPerWorker))

	return &ShiftRotaResult{
		RunID:           uuid.New().String(),
		CalendarDays:    days,
		Days:            result.Days,
		Stats:           balancer.AggregateShifts(cfg.Roster, result.Days),
		TargetPerWorker: result.TargetPerWorker,
		EmptyDays:       result.EmptyDays,
	}, nil
}

// resolveRange loads the vacation map and resolves the calendar for one run.
func resolveRange(ctx context.Context, store db.VacationStore, cfg *config.Config, logger *zap.Logger, policy calendar.HolidayPolicy, start, end time.Time, holidaysOff []time.Time) ([]calendar.Day, model.VacationMap, error) {
	vacations, err := store.ListVacationsBetween(ctx,
		start.Format(model.DateFormat), end.Format(model.DateFormat))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load vacations: %w", err)
	}
	logger.Debug("Vacations loaded", zap.Int("dates", len(vacations)))

	resolver := &calendar.Resolver{
		WorkweekRule: cfg.WorkweekRule,
		Holidays:     cfg.HolidayCalendar(),
		Policy:       policy,
	}
	days, err := resolver.Resolve(start, end, calendar.Overrides{ForceOff: holidaysOff})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve calendar: %w", err)
	}
	logger.Debug("Calendar resolved",
		zap.Int("days", len(days)),
		zap.Int("workdays", len(calendar.Workdays(days))),
		zap.String("holiday_policy", string(policy)))

	return days, vacations, nil
}
