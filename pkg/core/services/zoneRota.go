package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/internal/config"
	"github.com/jakechorley/duty-roster/pkg/boolopt"
	"github.com/jakechorley/duty-roster/pkg/core/balancer"
	"github.com/jakechorley/duty-roster/pkg/core/calendar"
	"github.com/jakechorley/duty-roster/pkg/core/model"
	"github.com/jakechorley/duty-roster/pkg/db"
)

// ZoneRotaResult contains a generated zone schedule and its statistics.
type ZoneRotaResult struct {
	RunID string
	Days  []balancer.ZoneDay
	Stats []balancer.WorkerStats

	// MinZone2 and MaxZone2 are the per-worker zone-2 fairness band the
	// optimizer enforced. The greedy path leaves them at zero.
	MinZone2, MaxZone2 int

	// Greedy reports which balancing path produced the schedule.
	Greedy    bool
	Status    boolopt.Status
	Objective int

	// EmptyDays are workdays where nobody was available; they appear in
	// Days as empty records.
	EmptyDays []time.Time

	// ExcludedDays are workdays with one or two available workers, too few
	// to split into zones. They carry no record.
	ExcludedDays []time.Time
}

// BuildZoneRota generates the zone schedule for the inclusive date range.
// With greedy set, the heuristic balancer runs instead of the exact
// optimizer. budget overrides the configured solver budget when positive.
func BuildZoneRota(ctx context.Context, store db.VacationStore, cfg *config.Config, logger *zap.Logger, start, end time.Time, holidaysOff []time.Time, greedy bool, budget time.Duration) (*ZoneRotaResult, error) {
	logger.Info("Building zone rota",
		zap.String("start", start.Format(model.DateFormat)),
		zap.String("end", end.Format(model.DateFormat)),
		zap.Bool("greedy", greedy))

	days, vacations, err := resolveRange(ctx, store, cfg, logger,
		calendar.HolidayPolicy(cfg.Zones.HolidayPolicy), start, end, holidaysOff)
	if err != nil {
		return nil, err
	}

	// Split workdays by headcount: full crews feed the balancer, empty days
	// keep an empty record, and one- or two-worker days are excluded.
	var crews []balancer.DayCrew
	var emptyDays, excludedDays []time.Time
	for _, date := range calendar.Workdays(days) {
		eligible := model.Eligible(date, cfg.Roster, vacations)
		switch {
		case len(eligible) == 0:
			emptyDays = append(emptyDays, date)
		case len(eligible) < 3:
			excludedDays = append(excludedDays, date)
			logger.Warn("Workday excluded from zone balancing",
				zap.String("date", date.Format(model.DateFormat)),
				zap.Int("headcount", len(eligible)))
		default:
			crews = append(crews, balancer.DayCrew{Date: date, Workers: eligible})
		}
	}

	var result *balancer.ZoneResult
	if greedy {
		balancerRun := &balancer.GreedyZoneBalancer{Roster: cfg.Roster}
		result = balancerRun.Run(crews)
	} else {
		if budget <= 0 {
			budget = cfg.SolverBudget()
		}
		optimizer := &balancer.ZoneOptimizer{Roster: cfg.Roster, Budget: budget}
		result, err = optimizer.Run(ctx, crews)
		if err != nil {
			return nil, err
		}
		logger.Info("Zone optimization finished",
			zap.Stringer("status", result.Status),
			zap.Int("objective", result.Objective),
			zap.Int("min_zone2", result.MinZone2),
			zap.Int("max_zone2", result.MaxZone2))
	}

	rota := &ZoneRotaResult{
		RunID:        uuid.New().String(),
		Days:         mergeZoneDays(result.Days, emptyDays),
		MinZone2:     result.MinZone2,
		MaxZone2:     result.MaxZone2,
		Greedy:       greedy,
		Status:       result.Status,
		Objective:    result.Objective,
		EmptyDays:    emptyDays,
		ExcludedDays: excludedDays,
	}
	rota.Stats = balancer.AggregateZones(cfg.Roster, rota.Days)

	logger.Info("Zone rota built",
		zap.Int("days", len(rota.Days)),
		zap.Int("empty_days", len(emptyDays)),
		zap.Int("excluded_days", len(excludedDays)))
	return rota, nil
}

// mergeZoneDays interleaves empty records for no-crew workdays back into the
// solved schedule, keeping chronological order.
func mergeZoneDays(solved []balancer.ZoneDay, empty []time.Time) []balancer.ZoneDay {
	if len(empty) == 0 {
		return solved
	}
	merged := make([]balancer.ZoneDay, 0, len(solved)+len(empty))
	i, j := 0, 0
	for i < len(solved) || j < len(empty) {
		if j >= len(empty) || (i < len(solved) && solved[i].Date.Before(empty[j])) {
			merged = append(merged, solved[i])
			i++
		} else {
			merged = append(merged, balancer.ZoneDay{Date: empty[j]})
			j++
		}
	}
	return merged
}
