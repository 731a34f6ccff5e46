package balancer

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/jakechorley/duty-roster/pkg/boolopt"
	"github.com/jakechorley/duty-roster/pkg/core/model"
)

// soloTarget is the per-worker target for solo zone-2 duty, and soloFloor the
// count under which the objective starts penalizing under-use for solo duty.
const (
	soloTarget = 3
	soloFloor  = 2
)

// DayCrew is one workday's eligible workers.
type DayCrew struct {
	Date    time.Time
	Workers []string
}

// zone2Size returns how many workers cover zone 2 for this crew.
func (c DayCrew) zone2Size() int {
	if len(c.Workers) == 3 {
		return 1
	}
	return 2
}

// ZoneDay is one day's zone split.
type ZoneDay struct {
	Date  time.Time
	Zones model.ZoneAssignment
}

// ZoneResult is the outcome of a zone-balancing run.
type ZoneResult struct {
	// Days holds one record per solved day, in chronological order.
	Days []ZoneDay

	// Counters are the aggregated per-worker zone counts.
	Counters *ZoneCounters

	// MinZone2 and MaxZone2 are the feasible per-worker zone-2 band
	// derived from the fairness targets.
	MinZone2, MaxZone2 int

	// Status and Objective describe the solve when the optimizer ran;
	// the greedy fallback leaves them at their zero values.
	Status    boolopt.Status
	Objective int
}

// ZoneOptimizer partitions each day's crew into two zones with an exact
// optimization over boolean assignment variables, minimizing deviation from
// the fairness targets.
type ZoneOptimizer struct {
	// Roster is the ordered worker list.
	Roster []string

	// Budget bounds the solve's wall-clock time. Zero means the solver
	// default.
	Budget time.Duration
}

// Run solves the zone split for the given crews. Every crew must have at
// least three workers; the caller excludes smaller days beforehand. An empty
// crew list yields an empty result, not an error. Infeasibility and budget
// exhaustion surface as boolopt.ErrInfeasible and boolopt.ErrTimeout; no
// schedule is returned in either case.
func (o *ZoneOptimizer) Run(ctx context.Context, crews []DayCrew) (*ZoneResult, error) {
	for _, crew := range crews {
		if len(crew.Workers) < 3 {
			return nil, fmt.Errorf("day %s has headcount %d, zone balancing needs at least 3",
				crew.Date.Format(model.DateFormat), len(crew.Workers))
		}
	}

	minBand, maxBand := zone2Band(crews, len(o.Roster))
	if len(crews) == 0 {
		return &ZoneResult{
			Counters: NewZoneCounters(o.Roster),
			Status:   boolopt.StatusOptimal,
		}, nil
	}

	m := boolopt.NewModel()

	// One boolean per (day, worker, zone).
	type dayVars struct {
		zone1 map[string]boolopt.Var
		zone2 map[string]boolopt.Var
	}
	vars := make([]dayVars, len(crews))
	for d, crew := range crews {
		vars[d] = dayVars{
			zone1: make(map[string]boolopt.Var, len(crew.Workers)),
			zone2: make(map[string]boolopt.Var, len(crew.Workers)),
		}
		for _, worker := range crew.Workers {
			vars[d].zone1[worker] = m.NewBool()
			vars[d].zone2[worker] = m.NewBool()
		}
	}

	// Every worker on duty lands in exactly one zone, and zone 2 gets
	// exactly the headcount-dependent crew size.
	for d, crew := range crews {
		var zone2Sum boolopt.LinExpr
		for _, worker := range crew.Workers {
			m.AddEQ(boolopt.Sum(vars[d].zone1[worker], vars[d].zone2[worker]), 1)
			zone2Sum = zone2Sum.Add(vars[d].zone2[worker], 1)
		}
		m.AddEQ(zone2Sum, crew.zone2Size())
	}

	// Per-worker zone-2 totals stay within the fairness band; deviations
	// from the band midpoint and from the solo target feed the objective.
	avg := (minBand + maxBand) / 2
	var objective boolopt.LinExpr
	for _, worker := range o.Roster {
		var total, solo boolopt.LinExpr
		for d, crew := range crews {
			v, on := vars[d].zone2[worker]
			if !on {
				continue
			}
			total = total.Add(v, 1)
			if crew.zone2Size() == 1 {
				solo = solo.Add(v, 1)
			}
		}
		m.AddGE(total, minBand)
		m.AddLE(total, maxBand)

		deviation := m.NewIntVar(len(crews))
		m.AddAbsBound(deviation, total.Plus(-avg))

		soloDeviation := m.NewIntVar(len(crews))
		m.AddAbsBound(soloDeviation, solo.Plus(-soloTarget))

		// penalty >= soloFloor - solo, penalty >= 0: under minimization
		// this is max(0, soloFloor - solo).
		penalty := m.NewIntVar(soloFloor)
		m.AddGE(penalty.Expr().AddExpr(solo), soloFloor)

		objective = objective.AddExpr(deviation.Expr()).
			AddExpr(soloDeviation.Expr()).
			AddExpr(penalty.Expr())
	}
	m.Minimize(objective)

	solver := &boolopt.Solver{Budget: o.Budget}
	solution, err := solver.Solve(ctx, m)
	if err != nil {
		return nil, err
	}

	result := &ZoneResult{
		Counters:  NewZoneCounters(o.Roster),
		MinZone2:  minBand,
		MaxZone2:  maxBand,
		Status:    solution.Status,
		Objective: solution.Objective,
	}
	for d, crew := range crews {
		day := ZoneDay{Date: crew.Date}
		for _, worker := range crew.Workers {
			if solution.Value(vars[d].zone2[worker]) {
				day.Zones.Zone2 = append(day.Zones.Zone2, worker)
			} else {
				day.Zones.Zone1 = append(day.Zones.Zone1, worker)
			}
		}
		for _, worker := range day.Zones.Zone1 {
			result.Counters.zone1[worker]++
		}
		for _, worker := range day.Zones.Zone2 {
			result.Counters.zone2[worker]++
			if day.Zones.Solo() {
				result.Counters.solo[worker]++
			}
		}
		result.Days = append(result.Days, day)
	}
	return result, nil
}

// zone2Band derives the feasible per-worker zone-2 band: total zone-2
// slot-units over the range, split across the roster, floored and ceiled.
func zone2Band(crews []DayCrew, rosterSize int) (int, int) {
	if rosterSize == 0 || len(crews) == 0 {
		return 0, 0
	}
	units := 0
	for _, crew := range crews {
		units += crew.zone2Size()
	}
	expected := float64(units) / float64(rosterSize)
	return int(math.Floor(expected)), int(math.Ceil(expected))
}
