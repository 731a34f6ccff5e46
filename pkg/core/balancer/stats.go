package balancer

import (
	"github.com/shopspring/decimal"
)

// WorkerStats is the aggregated assignment record for one worker.
// Only the fields matching the active duty structure are populated.
type WorkerStats struct {
	Worker    string
	Slots     map[string]int
	Tasks     map[string]int
	Zone1     int
	Zone2     int
	SoloZone2 int

	// Total is the worker's total appearances in the schedule.
	Total int
}

// AggregateShifts walks a shift schedule once and returns per-worker totals
// in roster order.
func AggregateShifts(roster []string, days []ShiftDay) []WorkerStats {
	stats, index := newStats(roster)
	for i := range stats {
		stats[i].Slots = map[string]int{}
	}
	for _, day := range days {
		for slot, worker := range day.Slots {
			if i, ok := index[worker]; ok {
				stats[i].Slots[slot]++
				stats[i].Total++
			}
		}
	}
	return stats
}

// AggregateTasks walks a task schedule once and returns per-worker totals
// in roster order.
func AggregateTasks(roster []string, days []TaskDay) []WorkerStats {
	stats, index := newStats(roster)
	for i := range stats {
		stats[i].Tasks = map[string]int{}
	}
	for _, day := range days {
		for category, workers := range day.Tasks {
			for _, worker := range workers {
				if i, ok := index[worker]; ok {
					stats[i].Tasks[category]++
					stats[i].Total++
				}
			}
		}
	}
	return stats
}

// AggregateZones walks a zone schedule once and returns per-worker totals in
// roster order, including the solo-zone-2 cross-tab.
func AggregateZones(roster []string, days []ZoneDay) []WorkerStats {
	stats, index := newStats(roster)
	for _, day := range days {
		for _, worker := range day.Zones.Zone1 {
			if i, ok := index[worker]; ok {
				stats[i].Zone1++
				stats[i].Total++
			}
		}
		for _, worker := range day.Zones.Zone2 {
			i, ok := index[worker]
			if !ok {
				continue
			}
			stats[i].Zone2++
			stats[i].Total++
			if day.Zones.Solo() {
				stats[i].SoloZone2++
			}
		}
	}
	return stats
}

// TaskTargets reports each worker's per-category target: their available-day
// count split evenly across categories, to one decimal place.
func TaskTargets(availableDays map[string]int, categoryCount int) map[string]decimal.Decimal {
	targets := make(map[string]decimal.Decimal, len(availableDays))
	if categoryCount == 0 {
		return targets
	}
	divisor := decimal.NewFromInt(int64(categoryCount))
	for worker, days := range availableDays {
		targets[worker] = decimal.NewFromInt(int64(days)).Div(divisor).Round(1)
	}
	return targets
}

func newStats(roster []string) ([]WorkerStats, map[string]int) {
	stats := make([]WorkerStats, len(roster))
	index := make(map[string]int, len(roster))
	for i, worker := range roster {
		stats[i] = WorkerStats{Worker: worker}
		index[worker] = i
	}
	return stats, index
}
