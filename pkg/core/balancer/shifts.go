package balancer

import (
	"time"

	"github.com/jakechorley/duty-roster/pkg/core/model"
)

// ShiftDay is one day's shift-slot allocation.
type ShiftDay struct {
	Date  time.Time
	Slots model.ShiftAssignment
}

// ShiftResult is the outcome of a shift-balancing run.
type ShiftResult struct {
	// Days holds one record per workday, in chronological order.
	// A day with no eligible workers has an empty record.
	Days []ShiftDay

	// Counters are the final cumulative per-worker counts.
	Counters *ShiftCounters

	// EmptyDays lists workdays where nobody was eligible.
	EmptyDays []time.Time

	// TargetPerWorker is the fairness baseline: floor of total assignments
	// over roster size. Reporting only, never enforced.
	TargetPerWorker int
}

// ShiftBalancer assigns one worker to each shift slot of each workday,
// keeping cumulative per-slot and total loads as level as possible.
type ShiftBalancer struct {
	// Roster is the ordered worker list. Order breaks ties, so identical
	// inputs always produce identical schedules.
	Roster []string

	// Slots are the shift slot names in their fixed daily order.
	Slots []string
}

// Run balances shifts over the given workdays starting from zeroed counters.
func (b *ShiftBalancer) Run(workdays []time.Time, vacations model.VacationMap) *ShiftResult {
	return b.RunWithCounters(workdays, vacations, NewShiftCounters(b.Roster, b.Slots))
}

// RunWithCounters balances shifts starting from pre-seeded counters,
// allowing historical totals to carry over between runs.
func (b *ShiftBalancer) RunWithCounters(workdays []time.Time, vacations model.VacationMap, counters *ShiftCounters) *ShiftResult {
	result := &ShiftResult{Counters: counters}

	for _, date := range workdays {
		eligible := model.Eligible(date, b.Roster, vacations)
		assignment := model.ShiftAssignment{}

		if len(eligible) == 0 {
			result.EmptyDays = append(result.EmptyDays, date)
			result.Days = append(result.Days, ShiftDay{Date: date, Slots: assignment})
			continue
		}

		for _, slot := range b.Slots {
			worker := b.pick(eligible, slot, counters)
			assignment[slot] = worker
			counters.bump(worker, slot)
		}
		result.Days = append(result.Days, ShiftDay{Date: date, Slots: assignment})
	}

	if len(b.Roster) > 0 {
		result.TargetPerWorker = counters.GrandTotal() / len(b.Roster)
	}
	return result
}

// pick selects the eligible worker with the lowest (slot count, total count)
// load. Candidates come in roster order and only a strictly lower load
// displaces the incumbent, so ties always resolve to the earlier worker.
func (b *ShiftBalancer) pick(eligible []string, slot string, counters *ShiftCounters) string {
	best := eligible[0]
	for _, candidate := range eligible[1:] {
		cSlot, bSlot := counters.Count(candidate, slot), counters.Count(best, slot)
		if cSlot < bSlot || (cSlot == bSlot && counters.Total(candidate) < counters.Total(best)) {
			best = candidate
		}
	}
	return best
}
