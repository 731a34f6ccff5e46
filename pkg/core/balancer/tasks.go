package balancer

import (
	"math"
	"time"

	"github.com/jakechorley/duty-roster/pkg/core/model"
)

// TaskRules maps an eligible headcount to per-category slot counts.
// Days with fewer eligible workers than the smallest key are skipped;
// headcounts above the largest key use the largest key's rule.
type TaskRules map[int]map[string]int

// MinHeadcount returns the smallest headcount the rules cover.
func (r TaskRules) MinHeadcount() int {
	min := 0
	for headcount := range r {
		if min == 0 || headcount < min {
			min = headcount
		}
	}
	return min
}

// MaxHeadcount returns the largest headcount the rules cover.
func (r TaskRules) MaxHeadcount() int {
	max := 0
	for headcount := range r {
		if headcount > max {
			max = headcount
		}
	}
	return max
}

// For returns the slot counts to apply for the given eligible headcount.
func (r TaskRules) For(headcount int) map[string]int {
	if max := r.MaxHeadcount(); headcount > max {
		headcount = max
	}
	return r[headcount]
}

// TaskDay is one day's task-category allocation.
type TaskDay struct {
	Date  time.Time
	Tasks model.TaskAssignment
}

// TaskResult is the outcome of a task-balancing run.
type TaskResult struct {
	// Days holds one record per workday, in chronological order.
	// Skipped days have an empty record.
	Days []TaskDay

	// Counters are the final cumulative per-worker counts.
	Counters *TaskCounters

	// SkippedDays lists workdays whose eligible headcount was below the
	// smallest rule key; no tasks were assigned on them.
	SkippedDays []time.Time

	// AvailableDays is each worker's count of eligible workdays over the
	// whole range. It is the normalization denominator for fairness and
	// the basis for target reporting.
	AvailableDays map[string]int
}

// TaskBalancer assigns every eligible worker on a day to exactly one task
// category, sized by the headcount rules, balancing loads relative to each
// worker's true capacity over the range.
type TaskBalancer struct {
	// Roster is the ordered worker list; order is the last tie-break.
	Roster []string

	// Categories are the task categories in their fixed processing order.
	Categories []string

	// Rules select per-category slot counts by eligible headcount.
	Rules TaskRules
}

// Run balances task assignments over the given workdays.
func (b *TaskBalancer) Run(workdays []time.Time, vacations model.VacationMap) *TaskResult {
	counters := NewTaskCounters(b.Roster, b.Categories)
	result := &TaskResult{
		Counters:      counters,
		AvailableDays: availableDays(workdays, b.Roster, vacations),
	}
	minHeadcount := b.Rules.MinHeadcount()

	for _, date := range workdays {
		eligible := model.Eligible(date, b.Roster, vacations)
		assignment := model.TaskAssignment{}

		if len(eligible) < minHeadcount {
			result.SkippedDays = append(result.SkippedDays, date)
			result.Days = append(result.Days, TaskDay{Date: date, Tasks: assignment})
			continue
		}

		rule := b.Rules.For(len(eligible))
		remaining := eligible
		for _, category := range b.Categories {
			for i := 0; i < rule[category]; i++ {
				if len(remaining) == 0 {
					break
				}
				idx := b.pick(remaining, category, counters, result.AvailableDays)
				worker := remaining[idx]
				remaining = append(remaining[:idx:idx], remaining[idx+1:]...)
				assignment[category] = append(assignment[category], worker)
				counters.bump(worker, category)
			}
		}
		result.Days = append(result.Days, TaskDay{Date: date, Tasks: assignment})
	}
	return result
}

// pick returns the index of the best-ranked candidate for the category.
// Candidates come in roster order; only a strictly better priority displaces
// the incumbent, so ties resolve to the earlier worker.
func (b *TaskBalancer) pick(candidates []string, category string, counters *TaskCounters, available map[string]int) int {
	best := 0
	bestPriority := b.priority(candidates[0], category, counters, available)
	for i := 1; i < len(candidates); i++ {
		priority := b.priority(candidates[i], category, counters, available)
		if priority.betterThan(bestPriority) {
			best = i
			bestPriority = priority
		}
	}
	return best
}

// taskPriority ranks a (worker, category) pair. The three ratios are
// minimized in order; diversity (never-assigned category count) is maximized
// as the final criterion.
type taskPriority struct {
	categoryRatio float64
	totalRatio    float64
	categoryCount int
	diversity     int
}

func (b *TaskBalancer) priority(worker, category string, counters *TaskCounters, available map[string]int) taskPriority {
	days := available[worker]
	categoryCount := counters.Count(worker, category)

	// A worker with zero available days over the range can still appear
	// eligible on a day outside the denominator window; they rank last
	// instead of dividing by zero.
	categoryRatio := math.Inf(1)
	totalRatio := math.Inf(1)
	if days > 0 {
		categoryRatio = float64(categoryCount) / float64(days)
		totalRatio = float64(counters.Total(worker)) / float64(days)
	}

	return taskPriority{
		categoryRatio: categoryRatio,
		totalRatio:    totalRatio,
		categoryCount: categoryCount,
		diversity:     counters.NeverAssigned(worker),
	}
}

func (p taskPriority) betterThan(o taskPriority) bool {
	if p.categoryRatio != o.categoryRatio {
		return p.categoryRatio < o.categoryRatio
	}
	if p.totalRatio != o.totalRatio {
		return p.totalRatio < o.totalRatio
	}
	if p.categoryCount != o.categoryCount {
		return p.categoryCount < o.categoryCount
	}
	return p.diversity > o.diversity
}

// availableDays counts, per worker, the workdays in range they are not on
// vacation. Computed once before any assignment.
func availableDays(workdays []time.Time, roster []string, vacations model.VacationMap) map[string]int {
	days := make(map[string]int, len(roster))
	for _, worker := range roster {
		days[worker] = 0
	}
	for _, date := range workdays {
		for _, worker := range roster {
			if !vacations.OnVacation(date, worker) {
				days[worker]++
			}
		}
	}
	return days
}
