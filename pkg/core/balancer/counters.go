package balancer

// ShiftCounters tracks cumulative per-worker shift-slot assignments for one run.
// A run owns exactly one instance; it is created empty (or seeded with historical
// totals) and mutated as days are processed in order.
type ShiftCounters struct {
	slots  map[string]map[string]int // worker -> slot -> count
	totals map[string]int
}

// NewShiftCounters returns zeroed counters for the given roster and slots.
func NewShiftCounters(roster, slots []string) *ShiftCounters {
	c := &ShiftCounters{
		slots:  make(map[string]map[string]int, len(roster)),
		totals: make(map[string]int, len(roster)),
	}
	for _, worker := range roster {
		c.slots[worker] = make(map[string]int, len(slots))
		for _, slot := range slots {
			c.slots[worker][slot] = 0
		}
		c.totals[worker] = 0
	}
	return c
}

// Seed adds historical totals for a worker, for carry-over between runs.
func (c *ShiftCounters) Seed(worker, slot string, count int) {
	if _, ok := c.slots[worker]; !ok {
		return
	}
	c.slots[worker][slot] += count
	c.totals[worker] += count
}

// Count returns the worker's assignment count for the slot.
func (c *ShiftCounters) Count(worker, slot string) int {
	return c.slots[worker][slot]
}

// Total returns the worker's assignment count across all slots.
func (c *ShiftCounters) Total(worker string) int {
	return c.totals[worker]
}

// GrandTotal returns the sum of all assignments across the roster.
func (c *ShiftCounters) GrandTotal() int {
	total := 0
	for _, t := range c.totals {
		total += t
	}
	return total
}

func (c *ShiftCounters) bump(worker, slot string) {
	c.slots[worker][slot]++
	c.totals[worker]++
}

// TaskCounters tracks cumulative per-worker task-category assignments.
type TaskCounters struct {
	categories []string
	counts     map[string]map[string]int // worker -> category -> count
}

// NewTaskCounters returns zeroed counters for the given roster and categories.
func NewTaskCounters(roster, categories []string) *TaskCounters {
	c := &TaskCounters{
		categories: categories,
		counts:     make(map[string]map[string]int, len(roster)),
	}
	for _, worker := range roster {
		c.counts[worker] = make(map[string]int, len(categories))
		for _, category := range categories {
			c.counts[worker][category] = 0
		}
	}
	return c
}

// Count returns the worker's assignment count for the category.
func (c *TaskCounters) Count(worker, category string) int {
	return c.counts[worker][category]
}

// Total returns the worker's assignment count across all categories.
func (c *TaskCounters) Total(worker string) int {
	total := 0
	for _, count := range c.counts[worker] {
		total += count
	}
	return total
}

// NeverAssigned returns how many categories the worker has never been assigned.
func (c *TaskCounters) NeverAssigned(worker string) int {
	never := 0
	for _, category := range c.categories {
		if c.counts[worker][category] == 0 {
			never++
		}
	}
	return never
}

func (c *TaskCounters) bump(worker, category string) {
	c.counts[worker][category]++
}

// ZoneCounters tracks cumulative per-worker zone assignments.
type ZoneCounters struct {
	zone1 map[string]int
	zone2 map[string]int
	solo  map[string]int
}

// NewZoneCounters returns zeroed counters for the given roster.
func NewZoneCounters(roster []string) *ZoneCounters {
	c := &ZoneCounters{
		zone1: make(map[string]int, len(roster)),
		zone2: make(map[string]int, len(roster)),
		solo:  make(map[string]int, len(roster)),
	}
	for _, worker := range roster {
		c.zone1[worker] = 0
		c.zone2[worker] = 0
		c.solo[worker] = 0
	}
	return c
}

// Zone1 returns the worker's zone-1 assignment count.
func (c *ZoneCounters) Zone1(worker string) int { return c.zone1[worker] }

// Zone2 returns the worker's zone-2 assignment count.
func (c *ZoneCounters) Zone2(worker string) int { return c.zone2[worker] }

// Solo returns how often the worker covered zone 2 alone.
func (c *ZoneCounters) Solo(worker string) int { return c.solo[worker] }
