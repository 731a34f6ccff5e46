package model

import "time"

// DateFormat is the wire format for all dates exchanged with stores and CSV files.
const DateFormat = "2006-01-02"

// VacationMap maps a date string (YYYY-MM-DD) to the workers on vacation that day.
type VacationMap map[string][]string

// OnVacation reports whether the worker is on vacation on the given date.
func (vm VacationMap) OnVacation(date time.Time, worker string) bool {
	for _, w := range vm[date.Format(DateFormat)] {
		if w == worker {
			return true
		}
	}
	return false
}

// Add records a vacation entry, ignoring duplicates.
func (vm VacationMap) Add(dateStr, worker string) {
	for _, w := range vm[dateStr] {
		if w == worker {
			return
		}
	}
	vm[dateStr] = append(vm[dateStr], worker)
}

// Eligible returns the subset of the roster available on the given date,
// preserving roster order. Pure function of its inputs.
func Eligible(date time.Time, roster []string, vacations VacationMap) []string {
	eligible := make([]string, 0, len(roster))
	for _, worker := range roster {
		if !vacations.OnVacation(date, worker) {
			eligible = append(eligible, worker)
		}
	}
	return eligible
}

// ShiftAssignment holds one day's shift allocations: slot name -> worker.
// A missing or empty value means the slot went unfilled that day.
type ShiftAssignment map[string]string

// IsEmpty reports whether no slot was filled.
func (a ShiftAssignment) IsEmpty() bool {
	for _, worker := range a {
		if worker != "" {
			return false
		}
	}
	return true
}

// TaskAssignment holds one day's task allocations: category -> workers.
type TaskAssignment map[string][]string

// ZoneAssignment holds one day's zone split.
type ZoneAssignment struct {
	Zone1 []string
	Zone2 []string
}

// Solo reports whether zone 2 was covered by a single worker.
func (z ZoneAssignment) Solo() bool {
	return len(z.Zone2) == 1
}
