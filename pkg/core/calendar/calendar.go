package calendar

import (
	"fmt"
	"sort"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/jakechorley/duty-roster/pkg/core/model"
)

// DefaultWorkweekRule covers Monday through Saturday. Sundays are never workdays.
const DefaultWorkweekRule = "FREQ=WEEKLY;BYDAY=MO,TU,WE,TH,FR,SA"

// HolidayPolicy controls how calendar holidays affect workday status.
type HolidayPolicy string

const (
	// PolicyWorkedUnlessSelected treats calendar holidays as normal workdays
	// unless they appear in the force-off override list. Used for duty types
	// where the team works through most public holidays.
	PolicyWorkedUnlessSelected HolidayPolicy = "worked-unless-selected"

	// PolicyExcludeCalendar treats every date on the holiday calendar as a
	// non-workday unless revised by a force-on override.
	PolicyExcludeCalendar HolidayPolicy = "exclude-calendar"
)

// IsValid reports whether the policy is one of the known values.
func (p HolidayPolicy) IsValid() bool {
	return p == PolicyWorkedUnlessSelected || p == PolicyExcludeCalendar
}

// Holiday is a named calendar holiday.
type Holiday struct {
	Date time.Time
	Name string
}

// HolidayCalendar looks up holidays by date or range.
type HolidayCalendar interface {
	Holiday(date time.Time) (string, bool)
	Between(start, end time.Time) []Holiday
}

// MapCalendar is a HolidayCalendar backed by a date-string -> name map.
type MapCalendar map[string]string

// Holiday returns the holiday name for the date, if any.
func (m MapCalendar) Holiday(date time.Time) (string, bool) {
	name, ok := m[date.Format(model.DateFormat)]
	return name, ok
}

// Between returns the holidays within the inclusive range, ordered by date.
func (m MapCalendar) Between(start, end time.Time) []Holiday {
	var holidays []Holiday
	for dateStr, name := range m {
		date, err := time.Parse(model.DateFormat, dateStr)
		if err != nil {
			continue
		}
		if date.Before(start) || date.After(end) {
			continue
		}
		holidays = append(holidays, Holiday{Date: date, Name: name})
	}
	sort.Slice(holidays, func(i, j int) bool { return holidays[i].Date.Before(holidays[j].Date) })
	return holidays
}

// Overrides force specific dates off or on regardless of the holiday policy.
// Force-on never resurrects a day outside the work-week rule.
type Overrides struct {
	ForceOff []time.Time
	ForceOn  []time.Time
}

// Day is a single resolved calendar day.
type Day struct {
	Date    time.Time
	Workday bool
	Holiday string // holiday name if the date is on the calendar, else empty
}

// Resolver derives the ordered day sequence for a date range.
type Resolver struct {
	// WorkweekRule is an RRULE string selecting working weekdays.
	// Empty means DefaultWorkweekRule.
	WorkweekRule string

	Holidays HolidayCalendar
	Policy   HolidayPolicy
}

// Resolve returns every day in the inclusive range, flagged workday or not.
// A start date after the end date yields an empty sequence, not an error.
func (r *Resolver) Resolve(start, end time.Time, overrides Overrides) ([]Day, error) {
	start = midnight(start)
	end = midnight(end)
	if start.After(end) {
		return nil, nil
	}

	workweek, err := r.workweekDates(start, end)
	if err != nil {
		return nil, err
	}

	forceOff := dateSet(overrides.ForceOff)
	forceOn := dateSet(overrides.ForceOn)

	var days []Day
	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		day := Day{Date: date}
		if name, ok := r.holidayName(date); ok {
			day.Holiday = name
		}
		day.Workday = r.isWorkday(date, day.Holiday != "", workweek, forceOff, forceOn)
		days = append(days, day)
	}
	return days, nil
}

func (r *Resolver) isWorkday(date time.Time, isHoliday bool, workweek, forceOff, forceOn map[string]bool) bool {
	key := date.Format(model.DateFormat)
	if !workweek[key] {
		return false
	}
	if forceOff[key] {
		return false
	}
	if r.Policy == PolicyExcludeCalendar && isHoliday && !forceOn[key] {
		return false
	}
	return true
}

func (r *Resolver) holidayName(date time.Time) (string, bool) {
	if r.Holidays == nil {
		return "", false
	}
	return r.Holidays.Holiday(date)
}

// workweekDates expands the work-week rule over the range into a date-string set.
func (r *Resolver) workweekDates(start, end time.Time) (map[string]bool, error) {
	ruleStr := r.WorkweekRule
	if ruleStr == "" {
		ruleStr = DefaultWorkweekRule
	}

	opt, err := rrule.StrToROption(ruleStr)
	if err != nil {
		return nil, fmt.Errorf("invalid workweek rule %q: %w", ruleStr, err)
	}
	opt.Dtstart = start
	opt.Until = end

	rule, err := rrule.NewRRule(*opt)
	if err != nil {
		return nil, fmt.Errorf("invalid workweek rule %q: %w", ruleStr, err)
	}

	dates := make(map[string]bool)
	for _, date := range rule.All() {
		dates[date.Format(model.DateFormat)] = true
	}
	return dates, nil
}

// Workdays extracts the dates of the workdays from a resolved day sequence.
func Workdays(days []Day) []time.Time {
	var dates []time.Time
	for _, day := range days {
		if day.Workday {
			dates = append(dates, day.Date)
		}
	}
	return dates
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func dateSet(dates []time.Time) map[string]bool {
	set := make(map[string]bool, len(dates))
	for _, date := range dates {
		set[date.Format(model.DateFormat)] = true
	}
	return set
}
