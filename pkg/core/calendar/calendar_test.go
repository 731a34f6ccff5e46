package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestResolver_DefaultWorkweek(t *testing.T) {
	resolver := &Resolver{Policy: PolicyWorkedUnlessSelected}

	// 2026-03-02 is a Monday, 2026-03-08 a Sunday.
	days, err := resolver.Resolve(date("2026-03-02"), date("2026-03-08"), Overrides{})
	require.NoError(t, err)
	require.Len(t, days, 7)

	for i := 0; i < 6; i++ {
		assert.True(t, days[i].Workday, "expected %s to be a workday", days[i].Date)
	}
	assert.False(t, days[6].Workday, "Sunday must never be a workday")
}

func TestResolver_EmptyRange(t *testing.T) {
	resolver := &Resolver{Policy: PolicyWorkedUnlessSelected}

	days, err := resolver.Resolve(date("2026-03-08"), date("2026-03-02"), Overrides{})
	require.NoError(t, err)
	assert.Empty(t, days)
}

func TestResolver_SingleDayRange(t *testing.T) {
	resolver := &Resolver{Policy: PolicyWorkedUnlessSelected}

	days, err := resolver.Resolve(date("2026-03-03"), date("2026-03-03"), Overrides{})
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.True(t, days[0].Workday)
}

func TestResolver_ExcludeCalendarPolicy(t *testing.T) {
	resolver := &Resolver{
		Holidays: MapCalendar{"2026-03-03": "Founding Day"},
		Policy:   PolicyExcludeCalendar,
	}

	days, err := resolver.Resolve(date("2026-03-02"), date("2026-03-04"), Overrides{})
	require.NoError(t, err)
	require.Len(t, days, 3)

	assert.True(t, days[0].Workday)
	assert.False(t, days[1].Workday)
	assert.Equal(t, "Founding Day", days[1].Holiday)
	assert.True(t, days[2].Workday)
}

func TestResolver_WorkedUnlessSelectedPolicy(t *testing.T) {
	resolver := &Resolver{
		Holidays: MapCalendar{"2026-03-03": "Founding Day"},
		Policy:   PolicyWorkedUnlessSelected,
	}

	days, err := resolver.Resolve(date("2026-03-02"), date("2026-03-04"), Overrides{})
	require.NoError(t, err)

	// The holiday stays a workday until forced off, but keeps its name.
	assert.True(t, days[1].Workday)
	assert.Equal(t, "Founding Day", days[1].Holiday)

	days, err = resolver.Resolve(date("2026-03-02"), date("2026-03-04"),
		Overrides{ForceOff: []time.Time{date("2026-03-03")}})
	require.NoError(t, err)
	assert.False(t, days[1].Workday)
}

func TestResolver_ForceOnRevivesHoliday(t *testing.T) {
	resolver := &Resolver{
		Holidays: MapCalendar{"2026-03-03": "Founding Day"},
		Policy:   PolicyExcludeCalendar,
	}

	days, err := resolver.Resolve(date("2026-03-02"), date("2026-03-04"),
		Overrides{ForceOn: []time.Time{date("2026-03-03")}})
	require.NoError(t, err)
	assert.True(t, days[1].Workday)
}

func TestResolver_ForceOnNeverRevivesSunday(t *testing.T) {
	resolver := &Resolver{Policy: PolicyExcludeCalendar}

	// 2026-03-08 is a Sunday.
	days, err := resolver.Resolve(date("2026-03-08"), date("2026-03-08"),
		Overrides{ForceOn: []time.Time{date("2026-03-08")}})
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.False(t, days[0].Workday)
}

func TestResolver_ForceOffBeatsForceOn(t *testing.T) {
	resolver := &Resolver{Policy: PolicyWorkedUnlessSelected}

	days, err := resolver.Resolve(date("2026-03-03"), date("2026-03-03"), Overrides{
		ForceOff: []time.Time{date("2026-03-03")},
		ForceOn:  []time.Time{date("2026-03-03")},
	})
	require.NoError(t, err)
	assert.False(t, days[0].Workday)
}

func TestResolver_InvalidRule(t *testing.T) {
	resolver := &Resolver{WorkweekRule: "FREQ=NOPE", Policy: PolicyWorkedUnlessSelected}

	_, err := resolver.Resolve(date("2026-03-02"), date("2026-03-04"), Overrides{})
	assert.Error(t, err)
}

func TestResolver_CustomWorkweek(t *testing.T) {
	resolver := &Resolver{
		WorkweekRule: "FREQ=WEEKLY;BYDAY=MO,TU,WE,TH,FR",
		Policy:       PolicyWorkedUnlessSelected,
	}

	// Saturday 2026-03-07 is off under a five-day rule.
	days, err := resolver.Resolve(date("2026-03-02"), date("2026-03-08"), Overrides{})
	require.NoError(t, err)
	assert.True(t, days[4].Workday)
	assert.False(t, days[5].Workday)
	assert.False(t, days[6].Workday)
}

func TestWorkdays(t *testing.T) {
	days := []Day{
		{Date: date("2026-03-02"), Workday: true},
		{Date: date("2026-03-03"), Workday: false},
		{Date: date("2026-03-04"), Workday: true},
	}
	workdays := Workdays(days)
	require.Len(t, workdays, 2)
	assert.Equal(t, date("2026-03-02"), workdays[0])
	assert.Equal(t, date("2026-03-04"), workdays[1])
}

func TestMapCalendar_Between(t *testing.T) {
	calendar := MapCalendar{
		"2026-05-05": "Children's Day",
		"2026-01-01": "New Year",
		"2026-03-01": "Independence Movement Day",
	}

	holidays := calendar.Between(date("2026-01-01"), date("2026-03-31"))
	require.Len(t, holidays, 2)
	assert.Equal(t, "New Year", holidays[0].Name)
	assert.Equal(t, "Independence Movement Day", holidays[1].Name)
}

func TestHolidayPolicy_IsValid(t *testing.T) {
	assert.True(t, PolicyWorkedUnlessSelected.IsValid())
	assert.True(t, PolicyExcludeCalendar.IsValid())
	assert.False(t, HolidayPolicy("weekends-only").IsValid())
}
