package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/duty-roster/pkg/core/calendar"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "duty_roster_config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const minimalConfig = `
roster:
  - amy
  - ben
  - cho
`

func TestLoadFromPath_Minimal(t *testing.T) {
	cfg, err := LoadFromPath(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, []string{"amy", "ben", "cho"}, cfg.Roster)

	// Defaults fill everything else in.
	assert.Equal(t, "duty_roster.db", cfg.DatabasePath)
	assert.Equal(t, calendar.DefaultWorkweekRule, cfg.WorkweekRule)
	assert.Equal(t, []string{"morning", "afternoon"}, cfg.Shifts.Slots)
	assert.Equal(t, []string{"chat", "happy_call", "closing"}, cfg.Tasks.Categories)
	assert.Equal(t, string(calendar.PolicyExcludeCalendar), cfg.Shifts.HolidayPolicy)
	assert.Equal(t, string(calendar.PolicyWorkedUnlessSelected), cfg.Tasks.HolidayPolicy)
	assert.Equal(t, string(calendar.PolicyExcludeCalendar), cfg.Zones.HolidayPolicy)
	assert.Equal(t, 120*time.Second, cfg.SolverBudget())
}

func TestLoadFromPath_FullConfig(t *testing.T) {
	cfg, err := LoadFromPath(writeConfig(t, `
roster:
  - amy
  - ben
databasePath: custom.db
workweekRule: "FREQ=WEEKLY;BYDAY=MO,TU,WE,TH,FR"
shifts:
  slots: [early, late]
  holidayPolicy: worked-unless-selected
tasks:
  categories: [triage, review]
  rules:
    2:
      triage: 1
      review: 1
  holidayPolicy: exclude-calendar
zones:
  solverBudgetSeconds: 30
holidays:
  - date: "2026-01-01"
    name: New Year
`))
	require.NoError(t, err)

	assert.Equal(t, "custom.db", cfg.DatabasePath)
	assert.Equal(t, []string{"early", "late"}, cfg.Shifts.Slots)
	assert.Equal(t, 30*time.Second, cfg.SolverBudget())

	rules := cfg.TaskRules()
	assert.Equal(t, 2, rules.MinHeadcount())
	assert.Equal(t, map[string]int{"triage": 1, "review": 1}, rules.For(5))

	name, ok := cfg.HolidayCalendar().Holiday(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, "New Year", name)
}

func TestLoadFromPath_MissingFile(t *testing.T) {
	_, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadFromPath_InvalidYAML(t *testing.T) {
	_, err := LoadFromPath(writeConfig(t, "roster: ["))
	assert.Error(t, err)
}

func TestValidate_EmptyRoster(t *testing.T) {
	_, err := LoadFromPath(writeConfig(t, "roster: []"))
	assert.Error(t, err)
}

func TestValidate_DuplicateRoster(t *testing.T) {
	_, err := LoadFromPath(writeConfig(t, `
roster:
  - amy
  - amy
`))
	assert.Error(t, err)
}

func TestValidate_BadWorkweekRule(t *testing.T) {
	_, err := LoadFromPath(writeConfig(t, minimalConfig+`
workweekRule: "FREQ=BOGUS"
`))
	assert.Error(t, err)
}

func TestValidate_BadHolidayPolicy(t *testing.T) {
	_, err := LoadFromPath(writeConfig(t, minimalConfig+`
shifts:
  slots: [morning]
  holidayPolicy: sometimes
`))
	assert.Error(t, err)
}

func TestValidate_BadHolidayDate(t *testing.T) {
	_, err := LoadFromPath(writeConfig(t, minimalConfig+`
holidays:
  - date: "01/01/2026"
    name: New Year
`))
	assert.Error(t, err)
}

func TestValidate_RuleReferencesUnknownCategory(t *testing.T) {
	_, err := LoadFromPath(writeConfig(t, minimalConfig+`
tasks:
  categories: [chat]
  rules:
    3:
      paperwork: 1
`))
	assert.Error(t, err)
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfig(t, minimalConfig)
	t.Setenv("DUTY_ROSTER_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"amy", "ben", "cho"}, cfg.Roster)
}
