package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/jakechorley/duty-roster/pkg/core/balancer"
	"github.com/jakechorley/duty-roster/pkg/core/calendar"
	"github.com/jakechorley/duty-roster/pkg/core/model"
)

// ShiftConfig configures the shift-slot duty type.
type ShiftConfig struct {
	Slots         []string `yaml:"slots" validate:"required,min=1,dive,required"`
	HolidayPolicy string   `yaml:"holidayPolicy,omitempty" validate:"omitempty,oneof=worked-unless-selected exclude-calendar"`
}

// TaskConfig configures the task-category duty type.
type TaskConfig struct {
	Categories    []string               `yaml:"categories" validate:"required,min=1,dive,required"`
	Rules         map[int]map[string]int `yaml:"rules" validate:"required,min=1"`
	HolidayPolicy string                 `yaml:"holidayPolicy,omitempty" validate:"omitempty,oneof=worked-unless-selected exclude-calendar"`
}

// ZoneConfig configures the two-zone duty type.
type ZoneConfig struct {
	SolverBudgetSeconds int    `yaml:"solverBudgetSeconds,omitempty" validate:"omitempty,min=1"`
	HolidayPolicy       string `yaml:"holidayPolicy,omitempty" validate:"omitempty,oneof=worked-unless-selected exclude-calendar"`
}

// HolidayEntry is one named holiday on the calendar.
type HolidayEntry struct {
	Date string `yaml:"date" validate:"required"`
	Name string `yaml:"name" validate:"required"`
}

// Config represents the application configuration
type Config struct {
	Roster       []string       `yaml:"roster" validate:"required,min=1,unique,dive,required"`
	DatabasePath string         `yaml:"databasePath,omitempty"`
	WorkweekRule string         `yaml:"workweekRule,omitempty"`
	Shifts       ShiftConfig    `yaml:"shifts"`
	Tasks        TaskConfig     `yaml:"tasks"`
	Zones        ZoneConfig     `yaml:"zones"`
	Holidays     []HolidayEntry `yaml:"holidays,omitempty" validate:"dive"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from duty_roster_config.yaml.
// It looks for the config file in the current directory first, then in the
// user's home directory. DUTY_ROSTER_CONFIG overrides the search.
func Load() (*Config, error) {
	if path := os.Getenv("DUTY_ROSTER_CONFIG"); path != "" {
		return LoadFromPath(path)
	}

	configPath, err := findConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}
	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate validates the configuration struct plus the cross-field rules the
// struct tags cannot express: workweek rrule syntax, holiday date formats,
// and task rules referencing declared categories.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if _, err := rrule.StrToROption(cfg.WorkweekRule); err != nil {
		return fmt.Errorf("invalid workweekRule: %w", err)
	}

	for i, holiday := range cfg.Holidays {
		if _, err := time.Parse(model.DateFormat, holiday.Date); err != nil {
			return fmt.Errorf("invalid date in holidays[%d]: %w", i, err)
		}
	}

	categories := make(map[string]bool, len(cfg.Tasks.Categories))
	for _, category := range cfg.Tasks.Categories {
		categories[category] = true
	}
	for headcount, rule := range cfg.Tasks.Rules {
		if headcount < 1 {
			return fmt.Errorf("task rule headcount %d must be positive", headcount)
		}
		for category := range rule {
			if !categories[category] {
				return fmt.Errorf("task rule for headcount %d references unknown category %q", headcount, category)
			}
		}
	}

	return nil
}

func (c *Config) applyDefaults() {
	if c.DatabasePath == "" {
		c.DatabasePath = "duty_roster.db"
	}
	if c.WorkweekRule == "" {
		c.WorkweekRule = calendar.DefaultWorkweekRule
	}
	if len(c.Shifts.Slots) == 0 {
		c.Shifts.Slots = []string{"morning", "afternoon"}
	}
	// The source system worked through most public holidays for task duty
	// but treated every calendar holiday as off for shift and zone duty.
	if c.Shifts.HolidayPolicy == "" {
		c.Shifts.HolidayPolicy = string(calendar.PolicyExcludeCalendar)
	}
	if c.Tasks.HolidayPolicy == "" {
		c.Tasks.HolidayPolicy = string(calendar.PolicyWorkedUnlessSelected)
	}
	if c.Zones.HolidayPolicy == "" {
		c.Zones.HolidayPolicy = string(calendar.PolicyExcludeCalendar)
	}
	if len(c.Tasks.Categories) == 0 {
		c.Tasks.Categories = []string{"chat", "happy_call", "closing"}
	}
	if len(c.Tasks.Rules) == 0 {
		c.Tasks.Rules = map[int]map[string]int{
			3: {"chat": 1, "happy_call": 1, "closing": 1},
			4: {"chat": 2, "happy_call": 1, "closing": 1},
			5: {"chat": 2, "happy_call": 2, "closing": 1},
		}
	}
	if c.Zones.SolverBudgetSeconds == 0 {
		c.Zones.SolverBudgetSeconds = 120
	}
}

// HolidayCalendar returns the configured holidays as a calendar lookup.
func (c *Config) HolidayCalendar() calendar.HolidayCalendar {
	m := calendar.MapCalendar{}
	for _, holiday := range c.Holidays {
		m[holiday.Date] = holiday.Name
	}
	return m
}

// TaskRules returns the task allocation rules in balancer form.
func (c *Config) TaskRules() balancer.TaskRules {
	rules := balancer.TaskRules{}
	for headcount, rule := range c.Tasks.Rules {
		counts := make(map[string]int, len(rule))
		for category, count := range rule {
			counts[category] = count
		}
		rules[headcount] = counts
	}
	return rules
}

// SolverBudget returns the zone solver's wall-clock budget.
func (c *Config) SolverBudget() time.Duration {
	return time.Duration(c.Zones.SolverBudgetSeconds) * time.Second
}

// findConfigFile searches for duty_roster_config.yaml in the current
// directory and the home directory.
func findConfigFile() (string, error) {
	configFileName := "duty_roster_config.yaml"

	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
