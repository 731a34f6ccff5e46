package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/internal/config"
	"github.com/jakechorley/duty-roster/pkg/core/model"
	"github.com/jakechorley/duty-roster/pkg/db"
)

// AppContext holds the application dependencies shared by all commands
type AppContext struct {
	Cfg    *config.Config
	Store  db.VacationStore
	Logger *zap.Logger
	Ctx    context.Context
}

// parseDate parses a YYYY-MM-DD command argument.
func parseDate(arg string) (time.Time, error) {
	date, err := time.Parse(model.DateFormat, arg)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", arg)
	}
	return date, nil
}

// parseRange parses the <start> <end> argument pair. An end before the start
// is not an error; the engine resolves it to an empty schedule.
func parseRange(args []string) (time.Time, time.Time, error) {
	start, err := parseDate(args[0])
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := parseDate(args[1])
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

// parseHolidays parses the --holidays flag: a comma-separated date list.
func parseHolidays(flag string) ([]time.Time, error) {
	if strings.TrimSpace(flag) == "" {
		return nil, nil
	}
	var dates []time.Time
	for _, part := range strings.Split(flag, ",") {
		date, err := parseDate(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid --holidays entry: %w", err)
		}
		dates = append(dates, date)
	}
	return dates, nil
}
