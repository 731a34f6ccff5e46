package commands

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/pkg/core/model"
)

// AddVacationCmd creates the addVacation command
func AddVacationCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "addVacation <date> <worker>",
		Short: "Record a single vacation day for a worker",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := parseDate(args[0])
			if err != nil {
				return err
			}
			worker := args[1]

			added, err := app.Store.AddVacation(app.Ctx, date.Format(model.DateFormat), worker)
			if err != nil {
				return fmt.Errorf("failed to add vacation: %w", err)
			}
			if added {
				fmt.Printf("✓ Vacation recorded: %s on %s\n", worker, args[0])
			} else {
				fmt.Printf("Vacation already recorded: %s on %s\n", worker, args[0])
			}
			return nil
		},
	}
}

// RemoveVacationCmd creates the removeVacation command
func RemoveVacationCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "removeVacation <date> <worker>",
		Short: "Remove a single vacation day for a worker",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := parseDate(args[0])
			if err != nil {
				return err
			}
			if err := app.Store.RemoveVacation(app.Ctx, date.Format(model.DateFormat), args[1]); err != nil {
				return fmt.Errorf("failed to remove vacation: %w", err)
			}
			fmt.Printf("✓ Vacation removed: %s on %s\n", args[1], args[0])
			return nil
		},
	}
}

// ListVacationsCmd creates the listVacations command
func ListVacationsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listVacations [start end]",
		Short: "List recorded vacation days, optionally within a date range",
		Args:  cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return fmt.Errorf("provide both start and end, or neither")
			}

			var vacations model.VacationMap
			var err error
			if len(args) == 2 {
				start, end, rerr := parseRange(args)
				if rerr != nil {
					return rerr
				}
				vacations, err = app.Store.ListVacationsBetween(app.Ctx,
					start.Format(model.DateFormat), end.Format(model.DateFormat))
			} else {
				vacations, err = app.Store.ListVacations(app.Ctx)
			}
			if err != nil {
				return fmt.Errorf("failed to list vacations: %w", err)
			}

			if len(vacations) == 0 {
				fmt.Println("No vacation days recorded.")
				return nil
			}

			dates := make([]string, 0, len(vacations))
			total := 0
			for date, workers := range vacations {
				dates = append(dates, date)
				total += len(workers)
			}
			sort.Strings(dates)

			fmt.Printf("\nFound %d vacation day(s) across %d date(s):\n\n", total, len(dates))
			for _, date := range dates {
				fmt.Printf("  %s  %s\n", date, strings.Join(vacations[date], ", "))
			}
			fmt.Println()
			return nil
		},
	}
}

// DeleteVacationsCmd creates the deleteVacations command
func DeleteVacationsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deleteVacations <year> <month>",
		Short: "Delete every vacation record for a month",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("year must be a number: %w", err)
			}
			month, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("month must be a number: %w", err)
			}
			if month < 1 || month > 12 {
				return fmt.Errorf("month must be between 1 and 12, got %d", month)
			}

			app.Logger.Debug("deleteVacations command",
				zap.Int("year", year), zap.Int("month", month))

			deleted, err := app.Store.DeleteVacationsMonth(app.Ctx, year, month)
			if err != nil {
				return fmt.Errorf("failed to delete vacations: %w", err)
			}
			fmt.Printf("✓ Deleted %d vacation record(s) for %04d-%02d\n", deleted, year, month)
			return nil
		},
	}
}
