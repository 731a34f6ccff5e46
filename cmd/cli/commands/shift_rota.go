package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/pkg/core/model"
	"github.com/jakechorley/duty-roster/pkg/core/services"
)

// ShiftRotaCmd creates the shiftRota command
func ShiftRotaCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shiftRota <start> <end>",
		Short: "Generate a balanced shift-slot schedule for a date range",
		Long:  "Assign one worker to each duty slot per workday, keeping per-slot and total counts balanced across the roster",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end, err := parseRange(args)
			if err != nil {
				return err
			}
			holidaysFlag, _ := cmd.Flags().GetString("holidays")
			holidays, err := parseHolidays(holidaysFlag)
			if err != nil {
				return err
			}
			outPath, _ := cmd.Flags().GetString("out")

			app.Logger.Debug("shiftRota command",
				zap.String("start", args[0]),
				zap.String("end", args[1]),
				zap.Int("holidays_off", len(holidays)))

			result, err := services.BuildShiftRota(app.Ctx, app.Store, app.Cfg, app.Logger, start, end, holidays)
			if err != nil {
				return fmt.Errorf("shift balancing failed: %w", err)
			}

			fmt.Printf("\n📅 Shift Rota\n\n")
			fmt.Printf("Run ID:   %s\n", result.RunID)
			fmt.Printf("Workdays: %d\n", len(result.Days))
			fmt.Printf("Target:   %d per worker\n\n", result.TargetPerWorker)

			slots := app.Cfg.Shifts.Slots
			header := append([]string{"Date"}, slots...)
			printTable(header, func(emit func([]string)) {
				for _, day := range result.Days {
					row := []string{day.Date.Format(model.DateFormat)}
					for _, slot := range slots {
						row = append(row, orDash(day.Slots[slot]))
					}
					emit(row)
				}
			})

			fmt.Printf("\nPer-worker totals:\n")
			for _, stat := range result.Stats {
				parts := make([]string, 0, len(slots))
				for _, slot := range slots {
					parts = append(parts, fmt.Sprintf("%s %d", slot, stat.Slots[slot]))
				}
				fmt.Printf("  %-12s %s  (total %d)\n", stat.Worker, strings.Join(parts, ", "), stat.Total)
			}
			if len(result.EmptyDays) > 0 {
				fmt.Printf("\n⚠️  %d workday(s) had nobody available.\n", len(result.EmptyDays))
			}
			fmt.Println()

			if outPath != "" {
				file, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", outPath, err)
				}
				defer file.Close()
				if err := services.WriteShiftCSV(file, slots, result.Days); err != nil {
					return fmt.Errorf("failed to write %s: %w", outPath, err)
				}
				fmt.Printf("💾 Schedule written to %s\n", outPath)
			}

			return nil
		},
	}

	cmd.Flags().String("holidays", "", "Comma-separated dates to treat as days off")
	cmd.Flags().String("out", "", "Write the schedule to a CSV file")

	return cmd
}
