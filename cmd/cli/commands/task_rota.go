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

// TaskRotaCmd creates the taskRota command
func TaskRotaCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "taskRota <start> <end>",
		Short: "Generate a balanced daily task schedule for a date range",
		Long:  "Assign workers to task categories per workday, balancing each worker's load against their availability",
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

			app.Logger.Debug("taskRota command",
				zap.String("start", args[0]),
				zap.String("end", args[1]))

			result, err := services.BuildTaskRota(app.Ctx, app.Store, app.Cfg, app.Logger, start, end, holidays)
			if err != nil {
				return fmt.Errorf("task balancing failed: %w", err)
			}

			fmt.Printf("\n📋 Task Rota\n\n")
			fmt.Printf("Run ID:   %s\n", result.RunID)
			fmt.Printf("Workdays: %d\n\n", len(result.Days))

			categories := app.Cfg.Tasks.Categories
			header := append([]string{"Date"}, categories...)
			printTable(header, func(emit func([]string)) {
				for _, day := range result.Days {
					row := []string{day.Date.Format(model.DateFormat)}
					for _, category := range categories {
						row = append(row, orDash(strings.Join(day.Tasks[category], "+")))
					}
					emit(row)
				}
			})

			fmt.Printf("\nPer-worker totals (target is per category):\n")
			for _, stat := range result.Stats {
				parts := make([]string, 0, len(categories))
				for _, category := range categories {
					parts = append(parts, fmt.Sprintf("%s %d", category, stat.Tasks[category]))
				}
				fmt.Printf("  %-12s %s  (available %d, target %s)\n",
					stat.Worker,
					strings.Join(parts, ", "),
					result.AvailableDays[stat.Worker],
					result.Targets[stat.Worker])
			}
			if len(result.SkippedDays) > 0 {
				fmt.Printf("\n⚠️  %d workday(s) skipped for low headcount:\n", len(result.SkippedDays))
				for _, date := range result.SkippedDays {
					fmt.Printf("  • %s\n", date.Format(model.DateFormat))
				}
			}
			fmt.Println()

			if outPath != "" {
				file, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", outPath, err)
				}
				defer file.Close()
				if err := services.WriteTaskCSV(file, categories, result.Days); err != nil {
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
