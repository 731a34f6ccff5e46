package commands

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/pkg/boolopt"
	"github.com/jakechorley/duty-roster/pkg/core/model"
	"github.com/jakechorley/duty-roster/pkg/core/services"
)

// ZoneRotaCmd creates the zoneRota command
func ZoneRotaCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "zoneRota <start> <end>",
		Short: "Generate a balanced zone partition for a date range",
		Long:  "Split each workday's available workers into zone 1 and zone 2, optimizing zone-2 and solo-duty fairness across the roster",
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
			greedy, _ := cmd.Flags().GetBool("greedy")
			budgetSeconds, _ := cmd.Flags().GetInt("budget")
			outPath, _ := cmd.Flags().GetString("out")

			app.Logger.Debug("zoneRota command",
				zap.String("start", args[0]),
				zap.String("end", args[1]),
				zap.Bool("greedy", greedy),
				zap.Int("budget_seconds", budgetSeconds))

			result, err := services.BuildZoneRota(app.Ctx, app.Store, app.Cfg, app.Logger,
				start, end, holidays, greedy, time.Duration(budgetSeconds)*time.Second)
			if errors.Is(err, boolopt.ErrTimeout) {
				return fmt.Errorf("solver ran out of time: %w (try --budget or --greedy)", err)
			}
			if errors.Is(err, boolopt.ErrInfeasible) {
				return fmt.Errorf("no feasible zone split: %w (try --greedy)", err)
			}
			if err != nil {
				return fmt.Errorf("zone balancing failed: %w", err)
			}

			fmt.Printf("\n🗺  Zone Rota\n\n")
			fmt.Printf("Run ID: %s\n", result.RunID)
			if result.Greedy {
				fmt.Printf("Mode:   greedy heuristic\n\n")
			} else {
				fmt.Printf("Mode:   optimizer (%s, objective %d, zone-2 band %d–%d)\n\n",
					result.Status, result.Objective, result.MinZone2, result.MaxZone2)
			}

			printTable([]string{"Date", "Zone 1", "Zone 2"}, func(emit func([]string)) {
				for _, day := range result.Days {
					emit([]string{
						day.Date.Format(model.DateFormat),
						orDash(strings.Join(day.Zones.Zone1, ", ")),
						orDash(strings.Join(day.Zones.Zone2, ", ")),
					})
				}
			})

			fmt.Printf("\nPer-worker totals:\n")
			for _, stat := range result.Stats {
				fmt.Printf("  %-12s zone1 %d, zone2 %d, solo %d\n",
					stat.Worker, stat.Zone1, stat.Zone2, stat.SoloZone2)
			}
			if len(result.ExcludedDays) > 0 {
				fmt.Printf("\n⚠️  %d workday(s) excluded (fewer than 3 available):\n", len(result.ExcludedDays))
				for _, date := range result.ExcludedDays {
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
				if err := services.WriteZoneCSV(file, result.Days); err != nil {
					return fmt.Errorf("failed to write %s: %w", outPath, err)
				}
				fmt.Printf("💾 Schedule written to %s\n", outPath)
			}

			return nil
		},
	}

	cmd.Flags().String("holidays", "", "Comma-separated dates to treat as days off")
	cmd.Flags().Bool("greedy", false, "Use the greedy heuristic instead of the exact optimizer")
	cmd.Flags().Int("budget", 0, "Solver time budget in seconds (0 uses the configured budget)")
	cmd.Flags().String("out", "", "Write the schedule to a CSV file")

	return cmd
}
