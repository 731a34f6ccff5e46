package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/cmd/cli/commands"
	"github.com/jakechorley/duty-roster/internal/config"
	"github.com/jakechorley/duty-roster/pkg/db"
	"github.com/jakechorley/duty-roster/pkg/utils/logging"
)

var (
	verbose  bool
	app      = &commands.AppContext{}
	database *db.DB
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "duty-roster",
		Short: "Duty roster CLI - generate fair duty schedules",
		Long:  `A CLI tool for generating fair duty schedules: shift slots, daily tasks, and zone partitions, balanced across a fixed roster.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Logger != nil {
				app.Logger.Sync()
			}
			if database != nil {
				database.Close()
			}
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to the console")

	rootCmd.AddCommand(commands.ShiftRotaCmd(app))
	rootCmd.AddCommand(commands.TaskRotaCmd(app))
	rootCmd.AddCommand(commands.ZoneRotaCmd(app))
	rootCmd.AddCommand(commands.ImportVacationsCmd(app))
	rootCmd.AddCommand(commands.AddVacationCmd(app))
	rootCmd.AddCommand(commands.RemoveVacationCmd(app))
	rootCmd.AddCommand(commands.ListVacationsCmd(app))
	rootCmd.AddCommand(commands.DeleteVacationsCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, and database
func initApp() error {
	var err error
	app.Ctx = context.Background()

	// Optional .env, for DUTY_ROSTER_CONFIG and friends
	godotenv.Load()

	app.Logger, err = logging.InitLogger(verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Debug("Loading configuration")
	app.Cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded",
		zap.Int("roster_size", len(app.Cfg.Roster)),
		zap.String("database", app.Cfg.DatabasePath))

	database, err = db.Open(app.Cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	app.Store = database
	app.Logger.Debug("Database opened")

	return nil
}
