package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/pkg/core/services"
)

// ImportVacationsCmd creates the importVacations command
func ImportVacationsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "importVacations <file.csv>",
		Short: "Import vacation days from a date,worker CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			app.Logger.Debug("importVacations command", zap.String("path", path))

			file, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", path, err)
			}
			defer file.Close()

			report, err := services.ImportVacations(app.Ctx, app.Store, app.Logger, file)
			if err != nil {
				return fmt.Errorf("import failed: %w", err)
			}

			fmt.Printf("\n✓ Import complete: %d row(s), %d added, %d already present\n\n",
				report.Rows, report.Added, report.Skipped)
			return nil
		},
	}
}
