package geekfit

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mvogttech/geekfit/internal/service"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all data as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			data, err := service.ExportSnapshot(sqldb)
			if err != nil {
				return err
			}
			encoded, err := json.MarshalIndent(data, "", "  ")
			if err != nil {
				return fmt.Errorf("encode export: %w", err)
			}
			encoded = append(encoded, '\n')
			if exportOut == "" {
				_, err := cmd.OutOrStdout().Write(encoded)
				return err
			}
			if err := os.WriteFile(exportOut, encoded, 0o644); err != nil {
				return fmt.Errorf("write export file: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported data to %s\n", exportOut)
			return nil
		})
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a JSON export, replacing all current data",
	Long:  "Import a snapshot produced by geekfit export. The payload is validated in full before any live data is replaced; a rejected import leaves current data untouched.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read import file: %w", err)
		}
		var data service.ExportData
		if err := json.Unmarshal(raw, &data); err != nil {
			return fmt.Errorf("parse import file: %w", err)
		}
		return withDB(func(sqldb *sql.DB) error {
			if err := service.ImportSnapshot(sqldb, &data); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d exercises and %d log entries\n", len(data.Exercises), len(data.Logs))
			return nil
		})
	},
}

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset all progress and re-seed the default catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetYes {
			return fmt.Errorf("reset wipes all logs, XP, streaks, and achievement unlocks; re-run with --yes to confirm")
		}
		return withDB(func(sqldb *sql.DB) error {
			if err := service.ResetAll(sqldb); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Reset complete; default exercises re-seeded")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(exportCmd, importCmd, resetCmd)
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Write export to file instead of stdout")
	resetCmd.Flags().BoolVar(&resetYes, "yes", false, "Confirm the reset")
}
