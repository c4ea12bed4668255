package geekfit

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mvogttech/geekfit/internal/service"
)

var doctorFix bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run data integrity checks",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			report, err := service.RunDoctor(sqldb, doctorFix)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Orphan log entries: %d\n", report.OrphanLogs)
			fmt.Fprintf(cmd.OutOrStdout(), "XP ledger mismatches: %d\n", report.LedgerMismatches)
			fmt.Fprintf(cmd.OutOrStdout(), "Level mismatches: %d\n", report.LevelMismatches)
			fmt.Fprintf(cmd.OutOrStdout(), "Streak violations: %d\n", report.StreakViolations)
			if doctorFix {
				fmt.Fprintf(cmd.OutOrStdout(), "Fixed exercises: %d\n", report.FixedExercises)
				// Re-check after fixes so exit status reflects final state.
				report, err = service.RunDoctor(sqldb, false)
				if err != nil {
					return err
				}
			}
			if !report.Clean() {
				return fmt.Errorf("doctor found integrity issues")
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Recompute XP totals and levels from the log")
}
