package geekfit

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mvogttech/geekfit/internal/service"
)

var logCmd = &cobra.Command{
	Use:   "log <exercise> <reps>",
	Short: "Log a completed exercise",
	Long:  "Log a completed exercise by name (case-insensitive, partial match supported), e.g. geekfit log pushups 20.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		reps, err := parseIntArg("reps", args[1])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			result, err := service.LogExercise(sqldb, args[0], reps)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s x %d (+%d XP)\n", result.Exercise, result.Reps, result.XPEarned)
			if result.LeveledUp {
				fmt.Fprintf(cmd.OutOrStdout(), "LEVEL UP! %s is now level %d\n", result.Exercise, result.NewLevel)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Streak: %d days\n", result.Streak)
			for _, key := range result.NewlyUnlocked {
				fmt.Fprintf(cmd.OutOrStdout(), "Achievement unlocked: %s\n", key)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(logCmd)
}
