package geekfit

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mvogttech/geekfit/internal/service"
)

var exerciseCmd = &cobra.Command{
	Use:   "exercise",
	Short: "Manage the exercise catalog",
}

var exerciseXPPerRep int

var exerciseAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add an exercise to the catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			id, err := service.AddExercise(sqldb, args[0], exerciseXPPerRep)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added exercise %d (%s, %d XP/rep)\n", id, args[0], exerciseXPPerRep)
			return nil
		})
	},
}

var exerciseDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an exercise and its log entries",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("exercise id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			if err := service.DeleteExercise(sqldb, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted exercise %d\n", id)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(exerciseCmd)
	exerciseCmd.AddCommand(exerciseAddCmd, exerciseDeleteCmd)
	exerciseAddCmd.Flags().IntVar(&exerciseXPPerRep, "xp-per-rep", 10, "XP awarded per rep")
}
