package geekfit

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mvogttech/geekfit/internal/service"
	"github.com/mvogttech/geekfit/internal/xp"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all exercises with levels",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			items, err := service.ListExercises(sqldb)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-22s %5s %6s %8s  %s\n", "NAME", "LEVEL", "XP/REP", "TOTAL_XP", "PROGRESS")
			for _, item := range items {
				fmt.Fprintf(cmd.OutOrStdout(), "%-22s %5s %6d %8s  %s\n",
					item.Name,
					fmt.Sprintf("Lv%d", item.CurrentLevel),
					item.XPPerRep,
					formatXP(item.TotalXP),
					progressBar(xp.Progress(item.CurrentLevel, item.TotalXP), 20))
			}
			return nil
		})
	},
}

var quickCmd = &cobra.Command{
	Use:   "quick <search>",
	Short: "Find exercises by fuzzy name match",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			items, err := service.SearchExercises(sqldb, args[0], 10)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No exercises found matching %q\n", args[0])
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d exercises matching %q:\n", len(items), args[0])
			for i, item := range items {
				fmt.Fprintf(cmd.OutOrStdout(), "%d. %s (Lv%d, %d XP/rep)\n", i+1, item.Name, item.CurrentLevel, item.XPPerRep)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Log with: geekfit log %q <reps>\n", items[0].Name)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(listCmd, quickCmd)
}
