package geekfit

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mvogttech/geekfit/internal/service"
)

var achievementsCmd = &cobra.Command{
	Use:   "achievements",
	Short: "Show achievements",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			items, err := service.ListAchievements(sqldb)
			if err != nil {
				return err
			}
			unlocked := 0
			for _, item := range items {
				if item.UnlockedAt != nil {
					unlocked++
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d / %d unlocked\n", unlocked, len(items))
			for _, item := range items {
				mark := "[ ]"
				if item.UnlockedAt != nil {
					mark = "[*]"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s - %s\n", mark, item.Name, item.Description)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(achievementsCmd)
}
