package geekfit

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mvogttech/geekfit/internal/service"
)

var (
	historyDays  int
	historyLimit int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent exercise history",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			items, err := service.History(sqldb, historyDays, historyLimit)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No exercises logged in the last %d days.\n", historyDays)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-20s %6s %8s  %s\n", "EXERCISE", "REPS", "XP", "WHEN")
			now := time.Now()
			for _, item := range items {
				fmt.Fprintf(cmd.OutOrStdout(), "%-20s %6d %8s  %s\n",
					item.ExerciseName, item.Reps, fmt.Sprintf("+%d", item.XPEarned), formatWhen(item.LoggedAt, now))
			}
			return nil
		})
	},
}

func formatWhen(t, now time.Time) string {
	day := func(x time.Time) time.Time {
		return time.Date(x.Year(), x.Month(), x.Day(), 0, 0, 0, 0, x.Location())
	}
	switch int(day(now).Sub(day(t)).Hours() / 24) {
	case 0:
		return "Today " + t.Format("15:04")
	case 1:
		return "Yesterday " + t.Format("15:04")
	default:
		return t.Format("Jan 02 15:04")
	}
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVar(&historyDays, "days", 7, "Number of days to show")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 50, "Result limit")
}
