package geekfit

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mvogttech/geekfit/internal/service"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate stats",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			stats, err := service.GetStats(sqldb)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Total Level: %d\n", stats.TotalLevel)
			fmt.Fprintf(cmd.OutOrStdout(), "Total XP: %s\n", formatXP(stats.TotalXP))
			fmt.Fprintf(cmd.OutOrStdout(), "Skills: %d exercises tracked\n", stats.ExerciseCount)
			fmt.Fprintf(cmd.OutOrStdout(), "Current Streak: %d days\n", stats.CurrentStreak)
			fmt.Fprintf(cmd.OutOrStdout(), "Longest Streak: %d days\n", stats.LongestStreak)
			if stats.LastActiveDate != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Last Active: %s\n", stats.LastActiveDate)
			}
			return nil
		})
	},
}

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's XP against the daily goal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			status, err := service.TodaySummary(sqldb, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Date: %s\n", status.Date)
			fmt.Fprintf(cmd.OutOrStdout(), "XP: %s / %s %s\n", formatXP(status.XPEarned), formatXP(int64(status.GoalXP)),
				progressBar(float64(status.XPEarned)/float64(status.GoalXP), 30))
			if status.XPEarned >= int64(status.GoalXP) {
				fmt.Fprintln(cmd.OutOrStdout(), "Daily goal achieved!")
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s XP to go\n", formatXP(int64(status.GoalXP)-status.XPEarned))
			}
			if len(status.Activities) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No exercises logged today yet.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Today's activities:")
			for _, a := range status.Activities {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s x %d (%d XP)\n", a.Exercise, a.Reps, a.XPEarned)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(statsCmd, todayCmd)
}
