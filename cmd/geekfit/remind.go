package geekfit

import (
	"database/sql"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mvogttech/geekfit/internal/reminder"
	"github.com/mvogttech/geekfit/internal/service"
)

var remindInterval int

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Run the exercise reminder loop in the foreground",
	Long:  "Suggests a random exercise at the configured interval until interrupted. The interval comes from the reminder_interval_minutes setting unless overridden with --interval.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			settings, err := service.GetSettings(sqldb)
			if err != nil {
				return err
			}
			if !settings.ReminderEnabled && remindInterval == 0 {
				return fmt.Errorf("reminders are disabled; run `geekfit settings set reminder_enabled true` or pass --interval")
			}
			minutes := settings.ReminderIntervalMinutes
			if remindInterval > 0 {
				minutes = remindInterval
			}

			sched := &reminder.Scheduler{
				Interval: time.Duration(minutes) * time.Minute,
				Pick: func() (reminder.Suggestion, error) {
					exercises, err := service.ListExercises(sqldb)
					if err != nil {
						return reminder.Suggestion{}, err
					}
					if len(exercises) == 0 {
						return reminder.Suggestion{}, fmt.Errorf("no exercises in catalog")
					}
					ex := exercises[rand.Intn(len(exercises))]
					return reminder.Suggestion{Exercise: ex, Reps: 10}, nil
				},
				Notify: func(s reminder.Suggestion) {
					fmt.Fprintf(cmd.OutOrStdout(), "[%s] Time to move! Try %d %s (+%d XP)\n",
						time.Now().Format("15:04"), s.Reps, s.Exercise.Name, s.Reps*s.Exercise.XPPerRep)
				},
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(cmd.OutOrStdout(), "Reminding every %d minutes; press Ctrl-C to stop\n", minutes)
			if err := sched.Run(ctx); err != nil && ctx.Err() == nil {
				return err
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(remindCmd)
	remindCmd.Flags().IntVar(&remindInterval, "interval", 0, "Override reminder interval in minutes")
}
