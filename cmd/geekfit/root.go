package geekfit

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var dbPath string

var rootCmd = &cobra.Command{
	Use:   "geekfit",
	Short: "geekfit tracks exercises and levels them up from your terminal",
	Long:  "geekfit is a local-first gamified fitness tracker: every exercise is a skill that earns XP per rep, with streaks and achievements on top.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database")
}
