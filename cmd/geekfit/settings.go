package geekfit

import (
	"database/sql"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/mvogttech/geekfit/internal/service"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage app settings",
}

var settingsGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Show a setting value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			value, ok, err := service.GetSetting(sqldb, args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("setting %q is not set", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		})
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Update a setting",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			if err := service.SetSetting(sqldb, args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s=%s\n", args[0], args[1])
			return nil
		})
	},
}

var settingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			settings, err := service.ListSettings(sqldb)
			if err != nil {
				return err
			}
			keys := make([]string, 0, len(settings))
			for k := range settings {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", k, settings[k])
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsGetCmd, settingsSetCmd, settingsListCmd)
}
