package geekfit

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/mvogttech/geekfit/internal/service"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage database backups",
}

var backupDir string

var backupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Copy the database to a timestamped backup file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveDBPath()
		if err != nil {
			return err
		}
		dir := backupDir
		if dir == "" {
			dir = filepath.Join(filepath.Dir(path), "backups")
		}
		out := filepath.Join(dir, fmt.Sprintf("geekfit-%s.db", time.Now().Format("20060102-150405")))
		info, err := service.CreateBackup(path, out)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Backup written to %s (%d bytes)\n", info.Path, info.SizeBytes)
		fmt.Fprintf(cmd.OutOrStdout(), "sha256 %s\n", info.Checksum)
		return nil
	},
}

var restoreForce bool

var backupRestoreCmd = &cobra.Command{
	Use:   "restore <backup-file>",
	Short: "Restore the database from a backup file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveDBPath()
		if err != nil {
			return err
		}
		if err := service.RestoreBackup(args[0], path, restoreForce); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Restored %s to %s\n", args[0], path)
		return nil
	},
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available backups",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveDBPath()
		if err != nil {
			return err
		}
		dir := backupDir
		if dir == "" {
			dir = filepath.Join(filepath.Dir(path), "backups")
		}
		backups, err := service.ListBackups(dir)
		if err != nil {
			return err
		}
		if len(backups) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No backups found")
			return nil
		}
		for _, b := range backups {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %d bytes\n", b.CreatedAt.Format("2006-01-02 15:04:05"), b.Path, b.SizeBytes)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(backupCmd)
	backupCmd.AddCommand(backupCreateCmd, backupRestoreCmd, backupListCmd)
	backupCmd.PersistentFlags().StringVar(&backupDir, "dir", "", "Backup directory (default: <db dir>/backups)")
	backupRestoreCmd.Flags().BoolVar(&restoreForce, "force", false, "Overwrite an existing database")
}
