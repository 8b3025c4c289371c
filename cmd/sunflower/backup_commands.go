package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"sunflower/internal/backup"
	"sunflower/internal/config"
	"sunflower/internal/tags"
)

func newBackupCommand(ctx *commandContext) *cobra.Command {
	backupCmd := &cobra.Command{
		Use:   "backup",
		Short: "Export and import tag backups",
	}

	backupCmd.AddCommand(newBackupExportCommand(ctx))
	backupCmd.AddCommand(newBackupImportCommand(ctx))

	return backupCmd
}

func defaultBackupPath(cfg *config.Config) string {
	return filepath.Join(cfg.Paths.DataDir, "tags-backup.json")
}

func newBackupExportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "export [path]",
		Short: "Write all stored tags to a JSON backup file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *tags.Store) error {
				target := defaultBackupPath(cfg)
				if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
					expanded, err := config.ExpandPath(args[0])
					if err != nil {
						return fmt.Errorf("resolve backup path: %w", err)
					}
					target = expanded
				}

				all, err := store.FindAll(cmd.Context())
				if err != nil {
					return err
				}

				if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
					return fmt.Errorf("create backup directory: %w", err)
				}

				// Write to a unique temp name, then rename, so a crash
				// mid-export never truncates an older backup.
				tmp := filepath.Join(filepath.Dir(target), "."+uuid.NewString()+".tmp")
				file, err := os.Create(tmp)
				if err != nil {
					return fmt.Errorf("create backup file: %w", err)
				}
				if err := backup.Encode(file, all); err != nil {
					_ = file.Close()
					_ = os.Remove(tmp)
					return err
				}
				if err := file.Close(); err != nil {
					_ = os.Remove(tmp)
					return fmt.Errorf("close backup file: %w", err)
				}
				if err := os.Rename(tmp, target); err != nil {
					_ = os.Remove(tmp)
					return fmt.Errorf("finalize backup file: %w", err)
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d tags to %s\n", len(all), target)
				return nil
			})
		},
	}
}

func newBackupImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <path>",
		Short: "Merge a JSON backup into the stored tags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *tags.Store) error {
				path, err := config.ExpandPath(args[0])
				if err != nil {
					return fmt.Errorf("resolve backup path: %w", err)
				}
				file, err := os.Open(path)
				if err != nil {
					return fmt.Errorf("open backup file: %w", err)
				}
				defer file.Close()

				entries, err := backup.Decode(file)
				if err != nil {
					return err
				}
				if err := store.MergeBackup(cmd.Context(), entries); err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d tags from %s\n", len(entries), path)
				return nil
			})
		},
	}
}
