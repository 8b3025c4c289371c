package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"sunflower/internal/config"
	"sunflower/internal/deps"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigValidateCommand())
	configCmd.AddCommand(newConfigShowCommand(ctx))
	configCmd.AddCommand(newDefaultDirCommand(ctx))

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			} else {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve config path: %w", err)
				}
				target = expanded
			}

			dir := filepath.Dir(target)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create config directory %q: %w", dir, err)
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if err != nil && !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Edit the file to point library_dir at your clip collection.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func newConfigValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, exists, err := config.Load("")
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return fmt.Errorf("ensure directories: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s\n", path)
			if !exists {
				fmt.Fprintln(out, "Config file did not exist; defaults were used")
			}
			for _, status := range deps.CheckBinaries(deps.ForConfig(cfg)) {
				if status.Available {
					fmt.Fprintf(out, "%s: %s\n", status.Name, status.Command)
					continue
				}
				fmt.Fprintf(out, "%s: unavailable (%s)\n", status.Name, status.Detail)
			}
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			rows := [][]string{
				{"library_dir", cfg.Paths.LibraryDir},
				{"data_dir", cfg.Paths.DataDir},
				{"log_dir", cfg.Paths.LogDir},
				{"database", cfg.DatabasePath()},
				{"player", cfg.Player.Binary},
				{"player_args", strings.Join(cfg.Player.Args, " ")},
				{"ntfy_topic", cfg.Notifications.NtfyTopic},
				{"log_format", cfg.Logging.Format},
				{"log_level", cfg.Logging.Level},
			}
			table := renderTable(
				[]string{"Setting", "Value"},
				rows,
				[]columnAlignment{alignLeft, alignLeft},
			)
			fmt.Fprintln(out, table)
			return nil
		},
	}
}

func newDefaultDirCommand(ctx *commandContext) *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "default-dir [directory]",
		Short: "Show or change the default browse directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if reset {
				cfg.Paths.LibraryDir = config.DefaultLibraryDir()
			} else if len(args) == 1 {
				expanded, err := config.ExpandPath(args[0])
				if err != nil {
					return fmt.Errorf("resolve directory: %w", err)
				}
				info, err := os.Stat(expanded)
				if err != nil {
					return fmt.Errorf("inspect directory %q: %w", expanded, err)
				}
				if !info.IsDir() {
					return fmt.Errorf("%s is not a directory", expanded)
				}
				cfg.Paths.LibraryDir = expanded
			} else {
				fmt.Fprintln(out, cfg.Paths.LibraryDir)
				return nil
			}

			path := strings.TrimSpace(*ctx.configFlag)
			if path == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine config path: %w", err)
				}
				path = defaultPath
			}
			if err := cfg.Save(path); err != nil {
				return fmt.Errorf("save config: %w", err)
			}
			fmt.Fprintf(out, "Default directory set to %s\n", cfg.Paths.LibraryDir)
			return nil
		},
	}

	cmd.Flags().BoolVar(&reset, "reset", false, "Reset the default directory to the built-in default")
	return cmd
}
