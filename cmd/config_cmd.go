package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/theirongolddev/atlas/internal/config"
	"github.com/theirongolddev/atlas/internal/tui/theme"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

var configThemeCmd = &cobra.Command{
	Use:   "theme NAME",
	Short: "Set the dashboard theme",
	Args:  cobra.ExactArgs(1),
	ValidArgsFunction: func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return theme.Names(), cobra.ShellCompDirectiveNoFileComp
	},
	RunE: runConfigTheme,
}

func init() {
	configCmd.AddCommand(configThemeCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Fprintln(out, "  Status: loaded")
	} else {
		fmt.Fprintln(out, "  Status: using defaults (no config file)")
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(out, "  Problems: %v\n", err)
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [General]")
	fmt.Fprintf(out, "    Database:       %s\n", cfg.DBPath())
	fmt.Fprintf(out, "    Top categories: %d\n", cfg.General.TopCategories)
	fmt.Fprintf(out, "    Trend months:   %d\n", cfg.General.TrendMonths)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [Log]")
	fmt.Fprintf(out, "    Level: %s\n", cfg.Log.Level)
	fmt.Fprintf(out, "    File:  %s\n", cfg.LogPath())
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [Appearance]")
	fmt.Fprintf(out, "    Theme: %s (available: %s)\n", cfg.Appearance.Theme, strings.Join(theme.Names(), ", "))
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [Categories]")
	fmt.Fprintf(out, "    Expense: %s\n", strings.Join(cfg.Categories.Expense, ", "))
	fmt.Fprintf(out, "    Income:  %s\n", strings.Join(cfg.Categories.Income, ", "))
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  Environment overrides: ATLAS_DB_PATH, ATLAS_LOG_LEVEL, ATLAS_LOG_FILE, ATLAS_THEME, ATLAS_TOP_CATEGORIES")
	return nil
}

func runConfigTheme(cmd *cobra.Command, args []string) error {
	name := strings.ToLower(strings.TrimSpace(args[0]))
	if !slices.Contains(theme.Names(), name) {
		return fmt.Errorf("unknown theme %q (available: %s)", args[0], strings.Join(theme.Names(), ", "))
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	cfg.Appearance.Theme = name
	if err := config.Save(cfg); err != nil {
		return err
	}
	if !flagQuiet {
		fmt.Fprintf(cmd.OutOrStdout(), "  Theme set to %s\n", name)
	}
	return nil
}
