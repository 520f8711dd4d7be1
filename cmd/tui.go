package cmd

import (
	"fmt"

	"github.com/theirongolddev/atlas/internal/tui"
	"github.com/theirongolddev/atlas/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive dashboard",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	if flagVerbose {
		return fmt.Errorf("--verbose writes to the terminal the dashboard draws on; set log.level = \"debug\" in the config instead")
	}

	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	theme.SetActive(e.cfg.Appearance.Theme)

	// Force TrueColor so background styling always produces ANSI codes
	lipgloss.SetColorProfile(termenv.TrueColor)

	app := tui.NewApp(e.ctx, e.app, e.month, e.snapshotOptions())
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(e.ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
