package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/napolitain/solver-wos/internal/app"
	"github.com/napolitain/solver-wos/internal/tui"
)

var flags app.Flags

func main() {
	rootCmd := &cobra.Command{
		Use:   "calc",
		Short: "Interactive Whiteout Survival Upgrade Calculator",
		Long: `Opens a form for the building upgrade calculator. Results are
recomputed on every key press. Use the upgrade, crystals and troops
commands for scripted use.`,
		RunE:          runCalc,
		SilenceErrors: true,
	}
	flags.Register(rootCmd.Flags())

	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func runCalc(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	fd := os.Stdout.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return errors.New("calc needs an interactive terminal, use the upgrade command instead")
	}

	a, err := app.New(flags)
	if err != nil {
		return err
	}
	defer a.Close()

	if _, err := tea.NewProgram(tui.New(a.Calculator), tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("calculator UI failed: %w", err)
	}
	return nil
}
