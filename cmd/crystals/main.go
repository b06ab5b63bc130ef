package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/napolitain/solver-wos/internal/adjust"
	"github.com/napolitain/solver-wos/internal/app"
	"github.com/napolitain/solver-wos/internal/calculator"
	"github.com/napolitain/solver-wos/internal/format"
	"github.com/napolitain/solver-wos/internal/input"
	"github.com/napolitain/solver-wos/internal/models"
)

var (
	flags      app.Flags
	selections []string
	sel        models.BonusSelection
	list       bool
	perLevel   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "crystals",
		Short: "Whiteout Survival Fire Crystal Calculator",
		Long: `Sums the resources, fire crystals and construction time needed to
upgrade several buildings, using the per-level reference tables in the
data directory. Buildings without data are reported and counted as zero.`,
		Example:       `  crystals -b Furnace=30:35 -b "Command Center=30:33" --skill 4 --pet 2 --vp`,
		RunE:          runCrystals,
		SilenceErrors: true,
	}

	f := rootCmd.Flags()
	flags.Register(f)
	f.StringArrayVarP(&selections, "building", "b", nil, "Building and levels as Name=start:end (repeatable)")
	f.Float64VarP(&sel.BaseSpeedPercent, "speed", "s", 0, "Base construction speed bonus in percent")
	f.IntVar(&sel.SkillLevel, "skill", 0, "Construction skill level (0-5)")
	f.IntVar(&sel.PetLevel, "pet", 0, "Builder pet level (0-5)")
	f.BoolVar(&sel.President, "president", false, "President construction buff")
	f.BoolVar(&sel.VicePresident, "vp", false, "Vice president construction buff")
	f.BoolVar(&sel.DoubleTime, "double-time", false, "Double the nominal construction time")
	f.BoolVarP(&list, "list", "l", false, "List the known buildings and exit")
	f.BoolVar(&perLevel, "levels", false, "Also print the raw table rows of every building")

	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func runCrystals(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	a, err := app.New(flags)
	if err != nil {
		return err
	}
	defer a.Close()

	if list {
		printCatalog(a)
		return nil
	}
	if len(selections) == 0 {
		return fmt.Errorf("no buildings selected, use --building Name=start:end or --list")
	}

	req := calculator.CrystalRequest{Bonus: sel}
	for _, s := range selections {
		name, r, err := input.ParseSelection(s)
		if err != nil {
			return err
		}
		req.Buildings = append(req.Buildings, calculator.BuildingSelection{Building: name, Range: r})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := a.Calculator.FireCrystals(ctx, req)
	if err != nil {
		return err
	}

	titleColor := color.New(color.FgCyan, color.Bold)
	successColor := color.New(color.FgGreen, color.Bold)
	warnColor := color.New(color.FgYellow)

	titleColor.Println("\n╭───────────────────────────╮")
	titleColor.Println("│  Whiteout Survival        │")
	titleColor.Println("│  Fire Crystal Calculator  │")
	titleColor.Println("╰───────────────────────────╯")
	fmt.Println()

	fmt.Printf("⚡ Speed +%s, cost x%.2f (%s ranges)\n\n",
		format.Percent(result.Bonus.SpeedPercent), result.Bonus.CostMultiplier, a.Calculator.RangePolicy())

	printBuildings(result)
	if perLevel {
		printLevels(result)
	}

	successColor.Printf("\n✓ Fire crystals needed: %s\n", format.Number(result.FireCrystals()))
	fmt.Printf("   Total time: %s\n", result.TotalDuration)
	for _, rt := range result.Total.Resources.Types() {
		if rt == models.FireCrystals {
			continue
		}
		fmt.Printf("   %s: %s\n", rt.Label(), format.Number(result.Total.Resources[rt]))
	}

	if notes := result.Notes(); len(notes) > 0 {
		fmt.Println()
		warnColor.Println("⚠ Notes:")
		for _, n := range notes {
			fmt.Printf("   • %s\n", n)
		}
	}
	return nil
}

func printBuildings(result *calculator.CrystalResult) {
	header := []string{"Building", "Levels"}
	for _, rt := range models.AllResourceTypes() {
		header = append(header, rt.Label())
	}
	header = append(header, "Time")

	table := tablewriter.NewTable(os.Stdout, tablewriter.WithHeader(header))
	for _, b := range result.Buildings {
		row := []string{b.Name, fmt.Sprintf("%d → %d", b.Range.Start, b.Range.End)}
		for _, rt := range models.AllResourceTypes() {
			row = append(row, format.Number(b.Result.Resources[rt]))
		}
		row = append(row, b.Duration)
		table.Append(row)
	}
	table.Render()
}

func printLevels(result *calculator.CrystalResult) {
	for _, b := range result.Buildings {
		if len(b.Rows) == 0 {
			continue
		}

		fmt.Printf("\n📋 %s (before bonuses):\n", b.Name)
		header := []string{"Level"}
		for _, rt := range models.AllResourceTypes() {
			header = append(header, rt.Label())
		}
		header = append(header, "Time")

		table := tablewriter.NewTable(os.Stdout, tablewriter.WithHeader(header))
		for _, row := range b.Rows {
			line := []string{fmt.Sprintf("%d", row.Level)}
			for _, rt := range models.AllResourceTypes() {
				line = append(line, format.Number(adjust.Floor(row.Resources[rt])))
			}
			line = append(line, format.Duration(row.TimeSeconds))
			table.Append(line)
		}
		table.Render()
	}
}

func printCatalog(a *app.App) {
	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Key", "Building", "Levels", "File"}),
	)
	for _, e := range a.Calculator.Entries() {
		table.Append([]string{e.Key, e.Name, fmt.Sprintf("%d-%d", e.MinLevel, e.MaxLevel), e.File})
	}
	table.Render()
	fmt.Printf("\nTables are read from %s\n", a.Config.DataDir)
}
