package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/napolitain/solver-wos/internal/adjust"
	"github.com/napolitain/solver-wos/internal/app"
	"github.com/napolitain/solver-wos/internal/bonus"
	"github.com/napolitain/solver-wos/internal/calculator"
	"github.com/napolitain/solver-wos/internal/format"
	"github.com/napolitain/solver-wos/internal/models"
)

var (
	flags        app.Flags
	req          calculator.UpgradeRequest
	timePerLevel time.Duration
	quiet        bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "upgrade",
		Short: "Whiteout Survival Building Upgrade Calculator",
		Long: `Computes the cost and construction time of a building upgrade whose
cost grows geometrically per level, with construction bonuses applied.`,
		Example:       `  upgrade --base 100 --multiplier 1.15 --time-per-level 5m --from 1 --to 10 --skill 5 --pet 3 --president`,
		RunE:          runUpgrade,
		SilenceErrors: true,
	}

	f := rootCmd.Flags()
	flags.Register(f)
	f.Float64VarP(&req.BaseCost, "base", "b", 0, "Cost of the first level")
	f.Float64VarP(&req.CostMultiplierPerLevel, "multiplier", "m", 1, "Cost growth per level")
	f.DurationVarP(&timePerLevel, "time-per-level", "t", 0, "Construction time per level (e.g. 90s, 2h30m)")
	f.IntVar(&req.Range.Start, "from", 1, "First level of the upgrade")
	f.IntVar(&req.Range.End, "to", 2, "Last level of the upgrade")
	f.Float64VarP(&req.Bonus.BaseSpeedPercent, "speed", "s", 0, "Base construction speed bonus in percent")
	f.IntVar(&req.Bonus.SkillLevel, "skill", 0, "Construction skill level (0-5)")
	f.IntVar(&req.Bonus.PetLevel, "pet", 0, "Builder pet level (0-5)")
	f.BoolVar(&req.Bonus.President, "president", false, "President construction buff")
	f.BoolVar(&req.Bonus.VicePresident, "vp", false, "Vice president construction buff")
	f.BoolVar(&req.Bonus.DoubleTime, "double-time", false, "Double the nominal construction time")
	f.BoolVarP(&quiet, "quiet", "q", false, "Only print the totals")

	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func runUpgrade(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	a, err := app.New(flags)
	if err != nil {
		return err
	}
	defer a.Close()

	req.TimePerLevelSeconds = timePerLevel.Seconds()
	result, err := a.Calculator.Upgrade(req)
	if err != nil {
		return err
	}

	if quiet {
		fmt.Printf("%s %s\n", format.Number(result.TotalCost()), result.Duration)
		return nil
	}

	titleColor := color.New(color.FgCyan, color.Bold)
	successColor := color.New(color.FgGreen, color.Bold)

	titleColor.Println("\n╭───────────────────────────╮")
	titleColor.Println("│  Whiteout Survival        │")
	titleColor.Println("│  Upgrade Calculator       │")
	titleColor.Println("╰───────────────────────────╯")
	fmt.Println()

	printBonuses(result.Breakdown, result.Bonus)
	printLevels(result)

	successColor.Printf("\n✓ Levels %d → %d\n", req.Range.Start, req.Range.End)
	fmt.Printf("   Total cost: %s (raw %s)\n",
		format.Number(result.TotalCost()),
		format.Number(adjust.Floor(result.Raw.Resources[result.Resource])))
	fmt.Printf("   Total time: %s (raw %s)\n", result.Duration, format.Duration(result.Raw.TimeSeconds))
	return nil
}

func printBonuses(sources []bonus.Source, total models.Bonus) {
	infoColor := color.New(color.FgYellow)
	infoColor.Println("⚡ Bonuses:")

	shown := false
	for _, s := range sources {
		if !s.Active {
			continue
		}
		shown = true
		line := fmt.Sprintf("   • %s: +%s speed", s.Name, format.Percent(s.SpeedPercent))
		if s.CostPercent > 0 {
			line += fmt.Sprintf(", -%s cost", format.Percent(s.CostPercent))
		}
		fmt.Println(line)
	}
	if !shown {
		fmt.Println("   none")
	}
	fmt.Printf("   Total: +%s speed, cost x%.2f\n\n", format.Percent(total.SpeedPercent), total.CostMultiplier)
}

func printLevels(result *calculator.UpgradeResult) {
	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Level", "Raw Cost", "Cost", "Raw Time", "Time"}),
	)

	for _, row := range result.Rows {
		table.Append([]string{
			fmt.Sprintf("%d", row.Level),
			format.Number(adjust.Floor(row.RawCost)),
			format.Number(row.Cost),
			format.Duration(row.RawTimeSeconds),
			format.Duration(row.TimeSeconds),
		})
	}
	table.Render()
}
