package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/napolitain/solver-wos/internal/app"
	"github.com/napolitain/solver-wos/internal/calculator"
	"github.com/napolitain/solver-wos/internal/format"
	"github.com/napolitain/solver-wos/internal/input"
	"github.com/napolitain/solver-wos/internal/models"
)

var (
	flags         app.Flags
	orders        []string
	speedText     string
	capacityText  string
	capacityBonus bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "troops",
		Short: "Whiteout Survival Troop Training Calculator",
		Long: `Computes the resources and time needed to train new troops or to
promote existing troops to a higher level.`,
		SilenceErrors: true,
	}
	flags.Register(rootCmd.PersistentFlags())
	rootCmd.PersistentFlags().StringVar(&speedText, "speed", "", "Training speed bonus in percent")
	rootCmd.PersistentFlags().StringVar(&capacityText, "capacity", "", "Troops trained per batch")
	rootCmd.PersistentFlags().BoolVar(&capacityBonus, "capacity-bonus", false, "Apply the city training capacity bonus")

	trainCmd := &cobra.Command{
		Use:     "train",
		Short:   "Train new troops",
		Example: `  troops train -o Infantry=6x1000 -o Lancers=5x500 --speed 42.5`,
		RunE:    run(calculator.Train),
	}
	trainCmd.Flags().StringArrayVarP(&orders, "order", "o", nil, "Troop order as Name=levelxcount (repeatable)")

	promoteCmd := &cobra.Command{
		Use:     "promote",
		Short:   "Promote troops to a higher level",
		Example: `  troops promote -o Marksmen=4:7x2,000 --capacity 600 --capacity-bonus`,
		RunE:    run(calculator.Promote),
	}
	promoteCmd.Flags().StringArrayVarP(&orders, "order", "o", nil, "Troop order as Name=from:toxcount (repeatable)")

	rootCmd.AddCommand(trainCmd, promoteCmd)

	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(action calculator.TroopAction) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		a, err := app.New(flags)
		if err != nil {
			return err
		}
		defer a.Close()

		if len(orders) == 0 {
			return fmt.Errorf("no troops selected, use --order")
		}

		var form input.Form
		req := calculator.TroopRequest{
			Action:               action,
			TrainingSpeedPercent: form.Float("speed", speedText),
			TrainingCapacity:     form.Int("capacity", capacityText),
			CapacityBonus:        capacityBonus,
		}
		for _, o := range orders {
			order, err := parseOrder(o, action)
			if err != nil {
				return err
			}
			req.Orders = append(req.Orders, order)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		result, err := a.Calculator.Troops(ctx, req)
		if err != nil {
			return err
		}

		printResult(result, form.Notes)
		return nil
	}
}

// parseOrder reads "Infantry=6x1000" for training or "Infantry=4:7x1000"
// for promotions. The count may use thousands separators.
func parseOrder(s string, action calculator.TroopAction) (calculator.TroopOrder, error) {
	name, rest, ok := strings.Cut(s, "=")
	levels, countText, ok2 := strings.Cut(rest, "x")
	if !ok || !ok2 || strings.TrimSpace(name) == "" {
		return calculator.TroopOrder{}, fmt.Errorf("order %q must look like Name=levelxcount", s)
	}

	count, err := strconv.Atoi(input.NormalizeNumber(countText))
	if err != nil {
		return calculator.TroopOrder{}, fmt.Errorf("%w: count %q", models.ErrMalformedNumericInput, countText)
	}
	order := calculator.TroopOrder{Troop: strings.TrimSpace(name), Count: count}

	if action == calculator.Promote {
		_, r, err := input.ParseSelection(name + "=" + levels)
		if err != nil {
			return calculator.TroopOrder{}, err
		}
		order.Level, order.TargetLevel = r.Start, r.End
		return order, nil
	}

	order.Level, err = strconv.Atoi(strings.TrimSpace(levels))
	if err != nil {
		return calculator.TroopOrder{}, fmt.Errorf("%w: level %q", models.ErrMalformedNumericInput, levels)
	}
	return order, nil
}

func printResult(result *calculator.TroopResult, notes []input.Note) {
	titleColor := color.New(color.FgCyan, color.Bold)
	successColor := color.New(color.FgGreen, color.Bold)
	warnColor := color.New(color.FgYellow)

	titleColor.Println("\n╭───────────────────────────╮")
	titleColor.Println("│  Whiteout Survival        │")
	titleColor.Println("│  Troop Calculator         │")
	titleColor.Println("╰───────────────────────────╯")
	fmt.Println()

	resources := []models.ResourceType{models.Meat, models.Wood, models.Coal, models.Iron}
	header := []string{"Troop", "Levels", "Count"}
	for _, rt := range resources {
		header = append(header, rt.Label())
	}
	header = append(header, "Batches", "Time")

	table := tablewriter.NewTable(os.Stdout, tablewriter.WithHeader(header))
	for _, o := range result.Orders {
		levels := fmt.Sprintf("%d", o.Order.Level)
		if result.Action == calculator.Promote {
			levels = fmt.Sprintf("%d → %d", o.Order.Level, o.Order.TargetLevel)
		}
		row := []string{o.Name, levels, format.Number(int64(o.Order.Count))}
		for _, rt := range resources {
			row = append(row, format.Number(o.Result.Resources[rt]))
		}
		batches := "-"
		if result.Capacity > 0 {
			batches = fmt.Sprintf("%d", o.Batches)
		}
		row = append(row, batches, o.Duration)
		table.Append(row)
	}
	table.Render()

	successColor.Printf("\n✓ %s total\n", format.Name(string(result.Action)))
	for _, rt := range result.Total.Resources.Types() {
		fmt.Printf("   %s: %s\n", rt.Label(), format.Number(result.Total.Resources[rt]))
	}
	fmt.Printf("   Time: %s\n", result.TotalDuration)
	if result.Capacity > 0 {
		fmt.Printf("   Capacity: %s per batch\n", format.Number(int64(result.Capacity)))
	}

	var lines []string
	for _, n := range notes {
		lines = append(lines, n.String())
	}
	for _, o := range result.Orders {
		if o.Note != "" {
			lines = append(lines, fmt.Sprintf("%s: %s", o.Name, o.Note))
		}
	}
	if len(lines) > 0 {
		fmt.Println()
		warnColor.Println("⚠ Notes:")
		for _, l := range lines {
			fmt.Printf("   • %s\n", l)
		}
	}
}
