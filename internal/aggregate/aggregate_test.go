package aggregate

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/napolitain/solver-wos/internal/models"
)

func meatTable(amounts ...float64) []models.CostTimeRow {
	rows := make([]models.CostTimeRow, len(amounts))
	for i, a := range amounts {
		rows[i] = models.CostTimeRow{
			Level:       i + 1,
			Resources:   models.Resources{models.Meat: a},
			TimeSeconds: 60,
		}
	}
	return rows
}

func TestFormulaSumScenario(t *testing.T) {
	f := Formula{BaseCost: 100, CostMultiplierPerLevel: 1.15, TimePerLevel: 300, TimeModel: TimeFlat}

	totals, err := f.Sum(models.Wood, models.LevelRange{Start: 1, End: 10})
	if err != nil {
		t.Fatalf("Sum failed: %v", err)
	}

	var want float64
	for lvl := 1; lvl <= 10; lvl++ {
		want += 100 * math.Pow(1.15, float64(lvl-1))
	}

	if math.Abs(totals.Resources[models.Wood]-want) > 1e-9 {
		t.Errorf("Raw cost %v, want %v", totals.Resources[models.Wood], want)
	}
	if int(totals.Resources[models.Wood]) != 2030 {
		t.Errorf("Floored raw cost %d, want 2030", int(totals.Resources[models.Wood]))
	}
	if totals.TimeSeconds != 3000 {
		t.Errorf("Flat time %v, want 3000", totals.TimeSeconds)
	}
	if totals.Levels != 10 {
		t.Errorf("Levels %d, want 10", totals.Levels)
	}
}

func TestFormulaCostStartsAtBaseForRangeStart(t *testing.T) {
	f := Formula{BaseCost: 200, CostMultiplierPerLevel: 2, TimePerLevel: 1}

	var levels []int
	var costs []float64
	for row := range f.Levels(models.LevelRange{Start: 5, End: 7}) {
		levels = append(levels, row.Level)
		costs = append(costs, row.Cost)
	}

	wantLevels := []int{5, 6, 7}
	wantCosts := []float64{200, 400, 800}
	for i := range wantLevels {
		if levels[i] != wantLevels[i] || costs[i] != wantCosts[i] {
			t.Errorf("Row %d = (%d, %v), want (%d, %v)", i, levels[i], costs[i], wantLevels[i], wantCosts[i])
		}
	}
}

func TestFormulaCumulativeTime(t *testing.T) {
	f := Formula{BaseCost: 1, CostMultiplierPerLevel: 1, TimePerLevel: 10, TimeModel: TimeCumulative}

	totals, err := f.Sum(models.Wood, models.LevelRange{Start: 3, End: 6})
	if err != nil {
		t.Fatalf("Sum failed: %v", err)
	}

	// positions 1..4
	if totals.TimeSeconds != 10+20+30+40 {
		t.Errorf("Cumulative time %v, want 100", totals.TimeSeconds)
	}
}

func TestFormulaLevelsRestartable(t *testing.T) {
	f := Formula{BaseCost: 100, CostMultiplierPerLevel: 1.1, TimePerLevel: 5}
	seq := f.Levels(models.LevelRange{Start: 1, End: 4})

	var first, second []LevelCost
	for row := range seq {
		first = append(first, row)
	}
	for row := range seq {
		second = append(second, row)
	}

	if len(first) != 4 || len(second) != 4 {
		t.Fatalf("Expected 4 rows twice, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("Row %d differs between iterations: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestFormulaLevelsEarlyStop(t *testing.T) {
	f := Formula{BaseCost: 1, CostMultiplierPerLevel: 1}

	count := 0
	for range f.Levels(models.LevelRange{Start: 1, End: 50}) {
		count++
		if count == 3 {
			break
		}
	}
	if count != 3 {
		t.Errorf("Expected to stop after 3 rows, got %d", count)
	}
}

func TestFormulaInvalidRange(t *testing.T) {
	f := Formula{BaseCost: 100, CostMultiplierPerLevel: 1.15}

	for _, r := range []models.LevelRange{{Start: 5, End: 5}, {Start: 6, End: 2}, {Start: 0, End: 3}} {
		if _, err := f.Sum(models.Wood, r); !errors.Is(err, models.ErrInvalidRange) {
			t.Errorf("Range %+v: expected ErrInvalidRange, got %v", r, err)
		}
	}
}

func TestSumTableHalfOpenScenario(t *testing.T) {
	rows := meatTable(10, 20, 30, 40, 50)

	totals, err := SumTable(rows, models.LevelRange{Start: 1, End: 4}, HalfOpen)
	if err != nil {
		t.Fatalf("SumTable failed: %v", err)
	}

	if totals.Resources[models.Meat] != 60 {
		t.Errorf("Meat %v, want 60 (levels 1,2,3)", totals.Resources[models.Meat])
	}
	if totals.Levels != 3 {
		t.Errorf("Levels %d, want 3", totals.Levels)
	}
	if totals.TimeSeconds != 180 {
		t.Errorf("Time %v, want 180", totals.TimeSeconds)
	}
}

func TestSumTableLeftOpen(t *testing.T) {
	rows := meatTable(10, 20, 30, 40, 50)

	totals, err := SumTable(rows, models.LevelRange{Start: 1, End: 4}, LeftOpen)
	if err != nil {
		t.Fatalf("SumTable failed: %v", err)
	}

	if totals.Resources[models.Meat] != 90 {
		t.Errorf("Meat %v, want 90 (levels 2,3,4)", totals.Resources[models.Meat])
	}
}

func TestRowsFollowPolicy(t *testing.T) {
	rows := meatTable(10, 20, 30, 40, 50)
	r := models.LevelRange{Start: 2, End: 4}

	tests := []struct {
		policy RangePolicy
		want   []int
	}{
		{HalfOpen, []int{2, 3}},
		{LeftOpen, []int{3, 4}},
	}
	for _, tt := range tests {
		var got []int
		for _, row := range Rows(rows, r, tt.policy) {
			got = append(got, row.Level)
		}
		if !slices.Equal(got, tt.want) {
			t.Errorf("%s: levels %v, want %v", tt.policy, got, tt.want)
		}
	}

	if got := Rows(rows, models.LevelRange{Start: 10, End: 12}, HalfOpen); len(got) != 0 {
		t.Errorf("Rows past the table = %v, want none", got)
	}
}

func TestSumTableSingleRowRoundTrip(t *testing.T) {
	row := models.CostTimeRow{
		Level:       7,
		Resources:   models.Resources{models.Meat: 1200, models.Wood: 1200, models.Coal: 240, models.FireCrystals: 15},
		TimeSeconds: 4321,
	}

	totals, err := SumTable([]models.CostTimeRow{row}, models.LevelRange{Start: 7, End: 8}, HalfOpen)
	if err != nil {
		t.Fatalf("SumTable failed: %v", err)
	}

	for rt, want := range row.Resources {
		if totals.Resources[rt] != want {
			t.Errorf("%s = %v, want %v", rt, totals.Resources[rt], want)
		}
	}
	if totals.TimeSeconds != row.TimeSeconds {
		t.Errorf("Time %v, want %v", totals.TimeSeconds, row.TimeSeconds)
	}
}

func TestSumTableGapsAndMissingColumns(t *testing.T) {
	rows := []models.CostTimeRow{
		{Level: 1, Resources: models.Resources{models.Meat: 5}},
		{Level: 3, Resources: models.Resources{models.Wood: 7}},
		{Level: 4, Resources: nil, TimeSeconds: 9},
	}

	totals, err := SumTable(rows, models.LevelRange{Start: 1, End: 5}, HalfOpen)
	if err != nil {
		t.Fatalf("SumTable failed: %v", err)
	}

	if totals.Resources[models.Meat] != 5 || totals.Resources[models.Wood] != 7 {
		t.Errorf("Unexpected resources %v", totals.Resources)
	}
	if totals.Resources[models.Iron] != 0 {
		t.Errorf("Missing column should count as zero, got %v", totals.Resources[models.Iron])
	}
	if totals.Levels != 3 {
		t.Errorf("Levels %d, want 3 (level 2 is a gap)", totals.Levels)
	}
}

func TestSumTableEmptyRange(t *testing.T) {
	rows := meatTable(10, 20, 30)

	totals, err := SumTable(rows, models.LevelRange{Start: 10, End: 20}, HalfOpen)
	if err != nil {
		t.Fatalf("SumTable failed: %v", err)
	}
	if !totals.Empty() {
		t.Error("Expected empty totals for a range outside the table")
	}
	if len(totals.Resources) != 0 || totals.TimeSeconds != 0 {
		t.Errorf("Expected zero totals, got %+v", totals)
	}
}

func TestSumTableInvalidRange(t *testing.T) {
	rows := meatTable(10, 20, 30)

	_, err := SumTable(rows, models.LevelRange{Start: 3, End: 3}, HalfOpen)
	if !errors.Is(err, models.ErrInvalidRange) {
		t.Errorf("Expected ErrInvalidRange, got %v", err)
	}
}

func TestParsePolicies(t *testing.T) {
	if p, err := ParseRangePolicy(""); err != nil || p != HalfOpen {
		t.Errorf("Default policy = %q, %v", p, err)
	}
	if _, err := ParseRangePolicy("inclusive"); err == nil {
		t.Error("Expected error for unknown policy")
	}
	if m, err := ParseTimeModel("cumulative"); err != nil || m != TimeCumulative {
		t.Errorf("ParseTimeModel(cumulative) = %q, %v", m, err)
	}
	if _, err := ParseTimeModel("linear"); err == nil {
		t.Error("Expected error for unknown time model")
	}
}

// Property: summing a full table over consecutive ranges equals summing it at once
func FuzzSumTableSplit(f *testing.F) {
	f.Add(1, 4, 9)
	f.Add(2, 2, 3)
	f.Add(1, 10, 11)

	rows := meatTable(10, 20, 30, 40, 50, 60, 70, 80, 90, 100)

	f.Fuzz(func(t *testing.T, start, mid, end int) {
		if start < 1 || mid <= start || end <= mid || end > 20 {
			return
		}

		whole, err := SumTable(rows, models.LevelRange{Start: start, End: end}, HalfOpen)
		if err != nil {
			t.Fatalf("whole: %v", err)
		}
		left, err := SumTable(rows, models.LevelRange{Start: start, End: mid}, HalfOpen)
		if err != nil {
			t.Fatalf("left: %v", err)
		}
		right, err := SumTable(rows, models.LevelRange{Start: mid, End: end}, HalfOpen)
		if err != nil {
			t.Fatalf("right: %v", err)
		}

		if whole.Resources[models.Meat] != left.Resources[models.Meat]+right.Resources[models.Meat] {
			t.Errorf("Split sum mismatch: %v != %v + %v",
				whole.Resources[models.Meat], left.Resources[models.Meat], right.Resources[models.Meat])
		}
		if whole.Levels != left.Levels+right.Levels {
			t.Errorf("Split level count mismatch: %d != %d + %d", whole.Levels, left.Levels, right.Levels)
		}
	})
}

func BenchmarkFormulaSum(b *testing.B) {
	f := Formula{BaseCost: 100, CostMultiplierPerLevel: 1.15, TimePerLevel: 300}
	r := models.LevelRange{Start: 1, End: 55}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = f.Sum(models.Wood, r)
	}
}
