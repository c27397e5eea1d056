package service_test

import (
	"math"
	"testing"

	"github.com/JoshuaKitai/Fitnessify/internal/model"
	"github.com/JoshuaKitai/Fitnessify/internal/service"
)

func sampleEntries() []model.NutritionEntry {
	return []model.NutritionEntry{
		{ID: 1, Name: "oats", Calories: 150.5, Protein: 5, Carbs: 27, Fat: 3},
		{ID: 2, Name: "chicken", Calories: 330, Protein: 62, Carbs: 0, Fat: 7.2},
		{ID: 3, Name: "rice", Calories: 205, Protein: 4.3, Carbs: 44.5, Fat: 0.4},
		{ID: 4, Name: "olive oil", Calories: 119, Protein: 0, Carbs: 0, Fat: 13.5},
	}
}

func closeTotals(a, b model.Totals) bool {
	const eps = 1e-9
	return math.Abs(a.Calories-b.Calories) < eps &&
		math.Abs(a.Protein-b.Protein) < eps &&
		math.Abs(a.Carbs-b.Carbs) < eps &&
		math.Abs(a.Fat-b.Fat) < eps
}

func TestTotalsEmptyIsZero(t *testing.T) {
	t.Parallel()
	if got := service.Totals(nil); got != (model.Totals{}) {
		t.Fatalf("expected zero totals, got %+v", got)
	}
}

func TestTotalsOrderIndependent(t *testing.T) {
	t.Parallel()
	entries := sampleEntries()
	want := service.Totals(entries)

	reversed := make([]model.NutritionEntry, len(entries))
	for i, e := range entries {
		reversed[len(entries)-1-i] = e
	}
	rotated := append(append([]model.NutritionEntry{}, entries[2:]...), entries[:2]...)

	for name, perm := range map[string][]model.NutritionEntry{"reversed": reversed, "rotated": rotated} {
		if got := service.Totals(perm); !closeTotals(got, want) {
			t.Fatalf("%s: expected %+v, got %+v", name, want, got)
		}
	}
}

func TestTotalsConcatenationAdds(t *testing.T) {
	t.Parallel()
	entries := sampleEntries()
	a, b := entries[:1], entries[1:]
	whole := service.Totals(append(append([]model.NutritionEntry{}, a...), b...))
	split := service.Totals(a).Add(service.Totals(b))
	if !closeTotals(whole, split) {
		t.Fatalf("expected %+v, got %+v", whole, split)
	}
}

func TestMacroBreakdownColors(t *testing.T) {
	t.Parallel()
	slices := service.MacroBreakdown(model.Totals{Protein: 10, Carbs: 20, Fat: 5})
	if len(slices) != 3 {
		t.Fatalf("expected 3 slices, got %d", len(slices))
	}
	if slices[0].Color != "#82ca9d" || slices[1].Color != "#ffc658" || slices[2].Color != "#ff8042" {
		t.Fatalf("unexpected colors: %+v", slices)
	}
	if slices[1].Grams != 20 {
		t.Fatalf("expected carbs grams 20, got %v", slices[1].Grams)
	}
}

func TestWeeklyStatsNilWithoutNutrition(t *testing.T) {
	t.Parallel()
	progress := map[string][]model.ProgressEntry{
		"2025-03-10": {{ID: 1, Date: "2025-03-10", PersonWeight: 180, Bench: 100, Squat: 150, DeadLift: 200}},
	}
	emptyDays := map[string][]model.NutritionEntry{"2025-03-10": nil, "2025-03-11": {}}
	if got := service.WeeklyStatsFor(emptyDays, progress); got != nil {
		t.Fatalf("expected nil stats, got %+v", got)
	}
	if got := service.WeeklyStatsFor(nil, nil); got != nil {
		t.Fatalf("expected nil stats for empty window, got %+v", got)
	}
}

func TestWeeklyStatsDividesBySeven(t *testing.T) {
	t.Parallel()
	byDay := map[string][]model.NutritionEntry{
		"2025-03-10": {{Calories: 1400, Protein: 70}},
		"2025-03-12": {{Calories: 700}, {Calories: 0, Fat: 14}},
	}
	stats := service.WeeklyStatsFor(byDay, nil)
	if stats == nil {
		t.Fatalf("expected stats")
	}
	if stats.AvgDaily.Calories != 300 {
		t.Fatalf("expected avg 2100/7=300, got %v", stats.AvgDaily.Calories)
	}
	if stats.AvgDaily.Protein != 10 || stats.AvgDaily.Fat != 2 {
		t.Fatalf("unexpected avg macros: %+v", stats.AvgDaily)
	}
	if stats.TotalEntries != 3 || stats.DaysWithEntries != 2 {
		t.Fatalf("unexpected counts: %+v", stats)
	}
	if stats.LatestWeight != nil {
		t.Fatalf("expected no weight without progress, got %v", *stats.LatestWeight)
	}
}

func TestWeeklyStatsLatestWeightIsMax(t *testing.T) {
	t.Parallel()
	byDay := map[string][]model.NutritionEntry{"2025-03-10": {{Calories: 100}}}
	progress := map[string][]model.ProgressEntry{
		"2025-03-09": {{PersonWeight: 181}},
		"2025-03-14": {{PersonWeight: 179.5}},
	}
	stats := service.WeeklyStatsFor(byDay, progress)
	if stats == nil || stats.LatestWeight == nil || *stats.LatestWeight != 181 {
		t.Fatalf("expected latest weight 181, got %+v", stats)
	}
}

func TestProgressStatsNeedsTwoEntries(t *testing.T) {
	t.Parallel()
	if got := service.ProgressStatsFor(nil); got != nil {
		t.Fatalf("expected nil for empty, got %+v", got)
	}
	one := []model.ProgressEntry{{Date: "2025-02-01", Bench: 100}}
	if got := service.ProgressStatsFor(one); got != nil {
		t.Fatalf("expected nil for single entry, got %+v", got)
	}
}

func TestProgressStatsDeltas(t *testing.T) {
	t.Parallel()
	sorted := []model.ProgressEntry{
		{Date: "2025-02-01", PersonWeight: 180, Bench: 100, Squat: 150, DeadLift: 200},
		{Date: "2025-02-05", PersonWeight: 179, Bench: 105, Squat: 155, DeadLift: 205},
		{Date: "2025-02-11", PersonWeight: 176, Bench: 120, Squat: 160, DeadLift: 215},
	}
	stats := service.ProgressStatsFor(sorted)
	if stats == nil {
		t.Fatalf("expected stats")
	}
	if stats.BenchProgress != 20 || stats.DaysBetween != 10 {
		t.Fatalf("expected bench +20 over 10 days, got %+v", stats)
	}
	if stats.WeightChange != -4 || stats.SquatProgress != 10 || stats.DeadliftProgress != 15 {
		t.Fatalf("unexpected deltas: %+v", stats)
	}
	if stats.TotalProgress != 45 {
		t.Fatalf("expected total lift progress 45, got %v", stats.TotalProgress)
	}
}

func TestPersonalRecords(t *testing.T) {
	t.Parallel()
	if got := service.PersonalRecords(nil); got != nil {
		t.Fatalf("expected nil records, got %+v", got)
	}
	records := service.PersonalRecords([]model.ProgressEntry{
		{Bench: 100, Squat: 150, DeadLift: 180, PersonWeight: 160},
		{Bench: 120, Squat: 140, DeadLift: 200, PersonWeight: 155},
	})
	want := service.Records{MaxBench: 120, MaxSquat: 150, MaxDeadlift: 200, MinWeight: 155, MaxWeight: 160}
	if records == nil || *records != want {
		t.Fatalf("expected %+v, got %+v", want, records)
	}
}

func TestSortProgressByDateCopies(t *testing.T) {
	t.Parallel()
	in := []model.ProgressEntry{{ID: 2, Date: "2025-02-10"}, {ID: 1, Date: "2025-01-05"}}
	out := service.SortProgressByDate(in)
	if out[0].ID != 1 || out[1].ID != 2 {
		t.Fatalf("expected ascending order, got %+v", out)
	}
	if in[0].ID != 2 {
		t.Fatalf("input must not be reordered")
	}
}
