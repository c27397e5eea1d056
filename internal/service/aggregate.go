package service

import (
	"math"
	"sort"

	"github.com/JoshuaKitai/Fitnessify/internal/model"
)

const daysPerWeek = 7

type MacroSlice struct {
	Name  string  `json:"name"`
	Grams float64 `json:"grams"`
	Color string  `json:"color"`
}

type WeeklyStats struct {
	Totals          model.Totals `json:"totals"`
	AvgDaily        model.Totals `json:"avg_daily"`
	LatestWeight    *float64     `json:"latest_weight,omitempty"`
	TotalEntries    int          `json:"total_entries"`
	DaysWithEntries int          `json:"days_with_entries"`
}

type ProgressStats struct {
	WeightChange     float64 `json:"weight_change"`
	BenchProgress    float64 `json:"bench_progress"`
	SquatProgress    float64 `json:"squat_progress"`
	DeadliftProgress float64 `json:"deadlift_progress"`
	TotalProgress    float64 `json:"total_progress"`
	DaysBetween      int     `json:"days_between"`
}

type Records struct {
	MaxBench    float64 `json:"max_bench"`
	MaxSquat    float64 `json:"max_squat"`
	MaxDeadlift float64 `json:"max_deadlift"`
	MinWeight   float64 `json:"min_weight"`
	MaxWeight   float64 `json:"max_weight"`
}

func Totals(entries []model.NutritionEntry) model.Totals {
	var t model.Totals
	for _, e := range entries {
		t.Calories += e.Calories
		t.Protein += e.Protein
		t.Carbs += e.Carbs
		t.Fat += e.Fat
	}
	return t
}

func MacroBreakdown(t model.Totals) []MacroSlice {
	return []MacroSlice{
		{Name: "Protein", Grams: t.Protein, Color: "#82ca9d"},
		{Name: "Carbs", Grams: t.Carbs, Color: "#ffc658"},
		{Name: "Fat", Grams: t.Fat, Color: "#ff8042"},
	}
}

// WeeklyStatsFor summarizes one calendar window. It returns nil when the window
// holds no nutrition entries, whatever progress was logged. Averages divide
// by the full week length, not by the number of days with data.
func WeeklyStatsFor(entriesByDay map[string][]model.NutritionEntry, progressByDay map[string][]model.ProgressEntry) *WeeklyStats {
	all := make([]model.NutritionEntry, 0)
	days := 0
	for _, entries := range entriesByDay {
		if len(entries) > 0 {
			days++
		}
		all = append(all, entries...)
	}
	if len(all) == 0 {
		return nil
	}

	totals := Totals(all)
	stats := &WeeklyStats{
		Totals: totals,
		AvgDaily: model.Totals{
			Calories: totals.Calories / daysPerWeek,
			Protein:  totals.Protein / daysPerWeek,
			Carbs:    totals.Carbs / daysPerWeek,
			Fat:      totals.Fat / daysPerWeek,
		},
		TotalEntries:    len(all),
		DaysWithEntries: days,
	}

	found := false
	var maxWeight float64
	for _, progress := range progressByDay {
		for _, p := range progress {
			if !found || p.PersonWeight > maxWeight {
				maxWeight = p.PersonWeight
				found = true
			}
		}
	}
	if found {
		stats.LatestWeight = &maxWeight
	}
	return stats
}

// ProgressStatsFor compares the first and last entry of a list sorted by
// ascending date. Fewer than two entries yield nil.
func ProgressStatsFor(sorted []model.ProgressEntry) *ProgressStats {
	if len(sorted) < 2 {
		return nil
	}
	first := sorted[0]
	last := sorted[len(sorted)-1]

	stats := &ProgressStats{
		WeightChange:     last.PersonWeight - first.PersonWeight,
		BenchProgress:    last.Bench - first.Bench,
		SquatProgress:    last.Squat - first.Squat,
		DeadliftProgress: last.DeadLift - first.DeadLift,
	}
	stats.TotalProgress = stats.BenchProgress + stats.SquatProgress + stats.DeadliftProgress

	from, errFrom := model.ParseDay(first.Date)
	to, errTo := model.ParseDay(last.Date)
	if errFrom == nil && errTo == nil {
		stats.DaysBetween = int(math.Ceil(math.Abs(to.Sub(from).Hours()) / 24))
	}
	return stats
}

// PersonalRecords scans the whole history, not a display window.
func PersonalRecords(all []model.ProgressEntry) *Records {
	if len(all) == 0 {
		return nil
	}
	r := &Records{
		MaxBench:    all[0].Bench,
		MaxSquat:    all[0].Squat,
		MaxDeadlift: all[0].DeadLift,
		MinWeight:   all[0].PersonWeight,
		MaxWeight:   all[0].PersonWeight,
	}
	for _, p := range all[1:] {
		r.MaxBench = math.Max(r.MaxBench, p.Bench)
		r.MaxSquat = math.Max(r.MaxSquat, p.Squat)
		r.MaxDeadlift = math.Max(r.MaxDeadlift, p.DeadLift)
		r.MinWeight = math.Min(r.MinWeight, p.PersonWeight)
		r.MaxWeight = math.Max(r.MaxWeight, p.PersonWeight)
	}
	return r
}

// SortProgressByDate returns an ascending copy; the input is left as is.
func SortProgressByDate(entries []model.ProgressEntry) []model.ProgressEntry {
	out := make([]model.ProgressEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date < out[j].Date
	})
	return out
}
