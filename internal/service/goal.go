package service

import (
	"math"
	"strings"

	"github.com/JoshuaKitai/Fitnessify/internal/model"
)

const (
	caloriesPerGramProtein = 4
	caloriesPerGramCarbs   = 4
	caloriesPerGramFat     = 9

	// A macro plan within this many kcal of the calorie goal counts as balanced.
	balanceToleranceKcal = 50
)

type Balance string

const (
	BalanceExact    Balance = "exact"
	BalanceBalanced Balance = "balanced"
	BalanceMismatch Balance = "mismatch"
)

type GoalBalance struct {
	ProteinCalories float64 `json:"protein_calories"`
	CarbsCalories   float64 `json:"carbs_calories"`
	FatCalories     float64 `json:"fat_calories"`
	MacroCalories   float64 `json:"macro_calories"`
	ProteinPct      float64 `json:"protein_pct"`
	CarbsPct        float64 `json:"carbs_pct"`
	FatPct          float64 `json:"fat_pct"`
	Discrepancy     float64 `json:"discrepancy"`
	Verdict         Balance `json:"verdict"`
}

type GoalPreset struct {
	Key      string
	Label    string
	Calories float64
	Protein  float64
	Carbs    float64
	Fat      float64
}

var GoalPresets = []GoalPreset{
	{Key: "weight-loss", Label: "Weight Loss", Calories: 1800, Protein: 130, Carbs: 180, Fat: 60},
	{Key: "maintenance", Label: "Maintenance", Calories: 2200, Protein: 165, Carbs: 275, Fat: 73},
	{Key: "muscle-gain", Label: "Muscle Gain", Calories: 2800, Protein: 210, Carbs: 350, Fat: 93},
	{Key: "bulking", Label: "Bulking", Calories: 3200, Protein: 240, Carbs: 400, Fat: 107},
}

func DefaultGoals() model.Goals {
	return model.Goals{DailyCalories: 2000, DailyProtein: 150, DailyCarbs: 250, DailyFat: 65}
}

func FindPreset(key string) (GoalPreset, bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	for _, p := range GoalPresets {
		if p.Key == key {
			return p, true
		}
	}
	return GoalPreset{}, false
}

// Apply keeps the current target weight; presets only cover daily intake.
func (p GoalPreset) Apply(current model.Goals) model.Goals {
	return model.Goals{
		DailyCalories: p.Calories,
		DailyProtein:  p.Protein,
		DailyCarbs:    p.Carbs,
		DailyFat:      p.Fat,
		TargetWeight:  current.TargetWeight,
	}
}

func ValidateGoals(g model.Goals) error {
	return validateStruct(g)
}

func AnalyzeGoals(g model.Goals) GoalBalance {
	b := GoalBalance{
		ProteinCalories: g.DailyProtein * caloriesPerGramProtein,
		CarbsCalories:   g.DailyCarbs * caloriesPerGramCarbs,
		FatCalories:     g.DailyFat * caloriesPerGramFat,
	}
	b.MacroCalories = b.ProteinCalories + b.CarbsCalories + b.FatCalories
	if b.MacroCalories > 0 {
		b.ProteinPct = b.ProteinCalories / b.MacroCalories * 100
		b.CarbsPct = b.CarbsCalories / b.MacroCalories * 100
		b.FatPct = b.FatCalories / b.MacroCalories * 100
	}
	b.Discrepancy = math.Abs(g.DailyCalories - b.MacroCalories)
	switch {
	case b.Discrepancy == 0:
		b.Verdict = BalanceExact
	case b.Discrepancy <= balanceToleranceKcal:
		b.Verdict = BalanceBalanced
	default:
		b.Verdict = BalanceMismatch
	}
	return b
}

type Remaining struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

func DailyRemaining(g model.Goals, t model.Totals) Remaining {
	return Remaining{
		Calories: g.DailyCalories - t.Calories,
		Protein:  g.DailyProtein - t.Protein,
		Carbs:    g.DailyCarbs - t.Carbs,
		Fat:      g.DailyFat - t.Fat,
	}
}

// OnTrackTolerance is the fraction each macro may stray from its goal
// while the day still counts as on track.
const OnTrackTolerance = 0.1

// OnTrack reports whether intake stays under the calorie goal with every
// macro inside tolerance of its target.
func OnTrack(g model.Goals, t model.Totals, tolerance float64) bool {
	if t.Calories > g.DailyCalories {
		return false
	}
	pairs := [][2]float64{
		{t.Protein, g.DailyProtein},
		{t.Carbs, g.DailyCarbs},
		{t.Fat, g.DailyFat},
	}
	for _, p := range pairs {
		if !macroNear(p[0], p[1], tolerance) {
			return false
		}
	}
	return true
}

// macroNear is |grams-goal| <= tolerance*goal. Goals are validated > 0.
func macroNear(grams, goal, tolerance float64) bool {
	return math.Abs(grams-goal) <= goal*tolerance
}
