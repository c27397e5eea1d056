package service_test

import (
	"math"
	"testing"

	"github.com/JoshuaKitai/Fitnessify/internal/model"
	"github.com/JoshuaKitai/Fitnessify/internal/service"
)

func TestAnalyzeGoalsVerdicts(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name  string
		goals model.Goals
		want  service.Balance
	}{
		// 150*4 + 250*4 + 65*9 = 2185
		{name: "within tolerance", goals: model.Goals{DailyCalories: 2200, DailyProtein: 150, DailyCarbs: 250, DailyFat: 65}, want: service.BalanceBalanced},
		{name: "defaults", goals: service.DefaultGoals(), want: service.BalanceMismatch},
		{name: "exact", goals: model.Goals{DailyCalories: 2185, DailyProtein: 150, DailyCarbs: 250, DailyFat: 65}, want: service.BalanceExact},
		{name: "mismatch", goals: model.Goals{DailyCalories: 3000, DailyProtein: 150, DailyCarbs: 250, DailyFat: 65}, want: service.BalanceMismatch},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := service.AnalyzeGoals(tc.goals)
			if got.Verdict != tc.want {
				t.Fatalf("expected %s, got %s (%+v)", tc.want, got.Verdict, got)
			}
		})
	}
}

func TestAnalyzeGoalsPercentages(t *testing.T) {
	t.Parallel()
	b := service.AnalyzeGoals(model.Goals{DailyCalories: 2000, DailyProtein: 100, DailyCarbs: 200, DailyFat: 40})
	if b.MacroCalories != 1560 {
		t.Fatalf("expected 1560 macro kcal, got %v", b.MacroCalories)
	}
	if math.Abs(b.ProteinPct+b.CarbsPct+b.FatPct-100) > 1e-9 {
		t.Fatalf("percentages should sum to 100: %+v", b)
	}
	if b.Discrepancy != 440 {
		t.Fatalf("expected discrepancy 440, got %v", b.Discrepancy)
	}
}

func TestPresetKeepsTargetWeight(t *testing.T) {
	t.Parallel()
	target := 170.0
	preset, ok := service.FindPreset(" Muscle-Gain ")
	if !ok {
		t.Fatalf("expected muscle-gain preset")
	}
	got := preset.Apply(model.Goals{DailyCalories: 1, DailyProtein: 1, DailyCarbs: 1, DailyFat: 1, TargetWeight: &target})
	if got.DailyCalories != 2800 || got.DailyProtein != 210 || got.DailyCarbs != 350 || got.DailyFat != 93 {
		t.Fatalf("unexpected preset goals: %+v", got)
	}
	if got.TargetWeight == nil || *got.TargetWeight != 170 {
		t.Fatalf("expected target weight kept")
	}
	if _, ok := service.FindPreset("keto"); ok {
		t.Fatalf("expected unknown preset to be rejected")
	}
}

func TestValidateGoals(t *testing.T) {
	t.Parallel()
	if err := service.ValidateGoals(service.DefaultGoals()); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	bad := service.DefaultGoals()
	bad.DailyProtein = 0
	err := service.ValidateGoals(bad)
	if !service.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err.Error() != "protein: must be a valid number > 0" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
	negative := -5.0
	bad = service.DefaultGoals()
	bad.TargetWeight = &negative
	if err := service.ValidateGoals(bad); !service.IsValidation(err) {
		t.Fatalf("expected target weight rejection, got %v", err)
	}
}

func TestDailyRemainingAndOnTrack(t *testing.T) {
	t.Parallel()
	goals := service.DefaultGoals()
	eaten := model.Totals{Calories: 1900, Protein: 145, Carbs: 240, Fat: 66}
	rem := service.DailyRemaining(goals, eaten)
	if rem.Calories != 100 || rem.Protein != 5 || rem.Fat != -1 {
		t.Fatalf("unexpected remaining: %+v", rem)
	}
	if !service.OnTrack(goals, eaten, 0.1) {
		t.Fatalf("expected on track within 10%%")
	}
	if service.OnTrack(goals, model.Totals{Calories: 2100, Protein: 150, Carbs: 250, Fat: 65}, 0.1) {
		t.Fatalf("calories over goal should not be on track")
	}
	if !service.OnTrack(goals, model.Totals{Calories: 2000, Protein: 165, Carbs: 230, Fat: 65}, service.OnTrackTolerance) {
		t.Fatalf("macros at the tolerance edge should be on track")
	}
	if service.OnTrack(goals, model.Totals{Calories: 1500, Protein: 150, Carbs: 250, Fat: 40}, service.OnTrackTolerance) {
		t.Fatalf("fat far under goal should not be on track")
	}
}

func TestCredentialValidation(t *testing.T) {
	t.Parallel()
	if err := service.ValidateLogin("sam@example.com", "pw"); err != nil {
		t.Fatalf("expected valid login: %v", err)
	}
	if err := service.ValidateLogin("sam", "pw"); !service.IsValidation(err) {
		t.Fatalf("expected email rejection, got %v", err)
	}
	if err := service.ValidateRegistration("sam", "sam@example.com", "12345"); !service.IsValidation(err) {
		t.Fatalf("expected short password rejection, got %v", err)
	}
	if err := service.ValidateRegistration("sam", "sam@example.com", "123456"); err != nil {
		t.Fatalf("expected valid registration: %v", err)
	}
}
