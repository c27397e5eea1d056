package model

import "time"

type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
	IsActive  bool   `json:"is_active"`
}

// NutritionEntry is one logged food item. The backend assigns ID and Date.
type NutritionEntry struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Date     string  `json:"date"`
}

type NewNutritionEntry struct {
	Name     string  `json:"name" validate:"required,max=255"`
	Calories float64 `json:"calories" validate:"gte=0"`
	Protein  float64 `json:"protein" validate:"gte=0"`
	Carbs    float64 `json:"carbs" validate:"gte=0"`
	Fat      float64 `json:"fat" validate:"gte=0"`
}

// ProgressEntry is one strength/body-weight check-in. Weights are in lbs.
type ProgressEntry struct {
	ID           int64   `json:"id"`
	Date         string  `json:"date"`
	PersonWeight float64 `json:"person_weight"`
	Bench        float64 `json:"bench"`
	Squat        float64 `json:"squat"`
	DeadLift     float64 `json:"dead_lift"`
}

type NewProgressEntry struct {
	PersonWeight float64 `json:"person_weight" validate:"gt=0"`
	Bench        float64 `json:"bench" validate:"gt=0"`
	Squat        float64 `json:"squat" validate:"gt=0"`
	DeadLift     float64 `json:"dead_lift" validate:"gt=0"`
}

type Goals struct {
	DailyCalories float64  `json:"daily_calories" validate:"gt=0"`
	DailyProtein  float64  `json:"daily_protein" validate:"gt=0"`
	DailyCarbs    float64  `json:"daily_carbs" validate:"gt=0"`
	DailyFat      float64  `json:"daily_fat" validate:"gt=0"`
	TargetWeight  *float64 `json:"target_weight" validate:"omitempty,gt=0"`
}

type Totals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// Add returns the element-wise sum of t and o.
func (t Totals) Add(o Totals) Totals {
	return Totals{
		Calories: t.Calories + o.Calories,
		Protein:  t.Protein + o.Protein,
		Carbs:    t.Carbs + o.Carbs,
		Fat:      t.Fat + o.Fat,
	}
}

// NutritionLookup is the backend's answer to a free-text food query.
type NutritionLookup struct {
	FoodName    string  `json:"food_name"`
	Calories    float64 `json:"calories"`
	Protein     float64 `json:"protein"`
	Carbs       float64 `json:"carbs"`
	Fat         float64 `json:"fat"`
	ServingQty  float64 `json:"serving_qty"`
	ServingUnit string  `json:"serving_unit"`
	FromCache   bool    `json:"-"`
}

type SummaryNutrition struct {
	TotalCalories    float64 `json:"total_calories"`
	AvgDailyCalories float64 `json:"avg_daily_calories"`
	TotalProtein     float64 `json:"total_protein"`
	TotalCarbs       float64 `json:"total_carbs"`
	TotalFat         float64 `json:"total_fat"`
}

type SummaryStats struct {
	Period               string           `json:"period"`
	Nutrition            SummaryNutrition `json:"nutrition"`
	LatestProgress       *ProgressEntry   `json:"latest_progress"`
	EntriesCount         int              `json:"entries_count"`
	ProgressEntriesCount int              `json:"progress_entries_count"`
}

const DateLayout = "2006-01-02"

// Day returns the civil date of t as a UTC midnight value.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ParseDay(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

func FormatDay(t time.Time) string {
	return t.Format(DateLayout)
}
