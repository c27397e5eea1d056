package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/JoshuaKitai/Fitnessify/internal/model"
	"github.com/JoshuaKitai/Fitnessify/internal/service"
	"github.com/JoshuaKitai/Fitnessify/internal/store"
)

// fakeBackend keeps entries in memory and records the calls it served.
type fakeBackend struct {
	mu       sync.Mutex
	calls    []string
	entries  []model.NutritionEntry
	progress []model.ProgressEntry
	goals    model.Goals
	nextID   int64
	lookups  int
	failGet  error
}

func (f *fakeBackend) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *fakeBackend) TodayEntries(context.Context) ([]model.NutritionEntry, error) {
	f.record("today")
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.NutritionEntry(nil), f.entries...), nil
}

func (f *fakeBackend) ListEntries(ctx context.Context) ([]model.NutritionEntry, error) {
	return f.TodayEntries(ctx)
}

func (f *fakeBackend) EntriesOn(ctx context.Context, _ time.Time) ([]model.NutritionEntry, error) {
	return f.TodayEntries(ctx)
}

func (f *fakeBackend) CreateEntry(_ context.Context, in model.NewNutritionEntry) (model.NutritionEntry, error) {
	f.record("create entry")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	e := model.NutritionEntry{ID: f.nextID, Name: in.Name, Calories: in.Calories, Protein: in.Protein, Carbs: in.Carbs, Fat: in.Fat, Date: "2025-03-12"}
	f.entries = append(f.entries, e)
	return e, nil
}

func (f *fakeBackend) DeleteEntry(_ context.Context, id int64) error {
	f.record("delete entry")
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.entries[:0]
	for _, e := range f.entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	f.entries = kept
	return nil
}

func (f *fakeBackend) ListProgress(context.Context) ([]model.ProgressEntry, error) {
	f.record("list progress")
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.ProgressEntry(nil), f.progress...), nil
}

func (f *fakeBackend) CreateProgress(_ context.Context, in model.NewProgressEntry) (model.ProgressEntry, error) {
	f.record("create progress")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	dates := []string{"2025-02-01", "2025-02-11"}
	p := model.ProgressEntry{ID: f.nextID, Date: dates[len(f.progress)%2], PersonWeight: in.PersonWeight, Bench: in.Bench, Squat: in.Squat, DeadLift: in.DeadLift}
	f.progress = append(f.progress, p)
	return p, nil
}

func (f *fakeBackend) DeleteProgress(context.Context, int64) error {
	f.record("delete progress")
	return nil
}

func (f *fakeBackend) GetGoals(context.Context) (model.Goals, error) {
	f.record("get goals")
	if f.failGet != nil {
		return model.Goals{}, f.failGet
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.goals, nil
}

func (f *fakeBackend) SaveGoals(_ context.Context, g model.Goals) error {
	f.record("save goals")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.goals = g
	return nil
}

func (f *fakeBackend) LookupNutrition(_ context.Context, query string) (model.NutritionLookup, error) {
	f.record("lookup")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups++
	return model.NutritionLookup{FoodName: query, Calories: 95, Carbs: 25, ServingQty: 1, ServingUnit: "medium"}, nil
}

func (f *fakeBackend) callLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func TestAddEntryRefetchesToday(t *testing.T) {
	t.Parallel()
	backend := &fakeBackend{}
	tracker := service.NewTracker(backend, nil, nil)

	created, today, err := tracker.AddEntry(context.Background(), model.NewNutritionEntry{Name: "  banana ", Calories: 105, Carbs: 27})
	if err != nil {
		t.Fatalf("add entry: %v", err)
	}
	if created.Name != "banana" {
		t.Fatalf("expected trimmed name, got %q", created.Name)
	}
	if len(today) != 1 || today[0].ID != created.ID {
		t.Fatalf("expected refreshed list with new entry, got %+v", today)
	}
	calls := backend.callLog()
	if len(calls) != 2 || calls[0] != "create entry" || calls[1] != "today" {
		t.Fatalf("expected create then re-fetch, got %v", calls)
	}
}

func TestAddEntryValidationSkipsRequest(t *testing.T) {
	t.Parallel()
	backend := &fakeBackend{}
	tracker := service.NewTracker(backend, nil, nil)

	_, _, err := tracker.AddEntry(context.Background(), model.NewNutritionEntry{Name: "  ", Calories: 10})
	if !service.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	_, _, err = tracker.AddEntry(context.Background(), model.NewNutritionEntry{Name: "x", Fat: -1})
	if !service.IsValidation(err) {
		t.Fatalf("expected validation error for negative fat, got %v", err)
	}
	if calls := backend.callLog(); len(calls) != 0 {
		t.Fatalf("expected no backend calls, got %v", calls)
	}
}

func TestDeleteEntryRefetches(t *testing.T) {
	t.Parallel()
	backend := &fakeBackend{entries: []model.NutritionEntry{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}}}
	tracker := service.NewTracker(backend, nil, nil)

	today, err := tracker.DeleteEntry(context.Background(), 1)
	if err != nil {
		t.Fatalf("delete entry: %v", err)
	}
	if len(today) != 1 || today[0].ID != 2 {
		t.Fatalf("unexpected list after delete: %+v", today)
	}
	if _, err := tracker.DeleteEntry(context.Background(), 0); !service.IsValidation(err) {
		t.Fatalf("expected id validation, got %v", err)
	}
}

func TestTodayCombinesEntriesAndGoals(t *testing.T) {
	t.Parallel()
	backend := &fakeBackend{
		entries: []model.NutritionEntry{{ID: 1, Calories: 500, Protein: 30}, {ID: 2, Calories: 700, Protein: 50}},
		goals:   service.DefaultGoals(),
	}
	tracker := service.NewTracker(backend, nil, nil)

	summary, err := tracker.Today(context.Background())
	if err != nil {
		t.Fatalf("today: %v", err)
	}
	if summary.Totals.Calories != 1200 || summary.Remaining.Calories != 800 || summary.Remaining.Protein != 70 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if len(summary.Macros) != 3 {
		t.Fatalf("expected macro breakdown")
	}
}

func TestTodayFailsWhenGoalsFail(t *testing.T) {
	t.Parallel()
	boom := errors.New("goals unavailable")
	tracker := service.NewTracker(&fakeBackend{failGet: boom}, nil, nil)
	if _, err := tracker.Today(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected goals failure, got %v", err)
	}
}

func TestAddProgressReturnsFreshReport(t *testing.T) {
	t.Parallel()
	backend := &fakeBackend{}
	tracker := service.NewTracker(backend, nil, nil)
	ctx := context.Background()

	if _, err := tracker.AddProgress(ctx, model.NewProgressEntry{PersonWeight: 180, Bench: 100, Squat: 150, DeadLift: 0}); !service.IsValidation(err) {
		t.Fatalf("expected zero deadlift to be rejected, got %v", err)
	}

	if _, err := tracker.AddProgress(ctx, model.NewProgressEntry{PersonWeight: 180, Bench: 100, Squat: 150, DeadLift: 200}); err != nil {
		t.Fatalf("add first progress: %v", err)
	}
	report, err := tracker.AddProgress(ctx, model.NewProgressEntry{PersonWeight: 176, Bench: 120, Squat: 160, DeadLift: 215})
	if err != nil {
		t.Fatalf("add second progress: %v", err)
	}
	if report.Stats == nil || report.Stats.BenchProgress != 20 || report.Stats.DaysBetween != 10 {
		t.Fatalf("unexpected stats: %+v", report.Stats)
	}
	if report.Records == nil || report.Records.MaxDeadlift != 215 || report.Records.MinWeight != 176 {
		t.Fatalf("unexpected records: %+v", report.Records)
	}
}

func TestApplyPresetKeepsTargetWeight(t *testing.T) {
	t.Parallel()
	target := 165.0
	backend := &fakeBackend{goals: model.Goals{DailyCalories: 2000, DailyProtein: 150, DailyCarbs: 250, DailyFat: 65, TargetWeight: &target}}
	tracker := service.NewTracker(backend, nil, nil)

	goals, balance, err := tracker.ApplyPreset(context.Background(), "bulking")
	if err != nil {
		t.Fatalf("apply preset: %v", err)
	}
	if goals.DailyCalories != 3200 || goals.TargetWeight == nil || *goals.TargetWeight != 165 {
		t.Fatalf("unexpected goals: %+v", goals)
	}
	if balance.MacroCalories != 240*4+400*4+107*9 {
		t.Fatalf("unexpected macro kcal: %v", balance.MacroCalories)
	}
	if _, _, err := tracker.ApplyPreset(context.Background(), "nope"); !service.IsValidation(err) {
		t.Fatalf("expected unknown preset error, got %v", err)
	}
}

func TestSaveGoalsRejectsNonPositive(t *testing.T) {
	t.Parallel()
	backend := &fakeBackend{}
	tracker := service.NewTracker(backend, nil, nil)
	_, _, err := tracker.SaveGoals(context.Background(), model.Goals{DailyCalories: 2000, DailyProtein: 150, DailyCarbs: -1, DailyFat: 65})
	if !service.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if calls := backend.callLog(); len(calls) != 0 {
		t.Fatalf("expected no backend calls, got %v", calls)
	}
}

func TestLookupUsesCache(t *testing.T) {
	t.Parallel()
	backend := &fakeBackend{}
	cache := store.NewLookupCache(newTestDB(t), time.Hour)
	tracker := service.NewTracker(backend, cache, nil)
	ctx := context.Background()

	first, err := tracker.Lookup(ctx, "1 Apple", false)
	if err != nil {
		t.Fatalf("first lookup: %v", err)
	}
	if first.FromCache {
		t.Fatalf("first lookup should come from the backend")
	}
	second, err := tracker.Lookup(ctx, "1   apple", false)
	if err != nil {
		t.Fatalf("second lookup: %v", err)
	}
	if !second.FromCache || backend.lookups != 1 {
		t.Fatalf("expected cache hit, backend lookups=%d", backend.lookups)
	}
	if _, err := tracker.Lookup(ctx, "1 apple", true); err != nil {
		t.Fatalf("refresh lookup: %v", err)
	}
	if backend.lookups != 2 {
		t.Fatalf("refresh should bypass the cache, backend lookups=%d", backend.lookups)
	}
}

func TestLookupEntryScales(t *testing.T) {
	t.Parallel()
	in := service.LookupEntry(model.NutritionLookup{FoodName: "apple", Calories: 95, Carbs: 25}, 2)
	if in.Name != "apple" || in.Calories != 190 || in.Carbs != 50 {
		t.Fatalf("unexpected entry: %+v", in)
	}
	if service.LookupEntry(model.NutritionLookup{Calories: 95}, 0).Calories != 95 {
		t.Fatalf("non-positive servings should default to one")
	}
}
