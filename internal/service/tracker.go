package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/JoshuaKitai/Fitnessify/internal/model"
)

// Backend is the part of the api client the tracker flows call.
type Backend interface {
	TodayEntries(ctx context.Context) ([]model.NutritionEntry, error)
	ListEntries(ctx context.Context) ([]model.NutritionEntry, error)
	EntriesOn(ctx context.Context, day time.Time) ([]model.NutritionEntry, error)
	CreateEntry(ctx context.Context, in model.NewNutritionEntry) (model.NutritionEntry, error)
	DeleteEntry(ctx context.Context, id int64) error
	ListProgress(ctx context.Context) ([]model.ProgressEntry, error)
	CreateProgress(ctx context.Context, in model.NewProgressEntry) (model.ProgressEntry, error)
	DeleteProgress(ctx context.Context, id int64) error
	GetGoals(ctx context.Context) (model.Goals, error)
	SaveGoals(ctx context.Context, g model.Goals) error
	LookupNutrition(ctx context.Context, query string) (model.NutritionLookup, error)
}

type LookupCache interface {
	Get(ctx context.Context, query string) (model.NutritionLookup, bool, error)
	Put(ctx context.Context, query string, l model.NutritionLookup) error
}

// Tracker runs the user-facing flows. Every mutation is followed by a fresh
// read of the list it touched; nothing is patched locally.
type Tracker struct {
	api   Backend
	cache LookupCache
	log   *zap.Logger
}

func NewTracker(api Backend, cache LookupCache, log *zap.Logger) *Tracker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Tracker{api: api, cache: cache, log: log}
}

type TodaySummary struct {
	Entries   []model.NutritionEntry
	Totals    model.Totals
	Goals     model.Goals
	Remaining Remaining
	Macros    []MacroSlice
}

// Today fetches today's entries and the goals side by side.
func (t *Tracker) Today(ctx context.Context) (TodaySummary, error) {
	var out TodaySummary
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		entries, err := t.api.TodayEntries(gctx)
		out.Entries = entries
		return err
	})
	g.Go(func() error {
		goals, err := t.api.GetGoals(gctx)
		out.Goals = goals
		return err
	})
	if err := g.Wait(); err != nil {
		return TodaySummary{}, err
	}
	out.Totals = Totals(out.Entries)
	out.Remaining = DailyRemaining(out.Goals, out.Totals)
	out.Macros = MacroBreakdown(out.Totals)
	return out, nil
}

func (t *Tracker) AddEntry(ctx context.Context, in model.NewNutritionEntry) (model.NutritionEntry, []model.NutritionEntry, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validateStruct(in); err != nil {
		return model.NutritionEntry{}, nil, err
	}
	created, err := t.api.CreateEntry(ctx, in)
	if err != nil {
		return model.NutritionEntry{}, nil, err
	}
	t.log.Info("entry added", zap.Int64("id", created.ID), zap.String("name", created.Name))
	today, err := t.api.TodayEntries(ctx)
	if err != nil {
		return created, nil, fmt.Errorf("reload today's entries: %w", err)
	}
	return created, today, nil
}

func (t *Tracker) DeleteEntry(ctx context.Context, id int64) ([]model.NutritionEntry, error) {
	if id <= 0 {
		return nil, &ValidationError{Field: "id", Message: "must be a positive entry id"}
	}
	if err := t.api.DeleteEntry(ctx, id); err != nil {
		return nil, err
	}
	t.log.Info("entry deleted", zap.Int64("id", id))
	today, err := t.api.TodayEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("reload today's entries: %w", err)
	}
	return today, nil
}

func (t *Tracker) AllEntries(ctx context.Context) ([]model.NutritionEntry, error) {
	return t.api.ListEntries(ctx)
}

func (t *Tracker) EntriesOn(ctx context.Context, day time.Time) ([]model.NutritionEntry, model.Totals, error) {
	entries, err := t.api.EntriesOn(ctx, day)
	if err != nil {
		return nil, model.Totals{}, err
	}
	return entries, Totals(entries), nil
}

type ProgressReport struct {
	Entries []model.ProgressEntry
	Stats   *ProgressStats
	Records *Records
}

// Progress returns the whole history oldest first with its statistics.
func (t *Tracker) Progress(ctx context.Context) (ProgressReport, error) {
	all, err := t.api.ListProgress(ctx)
	if err != nil {
		return ProgressReport{}, err
	}
	return progressReport(all), nil
}

func progressReport(all []model.ProgressEntry) ProgressReport {
	sorted := SortProgressByDate(all)
	return ProgressReport{
		Entries: sorted,
		Stats:   ProgressStatsFor(sorted),
		Records: PersonalRecords(all),
	}
}

func (t *Tracker) AddProgress(ctx context.Context, in model.NewProgressEntry) (ProgressReport, error) {
	if err := validateStruct(in); err != nil {
		return ProgressReport{}, err
	}
	created, err := t.api.CreateProgress(ctx, in)
	if err != nil {
		return ProgressReport{}, err
	}
	t.log.Info("progress added", zap.Int64("id", created.ID))
	report, err := t.Progress(ctx)
	if err != nil {
		return ProgressReport{}, fmt.Errorf("reload progress: %w", err)
	}
	return report, nil
}

func (t *Tracker) DeleteProgress(ctx context.Context, id int64) (ProgressReport, error) {
	if id <= 0 {
		return ProgressReport{}, &ValidationError{Field: "id", Message: "must be a positive entry id"}
	}
	if err := t.api.DeleteProgress(ctx, id); err != nil {
		return ProgressReport{}, err
	}
	t.log.Info("progress deleted", zap.Int64("id", id))
	report, err := t.Progress(ctx)
	if err != nil {
		return ProgressReport{}, fmt.Errorf("reload progress: %w", err)
	}
	return report, nil
}

func (t *Tracker) Goals(ctx context.Context) (model.Goals, GoalBalance, error) {
	g, err := t.api.GetGoals(ctx)
	if err != nil {
		return model.Goals{}, GoalBalance{}, err
	}
	return g, AnalyzeGoals(g), nil
}

// SaveGoals replaces the goal record and reads it back.
func (t *Tracker) SaveGoals(ctx context.Context, g model.Goals) (model.Goals, GoalBalance, error) {
	if err := ValidateGoals(g); err != nil {
		return model.Goals{}, GoalBalance{}, err
	}
	if err := t.api.SaveGoals(ctx, g); err != nil {
		return model.Goals{}, GoalBalance{}, err
	}
	t.log.Info("goals saved", zap.Float64("calories", g.DailyCalories))
	return t.Goals(ctx)
}

func (t *Tracker) ResetGoals(ctx context.Context) (model.Goals, GoalBalance, error) {
	return t.SaveGoals(ctx, DefaultGoals())
}

// ApplyPreset switches to a named preset, keeping the current target weight.
func (t *Tracker) ApplyPreset(ctx context.Context, key string) (model.Goals, GoalBalance, error) {
	preset, ok := FindPreset(key)
	if !ok {
		return model.Goals{}, GoalBalance{}, &ValidationError{Field: "preset", Message: fmt.Sprintf("unknown preset %q", key)}
	}
	current, err := t.api.GetGoals(ctx)
	if err != nil {
		return model.Goals{}, GoalBalance{}, err
	}
	return t.SaveGoals(ctx, preset.Apply(current))
}

// Lookup resolves a food description, serving from the local cache unless
// refresh is set. Cache failures are logged and never fail the lookup.
func (t *Tracker) Lookup(ctx context.Context, query string, refresh bool) (model.NutritionLookup, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return model.NutritionLookup{}, &ValidationError{Field: "query", Message: "is required"}
	}
	if t.cache != nil && !refresh {
		hit, found, err := t.cache.Get(ctx, query)
		if err != nil {
			t.log.Warn("nutrition cache read failed", zap.Error(err))
		} else if found {
			return hit, nil
		}
	}
	l, err := t.api.LookupNutrition(ctx, query)
	if err != nil {
		return model.NutritionLookup{}, err
	}
	if t.cache != nil {
		if err := t.cache.Put(ctx, query, l); err != nil {
			t.log.Warn("nutrition cache write failed", zap.Error(err))
		}
	}
	return l, nil
}

// LookupEntry turns a lookup into a loggable entry scaled by servings.
func LookupEntry(l model.NutritionLookup, servings float64) model.NewNutritionEntry {
	if servings <= 0 {
		servings = 1
	}
	return model.NewNutritionEntry{
		Name:     l.FoodName,
		Calories: l.Calories * servings,
		Protein:  l.Protein * servings,
		Carbs:    l.Carbs * servings,
		Fat:      l.Fat * servings,
	}
}
