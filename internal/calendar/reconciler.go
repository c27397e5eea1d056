package calendar

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/JoshuaKitai/Fitnessify/internal/model"
	"github.com/JoshuaKitai/Fitnessify/internal/service"
)

type State int

const (
	Uninitialized State = iota
	WeekListReady
	Loading
	Loaded
	Error
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case WeekListReady:
		return "ready"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Fetcher loads both range endpoints. *api.Client satisfies it.
type Fetcher interface {
	EntriesInRange(ctx context.Context, start, end time.Time) (map[string][]model.NutritionEntry, error)
	ProgressInRange(ctx context.Context, start, end time.Time) (map[string][]model.ProgressEntry, error)
}

// Bucket is everything logged on one day.
type Bucket struct {
	Nutrition []model.NutritionEntry
	Progress  []model.ProgressEntry
}

// Result is one completed range fetch, keyed by ISO date.
type Result struct {
	Nutrition map[string][]model.NutritionEntry
	Progress  map[string][]model.ProgressEntry
}

// Ticket names a requested load. Only the newest ticket for the selected
// window may change the buckets.
type Ticket struct {
	Week time.Time
	seq  uint64
}

type Option func(*Reconciler)

func WithLogger(log *zap.Logger) Option {
	return func(r *Reconciler) {
		if log != nil {
			r.log = log
		}
	}
}

func WithEpoch(epoch time.Time) Option {
	return func(r *Reconciler) { r.epoch = model.Day(epoch) }
}

// Reconciler tracks the selected week and the per-day buckets fetched so far.
// It is safe for concurrent use.
type Reconciler struct {
	fetch Fetcher
	log   *zap.Logger
	epoch time.Time

	mu       sync.Mutex
	weeks    []time.Time
	selected int
	state    State
	err      error
	seq      uint64
	buckets  map[string]Bucket
}

func New(fetch Fetcher, opts ...Option) *Reconciler {
	r := &Reconciler{
		fetch:    fetch,
		log:      zap.NewNop(),
		epoch:    Epoch,
		selected: -1,
		buckets:  map[string]Bucket{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Init builds the week list and selects the window containing today when it
// is in the list. The returned ticket is valid only when ok is true.
func (r *Reconciler) Init(today time.Time) (Ticket, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.weeks = GenerateWeeks(r.epoch, today)
	r.selected = -1
	r.state = WeekListReady
	r.err = nil

	current := WeekStart(today)
	for i, w := range r.weeks {
		if w.Equal(current) {
			return r.selectLocked(i), true
		}
	}
	return Ticket{}, false
}

func (r *Reconciler) Weeks() []time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]time.Time(nil), r.weeks...)
}

// Selected returns the selected window start, or false when none is.
func (r *Reconciler) Selected() (time.Time, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.selected < 0 {
		return time.Time{}, false
	}
	return r.weeks[r.selected], true
}

func (r *Reconciler) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Err is the failure that moved the reconciler into Error.
func (r *Reconciler) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Select picks a window from the list. Dates that are not a listed window
// start are rejected; no nearest match is guessed.
func (r *Reconciler) Select(week time.Time) (Ticket, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	week = model.Day(week)
	for i, w := range r.weeks {
		if w.Equal(week) {
			return r.selectLocked(i), true
		}
	}
	return Ticket{}, false
}

// Next moves one window further into the past. It is a no-op on the oldest
// window or when nothing is selected.
func (r *Reconciler) Next() (Ticket, bool) {
	return r.step(1)
}

// Previous moves one window toward today. It is a no-op on the most recent
// window or when nothing is selected.
func (r *Reconciler) Previous() (Ticket, bool) {
	return r.step(-1)
}

func (r *Reconciler) step(delta int) (Ticket, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.selected < 0 {
		return Ticket{}, false
	}
	i := r.selected + delta
	if i < 0 || i >= len(r.weeks) {
		return Ticket{}, false
	}
	return r.selectLocked(i), true
}

// Refresh reloads the selected window; it is also the retry from Error.
func (r *Reconciler) Refresh() (Ticket, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.selected < 0 {
		return Ticket{}, false
	}
	return r.selectLocked(r.selected), true
}

func (r *Reconciler) selectLocked(i int) Ticket {
	r.selected = i
	r.seq++
	r.state = Loading
	r.err = nil
	return Ticket{Week: r.weeks[i], seq: r.seq}
}

// Apply merges a finished fetch. Results for a ticket that has been
// superseded, or whose window is no longer selected, are dropped and Apply
// reports false. A failure moves to Error and leaves every bucket as it was.
// A success replaces the seven dates of the window and nothing else.
func (r *Reconciler) Apply(t Ticket, res Result, err error) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t.seq != r.seq || r.selected < 0 || !r.weeks[r.selected].Equal(t.Week) {
		r.log.Debug("discarding stale week result",
			zap.String("week", model.FormatDay(t.Week)), zap.Uint64("ticket", t.seq), zap.Uint64("current", r.seq))
		return false
	}
	if err != nil {
		r.state = Error
		r.err = err
		return true
	}
	for _, date := range WeekDates(t.Week) {
		r.buckets[date] = Bucket{
			Nutrition: append([]model.NutritionEntry(nil), res.Nutrition[date]...),
			Progress:  append([]model.ProgressEntry(nil), res.Progress[date]...),
		}
	}
	r.state = Loaded
	r.err = nil
	return true
}

// Load fetches both ranges of the ticket's window concurrently and applies
// them together; one failing side fails the whole load. A failure for a
// ticket that has been superseded is dropped and Load returns nil.
func (r *Reconciler) Load(ctx context.Context, t Ticket) error {
	start, end := t.Week, WeekEnd(t.Week)
	var res Result
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		entries, err := r.fetch.EntriesInRange(gctx, start, end)
		if err != nil {
			return err
		}
		res.Nutrition = entries
		return nil
	})
	g.Go(func() error {
		progress, err := r.fetch.ProgressInRange(gctx, start, end)
		if err != nil {
			return err
		}
		res.Progress = progress
		return nil
	})
	err := g.Wait()
	if err != nil {
		if !r.Apply(t, Result{}, err) {
			r.log.Debug("discarded failed load for a superseded week",
				zap.String("week", model.FormatDay(start)), zap.Error(err))
			return nil
		}
		return fmt.Errorf("load week %s: %w", model.FormatDay(start), err)
	}
	r.Apply(t, res, nil)
	return nil
}

// Bucket returns the cached bucket for an ISO date.
func (r *Reconciler) Bucket(date string) (Bucket, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.buckets[date]
	return b, ok
}

// Day is one rendered cell of the selected window.
type Day struct {
	Date      time.Time
	Nutrition []model.NutritionEntry
	Progress  []model.ProgressEntry
	Totals    model.Totals
}

type WeekView struct {
	Start time.Time
	End   time.Time
	State State
	Err   error
	Days  []Day
	Stats *service.WeeklyStats
}

// View renders the selected window from the current buckets. ok is false
// when nothing is selected.
func (r *Reconciler) View() (WeekView, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.selected < 0 {
		return WeekView{State: r.state}, false
	}
	start := r.weeks[r.selected]
	v := WeekView{Start: start, End: WeekEnd(start), State: r.state, Err: r.err}

	byDayNutrition := make(map[string][]model.NutritionEntry, DaysPerWeek)
	byDayProgress := make(map[string][]model.ProgressEntry, DaysPerWeek)
	for i, date := range WeekDates(start) {
		b := r.buckets[date]
		v.Days = append(v.Days, Day{
			Date:      start.AddDate(0, 0, i),
			Nutrition: b.Nutrition,
			Progress:  b.Progress,
			Totals:    service.Totals(b.Nutrition),
		})
		byDayNutrition[date] = b.Nutrition
		byDayProgress[date] = b.Progress
	}
	v.Stats = service.WeeklyStatsFor(byDayNutrition, byDayProgress)
	return v, true
}
