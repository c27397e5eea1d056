package fitnessify

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/JoshuaKitai/Fitnessify/internal/calendar"
	"github.com/JoshuaKitai/Fitnessify/internal/export"
	"github.com/JoshuaKitai/Fitnessify/internal/model"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse nutrition and progress week by week",
}

var (
	historyWeek  string
	historyNext  int
	historyPrev  int
	historyOut   string
	historyToday string
)

var historyWeeksCmd = &cobra.Command{
	Use:   "weeks",
	Short: "List the selectable weeks, most recent first",
	RunE: func(cmd *cobra.Command, args []string) error {
		today, err := historyTodayDate()
		if err != nil {
			return err
		}
		weeks := calendar.GenerateWeeks(calendar.Epoch, today)
		out := cmd.OutOrStdout()
		if len(weeks) == 0 {
			fmt.Fprintln(out, "No weeks to show yet")
			return nil
		}
		current := calendar.WeekStart(today)
		for _, w := range weeks {
			marker := ""
			if w.Equal(current) {
				marker = " (current)"
			}
			fmt.Fprintf(out, "%s .. %s%s\n", model.FormatDay(w), model.FormatDay(calendar.WeekEnd(w)), marker)
		}
		return nil
	},
}

var historyWeekCmd = &cobra.Command{
	Use:   "week",
	Short: "Show one week of entries, daily totals and weekly stats",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, true, func(ctx context.Context, a *appContext) error {
			view, err := loadWeek(ctx, a)
			if err != nil {
				return err
			}
			printWeek(cmd.OutOrStdout(), view)
			return nil
		})
	},
}

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export one week to an .xlsx workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, true, func(ctx context.Context, a *appContext) error {
			view, err := loadWeek(ctx, a)
			if err != nil {
				return err
			}
			path := historyOut
			if path == "" {
				path = fmt.Sprintf("fitnessify-week-%s.xlsx", model.FormatDay(view.Start))
			}
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("create export file: %w", err)
			}
			if err := export.WriteWeek(f, view); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("close export file: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported week %s to %s\n", model.FormatDay(view.Start), path)
			return nil
		})
	},
}

func historyTodayDate() (time.Time, error) {
	if historyToday == "" {
		return model.Day(time.Now()), nil
	}
	return parseDayArg("--today", historyToday)
}

// loadWeek drives the reconciler for one invocation: initial selection,
// optional jump and steps, then a single load.
func loadWeek(ctx context.Context, a *appContext) (calendar.WeekView, error) {
	today, err := historyTodayDate()
	if err != nil {
		return calendar.WeekView{}, err
	}
	cal := calendar.New(a.client, calendar.WithLogger(a.log))
	ticket, ok := cal.Init(today)

	if historyWeek != "" {
		d, err := parseDayArg("--week", historyWeek)
		if err != nil {
			return calendar.WeekView{}, err
		}
		ticket, ok = cal.Select(calendar.WeekStart(d))
		if !ok {
			return calendar.WeekView{}, fmt.Errorf("week of %s is outside the tracked range", historyWeek)
		}
	}
	if !ok {
		return calendar.WeekView{}, fmt.Errorf("no week selected")
	}
	for i := 0; i < historyNext; i++ {
		if t, moved := cal.Next(); moved {
			ticket = t
		}
	}
	for i := 0; i < historyPrev; i++ {
		if t, moved := cal.Previous(); moved {
			ticket = t
		}
	}

	if err := cal.Load(ctx, ticket); err != nil {
		return calendar.WeekView{}, err
	}
	view, _ := cal.View()
	return view, nil
}

func printWeek(w io.Writer, v calendar.WeekView) {
	fmt.Fprintf(w, "Week %s .. %s\n", model.FormatDay(v.Start), model.FormatDay(v.End))
	fmt.Fprintln(w, "DATE\tDAY\tENTRIES\tKCAL\tP\tC\tF\tWEIGHT")
	for _, d := range v.Days {
		weight := "-"
		if len(d.Progress) > 0 {
			weight = fmt.Sprintf("%.1f", d.Progress[len(d.Progress)-1].PersonWeight)
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%.0f\t%.1f\t%.1f\t%.1f\t%s\n",
			model.FormatDay(d.Date), d.Date.Weekday().String()[:3], len(d.Nutrition),
			d.Totals.Calories, d.Totals.Protein, d.Totals.Carbs, d.Totals.Fat, weight)
	}
	s := v.Stats
	if s == nil {
		fmt.Fprintln(w, "No nutrition entries this week")
		return
	}
	fmt.Fprintf(w, "Total: %.0f kcal | P %.1fg | C %.1fg | F %.1fg (%d entries over %d days)\n",
		s.Totals.Calories, s.Totals.Protein, s.Totals.Carbs, s.Totals.Fat, s.TotalEntries, s.DaysWithEntries)
	fmt.Fprintf(w, "Daily average: %.0f kcal | P %.1fg | C %.1fg | F %.1fg\n",
		s.AvgDaily.Calories, s.AvgDaily.Protein, s.AvgDaily.Carbs, s.AvgDaily.Fat)
	fmt.Fprintf(w, "Latest weight: %s\n", formatOptional(s.LatestWeight, "lbs"))
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyWeeksCmd, historyWeekCmd, historyExportCmd)

	historyCmd.PersistentFlags().StringVar(&historyToday, "today", "", "Treat this date YYYY-MM-DD as today")
	for _, c := range []*cobra.Command{historyWeekCmd, historyExportCmd} {
		c.Flags().StringVar(&historyWeek, "week", "", "Any date YYYY-MM-DD inside the week to show (default current week)")
		c.Flags().IntVar(&historyNext, "next", 0, "Step this many weeks further back in the list")
		c.Flags().IntVar(&historyPrev, "prev", 0, "Step this many weeks toward the most recent")
	}
	historyExportCmd.Flags().StringVarP(&historyOut, "out", "o", "", "Output .xlsx path (default fitnessify-week-<start>.xlsx)")
}
