package fitnessify

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JoshuaKitai/Fitnessify/internal/model"
	"github.com/JoshuaKitai/Fitnessify/internal/service"
)

var foodCmd = &cobra.Command{
	Use:   "food",
	Short: "Log and review nutrition entries",
}

var (
	foodName     string
	foodCalories float64
	foodProtein  float64
	foodCarbs    float64
	foodFat      float64

	lookupAdd      bool
	lookupServings float64
	lookupRefresh  bool
)

var foodAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a food entry for today",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := model.NewNutritionEntry{
			Name:     foodName,
			Calories: foodCalories,
			Protein:  foodProtein,
			Carbs:    foodCarbs,
			Fat:      foodFat,
		}
		return withApp(cmd, true, func(ctx context.Context, a *appContext) error {
			created, today, err := a.tracker.AddEntry(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added entry %d: %s (%.0f kcal)\n", created.ID, created.Name, created.Calories)
			printEntries(cmd.OutOrStdout(), today)
			return nil
		})
	},
}

var foodLookupCmd = &cobra.Command{
	Use:   "lookup <description>",
	Short: "Look up nutrition facts for a free-text food description",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		return withApp(cmd, true, func(ctx context.Context, a *appContext) error {
			l, err := a.tracker.Lookup(ctx, query, lookupRefresh)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			source := "backend"
			if l.FromCache {
				source = "cache"
			}
			fmt.Fprintf(out, "Food: %s\n", l.FoodName)
			fmt.Fprintf(out, "Serving: %g %s\n", l.ServingQty, l.ServingUnit)
			fmt.Fprintf(out, "Calories: %.1f kcal\n", l.Calories)
			fmt.Fprintf(out, "Macros: P %.1fg | C %.1fg | F %.1fg\n", l.Protein, l.Carbs, l.Fat)
			fmt.Fprintf(out, "Source: %s\n", source)
			if !lookupAdd {
				return nil
			}
			created, _, err := a.tracker.AddEntry(ctx, service.LookupEntry(l, lookupServings))
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Added entry %d: %s (%.0f kcal)\n", created.ID, created.Name, created.Calories)
			return nil
		})
	},
}

var foodTodayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's entries, totals and what is left of the goals",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, true, func(ctx context.Context, a *appContext) error {
			s, err := a.tracker.Today(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(s.Entries) == 0 {
				fmt.Fprintln(out, "No entries logged today")
			} else {
				printEntries(out, s.Entries)
			}
			fmt.Fprintf(out, "Intake: %.0f kcal | P %.1fg | C %.1fg | F %.1fg\n", s.Totals.Calories, s.Totals.Protein, s.Totals.Carbs, s.Totals.Fat)
			fmt.Fprintf(out, "Goal: %.0f kcal | P %.1fg | C %.1fg | F %.1fg\n", s.Goals.DailyCalories, s.Goals.DailyProtein, s.Goals.DailyCarbs, s.Goals.DailyFat)
			fmt.Fprintf(out, "Remaining: %.0f kcal | P %.1fg | C %.1fg | F %.1fg\n", s.Remaining.Calories, s.Remaining.Protein, s.Remaining.Carbs, s.Remaining.Fat)
			for _, m := range s.Macros {
				fmt.Fprintf(out, "  %-8s %7.1fg  %s\n", m.Name, m.Grams, m.Color)
			}
			verdict := "no"
			if service.OnTrack(s.Goals, s.Totals, service.OnTrackTolerance) {
				verdict = "yes"
			}
			fmt.Fprintf(out, "On track: %s (calories under goal, macros within %.0f%%)\n", verdict, service.OnTrackTolerance*100)
			return nil
		})
	},
}

var foodListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every logged entry",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, true, func(ctx context.Context, a *appContext) error {
			entries, err := a.tracker.AllEntries(ctx)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No entries logged yet")
				return nil
			}
			printEntries(cmd.OutOrStdout(), entries)
			return nil
		})
	},
}

var foodDayCmd = &cobra.Command{
	Use:   "day <YYYY-MM-DD>",
	Short: "Show entries and totals for one day",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := parseDayArg("date", args[0])
		if err != nil {
			return err
		}
		return withApp(cmd, true, func(ctx context.Context, a *appContext) error {
			entries, totals, err := a.tracker.EntriesOn(ctx, d)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintf(out, "No entries on %s\n", model.FormatDay(d))
				return nil
			}
			printEntries(out, entries)
			fmt.Fprintf(out, "Total: %.0f kcal | P %.1fg | C %.1fg | F %.1fg\n", totals.Calories, totals.Protein, totals.Carbs, totals.Fat)
			return nil
		})
	},
}

var foodDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("entry id", args[0])
		if err != nil {
			return err
		}
		return withApp(cmd, true, func(ctx context.Context, a *appContext) error {
			today, err := a.tracker.DeleteEntry(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted entry %d\n", id)
			if len(today) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No entries logged today")
				return nil
			}
			printEntries(cmd.OutOrStdout(), today)
			return nil
		})
	},
}

func printEntries(w io.Writer, entries []model.NutritionEntry) {
	fmt.Fprintln(w, "ID\tDATE\tNAME\tKCAL\tP\tC\tF")
	for _, e := range entries {
		fmt.Fprintf(w, "%d\t%s\t%s\t%.0f\t%.1f\t%.1f\t%.1f\n", e.ID, e.Date, e.Name, e.Calories, e.Protein, e.Carbs, e.Fat)
	}
}

func init() {
	rootCmd.AddCommand(foodCmd)
	foodCmd.AddCommand(foodAddCmd, foodLookupCmd, foodTodayCmd, foodListCmd, foodDayCmd, foodDeleteCmd)

	foodAddCmd.Flags().StringVar(&foodName, "name", "", "Food name")
	foodAddCmd.Flags().Float64Var(&foodCalories, "calories", 0, "Calories (kcal)")
	foodAddCmd.Flags().Float64Var(&foodProtein, "protein", 0, "Protein grams")
	foodAddCmd.Flags().Float64Var(&foodCarbs, "carbs", 0, "Carbohydrate grams")
	foodAddCmd.Flags().Float64Var(&foodFat, "fat", 0, "Fat grams")
	_ = foodAddCmd.MarkFlagRequired("name")
	_ = foodAddCmd.MarkFlagRequired("calories")

	foodLookupCmd.Flags().BoolVar(&lookupAdd, "add", false, "Log the result as an entry")
	foodLookupCmd.Flags().Float64Var(&lookupServings, "servings", 1, "Servings to log with --add")
	foodLookupCmd.Flags().BoolVar(&lookupRefresh, "refresh", false, "Skip the local lookup cache")
}
