package fitnessify

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/JoshuaKitai/Fitnessify/internal/model"
	"github.com/JoshuaKitai/Fitnessify/internal/service"
)

var goalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "Manage daily calorie and macro goals",
}

var (
	goalCalories     float64
	goalProtein      float64
	goalCarbs        float64
	goalFat          float64
	goalTargetWeight float64
	goalClearTarget  bool
)

var goalsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show goals and how well the macros add up",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, true, func(ctx context.Context, a *appContext) error {
			g, b, err := a.tracker.Goals(ctx)
			if err != nil {
				return err
			}
			printGoals(cmd.OutOrStdout(), g, b)
			return nil
		})
	},
}

var goalsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Replace the daily goals",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, true, func(ctx context.Context, a *appContext) error {
			current, err := a.client.GetGoals(ctx)
			if err != nil {
				return err
			}
			next := model.Goals{
				DailyCalories: goalCalories,
				DailyProtein:  goalProtein,
				DailyCarbs:    goalCarbs,
				DailyFat:      goalFat,
				TargetWeight:  current.TargetWeight,
			}
			if cmd.Flags().Changed("target-weight") {
				w := goalTargetWeight
				next.TargetWeight = &w
			}
			if goalClearTarget {
				next.TargetWeight = nil
			}
			g, b, err := a.tracker.SaveGoals(ctx, next)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Goals updated")
			printGoals(cmd.OutOrStdout(), g, b)
			return nil
		})
	},
}

var goalsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default goals",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, true, func(ctx context.Context, a *appContext) error {
			g, b, err := a.tracker.ResetGoals(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Goals reset to defaults")
			printGoals(cmd.OutOrStdout(), g, b)
			return nil
		})
	},
}

var goalsPresetsCmd = &cobra.Command{
	Use:   "presets [key]",
	Short: "List goal presets, or apply one by key",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if len(args) == 0 {
			fmt.Fprintln(out, "KEY\tLABEL\tKCAL\tP\tC\tF")
			for _, p := range service.GoalPresets {
				fmt.Fprintf(out, "%s\t%s\t%.0f\t%.0f\t%.0f\t%.0f\n", p.Key, p.Label, p.Calories, p.Protein, p.Carbs, p.Fat)
			}
			return nil
		}
		return withApp(cmd, true, func(ctx context.Context, a *appContext) error {
			g, b, err := a.tracker.ApplyPreset(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Applied preset %s\n", args[0])
			printGoals(out, g, b)
			return nil
		})
	},
}

func printGoals(w io.Writer, g model.Goals, b service.GoalBalance) {
	fmt.Fprintf(w, "Calories: %.0f kcal\n", g.DailyCalories)
	fmt.Fprintf(w, "Protein: %.0fg (%.0f kcal, %.0f%%)\n", g.DailyProtein, b.ProteinCalories, b.ProteinPct)
	fmt.Fprintf(w, "Carbs: %.0fg (%.0f kcal, %.0f%%)\n", g.DailyCarbs, b.CarbsCalories, b.CarbsPct)
	fmt.Fprintf(w, "Fat: %.0fg (%.0f kcal, %.0f%%)\n", g.DailyFat, b.FatCalories, b.FatPct)
	fmt.Fprintf(w, "Target weight: %s\n", formatOptional(g.TargetWeight, "lbs"))
	switch b.Verdict {
	case service.BalanceExact:
		fmt.Fprintf(w, "Macros add up to exactly %.0f kcal\n", b.MacroCalories)
	case service.BalanceBalanced:
		fmt.Fprintf(w, "Macros add up to %.0f kcal, within %.0f of the calorie goal\n", b.MacroCalories, b.Discrepancy)
	default:
		fmt.Fprintf(w, "Macros add up to %.0f kcal, %.0f away from the calorie goal\n", b.MacroCalories, b.Discrepancy)
	}
}

func init() {
	rootCmd.AddCommand(goalsCmd)
	goalsCmd.AddCommand(goalsShowCmd, goalsSetCmd, goalsResetCmd, goalsPresetsCmd)

	goalsSetCmd.Flags().Float64Var(&goalCalories, "calories", 0, "Daily calorie target")
	goalsSetCmd.Flags().Float64Var(&goalProtein, "protein", 0, "Daily protein target grams")
	goalsSetCmd.Flags().Float64Var(&goalCarbs, "carbs", 0, "Daily carbs target grams")
	goalsSetCmd.Flags().Float64Var(&goalFat, "fat", 0, "Daily fat target grams")
	goalsSetCmd.Flags().Float64Var(&goalTargetWeight, "target-weight", 0, "Target body weight (lbs)")
	goalsSetCmd.Flags().BoolVar(&goalClearTarget, "clear-target-weight", false, "Remove the target weight")
	_ = goalsSetCmd.MarkFlagRequired("calories")
	_ = goalsSetCmd.MarkFlagRequired("protein")
	_ = goalsSetCmd.MarkFlagRequired("carbs")
	_ = goalsSetCmd.MarkFlagRequired("fat")
}
