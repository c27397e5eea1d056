package fitnessify

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/JoshuaKitai/Fitnessify/internal/model"
	"github.com/JoshuaKitai/Fitnessify/internal/service"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Track body weight and strength lifts",
}

var (
	progressWeight   float64
	progressBench    float64
	progressSquat    float64
	progressDeadlift float64
)

var progressAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a progress check-in for today (lbs)",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := model.NewProgressEntry{
			PersonWeight: progressWeight,
			Bench:        progressBench,
			Squat:        progressSquat,
			DeadLift:     progressDeadlift,
		}
		return withApp(cmd, true, func(ctx context.Context, a *appContext) error {
			report, err := a.tracker.AddProgress(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Progress logged")
			printProgressReport(cmd.OutOrStdout(), report)
			return nil
		})
	},
}

var progressListCmd = &cobra.Command{
	Use:   "list",
	Short: "List progress history with changes since the first entry",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, true, func(ctx context.Context, a *appContext) error {
			report, err := a.tracker.Progress(ctx)
			if err != nil {
				return err
			}
			printProgressReport(cmd.OutOrStdout(), report)
			return nil
		})
	},
}

var progressDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a progress entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("progress id", args[0])
		if err != nil {
			return err
		}
		return withApp(cmd, true, func(ctx context.Context, a *appContext) error {
			report, err := a.tracker.DeleteProgress(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted progress entry %d\n", id)
			printProgressReport(cmd.OutOrStdout(), report)
			return nil
		})
	},
}

var progressRecordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Show personal records across the whole history",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, true, func(ctx context.Context, a *appContext) error {
			report, err := a.tracker.Progress(ctx)
			if err != nil {
				return err
			}
			printRecords(cmd.OutOrStdout(), report.Records)
			return nil
		})
	},
}

func printProgressReport(w io.Writer, report service.ProgressReport) {
	if len(report.Entries) == 0 {
		fmt.Fprintln(w, "No progress logged yet")
		return
	}
	fmt.Fprintln(w, "ID\tDATE\tWEIGHT\tBENCH\tSQUAT\tDEADLIFT")
	for _, p := range report.Entries {
		fmt.Fprintf(w, "%d\t%s\t%.1f\t%.1f\t%.1f\t%.1f\n", p.ID, p.Date, p.PersonWeight, p.Bench, p.Squat, p.DeadLift)
	}
	if s := report.Stats; s != nil {
		fmt.Fprintf(w, "Over %d days: weight %+.1f | bench %+.1f | squat %+.1f | deadlift %+.1f | total lifts %+.1f\n",
			s.DaysBetween, s.WeightChange, s.BenchProgress, s.SquatProgress, s.DeadliftProgress, s.TotalProgress)
	} else {
		fmt.Fprintln(w, "Log at least two check-ins to see progress")
	}
}

func printRecords(w io.Writer, r *service.Records) {
	if r == nil {
		fmt.Fprintln(w, "No progress logged yet")
		return
	}
	fmt.Fprintf(w, "Bench: %.1f lbs\n", r.MaxBench)
	fmt.Fprintf(w, "Squat: %.1f lbs\n", r.MaxSquat)
	fmt.Fprintf(w, "Deadlift: %.1f lbs\n", r.MaxDeadlift)
	fmt.Fprintf(w, "Body weight: %.1f to %.1f lbs\n", r.MinWeight, r.MaxWeight)
}

func init() {
	rootCmd.AddCommand(progressCmd)
	progressCmd.AddCommand(progressAddCmd, progressListCmd, progressDeleteCmd, progressRecordsCmd)

	progressAddCmd.Flags().Float64Var(&progressWeight, "weight", 0, "Body weight (lbs)")
	progressAddCmd.Flags().Float64Var(&progressBench, "bench", 0, "Bench press (lbs)")
	progressAddCmd.Flags().Float64Var(&progressSquat, "squat", 0, "Squat (lbs)")
	progressAddCmd.Flags().Float64Var(&progressDeadlift, "deadlift", 0, "Deadlift (lbs)")
	for _, name := range []string{"weight", "bench", "squat", "deadlift"} {
		_ = progressAddCmd.MarkFlagRequired(name)
	}
}
