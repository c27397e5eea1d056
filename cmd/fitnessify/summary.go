package fitnessify

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var summaryDays int

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show the backend's summary for the last N days",
	RunE: func(cmd *cobra.Command, args []string) error {
		if summaryDays <= 0 {
			return fmt.Errorf("--days must be > 0")
		}
		return withApp(cmd, true, func(ctx context.Context, a *appContext) error {
			s, err := a.client.Summary(ctx, summaryDays)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			n := s.Nutrition
			fmt.Fprintf(out, "Period: %s\n", s.Period)
			fmt.Fprintf(out, "Calories: %.0f total, %.0f per day\n", n.TotalCalories, n.AvgDailyCalories)
			fmt.Fprintf(out, "Macros: P %.1fg | C %.1fg | F %.1fg\n", n.TotalProtein, n.TotalCarbs, n.TotalFat)
			fmt.Fprintf(out, "Entries: %d nutrition, %d progress\n", s.EntriesCount, s.ProgressEntriesCount)
			if p := s.LatestProgress; p != nil {
				fmt.Fprintf(out, "Latest check-in %s: weight %.1f | bench %.1f | squat %.1f | deadlift %.1f\n",
					p.Date, p.PersonWeight, p.Bench, p.Squat, p.DeadLift)
			} else {
				fmt.Fprintln(out, "No progress logged in this period")
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.Flags().IntVar(&summaryDays, "days", 7, "Number of days to summarize")
}
