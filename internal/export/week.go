package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/JoshuaKitai/Fitnessify/internal/calendar"
	"github.com/JoshuaKitai/Fitnessify/internal/model"
)

const (
	sheetDays     = "Days"
	sheetEntries  = "Entries"
	sheetProgress = "Progress"
)

var (
	dayHeaders      = []string{"Date", "Weekday", "Entries", "Calories", "Protein (g)", "Carbs (g)", "Fat (g)"}
	entryHeaders    = []string{"Date", "ID", "Name", "Calories", "Protein (g)", "Carbs (g)", "Fat (g)"}
	progressHeaders = []string{"Date", "ID", "Body weight (lbs)", "Bench (lbs)", "Squat (lbs)", "Deadlift (lbs)"}
)

// WriteWeek renders a loaded week as an xlsx workbook with one sheet for
// daily totals, one for every nutrition entry and one for progress.
func WriteWeek(w io.Writer, view calendar.WeekView) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), sheetDays); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	for _, name := range []string{sheetEntries, sheetProgress} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	days := [][]any{}
	entries := [][]any{}
	progress := [][]any{}
	for _, d := range view.Days {
		date := model.FormatDay(d.Date)
		days = append(days, []any{date, d.Date.Weekday().String(), len(d.Nutrition),
			d.Totals.Calories, d.Totals.Protein, d.Totals.Carbs, d.Totals.Fat})
		for _, e := range d.Nutrition {
			entries = append(entries, []any{date, e.ID, e.Name, e.Calories, e.Protein, e.Carbs, e.Fat})
		}
		for _, p := range d.Progress {
			progress = append(progress, []any{date, p.ID, p.PersonWeight, p.Bench, p.Squat, p.DeadLift})
		}
	}
	if s := view.Stats; s != nil {
		days = append(days, []any{},
			[]any{"Week total", "", s.TotalEntries, s.Totals.Calories, s.Totals.Protein, s.Totals.Carbs, s.Totals.Fat},
			[]any{"Daily average", "", "", s.AvgDaily.Calories, s.AvgDaily.Protein, s.AvgDaily.Carbs, s.AvgDaily.Fat})
	}

	if err := writeTable(f, sheetDays, dayHeaders, days); err != nil {
		return err
	}
	if err := writeTable(f, sheetEntries, entryHeaders, entries); err != nil {
		return err
	}
	if err := writeTable(f, sheetProgress, progressHeaders, progress); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeTable(f *excelize.File, sheet string, headers []string, rows [][]any) error {
	for i, h := range headers {
		if err := setCell(f, sheet, i+1, 1, h); err != nil {
			return err
		}
	}
	for r, row := range rows {
		for c, v := range row {
			if err := setCell(f, sheet, c+1, r+2, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func setCell(f *excelize.File, sheet string, col, row int, v any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("cell name: %w", err)
	}
	if err := f.SetCellValue(sheet, cell, v); err != nil {
		return fmt.Errorf("set %s!%s: %w", sheet, cell, err)
	}
	return nil
}
