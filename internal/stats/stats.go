package stats

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/verte-zerg/liftstats/internal/model"
)

// NotEnoughData is shown in place of a statistic that could not be computed.
const NotEnoughData = "not enough data"

// FormatVert renders vertical feet with thousands separators.
func FormatVert(vert int) string {
	return humanize.Comma(int64(vert)) + " ft"
}

// SummaryLine is one label/value pair of the summary.
type SummaryLine struct {
	Label string
	Value string
}

// SummaryLines formats every statistic of the report for display.
func SummaryLines(r Report) []SummaryLine {
	or := func(name, value string) string {
		if r.Err(name) != nil {
			return NotEnoughData
		}
		return value
	}
	lap := fmt.Sprintf("Fastest %s lap", r.Config.LapLift)
	return []SummaryLine{
		{"Days skied", strconv.Itoa(len(r.Days))},
		{"Season vert", FormatVert(r.SeasonVert)},
		{"Total rides", strconv.Itoa(r.TotalRides)},
		{"Current streak", or(StatCurrentStreak, days(r.CurrentStreak))},
		{"Best streak", or(StatBestStreak, days(r.BestStreak))},
		{"Rest days", or(StatRestDays, strconv.Itoa(r.RestDays))},
		{"Last 7 days", or(StatLastSevenDays, FormatVert(r.LastSevenDays))},
		{"Since Monday", or(StatSinceMonday, FormatVert(r.SinceMonday))},
		{"Biggest day", or(StatBiggestDay, fmt.Sprintf("%s on %s", FormatVert(r.BiggestDay.Vert), r.BiggestDay.Date))},
		{"Mean vert", or(StatMeanVert, FormatVert(r.MeanVert))},
		{"Median vert", or(StatMedianVert, FormatVert(r.MedianVert))},
		{lap, or(StatFastestLap, fmt.Sprintf("%s on %s", r.FastestLap.Time, r.FastestLap.Date))},
		{"Snowbird laps", fmt.Sprintf("%d (%s)", r.SnowBird.Laps, FormatVert(r.SnowBird.Vert))},
	}
}

func days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

// RenderSummary prints the summary block for a report.
func RenderSummary(w io.Writer, r Report) error {
	if len(r.Days) == 0 {
		_, err := fmt.Fprintln(w, "No ski days found.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	lines := SummaryLines(r)
	rows := make([][]string, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, []string{l.Label + ":", l.Value})
	}
	for _, line := range formatTable(nil, rows, nil) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}

// RenderLiftTable prints ride counts per lift with their share of all rides.
func RenderLiftTable(w io.Writer, counts []model.LiftCount) error {
	if len(counts) == 0 {
		_, err := fmt.Fprintln(w, "No rides found.")
		return err
	}
	total := 0
	for _, c := range counts {
		total += c.Rides
	}
	if _, err := fmt.Fprintln(w, "Rides per Lift"); err != nil {
		return err
	}
	headers := []string{"Lift", "Rides", "Share"}
	rows := make([][]string, 0, len(counts))
	for _, c := range counts {
		rows = append(rows, []string{
			c.Lift,
			strconv.Itoa(c.Rides),
			fmt.Sprintf("%.1f%%", float64(c.Rides)/float64(total)*100),
		})
	}
	for _, line := range formatTable(headers, rows, map[int]bool{1: true, 2: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}

// RenderDayTable prints one row per stored day, oldest first.
func RenderDayTable(w io.Writer, records []model.DayRecord) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No ski days found.")
		return err
	}
	headers := []string{"Date", "Day", "Vert", "Rides"}
	rows := make([][]string, 0, len(records))
	for _, day := range SortAscending(records) {
		weekday := ""
		if t, err := LocalDate(day.Date, nil); err == nil {
			weekday = t.Weekday().String()[:3]
		}
		rows = append(rows, []string{
			day.Date,
			weekday,
			FormatVert(day.TotalVert),
			strconv.Itoa(len(day.Rides)),
		})
	}
	for _, line := range formatTable(headers, rows, map[int]bool{2: true, 3: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderImportTable prints the import log.
func RenderImportTable(w io.Writer, imports []model.ImportRecord) error {
	if len(imports) == 0 {
		_, err := fmt.Fprintln(w, "No imports yet.")
		return err
	}
	headers := []string{"Imported", "Source", "Days", "ID"}
	rows := make([][]string, 0, len(imports))
	for _, rec := range imports {
		rows = append(rows, []string{
			humanize.Time(rec.ImportedAt),
			rec.Source,
			strconv.Itoa(rec.Days),
			rec.ID,
		})
	}
	for _, line := range formatTable(headers, rows, map[int]bool{2: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
