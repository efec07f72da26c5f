package stats

import (
	"time"

	"github.com/verte-zerg/liftstats/internal/model"
)

// RestDays counts calendar days without rides that fall between the first
// and last recorded ski days.
func RestDays(records []model.DayRecord) (int, error) {
	if len(records) == 0 {
		return 0, ErrEmptyInput
	}
	sorted := SortAscending(records)
	rest := 0
	for i := 1; i < len(sorted); i++ {
		gap, err := dayGap(sorted[i-1].Date, sorted[i].Date)
		if err != nil {
			return 0, err
		}
		rest += gap - 1
	}
	return rest, nil
}

// BestStreak returns the longest run of back-to-back ski days, counted as
// the number of one-day gaps in the run. A run still open at the last
// record counts too.
func BestStreak(records []model.DayRecord) (int, error) {
	sorted := SortAscending(records)
	best, run := 0, 0
	for i := 1; i < len(sorted); i++ {
		gap, err := dayGap(sorted[i-1].Date, sorted[i].Date)
		if err != nil {
			return 0, err
		}
		if gap != 1 {
			run = 0
			continue
		}
		run++
		if run > best {
			best = run
		}
	}
	return best, nil
}

// CurrentStreak returns the number of consecutive ski days ending at the
// most recent record, provided that record is today or yesterday. A
// missing today is forgiven until cutoff (time since local midnight).
func CurrentStreak(records []model.DayRecord, clock Clock, cutoff time.Duration) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}
	sorted := SortDescending(records)
	now := clock.Now()
	last, err := LocalDate(sorted[0].Date, now.Location())
	if err != nil {
		return 0, err
	}
	since := daysBetween(last, now)
	if since >= 2 {
		return 0, nil
	}
	if since == 1 && timeOfDay(now) >= cutoff {
		return 0, nil
	}
	streak := 1
	for i := 1; i < len(sorted); i++ {
		gap, err := dayGap(sorted[i].Date, sorted[i-1].Date)
		if err != nil {
			return 0, err
		}
		if gap != 1 {
			break
		}
		streak++
	}
	return streak, nil
}

// VertLastSevenDays sums TotalVert for days strictly after now minus seven
// days. A day exactly seven days old is excluded.
func VertLastSevenDays(records []model.DayRecord, clock Clock) (int, error) {
	now := clock.Now()
	boundary := now.AddDate(0, 0, -7)
	return vertInWindow(records, now.Location(), func(day time.Time) bool {
		return day.After(boundary)
	})
}

// VertSinceMonday sums TotalVert for days on or after the most recent
// Monday, today included.
func VertSinceMonday(records []model.DayRecord, clock Clock) (int, error) {
	now := clock.Now()
	monday := MostRecentMonday(now)
	return vertInWindow(records, now.Location(), func(day time.Time) bool {
		return !day.Before(monday)
	})
}

// MostRecentMonday returns local midnight of the Monday on or before t.
func MostRecentMonday(t time.Time) time.Time {
	day := startOfDay(t)
	for day.Weekday() != time.Monday {
		day = day.AddDate(0, 0, -1)
	}
	return day
}

// vertInWindow walks records newest first and stops at the first day
// outside the window or when records run out.
func vertInWindow(records []model.DayRecord, loc *time.Location, inWindow func(time.Time) bool) (int, error) {
	sorted := SortDescending(records)
	total := 0
	for i := 0; i < len(sorted); i++ {
		day, err := LocalDate(sorted[i].Date, loc)
		if err != nil {
			return 0, err
		}
		if !inWindow(day) {
			break
		}
		total += sorted[i].TotalVert
	}
	return total, nil
}

// DailyVert returns per-day vertical totals, oldest first.
func DailyVert(records []model.DayRecord) []model.DayVert {
	sorted := SortAscending(records)
	out := make([]model.DayVert, len(sorted))
	for i, day := range sorted {
		out[i] = model.DayVert{Date: day.Date, Vert: day.TotalVert}
	}
	return out
}

// timeOfDay is the wall-clock offset from midnight, unaffected by DST
// transitions earlier in the day.
func timeOfDay(t time.Time) time.Duration {
	h, m, s := t.Clock()
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(s)*time.Second
}
