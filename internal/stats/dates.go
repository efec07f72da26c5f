package stats

import (
	"fmt"
	"sort"
	"time"

	"github.com/verte-zerg/liftstats/internal/model"
)

const dateLayout = "2006-01-02"

// DefaultStreakCutoff is the time of day after which a day without rides
// breaks the current streak.
const DefaultStreakCutoff = 16*time.Hour + 30*time.Minute

// Clock supplies the current instant. Its location is the viewer's zone.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in Location (time.Local when nil).
type SystemClock struct {
	Location *time.Location
}

// Now implements Clock.
func (c SystemClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// FixedClock always returns the same instant.
type FixedClock time.Time

// Now implements Clock.
func (c FixedClock) Now() time.Time {
	return time.Time(c)
}

// SortAscending returns a copy of records ordered oldest first.
func SortAscending(records []model.DayRecord) []model.DayRecord {
	return sortByDate(records, true)
}

// SortDescending returns a copy of records ordered newest first.
func SortDescending(records []model.DayRecord) []model.DayRecord {
	return sortByDate(records, false)
}

func sortByDate(records []model.DayRecord, ascending bool) []model.DayRecord {
	out := append([]model.DayRecord(nil), records...)
	// Zero-padded YYYY-MM-DD orders correctly as a string.
	sort.SliceStable(out, func(i, j int) bool {
		if ascending {
			return out[i].Date < out[j].Date
		}
		return out[i].Date > out[j].Date
	})
	return out
}

// LocalDate returns midnight of the given calendar day in loc.
// Parsing a bare date yields UTC midnight, which is the previous day
// anywhere west of UTC; every day comparison must go through here.
func LocalDate(date string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(dateLayout, date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: %v", ErrMalformedDate, date, err)
	}
	return t, nil
}

// Today returns the clock's current local date as YYYY-MM-DD.
func Today(clock Clock) string {
	return clock.Now().Format(dateLayout)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// daysBetween counts calendar days from a to b using each value's own
// wall-clock date, so 23- and 25-hour DST days still count as one.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	from := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	to := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

// dayGap is the calendar-day distance between two stored dates.
func dayGap(earlier, later string) (int, error) {
	a, err := LocalDate(earlier, time.UTC)
	if err != nil {
		return 0, err
	}
	b, err := LocalDate(later, time.UTC)
	if err != nil {
		return 0, err
	}
	return daysBetween(a, b), nil
}
