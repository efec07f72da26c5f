package stats

import (
	"fmt"
	"sort"
	"time"

	"github.com/verte-zerg/liftstats/internal/model"
)

const timeLayout = "15:04:05"

// RidesPerLift counts rides per lift across all records.
func RidesPerLift(records []model.DayRecord) map[string]int {
	counts := map[string]int{}
	for _, day := range records {
		for _, ride := range day.Rides {
			counts[ride.Lift]++
		}
	}
	return counts
}

// LiftCounts returns per-lift ride counts, most ridden first.
func LiftCounts(records []model.DayRecord) []model.LiftCount {
	counts := RidesPerLift(records)
	out := make([]model.LiftCount, 0, len(counts))
	for lift, n := range counts {
		out = append(out, model.LiftCount{Lift: lift, Rides: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rides == out[j].Rides {
			return out[i].Lift < out[j].Lift
		}
		return out[i].Rides > out[j].Rides
	})
	return out
}

// TotalRides counts every ride in records.
func TotalRides(records []model.DayRecord) int {
	total := 0
	for _, day := range records {
		total += len(day.Rides)
	}
	return total
}

// SeasonVert sums TotalVert across records.
func SeasonVert(records []model.DayRecord) int {
	total := 0
	for _, day := range records {
		total += day.TotalVert
	}
	return total
}

// BiggestDay returns the day with the highest TotalVert.
// Ties go to the earliest date.
func BiggestDay(records []model.DayRecord) (model.BiggestDay, error) {
	if len(records) == 0 {
		return model.BiggestDay{}, ErrEmptyInput
	}
	sorted := sortByVert(SortAscending(records))
	return model.BiggestDay{Date: sorted[0].Date, Vert: sorted[0].TotalVert}, nil
}

// MeanVert returns the floor of the average TotalVert.
func MeanVert(records []model.DayRecord) (int, error) {
	if len(records) == 0 {
		return 0, ErrEmptyInput
	}
	return SeasonVert(records) / len(records), nil
}

// MedianVert returns the TotalVert at index n/2 of the records sorted by
// vert descending. For an even count this is the lower of the two middle
// values, not their average.
func MedianVert(records []model.DayRecord) (int, error) {
	if len(records) == 0 {
		return 0, ErrEmptyInput
	}
	sorted := sortByVert(records)
	return sorted[len(sorted)/2].TotalVert, nil
}

func sortByVert(records []model.DayRecord) []model.DayRecord {
	out := append([]model.DayRecord(nil), records...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalVert > out[j].TotalVert
	})
	return out
}

// SubsetStats counts laps and vert over rides matching keep.
func SubsetStats(records []model.DayRecord, keep func(model.Ride) bool) model.SubsetStats {
	var out model.SubsetStats
	for _, day := range records {
		for _, ride := range day.Rides {
			if !keep(ride) {
				continue
			}
			out.Laps++
			out.Vert += ride.Vert
		}
	}
	return out
}

// SnowBirdStats summarizes rides flagged as Snowbird lifts.
func SnowBirdStats(records []model.DayRecord) model.SubsetStats {
	return SubsetStats(records, func(r model.Ride) bool { return r.IsSnowBird })
}

// FastestBackToBackLap finds the shortest positive gap between two adjacent
// rides on lift within the same day. ok is false when no day has two
// consecutive rides on lift.
func FastestBackToBackLap(records []model.DayRecord, lift string) (model.Lap, bool, error) {
	best := -1
	bestDate := ""
	for _, day := range records {
		if len(day.Rides) < 2 {
			continue
		}
		for i := 1; i < len(day.Rides); i++ {
			prev, cur := day.Rides[i-1], day.Rides[i]
			if prev.Lift != lift || cur.Lift != lift {
				continue
			}
			diff, err := secondsBetween(prev.Time, cur.Time)
			if err != nil {
				return model.Lap{}, false, fmt.Errorf("day %s: %w", day.Date, err)
			}
			if diff <= 0 {
				continue
			}
			if best < 0 || diff < best {
				best = diff
				bestDate = day.Date
			}
		}
	}
	if best < 0 {
		return model.Lap{}, false, nil
	}
	return model.Lap{Seconds: best, Time: FormatLapTime(best), Date: bestDate}, true, nil
}

// FormatLapTime renders seconds as "M minutes and S seconds".
func FormatLapTime(seconds int) string {
	return fmt.Sprintf("%d minutes and %d seconds", seconds/60, seconds%60)
}

func secondsBetween(from, to string) (int, error) {
	a, err := ParseRideTime(from)
	if err != nil {
		return 0, err
	}
	b, err := ParseRideTime(to)
	if err != nil {
		return 0, err
	}
	return int(b.Sub(a) / time.Second), nil
}

// ParseRideTime parses HH:MM:SS on a fixed date so only the time of day
// matters.
func ParseRideTime(value string) (time.Time, error) {
	t, err := time.Parse(timeLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: %v", ErrMalformedTime, value, err)
	}
	return t, nil
}
