// Package stats contains statistics calculations and reporting.
package stats

import (
	"context"
	"errors"
	"time"

	"github.com/verte-zerg/liftstats/internal/model"
	"github.com/verte-zerg/liftstats/internal/store"
)

// DefaultLapLift is the lift used for the fastest back-to-back lap.
const DefaultLapLift = "Collins"

// Names of statistics that can fail independently.
const (
	StatBiggestDay    = "biggest-day"
	StatMeanVert      = "mean-vert"
	StatMedianVert    = "median-vert"
	StatFastestLap    = "fastest-lap"
	StatRestDays      = "rest-days"
	StatBestStreak    = "best-streak"
	StatCurrentStreak = "current-streak"
	StatLastSevenDays = "last-seven-days"
	StatSinceMonday   = "since-monday"
)

// Report contains precomputed statistics for rendering.
type Report struct {
	Config model.StatsConfig
	Now    time.Time
	Days   []model.DayRecord

	SeasonVert int
	TotalRides int
	LiftCounts []model.LiftCount
	Daily      []model.DayVert
	SnowBird   model.SubsetStats

	BiggestDay    model.BiggestDay
	MeanVert      int
	MedianVert    int
	FastestLap    model.Lap
	RestDays      int
	BestStreak    int
	CurrentStreak int
	LastSevenDays int
	SinceMonday   int

	// Errs holds the failure of each statistic that could not be computed.
	Errs map[string]error
}

// Err returns why a statistic is unavailable, or nil.
func (r Report) Err(name string) error {
	return r.Errs[name]
}

// ErrNoLap marks a report without any back-to-back lap on the lap lift.
var ErrNoLap = errors.New("no back-to-back laps")

// BuildReport loads the configured season from the store and computes all
// statistics.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig, clock Clock) (Report, error) {
	days, err := st.ListDays(ctx, cfg.Season)
	if err != nil {
		return Report{}, err
	}
	return Compute(days, cfg, clock), nil
}

// Compute derives every statistic from records. Each statistic is computed
// on its own; one failing leaves the others intact.
func Compute(records []model.DayRecord, cfg model.StatsConfig, clock Clock) Report {
	cfg = withDefaults(cfg)
	if cfg.Location != nil {
		clock = zonedClock{clock: clock, loc: cfg.Location}
	}
	r := Report{
		Config:     cfg,
		Now:        clock.Now(),
		Days:       SortAscending(records),
		SeasonVert: SeasonVert(records),
		TotalRides: TotalRides(records),
		LiftCounts: LiftCounts(records),
		Daily:      DailyVert(records),
		SnowBird:   SnowBirdStats(records),
		Errs:       map[string]error{},
	}

	var err error
	if r.BiggestDay, err = BiggestDay(records); err != nil {
		r.Errs[StatBiggestDay] = err
	}
	if r.MeanVert, err = MeanVert(records); err != nil {
		r.Errs[StatMeanVert] = err
	}
	if r.MedianVert, err = MedianVert(records); err != nil {
		r.Errs[StatMedianVert] = err
	}
	lap, ok, err := FastestBackToBackLap(records, cfg.LapLift)
	switch {
	case err != nil:
		r.Errs[StatFastestLap] = err
	case !ok:
		r.Errs[StatFastestLap] = ErrNoLap
	default:
		r.FastestLap = lap
	}
	if r.RestDays, err = RestDays(records); err != nil {
		r.Errs[StatRestDays] = err
	}
	if r.BestStreak, err = BestStreak(records); err != nil {
		r.Errs[StatBestStreak] = err
	}
	if r.CurrentStreak, err = CurrentStreak(records, clock, cfg.StreakCutoff); err != nil {
		r.Errs[StatCurrentStreak] = err
	}
	if r.LastSevenDays, err = VertLastSevenDays(records, clock); err != nil {
		r.Errs[StatLastSevenDays] = err
	}
	if r.SinceMonday, err = VertSinceMonday(records, clock); err != nil {
		r.Errs[StatSinceMonday] = err
	}
	return r
}

func withDefaults(cfg model.StatsConfig) model.StatsConfig {
	if cfg.LapLift == "" {
		cfg.LapLift = DefaultLapLift
	}
	if cfg.StreakCutoff <= 0 {
		cfg.StreakCutoff = DefaultStreakCutoff
	}
	return cfg
}

type zonedClock struct {
	clock Clock
	loc   *time.Location
}

func (c zonedClock) Now() time.Time {
	return c.clock.Now().In(c.loc)
}
