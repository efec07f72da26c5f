// Package ingest decodes and validates day records before they reach the store.
package ingest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/verte-zerg/liftstats/internal/lifts"
	"github.com/verte-zerg/liftstats/internal/model"
	"github.com/verte-zerg/liftstats/internal/stats"
)

// ErrDuplicateDate is returned when two records share a date.
var ErrDuplicateDate = errors.New("duplicate date")

// ErrNegativeVert is returned for a negative vertical value.
var ErrNegativeVert = errors.New("negative vert")

// LoadFile decodes day records from a JSON file.
func LoadFile(path string) ([]model.DayRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			// Best-effort close of a read-only file.
			_ = cerr
		}
	}()
	return Decode(f)
}

// Decode reads a JSON array of day records.
func Decode(r io.Reader) ([]model.DayRecord, error) {
	var records []model.DayRecord
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode day records: %w", err)
	}
	return records, nil
}

// Validate checks record shape: dates, ride times, vert and unique dates.
func Validate(records []model.DayRecord) error {
	seen := make(map[string]struct{}, len(records))
	var errs []error
	for i, day := range records {
		if _, err := time.Parse("2006-01-02", day.Date); err != nil {
			errs = append(errs, fmt.Errorf("record %d: %w %q", i, stats.ErrMalformedDate, day.Date))
			continue
		}
		if _, ok := seen[day.Date]; ok {
			errs = append(errs, fmt.Errorf("record %d: %w %s", i, ErrDuplicateDate, day.Date))
		}
		seen[day.Date] = struct{}{}
		if day.TotalVert < 0 {
			errs = append(errs, fmt.Errorf("day %s: %w %d", day.Date, ErrNegativeVert, day.TotalVert))
		}
		for j, ride := range day.Rides {
			if _, err := stats.ParseRideTime(ride.Time); err != nil {
				errs = append(errs, fmt.Errorf("day %s ride %d: %w", day.Date, j, err))
			}
			if ride.Vert < 0 {
				errs = append(errs, fmt.Errorf("day %s ride %d: %w %d", day.Date, j, ErrNegativeVert, ride.Vert))
			}
		}
	}
	return errors.Join(errs...)
}

// Normalize flags Snowbird rides and fills their vert when the source left
// it empty. Records are modified in place.
func Normalize(records []model.DayRecord) {
	for i := range records {
		for j := range records[i].Rides {
			ride := &records[i].Rides[j]
			if !lifts.IsSnowBirdLift(ride.Lift) {
				continue
			}
			ride.IsSnowBird = true
			if ride.Vert == 0 {
				ride.Vert = lifts.SnowBirdVert(ride.Lift)
			}
		}
	}
}

// Merge combines previously stored days with freshly loaded ones. A fresh
// record replaces a prior record with the same date. The result is oldest first.
func Merge(prior, fresh []model.DayRecord) []model.DayRecord {
	byDate := make(map[string]model.DayRecord, len(prior)+len(fresh))
	for _, day := range prior {
		byDate[day.Date] = day
	}
	for _, day := range fresh {
		byDate[day.Date] = day
	}
	out := make([]model.DayRecord, 0, len(byDate))
	for _, day := range byDate {
		out = append(out, day)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date < out[j].Date
	})
	return out
}
