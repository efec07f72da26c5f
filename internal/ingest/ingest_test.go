package ingest

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/verte-zerg/liftstats/internal/model"
	"github.com/verte-zerg/liftstats/internal/stats"
)

const sampleJSON = `[
  {"date": "2024-01-02", "totalVert": 12000, "rides": [
    {"lift": "Collins", "time": "09:00:00", "vert": 1800, "isSnowBird": false},
    {"lift": "Tram", "time": "11:00:00", "vert": 0, "isSnowBird": false}
  ]},
  {"date": "2024-01-01", "totalVert": 5000, "rides": []}
]`

func TestDecode(t *testing.T) {
	records, err := Decode(strings.NewReader(sampleJSON))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].TotalVert != 12000 || len(records[0].Rides) != 2 {
		t.Fatalf("unexpected first record: %+v", records[0])
	}
	if records[0].Rides[1].Lift != "Tram" {
		t.Fatalf("unexpected ride: %+v", records[0].Rides[1])
	}
}

func TestDecodeRejectsUnknownFields(t *testing.T) {
	_, err := Decode(strings.NewReader(`[{"date": "2024-01-01", "vertical": 3}]`))
	if err == nil {
		t.Fatalf("expected error for unknown field")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rides.json")
	if err := os.WriteFile(path, []byte(sampleJSON), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	records, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
}

func TestValidate(t *testing.T) {
	good := []model.DayRecord{
		{Date: "2024-01-01", TotalVert: 10, Rides: []model.Ride{{Lift: "Collins", Time: "09:00:00", Vert: 10}}},
		{Date: "2024-01-02"},
	}
	if err := Validate(good); err != nil {
		t.Fatalf("expected valid records, got %v", err)
	}

	tests := []struct {
		name    string
		records []model.DayRecord
		want    error
	}{
		{
			name:    "malformed date",
			records: []model.DayRecord{{Date: "01/02/2024"}},
			want:    stats.ErrMalformedDate,
		},
		{
			name:    "duplicate date",
			records: []model.DayRecord{{Date: "2024-01-01"}, {Date: "2024-01-01"}},
			want:    ErrDuplicateDate,
		},
		{
			name:    "malformed time",
			records: []model.DayRecord{{Date: "2024-01-01", Rides: []model.Ride{{Lift: "Collins", Time: "9am"}}}},
			want:    stats.ErrMalformedTime,
		},
		{
			name:    "negative vert",
			records: []model.DayRecord{{Date: "2024-01-01", TotalVert: -5}},
			want:    ErrNegativeVert,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.records)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestNormalizeFlagsSnowBird(t *testing.T) {
	records := []model.DayRecord{{Date: "2024-01-01", Rides: []model.Ride{
		{Lift: "Collins", Time: "09:00:00", Vert: 1800},
		{Lift: "Tram", Time: "10:00:00"},
		{Lift: "Mineral Basin", Time: "11:00:00", Vert: 1000},
	}}}
	Normalize(records)
	rides := records[0].Rides
	if rides[0].IsSnowBird {
		t.Fatalf("Collins should not be flagged")
	}
	if !rides[1].IsSnowBird || rides[1].Vert != 2855 {
		t.Fatalf("unexpected tram ride: %+v", rides[1])
	}
	if !rides[2].IsSnowBird || rides[2].Vert != 1000 {
		t.Fatalf("existing vert should be kept: %+v", rides[2])
	}
}

func TestMerge(t *testing.T) {
	prior := []model.DayRecord{
		{Date: "2024-01-03", TotalVert: 1},
		{Date: "2024-01-01", TotalVert: 2},
	}
	fresh := []model.DayRecord{
		{Date: "2024-01-03", TotalVert: 30},
		{Date: "2024-01-02", TotalVert: 20},
	}
	merged := Merge(prior, fresh)
	if len(merged) != 3 {
		t.Fatalf("expected 3 days, got %d", len(merged))
	}
	wantDates := []string{"2024-01-01", "2024-01-02", "2024-01-03"}
	for i, d := range wantDates {
		if merged[i].Date != d {
			t.Fatalf("index %d: expected %s, got %s", i, d, merged[i].Date)
		}
	}
	if merged[2].TotalVert != 30 {
		t.Fatalf("fresh record should win, got %d", merged[2].TotalVert)
	}
}
