package stats

import (
	"errors"
	"testing"

	"github.com/verte-zerg/liftstats/internal/model"
)

func TestRidesPerLift(t *testing.T) {
	records := []model.DayRecord{
		{Date: "2024-01-01", Rides: []model.Ride{{Lift: "A"}, {Lift: "B"}, {Lift: "A"}}},
		{Date: "2024-01-02", Rides: []model.Ride{{Lift: "A"}}},
		{Date: "2024-01-03"},
	}
	got := RidesPerLift(records)
	if len(got) != 2 || got["A"] != 3 || got["B"] != 1 {
		t.Fatalf("unexpected counts: %v", got)
	}
}

func TestBiggestDay(t *testing.T) {
	records := []model.DayRecord{
		{Date: "2024-01-03", TotalVert: 15000},
		{Date: "2024-01-01", TotalVert: 15000},
		{Date: "2024-01-02", TotalVert: 9000},
	}
	got, err := BiggestDay(records)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Vert != 15000 || got.Date != "2024-01-01" {
		t.Fatalf("unexpected biggest day: %+v", got)
	}
	if records[0].Date != "2024-01-03" {
		t.Fatalf("input reordered")
	}
	if _, err := BiggestDay(nil); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
}

func TestMeanVert(t *testing.T) {
	records := []model.DayRecord{{TotalVert: 10}, {TotalVert: 15}}
	got, err := MeanVert(records)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 12 {
		t.Fatalf("expected floor mean 12, got %d", got)
	}
	if _, err := MeanVert(nil); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
}

func TestMedianVert(t *testing.T) {
	tests := []struct {
		name  string
		verts []int
		want  int
	}{
		{name: "single", verts: []int{700}, want: 700},
		{name: "odd", verts: []int{1, 5, 3}, want: 3},
		{name: "even takes lower middle", verts: []int{100, 400, 200, 300}, want: 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := make([]model.DayRecord, len(tt.verts))
			for i, v := range tt.verts {
				records[i] = model.DayRecord{TotalVert: v}
			}
			got, err := MedianVert(records)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, got)
			}
		})
	}
	if _, err := MedianVert(nil); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
}

func TestSnowBirdStats(t *testing.T) {
	records := []model.DayRecord{
		{Date: "2024-01-01", Rides: []model.Ride{
			{Lift: "Tram", Vert: 2855, IsSnowBird: true},
			{Lift: "Collins", Vert: 1800},
		}},
		{Date: "2024-01-02", Rides: []model.Ride{
			{Lift: "Mineral Basin", Vert: 1420, IsSnowBird: true},
		}},
	}
	got := SnowBirdStats(records)
	if got.Laps != 2 || got.Vert != 4275 {
		t.Fatalf("unexpected snowbird stats: %+v", got)
	}
	none := SubsetStats(records, func(model.Ride) bool { return false })
	if none.Laps != 0 || none.Vert != 0 {
		t.Fatalf("expected empty subset, got %+v", none)
	}
}

func TestFastestBackToBackLap(t *testing.T) {
	records := []model.DayRecord{
		{Date: "2024-01-05", Rides: []model.Ride{
			{Lift: "Collins", Time: "09:00:00"},
			{Lift: "Collins", Time: "09:04:30"},
		}},
		{Date: "2024-01-06", Rides: []model.Ride{
			{Lift: "Collins", Time: "10:00:00"},
			{Lift: "Wildcat", Time: "10:03:00"},
			{Lift: "Collins", Time: "10:05:00"},
			{Lift: "Collins", Time: "10:12:00"},
		}},
		{Date: "2024-01-07"},
	}
	lap, ok, err := FastestBackToBackLap(records, "Collins")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("expected a lap")
	}
	if lap.Time != "4 minutes and 30 seconds" || lap.Date != "2024-01-05" || lap.Seconds != 270 {
		t.Fatalf("unexpected lap: %+v", lap)
	}
}

func TestFastestBackToBackLapNoPair(t *testing.T) {
	records := []model.DayRecord{
		{Date: "2024-01-05", Rides: []model.Ride{
			{Lift: "Collins", Time: "09:00:00"},
			{Lift: "Wildcat", Time: "09:10:00"},
			{Lift: "Collins", Time: "09:20:00"},
		}},
		{Date: "2024-01-06", Rides: []model.Ride{
			{Lift: "Collins", Time: "10:00:00"},
			{Lift: "Collins", Time: "10:00:00"},
		}},
	}
	_, ok, err := FastestBackToBackLap(records, "Collins")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("expected no qualifying lap")
	}
}

func TestFastestBackToBackLapMalformedTime(t *testing.T) {
	records := []model.DayRecord{{Date: "2024-01-05", Rides: []model.Ride{
		{Lift: "Collins", Time: "09:00"},
		{Lift: "Collins", Time: "09:04:30"},
	}}}
	if _, _, err := FastestBackToBackLap(records, "Collins"); !errors.Is(err, ErrMalformedTime) {
		t.Fatalf("expected ErrMalformedTime, got %v", err)
	}
}

func TestFormatLapTime(t *testing.T) {
	if got := FormatLapTime(605); got != "10 minutes and 5 seconds" {
		t.Fatalf("unexpected format: %s", got)
	}
}
