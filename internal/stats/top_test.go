package stats

import (
	"testing"

	"github.com/verte-zerg/liftstats/internal/model"
)

func TestTopLifts(t *testing.T) {
	records := []model.DayRecord{
		{Date: "2024-01-01", Rides: []model.Ride{{Lift: "Wildcat"}, {Lift: "Collins"}, {Lift: "Collins"}}},
		{Date: "2024-01-02", Rides: []model.Ride{{Lift: "Albion"}, {Lift: "Wildcat"}, {Lift: "Sugarloaf"}}},
	}
	top := TopLifts(LiftCounts(records), 2)
	if len(top) != 2 {
		t.Fatalf("expected 2 lifts, got %d", len(top))
	}
	if top[0] != "Collins" || top[1] != "Wildcat" {
		t.Fatalf("unexpected order: %v", top)
	}
	if got := TopLifts(LiftCounts(records), 10); len(got) != 4 {
		t.Fatalf("expected all 4 lifts, got %v", got)
	}
	if got := TopLifts(nil, 3); got != nil {
		t.Fatalf("expected nil for no lifts, got %v", got)
	}
}
