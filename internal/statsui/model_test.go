package statsui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/liftstats/internal/model"
	"github.com/verte-zerg/liftstats/internal/stats"
	"github.com/verte-zerg/liftstats/internal/store"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "liftstats.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	records := []model.DayRecord{
		{Date: "2024-01-04", TotalVert: 12000, Rides: []model.Ride{
			{Lift: "Collins", Time: "09:00:00"},
			{Lift: "Collins", Time: "09:06:00"},
			{Lift: "Wildcat", Time: "10:00:00"},
			{Lift: "Wildcat", Time: "10:05:00"},
		}},
		{Date: "2024-01-05", TotalVert: 8000, Rides: []model.Ride{{Lift: "Tram", Time: "11:00:00", Vert: 2855, IsSnowBird: true}}},
	}
	if _, err := st.UpsertDays(context.Background(), records); err != nil {
		t.Fatalf("insert days: %v", err)
	}
	clock := stats.FixedClock(time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC))
	m := NewModel(st, model.StatsConfig{}, clock)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestViewShowsOverview(t *testing.T) {
	m := newTestModel(t)
	view := m.View()
	for _, want := range []string{"Overview", "Lifts", "Days", "lap-lift=Collins", "Season vert", "20,000 ft"} {
		if !strings.Contains(view, want) {
			t.Fatalf("missing %q in view", want)
		}
	}
	if got := len(strings.Split(view, "\n")); got != 40 {
		t.Fatalf("expected view to fill 40 lines, got %d", got)
	}
}

func TestLapLiftInput(t *testing.T) {
	m := newTestModel(t)
	if m.report.FastestLap.Seconds != 360 {
		t.Fatalf("expected Collins lap of 360s, got %+v", m.report.FastestLap)
	}

	m.Update(keyRunes("/"))
	if !m.lapMode {
		t.Fatalf("expected lap input to open")
	}
	m.lapInput.SetValue("")
	m.Update(keyRunes("Wildcat"))
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.lapMode {
		t.Fatalf("expected lap input to close")
	}
	if m.cfg.LapLift != "Wildcat" || m.report.FastestLap.Seconds != 300 {
		t.Fatalf("expected Wildcat lap of 300s, got %q %+v", m.cfg.LapLift, m.report.FastestLap)
	}
}

func TestLapLiftInputRejectsUnknownLift(t *testing.T) {
	m := newTestModel(t)
	m.Update(keyRunes("/"))
	m.lapInput.SetValue("Baldy")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !m.lapMode || m.lapError == "" {
		t.Fatalf("expected an error for an unridden lift")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.lapMode || m.report.Config.LapLift != stats.DefaultLapLift {
		t.Fatalf("escape should keep the previous lift")
	}
}

func TestMoveTabWraps(t *testing.T) {
	m := newTestModel(t)
	m.moveTab(-1)
	if m.activeTab != tabDays {
		t.Fatalf("expected wrap to last tab, got %d", m.activeTab)
	}
	if !strings.Contains(m.View(), "2024-01-05") {
		t.Fatalf("days tab should list stored days")
	}
	m.moveTab(1)
	if m.activeTab != tabOverview {
		t.Fatalf("expected wrap to first tab, got %d", m.activeTab)
	}
}

func TestTruncateLine(t *testing.T) {
	if got := truncateLine("Settings: season=all", 10); got != "Setting..." {
		t.Fatalf("unexpected truncation: %q", got)
	}
	if got := truncateLine("short", 10); got != "short" {
		t.Fatalf("unexpected truncation: %q", got)
	}
}
