// Package model defines shared data structures.
package model

import "time"

// Ride is a single lift ascent.
type Ride struct {
	Lift       string `json:"lift"`
	Time       string `json:"time"` // HH:MM:SS, only meaningful within its day
	Vert       int    `json:"vert"`
	IsSnowBird bool   `json:"isSnowBird"`
}

// DayRecord holds one calendar day of lift rides.
// Rides are in chronological order.
type DayRecord struct {
	Date      string `json:"date"` // YYYY-MM-DD, no zone attached
	TotalVert int    `json:"totalVert"`
	Rides     []Ride `json:"rides"`
}

// BiggestDay is the day with the most vertical feet.
type BiggestDay struct {
	Date string
	Vert int
}

// SubsetStats summarizes rides that belong to a tracked subset of lifts.
type SubsetStats struct {
	Laps int
	Vert int
}

// Lap is the fastest back-to-back lap on a lift.
type Lap struct {
	Seconds int
	Time    string
	Date    string
}

// LiftCount is a ride count for one lift.
type LiftCount struct {
	Lift  string
	Rides int
}

// DayVert is the vertical total for one day.
type DayVert struct {
	Date string
	Vert int
}

// StatsConfig defines options for stats output.
type StatsConfig struct {
	Season       string // YYYY-MM-DD; empty means all stored days
	LapLift      string
	StreakCutoff time.Duration
	Location     *time.Location
}

// ImportRecord is one entry of the import log.
type ImportRecord struct {
	ID         string
	Source     string
	ImportedAt time.Time
	Days       int
}
