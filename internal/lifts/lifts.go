// Package lifts holds static data about known lifts.
package lifts

// UnknownBirdLift is the display name for a lift missing from the Snowbird table.
const UnknownBirdLift = "UNKNOWN BIRD LIFT"

// DefaultColor is used for lifts without an assigned color.
const DefaultColor = "#636363"

type birdLift struct {
	name string
	vert int
}

// Snowbird lifts keyed by the name the ride log reports. Vert is top
// elevation minus base elevation in feet.
var snowBirdLifts = map[string]birdLift{
	"Mineral Basin": {name: "Mineral Basin", vert: 10949 - 9529},
	"Gad Zoom Quad": {name: "Gad Zoom", vert: 9702 - 7886},
	"Peruvian Quad": {name: "Peruvian", vert: 10735 - 8113},
	"Tram":          {name: "Tram", vert: 10953 - 8098},
}

var liftColors = map[string]string{
	"Collins":       "#0E1FE9",
	"Wildcat":       "#F31705",
	"Sugarloaf":     "#61C925",
	"Supreme":       "#1D1D1D",
	"Sunnyside":     "#E9F809",
	"Albion":        "#09F8DF",
	"Collins Angle": "#F809C9",
}

// IsSnowBirdLift reports whether the lift belongs to Snowbird.
func IsSnowBirdLift(lift string) bool {
	_, ok := snowBirdLifts[lift]
	return ok
}

// SnowBirdLiftName returns the short display name of a Snowbird lift.
func SnowBirdLiftName(lift string) string {
	if l, ok := snowBirdLifts[lift]; ok {
		return l.name
	}
	return UnknownBirdLift
}

// SnowBirdVert returns the vertical feet of one ride on a Snowbird lift, or 0.
func SnowBirdVert(lift string) int {
	if l, ok := snowBirdLifts[lift]; ok {
		return l.vert
	}
	return 0
}

// Color returns the hex display color for a lift.
func Color(lift string) string {
	if c, ok := liftColors[lift]; ok {
		return c
	}
	return DefaultColor
}
