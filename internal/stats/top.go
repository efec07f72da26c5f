package stats

import "github.com/verte-zerg/liftstats/internal/model"

// TopLifts returns the names of the n most ridden lifts.
func TopLifts(counts []model.LiftCount, n int) []string {
	if n <= 0 || len(counts) == 0 {
		return nil
	}
	if n > len(counts) {
		n = len(counts)
	}
	out := make([]string, 0, n)
	for _, c := range counts[:n] {
		out = append(out, c.Lift)
	}
	return out
}
