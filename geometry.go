package server

import "math"

func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// distance returns the euclidean distance between two points.
func distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

// shortestAngleDiff returns the signed angular difference from angle1 to
// angle2, normalized to (-π, π].
func shortestAngleDiff(angle1, angle2 float64) float64 {
	diff := math.Mod(angle2-angle1, 2*math.Pi)
	if diff > math.Pi {
		diff -= 2 * math.Pi
	} else if diff <= -math.Pi {
		diff += 2 * math.Pi
	}
	return diff
}
