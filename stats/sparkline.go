package stats

import "fmt"

// Sparkline geometry, fixed to match the analytics panel rendering.
const (
	SparklineWidth  = 160
	SparklineHeight = 40
	sparklinePad    = 4
)

// SparklinePoint is a point on the completion sparkline, in pixel space.
type SparklinePoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// SparklinePoints maps the per-day completion buckets (index 0 = newest) to
// plot coordinates, oldest day at the left. Values scale against the window
// maximum, floored at 1 so an all-zero week draws a flat baseline rather
// than dividing by zero.
func SparklinePoints(completedPast7 [7]int) []SparklinePoint {
	values := make([]int, len(completedPast7))
	for i, v := range completedPast7 {
		values[len(values)-1-i] = v
	}

	maxValue := 1
	for _, v := range values {
		if v > maxValue {
			maxValue = v
		}
	}

	stepX := float64(SparklineWidth-sparklinePad*2) / float64(len(values)-1)
	points := make([]SparklinePoint, len(values))
	for i, v := range values {
		points[i] = SparklinePoint{
			X: sparklinePad + float64(i)*stepX,
			Y: sparklinePad + float64(SparklineHeight-sparklinePad*2)*(1-float64(v)/float64(maxValue)),
		}
	}
	return points
}

// SparklinePath renders the points as an SVG path expression.
func SparklinePath(points []SparklinePoint) string {
	path := ""
	for i, p := range points {
		cmd := "L"
		if i == 0 {
			cmd = "M"
		}
		if i > 0 {
			path += " "
		}
		path += fmt.Sprintf("%s %g,%g", cmd, p.X, p.Y)
	}
	return path
}
