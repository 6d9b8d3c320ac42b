package cycle

import "math"

// CycleStats summarises the lengths of closed cycles. Count == 0 is the
// valid "no data yet" value, not an error.
type CycleStats struct {
	Count         int     `json:"count"`
	AverageLength float64 `json:"averageLength"`
	StdDev        float64 `json:"stdDev"`
	MinLength     int     `json:"minLength"`
	MaxLength     int     `json:"maxLength"`
}

// Stats computes CycleStats over the closed cycles in cycles.
func Stats(cycles []Cycle) CycleStats {
	lengths := closedLengths(cycles)
	if len(lengths) == 0 {
		return CycleStats{}
	}
	mean, sd := meanStdDev(intsToFloats(lengths))
	s := CycleStats{
		Count:         len(lengths),
		AverageLength: mean,
		StdDev:        sd,
		MinLength:     lengths[0],
		MaxLength:     lengths[0],
	}
	for _, l := range lengths[1:] {
		s.MinLength = min(s.MinLength, l)
		s.MaxLength = max(s.MaxLength, l)
	}
	return s
}

// meanStdDev returns the arithmetic mean and the sample standard
// deviation (0 for fewer than two values).
func meanStdDev(vs []float64) (float64, float64) {
	if len(vs) == 0 {
		return 0, 0
	}
	var sum float64
	for _, v := range vs {
		sum += v
	}
	mean := sum / float64(len(vs))
	if len(vs) < 2 {
		return mean, 0
	}
	var sq float64
	for _, v := range vs {
		sq += (v - mean) * (v - mean)
	}
	return mean, math.Sqrt(sq / float64(len(vs)-1))
}

func intsToFloats(in []int) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = float64(v)
	}
	return out
}
