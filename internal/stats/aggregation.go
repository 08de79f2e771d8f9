package stats

import "math"

// Mean calculates the arithmetic mean of a slice of float64 values
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return Sum(values) / float64(len(values))
}

// Min returns the minimum value
func Min(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	min := values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

// Max returns the maximum value
func Max(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	max := values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

// Sum returns the sum of all values
func Sum(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum
}

// Range returns the range (max - min)
func Range(values []float64) float64 {
	return Max(values) - Min(values)
}

// Summary holds min, max and mean of a sample
type Summary struct {
	Min  float64
	Max  float64
	Mean float64
}

// Summarize computes min, max and mean in one pass
func Summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}

	s := Summary{Min: values[0], Max: values[0]}
	var sum float64
	for _, v := range values {
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
		sum += v
	}
	s.Mean = sum / float64(len(values))
	return s
}

// Normalize maps values to [0, 1] using (v - min) / max(range, epsilon).
// When the range is not above epsilon every value maps to uniform.
func Normalize(values []float64, epsilon, uniform float64) []float64 {
	result := make([]float64, len(values))
	if len(values) == 0 {
		return result
	}

	min := Min(values)
	rangeVal := Max(values) - min

	if rangeVal <= epsilon {
		for i := range result {
			result[i] = uniform
		}
		return result
	}

	for i, v := range values {
		result[i] = clamp01((v - min) / math.Max(rangeVal, epsilon))
	}
	return result
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
