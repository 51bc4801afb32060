package calculator

import "errors"

// LinearSlope computes the least-squares slope of the given values over
// their index. Requires at least 2 values.
func LinearSlope(values []int64) (float64, error) {
	n := len(values)
	if n < 2 {
		return 0, errors.New("not enough data for slope calculation")
	}

	meanX := float64(n-1) / 2
	var meanY float64
	for _, v := range values {
		meanY += float64(v)
	}
	meanY /= float64(n)

	var num, den float64
	for i, v := range values {
		dx := float64(i) - meanX
		num += dx * (float64(v) - meanY)
		den += dx * dx
	}
	return num / den, nil
}

// TrendDirection returns the sign of the linear trend across the values:
// -1 falling, +1 rising, 0 flat or insufficient data.
func TrendDirection(values []int64) int {
	slope, err := LinearSlope(values)
	if err != nil {
		return 0
	}
	switch {
	case slope < 0:
		return -1
	case slope > 0:
		return 1
	default:
		return 0
	}
}
