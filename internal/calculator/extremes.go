package calculator

import "errors"

// MinNet scans the given net positioning values and returns the minimum.
func MinNet(nets []int64) (int64, error) {
	if len(nets) == 0 {
		return 0, errors.New("no net values provided")
	}
	low := nets[0]
	for _, n := range nets[1:] {
		if n < low {
			low = n
		}
	}
	return low, nil
}

// MaxNet scans the given net positioning values and returns the maximum.
func MaxNet(nets []int64) (int64, error) {
	if len(nets) == 0 {
		return 0, errors.New("no net values provided")
	}
	high := nets[0]
	for _, n := range nets[1:] {
		if n > high {
			high = n
		}
	}
	return high, nil
}
