package dynamo

// Linspace returns num evenly spaced samples over [start, stop].
// Both endpoints are included; num == 1 yields [start].
func Linspace(start, stop float64, num int) []float64 {
	if num <= 0 {
		return []float64{}
	}
	if num == 1 {
		return []float64{start}
	}
	out := make([]float64, num)
	step := (stop - start) / float64(num-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	// exact endpoint, no accumulated rounding
	out[num-1] = stop
	return out
}

func checkGrid(times []float64) error {
	if len(times) == 0 {
		return ErrEmptyGrid
	}
	for i := 1; i < len(times); i++ {
		if !(times[i] > times[i-1]) {
			return ErrUnorderedGrid
		}
	}
	return nil
}
