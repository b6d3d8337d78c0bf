package mathutil

// Linspace returns n evenly spaced samples over [start, stop], both ends
// included. Samples are start + i*step with the last one pinned to stop,
// so existing fixture sets regenerate bit for bit.
func Linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}
	step := (stop - start) / float64(n-1)
	for i := range out {
		// The explicit conversion stops the compiler fusing into an FMA.
		out[i] = float64(float64(i)*step) + start
	}
	out[n-1] = stop
	return out
}

// Float32s converts a float64 slice element-wise.
func Float32s(v []float64) []float32 {
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(x)
	}
	return out
}
