package quantity

type averageable[Q any] interface {
	Add(Q) Q
	divide(int) Q
}

// Mean returns the arithmetic mean of xs, or the zero quantity when xs is empty.
// The sum is divided exactly rather than scaled by 1/len(xs).
func Mean[Q averageable[Q]](xs []Q) Q {
	var sum Q
	if len(xs) == 0 {
		return sum
	}
	for _, x := range xs {
		sum = sum.Add(x)
	}
	return sum.divide(len(xs))
}
