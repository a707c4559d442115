package quantity

func compareRaw(a, b, tol Raw) int {
	d := subRaw(a, b)
	switch {
	case d > tol:
		return 1
	case d < -tol:
		return -1
	}
	return 0
}
