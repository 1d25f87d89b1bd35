// Package mathx provides small integer helpers missing from the standard library.
package mathx

// GCD returns the greatest common divisor of a and b, which is always non-negative
func GCD(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// Abs64 returns the absolute value of x
func Abs64(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}

// CeilDiv returns ceil(a/b) for positive integers
func CeilDiv(a, b uint64) uint64 {
	return (a + b - 1) / b
}
