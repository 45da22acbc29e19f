// Package bezier evaluates and tessellates bicubic Bézier patches.
package bezier

import "math"

// Degree is the polynomial degree of a bicubic patch in each direction.
const Degree = 3

// Binomial returns C(n, k) computed as the running product
// Π_{j=1..k} (n-j+1)/j. It returns 0 for k outside [0, n].
func Binomial(n, k int) float64 {
	if k < 0 || k > n {
		return 0
	}
	c := 1.0
	for j := 1; j <= k; j++ {
		c *= float64(n-j+1) / float64(j)
	}
	return c
}

// Bernstein returns the Bernstein basis polynomial B_{i,n}(t) =
// C(n,i) t^i (1-t)^(n-i).
func Bernstein(i, n int, t float64) float64 {
	return Binomial(n, i) * math.Pow(t, float64(i)) * math.Pow(1-t, float64(n-i))
}
