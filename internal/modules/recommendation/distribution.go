package recommendation

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Distribution converts the signed optimizer weights into presentation
// weights: the absolute value of each proportion, normalized to sum to 1.
// Short positions therefore show up by magnitude, matching how the portfolio
// breakdown is displayed.
func Distribution(proportions []float64) []float64 {
	abs := make([]float64, len(proportions))
	for i, p := range proportions {
		abs[i] = math.Abs(p)
	}

	total := floats.Sum(abs)
	if total == 0 {
		return abs
	}

	floats.Scale(1/total, abs)
	return abs
}
