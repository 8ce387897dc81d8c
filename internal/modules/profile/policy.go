package profile

import (
	"math"

	"github.com/mtahawi/esg-navigator/internal/domain"
)

// AcceptedControversyCount maps the 1-5 controversy survey answer to the
// controversy count the investor accepts. Answers of 1 or 2 mean the investor
// does not care, so no filtering applies (+Inf). The mapping is a closed,
// exhaustive enumeration: a new survey scale extends this table, it does not
// get special-cased at call sites.
func AcceptedControversyCount(threshold int) (float64, error) {
	switch threshold {
	case 1, 2:
		return math.Inf(1), nil
	case 3:
		return 3, nil
	case 4:
		return 2, nil
	case 5:
		return 1, nil
	default:
		return 0, domain.NewInvalidInput("unexpected survey value %d for calculating accepted controversies count", threshold)
	}
}
