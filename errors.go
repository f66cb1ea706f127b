package hdbscan

import "github.com/cockroachdb/errors"

// Sentinel errors returned by this package. Returned errors wrap them with
// the specific detail, so match them with errors.Is.
var (
	// ErrInvalidConfig marks a Config that failed validation.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrSparseUnsupported is returned when the sparse distance cache is
	// requested for a source whose metric does not declare a most common
	// distance value.
	ErrSparseUnsupported = errors.New("sparse cache unsupported")

	// ErrInvalidDistance is returned when precomputation observes a negative
	// or NaN distance.
	ErrInvalidDistance = errors.New("invalid distance")

	// ErrInvalidInput marks data whose shape cannot be clustered, such as
	// vectors of different lengths or a non-square distance matrix.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidConstraint marks a constraint that references a point outside
	// the data set.
	ErrInvalidConstraint = errors.New("invalid constraint")
)

// wrapf wraps sentinel with a formatted detail message.
func wrapf(sentinel error, format string, args ...interface{}) error {
	return errors.Wrapf(sentinel, format, args...)
}
