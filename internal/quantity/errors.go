package quantity

import (
	"errors"
	"fmt"
	"math"
)

// ErrDomain is matched by every error produced from a value a quantity
// cannot hold.
var ErrDomain = errors.New("quantity: value out of domain")

// DomainError reports the quantity kind, the offending value and why it was
// refused.
type DomainError struct {
	Kind   string
	Value  float64
	Reason string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s value %s", e.Kind, e.Reason)
}

func (e *DomainError) Unwrap() error {
	return ErrDomain
}

const (
	reasonFinite     = "must be finite"
	reasonRange      = "out of range"
	reasonResolution = "below resolution"
)

// Real is the set of caller types accepted by the constructors. Untyped
// integer constants infer int, so integers are admitted alongside floats.
type Real interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func domain(kind string, v float64) error {
	return &DomainError{Kind: kind, Value: v, Reason: reasonFinite}
}

// admit encodes x for a quantity of the given kind. Values that are not
// finite or lie beyond the representable range are refused.
func admit(kind string, x float64) (Raw, error) {
	switch {
	case !finite(x):
		return 0, domain(kind, x)
	case !representable(x):
		return 0, &DomainError{Kind: kind, Value: x, Reason: reasonRange}
	}
	return encode(x), nil
}

// factor encodes a multiplier. On top of admit it refuses a nonzero k that
// encodes to zero.
func factor(kind string, k float64) (Raw, error) {
	r, err := admit(kind, k)
	if err != nil {
		return 0, err
	}
	if r == 0 && k != 0 {
		return 0, &DomainError{Kind: kind, Value: k, Reason: reasonResolution}
	}
	return r, nil
}
