// Copyright (c) 2024-2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package settings

import (
	"cmp"
	"fmt"
)

// OutOfRangeError indicates that a Value was out of its acceptable
// [Min, Max] range or that the range itself was empty. Nil boundaries
// are not enforced.
type OutOfRangeError[T cmp.Ordered] struct {
	Value        *T   // The actual out-of-range value
	Min, Max     *T   // The boundaries which were checked
	LessThanMin  bool // true if and only if min boundary is violated
	InvalidRange bool // true if and only if min is greater than max
}

// Error implements error interface and reports the violated boundary
// along with the rejected value.
func (e *OutOfRangeError[T]) Error() string {
	switch {
	case e.InvalidRange:
		return fmt.Sprintf("min (%v) is greater than max (%v)", *e.Min, *e.Max)
	case e.LessThanMin:
		return fmt.Sprintf("value (%v) is less than min (%v)", *e.Value, *e.Min)
	default:
		return fmt.Sprintf(
			"value (%v) is greater than max (%v)", *e.Value, *e.Max,
		)
	}
}

// VerifyRange verifies the given value ensuring that it is either nil
// or is within the provided minb/maxb boundary values, if the boundary
// values were given as non-nil values themselves. In case of a wrong
// value, in addition to the returned error, the value itself will be
// updated in order to take the minb or maxb value and fall in the
// acceptable range of values.
func VerifyRange[T cmp.Ordered](
	value **T, minb, maxb *T,
) *OutOfRangeError[T] {
	if minb != nil && maxb != nil && *minb > *maxb {
		return &OutOfRangeError[T]{Min: minb, Max: maxb, InvalidRange: true}
	}
	if *value == nil {
		return nil
	}
	v := **value
	switch {
	case minb != nil && v < *minb:
		**value = *minb
		return &OutOfRangeError[T]{
			Value: &v, Min: minb, Max: maxb, LessThanMin: true,
		}
	case maxb != nil && v > *maxb:
		**value = *maxb
		return &OutOfRangeError[T]{Value: &v, Min: minb, Max: maxb}
	}
	return nil
}
