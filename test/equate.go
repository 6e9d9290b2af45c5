// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher2600.  If not, see <https://www.gnu.org/licenses/>.

// Package test collects small helpers shared by the test files throughout
// this module. None of it is meant to be imported outside of _test.go
// files.
package test

import (
	"math"
	"reflect"
	"testing"
)

// Equate fails the test if got and want are not deeply equal.
func Equate(t *testing.T, got, want interface{}) {
	t.Helper()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("unexpected value: got %v, wanted %v", got, want)
	}
}

func isSuccess(v interface{}) bool {
	if v == nil {
		return true
	}
	switch e := v.(type) {
	case bool:
		return e
	case error:
		return e == nil
	default:
		return reflect.ValueOf(v).IsZero()
	}
}

// ExpectedSuccess fails the test unless v represents success: a true bool, a
// nil error, or a zero value of any other comparable type. Returns whether
// the expectation held, so callers can guard follow-on assertions that only
// make sense when the prior call succeeded:
//
//	if test.ExpectedSuccess(t, err) {
//		// safe to inspect the result now
//	}
func ExpectedSuccess(t *testing.T, v interface{}) bool {
	t.Helper()
	ok := isSuccess(v)
	if !ok {
		t.Errorf("expected success, got %v", v)
	}
	return ok
}

// ExpectedFailure fails the test unless v represents failure: a false bool,
// a non-nil error, or a non-zero value of any other comparable type.
func ExpectedFailure(t *testing.T, v interface{}) bool {
	t.Helper()
	ok := !isSuccess(v)
	if !ok {
		t.Errorf("expected failure, got %v", v)
	}
	return ok
}

// ExpectEquality fails the test if got and want are not equal.
func ExpectEquality(t *testing.T, got, want interface{}) {
	t.Helper()
	if got != want {
		t.Errorf("unexpected value: got %v, wanted %v", got, want)
	}
}

// ExpectInequality fails the test if got and want are equal.
func ExpectInequality(t *testing.T, got, want interface{}) {
	t.Helper()
	if got == want {
		t.Errorf("unexpected equality: got %v, same as %v", got, want)
	}
}

// ExpectApproximate fails the test if got and want differ by more than
// tolerance, taken as a fraction of want: 0.1 allows got to be up to 10%
// of want away from it in either direction.
func ExpectApproximate(t *testing.T, got, want, tolerance float64) {
	t.Helper()
	if math.Abs(got-want) > math.Abs(want*tolerance) {
		t.Errorf("unexpected value: got %v, wanted %v (tolerance %v)", got, want, tolerance)
	}
}
