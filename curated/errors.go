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

package curated

import (
	"fmt"
	"strings"
)

// debugError is the one error type the debug core raises. It stores the
// formatting pattern it was created with rather than the formatted
// string, so that callers can identify an error by pattern (see Is and
// Has) without parsing message text. An error may additionally be
// tagged with a Category naming the class of fault it represents; see
// Errorc in categories.go.
type debugError struct {
	pattern string
	values  []interface{}

	category Category
	tagged   bool
}

// Errorf creates a new error from a formatting pattern and its
// placeholder values. The first argument is named "pattern" rather than
// "format" because it doubles as the error's identity: Is() and Has()
// compare patterns, not formatted strings.
func Errorf(pattern string, values ...interface{}) error {
	// formatting is deferred to Error(); only the arguments are stored
	// here so the pattern stays comparable
	return debugError{
		pattern: pattern,
		values:  values,
	}
}

// Error returns the normalised error message. Wrapping an error in a
// pattern that repeats the head of the wrapped message would otherwise
// produce stuttering chains ("no free slot: no free slot: ..."), so
// when the first two ": "-separated parts are identical the first is
// dropped. Only that leading pair is compared; a duplicate further along
// the chain is kept. Letter-case and white space are left alone.
//
// Implements the error interface.
func (er debugError) Error() string {
	s := fmt.Errorf(er.pattern, er.values...).Error()

	p := strings.SplitN(s, ": ", 3)
	if len(p) > 1 && p[0] == p[1] {
		return strings.Join(p[1:], ": ")
	}

	return strings.Join(p, ": ")
}

// IsAny checks if the error was raised by this package.
func IsAny(err error) bool {
	if err == nil {
		return false
	}

	_, ok := err.(debugError)
	return ok
}

// Is checks if the error was created by this package with the given
// pattern. Only the outermost error is considered; use Has to search
// the whole chain.
func Is(err error, pattern string) bool {
	if err == nil {
		return false
	}

	if er, ok := err.(debugError); ok {
		return er.pattern == pattern
	}

	return false
}

// Has checks if the given pattern occurs anywhere in the error chain:
// either the error itself or any error among its placeholder values,
// recursively.
func Has(err error, pattern string) bool {
	er, ok := err.(debugError)
	if !ok {
		return false
	}

	if er.pattern == pattern {
		return true
	}

	for i := range er.values {
		if v, ok := er.values[i].(debugError); ok {
			if Has(v, pattern) {
				return true
			}
		}
	}

	return false
}
