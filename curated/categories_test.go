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

package curated_test

import (
	"errors"
	"testing"

	"github.com/jetsetilly/m68kdbgcore/curated"
	"github.com/jetsetilly/m68kdbgcore/test"
)

func TestCategoryOf(t *testing.T) {
	e := curated.Errorc(curated.CapacityExhausted, "no free watchpoint slot")
	c, ok := curated.CategoryOf(e)
	test.ExpectedSuccess(t, ok)
	test.ExpectEquality(t, c, curated.CapacityExhausted)
	test.ExpectEquality(t, c.String(), "capacity exhausted")

	_, ok = curated.CategoryOf(errors.New("plain error"))
	test.ExpectedFailure(t, ok)
}
