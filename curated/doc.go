// This file is part of timercore.
//
// timercore is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// timercore is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with timercore.  If not, see <https://www.gnu.org/licenses/>.

// Package curated creates errors that carry the pattern they were created
// with. Every package in timercore that can fail declares its error patterns
// as exported string constants, and callers test for them with Is() and
// Has() rather than by comparing error strings.
//
// For example, the snapshot package declares:
//
//	const ModuleNotFound = "snapshot: module %s not found"
//
// and a chip that cannot find its module in a snapshot returns:
//
//	return curated.Errorf(snapshot.ModuleNotFound, "VIA1")
//
// Is() answers whether the outermost pattern of an error matches. Has()
// looks through the whole chain of wrapped curated errors. A scenario step
// that fails to restore a snapshot wraps the snapshot error in its own
// pattern:
//
//	err := curated.Errorf(scenario.StepError, 7, restoreErr)
//
//	curated.Is(err, scenario.StepError)       // true
//	curated.Is(err, snapshot.ModuleNotFound)  // false
//	curated.Has(err, snapshot.ModuleNotFound) // true
//
// IsAny() answers whether an error was created by Errorf() at all. An error
// that is not curated was not anticipated by the code that returned it.
//
// The Error() function removes duplicate adjacent parts of the chain, where
// a part is the text between ": " separators. So a pattern of "riot: %v"
// wrapped around an error that already starts with "riot: " is printed once:
//
//	riot: invalid timer interval (5)
//
// and not:
//
//	riot: riot: invalid timer interval (5)
package curated
