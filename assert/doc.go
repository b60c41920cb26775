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

// Package assert contains checks that are only compiled in when the
// assertions build tag is specified. For example:
//
//	go test -tags=assertions ./...
//
// Callers that need to do work to build the condition should test the Enabled
// constant first, so that the work is removed from normal builds.
package assert
