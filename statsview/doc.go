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

// Package statsview serves live Go runtime statistics while a board is
// being benchmarked. It is only built when the statsview build tag is
// present. Without the tag, Launch() does nothing and Available() returns
// false, and the BENCH mode refuses the -statsview flag.
//
// The statistics of interest are allocations and garbage collection pauses.
// A board that is running its timers should allocate nothing per cycle, and
// a long benchmark with the stats page open shows quickly if that stops
// being true.
//
// The server is provided by "github.com/go-echarts/statsview". After launch,
// graphs are at:
//
//	localhost:12600/debug/statsview
//
// and the standard pprof pages at:
//
//	localhost:12600/debug/pprof/
package statsview
