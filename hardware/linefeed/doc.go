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

// Package linefeed plays a recorded signal into a chip line. A recording is
// a PCM sound file (WAV or MP3) of the kind produced when a cassette is
// sampled. The recording is reduced to a list of edges by looking for zero
// crossings, with some hysteresis to reject noise, and the edges are replayed
// against the virtual clock using an alarm.
//
// The output of a Feed is a function that takes the new level of the line.
// For example, the cassette read line of a PET is connected to CA1 of the
// VIA:
//
//	feed := linefeed.NewFeed(board.Alarms, &board.Clock, "CASS", edges, func(level bool) {
//		if level {
//			v.Signal(via.CA1, via.Rise)
//		} else {
//			v.Signal(via.CA1, via.Fall)
//		}
//	})
//	feed.Start(board.Clock)
package linefeed
