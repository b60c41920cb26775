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

package linefeed

import (
	"github.com/jetsetilly/timercore/hardware/alarm"
	"github.com/jetsetilly/timercore/hardware/clocks"
)

// Feed replays a list of edges.
type Feed struct {
	clk   *clocks.Clock
	alarm *alarm.Alarm
	edges []Edge
	out   func(level bool)

	// clock at which the first edge is due
	start clocks.Clock

	// index of the next edge
	idx int

	running bool
}

// NewFeed is the preferred method of initialisation for the Feed type. The
// feed does not begin until Start() is called.
func NewFeed(ctx *alarm.Context, clk *clocks.Clock, name string, edges []Edge, out func(level bool)) *Feed {
	f := &Feed{
		clk:   clk,
		edges: edges,
		out:   out,
	}
	f.alarm = ctx.NewAlarm(name, func(offset clocks.Clock, _ interface{}) {
		f.dispatch(offset)
	}, nil)
	return f
}

// Start replaying the edges with the first edge due at the specified clock.
func (f *Feed) Start(at clocks.Clock) {
	f.start = at
	f.idx = 0
	f.running = true
	f.schedule()
}

// Stop replaying edges. The feed can be restarted with Start().
func (f *Feed) Stop() {
	f.running = false
	f.alarm.Unset()
}

// Running returns true if the feed has edges still to replay.
func (f *Feed) Running() bool {
	return f.running
}

// Remaining returns the number of edges still to replay.
func (f *Feed) Remaining() int {
	return len(f.edges) - f.idx
}

// Destroy the alarm used by the feed.
func (f *Feed) Destroy() {
	f.Stop()
	f.alarm.Destroy()
}

// ShiftTime rebases the start clock. Suitable for use as a clocks.Guard
// callback.
func (f *Feed) ShiftTime(sub clocks.Clock) {
	if f.start > sub {
		f.start -= sub
	} else {
		f.start = 0
	}
}

func (f *Feed) schedule() {
	if f.idx >= len(f.edges) {
		f.running = false
		return
	}
	f.alarm.Set(f.start + f.edges[f.idx].At)
}

func (f *Feed) dispatch(offset clocks.Clock) {
	rclk := *f.clk - offset

	// every edge due at the dispatch clock
	for f.idx < len(f.edges) && f.start+f.edges[f.idx].At <= rclk {
		f.out(f.edges[f.idx].Level)
		f.idx++
	}

	f.schedule()
}
