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

package alarm

import "github.com/jetsetilly/timercore/hardware/clocks"

// Observer exposes only the functions of the Context that relate to the
// observation of alarms.
type Observer interface {
	Alarms() []*Alarm
	Pending() []Pending
	NextPendingClock() clocks.Clock
}

// Pending is a copy of an entry in the pending array.
type Pending struct {
	Name string
	Clk  clocks.Clock
}

// Alarms returns every alarm in the context, newest first. The returned slice
// is a copy but the alarms are not.
func (ctx *Context) Alarms() []*Alarm {
	l := make([]*Alarm, len(ctx.alarms))
	copy(l, ctx.alarms)
	return l
}

// Pending returns a copy of the pending array, in the order it is stored.
func (ctx *Context) Pending() []Pending {
	l := make([]Pending, 0, len(ctx.pending))
	for _, e := range ctx.pending {
		l = append(l, Pending{Name: e.alarm.name, Clk: e.clk})
	}
	return l
}

// Observe looks for the alarm with the specified name. Returns false if
// there is no such alarm.
func (ctx *Context) Observe(name string) (*Alarm, bool) {
	for _, a := range ctx.alarms {
		if a.name == name {
			return a, true
		}
	}
	return nil, false
}
