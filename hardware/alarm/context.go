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

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/timercore/assert"
	"github.com/jetsetilly/timercore/hardware/clocks"
)

// Direction of a call to ShiftTime().
type Direction int

// List of valid Direction values.
const (
	Neutral Direction = iota
	Forward
	Backward
)

// entry in the pending array.
type entry struct {
	alarm *Alarm
	clk   clocks.Clock
}

// Context coordinates the alarms for a cluster of chips.
type Context struct {
	name string

	// every alarm created by NewAlarm() and not yet destroyed. newest first
	alarms []*Alarm

	// alarms that are currently armed, in no particular order
	pending []entry

	// the earliest clock in the pending array and the index of the entry
	// holding it. next is clocks.Never and nextIdx is -1 if nothing is
	// pending
	next    clocks.Clock
	nextIdx int

	owner assert.Owner
}

// NewContext is the preferred method of initialisation for the Context type.
// The name is used only for diagnostics.
func NewContext(name string) *Context {
	return &Context{
		name:    name,
		next:    clocks.Never,
		nextIdx: -1,
	}
}

// Name of the context as specified to NewContext().
func (ctx *Context) Name() string {
	return ctx.name
}

func (ctx *Context) String() string {
	s := strings.Builder{}
	for _, a := range ctx.alarms {
		if ctx.name != "" {
			s.WriteString(ctx.name)
			s.WriteString(": ")
		}
		s.WriteString(a.String())
		s.WriteString("\n")
	}
	return s.String()
}

// Destroy every alarm in the context. The context should not be used
// afterwards.
func (ctx *Context) Destroy() {
	for len(ctx.alarms) > 0 {
		ctx.alarms[0].Destroy()
	}
	ctx.pending = ctx.pending[:0]
	ctx.next = clocks.Never
	ctx.nextIdx = -1
}

// NewAlarm creates a new, unarmed alarm in the context.
func (ctx *Context) NewAlarm(name string, callback Callback, data interface{}) *Alarm {
	a := &Alarm{
		ctx:        ctx,
		name:       name,
		callback:   callback,
		data:       data,
		pendingIdx: notPending,
	}

	// newest alarm goes to the front of the list
	ctx.alarms = append(ctx.alarms, nil)
	copy(ctx.alarms[1:], ctx.alarms)
	ctx.alarms[0] = a

	return a
}

// remove alarm from the list of alarms.
func (ctx *Context) remove(a *Alarm) {
	for i := range ctx.alarms {
		if ctx.alarms[i] == a {
			ctx.alarms = append(ctx.alarms[:i], ctx.alarms[i+1:]...)
			return
		}
	}
	panic(fmt.Sprintf("alarm: %s is not in context %s", a.name, ctx.name))
}

// NextPendingClock returns the earliest clock at which an alarm is due.
// Returns clocks.Never if no alarm is pending.
func (ctx *Context) NextPendingClock() clocks.Clock {
	return ctx.next
}

// Dispatch every alarm that is due at or before the specified clock.
func (ctx *Context) Dispatch(clk clocks.Clock) {
	ctx.owner.Check()

	for len(ctx.pending) > 0 && ctx.next <= clk {
		e := ctx.pending[ctx.nextIdx]
		offset := clk - e.clk
		e.alarm.Unset()
		e.alarm.callback(offset, e.alarm.data)
	}
}

// ShiftTime moves the target clock of every pending alarm by the specified
// amount. Used when the virtual clock is renormalised.
func (ctx *Context) ShiftTime(amount clocks.Clock, dir Direction) {
	switch dir {
	case Forward:
		for i := range ctx.pending {
			ctx.pending[i].clk += amount
		}
		if ctx.next != clocks.Never {
			ctx.next += amount
		}
	case Backward:
		for i := range ctx.pending {
			ctx.pending[i].clk -= amount
		}
		if ctx.next != clocks.Never {
			ctx.next -= amount
		}
	}
	ctx.check()
}

// update the cached earliest clock by looking at the entire pending array.
func (ctx *Context) update() {
	ctx.next = clocks.Never
	ctx.nextIdx = -1
	for i := range ctx.pending {
		if ctx.nextIdx == -1 || ctx.pending[i].clk < ctx.next {
			ctx.next = ctx.pending[i].clk
			ctx.nextIdx = i
		}
	}
}

// check the invariants of the context. only has an effect when the
// assertions build tag is specified.
func (ctx *Context) check() {
	if !assert.Enabled {
		return
	}

	next := clocks.Never
	for i, e := range ctx.pending {
		assert.Check(e.alarm.pendingIdx == i, "%s: pending entry %d refers to alarm with index %d", ctx.name, i, e.alarm.pendingIdx)
		if e.clk < next {
			next = e.clk
		}
	}
	assert.Check(next == ctx.next, "%s: cached next clock is %d, should be %d", ctx.name, ctx.next, next)
	if len(ctx.pending) > 0 {
		assert.Check(ctx.pending[ctx.nextIdx].clk == ctx.next, "%s: cached next index is wrong", ctx.name)
	} else {
		assert.Check(ctx.nextIdx == -1, "%s: cached next index should be -1", ctx.name)
	}
	for _, a := range ctx.alarms {
		if a.pendingIdx != notPending {
			assert.Check(a.pendingIdx < len(ctx.pending) && ctx.pending[a.pendingIdx].alarm == a, "%s: alarm %s has bad pending index", ctx.name, a.name)
		}
	}
}
