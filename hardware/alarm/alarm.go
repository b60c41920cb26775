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

	"github.com/jetsetilly/timercore/hardware/clocks"
)

// Callback is called when an alarm is dispatched. The offset is the number
// of cycles between the target clock of the alarm and the clock at which it
// was dispatched.
type Callback func(offset clocks.Clock, data interface{})

// notPending is the pending index of an alarm that is not in the pending
// array.
const notPending = -1

// Alarm is a named callback bound to a single Context.
type Alarm struct {
	ctx  *Context
	name string

	callback Callback
	data     interface{}

	// index into the pending array of the context. notPending if the alarm
	// is not armed
	pendingIdx int

	destroyed bool
}

func (a *Alarm) String() string {
	label := strings.TrimSpace(a.name)
	if label == "" {
		label = "[unnamed alarm]"
	}
	if a.pendingIdx == notPending {
		return fmt.Sprintf("%s -> unset", label)
	}
	return fmt.Sprintf("%s -> %d", label, a.ctx.pending[a.pendingIdx].clk)
}

// Name of alarm as specified to NewAlarm().
func (a *Alarm) Name() string {
	return a.name
}

// Pending returns true if the alarm is armed.
func (a *Alarm) Pending() bool {
	return a.pendingIdx != notPending
}

// Target returns the clock at which the alarm will be dispatched. Returns
// clocks.Never if the alarm is not armed.
func (a *Alarm) Target() clocks.Clock {
	if a.pendingIdx == notPending {
		return clocks.Never
	}
	return a.ctx.pending[a.pendingIdx].clk
}

// Set arms the alarm for the specified clock. If the alarm is already armed
// then the target clock is changed in place.
func (a *Alarm) Set(clk clocks.Clock) {
	if a.destroyed {
		panic(fmt.Sprintf("alarm: cannot set destroyed alarm %s", a.name))
	}

	ctx := a.ctx

	if a.pendingIdx == notPending {
		ctx.pending = append(ctx.pending, entry{alarm: a, clk: clk})
		a.pendingIdx = len(ctx.pending) - 1
		if ctx.nextIdx == -1 || clk < ctx.next {
			ctx.next = clk
			ctx.nextIdx = a.pendingIdx
		}
	} else {
		ctx.pending[a.pendingIdx].clk = clk
		if clk < ctx.next {
			ctx.next = clk
			ctx.nextIdx = a.pendingIdx
		} else if a.pendingIdx == ctx.nextIdx {
			// the alarm was the earliest and has been moved later. another
			// alarm may now be earlier
			ctx.update()
		}
	}

	ctx.check()
}

// Unset disarms the alarm. It is safe to unset an alarm that is not armed.
func (a *Alarm) Unset() {
	if a.pendingIdx == notPending {
		return
	}

	ctx := a.ctx
	idx := a.pendingIdx
	last := len(ctx.pending) - 1

	// swap with the last entry in the pending array and patch the index of
	// the alarm that has been moved
	if idx != last {
		ctx.pending[idx] = ctx.pending[last]
		ctx.pending[idx].alarm.pendingIdx = idx
	}
	ctx.pending[last] = entry{}
	ctx.pending = ctx.pending[:last]
	a.pendingIdx = notPending

	// the earliest entry has either been removed or moved
	if ctx.nextIdx == idx || ctx.nextIdx == last {
		ctx.update()
	}

	ctx.check()
}

// Destroy unsets the alarm and removes it from the context. The alarm should
// not be used after being destroyed.
func (a *Alarm) Destroy() {
	if a.destroyed {
		return
	}
	a.Unset()
	a.ctx.remove(a)
	a.destroyed = true
}
