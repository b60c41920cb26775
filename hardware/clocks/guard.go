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

package clocks

// Default values for a new Guard.
const (
	DefaultLimit    = Clock(1) << 40
	DefaultInterval = Clock(1) << 32
)

// Guard prevents the virtual clock from growing without bound. When the
// clock passes the Limit it is reduced by a multiple of Interval and every
// registered callback is told how much was subtracted.
//
// Chips use the callback to rebase any absolute clock values they hold.
type Guard struct {
	Limit    Clock
	Interval Clock

	callbacks []func(sub Clock)
}

// NewGuard is the preferred method of initialisation for the Guard type.
func NewGuard() *Guard {
	return &Guard{
		Limit:    DefaultLimit,
		Interval: DefaultInterval,
	}
}

// AddCallback registers a function to be called whenever the clock is
// renormalised.
func (g *Guard) AddCallback(f func(sub Clock)) {
	g.callbacks = append(g.callbacks, f)
}

// Prevent checks the clock and renormalises it if necessary. Returns the
// amount subtracted from the clock, which will be zero most of the time.
func (g *Guard) Prevent(clk *Clock) Clock {
	if *clk < g.Limit || g.Interval == 0 {
		return 0
	}

	// the amount to subtract is rounded to the interval so that values
	// depending on clock phase (eg. a divider) are not disturbed
	sub := ((*clk - g.Limit) / g.Interval) * g.Interval
	if sub == 0 {
		sub = g.Interval
	}
	if sub > *clk {
		sub = *clk - (*clk % g.Interval)
		if sub == 0 {
			return 0
		}
	}

	*clk -= sub
	for _, f := range g.callbacks {
		f(sub)
	}

	return sub
}
