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

// Package limiter provides a rough and ready way of limiting events to a fixed
// rate.
//
// A new Limiter can be created with (error handling removed for clarity):
//
//	lim, _ := limiter.NewLimiter(100)
//
// Operations can then be stalled with the Wait() function. For example:
//
//	for {
//		lim.Wait()
//		board.Advance(10000)
//	}
package limiter

import (
	"fmt"
	"time"

	"github.com/jetsetilly/timercore/curated"
)

// Limiter will trigger a fixed number of times per second.
type Limiter struct {
	rate   int
	ticker *time.Ticker
}

// NewLimiter is the preferred method of initialisation for the Limiter type.
func NewLimiter(rate int) (*Limiter, error) {
	if rate <= 0 {
		return nil, curated.Errorf("limiter: %v", fmt.Sprintf("rate must be positive (%d)", rate))
	}

	return &Limiter{
		rate:   rate,
		ticker: time.NewTicker(time.Second / time.Duration(rate)),
	}, nil
}

// Rate returns the number of triggers per second.
func (lim *Limiter) Rate() int {
	return lim.rate
}

// Wait will block until the next trigger.
func (lim *Limiter) Wait() {
	<-lim.ticker.C
}

// Stop the limiter. It should not be used again.
func (lim *Limiter) Stop() {
	lim.ticker.Stop()
}
