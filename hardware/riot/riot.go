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

package riot

import (
	"fmt"

	"github.com/jetsetilly/timercore/curated"
	"github.com/jetsetilly/timercore/hardware/alarm"
	"github.com/jetsetilly/timercore/hardware/clocks"
	"github.com/jetsetilly/timercore/hardware/interrupt"
	"github.com/jetsetilly/timercore/logger"
)

// sentinal error patterns.
const (
	ConfigError = "riot: %s"
)

// Config for a new RIOT.
type Config struct {
	// name of the RIOT. used for the alarm name, log entries and the snapshot
	// module name
	Name string

	// the virtual clock of the CPU
	Clock *clocks.Clock

	// set by the CPU when a read-modify-write instruction is in progress.
	// can be nil
	RMW *bool

	Alarms     *alarm.Context
	Interrupts interrupt.Sink
	Source     int

	// the line asserted when an interrupt is active. defaults to IRQ
	Kind interrupt.Kind

	// defaults to NullPeripheral
	Peripheral Peripheral

	Debug bool
}

// RIOT is an emulation of the 6532 RAM-I/O-Timer.
type RIOT struct {
	name string

	clk *clocks.Clock
	rmw *bool

	sink   interrupt.Sink
	source int
	line   interrupt.Kind

	prp Peripheral

	// port data and data direction registers
	io    [4]uint8
	oldpa uint8
	oldpb uint8

	edgeCtrl uint8
	flags    uint8
	irqLine  bool

	// the clock at which the timer was written, the value of the counter at
	// that clock and the interval
	writeClk clocks.Clock
	n        clocks.Clock
	interval Interval

	irqEnabled bool

	// the clock of the next timer interrupt. clocks.Never if no interrupt is
	// pending
	ti    clocks.Clock
	alarm *alarm.Alarm

	// successive reads at the same clock are treated as though they happen
	// on successive cycles. this happens when the CPU fetches an opcode
	// from the RIOT
	readClk    clocks.Clock
	readOffset clocks.Clock

	lastRead uint8

	enabled bool
	debug   bool
	shadow  bool
}

// NewRIOT is the preferred method of initialisation for the RIOT type. The
// RIOT is reset before being returned.
func NewRIOT(cfg Config) (*RIOT, error) {
	if cfg.Clock == nil {
		return nil, curated.Errorf(ConfigError, "no clock")
	}
	if cfg.Alarms == nil {
		return nil, curated.Errorf(ConfigError, "no alarm context")
	}
	if cfg.Interrupts == nil {
		return nil, curated.Errorf(ConfigError, "no interrupt sink")
	}

	r := &RIOT{
		name:   cfg.Name,
		clk:    cfg.Clock,
		rmw:    cfg.RMW,
		sink:   cfg.Interrupts,
		source: cfg.Source,
		line:   cfg.Kind,
		prp:    cfg.Peripheral,
		debug:  cfg.Debug,
	}

	if r.line == interrupt.None {
		r.line = interrupt.IRQ
	}
	if r.prp == nil {
		r.prp = NullPeripheral{}
	}

	r.alarm = cfg.Alarms.NewAlarm(fmt.Sprintf("%sT1", r.name), func(offset clocks.Clock, _ interface{}) {
		r.inttimer(offset)
	}, nil)

	r.Reset()

	return r, nil
}

// Label returns the name of the RIOT.
func (r *RIOT) Label() string {
	return r.name
}

func (r *RIOT) String() string {
	return fmt.Sprintf("%s: SWCHA=%02x SWACNT=%02x SWCHB=%02x SWBCNT=%02x INTIM=%02x (%s) TIMINT=%02x",
		r.name, r.io[0], r.io[1], r.io[2], r.io[3],
		r.Peek(INTIM), r.interval, r.flags,
	)
}

// AllowLogging implements the logger.Permission interface.
func (r *RIOT) AllowLogging() bool {
	return r.debug && !r.shadow
}

// Reset the RIOT.
func (r *RIOT) Reset() {
	clk := *r.clk

	r.io = [4]uint8{}

	r.readClk = 0
	r.readOffset = 0

	r.unsetTimer()

	r.oldpa = 0xff
	r.oldpb = 0xff

	r.edgeCtrl = 0
	r.flags = 0
	r.irqLine = false
	r.sink.SetInterrupt(r.source, interrupt.None, clk)

	r.writeClk = clk
	r.n = 255
	r.interval = TIM1T
	r.irqEnabled = false

	r.prp.Reset()

	r.enabled = true
}

// Disable the RIOT. The timer alarm is cancelled. Reset() enables the RIOT
// again.
func (r *RIOT) Disable() {
	r.unsetTimer()
	r.enabled = false
}

// Enabled returns false if the RIOT has been disabled.
func (r *RIOT) Enabled() bool {
	return r.enabled
}

// ShiftTime rebases the stored clocks after the virtual clock has been
// reduced by sub cycles. Suitable for use as a clocks.Guard callback.
func (r *RIOT) ShiftTime(sub clocks.Clock) {
	if r.writeClk > sub {
		r.writeClk -= sub
	} else {
		r.writeClk = 0
	}
	if r.ti != clocks.Never {
		r.ti -= sub
	}
	if r.readClk > sub {
		r.readClk -= sub
	} else {
		r.readClk = 0
	}
}

// IRQ returns true if the RIOT is asserting its interrupt line.
func (r *RIOT) IRQ() bool {
	return r.irqLine
}

// updateIRQ sets the interrupt flags and informs the interrupt sink if the
// interrupt line has changed.
func (r *RIOT) updateIRQ(flags uint8, at clocks.Clock) {
	line := flags&TimerFlag == TimerFlag || (flags&EdgeFlag == EdgeFlag && r.edgeCtrl&edgeIRQ == edgeIRQ)

	if line != r.irqLine && !r.shadow {
		if line {
			r.sink.SetInterrupt(r.source, r.line, at)
		} else {
			r.sink.SetInterrupt(r.source, interrupt.None, at)
		}
	}

	r.irqLine = line
	r.flags = flags
}

// updateTimer is called before the timer is read. if the counter has passed
// zero then the interval changes to one.
func (r *RIOT) updateTimer() {
	clk := *r.clk
	if clk < r.writeClk {
		return
	}

	d := clocks.Clock(r.interval)
	underflow := (clk - r.writeClk) / d

	if underflow > r.n {
		// the counter reads 0xff on the cycle after the interval in which
		// it read zero
		r.writeClk += (r.n + 1) * d
		r.n = 255
		r.interval = TIM1T
	}

	// the counter wraps every 256 cycles once the interval is one
	if r.interval == TIM1T && clk >= r.writeClk {
		r.writeClk += (clk - r.writeClk) & 0xff00
	}
}

// counter returns the value of the counter at the specified clock.
func (r *RIOT) counter(clk clocks.Clock) uint8 {
	return uint8(r.n - (clk-r.writeClk)/clocks.Clock(r.interval))
}

func (r *RIOT) armTimer() {
	r.ti = r.writeClk + r.n*clocks.Clock(r.interval)
	if !r.shadow {
		r.alarm.Set(r.ti)
	}
}

func (r *RIOT) unsetTimer() {
	r.ti = clocks.Never
	if !r.shadow {
		r.alarm.Unset()
	}
}

// inttimer is called when the counter reaches zero.
func (r *RIOT) inttimer(offset clocks.Clock) {
	rclk := *r.clk - offset
	r.unsetTimer()
	r.updateIRQ(r.flags|TimerFlag, rclk)

	if logger.Allowed(r) {
		logger.Logf(r, r.name, "timer interrupt at %d", rclk)
	}
}

func (r *RIOT) catchUp() {
	clk := *r.clk
	for r.ti != clocks.Never && r.ti < clk {
		r.inttimer(clk - r.ti)
	}
}

// Signal an edge on PA7.
func (r *RIOT) Signal(edge Edge) {
	r.catchUp()

	flags := r.flags
	if (edge == Fall && r.edgeCtrl&edgePositive == 0) || (edge == Rise && r.edgeCtrl&edgePositive == edgePositive) {
		flags |= EdgeFlag
	}
	r.updateIRQ(flags, *r.clk)
}

// SetPA7 sets the level of PA7. Suitable as the output of a linefeed.
func (r *RIOT) SetPA7(level bool) {
	if level {
		r.Signal(Rise)
	} else {
		r.Signal(Fall)
	}
}
