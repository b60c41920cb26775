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

package via

import (
	"fmt"

	"github.com/jetsetilly/timercore/curated"
	"github.com/jetsetilly/timercore/hardware/alarm"
	"github.com/jetsetilly/timercore/hardware/clocks"
	"github.com/jetsetilly/timercore/hardware/interrupt"
	"github.com/jetsetilly/timercore/logger"
)

// DefaultWriteOffset is the number of cycles between the clock value at the
// time of a Store() and the clock at which the write takes effect.
const DefaultWriteOffset = 1

// sentinal error patterns.
const (
	ConfigError = "via: %s"
)

// Config for a new VIA.
type Config struct {
	// name of the VIA. used for alarm names, log entries and the snapshot
	// module name
	Name string

	// snapshot module names to try if a module with Name is not found
	AltNames []string

	// the virtual clock of the CPU
	Clock *clocks.Clock

	// set by the CPU when a read-modify-write instruction is in progress.
	// can be nil
	RMW *bool

	// the alarm context shared by the chips in the cluster
	Alarms *alarm.Context

	// the interrupt line and the source number for this VIA
	Interrupts interrupt.Sink
	Source     int

	// the line asserted when an interrupt is active. defaults to IRQ
	Kind interrupt.Kind

	// connections to the rest of the machine. defaults to NullPeripheral
	Peripheral Peripheral

	// allow log entries
	Debug bool
}

// VIA is an emulation of the 6522 versatile interface adapter.
type VIA struct {
	name     string
	altNames []string

	clk *clocks.Clock
	rmw *bool

	sink   interrupt.Sink
	source int
	line   interrupt.Kind

	prp      Peripheral
	observer ShiftObserver
	cb1      CB1Output

	// number of cycles subtracted from the clock by Store()
	WriteOffset clocks.Clock

	regs [16]uint8
	ifr  uint8
	ier  uint8

	// timer 1 latch, the clock at which timer 1 last reloaded (offset by
	// one) and the clock of the next timer 1 interrupt
	tal clocks.Clock
	tau clocks.Clock
	tai clocks.Clock

	// timer 2 counter bytes, the clock at which the low counter next
	// underflows (offset by one) and the clock of the next timer 2 alarm
	t2cl uint8
	t2ch uint8
	tbu  clocks.Clock
	tbi  clocks.Clock

	// timer 2 will raise an interrupt when the pulse count reaches zero
	t2pulse bool
	pb6     bool

	// PB7 state
	pb7   uint8
	pb7x  uint8
	pb7o  uint8
	pb7xx uint8
	pb7sx uint8

	// shift register phase. 16 means the shift register is idle
	shiftState int

	// the clock of the next shift when the shift register is driven by the
	// system clock
	sri clocks.Clock

	// output levels of CA2 and CB2 and the input level of CB2
	ca2State bool
	cb2State bool
	cb2In    bool

	oldpa uint8
	oldpb uint8

	// input latches
	ila uint8
	ilb uint8

	lastRead uint8

	t1Alarm *alarm.Alarm
	t2Alarm *alarm.Alarm
	srAlarm *alarm.Alarm

	irqAsserted bool
	enabled     bool
	debug       bool

	// a shadow VIA is a copy used by Peek(). it has no side effects outside
	// of itself
	shadow bool
}

// NewVIA is the preferred method of initialisation for the VIA type. The VIA
// is reset before being returned.
func NewVIA(cfg Config) (*VIA, error) {
	if cfg.Clock == nil {
		return nil, curated.Errorf(ConfigError, "no clock")
	}
	if cfg.Alarms == nil {
		return nil, curated.Errorf(ConfigError, "no alarm context")
	}
	if cfg.Interrupts == nil {
		return nil, curated.Errorf(ConfigError, "no interrupt sink")
	}

	via := &VIA{
		name:        cfg.Name,
		altNames:    cfg.AltNames,
		clk:         cfg.Clock,
		rmw:         cfg.RMW,
		sink:        cfg.Interrupts,
		source:      cfg.Source,
		line:        cfg.Kind,
		prp:         cfg.Peripheral,
		WriteOffset: DefaultWriteOffset,
		debug:       cfg.Debug,
	}

	if via.line == interrupt.None {
		via.line = interrupt.IRQ
	}

	if via.prp == nil {
		via.prp = NullPeripheral{}
	}
	via.observer, _ = via.prp.(ShiftObserver)
	via.cb1, _ = via.prp.(CB1Output)

	via.t1Alarm = cfg.Alarms.NewAlarm(fmt.Sprintf("%sT1", via.name), func(offset clocks.Clock, _ interface{}) {
		via.intt1(offset)
	}, nil)
	via.t2Alarm = cfg.Alarms.NewAlarm(fmt.Sprintf("%sT2", via.name), func(offset clocks.Clock, _ interface{}) {
		via.intt2(offset)
	}, nil)
	via.srAlarm = cfg.Alarms.NewAlarm(fmt.Sprintf("%sSR", via.name), func(offset clocks.Clock, _ interface{}) {
		via.intsr(offset)
	}, nil)

	via.Reset()

	return via, nil
}

// Label returns the name of the VIA.
func (via *VIA) Label() string {
	return via.name
}

func (via *VIA) String() string {
	return fmt.Sprintf("%s: PRA=%02x DDRA=%02x PRB=%02x DDRB=%02x T1=%04x T2=%04x SR=%02x ACR=%02x PCR=%02x IFR=%02x IER=%02x",
		via.name,
		via.regs[PRA], via.regs[DDRA], via.regs[PRB], via.regs[DDRB],
		uint16(via.t1Value()), uint16(via.t2Value()),
		via.regs[SR], via.regs[ACR], via.regs[PCR],
		via.ifrValue(), via.ier|IntIRQ,
	)
}

// AllowLogging implements the logger.Permission interface.
func (via *VIA) AllowLogging() bool {
	return via.debug && !via.shadow
}

// Reset the VIA. All registers are cleared except for the timers and the
// shift register.
func (via *VIA) Reset() {
	clk := *via.clk

	for i := PRB; i <= DDRA; i++ {
		via.regs[i] = 0
	}
	for i := T1CL; i <= T2CH; i++ {
		via.regs[i] = 0xff
	}
	for i := ACR; i <= PRANHS; i++ {
		via.regs[i] = 0
	}

	via.tal = 0xffff
	via.t2cl = 0xff
	via.t2ch = 0xff
	via.tau = clk
	via.tbu = clk
	via.t2pulse = false
	via.pb6 = true

	via.ier = 0
	via.ifr = 0

	via.pb7 = 0
	via.pb7x = 0
	via.pb7o = 0
	via.pb7xx = 0
	via.pb7sx = 0

	via.shiftState = 16

	via.tai = clocks.Never
	via.tbi = clocks.Never
	via.sri = clocks.Never
	via.t1Alarm.Unset()
	via.t2Alarm.Unset()
	via.srAlarm.Unset()
	via.updateIRQ(clk)

	via.oldpa = 0xff
	via.oldpb = 0xff

	via.ca2State = true
	via.cb2State = true
	via.cb2In = true
	via.prp.SetCA2(via.ca2State)
	via.prp.SetCB2(via.cb2State)

	via.prp.Reset()

	via.enabled = true
}

// Disable the VIA. Pending alarms are cancelled. Reset() enables the VIA
// again.
func (via *VIA) Disable() {
	via.t1Alarm.Unset()
	via.t2Alarm.Unset()
	via.srAlarm.Unset()
	via.tai = clocks.Never
	via.tbi = clocks.Never
	via.sri = clocks.Never
	via.enabled = false
}

// Enabled returns false if the VIA has been disabled.
func (via *VIA) Enabled() bool {
	return via.enabled
}

// ShiftTime rebases the stored clocks after the virtual clock has been
// reduced by sub cycles. Suitable for use as a clocks.Guard callback.
func (via *VIA) ShiftTime(sub clocks.Clock) {
	if !via.enabled {
		return
	}

	via.tau -= sub
	via.tbu -= sub

	if via.tai != clocks.Never {
		via.tai -= sub
	}
	if via.tbi != clocks.Never {
		via.tbi -= sub
	}
	if via.sri != clocks.Never {
		via.sri -= sub
	}
}

// IRQ returns true if the VIA is asserting its interrupt line.
func (via *VIA) IRQ() bool {
	return via.irqAsserted
}

// the value of the IFR as seen by the CPU.
func (via *VIA) ifrValue() uint8 {
	if via.ifr&via.ier != 0 {
		return via.ifr | IntIRQ
	}
	return via.ifr
}

// updateIRQ informs the interrupt sink if the state of the interrupt output
// has changed.
func (via *VIA) updateIRQ(at clocks.Clock) {
	asserted := via.ifr&via.ier&0x7f != 0
	if asserted == via.irqAsserted {
		return
	}
	via.irqAsserted = asserted

	if via.shadow {
		return
	}

	if asserted {
		via.sink.SetInterrupt(via.source, via.line, at)
	} else {
		via.sink.SetInterrupt(via.source, interrupt.None, at)
	}
}

// catchUp runs the alarm callbacks for any alarm that is due before the
// current clock. this makes sure that register values reflect every event
// that logically happened before the access.
func (via *VIA) catchUp() {
	clk := *via.clk

	for via.tai != clocks.Never && via.tai < clk {
		via.intt1(clk - via.tai)
	}
	for via.tbi != clocks.Never && via.tbi < clk {
		via.intt2(clk - via.tbi)
	}
	for via.sri != clocks.Never && via.sri < clk {
		via.intsr(clk - via.sri)
	}
}

// setAlarm and unsetAlarm are used by the timer logic so that a shadow VIA
// does not disturb the alarms of the original.
func (via *VIA) setAlarm(a *alarm.Alarm, clk clocks.Clock) {
	if !via.shadow {
		a.Set(clk)
	}
}

func (via *VIA) unsetAlarm(a *alarm.Alarm) {
	if !via.shadow {
		a.Unset()
	}
}

func (via *VIA) log(detail string, args ...any) {
	logger.Logf(via, via.name, detail, args...)
}
