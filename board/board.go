// https://github.com/usbarmory/picoviewer
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package board holds the placeholder peripheral addressing this
// firmware's target MCU needs, and the thin register-poke adapters that
// satisfy the Bus/Backlight/OneShotTimer/console.Bus seams the rest of
// the tree is built against. The MCU's exact register layout, clock
// tree, pin-muxing, and interrupt wiring are out of scope: register
// offsets below are placeholders in the shape a direct parallel/GPIO
// controller would take, not a verified reference-manual mapping.
package board

import (
	"errors"

	"github.com/usbarmory/picoviewer/command"
	"github.com/usbarmory/picoviewer/fat"
	"github.com/usbarmory/picoviewer/internal/reg"
	"github.com/usbarmory/picoviewer/sdcard"
)

// ErrNoFatDriver is returned by Volume's Mount: this firmware has no
// on-disk FAT implementation of its own (out of scope, see fat.Volume's
// doc comment); a real board wires SDCard's block reads through a FAT
// driver here the same way sdcard.Card.WriteBlock would need a real
// write path wired in before use.
var ErrNoFatDriver = errors.New("board: no FAT driver wired to SDCard")

// Volume is the fat.Volume a real board supplies once a FAT driver is
// wired to SDCard's block reads. The zero value fails every Mount.
var Volume fat.Volume = sdVolume{}

type sdVolume struct{}

func (sdVolume) Mount(driveNumber int, eager bool) error { return ErrNoFatDriver }
func (sdVolume) Unmount() error                          { return nil }

func (sdVolume) Open(path string, flags int) (fat.RawFile, error) {
	return nil, ErrNoFatDriver
}

func (sdVolume) OpenDir(path string) (fat.RawDir, error) {
	return nil, ErrNoFatDriver
}

// Peripheral base addresses. Placeholder values; a concrete MCU port
// would source these from its reference manual the way
// board/usbarmory/mk2 sources imx6ul register offsets.
const (
	SDIOBase       = 0x40018000
	LCDBase        = 0x60000000
	TransmitBase   = 0x40020000
	ReceiveBase    = 0x40004400
	JoystickBase   = 0x40020C00
	ConsoleBase    = 0x40004800
	PulseTimerBase = 0x40001000
	BacklightBase  = 0x40021000
)

// register offsets within each peripheral's base, placeholder layout.
const (
	lcdCmd  = 0x00
	lcdData = 0x04

	txData = 0x00
	txRTS  = 0x04

	rxData  = 0x00
	rxReady = 0x04

	joystickState = 0x00

	backlightGpio = 0x00

	consoleTx = 0x00
	consoleRx = 0x04

	pulseArm = 0x00
)

// SDCard is the process-wide SD controller singleton, addressed per
// sdcard.Base's direct-FIFO register layout.
var SDCard = sdcard.Get(sdcard.Base{
	Power:   SDIOBase + 0x00,
	Clock:   SDIOBase + 0x04,
	Arg:     SDIOBase + 0x08,
	Cmd:     SDIOBase + 0x0C,
	Status:  SDIOBase + 0x10,
	IntClr:  SDIOBase + 0x14,
	Resp:    SDIOBase + 0x18,
	DTimer:  SDIOBase + 0x28,
	DLen:    SDIOBase + 0x2C,
	DCtrl:   SDIOBase + 0x30,
	FIFO:    SDIOBase + 0x34,
	FIFOCnt: SDIOBase + 0x38,
})

// LCDBus drives the panel's command/data parallel bus.
type LCDBus struct{}

func (LCDBus) SendCommand(opcode byte) { reg.Write(LCDBase+lcdCmd, uint32(opcode)) }
func (LCDBus) Write(word uint16)       { reg.Write(LCDBase+lcdData, uint32(word)) }

// Backlight switches the panel backlight GPIO.
type Backlight struct{}

func (Backlight) Set(on bool) {
	if on {
		reg.Set(BacklightBase+backlightGpio, 0)
	} else {
		reg.Clear(BacklightBase+backlightGpio, 0)
	}
}

// TransmitBus drives the outbound parallel-port handshake link.
type TransmitBus struct{}

func (TransmitBus) SetData(b byte) { reg.Write(TransmitBase+txData, uint32(b)) }

func (TransmitBus) SetRTS(valid bool) {
	if valid {
		reg.Set(TransmitBase+txRTS, 0)
	} else {
		reg.Clear(TransmitBase+txRTS, 0)
	}
}

// ReceiveBus reads bytes off the inbound UART for the link's Parser.
type ReceiveBus struct{}

// Rx returns the next received byte, if one is ready.
func (ReceiveBus) Rx() (c byte, valid bool) {
	if reg.Get(ReceiveBase+rxReady, 0, 1) == 0 {
		return 0, false
	}

	return byte(reg.Read(ReceiveBase + rxData)), true
}

// PulseTimer arms a single delayed callback backing link.OneShotTimer.
// Arming a real hardware one-shot and wiring its expiry interrupt back
// to the caller's fire func is out of scope (interrupt wiring is
// explicitly a Non-goal); this placeholder only records the requested
// delay.
type PulseTimer struct{}

func (PulseTimer) Arm(us uint32) {
	reg.Write(PulseTimerBase+pulseArm, us)
}

// ConsoleBus adapts the diagnostic UART to console.Bus.
type ConsoleBus struct{}

func (ConsoleBus) Tx(c byte) {
	reg.Write(ConsoleBase+consoleTx, uint32(c))
}

func (ConsoleBus) Rx() (c byte, valid bool) {
	if reg.Get(ConsoleBase+rxReady, 0, 1) == 0 {
		return 0, false
	}

	return byte(reg.Read(ConsoleBase + consoleRx)), true
}

// joystickBits maps the placeholder joystick GPIO bit positions to
// command.Button values.
var joystickBits = map[int]command.Button{
	0: command.Up,
	1: command.Down,
	2: command.Left,
	3: command.Right,
}

// PollJoystick reads the joystick GPIO state once and returns the
// buttons currently asserted. Edge detection (comparing against the
// previous poll to find rising edges) is the caller's responsibility,
// matching how mk2-class boards leave debouncing to the driver above
// the raw GPIO read.
func PollJoystick() []command.Button {
	state := reg.Read(JoystickBase + joystickState)

	var pressed []command.Button

	for bit, btn := range joystickBits {
		if state&(1<<uint(bit)) != 0 {
			pressed = append(pressed, btn)
		}
	}

	return pressed
}

// Init performs early hardware bring-up: clock gating, pin muxing, and
// peripheral enable sequencing. Concrete register-level setup is out of
// scope (see package doc); this is the hook a real board port would
// fill in, mirroring mk2.Init's role of calling into the SoC package
// before any driver is used.
func Init() {
}
