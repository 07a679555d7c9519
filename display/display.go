// https://github.com/usbarmory/picoviewer
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package display implements component C9: the LCD command sequence, the
// 18-bit pixel push, and the fill/refresh bookkeeping the event loop
// drives. The panel's own memory-bus controller and initialization
// sequence beyond the opcodes issued here are out of scope; Bus is the
// seam a board package provides.
package display

import "github.com/usbarmory/picoviewer/pixel"

// LCD command opcodes actually issued at runtime.
const (
	cmdSoftReset   = 0x01
	cmdSleepOut    = 0x11
	cmdDisplayOff  = 0x28
	cmdDisplayOn   = 0x29
	cmdWriteMemory = 0x2C
	cmdColorMode   = 0x3A
	cmdRAMControl  = 0xB0
	cmdReadID      = 0x04
)

// TotalPixels is the number of pixels in one full 240x240 frame.
const TotalPixels = 240 * 240

// Bus is the memory-mapped parallel bus the panel sits on: issuing a
// command byte and writing 16-bit data words. Bus configuration (timing,
// address decoding) is out of scope.
type Bus interface {
	SendCommand(opcode byte)
	Write(word uint16)
}

// Backlight switches the panel's backlight GPIO.
type Backlight interface {
	Set(on bool)
}

// Panel is the process-wide singleton owning the LCD bus. It tracks
// whether the panel is currently shown and how many pixels have been
// pushed since the last Refresh.
type Panel struct {
	bus       Bus
	backlight Backlight

	active       bool
	pixelsFilled uint32
}

var instance *Panel

// NewPanel constructs a standalone Panel, performing the wake-up and
// 18-bit color mode setup immediately. Most callers want the process-wide
// singleton (Get); NewPanel exists for tests that need an isolated panel.
func NewPanel(bus Bus, backlight Backlight) *Panel {
	p := &Panel{bus: bus, backlight: backlight}
	p.init()

	return p
}

// Get returns the lazily-initialized Panel singleton, performing the
// wake-up and 18-bit color mode setup on first use.
func Get(bus Bus, backlight Backlight) *Panel {
	if instance == nil {
		instance = NewPanel(bus, backlight)
	}

	return instance
}

func (p *Panel) init() {
	p.bus.SendCommand(cmdSoftReset)
	p.bus.SendCommand(cmdRAMControl)
	p.bus.Write(0x00)
	p.bus.Write(0xF1)
	p.bus.SendCommand(cmdColorMode)
	p.bus.Write(0x06)
}

// Show switches the backlight and issues DisplayOn/DisplayOff.
func (p *Panel) Show(on bool) {
	p.backlight.Set(on)

	if on {
		p.bus.SendCommand(cmdDisplayOn)
	} else {
		p.bus.SendCommand(cmdDisplayOff)
	}

	p.active = on
}

// Active reports whether the panel is currently shown.
func (p *Panel) Active() bool {
	return p.active
}

// PixelsFilled reports how many pixels have been pushed since the last
// Refresh.
func (p *Panel) PixelsFilled() uint32 {
	return p.pixelsFilled
}

// Filled reports whether a full frame has been pushed since the last
// Refresh.
func (p *Panel) Filled() bool {
	return p.pixelsFilled >= TotalPixels
}

// Refresh issues the "write memory" command and resets the fill cursor.
func (p *Panel) Refresh() {
	p.bus.SendCommand(cmdWriteMemory)
	p.pixelsFilled = 0
}

// Draw pushes one pixel's two 16-bit words to the LCD data port, in
// order, and advances the fill cursor.
func (p *Panel) Draw(px pixel.Rgb666) {
	p.bus.Write(px.RedGreen)
	p.bus.Write(px.Blue)
	p.pixelsFilled++
}
