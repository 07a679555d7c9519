// https://github.com/usbarmory/picoviewer
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package console provides a UART-backed io.Writer/io.Reader for
// developer diagnostics, wired into the standard library's log package
// at the firmware entrypoint. This is not a user-facing console: the
// device has no interactive shell, no command prompt, and no operator
// input path beyond the joystick, matching the failure-reporting
// description in the viewer package's event loop. It exists purely so a
// developer with a serial cable attached can see fatal errors and
// diagnostic output; production units may leave the UART unconnected.
package console

// Bus is the UART transmit/receive seam. A board package wires this to
// its own UART peripheral; register layout and baud rate configuration
// are out of scope here, as with display.Bus and link.Bus.
type Bus interface {
	Tx(c byte)
	Rx() (c byte, valid bool)
}

// Console adapts a Bus into io.Writer and io.Reader.
type Console struct {
	bus Bus
}

// New wraps bus in a Console suitable for use with log.New.
func New(bus Bus) *Console {
	return &Console{bus: bus}
}

// Write transmits buf one character at a time, blocking on the Bus for
// each character as uart.UART.Tx does.
func (c *Console) Write(buf []byte) (n int, err error) {
	for n = 0; n < len(buf); n++ {
		c.bus.Tx(buf[n])
	}

	return
}

// Read fills buf with whatever characters are currently available,
// stopping at the first invalid (empty) read rather than blocking.
func (c *Console) Read(buf []byte) (n int, err error) {
	var valid bool

	for n = 0; n < len(buf); n++ {
		buf[n], valid = c.bus.Rx()

		if !valid {
			break
		}
	}

	return
}
