// https://github.com/usbarmory/picoviewer
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package command implements component C8: joystick edges are mapped to
// commands and posted to an interrupt-owned ring for the main loop to
// flush outbound; commands received from the link are dispatched by the
// main loop, with LED opcodes echoed back out and NextPicture routed to
// a caller-supplied handler.
package command

import "github.com/usbarmory/picoviewer/ring"

// Command is a wire command opcode.
type Command byte

// Wire opcode values, see component C8.
const (
	Empty          Command = 0x0
	GreenLedOn     Command = 0x1
	GreenLedOff    Command = 0x2
	GreenLedToggle Command = 0x3
	BlueLedOn      Command = 0x4
	BlueLedOff     Command = 0x8
	BlueLedToggle  Command = 0xC
	NextPicture    Command = 0x80
)

// Button identifies a joystick direction.
type Button int

const (
	Up Button = iota
	Down
	Left
	Right
)

var commandByButton = map[Button]Command{
	Up:    GreenLedOn,
	Down:  GreenLedOff,
	Right: BlueLedOn,
	Left:  BlueLedOff,
}

// JoystickRingDepth bounds the interrupt-owned ring of locally generated
// commands awaiting a flush to the transmitter.
const JoystickRingDepth = 8

// Transmitter is the subset of link.Transmitter the command manager needs,
// kept as an interface to avoid a hard dependency cycle between packages
// that both sit under the event loop.
type Transmitter interface {
	SendCommand(opcode byte)
}

// Manager owns the joystick-to-command ring. OnJoystickEdge runs in
// interrupt context; Flush and Dispatch run in the main loop.
type Manager struct {
	joystick *ring.Ring[Command]
}

// NewManager constructs a Manager.
func NewManager() *Manager {
	return &Manager{joystick: ring.New[Command](JoystickRingDepth)}
}

// OnJoystickEdge is the joystick-edge ISR entry point. It maps the button
// to a command and enqueues it; if the ring is full the edge is dropped,
// bounding ISR time at the cost of an occasional missed press under
// saturation.
func (m *Manager) OnJoystickEdge(b Button) {
	cmd, ok := commandByButton[b]
	if !ok || m.joystick.Full() {
		return
	}

	m.joystick.Produce(cmd)
}

// Flush drains all commands queued by OnJoystickEdge out to tx. It must
// be called from the main loop, never from interrupt context.
func (m *Manager) Flush(tx Transmitter) {
	for !m.joystick.Empty() {
		tx.SendCommand(byte(m.joystick.Consume()))
	}
}

// Dispatch executes one command received from the link's command ring.
// NextPicture invokes onNextPicture; every other recognized opcode is
// echoed back out over tx for the remote device to actuate.
func (m *Manager) Dispatch(opcode byte, tx Transmitter, onNextPicture func()) {
	if Command(opcode) == NextPicture {
		onNextPicture()
		return
	}

	tx.SendCommand(opcode)
}
