// https://github.com/usbarmory/picoviewer
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Command viewer is the picture-viewer firmware entrypoint: it wires the
// board's peripheral instances into the command, display, link, and
// viewer packages and runs the event loop until a fatal condition is
// reported.
package main

import (
	"log"
	"time"

	"github.com/usbarmory/picoviewer/board"
	"github.com/usbarmory/picoviewer/command"
	"github.com/usbarmory/picoviewer/console"
	"github.com/usbarmory/picoviewer/display"
	"github.com/usbarmory/picoviewer/link"
	"github.com/usbarmory/picoviewer/viewer"
)

// joystickPollInterval bounds how often feedJoystick samples the GPIO;
// the receive-byte poller does not sleep since it sits in the data path
// the event loop is timesliced against.
const joystickPollInterval = 10 * time.Millisecond

// driveNumber is the only logical drive this firmware mounts.
const driveNumber = 0

func init() {
	log.SetFlags(0)
	log.SetOutput(console.New(board.ConsoleBus{}))
}

func main() {
	board.Init()

	parser := link.NewParser()
	tx := link.NewTransmitter(board.TransmitBus{}, board.PulseTimer{})
	cmdMgr := command.NewManager()
	panel := display.Get(board.LCDBus{}, board.Backlight{})

	l, err := viewer.Start(board.Volume, driveNumber, parser, tx, cmdMgr, panel)
	if err != nil {
		log.Fatalf("viewer: failed to start: %v", err)
	}
	defer l.Close()

	// The event loop only consumes parser.Data/parser.Commands and the
	// command ring; feeding them from the UART receive line and the
	// joystick GPIO is interrupt work on real hardware (out of scope
	// here, see board's package doc). This goroutine is the polling
	// stand-in.
	go feedReceiver(parser)
	go feedJoystick(cmdMgr)

	if err := l.Run(); err != nil {
		log.Fatalf("viewer: event loop terminated: %v", err)
	}
}

// feedReceiver drains board's inbound UART into parser one byte at a
// time, as the receive interrupt would.
func feedReceiver(parser *link.Parser) {
	rx := board.ReceiveBus{}

	for {
		if c, ok := rx.Rx(); ok {
			parser.Feed(c)
		}
	}
}

// feedJoystick polls the joystick GPIO and reports rising edges to
// cmdMgr, as the joystick interrupt would.
func feedJoystick(cmdMgr *command.Manager) {
	pressed := map[command.Button]bool{}

	for {
		now := map[command.Button]bool{}

		for _, b := range board.PollJoystick() {
			now[b] = true

			if !pressed[b] {
				cmdMgr.OnJoystickEdge(b)
			}
		}

		pressed = now

		time.Sleep(joystickPollInterval)
	}
}
