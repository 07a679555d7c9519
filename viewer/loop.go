// https://github.com/usbarmory/picoviewer
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package viewer

import (
	"errors"

	"github.com/usbarmory/picoviewer/command"
	"github.com/usbarmory/picoviewer/display"
	"github.com/usbarmory/picoviewer/fat"
	"github.com/usbarmory/picoviewer/link"
)

// Per-iteration work bounds, see component C11.
const (
	PixelTimeslice   = 240
	CommandTimeslice = 8
)

// Fatal conditions the event loop can terminate with, see the error
// taxonomy in component C11's design.
var (
	ErrMountFailure              = errors.New("viewer: mount failed")
	ErrNoImages                  = errors.New("viewer: no displayable images on card")
	ErrDirectoryAdvanceExhausted = errors.New("viewer: directory advance exhausted")
	ErrImageIoError              = errors.New("viewer: image i/o error")
)

// Loop is the event loop described in component C11: it owns the mounted
// drive, the cyclic directory iterator, the link's parser and
// transmitter, the command manager and the display, and drives them one
// bounded-work iteration at a time.
type Loop struct {
	drive  *fat.LogicalDrive
	dirIt  *fat.CyclicDirectoryIterator
	parser *link.Parser
	tx     *link.Transmitter
	cmdMgr *command.Manager
	panel  *display.Panel

	part   PixelPart
	image  *Image
	sender *ImageSender
}

// Start mounts vol, fails fast if it carries no displayable image, opens
// a cyclic iterator over the root directory, activates the panel, and
// registers parser as the link's byte sink. The caller is responsible for
// wiring parser.Feed to the UART receive interrupt before or after Start;
// Start does not itself touch interrupt vectors (board's responsibility).
func Start(vol fat.Volume, driveNumber int, parser *link.Parser, tx *link.Transmitter, cmdMgr *command.Manager, panel *display.Panel) (*Loop, error) {
	drive, err := fat.Mount(vol, driveNumber, false)
	if err != nil {
		return nil, ErrMountFailure
	}

	count, err := CountImages(drive, ImageRoot)
	if err != nil || count == 0 {
		return nil, ErrNoImages
	}

	dirIt, err := fat.OpenCyclicDir(drive, ImageRoot)
	if err != nil {
		return nil, ErrNoImages
	}

	panel.Show(true)

	return &Loop{
		drive:  drive,
		dirIt:  dirIt,
		parser: parser,
		tx:     tx,
		cmdMgr: cmdMgr,
		panel:  panel,
	}, nil
}

// Close releases the directory iterator and unmounts the drive. Callers
// that terminate the loop (error return from Run) should call Close.
func (l *Loop) Close() error {
	l.dirIt.Close()
	return l.drive.Close()
}

// Run drives the loop until a fatal condition occurs.
func (l *Loop) Run() error {
	for {
		if err := l.step(); err != nil {
			return err
		}
	}
}

// step performs one bounded iteration: flush outbound commands, then
// either pump pixels or pump commands depending on fill state, then
// advance any in-flight row transmission.
func (l *Loop) step() error {
	l.cmdMgr.Flush(l.tx)

	if !l.panel.Filled() && l.image != nil {
		l.pumpPixels()
	} else if err := l.pumpCommands(); err != nil {
		return err
	}

	if l.sender != nil {
		switch l.sender.Transmit(l.tx) {
		case IoError:
			return ErrImageIoError
		case Completed:
			l.sender = nil
		}
	}

	return nil
}

// pumpPixels draws up to PixelTimeslice reassembled pixels from the
// link's data ring onto the panel.
func (l *Loop) pumpPixels() {
	for i := 0; i < PixelTimeslice; i++ {
		if !l.part.Update(l.parser.Data) {
			break
		}

		l.panel.Draw(l.part.Take())
	}
}

// pumpCommands dispatches up to CommandTimeslice commands from the
// link's command ring.
func (l *Loop) pumpCommands() error {
	for i := 0; i < CommandTimeslice; i++ {
		if l.parser.Commands.Empty() {
			break
		}

		opcode := l.parser.Commands.Consume()

		var advanceErr error
		l.cmdMgr.Dispatch(opcode, l.tx, func() {
			advanceErr = l.advanceImage()
		})

		if advanceErr != nil {
			return advanceErr
		}
	}

	return nil
}

// advanceImage implements NextPicture: it walks the cyclic directory
// iterator forward until an entry opens as a valid image or the walk
// returns to its starting entry without success, in which case the
// directory is exhausted and the loop must terminate. On success the
// previous image is closed, the panel is refreshed, and a fresh
// ImageSender takes over outbound streaming.
func (l *Loop) advanceImage() error {
	start := l.dirIt.Entry().Name

	for {
		l.dirIt.Next()
		entry := l.dirIt.Entry()

		if entry.Empty() {
			return ErrDirectoryAdvanceExhausted
		}

		if !entry.IsDir {
			if img, ok := TryOpenImage(l.drive, entry.Name); ok {
				if l.image != nil {
					l.image.File.Close()
				}

				l.image = img
				l.panel.Refresh()
				l.sender = NewImageSender(img)

				return nil
			}
		}

		if entry.Name == start {
			return ErrDirectoryAdvanceExhausted
		}
	}
}
