// https://github.com/usbarmory/picoviewer
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package link

import "github.com/usbarmory/picoviewer/ring"

// CommandRingDepth is the fixed capacity of the incoming command ring.
const CommandRingDepth = 64

// DataRingDepth is the fixed capacity of the incoming pixel-data ring:
// one horizontal row of 240 BGR888 pixels.
const DataRingDepth = 240 * 3

// Parser is a byte-stream FSM fed one byte at a time by the UART receive
// interrupt. It dispatches payload bytes into either the data ring or the
// command ring depending on the most recently decoded header. Parser is
// owned by the event loop and is not safe for concurrent use by more than
// one feeder.
type Parser struct {
	pending *Header

	Data     *ring.Ring[byte]
	Commands *ring.Ring[byte]
}

// NewParser constructs a Parser with its two backing rings sized per
// CommandRingDepth and DataRingDepth.
func NewParser() *Parser {
	return &Parser{
		Data:     ring.New[byte](DataRingDepth),
		Commands: ring.New[byte](CommandRingDepth),
	}
}

// Feed processes one incoming byte. When pending is nil it is decoded as
// a new block header; an invalid header byte is dropped and the parser
// stays in the header-expecting state (see the parser design note on
// invalid headers). Otherwise the byte is payload: Data bytes go to the
// data ring verbatim, Command bytes go to the command ring as the raw
// opcode byte. When the last payload byte of a block is delivered the
// parser reverts to expecting a new header.
func (p *Parser) Feed(b byte) {
	if p.pending == nil {
		hdr, ok := Decode(b)
		if !ok {
			return
		}

		p.pending = &hdr

		return
	}

	switch p.pending.Category {
	case Data:
		if !p.Data.Full() {
			p.Data.Produce(b)
		}
	case Command:
		if !p.Commands.Full() {
			p.Commands.Produce(b)
		}
	}

	p.pending.Length--
	if p.pending.Length <= 0 {
		p.pending = nil
	}
}
