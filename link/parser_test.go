// https://github.com/usbarmory/picoviewer
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package link

import "testing"

func TestParserDataBlock(t *testing.T) {
	p := NewParser()

	p.Feed(0x7F) // Data, length 64

	payload := make([]byte, 64)
	for i := range payload {
		payload[i] = byte(i + 1)
	}

	for _, b := range payload {
		p.Feed(b)
	}

	if p.Data.Size() != 64 {
		t.Fatalf("data ring size = %d, want 64", p.Data.Size())
	}

	for _, want := range payload {
		if got := p.Data.Consume(); got != want {
			t.Fatalf("got %d, want %d", got, want)
		}
	}
}

func TestParserCommandBlock(t *testing.T) {
	p := NewParser()

	p.Feed(0x80) // Command, length 1
	p.Feed(0x01) // GreenLedOn opcode

	if p.Commands.Size() != 1 {
		t.Fatalf("command ring size = %d, want 1", p.Commands.Size())
	}

	if got := p.Commands.Consume(); got != 0x01 {
		t.Fatalf("got %#02x, want 0x01", got)
	}
}

func TestParserBackToBackBlocks(t *testing.T) {
	p := NewParser()

	p.Feed(Encode(Header{Category: Command, Length: 2}))
	p.Feed(0x01)
	p.Feed(0x04)

	p.Feed(Encode(Header{Category: Command, Length: 1}))
	p.Feed(0x80)

	if p.Commands.Size() != 3 {
		t.Fatalf("command ring size = %d, want 3", p.Commands.Size())
	}
}

func TestParserDropsInvalidHeader(t *testing.T) {
	p := NewParser()

	p.Feed(0x00) // invalid: top bits 00

	if p.Data.Size() != 0 || p.Commands.Size() != 0 {
		t.Fatal("invalid header byte should not route to either ring")
	}

	// parser should resynchronize and accept the next valid header
	p.Feed(Encode(Header{Category: Data, Length: 1}))
	p.Feed(0xAB)

	if p.Data.Size() != 1 {
		t.Fatal("parser failed to resynchronize after invalid header")
	}
}
