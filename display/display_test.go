// https://github.com/usbarmory/picoviewer
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package display

import (
	"testing"

	"github.com/usbarmory/picoviewer/pixel"
)

func resetSingleton() { instance = nil }

type fakeBus struct {
	commands []byte
	words    []uint16
}

func (b *fakeBus) SendCommand(opcode byte) { b.commands = append(b.commands, opcode) }
func (b *fakeBus) Write(word uint16)       { b.words = append(b.words, word) }

type fakeBacklight struct {
	on bool
}

func (b *fakeBacklight) Set(on bool) { b.on = on }

func TestInitSequence(t *testing.T) {
	resetSingleton()

	bus := &fakeBus{}
	bl := &fakeBacklight{}

	Get(bus, bl)

	wantCommands := []byte{cmdSoftReset, cmdRAMControl, cmdColorMode}
	if len(bus.commands) != len(wantCommands) {
		t.Fatalf("got %v, want %v", bus.commands, wantCommands)
	}

	for i := range wantCommands {
		if bus.commands[i] != wantCommands[i] {
			t.Fatalf("got %v, want %v", bus.commands, wantCommands)
		}
	}

	wantWords := []uint16{0x00, 0xF1, 0x06}
	for i := range wantWords {
		if bus.words[i] != wantWords[i] {
			t.Fatalf("got %v, want %v", bus.words, wantWords)
		}
	}
}

func TestDrawAdvancesFillCursor(t *testing.T) {
	resetSingleton()

	bus := &fakeBus{}
	p := Get(bus, &fakeBacklight{})

	p.Refresh()

	p.Draw(pixel.Rgb666{RedGreen: 0x1234, Blue: 0x5600})

	if p.PixelsFilled() != 1 {
		t.Fatalf("pixels_filled = %d, want 1", p.PixelsFilled())
	}

	last := bus.words[len(bus.words)-2:]
	if last[0] != 0x1234 || last[1] != 0x5600 {
		t.Fatalf("got %v", last)
	}
}

func TestRefreshResetsFillCursor(t *testing.T) {
	resetSingleton()

	bus := &fakeBus{}
	p := Get(bus, &fakeBacklight{})

	for i := 0; i < 10; i++ {
		p.Draw(pixel.Rgb666{})
	}

	p.Refresh()

	if p.PixelsFilled() != 0 {
		t.Fatalf("pixels_filled = %d, want 0", p.PixelsFilled())
	}
}

func TestShowTracksActive(t *testing.T) {
	resetSingleton()

	bus := &fakeBus{}
	bl := &fakeBacklight{}
	p := Get(bus, bl)

	p.Show(true)
	if !p.Active() || !bl.on {
		t.Fatal("expected panel active and backlight on")
	}

	p.Show(false)
	if p.Active() || bl.on {
		t.Fatal("expected panel inactive and backlight off")
	}
}
