// https://github.com/usbarmory/picoviewer
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package viewer

import (
	"errors"

	"github.com/usbarmory/picoviewer/fat"
)

// fakeVolume is an in-memory fat.Volume backing tests that need real
// *fat.File/*fat.LogicalDrive instances rather than mocking ImageSender
// directly.
type fakeVolume struct {
	files   map[string][]byte
	dirents []fat.RawEntry
}

func (v *fakeVolume) Mount(driveNumber int, eager bool) error { return nil }
func (v *fakeVolume) Unmount() error                          { return nil }

func (v *fakeVolume) Open(path string, flags int) (fat.RawFile, error) {
	data, ok := v.files[path]
	if !ok {
		return nil, errors.New("not found")
	}
	return &fakeFile{data: data}, nil
}

func (v *fakeVolume) OpenDir(path string) (fat.RawDir, error) {
	return &fakeDir{entries: v.dirents}, nil
}

type fakeFile struct {
	data []byte
	pos  int
}

func (f *fakeFile) Read(buf []byte) (int, error) {
	n := copy(buf, f.data[f.pos:])
	f.pos += n
	return n, nil
}

func (f *fakeFile) Seek(pos uint32) error {
	if int(pos) > len(f.data) {
		return errors.New("seek out of range")
	}
	f.pos = int(pos)
	return nil
}

func (f *fakeFile) Close() error { return nil }

type fakeDir struct {
	entries []fat.RawEntry
	idx     int
}

func (d *fakeDir) Next() (fat.RawEntry, error) {
	if d.idx >= len(d.entries) {
		return fat.RawEntry{}, nil
	}
	e := d.entries[d.idx]
	d.idx++
	return e, nil
}

func (d *fakeDir) Rewind() error {
	d.idx = 0
	return nil
}

func (d *fakeDir) Close() error { return nil }

func mustMount(files map[string][]byte, dirents []fat.RawEntry) *fat.LogicalDrive {
	vol := &fakeVolume{files: files, dirents: dirents}
	d, err := fat.Mount(vol, 0, false)
	if err != nil {
		panic(err)
	}
	return d
}

// fakeBus and fakeTimer satisfy link.Bus/link.OneShotTimer.
type fakeBus struct {
	wire []byte
	rts  bool
}

func (b *fakeBus) SetData(v byte)    { b.wire = append(b.wire, v) }
func (b *fakeBus) SetRTS(valid bool) { b.rts = valid }

type fakeTimer struct{}

func (fakeTimer) Arm(us uint32) {}

// fakeDisplayBus and fakeBacklight satisfy display.Bus/display.Backlight.
type fakeDisplayBus struct {
	commands []byte
	words    []uint16
}

func (b *fakeDisplayBus) SendCommand(opcode byte) { b.commands = append(b.commands, opcode) }
func (b *fakeDisplayBus) Write(word uint16)       { b.words = append(b.words, word) }

type fakeBacklight struct{ on bool }

func (b *fakeBacklight) Set(on bool) { b.on = on }
