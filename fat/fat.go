// https://github.com/usbarmory/picoviewer
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package fat provides a mountable logical drive, sequential file
// read/seek, and cyclic directory iteration on top of an injected FAT
// volume implementation. The on-disk FAT filesystem itself is out of
// scope here: Volume is the seam a concrete driver plugs into.
package fat

import (
	"errors"
	"strings"
)

// ErrMountFailed is returned when the underlying medium has no valid FAT
// volume.
var ErrMountFailed = errors.New("fat: mount failed")

// RawEntry describes one directory entry as reported by a Volume.
type RawEntry struct {
	Name  string
	IsDir bool
}

// Empty reports the end-of-directory sentinel: an entry with no name.
func (e RawEntry) Empty() bool {
	return e.Name == ""
}

// RawFile is the minimal file handle a Volume must provide.
type RawFile interface {
	Read(buf []byte) (int, error)
	Seek(pos uint32) error
	Close() error
}

// RawDir is the minimal directory handle a Volume must provide. Next
// returns the zero RawEntry (Empty() == true) at end of directory without
// an error. Rewind resets iteration back to the first entry, the seam
// CyclicDirectoryIterator needs to wrap around.
type RawDir interface {
	Next() (RawEntry, error)
	Rewind() error
	Close() error
}

// Volume is the interface a concrete FAT driver implements; mounting and
// path resolution are its responsibility.
type Volume interface {
	Mount(driveNumber int, eager bool) error
	Unmount() error
	Open(path string, flags int) (RawFile, error)
	OpenDir(path string) (RawDir, error)
}

// Open flags, mirroring the read-only subset this firmware needs.
const (
	ReadOnly = 1 << iota
)

// LogicalDrive owns a mounted Volume. Close unmounts; a LogicalDrive
// should not be copied once mounted — pass it by pointer.
type LogicalDrive struct {
	vol     Volume
	mounted bool
}

// Mount mounts driveNumber through vol. If eager is false the mount is
// deferred to first access by the underlying driver.
func Mount(vol Volume, driveNumber int, eager bool) (*LogicalDrive, error) {
	if err := vol.Mount(driveNumber, eager); err != nil {
		return nil, ErrMountFailed
	}

	return &LogicalDrive{vol: vol, mounted: true}, nil
}

// IsMounted reports whether the volume mounted successfully.
func (d *LogicalDrive) IsMounted() bool {
	return d != nil && d.mounted
}

// Close unmounts the volume. Safe to call once; the drive must not be used
// afterwards.
func (d *LogicalDrive) Close() error {
	if d == nil || !d.mounted {
		return nil
	}

	d.mounted = false

	return d.vol.Unmount()
}

// File is a sequential, read-only, move-only file handle. Close it (or
// let it go out of scope with a deferred Close) when done; a zero File is
// not usable.
type File struct {
	raw RawFile
}

// Open opens path for reading.
func Open(d *LogicalDrive, path string) (*File, error) {
	raw, err := d.vol.Open(path, ReadOnly)
	if err != nil {
		return nil, err
	}

	return &File{raw: raw}, nil
}

// Read fills buf, returning the number of bytes actually read. A short
// read that is not EOF still returns a nil error with n < len(buf); the
// caller (see viewer.ImageSender) treats n < len(buf) as an I/O error.
func (f *File) Read(buf []byte) (int, error) {
	return f.raw.Read(buf)
}

// Seek moves the read cursor to an absolute byte offset.
func (f *File) Seek(pos uint32) error {
	return f.raw.Seek(pos)
}

// Close releases the underlying file-system object.
func (f *File) Close() error {
	return f.raw.Close()
}

// DirectoryIterator produces DirectoryEntry views over a directory,
// advancing on each call to Next. The end of the directory is observable
// through Entry().Empty().
type DirectoryIterator struct {
	dir   RawDir
	entry RawEntry
	err   error
}

// OpenDir opens path and positions the iterator at the first entry.
func OpenDir(d *LogicalDrive, path string) (*DirectoryIterator, error) {
	raw, err := d.vol.OpenDir(path)
	if err != nil {
		return nil, err
	}

	it := &DirectoryIterator{dir: raw}
	it.advance()

	return it, nil
}

func (it *DirectoryIterator) advance() {
	entry, err := it.dir.Next()
	if err != nil {
		it.entry = RawEntry{}
		it.err = err
		return
	}

	it.entry = entry
}

// Next advances to the next entry.
func (it *DirectoryIterator) Next() {
	it.advance()
}

// Entry returns the current entry. Its Empty() reports end-of-directory.
func (it *DirectoryIterator) Entry() RawEntry {
	return it.entry
}

// Err returns the last error encountered while advancing, if any.
func (it *DirectoryIterator) Err() error {
	return it.err
}

// Close releases the underlying directory handle.
func (it *DirectoryIterator) Close() error {
	return it.dir.Close()
}

// HasBmpExtension reports whether name ends in ".bmp" (case-sensitive, as
// written).
func HasBmpExtension(name string) bool {
	return strings.HasSuffix(name, ".bmp")
}

// CyclicDirectoryIterator behaves like DirectoryIterator except that
// advancing past the last entry rewinds the directory and continues; the
// end sentinel is reachable only when the directory is empty or the
// underlying rewind fails.
type CyclicDirectoryIterator struct {
	DirectoryIterator
}

// OpenCyclicDir opens path as a CyclicDirectoryIterator.
func OpenCyclicDir(d *LogicalDrive, path string) (*CyclicDirectoryIterator, error) {
	base, err := OpenDir(d, path)
	if err != nil {
		return nil, err
	}

	return &CyclicDirectoryIterator{DirectoryIterator: *base}, nil
}

// Next advances to the next entry, wrapping to the first entry of the
// directory if the advance reaches the end sentinel.
func (it *CyclicDirectoryIterator) Next() {
	it.advance()

	if it.err == nil && it.entry.Empty() {
		if rerr := it.dir.Rewind(); rerr != nil {
			it.err = rerr
			return
		}

		it.advance()
	}
}
