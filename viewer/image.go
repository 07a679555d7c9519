// https://github.com/usbarmory/picoviewer
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package viewer implements components C10 (image sender) and C11 (event
// loop): opening displayable BMP files from the root directory, streaming
// their rows out over the link, and reassembling inbound pixel bytes onto
// the local display.
package viewer

import (
	"github.com/usbarmory/picoviewer/bmp"
	"github.com/usbarmory/picoviewer/fat"
)

// ImageRoot is the directory images are read from.
const ImageRoot = `\`

// Image pairs an open file with its validated BMP header.
type Image struct {
	File   *fat.File
	Header bmp.Header
}

// TryOpenImage opens name under drive's root and validates it as a
// 240x240 24-bit BMP. It reports false for anything that is not a regular
// ".bmp" file, does not open, or fails BMP validation; the caller owns
// closing the returned Image's File on success.
func TryOpenImage(drive *fat.LogicalDrive, name string) (*Image, bool) {
	if !fat.HasBmpExtension(name) {
		return nil, false
	}

	f, err := fat.Open(drive, ImageRoot+name)
	if err != nil {
		return nil, false
	}

	hdr, ok := validateHeader(f)
	if !ok {
		f.Close()
		return nil, false
	}

	return &Image{File: f, Header: hdr}, true
}

func validateHeader(f *fat.File) (bmp.Header, bool) {
	buf := make([]byte, bmp.HeaderSize)

	n, err := f.Read(buf)
	if err != nil || n != bmp.HeaderSize {
		return bmp.Header{}, false
	}

	hdr, ok := bmp.Parse(buf)
	if !ok || !hdr.Displayable() {
		return bmp.Header{}, false
	}

	return hdr, true
}

// CountImages walks every entry one, non-cyclic pass and counts the
// regular files that open as displayable images. Used at startup to
// fail fast when the card carries none.
func CountImages(drive *fat.LogicalDrive, root string) (int, error) {
	it, err := fat.OpenDir(drive, root)
	if err != nil {
		return 0, err
	}
	defer it.Close()

	count := 0
	for !it.Entry().Empty() {
		entry := it.Entry()

		if !entry.IsDir {
			if img, ok := TryOpenImage(drive, entry.Name); ok {
				img.File.Close()
				count++
			}
		}

		it.Next()
	}

	return count, it.Err()
}
