// https://github.com/usbarmory/picoviewer
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package bmp validates and extracts the file/info header fields of an
// uncompressed 24-bit Windows Bitmap from a raw 54-byte window. It does
// not decode pixel data; row access belongs to the caller (see the
// viewer package's image sender).
package bmp

import "encoding/binary"

// HeaderSize is the combined size, in bytes, of the 14-byte file header
// and the 40-byte BITMAPINFOHEADER.
const HeaderSize = 54

const signature = 0x4D42 // "BM"

// Header holds the fields of a BMP file/info header pair needed to decide
// whether the image is displayable.
type Header struct {
	FileSize     uint32
	BitmapOffset uint32
	InfoSize     uint32
	Width        int32
	Height       int32
	Planes       uint16
	BitCount     uint16
}

// BitmapSize returns the uncompressed pixel data size implied by the
// header's width, height and bit depth.
func (h Header) BitmapSize() uint32 {
	return uint32(h.Height) * uint32(h.Width) * uint32(h.BitCount) / 8
}

// Displayable reports whether the image is a 240x240 frame this firmware
// can show.
func (h Header) Displayable() bool {
	return h.Width == 240 && h.Height == 240
}

// Parse validates a raw 54-byte header window and extracts its fields.
// It returns false if any predicate in the format fails; on failure no
// partial Header should be relied upon.
func Parse(b []byte) (Header, bool) {
	var h Header

	if len(b) != HeaderSize {
		return h, false
	}

	if binary.LittleEndian.Uint16(b[0x00:]) != signature {
		return h, false
	}

	h.FileSize = binary.LittleEndian.Uint32(b[0x02:])
	if h.FileSize == 0 {
		return h, false
	}

	h.BitmapOffset = binary.LittleEndian.Uint32(b[0x0A:])
	if h.BitmapOffset < HeaderSize {
		return h, false
	}

	h.InfoSize = binary.LittleEndian.Uint32(b[0x0E:])
	if h.InfoSize == 0 {
		return h, false
	}

	h.Width = int32(binary.LittleEndian.Uint32(b[0x12:]))
	h.Height = int32(binary.LittleEndian.Uint32(b[0x16:]))
	if h.Width <= 0 || h.Height <= 0 {
		return h, false
	}

	h.Planes = binary.LittleEndian.Uint16(b[0x1A:])
	h.BitCount = binary.LittleEndian.Uint16(b[0x1C:])

	if h.FileSize < h.BitmapSize() {
		return h, false
	}

	return h, true
}
