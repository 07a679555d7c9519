// https://github.com/usbarmory/picoviewer
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package viewer

import "encoding/binary"

// bmpFileSize is the on-disk size of a minimal 240x240 24bpp BMP: header
// plus 240 unpadded 720-byte rows.
const bmpFileSize = bmpHeaderSize + 240*rowBytes
const bmpHeaderSize = 54

// bmpFile builds a synthetic 240x240 24bpp BMP file, one row at a time via
// fill, which receives the row index (0 = first row stored, i.e. the
// bottom of the image) and returns that row's 720 bytes.
func bmpFile(fill func(row int) []byte) []byte {
	b := make([]byte, bmpFileSize)

	binary.LittleEndian.PutUint16(b[0x00:], 0x4D42)
	binary.LittleEndian.PutUint32(b[0x02:], bmpFileSize)
	binary.LittleEndian.PutUint32(b[0x0A:], bmpHeaderSize)
	binary.LittleEndian.PutUint32(b[0x0E:], 40)
	binary.LittleEndian.PutUint32(b[0x12:], 240)
	binary.LittleEndian.PutUint32(b[0x16:], 240)
	binary.LittleEndian.PutUint16(b[0x1A:], 1)
	binary.LittleEndian.PutUint16(b[0x1C:], 24)

	for row := 0; row < 240; row++ {
		copy(b[bmpHeaderSize+row*rowBytes:], fill(row))
	}

	return b
}

// solidRow returns a 720-byte row of identical (blue, green, red) pixels.
func solidRow(blue, green, red byte) []byte {
	row := make([]byte, rowBytes)
	for i := 0; i < 240; i++ {
		row[i*3] = blue
		row[i*3+1] = green
		row[i*3+2] = red
	}
	return row
}
