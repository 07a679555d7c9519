// https://github.com/usbarmory/picoviewer
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package viewer

import (
	"github.com/usbarmory/picoviewer/pixel"
	"github.com/usbarmory/picoviewer/ring"
)

// pixelBytes is the wire size of one Rgb666 pixel: two 16-bit words.
const pixelBytes = 4

// PixelPart reassembles a pixel.Rgb666 out of the raw bytes the link
// delivers one (or a few) at a time, carrying a partial pixel across
// loop iterations until all four bytes have arrived.
type PixelPart struct {
	buf [pixelBytes]byte
	n   int
}

// Update pulls as many bytes as are currently available from data, up to
// completing the pixel. It reports whether a full pixel is now ready.
func (p *PixelPart) Update(data *ring.Ring[byte]) bool {
	for p.n < pixelBytes && !data.Empty() {
		p.buf[p.n] = data.Consume()
		p.n++
	}

	return p.n == pixelBytes
}

// Take returns the reassembled pixel and resets the part for the next one.
// Only valid to call once Update has reported true.
func (p *PixelPart) Take() pixel.Rgb666 {
	px := pixel.Rgb666{
		RedGreen: uint16(p.buf[0])<<8 | uint16(p.buf[1]),
		Blue:     uint16(p.buf[2])<<8 | uint16(p.buf[3]),
	}

	p.n = 0

	return px
}
