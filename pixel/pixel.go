// https://github.com/usbarmory/picoviewer
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package pixel holds the two color formats that cross the BMP/wire/LCD
// boundary: Bgr888 as stored in the image file, Rgb666 as carried on the
// wire and written to the panel's 18-bit data bus.
package pixel

// Bgr888 is a 24-bit pixel as stored in a BMP row, blue first.
type Bgr888 struct {
	Blue, Green, Red byte
}

// Rgb666 is an 18-bit pixel packed into the two 16-bit words the LCD bus
// expects, red/green in the first word and blue in the second.
type Rgb666 struct {
	RedGreen uint16
	Blue     uint16
}

// FromBgr888 converts a stored pixel to its wire/LCD representation.
func FromBgr888(p Bgr888) Rgb666 {
	return Rgb666{
		RedGreen: (uint16(p.Red&0xFC) << 8) | uint16(p.Green&0xFC),
		Blue:     uint16(p.Blue) << 8,
	}
}
