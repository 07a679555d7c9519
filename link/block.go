// https://github.com/usbarmory/picoviewer
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package link implements the framed byte-link protocol: the one-byte
// block header codec, the incoming request parser, and the outbound
// parallel-port transmitter with its RTS/CTS/OV handshake.
package link

// Category distinguishes a block's payload kind.
type Category byte

const (
	Data    Category = 1
	Command Category = 2
)

// MaxBlockLength is the largest payload a single block can carry.
const MaxBlockLength = 64

// Header is the one-byte block header: bits [7:6] hold the category,
// bits [5:0] hold length-1.
type Header struct {
	Category Category
	Length   int // 1..64
}

// Encode packs h into its one-byte wire form. The caller must ensure
// Length is in [1, 64]; Encode does not validate.
func Encode(h Header) byte {
	return (byte(h.Category) << 6) | byte(h.Length-1)
}

// Decode unpacks a wire byte into a Header. It returns false if the
// category bits are neither Data nor Command (i.e. the top two bits are
// 00 or 11).
func Decode(b byte) (Header, bool) {
	cat := Category(b >> 6)
	if cat != Data && cat != Command {
		return Header{}, false
	}

	return Header{Category: cat, Length: int(b&0x3F) + 1}, true
}
