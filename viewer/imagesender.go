// https://github.com/usbarmory/picoviewer
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package viewer

import "github.com/usbarmory/picoviewer/link"

// rowBytes is one 240-pixel row of 24-bit BGR888 storage.
const rowBytes = 240 * 3

// SendStatus reports the outcome of one ImageSender.Transmit call.
type SendStatus int

const (
	InProgress SendStatus = iota
	Completed
	IoError
)

// ImageSender streams an Image's rows out over the link, one row per
// Transmit call, bottom-up as stored in the file, each row mirrored
// left-right before it goes on the wire.
type ImageSender struct {
	image    *Image
	rowsSent int
	row      []byte
}

// NewImageSender constructs an ImageSender for img. img must remain open
// for the lifetime of the sender.
func NewImageSender(img *Image) *ImageSender {
	return &ImageSender{image: img}
}

// Transmit advances the send state by at most one row per call: a
// buffered row is handed to tx and the row counter advances; otherwise
// the next row is read (seeking to the bitmap data on the first row) and
// mirrored, ready for the following call. Any seek or short-read failure
// is reported as IoError.
func (s *ImageSender) Transmit(tx *link.Transmitter) SendStatus {
	if s.rowsSent == 240 {
		return Completed
	}

	if s.row != nil {
		tx.SendData(s.row)
		s.rowsSent++
		s.row = nil

		return InProgress
	}

	if s.rowsSent == 0 {
		if err := s.image.File.Seek(s.image.Header.BitmapOffset); err != nil {
			return IoError
		}
	}

	buf := make([]byte, rowBytes)

	n, err := s.image.File.Read(buf)
	if err != nil || n != rowBytes {
		return IoError
	}

	mirrorRow(buf)
	s.row = buf

	return InProgress
}

// mirrorRow reverses the left-right pixel order of one BGR888 row
// in-place, leaving each 3-byte pixel intact.
func mirrorRow(buf []byte) {
	const bpp = 3

	n := len(buf) / bpp
	for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
		for k := 0; k < bpp; k++ {
			buf[i*bpp+k], buf[j*bpp+k] = buf[j*bpp+k], buf[i*bpp+k]
		}
	}
}
