// https://github.com/usbarmory/picoviewer
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package sdcard

import (
	"errors"
	"runtime"

	"github.com/usbarmory/picoviewer/internal/reg"
)

// TransferStatus is the result of a block transfer, in priority order
// matching the translation rule in component C4.
type TransferStatus int

const (
	Success TransferStatus = iota
	Timeout
	CrcFail
	RxOverrun
	TxUnderrun
	StartBitError
)

func (s TransferStatus) Error() string {
	switch s {
	case Success:
		return "success"
	case Timeout:
		return "timeout"
	case CrcFail:
		return "crc failure"
	case RxOverrun:
		return "rx overrun"
	case TxUnderrun:
		return "tx underrun"
	case StartBitError:
		return "start bit error"
	default:
		return "unknown"
	}
}

const sdioClockHz = 48_000_000

// ReadBlock reads a single 512-byte block at lba into buf (which must be
// exactly 512 bytes).
func (c *Controller) ReadBlock(lba uint32, buf []byte) error {
	return c.readBlocks(lba, buf, 1)
}

func (c *Controller) readBlocks(lba uint32, buf []byte, blocks int) error {
	if !c.card.Present {
		return errors.New("sdcard: no card present")
	}

	dtimer := uint32(100 * (sdioClockHz / 1000 / 2))
	reg.Write(c.base.DTimer, dtimer)
	reg.Write(c.base.DLen, uint32(blocks*defaultBlockLength))

	dctrl := uint32(1 << dctrlDirection) // card -> host
	dctrl |= 9 << dctrlBlockSize         // log2(512) == 9
	dctrl |= 1 << dctrlEnable

	reg.Write(c.base.DCtrl, dctrl)

	cmdIndex := uint32(readSingleBlock)
	if blocks > 1 {
		cmdIndex = readMultipleBlock
	}

	if err := c.command(cmdIndex, lba); err != nil {
		return err
	}

	offset := 0

	for offset < len(buf) {
		if reg.Get(c.base.Status, staRxFIFOFull, 1) == 1 {
			offset = c.drainFIFO(buf, offset, fifoWordLength)
			continue
		}

		status := reg.Read(c.base.Status)
		if status&errorStatusMask() != 0 {
			return c.translateStatus(status)
		}

		runtime.Gosched()
	}

	for reg.Get(c.base.Status, staRxDataAvail, 1) == 1 {
		offset = c.drainFIFO(buf, offset, 1)
	}

	if blocks > 1 {
		if err := c.command(stopTransmission, 0); err != nil {
			return err
		}
	}

	final := reg.Read(c.base.Status)

	return c.translateStatus(final)
}

func (c *Controller) drainFIFO(buf []byte, offset int, words int) int {
	for i := 0; i < words && offset+fifoWordBytes <= len(buf); i++ {
		word := reg.Read(c.base.FIFO)

		buf[offset+0] = byte(word)
		buf[offset+1] = byte(word >> 8)
		buf[offset+2] = byte(word >> 16)
		buf[offset+3] = byte(word >> 24)

		offset += fifoWordBytes
	}

	return offset
}

func errorStatusMask() uint32 {
	return (1 << staDCRCFail) | (1 << staDTimeout) | (1 << staStartBitErr) | (1 << staRxOverrun) | (1 << staTxUnderrun)
}

// translateStatus maps the native status word to a TransferStatus,
// checking flags in priority order: timeout, crc, overrun/underrun,
// start-bit error, else success.
func (c *Controller) translateStatus(status uint32) error {
	switch {
	case status&(1<<staDTimeout) != 0 || status&(1<<staCTimeout) != 0:
		return Timeout
	case status&(1<<staDCRCFail) != 0 || status&(1<<staCCRCFail) != 0:
		return CrcFail
	case status&(1<<staRxOverrun) != 0:
		return RxOverrun
	case status&(1<<staTxUnderrun) != 0:
		return TxUnderrun
	case status&(1<<staStartBitErr) != 0:
		return StartBitError
	default:
		return nil
	}
}
