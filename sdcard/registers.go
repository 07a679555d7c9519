// https://github.com/usbarmory/picoviewer
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package sdcard implements component C4: SD card detection,
// identification, a block-transfer state machine over a direct-FIFO SDIO
// peripheral, and hot-plug handling. Register layout, clock tree and
// pin-muxing of the surrounding MCU are out of scope; Base is the one
// placeholder a board package supplies.
package sdcard

import "time"

// Base holds the register block base addresses a board wires up. The
// exact offsets below follow a direct-FIFO SDIO-class controller (one
// CMD/ARG pair, a status register polled per command, a 32-bit FIFO
// drained word-by-word), not a descriptor/DMA controller.
type Base struct {
	Power   uint32 // power control
	Clock   uint32 // clock divider / enable
	Arg     uint32 // command argument
	Cmd     uint32 // command index + flags + start
	Status  uint32 // status flags (command + data)
	IntClr  uint32 // interrupt/status clear
	Resp    uint32 // first of four consecutive 32-bit response words
	DTimer  uint32 // data timeout, in card bus clock cycles
	DLen    uint32 // data length, in bytes
	DCtrl   uint32 // data control (direction, block size, enable, mode)
	FIFO    uint32 // 32-bit FIFO data port
	FIFOCnt uint32 // words remaining in FIFO
}

// Status register bit positions.
const (
	staCmdRendEnd  = 6  // command response received, CRC ok
	staCmdSent     = 7  // command sent, no response expected
	staCCRCFail    = 0  // command response CRC failure
	staCTimeout    = 2  // command response timeout
	staDCRCFail    = 1  // data block CRC failure
	staDTimeout    = 3  // data timeout
	staTxUnderrun  = 4  // transmit FIFO underrun
	staRxOverrun   = 5  // receive FIFO overrun
	staDataEnd     = 8  // data end (multi-block)
	staDBlockEnd   = 10 // data block end (single block)
	staStartBitErr = 9  // start-bit error on data
	staRxFIFOFull  = 21 // receive FIFO full (16 words available)
	staRxDataAvail = 17 // receive FIFO has data
)

// DCtrl register bit positions.
const (
	dctrlEnable     = 0
	dctrlDirection  = 1 // 0 = host->card, 1 = card->host
	dctrlMode       = 2 // 0 = block, 1 = stream
	dctrlBlockSize  = 4 // 4-bit field, log2(block size)
	dctrlSDIOEnable = 11
)

const (
	fifoWordLength = 16 // FIFO depth in 32-bit words
	fifoWordBytes  = 4

	defaultCmdTimeout = 100 * time.Millisecond
)
