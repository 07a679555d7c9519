// https://github.com/usbarmory/picoviewer
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package sdcard

import (
	"errors"

	"github.com/usbarmory/picoviewer/internal/reg"
)

// ErrWriteUnsupported is returned by WriteBlock unconditionally: block
// writes were never implemented by the system this firmware is modeled
// on and must not be claimed to work here either.
var ErrWriteUnsupported = errors.New("sdcard: write not supported")

const (
	hostVoltageWindow = 0x300000
	hostSpecsV1       = hostVoltageWindow
	hostSpecsV2       = hostVoltageWindow | 0x40000000

	ifCondVoltageTag   = 0x1AA // VHS=0b0001, check pattern=0xAA
	wideBusMode        = 0b10
	defaultBlockLength = 512
)

// Card describes the identified SD card, or its absence. The zero value
// represents Absent.
type Card struct {
	Present bool
	Address uint32 // RCA, shifted into argument position (rca<<16)
	ID      CardId
}

// Controller is the process-wide singleton owning the SDIO peripheral.
// It is reached both from the main loop (block reads) and from the
// card-detect interrupt (OnCardDetect).
type Controller struct {
	base Base
	card Card
}

var instance *Controller

// Get returns the lazily-initialized Controller singleton.
func Get(base Base) *Controller {
	if instance == nil {
		instance = &Controller{base: base}
	}

	return instance
}

// Card returns the current card descriptor.
func (c *Controller) Card() Card {
	return c.card
}

// OnCardDetect is the card-detect edge ISR entry point. A falling edge
// (card inserted) triggers identification; a rising edge (card removed)
// powers the peripheral down and clears the descriptor.
func (c *Controller) OnCardDetect(inserted bool) {
	if !inserted {
		c.powerOff()
		return
	}

	card, err := c.identify()
	if err != nil {
		c.powerOff()
		return
	}

	c.card = card
}

func (c *Controller) powerOff() {
	reg.Write(c.base.Power, 0)
	c.card = Card{}
}

// identify runs the Absent->Present identification sequence described in
// component C4: reset, version probe, ACMD41 polling loop, CID/RCA
// retrieval, clock switch, select, block length and bus width setup.
func (c *Controller) identify() (Card, error) {
	if err := c.command(goIdleState, 0); err != nil {
		return Card{}, err
	}

	isV2 := false

	if err := c.command(sendIfCondition, ifCondVoltageTag); err == nil {
		cond := parseIfCond(c.rsp(0))
		if cond.Vhs == 0x1 && cond.Pattern == 0xAA {
			isV2 = true
		}
	}

	hostSpecs := uint32(hostSpecsV1)
	if isV2 {
		hostSpecs = hostSpecsV2
	}

	for {
		if err := c.command(applicationSpecific, 0); err != nil {
			return Card{}, err
		}

		if err := c.command(sendOperationCond, hostSpecs); err != nil {
			return Card{}, err
		}

		op := parseOpCond(c.rsp(0))
		if !op.Busy {
			break
		}
	}

	if err := c.command(sendCardIdNumber, 0); err != nil {
		return Card{}, err
	}

	if err := c.command(sendRelativeAddress, 0); err != nil {
		return Card{}, err
	}

	rca := parseRelativeAddress(c.rsp(0))
	arg := uint32(rca.Address) << 16

	if err := c.command(sendCardID, arg); err != nil {
		return Card{}, err
	}

	id := parseCardId(c.rsp(0), c.rsp(1), c.rsp(2), c.rsp(3))

	c.switchToHighSpeedClock()

	if err := c.command(selectOrDeselect, arg); err != nil {
		return Card{}, err
	}

	if err := c.command(setBlockLen, defaultBlockLength); err != nil {
		return Card{}, err
	}

	status := parseCardStatus(c.rsp(0))
	if status.BlockLenError {
		return Card{}, errors.New("sdcard: block_len_error set")
	}

	if err := c.command(applicationSpecific, arg); err != nil {
		return Card{}, err
	}

	if err := c.command(setBusWidth, wideBusMode); err != nil {
		return Card{}, err
	}

	c.enableWideBus()

	return Card{Present: true, Address: arg, ID: id}, nil
}

func (c *Controller) switchToHighSpeedClock() {
	reg.SetN(c.base.Clock, 0, 0xFF, 0) // divider = 0
}

func (c *Controller) enableWideBus() {
	reg.Set(c.base.Clock, 11)
}

// WriteBlock is a stub: card writes are not a core feature of this
// system and must not be claimed to work.
func (c *Controller) WriteBlock(lba uint32, buf []byte) error {
	return ErrWriteUnsupported
}
