// https://github.com/usbarmory/picoviewer
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package sdcard

import "github.com/usbarmory/picoviewer/internal/bits"

// CardStatus decodes the 32-bit card status carried in R1-type responses.
type CardStatus struct {
	OutOfRange       bool
	AddressError     bool
	BlockLenError    bool
	EraseSeqError    bool
	EraseParam       bool
	WpViolation      bool
	CardIsLocked     bool
	LockUnlockFailed bool
	ComCrcError      bool
	IllegalCommand   bool
	CardEccFailed    bool
	ControllerError  bool
	Error            bool
	CsdOverwrite     bool
	WpEraseSkip      bool
	CardEccDisabled  bool
	EraseReset       bool
	ReadyForData     bool
	AppCmd           bool
	AkeSeqError      bool
	CurrentState     uint32 // 4-bit field, bits [12:9]
}

func parseCardStatus(r1 uint32) CardStatus {
	bit := func(pos int) bool { return bits.Get(&r1, pos, 1) == 1 }

	return CardStatus{
		OutOfRange:       bit(31),
		AddressError:     bit(30),
		BlockLenError:    bit(29),
		EraseSeqError:    bit(28),
		EraseParam:       bit(27),
		WpViolation:      bit(26),
		CardIsLocked:     bit(25),
		LockUnlockFailed: bit(24),
		ComCrcError:      bit(23),
		IllegalCommand:   bit(22),
		CardEccFailed:    bit(21),
		ControllerError:  bit(20),
		Error:            bit(19),
		CsdOverwrite:     bit(16),
		WpEraseSkip:      bit(15),
		CardEccDisabled:  bit(14),
		EraseReset:       bit(13),
		CurrentState:     bits.Get(&r1, 9, 0xF),
		ReadyForData:     bit(8),
		AppCmd:           bit(6),
		AkeSeqError:      bit(3),
	}
}

// CardIdNumber is the raw 32-bit value returned by CMD2 when only the
// manufacturer-local number is needed (short-response variants of the
// identification flow never request this; it is kept for completeness).
type CardIdNumber struct {
	Value uint32
}

// RelativeAddress is the R6 response to CMD3: the assigned RCA plus the
// card's own status bits packed into the low 16 bits.
type RelativeAddress struct {
	Address uint16
	IrqData uint16
}

func parseRelativeAddress(r1 uint32) RelativeAddress {
	return RelativeAddress{
		Address: uint16(r1 >> 16),
		IrqData: uint16(r1 & 0xFFFF),
	}
}

// OpCond is the R3 response to ACMD41.
type OpCond struct {
	LowVoltage     bool
	Voltage        uint32 // 9-bit field, bits [23:15]
	Accepted1_8V   bool
	Over2TBSupport bool
	UHS2           bool
	HighCapacity   bool
	Busy           bool
}

func parseOpCond(r1 uint32) OpCond {
	return OpCond{
		LowVoltage:     bits.Get(&r1, 7, 1) == 1,
		Voltage:        bits.Get(&r1, 15, 0x1FF),
		Accepted1_8V:   bits.Get(&r1, 24, 1) == 1,
		Over2TBSupport: bits.Get(&r1, 27, 1) == 1,
		UHS2:           bits.Get(&r1, 29, 1) == 1,
		HighCapacity:   bits.Get(&r1, 30, 1) == 1,
		Busy:           bits.Get(&r1, 31, 1) == 0,
	}
}

// IfCond is the R7 response to CMD8.
type IfCond struct {
	Vhs     byte
	Pattern byte
}

func parseIfCond(r1 uint32) IfCond {
	return IfCond{
		Vhs:     byte((r1 >> 8) & 0xFF),
		Pattern: byte(r1 & 0xFF),
	}
}

// CardId is the 128-bit CID register parsed into its named fields.
type CardId struct {
	ManufacturerID byte
	OemID          [2]byte
	ProductName    [5]byte
	Revision       byte
	Year           uint32
	Month          uint32
	SerialNumber   uint32
}

func parseCardId(r1, r2, r3, r4 uint32) CardId {
	id := CardId{
		ManufacturerID: byte(r1 >> 24),
		OemID:          [2]byte{byte(r1 >> 16), byte(r1 >> 8)},
	}

	id.ProductName[0] = byte(r1)
	id.ProductName[1] = byte(r2)
	id.ProductName[2] = byte(r2 >> 8)
	id.ProductName[3] = byte(r2 >> 16)
	id.ProductName[4] = byte(r2 >> 24)

	id.Revision = byte(r3 >> 24)
	id.SerialNumber = ((r3 & 0xFFFFFF) << 8) | (r4 >> 24)
	id.Year = (r4 >> 12) & 0xFF
	id.Month = (r4 >> 8) & 0xF

	return id
}
