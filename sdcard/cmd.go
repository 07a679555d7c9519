// https://github.com/usbarmory/picoviewer
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package sdcard

import (
	"fmt"
	"runtime"
	"time"

	"github.com/usbarmory/picoviewer/internal/reg"
)

// Command indices, SD physical layer.
const (
	goIdleState         = 0
	sendCardIdNumber    = 2
	sendRelativeAddress = 3
	setBusWidth         = 6 // ACMD6
	selectOrDeselect    = 7
	sendIfCondition     = 8
	sendCardID          = 10
	stopTransmission    = 12
	setBlockLen         = 16
	readSingleBlock     = 17
	readMultipleBlock   = 18
	sendOperationCond   = 41 // ACMD41
	applicationSpecific = 55
)

// responseKind selects how Controller.command should wait and decode.
type responseKind int

const (
	responseNone  responseKind = iota
	responseShort              // 48-bit: one response word
	responseLong                // 136-bit: four response words (CID/CSD)
)

var responseKindByCmd = map[uint32]responseKind{
	goIdleState:         responseNone,
	sendCardIdNumber:    responseLong,
	sendRelativeAddress: responseShort,
	setBusWidth:         responseShort,
	selectOrDeselect:    responseShort,
	sendIfCondition:     responseShort,
	sendCardID:          responseLong,
	stopTransmission:    responseShort,
	setBlockLen:         responseShort,
	readSingleBlock:     responseShort,
	readMultipleBlock:   responseShort,
	sendOperationCond:   responseShort,
	applicationSpecific: responseShort,
}

const cmdErrorMask = (1 << staCCRCFail) | (1 << staCTimeout)

// command issues one command: a write to Arg followed by a write to Cmd
// (opcode | response-type bits | start), then polls Status until either
// the command's completion bit or one of the error bits is asserted. An
// error is returned on timeout or on a CRC/response-timeout flag.
func (c *Controller) command(index uint32, arg uint32) error {
	kind := responseKindByCmd[index]

	reg.Write(c.base.IntClr, 0xFFFFFFFF)
	reg.Write(c.base.Arg, arg)

	cmdReg := index & 0x3F
	if kind != responseNone {
		cmdReg |= 1 << 6
	}
	cmdReg |= 1 << 10 // start

	reg.Write(c.base.Cmd, cmdReg)

	completionBit := staCmdRendEnd
	if kind == responseNone {
		completionBit = staCmdSent
	}

	doneMask := uint32(1<<completionBit) | cmdErrorMask

	start := time.Now()

	for {
		status := reg.Read(c.base.Status)

		if status&doneMask != 0 {
			break
		}

		runtime.Gosched()

		if time.Since(start) >= defaultCmdTimeout {
			return fmt.Errorf("sdcard: CMD%d timeout", index)
		}
	}

	status := reg.Read(c.base.Status)

	if status&cmdErrorMask != 0 {
		return fmt.Errorf("sdcard: CMD%d error status:%#x", index, status)
	}

	return nil
}

func (c *Controller) rsp(i int) uint32 {
	if i > 3 {
		return 0
	}

	return reg.Read(c.base.Resp + uint32(i*4))
}
