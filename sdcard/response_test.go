// https://github.com/usbarmory/picoviewer
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package sdcard

import "testing"

func TestParseCardStatusCurrentState(t *testing.T) {
	// current_state = 0b0100 (tran) at bits [12:9], ready_for_data set
	r1 := uint32(0b0100<<9) | (1 << 8)

	st := parseCardStatus(r1)

	if st.CurrentState != 4 {
		t.Fatalf("current_state = %d, want 4", st.CurrentState)
	}

	if !st.ReadyForData {
		t.Fatal("expected ready_for_data set")
	}
}

func TestParseOpCondBusy(t *testing.T) {
	// bit31=0 means busy per spec (busy = r1[31]==0)
	busy := parseOpCond(0x00000000)
	if !busy.Busy {
		t.Fatal("expected busy when bit 31 is clear")
	}

	ready := parseOpCond(1 << 31)
	if ready.Busy {
		t.Fatal("expected not busy when bit 31 is set")
	}
}

func TestParseOpCondHighCapacity(t *testing.T) {
	op := parseOpCond((1 << 31) | (1 << 30))
	if !op.HighCapacity {
		t.Fatal("expected high_capacity set")
	}
}

func TestParseIfCond(t *testing.T) {
	cond := parseIfCond(0x1AA)
	if cond.Vhs != 0x1 || cond.Pattern != 0xAA {
		t.Fatalf("got %+v", cond)
	}
}

func TestParseRelativeAddress(t *testing.T) {
	ra := parseRelativeAddress(0x1234_5678)
	if ra.Address != 0x1234 || ra.IrqData != 0x5678 {
		t.Fatalf("got %+v", ra)
	}
}

func TestParseCardId(t *testing.T) {
	// mid=0x03, oem="SD", name="ABCDE", revision=0x10,
	// serial arbitrary, year=2023-2000=23, month=7
	// name[1..4] are the little-endian bytes of r2, per the CID layout.
	r1 := uint32(0x03)<<24 | uint32('S')<<16 | uint32('D')<<8 | uint32('A')
	r2 := uint32('E')<<24 | uint32('D')<<16 | uint32('C')<<8 | uint32('B')
	r3 := uint32(0x10)<<24 | 0x001122
	r4 := uint32(0x33)<<24 | (23 << 12) | (7 << 8)

	id := parseCardId(r1, r2, r3, r4)

	if id.ManufacturerID != 0x03 {
		t.Fatalf("manufacturer_id = %#x", id.ManufacturerID)
	}

	if string(id.OemID[:]) != "SD" {
		t.Fatalf("oem_id = %q", id.OemID)
	}

	if string(id.ProductName[:]) != "ABCDE" {
		t.Fatalf("product_name = %q", id.ProductName)
	}

	if id.Revision != 0x10 {
		t.Fatalf("revision = %#x", id.Revision)
	}

	if id.Year != 23 || id.Month != 7 {
		t.Fatalf("got year=%d month=%d", id.Year, id.Month)
	}

	wantSerial := uint32(0x001122<<8) | 0x33
	if id.SerialNumber != wantSerial {
		t.Fatalf("serial = %#x, want %#x", id.SerialNumber, wantSerial)
	}
}

func TestTranslateStatusPriority(t *testing.T) {
	c := &Controller{}

	cases := []struct {
		status uint32
		want   error
	}{
		{1 << staDTimeout, Timeout},
		{1 << staDCRCFail, CrcFail},
		{1 << staRxOverrun, RxOverrun},
		{1 << staTxUnderrun, TxUnderrun},
		{1 << staStartBitErr, StartBitError},
		{0, nil},
	}

	for _, tc := range cases {
		got := c.translateStatus(tc.status)
		if got != tc.want {
			t.Fatalf("translateStatus(%#x) = %v, want %v", tc.status, got, tc.want)
		}
	}
}
