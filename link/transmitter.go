// https://github.com/usbarmory/picoviewer
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package link

import "github.com/usbarmory/picoviewer/ring"

// QueueDepth is sized to hold one full 240x240x24bpp frame of pixel data
// plus one header byte per 64-byte block.
const QueueDepth = 240*240*3 + (240*240*3+MaxBlockLength-1)/MaxBlockLength

// DefaultPassDelayUs and DefaultRetryDelayUs are the one-pulse timer
// durations used when a Transmitter is not given explicit settings.
const (
	DefaultPassDelayUs  = 100
	DefaultRetryDelayUs = 100
)

// Bus is the parallel-port side a Transmitter drives: eight data lines
// and the RTS output. Setting up the bus's own clocking/pin-muxing is
// out of scope; Bus is the seam a board package plugs into.
type Bus interface {
	SetData(b byte)
	SetRTS(valid bool)
}

// OneShotTimer arms a single pulse, us microseconds out, that calls back
// into the Transmitter's OnReadyToSend when it fires.
type OneShotTimer interface {
	Arm(us uint32)
}

// Transmitter is the queued byte pipe described in component C7: a main
// loop producer (Transfer paths), an ISR consumer (the On* methods), and
// a ring buffer bridging the two. Transfer must only be called from the
// main loop; the On* methods must only be called from interrupt context.
type Transmitter struct {
	bus   Bus
	timer OneShotTimer

	passDelayUs, retryDelayUs uint32

	queue   *ring.Ring[byte]
	active  bool
	current byte
}

// NewTransmitter constructs a Transmitter with the default handshake
// timings.
func NewTransmitter(bus Bus, timer OneShotTimer) *Transmitter {
	return &Transmitter{
		bus:          bus,
		timer:        timer,
		passDelayUs:  DefaultPassDelayUs,
		retryDelayUs: DefaultRetryDelayUs,
		queue:        ring.New[byte](QueueDepth),
	}
}

// RemainingQueueSize reports how much room is left in the outbound queue.
// Callers must check this before enqueuing a burst; the transmitter never
// drops bytes on its own.
func (t *Transmitter) RemainingQueueSize() int {
	return QueueDepth - t.queue.Size()
}

// SendData frames buf into <=64-byte Data blocks, each preceded by its
// header byte, and enqueues them.
func (t *Transmitter) SendData(buf []byte) {
	for len(buf) > MaxBlockLength {
		t.sendChunk(Data, buf[:MaxBlockLength])
		buf = buf[MaxBlockLength:]
	}

	if len(buf) > 0 {
		t.sendChunk(Data, buf)
	}
}

// SendCommand frames a single command opcode as a one-byte Command block.
func (t *Transmitter) SendCommand(opcode byte) {
	t.sendChunk(Command, []byte{opcode})
}

func (t *Transmitter) sendChunk(cat Category, payload []byte) {
	hdr := Encode(Header{Category: cat, Length: len(payload)})

	t.queue.Produce(hdr)
	for _, b := range payload {
		t.queue.Produce(b)
	}

	if !t.active {
		t.kick()
	}
}

// kick starts transmission of the next queued byte: it is popped,
// presented on the data lines, RTS is held low while the one-pulse timer
// settles, and active is set.
func (t *Transmitter) kick() {
	if t.queue.Empty() {
		t.active = false
		return
	}

	t.current = t.queue.Consume()
	t.active = true

	t.bus.SetData(t.current)
	t.bus.SetRTS(false)
	t.timer.Arm(t.passDelayUs)
}

// OnReadyToSend fires when the one-pulse timer expires: RTS goes high,
// marking the presented byte as valid.
func (t *Transmitter) OnReadyToSend() {
	t.bus.SetRTS(true)
}

// OnClearToSend fires on the peer's CTS pulse: the current byte has been
// accepted. RTS is deasserted and, if more bytes are queued, the next one
// is kicked off; otherwise the transmitter goes idle.
func (t *Transmitter) OnClearToSend() {
	t.bus.SetRTS(false)
	t.kick()
}

// OnOverwrite fires on the peer's OV pulse: the current byte was not
// accepted. RTS is deasserted and the same byte is retried after the
// retry delay.
func (t *Transmitter) OnOverwrite() {
	t.bus.SetRTS(false)
	t.bus.SetData(t.current)
	t.timer.Arm(t.retryDelayUs)
}

// Active reports whether a transmission is in progress.
func (t *Transmitter) Active() bool {
	return t.active
}
