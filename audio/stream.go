package audio

import (
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	"github.com/janwychowaniak/letstalk/encoder"
)

// readTimeout bounds how long ReadBlock waits for the backend. A healthy
// device delivers a block every BlockSize/SampleRate seconds (64 ms); two
// seconds of nothing means the device is gone.
const readTimeout = 2 * time.Second

// DeviceError reports a capture device fault observed while reading.
type DeviceError struct {
	Op  string
	Err error
}

func (e *DeviceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("audio device: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("audio device: %s", e.Op)
}

func (e *DeviceError) Unwrap() error { return e.Err }

// BlockStream adapts a callback-driven capture device into a pull interface
// delivering fixed-size sample blocks in arrival order.
type BlockStream struct {
	dev     CaptureDevice
	blocks  chan []int16
	pending []int16 // partial block, touched only on the backend thread

	closeOnce sync.Once
	closed    chan struct{}
}

// OpenStream opens the capture device for the fixed stream parameters
// (16 kHz, mono, 16-bit) and starts it.
func OpenStream(ctx Context, device *DeviceInfo) (*BlockStream, error) {
	dev, err := ctx.NewCapture(device, CaptureConfig{
		SampleRate: encoder.SampleRate,
		Channels:   encoder.Channels,
	})
	if err != nil {
		return nil, &DeviceError{Op: "open", Err: err}
	}

	s := &BlockStream{
		dev:    dev,
		blocks: make(chan []int16, 32),
		closed: make(chan struct{}),
	}
	dev.SetCallback(s.onData)

	if err := dev.Start(); err != nil {
		dev.ClearCallback()
		dev.Close()
		return nil, &DeviceError{Op: "start", Err: err}
	}
	return s, nil
}

func (s *BlockStream) onData(data []byte, _ uint32) {
	for i := 0; i+1 < len(data); i += 2 {
		s.pending = append(s.pending, int16(binary.LittleEndian.Uint16(data[i:])))
	}
	for len(s.pending) >= encoder.BlockSize {
		block := make([]int16, encoder.BlockSize)
		copy(block, s.pending[:encoder.BlockSize])
		s.pending = s.pending[encoder.BlockSize:]
		select {
		case s.blocks <- block:
		case <-s.closed:
			return
		default:
			// Consumer stalled for >2s of audio. Dropping here keeps the
			// backend thread from blocking inside the driver callback.
		}
	}
}

// ReadBlock blocks until the next block of BlockSize samples arrives.
// Blocks still buffered when the stream is closed are discarded.
func (s *BlockStream) ReadBlock() ([]int16, error) {
	select {
	case <-s.closed:
		return nil, &DeviceError{Op: "read on closed stream"}
	default:
	}
	select {
	case block := <-s.blocks:
		return block, nil
	case <-s.closed:
		return nil, &DeviceError{Op: "read on closed stream"}
	case <-time.After(readTimeout):
		return nil, &DeviceError{Op: "read timeout"}
	}
}

// Close stops and releases the device. Safe to call more than once.
func (s *BlockStream) Close() {
	s.closeOnce.Do(func() {
		close(s.closed)
		s.dev.Stop()
		s.dev.ClearCallback()
		s.dev.Close()
	})
}
