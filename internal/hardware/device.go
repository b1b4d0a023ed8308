// Package hardware reads the grip-ball sensor: a serial device streaming
// one CSV frame per reading with the FSR force value and three-axis
// accelerometer and gyro counts. The device is optional; its absence means
// keyboard simulation mode, not an error.
package hardware

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/neurogrip/gripmaze/internal/geom"
	"github.com/neurogrip/gripmaze/internal/monitoring"
	"github.com/neurogrip/gripmaze/internal/session"
)

// frameFields is the field count of one sensor line:
// fsr,ax,ay,az,gx,gy,gz
const frameFields = 7

// ParseFrame decodes one serial line into a sensor sample.
func ParseFrame(line string) (session.SensorSample, error) {
	fields := strings.Split(strings.TrimSpace(line), ",")
	if len(fields) != frameFields {
		return session.SensorSample{}, fmt.Errorf("frame has %d fields, want %d", len(fields), frameFields)
	}

	values := make([]float64, frameFields)
	for i, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return session.SensorSample{}, fmt.Errorf("field %d: %w", i, err)
		}
		values[i] = float64(n)
	}

	return session.SensorSample{
		Force: values[0],
		Accel: geom.Vec3{X: values[1], Y: values[2], Z: values[3]},
		Gyro:  geom.Vec3{X: values[4], Y: values[5], Z: values[6]},
	}, nil
}

// Device wraps the serial port and exposes the frame loop's non-blocking
// poll contract: consume the freshest sample if one is ready, otherwise
// report nothing so the caller falls back to keyboard input for that frame.
// A stalled sensor therefore never freezes the frame loop.
type Device struct {
	port    SerialPorter
	samples chan session.SensorSample
}

// NewDevice wraps an open port. Call Monitor to start the read loop.
func NewDevice(port SerialPorter) *Device {
	return &Device{
		port: port,
		// capacity one: Poll always sees the freshest sample, older
		// unconsumed readings are dropped by the monitor
		samples: make(chan session.SensorSample, 1),
	}
}

// Open opens the serial device at path. Failure is expected when no ball is
// plugged in; the caller logs it and runs in keyboard simulation mode.
func Open(path string) (*Device, error) {
	port, err := OpenPort(path)
	if err != nil {
		return nil, fmt.Errorf("open grip-ball on %s: %w", path, err)
	}
	return NewDevice(port), nil
}

// Monitor reads serial lines until the context is cancelled or the port
// fails. Malformed lines are logged and dropped; prior samples stay
// consumable. Run it on its own goroutine.
func (d *Device) Monitor(ctx context.Context) error {
	defer d.port.Close()

	scan := bufio.NewScanner(d.port)
	for scan.Scan() {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		sample, err := ParseFrame(scan.Text())
		if err != nil {
			monitoring.Logf("hardware: dropping frame: %v", err)
			continue
		}

		// replace any stale sample rather than blocking
		select {
		case d.samples <- sample:
		default:
			select {
			case <-d.samples:
			default:
			}
			select {
			case d.samples <- sample:
			default:
			}
		}
	}
	return scan.Err()
}

// Poll returns the freshest unconsumed sample, if any, without blocking.
func (d *Device) Poll() (session.SensorSample, bool) {
	select {
	case s := <-d.samples:
		return s, true
	default:
		return session.SensorSample{}, false
	}
}

// Close closes the underlying port.
func (d *Device) Close() error {
	return d.port.Close()
}
