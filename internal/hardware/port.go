package hardware

import (
	"io"

	"go.bug.st/serial"
)

// SerialPorter is the minimal serial port surface the device needs. The
// abstraction enables unit testing without real grip-ball hardware.
type SerialPorter interface {
	io.Reader
	io.Closer
}

// OpenPort opens the grip-ball serial port with the firmware's fixed framing
// (115200 8N1).
func OpenPort(path string) (SerialPorter, error) {
	mode := &serial.Mode{
		BaudRate: 115200,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: 1,
	}
	return serial.Open(path, mode)
}
