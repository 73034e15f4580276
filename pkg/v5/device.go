// Package v5 models the VEX V5 brick as seen by safety checks: numbered
// smart ports, the closed device-kind enumeration reported by the device
// bus, and the narrow host interfaces the rest of this module depends on.
package v5

// Port is a smart-port number on the brick. The platform exposes ports
// MinPort through MaxPort; the bus answers KindNone for anything else.
type Port int

const (
	MinPort Port = 1
	MaxPort Port = 21
)

// Valid reports whether p is inside the platform's port range.
func (p Port) Valid() bool {
	return p >= MinPort && p <= MaxPort
}

// Host is the device-query side of the brick runtime. Implementations must
// answer for any port, returning KindNone for empty or out-of-range ports.
type Host interface {
	PluggedKind(port Port) DeviceKind
}

// Feedback is the operator-visible side of the handheld controller.
// Rumble patterns use '-', '.' and ' ' for long pulse, short pulse and gap.
// Print renders one line at the given row and column, (0,0) top left.
type Feedback interface {
	Rumble(pattern string)
	Print(row, col int, line string)
}

// Device is the capability shared by every peripheral class: it sits on a
// port and can be asked whether it is still attached. Nothing else about
// the peripheral matters to the safety checks.
type Device interface {
	Port() Port
	Present() bool
}

// PortDevice binds a port to a host, giving a value-type Device handle.
// Copies are cheap and independent.
type PortDevice struct {
	host Host
	port Port
}

func NewDevice(host Host, port Port) PortDevice {
	return PortDevice{host: host, port: port}
}

func (d PortDevice) Port() Port {
	return d.port
}

// Kind queries the host for the device kind currently on the port.
func (d PortDevice) Kind() DeviceKind {
	return d.host.PluggedKind(d.port)
}

func (d PortDevice) Present() bool {
	return d.Kind().Present()
}

// MotorGroup is an ordered set of ports expected to all carry motors.
type MotorGroup []Port
