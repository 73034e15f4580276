// Package safety provides device checks for a V5 brick: port predicates,
// group validators, an unplugged-device report and a long-running
// supervisor that trips on the first lost device.
package safety

import "github.com/Adam-Salem-Codes/Safety-PROS/pkg/v5"

// IsPresent reports whether any device is attached at the port.
func IsPresent(host v5.Host, port v5.Port) bool {
	return host.PluggedKind(port).Present()
}

// IsMotor reports whether the device at the port is a motor.
func IsMotor(host v5.Host, port v5.Port) bool {
	return host.PluggedKind(port) == v5.KindMotor
}

// IsIMU reports whether the device at the port is an inertial sensor.
func IsIMU(host v5.Host, port v5.Port) bool {
	return host.PluggedKind(port) == v5.KindIMU
}

// IsRadio reports whether the device at the port is a radio.
func IsRadio(host v5.Host, port v5.Port) bool {
	return host.PluggedKind(port) == v5.KindRadio
}

// IsRotation reports whether the device at the port is a rotation sensor.
func IsRotation(host v5.Host, port v5.Port) bool {
	return host.PluggedKind(port) == v5.KindRotation
}

// CheckIMU reports whether the port has an inertial sensor and it is
// actually attached.
func CheckIMU(host v5.Host, port v5.Port) bool {
	return IsIMU(host, port) && IsPresent(host, port)
}
