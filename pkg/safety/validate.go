package safety

import "github.com/Adam-Salem-Codes/Safety-PROS/pkg/v5"

// ValidateMotorGroup returns the ports in the group that fail the contract
// "present and a motor", in group order. An empty result means the whole
// group is wired correctly.
func ValidateMotorGroup(host v5.Host, group v5.MotorGroup) []v5.Port {
	var bad []v5.Port
	for _, port := range group {
		if !IsPresent(host, port) || !IsMotor(host, port) {
			bad = append(bad, port)
		}
	}
	return bad
}

// ValidatePresent returns the ports of the handles that are not attached
// at query time, in input order.
func ValidatePresent(devices []v5.Device) []v5.Port {
	var missing []v5.Port
	for _, dev := range devices {
		if !dev.Present() {
			missing = append(missing, dev.Port())
		}
	}
	return missing
}
