package v5

// DeviceKind identifies the class of device attached to a smart port.
// The numeric values are the type ids reported by the V5 device bus.
type DeviceKind int

const (
	KindNone      DeviceKind = 0
	KindMotor     DeviceKind = 2
	KindRotation  DeviceKind = 4
	KindIMU       DeviceKind = 6
	KindDistance  DeviceKind = 7
	KindRadio     DeviceKind = 8
	KindVision    DeviceKind = 11
	KindADI       DeviceKind = 12
	KindOptical   DeviceKind = 16
	KindGPS       DeviceKind = 20
	KindSerial    DeviceKind = 129
	KindUndefined DeviceKind = 255
)

// Present reports whether the kind denotes an attached device.
// KindNone and KindUndefined both mean nothing usable is on the port.
func (k DeviceKind) Present() bool {
	return k != KindNone && k != KindUndefined
}

// String returns the short lowercase name for the kind. Values outside the
// known enumeration render as "unknown" so new host kinds are non-fatal.
func (k DeviceKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindUndefined:
		return "undefined"
	case KindMotor:
		return "motor"
	case KindRotation:
		return "rotation"
	case KindIMU:
		return "imu"
	case KindRadio:
		return "radio"
	case KindDistance:
		return "distance"
	case KindVision:
		return "vision"
	case KindADI:
		return "adi"
	case KindOptical:
		return "optical"
	case KindGPS:
		return "gps"
	case KindSerial:
		return "serial"
	default:
		return "unknown"
	}
}

var kindNames = map[string]DeviceKind{
	"none":      KindNone,
	"undefined": KindUndefined,
	"motor":     KindMotor,
	"rotation":  KindRotation,
	"imu":       KindIMU,
	"radio":     KindRadio,
	"distance":  KindDistance,
	"vision":    KindVision,
	"adi":       KindADI,
	"optical":   KindOptical,
	"gps":       KindGPS,
	"serial":    KindSerial,
}

// KindFromName is the reverse of String for the known kind names.
func KindFromName(name string) (DeviceKind, bool) {
	k, ok := kindNames[name]
	return k, ok
}
