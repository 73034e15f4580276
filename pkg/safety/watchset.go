package safety

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Adam-Salem-Codes/Safety-PROS/pkg/v5"
)

// WatchEntry declares one expected device: its port and the kind name that
// should be plugged there (per v5.DeviceKind display names).
type WatchEntry struct {
	Port v5.Port `yaml:"port"`
	Kind string  `yaml:"kind"`
}

// WatchSetConfig is the YAML description of the devices to supervise.
//
//	devices:
//	  - port: 1
//	    kind: motor
//	  - port: 10
//	    kind: imu
type WatchSetConfig struct {
	Devices []WatchEntry `yaml:"devices"`
}

// LoadWatchSet reads and validates a watch-set YAML file.
func LoadWatchSet(path string) (WatchSetConfig, error) {
	var cfg WatchSetConfig

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read watch set: %v", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse watch set: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks port ranges, kind names and duplicate ports.
func (c WatchSetConfig) Validate() error {
	if len(c.Devices) == 0 {
		return fmt.Errorf("watch set is empty")
	}

	seen := make(map[v5.Port]bool, len(c.Devices))
	for _, entry := range c.Devices {
		if !entry.Port.Valid() {
			return fmt.Errorf("port %d out of range %d..%d", entry.Port, v5.MinPort, v5.MaxPort)
		}
		if seen[entry.Port] {
			return fmt.Errorf("duplicate port %d", entry.Port)
		}
		seen[entry.Port] = true

		kind, ok := v5.KindFromName(entry.Kind)
		if !ok {
			return fmt.Errorf("port %d: unknown kind %q", entry.Port, entry.Kind)
		}
		if !kind.Present() {
			return fmt.Errorf("port %d: kind %q cannot be watched", entry.Port, entry.Kind)
		}
	}
	return nil
}

// Bind turns the declared entries into device handles on the given host,
// preserving declaration order.
func (c WatchSetConfig) Bind(host v5.Host) []v5.Device {
	devices := make([]v5.Device, 0, len(c.Devices))
	for _, entry := range c.Devices {
		devices = append(devices, v5.NewDevice(host, entry.Port))
	}
	return devices
}

// MotorGroup returns the declared motor ports, in declaration order.
func (c WatchSetConfig) MotorGroup() v5.MotorGroup {
	var group v5.MotorGroup
	for _, entry := range c.Devices {
		if kind, _ := v5.KindFromName(entry.Kind); kind == v5.KindMotor {
			group = append(group, entry.Port)
		}
	}
	return group
}
