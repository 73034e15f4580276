package safety

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Adam-Salem-Codes/Safety-PROS/pkg/drivers/brick_simulator"
	"github.com/Adam-Salem-Codes/Safety-PROS/pkg/v5"
)

func TestIsPresent(t *testing.T) {
	brick := brick_simulator.New()
	brick.Plug(1, v5.KindMotor)
	brick.Plug(2, v5.KindUndefined)
	brick.Plug(3, v5.DeviceKind(99))

	assert.True(t, IsPresent(brick, 1))
	assert.False(t, IsPresent(brick, 2), "undefined counts as absent")
	assert.True(t, IsPresent(brick, 3), "unknown kinds still occupy the port")
	assert.False(t, IsPresent(brick, 4), "empty port")
	assert.False(t, IsPresent(brick, 99), "out-of-range port")
}

func TestKindPredicates(t *testing.T) {
	brick := brick_simulator.New()
	brick.Plug(1, v5.KindMotor)
	brick.Plug(2, v5.KindIMU)
	brick.Plug(3, v5.KindRadio)
	brick.Plug(4, v5.KindRotation)

	tests := []struct {
		name string
		pred func(v5.Host, v5.Port) bool
		port v5.Port
	}{
		{"motor", IsMotor, 1},
		{"imu", IsIMU, 2},
		{"radio", IsRadio, 3},
		{"rotation", IsRotation, 4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, tc.pred(brick, tc.port))
			for port := v5.Port(1); port <= 4; port++ {
				if port != tc.port {
					assert.False(t, tc.pred(brick, port), "port %d is not a %s", port, tc.name)
				}
			}
			assert.False(t, tc.pred(brick, 20), "empty port")
		})
	}
}

func TestCheckIMU(t *testing.T) {
	brick := brick_simulator.New()
	brick.Plug(10, v5.KindIMU)
	brick.Plug(11, v5.KindMotor)

	assert.True(t, CheckIMU(brick, 10))
	assert.False(t, CheckIMU(brick, 11))
	assert.False(t, CheckIMU(brick, 12))
}
