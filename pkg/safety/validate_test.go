package safety

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Adam-Salem-Codes/Safety-PROS/pkg/drivers/brick_simulator"
	"github.com/Adam-Salem-Codes/Safety-PROS/pkg/v5"
)

func TestValidateMotorGroup(t *testing.T) {
	brick := brick_simulator.New()
	brick.Plug(1, v5.KindMotor)
	brick.Plug(3, v5.KindRotation)
	brick.Plug(4, v5.KindMotor)
	brick.Plug(5, v5.KindUndefined)

	tests := []struct {
		name     string
		group    v5.MotorGroup
		expected []v5.Port
	}{
		{
			name:     "missing and wrong kind",
			group:    v5.MotorGroup{1, 2, 3},
			expected: []v5.Port{2, 3},
		},
		{
			name:     "all motors",
			group:    v5.MotorGroup{1, 4},
			expected: nil,
		},
		{
			name:     "undefined counts as absent",
			group:    v5.MotorGroup{5},
			expected: []v5.Port{5},
		},
		{
			name:     "order and duplicates preserved",
			group:    v5.MotorGroup{3, 2, 2, 1},
			expected: []v5.Port{3, 2, 2},
		},
		{
			name:     "empty group",
			group:    v5.MotorGroup{},
			expected: nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ValidateMotorGroup(brick, tc.group))
		})
	}
}

func TestValidatePresent(t *testing.T) {
	brick := brick_simulator.New()
	brick.Plug(1, v5.KindMotor)
	brick.Plug(10, v5.KindIMU)

	devices := []v5.Device{
		v5.NewDevice(brick, 1),
		v5.NewDevice(brick, 2),
		v5.NewDevice(brick, 10),
		v5.NewDevice(brick, 11),
	}

	assert.Equal(t, []v5.Port{2, 11}, ValidatePresent(devices))

	brick.Unplug(10)
	assert.Equal(t, []v5.Port{2, 10, 11}, ValidatePresent(devices))

	assert.Nil(t, ValidatePresent(nil))
}
