package mqbrick

import (
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"

	"github.com/Adam-Salem-Codes/Safety-PROS/pkg/v5"
)

func TestDecodeDevices(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    map[v5.Port]v5.DeviceKind
		expectError bool
	}{
		{
			name:  "valid snapshot",
			input: `{"ports": {"1": 2, "10": 6, "21": 8}}`,
			expected: map[v5.Port]v5.DeviceKind{
				1:  v5.KindMotor,
				10: v5.KindIMU,
				21: v5.KindRadio,
			},
		},
		{
			name:     "empty snapshot",
			input:    `{"ports": {}}`,
			expected: map[v5.Port]v5.DeviceKind{},
		},
		{
			name:  "undefined and unknown kinds pass through",
			input: `{"ports": {"3": 255, "4": 99}}`,
			expected: map[v5.Port]v5.DeviceKind{
				3: v5.KindUndefined,
				4: v5.DeviceKind(99),
			},
		},
		{
			name:        "invalid json",
			input:       `{"ports": `,
			expectError: true,
		},
		{
			name:        "non-numeric port key",
			input:       `{"ports": {"abc": 2}}`,
			expectError: true,
		},
		{
			name:        "port out of range",
			input:       `{"ports": {"42": 2}}`,
			expectError: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ports, err := decodeDevices([]byte(tc.input))
			if tc.expectError {
				assert.Error(t, err, "expected error for input: %s", tc.input)
			} else {
				assert.NoError(t, err, "unexpected error for input: %s", tc.input)
				assert.Equal(t, tc.expected, ports)
			}
		})
	}
}

func TestPluggedKindFromSnapshot(t *testing.T) {
	b := NewBrick(nil, defaultConfig, log.New())

	// Before any telemetry everything reads as none.
	assert.Equal(t, v5.KindNone, b.PluggedKind(1))

	ports, err := decodeDevices([]byte(`{"ports": {"1": 2, "10": 6}}`))
	require.NoError(t, err)
	b.mu.Lock()
	b.ports = ports
	b.mu.Unlock()

	assert.Equal(t, v5.KindMotor, b.PluggedKind(1))
	assert.Equal(t, v5.KindIMU, b.PluggedKind(10))
	assert.Equal(t, v5.KindNone, b.PluggedKind(2))
}

func TestStoreDefaults(t *testing.T) {
	db, err := bolt.Open(filepath.Join(t.TempDir(), "safety.db"), 0600, nil)
	require.NoError(t, err)
	defer db.Close()

	st, err := newStore(db)
	require.NoError(t, err)

	cfg, err := st.GetConfig()
	require.NoError(t, err)
	assert.Equal(t, defaultConfig, cfg)

	custom := Config{MQTTConfig: MQTTConfig{
		Host:      "tcp://broker:1883",
		Username:  "robot",
		TopicRoot: "field/brick7",
	}}
	require.NoError(t, st.SetConfig(custom))

	cfg, err = st.GetConfig()
	require.NoError(t, err)
	assert.Equal(t, custom, cfg)
}
