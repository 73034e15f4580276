// Package mqbrick exposes a remote V5 brick over MQTT as a local host.
// A small bridge program on the brick publishes the per-port device kinds
// under <root>/devices; rumble and print feedback travel the other way on
// <root>/rumble and <root>/print.
package mqbrick

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"

	"github.com/Adam-Salem-Codes/Safety-PROS/pkg/v5"
)

// devicesMsg is the telemetry message published by the brick bridge under
// the "devices" topic. Keys are decimal port numbers, values the V5 bus
// numeric type ids.
type devicesMsg struct {
	Ports map[string]int `json:"ports"`
}

// printMsg is the payload published under the "print" topic.
type printMsg struct {
	Row  int    `json:"row"`
	Col  int    `json:"col"`
	Line string `json:"line"`
}

// Brick implements v5.Host and v5.Feedback for a bridged brick. Device
// queries answer from the latest telemetry snapshot, which matches the
// real bus behavior of reporting the last observed state.
type Brick struct {
	client mqtt.Client
	config Config
	logger log.FieldLogger

	mu    sync.RWMutex
	ports map[v5.Port]v5.DeviceKind

	ready     chan struct{}
	readyOnce sync.Once
}

func NewBrick(client mqtt.Client, config Config, logger log.FieldLogger) *Brick {
	return &Brick{
		client: client,
		config: config,
		logger: logger.WithField("component", "mqbrick"),
		ports:  make(map[v5.Port]v5.DeviceKind),
		ready:  make(chan struct{}),
	}
}

// WaitReady blocks until the first telemetry snapshot has arrived, so the
// supervisor does not mistake an empty startup snapshot for a fault.
func (b *Brick) WaitReady(ctx context.Context) error {
	select {
	case <-b.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run subscribes to the brick's device telemetry and keeps the snapshot
// fresh until the context is cancelled.
func (b *Brick) Run(ctx context.Context) {
	if !b.client.IsConnected() {
		b.logger.Error("MQTT client is not connected")
		return
	}

	topic := b.config.TopicRoot + "/devices"
	if token := b.client.Subscribe(topic, 0, b.devicesHandler); token.Wait() && token.Error() != nil {
		b.logger.Errorf("Failed to subscribe to devices topic: %v", token.Error())
		return
	}
	defer b.client.Unsubscribe(topic)

	<-ctx.Done()
}

// devicesHandler processes the telemetry messages.
func (b *Brick) devicesHandler(client mqtt.Client, msg mqtt.Message) {
	ports, err := decodeDevices(msg.Payload())
	if err != nil {
		b.logger.Errorf("Failed to decode devices message: %v", err)
		return
	}

	b.logger.Debugf("Devices: %v", ports)

	b.mu.Lock()
	b.ports = ports
	b.mu.Unlock()

	b.readyOnce.Do(func() { close(b.ready) })
}

func decodeDevices(payload []byte) (map[v5.Port]v5.DeviceKind, error) {
	var msg devicesMsg
	if err := json.Unmarshal(payload, &msg); err != nil {
		return nil, err
	}

	ports := make(map[v5.Port]v5.DeviceKind, len(msg.Ports))
	for key, kind := range msg.Ports {
		n, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("invalid port key %q", key)
		}
		if !v5.Port(n).Valid() {
			return nil, fmt.Errorf("port %d out of range", n)
		}
		ports[v5.Port(n)] = v5.DeviceKind(kind)
	}
	return ports, nil
}

// PluggedKind implements v5.Host from the latest snapshot. Ports the
// bridge has not reported read as KindNone.
func (b *Brick) PluggedKind(port v5.Port) v5.DeviceKind {
	b.mu.RLock()
	defer b.mu.RUnlock()

	kind, ok := b.ports[port]
	if !ok {
		return v5.KindNone
	}
	return kind
}

// Rumble implements v5.Feedback by publishing the pattern to the brick.
// Emission failures are logged and dropped; the fault is already recorded
// by the caller.
func (b *Brick) Rumble(pattern string) {
	topic := b.config.TopicRoot + "/rumble"
	if token := b.client.Publish(topic, 0, false, pattern); token.Wait() && token.Error() != nil {
		b.logger.Errorf("Failed to publish rumble: %v", token.Error())
	}
}

// Print implements v5.Feedback by publishing the line to the brick.
func (b *Brick) Print(row, col int, line string) {
	payload, _ := json.Marshal(printMsg{Row: row, Col: col, Line: line})

	topic := b.config.TopicRoot + "/print"
	if token := b.client.Publish(topic, 0, false, payload); token.Wait() && token.Error() != nil {
		b.logger.Errorf("Failed to publish print: %v", token.Error())
	}
}
