package mqbrick

import (
	"context"
	"errors"
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"
	bolt "go.etcd.io/bbolt"
)

var ErrNotConnected = errors.New("driver is not connected")

type connState int

const (
	connStateDisconnected connState = iota
	connStateConnecting
	connStateConnected
)

// createMQTTClient initializes and returns a new MQTT client using the
// given broker configuration.
func createMQTTClient(cfg MQTTConfig) (mqtt.Client, error) {
	opts := mqtt.NewClientOptions()
	opts.SetClientID("safety-watch")
	opts.AddBroker(cfg.Host)
	opts.SetUsername(cfg.Username)
	opts.SetPassword(cfg.Password)

	mqttClient := mqtt.NewClient(opts)
	if token := mqttClient.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %v", token.Error())
	}
	return mqttClient, nil
}

// Driver manages the lifetime of a bridged brick connection: persisted
// broker configuration, the MQTT client, and the telemetry loop.
type Driver struct {
	store  *store
	state  connState
	logger log.FieldLogger

	// The MQTT client and the brick are created when the driver is connected
	client mqtt.Client
	brick  *Brick
	cancel context.CancelFunc
}

func NewDriver(db *bolt.DB, logger log.FieldLogger) (*Driver, error) {
	store, err := newStore(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create store: %v", err)
	}

	driver := Driver{
		store:  store,
		state:  connStateDisconnected,
		logger: logger,
	}

	return &driver, nil
}

// Config returns the persisted driver configuration.
func (d *Driver) Config() (Config, error) {
	return d.store.GetConfig()
}

// SetConfig persists a new driver configuration. It does not affect an
// already-connected driver.
func (d *Driver) SetConfig(cfg Config) error {
	return d.store.SetConfig(cfg)
}

func (d *Driver) Close() {
	d.logger.Info("Closing brick driver")

	if d.state == connStateDisconnected {
		if d.cancel != nil {
			d.cancel()
			d.cancel = nil
		}
		return
	}
	if err := d.Disconnect(); err != nil {
		d.logger.Errorf("failed to disconnect: %v", err)
	}
}

func (d *Driver) Connect() error {
	config, err := d.store.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to get brick config: %v", err)
	}

	if d.state != connStateDisconnected {
		return fmt.Errorf("driver is already connected")
	}

	d.state = connStateConnecting

	client, err := createMQTTClient(config.MQTTConfig)
	if err != nil {
		d.state = connStateDisconnected
		return fmt.Errorf("failed to create MQTT client: %v", err)
	}

	d.client = client
	d.brick = NewBrick(client, config, d.logger)

	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel
	go func() {
		d.brick.Run(ctx)
	}()

	d.state = connStateConnected

	d.logger.Info("Connected to MQTT broker")

	return nil
}

func (d *Driver) Disconnect() error {
	if d.state != connStateConnected {
		return ErrNotConnected
	}

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.client.Disconnect(100)
	d.state = connStateDisconnected
	d.logger.Info("Disconnected from MQTT broker")
	return nil
}

func (d *Driver) Connecting() bool {
	return d.state == connStateConnecting
}

func (d *Driver) Connected() bool {
	return d.state == connStateConnected
}

// Brick returns the bridged brick. Only valid while connected.
func (d *Driver) Brick() *Brick {
	return d.brick
}
