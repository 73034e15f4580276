package mqbrick

// MQTTConfig holds the broker connection parameters for a bridged brick.
type MQTTConfig struct {
	Host      string
	Username  string
	Password  string
	TopicRoot string
}

// Config is the persisted driver configuration.
type Config struct {
	MQTTConfig
}

var defaultConfig = Config{
	MQTTConfig: MQTTConfig{
		Host:      "tcp://localhost:1883",
		TopicRoot: "v5/brick",
	},
}
