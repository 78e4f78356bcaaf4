package moderation

type ClientConfig struct {
	Endpoint string `yaml:"endpoint"`
	Timeout  int64  `yaml:"timeout_in_ms"`

	// APIKey is loaded from the environment, never from the yaml file.
	APIKey string `yaml:"-"`
}
