package identity

type ClientConfig struct {
	Endpoint string `yaml:"endpoint"`
	Timeout  int64  `yaml:"timeout_in_ms"`
}
