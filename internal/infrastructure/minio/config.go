package minio

type ClientConfig struct {
	AccessKey string
	SecretKey string
	Endpoint  string `yaml:"endpoint"`
	UseSSL    bool   `yaml:"use_ssl"`
}

type UploaderConfig struct {
	Timeout       int64  `yaml:"timeout_in_ms"`
	Bucket        string `yaml:"bucket"`
	PublicBaseURL string `yaml:"public_base_url"`
	// CacheMaxAge is the Cache-Control lifetime set on stored objects.
	// Keys are immutable, so long lifetimes are safe.
	CacheMaxAge int64 `yaml:"cache_max_age_in_s"`
}

type RemoverConfig struct {
	Timeout int64 `yaml:"timeout_in_ms"`
}

type ReaderConfig struct {
	Timeout int64  `yaml:"timeout_in_ms"`
	Bucket  string `yaml:"bucket"`
}
