package config

import (
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/application/pipeline"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/application/usecase"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/infrastructure/broker"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/infrastructure/database"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/infrastructure/identity"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/infrastructure/minio"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/infrastructure/moderation"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/pkg/logger"
)

type ServerConfig struct {
	Address   string `yaml:"address"`
	BodyLimit string `yaml:"body_limit"`
	RateLimit int    `yaml:"rate_limit"`
}

// Config represents the configs used by services on system.
type Config struct {
	Environment     string                   `yaml:"environment"`
	Server          ServerConfig             `yaml:"server"`
	MinIOClient     minio.ClientConfig       `yaml:"minio_client"`
	MinIOUploader   minio.UploaderConfig     `yaml:"minio_uploader"`
	MinIORemover    minio.RemoverConfig      `yaml:"minio_remover"`
	MinIOReader     minio.ReaderConfig       `yaml:"minio_reader"`
	DBConfig        database.Config          `yaml:"db_config"`
	BrokerConfig    broker.Config            `yaml:"redis_broker_config"`
	PublisherConfig broker.PublisherConfig   `yaml:"publisher_config"`
	Moderation      moderation.ClientConfig  `yaml:"moderation_client"`
	Identity        identity.ClientConfig    `yaml:"identity_client"`
	Pipeline        pipeline.Config          `yaml:"pipeline"`
	Presign         usecase.PresignConfig    `yaml:"presign"`
	Reconciler      usecase.ReconcilerConfig `yaml:"reconciler"`
	Logger          logger.Config            `yaml:"logger"`

	// JWTSecret is loaded from the environment, never from the yaml file.
	JWTSecret string `yaml:"-"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, Error{
			reason: err.Error(),
		}
	}
	defer file.Close()

	config := &Config{}

	decoder := yaml.NewDecoder(file)

	if err := decoder.Decode(config); err != nil {
		return nil, Error{
			reason: err.Error(),
		}
	}

	if config.Environment != "prod" {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			return nil, Error{
				reason: err.Error(),
			}
		}
	}

	config.MinIOClient.AccessKey = os.Getenv("MINIO_ROOT_USER")
	config.MinIOClient.SecretKey = os.Getenv("MINIO_ROOT_PASSWORD")
	config.DBConfig.URI = os.Getenv("DATABASE_URI")
	config.BrokerConfig.URI = os.Getenv("BROKER_URI")
	config.Moderation.APIKey = os.Getenv("MODERATION_API_KEY")
	config.JWTSecret = os.Getenv("JWT_SECRET")

	if err = config.basicCheck(); err != nil {
		return nil, Error{
			reason: err.Error(),
		}
	}

	return config, nil
}

// basicCheck validates the basic stuff in config.
func (c *Config) basicCheck() error {
	return c.Pipeline.Validate()
}
