package utils

import (
	"github.com/caarlos0/env/v11"
)

// ServerConfig carries every knob the API server reads from the
// environment. Values come from real environment variables, optionally
// seeded from a .env file via the dotenv package.
type ServerConfig struct {
	Port        string `env:"PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL"`
	JWTSecret   string `env:"JWT_SECRET,required"`

	// S3Bucket selects the S3 media store when set, otherwise images are
	// stored on local disk under MediaDir.
	S3Bucket     string `env:"S3_BUCKET"`
	AWSRegion    string `env:"AWS_REGION" envDefault:"us-west-1"`
	MediaDir     string `env:"MEDIA_DIR" envDefault:"storage"`
	MediaBaseURL string `env:"MEDIA_BASE_URL" envDefault:"/storage/"`
}

func ParseServerConfig() (ServerConfig, error) {
	var cfg ServerConfig
	err := env.Parse(&cfg)
	return cfg, err
}
