package config

import (
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

const (
	defaultEnvFile = "./configs/.env"
	// TIMELY_ENV_FILE points at an alternative env file, used by
	// deployments that keep configs outside the working directory
	envFileVar = "TIMELY_ENV_FILE"
)

var (
	once     sync.Once
	instance *Config
)

type Config struct {
}

func New() *Config {
	once.Do(func() {
		path := os.Getenv(envFileVar)
		if path == "" {
			path = defaultEnvFile
		}
		if err := godotenv.Load(path); err != nil {
			log.Fatal("loading "+path+" error: ", err)
		}
		instance = &Config{}
	})
	return instance
}

func (c *Config) GetString(key string) string {
	return os.Getenv(key)
}
