package config

import (
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env         string      `yaml:"env" env-default:"local"`
	StoragePath string      `yaml:"storage_path" env:"STORAGE_PATH" env-required:"true"`
	HTTP        HTTPConfig  `yaml:"http"`
	Token       TokenConfig `yaml:"token"`
}

type HTTPConfig struct {
	Port int `yaml:"port" env-default:"8080"`
}

type TokenConfig struct {
	Secret string        `yaml:"secret" env:"TOKEN_SECRET" env-required:"true"`
	TTL    time.Duration `yaml:"ttl" env-default:"1h"`
}

func Load(path string) *Config {
	var config Config
	err := cleanenv.ReadConfig(path, &config)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &config
}
