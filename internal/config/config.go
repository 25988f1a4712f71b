package config

import "github.com/kelseyhightower/envconfig"

// Config параметры запуска из окружения (префикс POS_)
type Config struct {
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":9091"`
	DataDir  string `envconfig:"DATA_DIR" default:"./data"`
}

func Load() (Config, error) {
	var cfg Config
	err := envconfig.Process("pos", &cfg)
	return cfg, err
}
