package config

import (
	"fmt"
	"github.com/ilyakaznacheev/cleanenv"
	"log"
	"sync"
)

type Config struct {
	Env      string `yaml:"env" env:"SCHOOLQL_ENV" env-default:"local"`
	Telegram struct {
		ApiKey  string `yaml:"api_key" env:"SCHOOLQL_TELEGRAM_API_KEY" env-default:""`
		AdminId int64  `yaml:"admin_id" env-default:"0"`
		BotName string `yaml:"bot_name" env-default:"SchoolQLBot"`
		Enabled bool   `yaml:"enabled" env-default:"false"`
	} `yaml:"telegram"`
	Store struct {
		Driver string `yaml:"driver" env:"SCHOOLQL_STORE_DRIVER" env-default:"json"`
		Path   string `yaml:"path" env:"SCHOOLQL_STORE_PATH" env-default:"schools.json"`
	} `yaml:"store"`
	Mongo struct {
		Host       string `yaml:"host" env-default:"127.0.0.1"`
		Port       string `yaml:"port" env-default:"27017"`
		User       string `yaml:"user" env-default:""`
		Password   string `yaml:"password" env:"SCHOOLQL_MONGO_PASSWORD" env-default:""`
		Database   string `yaml:"database" env-default:"schoolql"`
		Collection string `yaml:"collection" env-default:"schools"`
	} `yaml:"mongo"`
	SQLite struct {
		Path string `yaml:"path" env-default:"schoolql.db"`
	} `yaml:"sqlite"`
	Postgres struct {
		DSN string `yaml:"dsn" env:"SCHOOLQL_POSTGRES_DSN" env-default:"postgres://localhost/schoolql?sslmode=disable"`
	} `yaml:"postgres"`
	S3 struct {
		Bucket    string `yaml:"bucket" env:"SCHOOLQL_S3_BUCKET" env-default:""`
		Region    string `yaml:"region" env:"SCHOOLQL_S3_REGION" env-default:"us-east-1"`
		Endpoint  string `yaml:"endpoint" env:"SCHOOLQL_S3_ENDPOINT" env-default:""`
		Key       string `yaml:"key" env-default:"schools.json"`
		PathStyle bool   `yaml:"path_style" env-default:"false"`
	} `yaml:"s3"`
	Metrics struct {
		Enabled bool `yaml:"enabled" env-default:"true"`
	} `yaml:"metrics"`
	Listen struct {
		BindIP  string `yaml:"bind_ip" env-default:"127.0.0.1"`
		Port    string `yaml:"port" env:"SCHOOLQL_PORT" env-default:"8000"`
		ApiKey  string `yaml:"key" env:"SCHOOLQL_API_KEY" env-default:""`
		Timeout int    `yaml:"timeout" env-default:"10"`
	} `yaml:"listen"`
}

var instance *Config
var once sync.Once

func MustLoad(path string) *Config {
	var err error
	once.Do(func() {
		instance = &Config{}
		if err = cleanenv.ReadConfig(path, instance); err != nil {
			desc, _ := cleanenv.GetDescription(instance, nil)
			err = fmt.Errorf("%s; %s", err, desc)
			instance = nil
			log.Fatal(err)
		}
	})
	return instance
}

// Load reads a config file without caching the result.
func Load(path string) (*Config, error) {
	conf := &Config{}
	if err := cleanenv.ReadConfig(path, conf); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return conf, nil
}
