// Package config загружает конфигурацию приложения из YAML-файла,
// путь к которому задается переменной окружения CONFIG_PATH.
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config описывает полную конфигурацию сервиса учета оплат.
type Config struct {
	Env                     string        `yaml:"env" env-default:"local"`
	StorageConnectionString string        `yaml:"storage_connection_string" env-required:"true"`
	RedisConnection         RedisConnection `yaml:"redis_connection"`
	RabbitConnectionString  string        `yaml:"rabbit_connection_string"`
	ScanInterval            time.Duration `yaml:"scan_interval" env-default:"12h"`
	HTTPServer              `yaml:"http_server"`
	JWTToken                `yaml:"jwt_token"`
	SMTP                    `yaml:"smtp"`
}

// RedisConnection описывает подключение к Redis.
type RedisConnection struct {
	Address  string        `yaml:"address" env-default:"localhost:6379"`
	Password string        `yaml:"password" env-default:""`
	DB       int           `yaml:"db" env-default:"0"`
	TTL      time.Duration `yaml:"ttl" env-default:"5m"`
}

// HTTPServer описывает параметры HTTP-сервера.
type HTTPServer struct {
	Address     string        `yaml:"address" env-default:"localhost:8080"`
	Timeout     time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// JWTToken описывает параметры выпуска токенов.
type JWTToken struct {
	SecretKey string        `yaml:"secret_key" env:"JWT_SECRET_KEY" env-required:"true"`
	TokenTTL  time.Duration `yaml:"token_ttl" env-default:"1h"`
}

// SMTP описывает параметры отправки почтовых напоминаний.
type SMTP struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port" env-default:"587"`
	Username string `yaml:"username"`
	Password string `yaml:"password" env:"SMTP_PASSWORD"`
	From     string `yaml:"from"`
}

// MustLoad читает конфигурацию и завершает процесс при ошибке.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}

	return &cfg
}
