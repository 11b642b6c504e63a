package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
)

type (
	APP struct {
		Name        string
		Host        string
		Port        string
		Env         string
		ContextRoot string
	}
	Redis struct {
		Host      string
		Port      string
		Password  string
		DB        int
		KeyPrefix string
	}
	MQ struct {
		User         string
		Password     string
		Vhost        string
		Host         string
		AmqpPort     string
		Exchange     string
		ExchangeType string
		QueueName    string
	}

	Config struct {
		App   APP
		Redis Redis
		MQ    MQ
	}
)

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func Load() Config {
	app := APP{
		Name:        getEnv("SERVICE_NAME", "userdirectoryapi"),
		Host:        getEnv("SERVICE_HOST", ""),
		Port:        getEnv("SERVICE_PORT", "8080"),
		Env:         getEnv("SERVICE_ENV", ""),
		ContextRoot: getEnv("SERVICE_CONTEXT_ROOT", "/api/v1/users"),
	}
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	rds := Redis{
		Host:      getEnv("REDIS_HOST", ""),
		Port:      getEnv("REDIS_PORT", "6379"),
		Password:  getEnv("REDIS_PASSWORD", ""),
		DB:        redisDB,
		KeyPrefix: getEnv("REDIS_KEY_PREFIX", "users"),
	}
	mq := MQ{
		User:         getEnv("RABBITMQ_USER", ""),
		Password:     getEnv("RABBITMQ_PASSWORD", ""),
		Vhost:        getEnv("RABBITMQ_VHOST", ""),
		Host:         getEnv("RABBITMQ_HOST", ""),
		AmqpPort:     getEnv("RABBITMQ_AMQP_PORT", ""),
		Exchange:     getEnv("RABBITMQ_EXCHANGE", ""),
		ExchangeType: getEnv("RABBITMQ_EXCHANGE_TYPE", ""),
		QueueName:    getEnv("RABBITMQ_QUEUE_NAME", ""),
	}

	return Config{
		App:   app,
		Redis: rds,
		MQ:    mq,
	}
}

func (c Config) RedisAddr() (string, error) {
	if c.Redis.Host == "" || c.Redis.Port == "" {
		return "", fmt.Errorf("incomplete redis config: host and port are required")
	}
	return c.Redis.Host + ":" + c.Redis.Port, nil
}

func (c Config) AMQPDSN() (string, error) {
	if c.MQ.User == "" || c.MQ.Host == "" || c.MQ.AmqpPort == "" {
		return "", fmt.Errorf("invalid MQ config: user, host and amqp port are required")
	}

	return fmt.Sprintf(
		"%s://%s@%s:%s/%s",
		"amqp",
		url.UserPassword(c.MQ.User, c.MQ.Password).String(),
		c.MQ.Host,
		c.MQ.AmqpPort,
		url.PathEscape(c.MQ.Vhost),
	), nil
}
