// Initializing common application configuration
package config

import (
	"log"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server        ServerConfig       `mapstructure:"server"`
	Database      DatabaseConfig     `mapstructure:"database"`
	Redis         RedisConfig        `mapstructure:"redis"`
	Kafka         KafkaConfig        `mapstructure:"kafka"`
	WhatsApp      WhatsAppConfig     `mapstructure:"whatsapp"`
	Push          PushConfig         `mapstructure:"push"`
	Dedup         DedupConfig        `mapstructure:"dedup"`
	Notifications NotificationConfig `mapstructure:"notifications"`
}

type ServerConfig struct {
	AppVersion   string `mapstructure:"appVersion"`
	Host         string `mapstructure:"host"`
	Port         string `mapstructure:"port"`
	Timeout      time.Duration
	Idle_timeout time.Duration
	Env          string `mapstructure:"environment"`
	Mode         string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`

	MaxRetries   int
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolTimeout  time.Duration
}

type KafkaConfig struct {
	Brokers string `mapstructure:"brokers"`
	Topic   string `mapstructure:"topic"`
}

// WhatsAppConfig holds the per-deployment gateway credentials. All four
// fields are required before any outbound call; absence is a hard failure
// for that dispatcher call, not for startup.
type WhatsAppConfig struct {
	BaseURL       string `mapstructure:"base_url"`
	InstanceID    string `mapstructure:"instance_id"`
	InstanceToken string `mapstructure:"instance_token"`
	ClientToken   string `mapstructure:"client_token"`
	AlertGroup    string `mapstructure:"alert_group"` // crisis broadcast destination
}

type PushConfig struct {
	URL   string `mapstructure:"url"`
	Token string `mapstructure:"token"`
}

type DedupConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

type NotificationConfig struct {
	SupportEquipeID string        `mapstructure:"support_equipe_id"`
	TeamCacheTTL    time.Duration `mapstructure:"team_cache_ttl"`
}

func LoadConfig() (*viper.Viper, error) {

	viperInstance := viper.New()

	viperInstance.AddConfigPath("./config")
	viperInstance.SetConfigName("config")
	viperInstance.SetConfigType("yaml")

	setDefaults(viperInstance)

	err := viperInstance.ReadInConfig()

	if err != nil {
		return nil, err
	}
	return viperInstance, nil
}

func ParseConfig(v *viper.Viper) (*Config, error) {

	var c Config

	err := v.Unmarshal(&c)
	if err != nil {
		log.Fatalf("unable to decode config into struct, %v", err)
		return nil, err
	}

	// Secrets are taken from the process environment when present, so a
	// deployment never has to put gateway tokens into the yaml file.
	c.WhatsApp.BaseURL = GetEnv("ZAPI_BASE_URL", c.WhatsApp.BaseURL)
	c.WhatsApp.InstanceID = GetEnv("ZAPI_INSTANCE_ID", c.WhatsApp.InstanceID)
	c.WhatsApp.InstanceToken = GetEnv("ZAPI_INSTANCE_TOKEN", c.WhatsApp.InstanceToken)
	c.WhatsApp.ClientToken = GetEnv("ZAPI_CLIENT_TOKEN", c.WhatsApp.ClientToken)
	c.Push.URL = GetEnv("PUSH_PROVIDER_URL", c.Push.URL)
	c.Push.Token = GetEnv("PUSH_PROVIDER_TOKEN", c.Push.Token)
	c.Database.Password = GetEnv("DB_PASSWORD", c.Database.Password)

	return &c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("dedup.ttl", 5*time.Minute)
	v.SetDefault("notifications.team_cache_ttl", 30*time.Second)
	v.SetDefault("kafka.topic", "notification-events")
	v.SetDefault("whatsapp.base_url", "https://api.z-api.io")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 5*time.Minute)
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
