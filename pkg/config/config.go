package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// FRIZZLY_GATEWAY_PORT or FRIZZLY_MONGODB_URI.
const EnvPrefix = "FRIZZLY"

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Gateway GatewayConfig `mapstructure:"gateway"`
	Probe   ProbeConfig   `mapstructure:"probe"`
	Store   StoreConfig   `mapstructure:"store"`
	MongoDB MongoDBConfig `mapstructure:"mongodb"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Etcd    EtcdConfig    `mapstructure:"etcd"`
	CORS    CORSConfig    `mapstructure:"cors"`
	Log     LogConfig     `mapstructure:"log"`
}

type ServerConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
}

type GatewayConfig struct {
	Port            int           `mapstructure:"port"`
	Host            string        `mapstructure:"host"`
	Platform        string        `mapstructure:"platform"`
	Debug           bool          `mapstructure:"debug"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type ProbeConfig struct {
	Port     int           `mapstructure:"port"`
	Host     string        `mapstructure:"host"`
	GRPCPort int           `mapstructure:"grpc_port"`
	MongoURI string        `mapstructure:"mongo_uri"`
	Timeout  time.Duration `mapstructure:"timeout"`
	// Interval drives the background refresh of the gRPC health status.
	Interval time.Duration `mapstructure:"interval"`
}

// StoreConfig selects the document store driver backing the gateway.
type StoreConfig struct {
	Driver         string        `mapstructure:"driver"` // mongo | redis | memory
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

type MongoDBConfig struct {
	URI             string `mapstructure:"uri"`
	Database        string `mapstructure:"database"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	AuthSource      string `mapstructure:"auth_source"`
	CredentialsFile string `mapstructure:"credentials_file"`
}

type RedisConfig struct {
	Addr      string `mapstructure:"addr"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	PoolSize  int    `mapstructure:"pool_size"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

type EtcdConfig struct {
	Endpoints   []string      `mapstructure:"endpoints"`
	DialTimeout time.Duration `mapstructure:"dial_timeout"`
	Prefix      string        `mapstructure:"prefix"`
	LeaseTTL    int64         `mapstructure:"lease_ttl"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
	MaxAge         int      `mapstructure:"max_age"`
}

type LogConfig struct {
	Level       string   `mapstructure:"level"`
	Encoding    string   `mapstructure:"encoding"`
	OutputPaths []string `mapstructure:"output_paths"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.name", "FRIZZLY API")
	v.SetDefault("server.version", "1.0.0")

	v.SetDefault("gateway.host", "0.0.0.0")
	v.SetDefault("gateway.port", 5000)
	v.SetDefault("gateway.debug", false)
	v.SetDefault("gateway.shutdown_timeout", 5*time.Second)

	v.SetDefault("probe.host", "0.0.0.0")
	v.SetDefault("probe.port", 5001)
	v.SetDefault("probe.grpc_port", 0)
	v.SetDefault("probe.mongo_uri", "mongodb://localhost:27017/")
	v.SetDefault("probe.timeout", 5*time.Second)
	v.SetDefault("probe.interval", 15*time.Second)

	v.SetDefault("store.driver", "mongo")
	v.SetDefault("store.connect_timeout", 10*time.Second)

	v.SetDefault("mongodb.database", "frizzly")
	v.SetDefault("mongodb.auth_source", "admin")
	v.SetDefault("mongodb.credentials_file", "serviceAccountKey.json")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.key_prefix", "frizzly")

	v.SetDefault("etcd.dial_timeout", 5*time.Second)
	v.SetDefault("etcd.prefix", "/services/")
	v.SetDefault("etcd.lease_ttl", 30)

	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{"Accept", "Content-Type", "X-Request-ID"})
	v.SetDefault("cors.max_age", 300)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "json")
	v.SetDefault("log.output_paths", []string{"stdout"})
}

// Load reads configPath (YAML) on top of the built-in defaults and applies
// environment overrides. A missing config file is not an error; an empty
// configPath skips the file entirely.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The probe historically read a bare MONGO_URI.
	if err := v.BindEnv("probe.mongo_uri", EnvPrefix+"_PROBE_MONGO_URI", "MONGO_URI"); err != nil {
		return nil, fmt.Errorf("failed to bind env: %w", err)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func (c *GatewayConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c *ProbeConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c *ProbeConfig) GRPCAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.GRPCPort)
}
