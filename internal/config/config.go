package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Env        string           `env-default:"local" yaml:"env"`        // Env is the current environment: local, development, production.
	Postgres   PostgresConfig   `                    yaml:"postgres"`   // Postgres holds the database configuration
	HTTP       HTTPConfig       `                    yaml:"http"`       // HTTP holds the API server configuration
	Monitoring MonitoringConfig `                    yaml:"monitoring"` // Monitoring holds the metrics/health server configuration
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string `yaml:"host"`                        // Host is the database server address.
	Port     string `yaml:"port"     env-default:"5432"` // Port is the database server port.
	User     string `yaml:"user"`                        // User is the database user.
	Password string `yaml:"password"`                    // Password is the database user's password.
	Dbname   string `yaml:"db_name"`                     // Dbname is the name of the database.
	MaxConns int32  `yaml:"max_conns" env-default:"10"`  // MaxConns caps the connection pool size.
}

// HTTPConfig struct holds the configuration of the employee API server.
type HTTPConfig struct {
	Address      string        `yaml:"address"       env-default:":8080"`          // Address is the listen address of the API.
	BasePath     string        `yaml:"base_path"     env-default:"/api/employees"` // BasePath is where the resource is mounted.
	ReadTimeout  time.Duration `yaml:"read_timeout"  env-default:"10s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env-default:"10s"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"  env-default:"60s"`
	CORSOrigins  []string      `yaml:"cors_origins"` // CORSOrigins lists allowed origins, empty means "*".
}

// MonitoringConfig struct holds the configuration of the /metrics and /healthz server.
type MonitoringConfig struct {
	Port int `yaml:"port" env-default:"9090"`
}

// envBindings maps configuration keys to the environment variables that override them.
var envBindings = map[string]string{
	"env":                "STAFFAPI_ENV",
	"postgres.host":      "DB_HOST",
	"postgres.port":      "DB_PORT",
	"postgres.user":      "DB_USERNAME",
	"postgres.password":  "DB_PASSWORD",
	"postgres.db_name":   "DB_NAME",
	"postgres.max_conns": "DB_MAX_CONNS",
	"http.address":       "HTTP_ADDRESS",
	"http.base_path":     "HTTP_BASE_PATH",
	"http.read_timeout":  "HTTP_READ_TIMEOUT",
	"http.write_timeout": "HTTP_WRITE_TIMEOUT",
	"http.idle_timeout":  "HTTP_IDLE_TIMEOUT",
	"http.cors_origins":  "HTTP_CORS_ORIGINS",
	"monitoring.port":    "MONITORING_PORT",
}

// MustLoad loads the configuration and returns a Config struct.
//
// Values come from an optional .env file, an optional YAML file named by CONFIG_PATH and
// the environment, the environment having the last word. It panics on invalid input.
func MustLoad() *Config {
	// .env is a convenience for local runs and usually absent
	_ = godotenv.Load()

	cfgViper := viper.New()
	setDefaults(cfgViper)

	for key, env := range envBindings {
		if err := cfgViper.BindEnv(key, env); err != nil {
			panic("config error: " + err.Error())
		}
	}

	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		// check if file exists
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			panic("config file does not exist: " + configPath)
		}

		cfgViper.SetConfigFile(configPath)
		if filepath.Ext(configPath) == "" {
			cfgViper.SetConfigType("yaml")
		}
		if err := cfgViper.ReadInConfig(); err != nil {
			panic("config error: " + err.Error())
		}
	}

	return &Config{
		Env: cfgViper.GetString("env"),
		Postgres: PostgresConfig{
			Host:     cfgViper.GetString("postgres.host"),
			Port:     cfgViper.GetString("postgres.port"),
			User:     cfgViper.GetString("postgres.user"),
			Password: cfgViper.GetString("postgres.password"),
			Dbname:   cfgViper.GetString("postgres.db_name"),
			MaxConns: cfgViper.GetInt32("postgres.max_conns"),
		},
		HTTP: HTTPConfig{
			Address:      cfgViper.GetString("http.address"),
			BasePath:     strings.TrimSuffix(cfgViper.GetString("http.base_path"), "/"),
			ReadTimeout:  mustDuration(cfgViper, "http.read_timeout"),
			WriteTimeout: mustDuration(cfgViper, "http.write_timeout"),
			IdleTimeout:  mustDuration(cfgViper, "http.idle_timeout"),
			CORSOrigins:  splitList(cfgViper.GetStringSlice("http.cors_origins")),
		},
		Monitoring: MonitoringConfig{
			Port: cfgViper.GetInt("monitoring.port"),
		},
	}
}

func setDefaults(cfgViper *viper.Viper) {
	cfgViper.SetDefault("env", "local")
	cfgViper.SetDefault("postgres.port", "5432")
	cfgViper.SetDefault("postgres.max_conns", 10)
	cfgViper.SetDefault("http.address", ":8080")
	cfgViper.SetDefault("http.base_path", "/api/employees")
	cfgViper.SetDefault("http.read_timeout", "10s")
	cfgViper.SetDefault("http.write_timeout", "10s")
	cfgViper.SetDefault("http.idle_timeout", "60s")
	cfgViper.SetDefault("monitoring.port", 9090)
}

// mustDuration parses a duration explicitly: viper.GetDuration silently yields zero on garbage.
func mustDuration(cfgViper *viper.Viper, key string) time.Duration {
	value, err := time.ParseDuration(cfgViper.GetString(key))
	if err != nil {
		panic("failed to parse " + key + " from configuration")
	}

	return value
}

// splitList accepts both YAML lists and comma separated environment values.
func splitList(values []string) []string {
	result := make([]string, 0, len(values))
	for _, value := range values {
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				result = append(result, item)
			}
		}
	}

	return result
}
