package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var (
	ErrMissingEnv = errors.New("environment variable is not set")
	ErrInvalidEnv = errors.New("environment variable is invalid")
)

// Config holds the application's configuration values.
type Config struct {
	HostIP        string        // Host IP for the server
	RESTPort      int           // Port for the REST API
	GinMode       string        // Mode for the Gin framework (e.g., release, debug, test)
	JWTSecret     string        // Secret key for JWT signing
	JWTIssuer     string        // Issuer claim for JWTs
	TokenTTL      time.Duration // Lifetime of issued JWTs
	DBHost        string        // Hostname or IP address for the database
	DBPort        int           // Port number for the database
	DBUser        string        // Username for the database
	DBPassword    string        // Password for the database
	DBName        string        // Name of the database
	RedisAddr     string        // host:port of Redis, empty disables cache and leaderboard
	RedisPassword string        // Password for Redis
	RedisDB       int           // Redis logical database
	PathCacheTTL  time.Duration // How long computed paths stay cached
	BoardTTL      time.Duration // How long an idle leaderboard lives, zero keeps it
	SQLitePath    string        // Local database for CLI history and the sqlite server store
	Debug         bool          // Enables debug logs
}

// Load reads the configuration from the environment. A .env file in the
// working directory is loaded first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	cfg := &Config{
		HostIP:        getEnvWithDefault("HOST_IP", "0.0.0.0"),
		GinMode:       getEnvWithDefault("GIN_MODE", "release"),
		JWTSecret:     getEnvWithDefault("JWT_SECRET", ""),
		JWTIssuer:     getEnvWithDefault("JWT_ISSUER", "maze-runner"),
		DBHost:        getEnvWithDefault("DB_HOST", ""),
		DBUser:        getEnvWithDefault("DB_USER", ""),
		DBPassword:    getEnvWithDefault("DB_PASS", ""),
		DBName:        getEnvWithDefault("DB_NAME", "maze_runner"),
		RedisAddr:     getEnvWithDefault("REDIS_ADDR", ""),
		RedisPassword: getEnvWithDefault("REDIS_PASSWORD", ""),
		SQLitePath:    getEnvWithDefault("SQLITE_PATH", "maze-runner.db"),
	}

	var err error
	if cfg.RESTPort, err = getEnvAsIntWithDefault("REST_PORT", 8080); err != nil {
		return nil, err
	}
	if cfg.DBPort, err = getEnvAsIntWithDefault("DB_PORT", 27017); err != nil {
		return nil, err
	}
	if cfg.RedisDB, err = getEnvAsIntWithDefault("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.TokenTTL, err = getEnvAsDurationWithDefault("TOKEN_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.PathCacheTTL, err = getEnvAsDurationWithDefault("PATH_CACHE_TTL", time.Hour); err != nil {
		return nil, err
	}
	if cfg.BoardTTL, err = getEnvAsDurationWithDefault("LEADERBOARD_TTL", 0); err != nil {
		return nil, err
	}
	if cfg.Debug, err = getEnvAsBoolWithDefault("DEBUG", false); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ValidateServer checks the values the HTTP server cannot start without.
// DB_HOST is only required when withMongo is set.
func (c *Config) ValidateServer(withMongo bool) error {
	if c.JWTSecret == "" {
		return fmt.Errorf("%w: JWT_SECRET", ErrMissingEnv)
	}
	if withMongo && c.DBHost == "" {
		return fmt.Errorf("%w: DB_HOST", ErrMissingEnv)
	}
	return nil
}

// MongoURI builds the connection string for the database.
func (c *Config) MongoURI() string {
	if c.DBUser == "" {
		return fmt.Sprintf("mongodb://%s:%d", c.DBHost, c.DBPort)
	}
	return fmt.Sprintf("mongodb://%s:%s@%s:%d", c.DBUser, c.DBPassword, c.DBHost, c.DBPort)
}

// RESTAddr is the listen address of the HTTP server.
func (c *Config) RESTAddr() string {
	return fmt.Sprintf("%s:%d", c.HostIP, c.RESTPort)
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsIntWithDefault retrieves an integer environment variable or returns a default value if not set.
func getEnvAsIntWithDefault(key string, defaultValue int) (int, error) {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer: %v", ErrInvalidEnv, key, err)
	}
	return value, nil
}

// getEnvAsDurationWithDefault accepts Go durations ("90s") or plain seconds ("90").
func getEnvAsDurationWithDefault(key string, defaultValue time.Duration) (time.Duration, error) {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return defaultValue, nil
	}
	if seconds, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(seconds) * time.Second, nil
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a duration: %v", ErrInvalidEnv, key, err)
	}
	return value, nil
}

func getEnvAsBoolWithDefault(key string, defaultValue bool) (bool, error) {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return false, fmt.Errorf("%w: %s must be a boolean: %v", ErrInvalidEnv, key, err)
	}
	return value, nil
}
