// Package config provides functionality for managing configuration options
// for the application using command-line flags, a JSON file, a .env file and
// environment variables.
package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Options holds the configuration values for the application.
type Options struct {
	// Port defines the server's listening address (ip:port).
	Port string

	// DatabaseDSN holds the database connection string for the application.
	DatabaseDSN string

	// JWTSecret is the HMAC key used to sign session tokens.
	JWTSecret string

	// TokenTTL is how long an issued session token stays valid.
	TokenTTL time.Duration

	// LogLevel is the minimum zap level (debug, info, warn, error).
	LogLevel string

	// AllowedOrigins lists the CORS origins allowed to call the API.
	AllowedOrigins []string

	// Config is the path to the Config file.
	Config string
}

// fileOptions mirrors Options as it appears in the JSON config file.
type fileOptions struct {
	Port           string   `json:"address"`
	DatabaseDSN    string   `json:"database_dsn"`
	JWTSecret      string   `json:"jwt_secret"`
	TokenTTL       string   `json:"jwt_expiry"`
	LogLevel       string   `json:"log_level"`
	AllowedOrigins []string `json:"allowed_origins"`
}

// Parse loads .env, parses the command-line flags, the JSON config file and
// environment variables, and returns the resulting Options. Invalid
// configuration terminates the process.
func Parse() *Options {
	// A missing .env file is not an error.
	_ = godotenv.Load()

	options, err := Load(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	return options
}

// Load builds Options from args parsed with fs, then overrides them with the
// JSON config file and finally with environment variables.
func Load(fs *flag.FlagSet, args []string) (*Options, error) {
	options := &Options{}
	var origins string

	fs.StringVar(&options.Port, "a", "localhost:8080", "run on ip:port server")
	fs.StringVar(&options.DatabaseDSN, "d", "", "db address")
	fs.StringVar(&options.JWTSecret, "s", "", "session token signing secret")
	fs.DurationVar(&options.TokenTTL, "ttl", time.Hour, "session token lifetime")
	fs.StringVar(&options.LogLevel, "l", "info", "log level")
	fs.StringVar(&origins, "origins", "*", "comma separated list of allowed CORS origins")
	fs.StringVar(&options.Config, "config", "config.json", "path to config file")
	fs.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	options.AllowedOrigins = splitList(origins)

	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			if err := options.loadFile(options.Config); err != nil {
				return nil, err
			}
		}
	}

	if err := options.loadEnv(); err != nil {
		return nil, err
	}

	if err := options.validate(); err != nil {
		return nil, err
	}
	return options, nil
}

func (o *Options) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error while reading config file: %w", err)
	}

	var f fileOptions
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("error while parsing config file: %w", err)
	}

	if f.Port != "" {
		o.Port = f.Port
	}
	if f.DatabaseDSN != "" {
		o.DatabaseDSN = f.DatabaseDSN
	}
	if f.JWTSecret != "" {
		o.JWTSecret = f.JWTSecret
	}
	if f.TokenTTL != "" {
		ttl, err := time.ParseDuration(f.TokenTTL)
		if err != nil {
			return fmt.Errorf("jwt_expiry: %w", err)
		}
		o.TokenTTL = ttl
	}
	if f.LogLevel != "" {
		o.LogLevel = f.LogLevel
	}
	if len(f.AllowedOrigins) > 0 {
		o.AllowedOrigins = f.AllowedOrigins
	}
	return nil
}

func (o *Options) loadEnv() error {
	// PORT carries a bare port number as on most hosting platforms.
	if port := os.Getenv("PORT"); port != "" {
		o.Port = ":" + port
	}
	if serverAddress := os.Getenv("SERVER_ADDRESS"); serverAddress != "" {
		o.Port = serverAddress
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		o.DatabaseDSN = dsn
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		o.JWTSecret = secret
	}
	if exp := os.Getenv("JWT_EXPIRY"); exp != "" {
		ttl, err := time.ParseDuration(exp)
		if err != nil {
			return fmt.Errorf("JWT_EXPIRY: %w", err)
		}
		o.TokenTTL = ttl
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		o.LogLevel = level
	}
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		o.AllowedOrigins = splitList(origins)
	}
	return nil
}

func (o *Options) validate() error {
	if o.JWTSecret == "" {
		return errors.New("jwt secret is required")
	}
	if o.DatabaseDSN == "" {
		return errors.New("database dsn is required")
	}
	if o.TokenTTL <= 0 {
		return errors.New("token ttl must be positive")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
