package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	envPort                  = "PORT"
	envServerReadTimeout     = "SERVER_READ_TIMEOUT"
	envServerWriteTimeout    = "SERVER_WRITE_TIMEOUT"
	envServerShutdownTimeout = "SERVER_SHUTDOWN_TIMEOUT"
	envDBHost                = "DB_HOST"
	envDBPort                = "DB_PORT"
	envDBName                = "DB_NAME"
	envDBUser                = "DB_USER"
	envDBPassword            = "DB_PASSWORD"
	envDBSSLMode             = "DB_SSL_MODE"
	envDBMaxConns            = "DB_MAX_CONNS"
	envDBMinConns            = "DB_MIN_CONNS"
	envJWTTTL                = "JWT_TTL_MINUTES"
	envJWTKeyBits            = "JWT_KEY_BITS"
	envOAuthUserInfoTimeout  = "OAUTH_USERINFO_TIMEOUT"
	envOAuthStateTTL         = "OAUTH_STATE_TTL"

	envGoogleClientID     = "GOOGLE_CLIENT_ID"
	envGoogleClientSecret = "GOOGLE_CLIENT_SECRET"
	envGoogleRedirectURL  = "GOOGLE_REDIRECT_URL"
	envKakaoClientID      = "KAKAO_CLIENT_ID"
	envKakaoClientSecret  = "KAKAO_CLIENT_SECRET"
	envKakaoRedirectURL   = "KAKAO_REDIRECT_URL"
	envNaverClientID      = "NAVER_CLIENT_ID"
	envNaverClientSecret  = "NAVER_CLIENT_SECRET"
	envNaverRedirectURL   = "NAVER_REDIRECT_URL"
)

const (
	defaultServerPort         = "8080"
	defaultServerReadTimeout  = 10 * time.Second
	defaultServerWriteTimeout = 10 * time.Second
	defaultServerShutdown     = 10 * time.Second
	defaultDBHost             = "localhost"
	defaultDBPort             = 5432
	defaultDBName             = "fridgechef"
	defaultDBUser             = "fridgechef_app"
	defaultDBSSLMode          = "disable"
	defaultDBMaxConns         = 25
	defaultDBMinConns         = 5
	defaultJWTTTL             = 60 * time.Minute
	defaultJWTKeyBits         = 2048
	defaultUserInfoTimeout    = 10 * time.Second
	defaultStateTTL           = 5 * time.Minute

	errPortRequiredFmt       = "PORT must be set"
	errDBPasswordRequiredFmt = "DB_PASSWORD must be set"
	errRequiredEnvNotSetFmt  = "required environment variable %s is not set"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	OAuth    OAuthConfig
}

type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
	SSLMode  string
	MaxConns int
	MinConns int
}

type JWTConfig struct {
	TTL     time.Duration
	KeyBits int
}

// OAuthClient is one provider's client registration. A provider with an
// empty ClientID is treated as not configured.
type OAuthClient struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

func (c OAuthClient) Configured() bool {
	return c.ClientID != ""
}

type OAuthConfig struct {
	Google          OAuthClient
	Kakao           OAuthClient
	Naver           OAuthClient
	UserInfoTimeout time.Duration
	LoginStateTTL   time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv(envPort, defaultServerPort),
			ReadTimeout:     getDurationEnv(envServerReadTimeout, defaultServerReadTimeout),
			WriteTimeout:    getDurationEnv(envServerWriteTimeout, defaultServerWriteTimeout),
			ShutdownTimeout: getDurationEnv(envServerShutdownTimeout, defaultServerShutdown),
		},
		Database: DatabaseConfig{
			Host:     getEnv(envDBHost, defaultDBHost),
			Port:     getIntEnv(envDBPort, defaultDBPort),
			Database: getEnv(envDBName, defaultDBName),
			User:     getEnv(envDBUser, defaultDBUser),
			Password: requireEnv(envDBPassword),
			SSLMode:  getEnv(envDBSSLMode, defaultDBSSLMode),
			MaxConns: getIntEnv(envDBMaxConns, defaultDBMaxConns),
			MinConns: getIntEnv(envDBMinConns, defaultDBMinConns),
		},
		JWT: JWTConfig{
			TTL:     getDurationEnv(envJWTTTL, defaultJWTTTL),
			KeyBits: getIntEnv(envJWTKeyBits, defaultJWTKeyBits),
		},
		OAuth: OAuthConfig{
			Google: OAuthClient{
				ClientID:     os.Getenv(envGoogleClientID),
				ClientSecret: os.Getenv(envGoogleClientSecret),
				RedirectURL:  os.Getenv(envGoogleRedirectURL),
			},
			Kakao: OAuthClient{
				ClientID:     os.Getenv(envKakaoClientID),
				ClientSecret: os.Getenv(envKakaoClientSecret),
				RedirectURL:  os.Getenv(envKakaoRedirectURL),
			},
			Naver: OAuthClient{
				ClientID:     os.Getenv(envNaverClientID),
				ClientSecret: os.Getenv(envNaverClientSecret),
				RedirectURL:  os.Getenv(envNaverRedirectURL),
			},
			UserInfoTimeout: getDurationEnv(envOAuthUserInfoTimeout, defaultUserInfoTimeout),
			LoginStateTTL:   getDurationEnv(envOAuthStateTTL, defaultStateTTL),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf(errPortRequiredFmt)
	}

	if c.Database.Password == "" {
		return fmt.Errorf(errDBPasswordRequiredFmt)
	}

	return nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func requireEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		panic(fmt.Sprintf(errRequiredEnvNotSetFmt, key))
	}
	return value
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		if minutes, err := strconv.Atoi(value); err == nil {
			return time.Duration(minutes) * time.Minute
		}
	}
	return defaultValue
}
