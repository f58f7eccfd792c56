package config

import (
	"flag"
	"os"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultServerAddress   = ":8080"
	defaultDatabaseDSN     = ""
	defaultLogLevel        = "debug"
	defaultMomoEndpoint    = "https://test-payment.momo.vn/v2/gateway/api/create"
	defaultExpireInterval  = time.Minute
	defaultPendingTTL      = 15 * time.Minute
	defaultTokenTTLSeconds = 3600 * 24
)

type Config struct {
	ServerAddr  string
	DatabaseDSN string
	LogLevel    string

	JWTSecret string
	TokenTTL  time.Duration

	// MoMo gateway credentials and endpoints
	MomoEndpoint    string
	MomoPartnerCode string
	MomoAccessKey   string
	MomoSecretKey   string
	MomoIPNURL      string

	// pending payment expirer
	ExpireInterval time.Duration
	PendingTTL     time.Duration
}

var (
	once      sync.Once
	singleton *Config
)

// New returns new Config. It parses command line and environment variables only once.
func New() (*Config, error) {
	once.Do(func() {
		// load .env if it exists
		_ = godotenv.Load()

		cfg := Config{
			TokenTTL:       defaultTokenTTLSeconds * time.Second,
			ExpireInterval: defaultExpireInterval,
			PendingTTL:     defaultPendingTTL,
		}

		// initialize flags
		flag.StringVar(&cfg.ServerAddr, "a", defaultServerAddress, "easyui server address")
		flag.StringVar(&cfg.DatabaseDSN, "d", defaultDatabaseDSN, "easyui database DSN")
		flag.StringVar(&cfg.LogLevel, "l", defaultLogLevel, "log level")
		flag.StringVar(&cfg.MomoEndpoint, "m", defaultMomoEndpoint, "momo create endpoint")

		flag.Parse()

		// if environment variable is set, then using it
		if runAddrEnv := os.Getenv("RUN_ADDRESS"); runAddrEnv != "" {
			cfg.ServerAddr = runAddrEnv
		}
		if databaseURIEnv := os.Getenv("DATABASE_URI"); databaseURIEnv != "" {
			cfg.DatabaseDSN = databaseURIEnv
		}
		if logLevelEnv := os.Getenv("LOG_LEVEL"); logLevelEnv != "" {
			cfg.LogLevel = logLevelEnv
		}
		cfg.JWTSecret = os.Getenv("JWT_SECRET")
		if momoEndpointEnv := os.Getenv("MOMO_ENDPOINT"); momoEndpointEnv != "" {
			cfg.MomoEndpoint = momoEndpointEnv
		}
		cfg.MomoPartnerCode = os.Getenv("MOMO_PARTNER_CODE")
		cfg.MomoAccessKey = os.Getenv("MOMO_ACCESS_KEY")
		cfg.MomoSecretKey = os.Getenv("MOMO_SECRET_KEY")
		cfg.MomoIPNURL = os.Getenv("MOMO_IPN_URL")

		if ttlEnv := os.Getenv("PENDING_PAYMENT_TTL"); ttlEnv != "" {
			if d, err := time.ParseDuration(ttlEnv); err == nil {
				cfg.PendingTTL = d
			}
		}
		if intervalEnv := os.Getenv("EXPIRE_INTERVAL"); intervalEnv != "" {
			if d, err := time.ParseDuration(intervalEnv); err == nil {
				cfg.ExpireInterval = d
			}
		}

		singleton = &cfg
	})

	return singleton, nil
}
