package config

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/urfave/cli"
)

const (
	portFlag           = "port"
	dataDirFlag        = "data-dir"
	storeFileFlag      = "store-file"
	envFlag            = "env"
	logLevelFlag       = "log-level"
	vimeoAPIURLFlag    = "vimeo-api-url"
	vimeoTimeoutFlag   = "vimeo-timeout"
	redisAddrFlag      = "redis-addr"
	redisPasswordFlag  = "redis-password"
	redisDBFlag        = "redis-db"
	enrichmentTTLFlag  = "enrichment-ttl"
	allowedOriginsFlag = "allowed-origins"
	rateLimitFlag      = "rate-limit"
)

const (
	DefaultPort          = 5000
	DefaultDataDir       = "data"
	DefaultStoreFileName = "videos.db"
	DefaultVimeoAPIURL   = "https://vimeo.com/api/v2/video"
	DefaultVimeoTimeout  = 5 * time.Second
	DefaultEnrichmentTTL = time.Hour
	DefaultRateLimit     = 200
)

// Config is built once at startup and passed explicitly to every component
// that needs it.
type Config struct {
	Port           int
	DataDir        string
	StoreFile      string
	Env            string
	LogLevel       string
	VimeoAPIURL    string
	VimeoTimeout   time.Duration
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	EnrichmentTTL  time.Duration
	AllowedOrigins []string
	RateLimit      int
}

// RegisterStoreFlags adds the flags needed to locate the database file.
func RegisterStoreFlags(f []cli.Flag) []cli.Flag {
	return append(f,
		cli.StringFlag{
			Name:   dataDirFlag,
			Usage:  "directory holding the library database",
			Value:  DefaultDataDir,
			EnvVar: "DATA_DIR",
		},
		cli.StringFlag{
			Name:   storeFileFlag,
			Usage:  "library database file (defaults to <data-dir>/videos.db)",
			EnvVar: "STORE_FILE",
		},
		cli.StringFlag{
			Name:   envFlag,
			Usage:  "runtime environment (development or production)",
			Value:  "development",
			EnvVar: "ENV",
		},
		cli.StringFlag{
			Name:   logLevelFlag,
			Usage:  "log level",
			Value:  "info",
			EnvVar: "LOG_LEVEL",
		},
	)
}

// RegisterServeFlags adds every flag the HTTP server understands.
func RegisterServeFlags(f []cli.Flag) []cli.Flag {
	f = RegisterStoreFlags(f)
	return append(f,
		cli.IntFlag{
			Name:   portFlag,
			Usage:  "http listen port",
			Value:  DefaultPort,
			EnvVar: "PORT",
		},
		cli.StringFlag{
			Name:   vimeoAPIURLFlag,
			Usage:  "vimeo metadata api base url",
			Value:  DefaultVimeoAPIURL,
			EnvVar: "VIMEO_API_URL",
		},
		cli.DurationFlag{
			Name:   vimeoTimeoutFlag,
			Usage:  "vimeo metadata request timeout",
			Value:  DefaultVimeoTimeout,
			EnvVar: "VIMEO_TIMEOUT",
		},
		cli.StringFlag{
			Name:   redisAddrFlag,
			Usage:  "redis address for the enrichment cache (disabled when empty)",
			EnvVar: "REDIS_ADDR",
		},
		cli.StringFlag{
			Name:   redisPasswordFlag,
			Usage:  "redis password",
			EnvVar: "REDIS_PASSWORD",
		},
		cli.IntFlag{
			Name:   redisDBFlag,
			Usage:  "redis database",
			EnvVar: "REDIS_DB",
		},
		cli.DurationFlag{
			Name:   enrichmentTTLFlag,
			Usage:  "how long vimeo metadata stays cached",
			Value:  DefaultEnrichmentTTL,
			EnvVar: "ENRICHMENT_TTL",
		},
		cli.StringFlag{
			Name:   allowedOriginsFlag,
			Usage:  "comma separated list of CORS origins",
			EnvVar: "ALLOWED_ORIGINS",
		},
		cli.IntFlag{
			Name:   rateLimitFlag,
			Usage:  "requests per minute accepted from all clients",
			Value:  DefaultRateLimit,
			EnvVar: "RATE_LIMIT",
		},
	)
}

// FromContext reads the flags registered above. Flags that were not
// registered on the running command read as zero values and get defaulted.
func FromContext(c *cli.Context) Config {
	cfg := Config{
		Port:           c.Int(portFlag),
		DataDir:        c.String(dataDirFlag),
		StoreFile:      c.String(storeFileFlag),
		Env:            c.String(envFlag),
		LogLevel:       c.String(logLevelFlag),
		VimeoAPIURL:    c.String(vimeoAPIURLFlag),
		VimeoTimeout:   c.Duration(vimeoTimeoutFlag),
		RedisAddr:      c.String(redisAddrFlag),
		RedisPassword:  c.String(redisPasswordFlag),
		RedisDB:        c.Int(redisDBFlag),
		EnrichmentTTL:  c.Duration(enrichmentTTLFlag),
		AllowedOrigins: splitList(c.String(allowedOriginsFlag)),
		RateLimit:      c.Int(rateLimitFlag),
	}
	return cfg.WithDefaults()
}

// WithDefaults fills every unset field.
func (c Config) WithDefaults() Config {
	if c.Port <= 0 {
		c.Port = DefaultPort
	}
	if strings.TrimSpace(c.DataDir) == "" {
		c.DataDir = DefaultDataDir
	}
	if strings.TrimSpace(c.StoreFile) == "" {
		c.StoreFile = filepath.Join(c.DataDir, DefaultStoreFileName)
	}
	if c.Env == "" {
		c.Env = "development"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.VimeoAPIURL == "" {
		c.VimeoAPIURL = DefaultVimeoAPIURL
	}
	if c.VimeoTimeout <= 0 {
		c.VimeoTimeout = DefaultVimeoTimeout
	}
	if c.EnrichmentTTL <= 0 {
		c.EnrichmentTTL = DefaultEnrichmentTTL
	}
	if c.RateLimit <= 0 {
		c.RateLimit = DefaultRateLimit
	}
	return c
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
