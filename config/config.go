package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// DefaultJWTSecret is the placeholder secret; it is refused outside development.
const DefaultJWTSecret = "change-me-in-production"

// DefaultAuthPassword seeds the admin account in development. Outside development it is
// refused unless ADMIN_UID names an existing admin, in which case nothing is seeded.
const DefaultAuthPassword = "password"

// Store drivers.
const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`
	Env      string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	StoreDriver       string        `env:"STORE_DRIVER" envDefault:"mongo"`
	MongoURI          string        `env:"MONGODB_URI" envDefault:"mongodb://localhost:27017"`
	DBName            string        `env:"MONGODB_DB" envDefault:"portfolio"`
	CVAppID           string        `env:"CV_APP_ID" envDefault:"c_a9eccf039804a661_landing-page-react-439"`
	WatchPollInterval time.Duration `env:"WATCH_POLL_INTERVAL" envDefault:"5s"`

	JWTSecret      string        `env:"JWT_SECRET" envDefault:"change-me-in-production"`
	SessionTTL     time.Duration `env:"SESSION_TTL" envDefault:"168h"`
	AuthEmail      string        `env:"AUTH_EMAIL" envDefault:"admin@example.com"`
	AuthPass       string        `env:"AUTH_PASSWORD" envDefault:"password"`
	AdminUID       string        `env:"ADMIN_UID"`
	AllowSignup    bool          `env:"ALLOW_SIGNUP" envDefault:"true"`
	AllowAnonymous bool          `env:"ALLOW_ANONYMOUS" envDefault:"true"`
	RedisURL       string        `env:"REDIS_URL"`

	S3Bucket        string `env:"AWS_S3_BUCKET"`
	S3Region        string `env:"AWS_REGION" envDefault:"us-east-1"`
	S3AccessKeyID   string `env:"AWS_ACCESS_KEY_ID"`
	S3SecretKey     string `env:"AWS_SECRET_ACCESS_KEY"`
	S3PublicBaseURL string `env:"AWS_S3_PUBLIC_BASE_URL"`
	S3Endpoint      string `env:"AWS_S3_ENDPOINT"`
	MaxUploadMB     int64  `env:"MAX_UPLOAD_MB" envDefault:"5"`

	BooksAPIURL string `env:"BOOKS_API_URL" envDefault:"https://www.googleapis.com/books/v1/volumes"`

	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"0.5"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"5"`

	ContactEndpoint  string `env:"CONTACT_ENDPOINT" envDefault:"https://formspree.io/f/meogbldy"`
	RecaptchaSiteKey string `env:"RECAPTCHA_SITE_KEY"`
	RecaptchaSecret  string `env:"RECAPTCHA_SECRET"`
	SMTPHost         string `env:"SMTP_HOST"`
	SMTPPort         int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser         string `env:"SMTP_USER"`
	SMTPPass         string `env:"SMTP_PASSWORD"`
	ContactFrom      string `env:"CONTACT_FROM"`
	ContactTo        string `env:"CONTACT_TO"`

	CVPDFEnglish   string   `env:"CV_PDF_EN" envDefault:"https://solheim.online/KIANOSH F SOLHEIM CV EN.pdf"`
	CVPDFNorwegian string   `env:"CV_PDF_NO" envDefault:"https://solheim.online/KIANOSH F SOLHEIM CV NO.pdf"`
	TrustedOrigins []string `env:"CSRF_TRUSTED_ORIGINS" envSeparator:","`
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) Addr() string {
	return ":" + c.Port
}

// SMTPEnabled reports whether contact messages go out over SMTP instead of the form relay.
func (c *Config) SMTPEnabled() bool {
	return c.SMTPHost != "" && c.ContactTo != ""
}

func (c *Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB * 1024 * 1024
}

// SlogLevel maps LogLevel to a slog level; unknown values mean info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Load parses the environment. Call godotenv.Load before it to pick up a .env file.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if !c.IsDevelopment() && (c.JWTSecret == "" || c.JWTSecret == DefaultJWTSecret) {
		errs = append(errs, errors.New("JWT_SECRET must be set to a strong secret (not the default change-me-in-production)"))
	}
	if !c.IsDevelopment() && c.AdminUID == "" && (c.AuthPass == "" || c.AuthPass == DefaultAuthPassword) {
		errs = append(errs, errors.New("AUTH_PASSWORD must be set to a strong password when ADMIN_UID is empty (not the default password)"))
	}
	if c.StoreDriver != DriverMongo && c.StoreDriver != DriverMemory {
		errs = append(errs, fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", DriverMongo, DriverMemory, c.StoreDriver))
	}
	if c.MaxUploadMB <= 0 {
		errs = append(errs, fmt.Errorf("MAX_UPLOAD_MB must be positive, got %d", c.MaxUploadMB))
	}
	if c.WatchPollInterval <= 0 {
		errs = append(errs, errors.New("WATCH_POLL_INTERVAL must be positive"))
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive"))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}
	return errors.Join(errs...)
}

// LogSummary logs which optional integrations are enabled. Secret values are never logged.
func (c *Config) LogSummary(logger *slog.Logger) {
	logger.Info("config loaded",
		"env", c.Env,
		"port", c.Port,
		"store", c.StoreDriver,
		"db", c.DBName,
		"s3", c.S3Bucket != "",
		"redis", c.RedisURL != "",
		"smtp", c.SMTPEnabled(),
		"recaptcha", c.RecaptchaSecret != "",
		"admin_uid_set", c.AdminUID != "",
	)
}
