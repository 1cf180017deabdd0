package configuration

import (
	"fmt"
	"io"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/iota-uz/utils/fs"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/worktrack/worktrack/pkg/logging"
)

const Production = "production"

var singleton = sync.OnceValue(func() *Configuration {
	c := &Configuration{}
	if err := c.load([]string{".env", ".env.local"}); err != nil {
		c.Unload()
		panic(err)
	}
	return c
})

// LoadEnv loads the given env files from the working directory. When none of
// them exist there, the nearest parent directory holding a go.mod is tried.
func LoadEnv(envFiles []string) (int, error) {
	existing := existingFiles("", envFiles)
	if len(existing) == 0 {
		if root, ok := findModuleRoot(); ok {
			existing = existingFiles(root, envFiles)
		}
	}
	if len(existing) == 0 {
		return 0, nil
	}
	return len(existing), godotenv.Load(existing...)
}

func existingFiles(dir string, envFiles []string) []string {
	out := make([]string, 0, len(envFiles))
	for _, file := range envFiles {
		path := file
		if dir != "" {
			path = filepath.Join(dir, file)
		}
		if fs.FileExists(path) {
			out = append(out, path)
		}
	}
	return out
}

func findModuleRoot() (string, bool) {
	wd, err := os.Getwd()
	if err != nil {
		return "", false
	}
	for dir := wd; ; {
		if fs.FileExists(filepath.Join(dir, "go.mod")) {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

type BackendOptions struct {
	BaseURL      string        `env:"API_BASE_URL" envDefault:"http://localhost:8080"`
	Timeout      time.Duration `env:"API_TIMEOUT" envDefault:"30s"`
	MaxIdleConns int           `env:"API_MAX_IDLE_CONNS" envDefault:"200"`
}

func (b *BackendOptions) Validate() error {
	u, err := url.Parse(b.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid API_BASE_URL=%q: %w", b.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("API_BASE_URL must be http(s), got %q", b.BaseURL)
	}
	if b.Timeout <= 0 {
		return fmt.Errorf("API_TIMEOUT must be positive, got %s", b.Timeout)
	}
	return nil
}

type SessionOptions struct {
	CookieKey    string        `env:"SID_COOKIE_KEY" envDefault:"sid"`
	Duration     time.Duration `env:"SESSION_DURATION" envDefault:"720h"`
	Store        string        `env:"SESSION_STORE" envDefault:"memory"` // memory or redis
	RedisURL     string        `env:"SESSION_REDIS_URL" envDefault:"localhost:6379"`
	CookieSecure bool          `env:"SESSION_COOKIE_SECURE" envDefault:"false"`
}

func (s *SessionOptions) Validate() error {
	if s.Store != "memory" && s.Store != "redis" {
		return fmt.Errorf("session Store must be 'memory' or 'redis', got '%s'", s.Store)
	}
	if s.Store == "redis" && s.RedisURL == "" {
		return fmt.Errorf("session RedisURL is required when Store is 'redis'")
	}
	if s.Duration <= 0 {
		return fmt.Errorf("SESSION_DURATION must be positive, got %s", s.Duration)
	}
	return nil
}

type LogOptions struct {
	Level      string `env:"LOG_LEVEL" envDefault:"error"`
	Path       string `env:"LOG_PATH" envDefault:"./logs/app.log"`
	MaxSizeMB  int    `env:"LOG_MAX_SIZE_MB" envDefault:"100"`
	MaxBackups int    `env:"LOG_MAX_BACKUPS" envDefault:"5"`
}

type OpenTelemetryOptions struct {
	Enabled     bool   `env:"OTEL_ENABLED" envDefault:"false"`
	TempoURL    string `env:"OTEL_TEMPO_URL" envDefault:"localhost:4318"`
	ServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"worktrack"`
}

type PrometheusOptions struct {
	Enabled bool   `env:"PROMETHEUS_METRICS_ENABLED" envDefault:"false"`
	Path    string `env:"PROMETHEUS_METRICS_PATH" envDefault:"/debug/prometheus"`
}

type RateLimitOptions struct {
	Enabled   bool   `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	GlobalRPS int    `env:"RATE_LIMIT_GLOBAL_RPS" envDefault:"1000"`
	Storage   string `env:"RATE_LIMIT_STORAGE" envDefault:"memory"` // memory or redis
	RedisURL  string `env:"RATE_LIMIT_REDIS_URL"`
}

// Validate checks the rate limit configuration for errors
func (r *RateLimitOptions) Validate() error {
	if r.GlobalRPS < 0 {
		return fmt.Errorf("rate limit GlobalRPS must be non-negative, got %d", r.GlobalRPS)
	}
	if r.GlobalRPS > 1000000 {
		return fmt.Errorf("rate limit GlobalRPS too high, maximum is 1,000,000, got %d", r.GlobalRPS)
	}
	if r.Storage != "memory" && r.Storage != "redis" {
		return fmt.Errorf("rate limit Storage must be 'memory' or 'redis', got '%s'", r.Storage)
	}
	if r.Storage == "redis" && r.RedisURL == "" {
		return fmt.Errorf("rate limit RedisURL is required when Storage is 'redis'")
	}
	return nil
}

type CORSOptions struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
}

type Configuration struct {
	Backend       BackendOptions
	Session       SessionOptions
	Log           LogOptions
	OpenTelemetry OpenTelemetryOptions
	Prometheus    PrometheusOptions
	RateLimit     RateLimitOptions
	CORS          CORSOptions

	ServerPort       int           `env:"PORT" envDefault:"3200"`
	GoAppEnvironment string        `env:"GO_APP_ENV" envDefault:"development"`
	SocketAddress    string        `env:"-"`
	Domain           string        `env:"DOMAIN" envDefault:"localhost"`
	Origin           string        `env:"ORIGIN" envDefault:"http://localhost:3200"`
	PageSize         int           `env:"PAGE_SIZE" envDefault:"25"`
	MaxPageSize      int           `env:"MAX_PAGE_SIZE" envDefault:"100"`
	MaxUploadSize    int64         `env:"MAX_UPLOAD_SIZE" envDefault:"33554432"`
	MaxUploadMemory  int64         `env:"MAX_UPLOAD_MEMORY" envDefault:"33554432"`
	SearchDebounce   time.Duration `env:"SEARCH_DEBOUNCE" envDefault:"400ms"`
	// Grouping of permissions on the role permission matrix page.
	PermissionSchemaPath string `env:"PERMISSION_SCHEMA_PATH" envDefault:""`
	// Looked up on incoming requests; a random uuidv4 is generated when absent.
	RequestIDHeader string `env:"REQUEST_ID_HEADER" envDefault:"X-Request-ID"`
	// Falls back to request.RemoteAddr when absent.
	RealIPHeader string `env:"REAL_IP_HEADER" envDefault:"X-Real-IP"`

	logFile io.Closer
	logger  *logrus.Logger
}

func (c *Configuration) Logger() *logrus.Logger {
	return c.logger
}

func (c *Configuration) LogrusLogLevel() logrus.Level {
	switch c.Log.Level {
	case "silent":
		return logrus.PanicLevel
	case "error":
		return logrus.ErrorLevel
	case "warn":
		return logrus.WarnLevel
	case "info":
		return logrus.InfoLevel
	case "debug":
		return logrus.DebugLevel
	default:
		return logrus.ErrorLevel
	}
}

func (c *Configuration) Scheme() string {
	if c.GoAppEnvironment == Production {
		return "https"
	}
	return "http"
}

// SearchDebounceTrigger returns the htmx trigger used by debounced search inputs.
func (c *Configuration) SearchDebounceTrigger() string {
	return fmt.Sprintf("input changed delay:%dms, search", c.SearchDebounce.Milliseconds())
}

func Use() *Configuration {
	return singleton()
}

func (c *Configuration) load(envFiles []string) error {
	n, err := LoadEnv(envFiles)
	if err != nil {
		return err
	}
	if n == 0 {
		wd, _ := os.Getwd()
		log.Println("No .env files found. Tried:")
		for _, file := range envFiles {
			log.Println(filepath.Join(wd, file))
		}
	}
	if err := c.parse(); err != nil {
		return err
	}

	f, logger, err := logging.FileLogger(c.LogrusLogLevel(), c.Log.Path, logging.RotateOptions{
		MaxSizeMB:  c.Log.MaxSizeMB,
		MaxBackups: c.Log.MaxBackups,
	})
	if err != nil {
		return err
	}
	c.logFile = f
	c.logger = logger
	return nil
}

// parse reads the process environment into c and fills in derived fields.
func (c *Configuration) parse() error {
	if err := env.Parse(c); err != nil {
		return err
	}
	if err := c.RateLimit.Validate(); err != nil {
		return fmt.Errorf("rate limit configuration error: %w", err)
	}
	if err := c.Session.Validate(); err != nil {
		return fmt.Errorf("session configuration error: %w", err)
	}
	if err := c.Backend.Validate(); err != nil {
		return fmt.Errorf("backend configuration error: %w", err)
	}
	c.Backend.BaseURL = strings.TrimRight(c.Backend.BaseURL, "/")
	if c.PageSize <= 0 {
		return fmt.Errorf("PAGE_SIZE must be positive, got %d", c.PageSize)
	}
	if c.MaxPageSize < c.PageSize {
		c.MaxPageSize = c.PageSize
	}

	if c.GoAppEnvironment == Production {
		c.SocketAddress = fmt.Sprintf(":%d", c.ServerPort)
	} else {
		c.SocketAddress = fmt.Sprintf("localhost:%d", c.ServerPort)
	}

	if os.Getenv("ORIGIN") == "" {
		if c.GoAppEnvironment == "development" {
			c.Origin = fmt.Sprintf("%s://%s:%d", c.Scheme(), c.Domain, c.ServerPort)
		} else {
			c.Origin = fmt.Sprintf("%s://%s", c.Scheme(), c.Domain)
		}
	}
	return nil
}

// Unload closes the log file.
func (c *Configuration) Unload() {
	if c.logFile != nil {
		if err := c.logFile.Close(); err != nil {
			log.Printf("Failed to close log file: %v", err)
		}
	}
}
