package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, backend URL, etc.), security settings
// - default: Values common across all environments (timezone, policy windows, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server  ServerConfig
	CORS    CORSConfig
	Log     LogConfig
	JWT     JWTConfig
	Backend BackendConfig
	Engine  EngineConfig
	Redis   RedisConfig
	AMQP    AMQPConfig
}

type ServerConfig struct {
	Port              string        `envconfig:"PORT" required:"true"`
	ReadHeaderTimeout time.Duration `envconfig:"SERVER_READ_HEADER_TIMEOUT" default:"10s"`
	ShutdownTimeout   time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"15s"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,Cache-Control,Last-Event-ID,X-Request-ID"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,X-Request-ID"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
}

type BackendConfig struct {
	BaseURL string `envconfig:"BACKEND_BASE_URL" required:"true"`
	Token   string `envconfig:"BACKEND_TOKEN"`
	// 0 disables the client timeout: a hung call keeps the optimistic state until it resolves.
	Timeout             time.Duration `envconfig:"BACKEND_TIMEOUT" default:"0s"`
	ResyncAfterMutation bool          `envconfig:"BACKEND_RESYNC_AFTER_MUTATION" default:"true"`
}

// EngineConfig holds product policy constants. They are configuration, not invariants.
type EngineConfig struct {
	TickInterval       time.Duration `envconfig:"ENGINE_TICK_INTERVAL" default:"1s"`
	ArrivalWindow      time.Duration `envconfig:"ENGINE_ARRIVAL_WINDOW" default:"30s"`
	CancellationWindow time.Duration `envconfig:"ENGINE_CANCELLATION_WINDOW" default:"12h"`
	EventBufferSize    int           `envconfig:"ENGINE_EVENT_BUFFER_SIZE" default:"64"`
	SinkTimeout        time.Duration `envconfig:"ENGINE_SINK_TIMEOUT" default:"5s"`
}

type RedisConfig struct {
	// empty Addr keeps creation overrides in process memory
	Addr        string        `envconfig:"REDIS_ADDR"`
	Password    string        `envconfig:"REDIS_PASSWORD"`
	DB          int           `envconfig:"REDIS_DB" default:"0"`
	KeyPrefix   string        `envconfig:"REDIS_KEY_PREFIX" default:"workshop-booking:created-override:"`
	OverrideTTL time.Duration `envconfig:"REDIS_OVERRIDE_TTL" default:"72h"`
	DialTimeout time.Duration `envconfig:"REDIS_DIAL_TIMEOUT" default:"5s"`
}

type AMQPConfig struct {
	// empty URL disables the outward event sink
	URL      string `envconfig:"AMQP_URL"`
	Exchange string `envconfig:"AMQP_EXCHANGE" default:"booking.events"`
}

func (c RedisConfig) Enabled() bool { return c.Addr != "" }

func (c AMQPConfig) Enabled() bool { return c.URL != "" }

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if cfg.Engine.TickInterval <= 0 {
		return Config{}, fmt.Errorf("ENGINE_TICK_INTERVAL must be positive, got %s", cfg.Engine.TickInterval)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:              "8889", // Test port
			ReadHeaderTimeout: 10 * time.Second,
			ShutdownTimeout:   5 * time.Second,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "UTC",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 0,
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: "1h",
		},
		Backend: BackendConfig{
			BaseURL:             "http://localhost:18080",
			ResyncAfterMutation: false,
		},
		Engine: EngineConfig{
			TickInterval:       time.Second,
			ArrivalWindow:      30 * time.Second,
			CancellationWindow: 12 * time.Hour,
			EventBufferSize:    16,
			SinkTimeout:        time.Second,
		},
		Redis: RedisConfig{
			KeyPrefix:   "workshop-booking-test:created-override:",
			OverrideTTL: time.Hour,
			DialTimeout: 5 * time.Second,
		},
		AMQP: AMQPConfig{
			Exchange: "booking.events.test",
		},
	}
}
