package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

// EnvPrefix namespaces environment overrides, e.g. TRIP_AI_APIKEY.
const EnvPrefix = "TRIP"

type PostgresConfig struct {
	Host              string `mapstructure:"host"`
	Password          string `mapstructure:"password"`
	Port              string `mapstructure:"port"`
	Username          string `mapstructure:"username"`
	DB                string `mapstructure:"db"`
	SSLMODE           string `mapstructure:"SSLMODE"`
	MAXCONWAITINGTIME int    `mapstructure:"MAXCONWAITINGTIME"`
}

type MongoConfig struct {
	URI        string        `mapstructure:"uri"`
	DB         string        `mapstructure:"db"`
	Collection string        `mapstructure:"collection"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

type JWTConfig struct {
	SecretKey string `mapstructure:"secretKey"`
	Issuer    string `mapstructure:"issuer"`
	Audience  string `mapstructure:"audience"`
}

// AIConfig is injected into the Gemini client at construction.
type AIConfig struct {
	APIKey            string        `mapstructure:"apiKey"`
	Model             string        `mapstructure:"model"`
	Timeout           time.Duration `mapstructure:"timeout"`
	MaxAttempts       int           `mapstructure:"maxAttempts"`
	RequestsPerMinute int           `mapstructure:"requestsPerMinute"`
	Temperature       float32       `mapstructure:"temperature"`
}

type PlannerConfig struct {
	DefaultStrategy          string        `mapstructure:"defaultStrategy"`
	Currency                 string        `mapstructure:"currency"`
	FixturesDir              string        `mapstructure:"fixturesDir"`
	DailyTransportMode       string        `mapstructure:"dailyTransportMode"`
	DailyTransportCost       float64       `mapstructure:"dailyTransportCost"`
	TripTransportPlaceholder float64       `mapstructure:"tripTransportPlaceholder"`
	CatalogCacheTTL          time.Duration `mapstructure:"catalogCacheTTL"`
}

type Config struct {
	Mode     string `mapstructure:"mode"`
	Dotenv   string `mapstructure:"dotenv"`
	Handlers struct {
		Metrics struct {
			Port string `mapstructure:"port"`
		} `mapstructure:"metrics"`
	} `mapstructure:"handlers"`
	Repositories struct {
		Driver   string         `mapstructure:"driver"`
		Postgres PostgresConfig `mapstructure:"postgres"`
		Mongo    MongoConfig    `mapstructure:"mongo"`
	} `mapstructure:"repositories"`
	Server struct {
		HTTPPort string        `mapstructure:"HTTPPort"`
		Timeout  time.Duration `mapstructure:"HTTPTimeout"`
	} `mapstructure:"server"`
	JWT     JWTConfig     `mapstructure:"jwt"`
	AI      AIConfig      `mapstructure:"ai"`
	Planner PlannerConfig `mapstructure:"planner"`
}

func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	err := v.ReadInConfig()
	if err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %w", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	config.applyDefaults()
	return config, nil
}

// applyDefaults fills the values the planner cannot run without.
func (c *Config) applyDefaults() {
	if c.Repositories.Driver == "" {
		c.Repositories.Driver = "postgres"
	}
	if c.AI.Model == "" {
		c.AI.Model = "gemini-2.0-flash"
	}
	if c.AI.Timeout <= 0 {
		c.AI.Timeout = 30 * time.Second
	}
	if c.AI.MaxAttempts < 1 {
		c.AI.MaxAttempts = 1
	}
	if c.Planner.DefaultStrategy == "" {
		c.Planner.DefaultStrategy = "greedy"
	}
	if c.Planner.Currency == "" {
		c.Planner.Currency = "INR"
	}
	if c.Planner.DailyTransportMode == "" {
		c.Planner.DailyTransportMode = "local_transit"
	}
	if c.Planner.TripTransportPlaceholder == 0 {
		c.Planner.TripTransportPlaceholder = 1000
	}
	if c.Planner.CatalogCacheTTL <= 0 {
		c.Planner.CatalogCacheTTL = 24 * time.Hour
	}
	if c.Repositories.Mongo.Timeout <= 0 {
		c.Repositories.Mongo.Timeout = 10 * time.Second
	}
}
