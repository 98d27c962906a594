package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Intake   IntakeConfig
	Geocoder GeocoderConfig
	Weather  WeatherConfig
	Overpass OverpassConfig
	Wikidata WikidataConfig
	Scraper  ScraperConfig
	Worker   WorkerConfig
	Log      LogConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// IntakeConfig controls where trace files are picked up and what happens to
// them after a successful import.
type IntakeConfig struct {
	Dir        string
	ArchiveDir string // empty = delete processed files
	Extension  string
}

type GeocoderConfig struct {
	BaseURL        string
	UserAgent      string
	Country        string
	Language       string
	RequestTimeout int // seconds
	MaxRetries     int
	RetryBackoff   time.Duration
}

type WeatherConfig struct {
	BaseURL        string
	Timezone       string
	ForecastDays   int
	RequestTimeout int
}

type OverpassConfig struct {
	Servers        []string
	RadiusKm       float64
	RequestTimeout int
}

type WikidataConfig struct {
	BaseURL        string
	UserAgent      string
	RadiusKm       float64
	RequestTimeout int
	MaxRetries     int
}

type ScraperConfig struct {
	BaseURL        string
	Headless       bool
	ZoomLevel      int
	NavTimeout     time.Duration
	DetailDelay    time.Duration
	BrowserBinPath string // empty = let the launcher resolve a browser
}

type WorkerConfig struct {
	Enabled           bool
	IntakeInterval    time.Duration
	ReconcileInterval time.Duration
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Intake: IntakeConfig{
			Dir:        viper.GetString("INTAKE_DIR"),
			ArchiveDir: viper.GetString("INTAKE_ARCHIVE_DIR"),
			Extension:  viper.GetString("INTAKE_EXTENSION"),
		},
		Geocoder: GeocoderConfig{
			BaseURL:        viper.GetString("GEOCODER_BASE_URL"),
			UserAgent:      viper.GetString("GEOCODER_USER_AGENT"),
			Country:        viper.GetString("GEOCODER_COUNTRY"),
			Language:       viper.GetString("GEOCODER_LANGUAGE"),
			RequestTimeout: viper.GetInt("GEOCODER_REQUEST_TIMEOUT"),
			MaxRetries:     viper.GetInt("GEOCODER_MAX_RETRIES"),
			RetryBackoff:   time.Duration(viper.GetInt("GEOCODER_RETRY_BACKOFF_MS")) * time.Millisecond,
		},
		Weather: WeatherConfig{
			BaseURL:        viper.GetString("WEATHER_BASE_URL"),
			Timezone:       viper.GetString("WEATHER_TIMEZONE"),
			ForecastDays:   viper.GetInt("WEATHER_FORECAST_DAYS"),
			RequestTimeout: viper.GetInt("WEATHER_REQUEST_TIMEOUT"),
		},
		Overpass: OverpassConfig{
			Servers:        viper.GetStringSlice("OVERPASS_SERVERS"),
			RadiusKm:       viper.GetFloat64("OVERPASS_RADIUS_KM"),
			RequestTimeout: viper.GetInt("OVERPASS_REQUEST_TIMEOUT"),
		},
		Wikidata: WikidataConfig{
			BaseURL:        viper.GetString("WIKIDATA_BASE_URL"),
			UserAgent:      viper.GetString("WIKIDATA_USER_AGENT"),
			RadiusKm:       viper.GetFloat64("WIKIDATA_RADIUS_KM"),
			RequestTimeout: viper.GetInt("WIKIDATA_REQUEST_TIMEOUT"),
			MaxRetries:     viper.GetInt("WIKIDATA_MAX_RETRIES"),
		},
		Scraper: ScraperConfig{
			BaseURL:        viper.GetString("SCRAPER_BASE_URL"),
			Headless:       viper.GetBool("SCRAPER_HEADLESS"),
			ZoomLevel:      viper.GetInt("SCRAPER_ZOOM_LEVEL"),
			NavTimeout:     time.Duration(viper.GetInt("SCRAPER_NAV_TIMEOUT")) * time.Second,
			DetailDelay:    time.Duration(viper.GetInt("SCRAPER_DETAIL_DELAY_MS")) * time.Millisecond,
			BrowserBinPath: viper.GetString("SCRAPER_BROWSER_BIN"),
		},
		Worker: WorkerConfig{
			Enabled:           viper.GetBool("WORKER_ENABLED"),
			IntakeInterval:    time.Duration(viper.GetInt("WORKER_INTAKE_INTERVAL")) * time.Second,
			ReconcileInterval: time.Duration(viper.GetInt("WORKER_RECONCILE_INTERVAL")) * time.Second,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	// Set default values if not provided
	if cfg.Intake.Dir == "" {
		cfg.Intake.Dir = "data/in/gpx"
	}
	if cfg.Intake.Extension == "" {
		cfg.Intake.Extension = ".gpx"
	}
	if cfg.Geocoder.BaseURL == "" {
		cfg.Geocoder.BaseURL = "https://nominatim.openstreetmap.org"
	}
	if cfg.Geocoder.UserAgent == "" {
		cfg.Geocoder.UserAgent = "randovango-geocoder-v1"
	}
	if cfg.Geocoder.Country == "" {
		cfg.Geocoder.Country = "France"
	}
	if cfg.Geocoder.Language == "" {
		cfg.Geocoder.Language = "fr"
	}
	if cfg.Geocoder.RequestTimeout == 0 {
		cfg.Geocoder.RequestTimeout = 10
	}
	if cfg.Geocoder.MaxRetries == 0 {
		cfg.Geocoder.MaxRetries = 3
	}
	if cfg.Geocoder.RetryBackoff == 0 {
		cfg.Geocoder.RetryBackoff = 2 * time.Second
	}
	if cfg.Weather.BaseURL == "" {
		cfg.Weather.BaseURL = "https://api.open-meteo.com/v1/forecast"
	}
	if cfg.Weather.Timezone == "" {
		cfg.Weather.Timezone = "Europe/Paris"
	}
	if cfg.Weather.ForecastDays == 0 {
		cfg.Weather.ForecastDays = 7
	}
	if cfg.Weather.RequestTimeout == 0 {
		cfg.Weather.RequestTimeout = 15
	}
	if len(cfg.Overpass.Servers) == 0 {
		cfg.Overpass.Servers = []string{
			"https://overpass-api.de/api/interpreter",
			"https://overpass.kumi.systems/api/interpreter",
			"https://lz4.overpass-api.de/api/interpreter",
		}
	}
	if cfg.Overpass.RadiusKm == 0 {
		cfg.Overpass.RadiusKm = 5.5
	}
	if cfg.Overpass.RequestTimeout == 0 {
		cfg.Overpass.RequestTimeout = 90
	}
	if cfg.Wikidata.BaseURL == "" {
		cfg.Wikidata.BaseURL = "https://query.wikidata.org/sparql"
	}
	if cfg.Wikidata.UserAgent == "" {
		cfg.Wikidata.UserAgent = "randovango-poi-v1 (contact@example.com)"
	}
	if cfg.Wikidata.RadiusKm == 0 {
		cfg.Wikidata.RadiusKm = 10
	}
	if cfg.Wikidata.RequestTimeout == 0 {
		cfg.Wikidata.RequestTimeout = 60
	}
	if cfg.Wikidata.MaxRetries == 0 {
		cfg.Wikidata.MaxRetries = 3
	}
	if cfg.Scraper.BaseURL == "" {
		cfg.Scraper.BaseURL = "https://park4night.com"
	}
	if cfg.Scraper.ZoomLevel == 0 {
		cfg.Scraper.ZoomLevel = 15
	}
	if cfg.Scraper.NavTimeout == 0 {
		cfg.Scraper.NavTimeout = 40 * time.Second
	}
	if cfg.Scraper.DetailDelay == 0 {
		cfg.Scraper.DetailDelay = time.Second
	}
	if cfg.Worker.IntakeInterval == 0 {
		cfg.Worker.IntakeInterval = 60 * time.Second
	}
	if cfg.Worker.ReconcileInterval == 0 {
		cfg.Worker.ReconcileInterval = 24 * time.Hour
	}

	return cfg, nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
