package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds environment-driven settings for the dashboard service.
// The simulated-arrival delays default to the reference schedule: each
// dataset lands a little later than the previous one, with crop health
// last. Nothing may rely on that ordering except the readiness gate,
// which is tied to the crop-health delivery.
type Config struct {
	Port        int
	DatabaseURL string
	DBPath      string
	SeedOnStart bool

	FarmDelay       time.Duration
	NDVIDelay       time.Duration
	SoilDelay       time.Duration
	WeatherDelay    time.Duration
	MarketDelay     time.Duration
	CropHealthDelay time.Duration

	ReplyDelay time.Duration
}

// Load reads configuration from environment variables (optionally .env).
func Load() (Config, error) {
	_ = godotenv.Load() // ignore missing file

	cfg := Config{
		Port:        8080,
		DBPath:      "agriintel.db",
		SeedOnStart: true,

		FarmDelay:       500 * time.Millisecond,
		NDVIDelay:       600 * time.Millisecond,
		SoilDelay:       700 * time.Millisecond,
		WeatherDelay:    800 * time.Millisecond,
		MarketDelay:     900 * time.Millisecond,
		CropHealthDelay: 1000 * time.Millisecond,

		ReplyDelay: 1500 * time.Millisecond,
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")

	if path := os.Getenv("DB_PATH"); path != "" {
		cfg.DBPath = path
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil || port <= 0 {
			return cfg, fmt.Errorf("invalid PORT: %s", portStr)
		}
		cfg.Port = port
	}

	if seedStr := os.Getenv("SEED_ON_START"); seedStr != "" {
		cfg.SeedOnStart = seedStr == "true" || seedStr == "1"
	}

	var err error
	for _, d := range []struct {
		key string
		dst *time.Duration
	}{
		{"FARM_DELAY_MS", &cfg.FarmDelay},
		{"NDVI_DELAY_MS", &cfg.NDVIDelay},
		{"SOIL_DELAY_MS", &cfg.SoilDelay},
		{"WEATHER_DELAY_MS", &cfg.WeatherDelay},
		{"MARKET_DELAY_MS", &cfg.MarketDelay},
		{"CROP_HEALTH_DELAY_MS", &cfg.CropHealthDelay},
		{"REPLY_DELAY_MS", &cfg.ReplyDelay},
	} {
		if err = overrideMillis(d.key, d.dst); err != nil {
			return cfg, err
		}
	}

	return cfg, nil
}

func overrideMillis(key string, dst *time.Duration) error {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	ms, err := strconv.Atoi(raw)
	if err != nil || ms < 0 {
		return fmt.Errorf("invalid %s: %s", key, raw)
	}
	*dst = time.Duration(ms) * time.Millisecond
	return nil
}

// ListenAddr returns the host:port string for the HTTP server.
func (c Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}
