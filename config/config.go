package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Scraper ScraperConfig
	Sites   SitesConfig
	Output  OutputConfig
	Demo    DemoConfig
	Log     LogConfig
}

// ScraperConfig controls the HTTP fetch layer.
type ScraperConfig struct {
	// RequestTimeout is the per-request deadline.
	RequestTimeout time.Duration // default: 30s

	// MaxRetries is the number of retry attempts after a failed request.
	MaxRetries int // default: 3

	// FetchDelay is the fixed pause enforced between consecutive requests.
	FetchDelay time.Duration // default: 2s

	// MaxPages caps how many listing pages are walked per source.
	MaxPages int // default: 40

	// MaxReviewsPerSource caps how many reviews one source may contribute.
	MaxReviewsPerSource int // default: 1000
}

// SiteConfig holds the URLs for one review platform.
type SiteConfig struct {
	// BaseURL is the platform origin, used to resolve relative product links.
	BaseURL string

	// SearchURL is the search-page URL template; %s receives the
	// query-escaped company name.
	SearchURL string
}

// SitesConfig holds per-platform URL configuration.
type SitesConfig struct {
	G2             SiteConfig
	Capterra       SiteConfig
	SoftwareAdvice SiteConfig
}

// OutputConfig controls where result files land.
type OutputConfig struct {
	// Dir is the directory for default-named output files.
	Dir string // default: "output"
}

// DemoConfig controls the synthetic-data path.
type DemoConfig struct {
	// Count is the number of reviews generated per selected source.
	Count int // default: 5
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "text"
	File   string // appended to alongside stderr; default: "review_scraper.log"
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Scraper: ScraperConfig{
			RequestTimeout:      envDurationOr("REVIEWSCOUT_REQUEST_TIMEOUT", 30*time.Second),
			MaxRetries:          envIntOr("REVIEWSCOUT_MAX_RETRIES", 3),
			FetchDelay:          envDurationOr("REVIEWSCOUT_FETCH_DELAY", 2*time.Second),
			MaxPages:            envIntOr("REVIEWSCOUT_MAX_PAGES", 40),
			MaxReviewsPerSource: envIntOr("REVIEWSCOUT_MAX_REVIEWS_PER_SOURCE", 1000),
		},
		Sites: SitesConfig{
			G2: SiteConfig{
				BaseURL:   envOr("REVIEWSCOUT_G2_BASE_URL", "https://www.g2.com"),
				SearchURL: envOr("REVIEWSCOUT_G2_SEARCH_URL", "https://www.g2.com/search?query=%s"),
			},
			Capterra: SiteConfig{
				BaseURL:   envOr("REVIEWSCOUT_CAPTERRA_BASE_URL", "https://www.capterra.com"),
				SearchURL: envOr("REVIEWSCOUT_CAPTERRA_SEARCH_URL", "https://www.capterra.com/search/?search=%s"),
			},
			SoftwareAdvice: SiteConfig{
				BaseURL:   envOr("REVIEWSCOUT_SOFTWAREADVICE_BASE_URL", "https://www.softwareadvice.com"),
				SearchURL: envOr("REVIEWSCOUT_SOFTWAREADVICE_SEARCH_URL", "https://www.softwareadvice.com/search/?q=%s"),
			},
		},
		Output: OutputConfig{
			Dir: envOr("REVIEWSCOUT_OUTPUT_DIR", "output"),
		},
		Demo: DemoConfig{
			Count: envIntOr("REVIEWSCOUT_DEMO_COUNT", 5),
		},
		Log: LogConfig{
			Level:  envOr("REVIEWSCOUT_LOG_LEVEL", "info"),
			Format: envOr("REVIEWSCOUT_LOG_FORMAT", "text"),
			File:   envOr("REVIEWSCOUT_LOG_FILE", "review_scraper.log"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
