package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"upbudget/internal/budget"
)

type Config struct {
	// HTTP Server
	Port string

	// Upstream bank API
	UpToken      string
	UpBaseURL    string
	PageSize     int
	FetchTimeout time.Duration

	// Transaction stream cache
	CacheTTL        time.Duration
	CacheMaxEntries int

	// Budget allocations override, "Name=Amount" pairs separated by commas
	// (e.g. "Groceries=600,Utilities=250"). Empty means the built-in
	// catalog.
	AllocationsSpec string
}

func Load() *Config {
	return &Config{
		Port:         getEnv("PORT", "8080"),
		UpToken:      getEnv("UP_API_TOKEN", ""),
		UpBaseURL:    getEnv("UP_API_BASE_URL", "https://api.up.com.au/api/v1"),
		PageSize:     getEnvInt("UP_PAGE_SIZE", 100),
		FetchTimeout: getEnvDuration("UP_FETCH_TIMEOUT", 10*time.Second),

		CacheTTL:        getEnvDuration("CACHE_TTL", time.Minute),
		CacheMaxEntries: getEnvInt("CACHE_MAX_ENTRIES", 64),

		AllocationsSpec: getEnv("BUDGET_ALLOCATIONS", ""),
	}
}

// Validate validates the configuration and returns an error if invalid.
// A missing bearer token is a startup failure: nothing can be served
// without it.
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if strings.TrimSpace(c.UpToken) == "" {
		errors = append(errors, "UP_API_TOKEN is required")
	}

	if parsed, err := url.Parse(c.UpBaseURL); err != nil {
		errors = append(errors, fmt.Sprintf("invalid base URL '%s': %v", c.UpBaseURL, err))
	} else if parsed.Scheme != "http" && parsed.Scheme != "https" {
		errors = append(errors, fmt.Sprintf("invalid base URL scheme '%s': must be 'http' or 'https'", parsed.Scheme))
	}

	if c.PageSize < 1 || c.PageSize > 100 {
		errors = append(errors, fmt.Sprintf("invalid page size %d: must be between 1 and 100", c.PageSize))
	}

	if c.FetchTimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid fetch timeout %v: must be at least 1 second", c.FetchTimeout))
	}

	if c.CacheTTL < 0 {
		errors = append(errors, fmt.Sprintf("invalid cache TTL %v: must not be negative", c.CacheTTL))
	}
	if c.CacheMaxEntries < 1 {
		errors = append(errors, fmt.Sprintf("invalid cache max entries %d: must be at least 1", c.CacheMaxEntries))
	}

	if _, err := c.Allocations(); err != nil {
		errors = append(errors, err.Error())
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// Allocations returns the budget catalog allocations: the built-in
// defaults with any "Name=Amount" overrides from AllocationsSpec applied.
// Overrides naming an unknown category are rejected rather than silently
// adding buckets the categorizer can never fill.
func (c *Config) Allocations() ([]budget.Allocation, error) {
	allocations := budget.DefaultAllocations()
	if strings.TrimSpace(c.AllocationsSpec) == "" {
		return allocations, nil
	}

	index := make(map[string]int, len(allocations))
	for i, a := range allocations {
		index[a.Name] = i
	}

	for _, pair := range strings.Split(c.AllocationsSpec, ",") {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid allocation '%s': expected Name=Amount", pair)
		}
		name = strings.TrimSpace(name)
		i, known := index[name]
		if !known {
			return nil, fmt.Errorf("invalid allocation '%s': unknown category", name)
		}
		amount, err := decimal.NewFromString(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("invalid allocation amount for '%s': %v", name, err)
		}
		if amount.IsNegative() {
			return nil, fmt.Errorf("invalid allocation amount for '%s': must not be negative", name)
		}
		allocations[i].Amount = amount
	}

	return allocations, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
