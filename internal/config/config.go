package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App           AppConfig
	Log           LogConfig
	FranceTravail FranceTravailConfig
	Adzuna        AdzunaConfig
	Cache         CacheConfig
	Refresh       RefreshConfig
	Profile       ProfileConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
	UseMockData bool
	CORSOrigins []string
}

type LogConfig struct {
	JSON  bool
	Debug bool
}

type FranceTravailConfig struct {
	ClientID       string
	ClientSecret   string
	Region         string
	Domain         string
	PublishedSince string
}

func (c FranceTravailConfig) Enabled() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

type AdzunaConfig struct {
	AppID   string
	AppKey  string
	Country string
	Where   string
}

func (c AdzunaConfig) Enabled() bool {
	return c.AppID != "" && c.AppKey != ""
}

type CacheConfig struct {
	TTL           time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

type RefreshConfig struct {
	// Interval of the background warm-up. Zero disables it.
	Interval time.Duration
}

type ProfileConfig struct {
	File string
}

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidEnv         = errors.New("invalid environment variables")
)

var defaults = map[string]any{
	"APP_NAME":                       "jobmatch",
	"APP_ENV":                        "development",
	"HTTP_PORT":                      "3001",
	"LOG_JSON":                       false,
	"LOG_DEBUG":                      false,
	"USE_MOCK_DATA":                  false,
	"FRANCE_TRAVAIL_REGION":          "11",
	"FRANCE_TRAVAIL_DOMAIN":          "M",
	"FRANCE_TRAVAIL_PUBLISHED_SINCE": "14",
	"ADZUNA_COUNTRY":                 "fr",
	"ADZUNA_WHERE":                   "Île-de-France",
	"CACHE_TTL":                      "10m",
	"REDIS_DB":                       0,
	"REFRESH_INTERVAL":               "0",
	"CORS_ORIGINS":                   "*",
}

var allowedPublishedSince = map[string]struct{}{"1": {}, "3": {}, "7": {}, "14": {}, "31": {}}

// Load reads configuration from the environment. Callers that want .env
// support load it into the process environment first.
func Load() (Config, error) {
	return LoadFrom(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	for k, d := range defaults {
		v.SetDefault(k, d)
	}
	return v
}

func LoadFrom(v *viper.Viper) (Config, error) {
	cfg := Config{}

	var missing, invalid []string
	str := func(key string) string {
		return strings.TrimSpace(v.GetString(key))
	}
	pair := func(a, b string) (string, string) {
		va, vb := str(a), str(b)
		if va != "" && vb == "" {
			missing = append(missing, b)
		}
		if vb != "" && va == "" {
			missing = append(missing, a)
		}
		return va, vb
	}
	dur := func(key string) time.Duration {
		d, err := parseDuration(str(key))
		if err != nil {
			invalid = append(invalid, key)
		}
		return d
	}

	cfg.App = AppConfig{
		AppName:     str("APP_NAME"),
		Environment: str("APP_ENV"),
		HTTPPort:    str("HTTP_PORT"),
		UseMockData: v.GetBool("USE_MOCK_DATA"),
		CORSOrigins: splitList(str("CORS_ORIGINS")),
	}
	if cfg.App.HTTPPort == "" {
		missing = append(missing, "HTTP_PORT")
	}

	cfg.Log = LogConfig{
		JSON:  v.GetBool("LOG_JSON"),
		Debug: v.GetBool("LOG_DEBUG"),
	}

	ftID, ftSecret := pair("POLE_EMPLOI_CLIENT_ID", "POLE_EMPLOI_CLIENT_SECRET")
	cfg.FranceTravail = FranceTravailConfig{
		ClientID:       ftID,
		ClientSecret:   ftSecret,
		Region:         str("FRANCE_TRAVAIL_REGION"),
		Domain:         str("FRANCE_TRAVAIL_DOMAIN"),
		PublishedSince: str("FRANCE_TRAVAIL_PUBLISHED_SINCE"),
	}
	if _, ok := allowedPublishedSince[cfg.FranceTravail.PublishedSince]; !ok {
		invalid = append(invalid, "FRANCE_TRAVAIL_PUBLISHED_SINCE")
	}

	azID, azKey := pair("ADZUNA_APP_ID", "ADZUNA_APP_KEY")
	cfg.Adzuna = AdzunaConfig{
		AppID:   azID,
		AppKey:  azKey,
		Country: strings.ToLower(str("ADZUNA_COUNTRY")),
		Where:   str("ADZUNA_WHERE"),
	}

	cfg.Cache = CacheConfig{
		TTL:           dur("CACHE_TTL"),
		RedisAddr:     str("REDIS_ADDR"),
		RedisPassword: str("REDIS_PASSWORD"),
		RedisDB:       v.GetInt("REDIS_DB"),
	}
	if cfg.Cache.TTL <= 0 {
		invalid = append(invalid, "CACHE_TTL")
	}

	cfg.Refresh = RefreshConfig{Interval: dur("REFRESH_INTERVAL")}
	cfg.Profile = ProfileConfig{File: str("PROFILE_FILE")}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(invalid, ", "))
	}

	return cfg, nil
}

// parseDuration accepts Go durations ("10m") or a bare number of seconds.
func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("negative duration %q", s)
		}
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %q", s)
	}
	return d, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
