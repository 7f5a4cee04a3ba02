package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// CookieEnvVar is the environment variable holding the raw Instagram cookie string
const CookieEnvVar = "INSTAGRAM_COOKIE"

// DefaultPostCount is the number of feed items turned into image URLs per fetch
const DefaultPostCount = 12

// Config holds all configuration options for igprofile
type Config struct {
	// Instagram endpoints, header constants and the session cookie
	Instagram InstagramConfig `yaml:"instagram" json:"instagram"`

	// Fetch behaviour
	Fetch FetchConfig `yaml:"fetch" json:"fetch"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// InstagramConfig holds everything needed to talk to the private web API
type InstagramConfig struct {
	Cookie         string `yaml:"cookie,omitempty" json:"cookie,omitempty"`
	ProfileInfoURL string `yaml:"profile_info_url" json:"profile_info_url"`
	FeedURL        string `yaml:"feed_url" json:"feed_url"`
	SiteURL        string `yaml:"site_url" json:"site_url"`
	UserAgent      string `yaml:"user_agent" json:"user_agent"`
	Accept         string `yaml:"accept" json:"accept"`
	AcceptLanguage string `yaml:"accept_language" json:"accept_language"`
	AppID          string `yaml:"app_id" json:"app_id"`
	RequestedWith  string `yaml:"requested_with" json:"requested_with"`
}

// FetchConfig holds per-fetch settings
type FetchConfig struct {
	PostCount int `yaml:"post_count" json:"post_count"`
	// Timeout bounds a single HTTP request; zero leaves cancellation to the caller's context
	Timeout time.Duration `yaml:"timeout" json:"timeout"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level   string `yaml:"level" json:"level"`
	File    string `yaml:"file" json:"file"`
	NoColor bool   `yaml:"no_color" json:"no_color"`
}

// DefaultInstagramConfig returns the endpoints and header constants used by the web client
func DefaultInstagramConfig() InstagramConfig {
	return InstagramConfig{
		ProfileInfoURL: "https://i.instagram.com/api/v1/users/web_profile_info/",
		FeedURL:        "https://i.instagram.com/api/v1/feed/user/",
		SiteURL:        "https://www.instagram.com",
		UserAgent:      "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		Accept:         "*/*",
		AcceptLanguage: "en-US,en;q=0.9",
		AppID:          "936619743392459",
		RequestedWith:  "XMLHttpRequest",
	}
}

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Instagram: DefaultInstagramConfig(),
		Fetch: FetchConfig{
			PostCount: DefaultPostCount,
			Timeout:   0,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
	}
}

// LoadFromEnv loads configuration from environment variables
func (c *Config) LoadFromEnv() error {
	if cookie := os.Getenv(CookieEnvVar); cookie != "" {
		c.Instagram.Cookie = cookie
	}
	if userAgent := os.Getenv("IGPROFILE_USER_AGENT"); userAgent != "" {
		c.Instagram.UserAgent = userAgent
	}
	if profileURL := os.Getenv("IGPROFILE_PROFILE_INFO_URL"); profileURL != "" {
		c.Instagram.ProfileInfoURL = profileURL
	}
	if feedURL := os.Getenv("IGPROFILE_FEED_URL"); feedURL != "" {
		c.Instagram.FeedURL = feedURL
	}

	if count := os.Getenv("IGPROFILE_POST_COUNT"); count != "" {
		val, err := strconv.Atoi(count)
		if err != nil {
			return fmt.Errorf("invalid IGPROFILE_POST_COUNT %q: %w", count, err)
		}
		c.Fetch.PostCount = val
	}
	if timeout := os.Getenv("IGPROFILE_TIMEOUT"); timeout != "" {
		val, err := time.ParseDuration(timeout)
		if err != nil {
			return fmt.Errorf("invalid IGPROFILE_TIMEOUT %q: %w", timeout, err)
		}
		c.Fetch.Timeout = val
	}

	if logLevel := os.Getenv("IGPROFILE_LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}
	if logFile := os.Getenv("IGPROFILE_LOG_FILE"); logFile != "" {
		c.Logging.File = logFile
	}

	return nil
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	// If path is empty, try default locations
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil // No config file found, not an error
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile searches for config file in standard locations
func (c *Config) findConfigFile() string {
	home := os.Getenv("HOME")
	locations := []string{
		"igprofile.yaml",
		"igprofile.yml",
		".igprofile.yaml",
		".igprofile.yml",
		filepath.Join(home, ".config", "igprofile", "config.yaml"),
		filepath.Join(home, ".igprofile.yaml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks if the configuration is valid.
// The cookie is deliberately not checked here: it is validated per fetch.
func (c *Config) Validate() error {
	var errs []error

	for name, raw := range map[string]string{
		"profile info URL": c.Instagram.ProfileInfoURL,
		"feed URL":         c.Instagram.FeedURL,
		"site URL":         c.Instagram.SiteURL,
	} {
		if raw == "" {
			errs = append(errs, fmt.Errorf("%s is required", name))
			continue
		}
		if u, err := url.Parse(raw); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("%s must be an absolute URL: %q", name, raw))
		}
	}
	if c.Instagram.UserAgent == "" {
		errs = append(errs, errors.New("user agent is required"))
	}
	if c.Instagram.AppID == "" {
		errs = append(errs, errors.New("app ID is required"))
	}

	if c.Fetch.PostCount < 0 {
		errs = append(errs, errors.New("post count cannot be negative"))
	}
	if c.Fetch.Timeout < 0 {
		errs = append(errs, errors.New("timeout cannot be negative"))
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true, "disabled": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, errors.New("invalid log level"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Save saves the configuration to a file. The cookie is never written.
func (c *Config) Save(path string) error {
	out := *c
	out.Instagram.Cookie = ""

	data, err := yaml.Marshal(&out)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeCommandLineFlags merges command line flags into the configuration
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if cookie, ok := flags["cookie"].(string); ok && cookie != "" {
		c.Instagram.Cookie = cookie
	}
	if count, ok := flags["post-count"].(int); ok && count > 0 {
		c.Fetch.PostCount = count
	}
	if timeout, ok := flags["timeout"].(time.Duration); ok && timeout > 0 {
		c.Fetch.Timeout = timeout
	}
	if logLevel, ok := flags["log-level"].(string); ok && logLevel != "" {
		c.Logging.Level = logLevel
	}
	if logFile, ok := flags["log-file"].(string); ok && logFile != "" {
		c.Logging.File = logFile
	}
	if noColor, ok := flags["no-color"].(bool); ok && noColor {
		c.Logging.NoColor = true
	}
}

// Load loads configuration from all sources with proper precedence
// Precedence order: Command line flags > Environment variables > .env file > Config file > Defaults
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	// Missing .env files are fine
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".igprofile.env"))

	config := DefaultConfig()

	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	config.MergeCommandLineFlags(flags)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}
