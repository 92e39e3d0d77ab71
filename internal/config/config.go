package config

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Interface      string
	Addr           string
	Channels       []int
	RosterPath     string
	DBPath         string
	MockMode       bool
	Debug          bool
	LiveTimestamps bool
	APITokenHash   string
	BeaconInterval time.Duration
	FramePacing    time.Duration
}

// Load parses command line flags and environment variables to populate Config.
// Flags take precedence over environment variables.
func Load() *Config {
	cfg := &Config{}

	// Defaults and Environment Variables
	cfg.Interface = getEnv("GHOSTFIELD_INTERFACE", "wlan0")
	cfg.Addr = getEnv("GHOSTFIELD_ADDR", ":8080")
	channelStr := getEnv("GHOSTFIELD_CHANNELS", "")
	cfg.RosterPath = getEnv("GHOSTFIELD_ROSTER", "")
	cfg.DBPath = getEnv("GHOSTFIELD_DB", getDefaultDBPath())
	cfg.MockMode = getEnvBool("GHOSTFIELD_MOCK", false)
	cfg.APITokenHash = getEnv("GHOSTFIELD_TOKEN_HASH", "")
	intervalUS := getEnvInt("GHOSTFIELD_INTERVAL_US", 0)
	pacingMS := getEnvInt("GHOSTFIELD_PACING_MS", 0)

	// Command Line Flags (Override Env)
	flag.StringVar(&cfg.Interface, "i", cfg.Interface, "Network interface in monitor mode")
	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP server address")
	flag.StringVar(&channelStr, "channels", channelStr, "Channel plan (comma separated, e.g. 1,6,11)")
	flag.StringVar(&cfg.RosterPath, "roster", cfg.RosterPath, "Path to roster JSON file (empty for built-in roster)")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to SQLite burst journal (empty to disable)")
	flag.StringVar(&cfg.APITokenHash, "token-hash", cfg.APITokenHash, "bcrypt hash of the control API token (empty to disable auth)")
	flag.BoolVar(&cfg.MockMode, "mock", cfg.MockMode, "Run without a radio (simulation)")
	flag.BoolVar(&cfg.Debug, "debug", false, "Enable verbose debug logging")
	flag.BoolVar(&cfg.LiveTimestamps, "live-timestamps", false, "Advance beacon timestamps with the wall clock")
	flag.IntVar(&intervalUS, "interval-us", intervalUS, "Beacon interval override in microseconds (0 for default)")
	flag.IntVar(&pacingMS, "pacing-ms", pacingMS, "Inter-frame pacing override in milliseconds (0 for default)")

	flag.Parse()

	cfg.Channels = parseChannels(channelStr)
	cfg.BeaconInterval = time.Duration(intervalUS) * time.Microsecond
	cfg.FramePacing = time.Duration(pacingMS) * time.Millisecond

	return cfg
}

func parseChannels(s string) []int {
	var channels []int
	for _, p := range strings.Split(s, ",") {
		trimmed := strings.TrimSpace(p)
		if trimmed == "" {
			continue
		}
		ch, err := strconv.Atoi(trimmed)
		if err != nil {
			log.Printf("Warning: ignoring invalid channel %q", trimmed)
			continue
		}
		channels = append(channels, ch)
	}
	return channels
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

// getDefaultDBPath returns the default database path in user's home directory.
// Creates the directory if it doesn't exist.
func getDefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Printf("Warning: Could not get user home directory, using current dir: %v", err)
		return "ghostfield.db"
	}

	dir := filepath.Join(home, ".ghostfield")
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Printf("Warning: Could not create .ghostfield directory, using current dir: %v", err)
		return "ghostfield.db"
	}

	return filepath.Join(dir, "ghostfield.db")
}
