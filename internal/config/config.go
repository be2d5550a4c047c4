package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	ServerAddress string       `json:"serverAddress"`
	DatabasePath  string       `json:"databasePath"`
	DatabaseURL   string       `json:"databaseUrl"`
	MediaStorage  MediaStorage `json:"mediaStorage"`
	Security      Security     `json:"security"`
	Dashboard     Dashboard    `json:"dashboard"`
}

// UsePostgres returns true if PostgreSQL should be used
func (c *Config) UsePostgres() bool {
	return c.DatabaseURL != ""
}

// MediaStorage configuration
type MediaStorage struct {
	BasePath          string   `json:"basePath"`
	PublicBaseURL     string   `json:"publicBaseUrl"`
	MaxFileSizeMB     int64    `json:"maxFileSizeMB"`
	AllowedExtensions []string `json:"allowedExtensions"`
}

// Security configuration
type Security struct {
	AdminPasscode   string `json:"adminPasscode"`
	SessionTTLHours int    `json:"sessionTtlHours"`
}

// Dashboard configuration for the admin content manager
type Dashboard struct {
	PageSize               int `json:"pageSize"`
	NameCheckDebounceMs    int `json:"nameCheckDebounceMs"`
	MutationTimeoutSeconds int `json:"mutationTimeoutSeconds"`
	WorkspaceMaxIdleHours  int `json:"workspaceMaxIdleHours"`
}

// Default configuration
func defaultConfig() *Config {
	return &Config{
		ServerAddress: ":5000",
		DatabasePath:  "crownsite.db",
		MediaStorage: MediaStorage{
			BasePath:      "./media",
			PublicBaseURL: "/media",
			MaxFileSizeMB: 25,
			AllowedExtensions: []string{
				".jpg", ".jpeg", ".png", ".gif", ".webp", ".mp4", ".webm",
			},
		},
		Security: Security{
			AdminPasscode:   "CHANGE_THIS_PASSCODE_BEFORE_DEPLOYING",
			SessionTTLHours: 24,
		},
		Dashboard: Dashboard{
			PageSize:               12,
			NameCheckDebounceMs:    800,
			MutationTimeoutSeconds: 10,
			WorkspaceMaxIdleHours:  2,
		},
	}
}

// Load loads configuration from file or environment
func Load() (*Config, error) {
	cfg := defaultConfig()

	// Try to load from config file
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.json"
	}

	if data, err := os.ReadFile(configPath); err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	// Override from environment variables
	if addr := os.Getenv("SERVER_ADDRESS"); addr != "" {
		cfg.ServerAddress = addr
	}
	if dbPath := os.Getenv("DATABASE_PATH"); dbPath != "" {
		cfg.DatabasePath = dbPath
	}
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		cfg.DatabaseURL = dbURL
	}
	if basePath := os.Getenv("MEDIA_STORAGE_PATH"); basePath != "" {
		cfg.MediaStorage.BasePath = basePath
	}
	if baseURL := os.Getenv("MEDIA_PUBLIC_BASE_URL"); baseURL != "" {
		cfg.MediaStorage.PublicBaseURL = baseURL
	}
	if passcode := os.Getenv("ADMIN_PASSCODE"); passcode != "" {
		cfg.Security.AdminPasscode = passcode
	}
	if ttl := os.Getenv("SESSION_TTL_HOURS"); ttl != "" {
		if hours, err := strconv.Atoi(ttl); err == nil && hours > 0 {
			cfg.Security.SessionTTLHours = hours
		}
	}

	// Dashboard configuration
	if size := os.Getenv("DASHBOARD_PAGE_SIZE"); size != "" {
		if n, err := strconv.Atoi(size); err == nil && n > 0 {
			cfg.Dashboard.PageSize = n
		}
	}
	if debounce := os.Getenv("NAME_CHECK_DEBOUNCE_MS"); debounce != "" {
		if ms, err := strconv.Atoi(debounce); err == nil && ms > 0 {
			cfg.Dashboard.NameCheckDebounceMs = ms
		}
	}
	if timeout := os.Getenv("MUTATION_TIMEOUT_SECONDS"); timeout != "" {
		if secs, err := strconv.Atoi(timeout); err == nil && secs > 0 {
			cfg.Dashboard.MutationTimeoutSeconds = secs
		}
	}

	// Ensure media storage directory exists
	if err := os.MkdirAll(cfg.MediaStorage.BasePath, 0755); err != nil {
		return nil, err
	}

	// Make base path absolute
	absPath, err := filepath.Abs(cfg.MediaStorage.BasePath)
	if err != nil {
		return nil, err
	}
	cfg.MediaStorage.BasePath = absPath

	return cfg, nil
}
