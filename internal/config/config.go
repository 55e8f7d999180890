package config

import (
	"time"

	pkgconfig "github.com/weiawesome/workshop-explorer/pkg/config"
)

type Config struct {
	Server ServerConfig
	Steam  SteamConfig
	Log    LogConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type SteamConfig struct {
	APIKey           string        `mapstructure:"api_key"`
	AppID            string        `mapstructure:"app_id"`
	APIBaseURL       string        `mapstructure:"api_base_url"`
	CommunityBaseURL string        `mapstructure:"community_base_url"`
	Timeout          time.Duration `mapstructure:"timeout"`
	UserAgent        string        `mapstructure:"user_agent"`
}

type LogConfig struct {
	Level string
}

// DefaultUserAgent is sent to the community site, which serves a reduced
// page to clients that do not look like a browser.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"

// Load reads .env files, the optional config file and the environment.
// A missing API key is not an error here; requests fail with a
// configuration error instead so the service can still report status.
func Load() (*Config, error) {
	if _, err := LoadDotEnv(); err != nil {
		return nil, err
	}

	v, err := pkgconfig.Load("./config", "config")
	if err != nil {
		return nil, err
	}

	// Set defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 9999)
	v.SetDefault("steam.api_key", "")
	v.SetDefault("steam.app_id", "221100")
	v.SetDefault("steam.api_base_url", "https://api.steampowered.com")
	v.SetDefault("steam.community_base_url", "https://steamcommunity.com")
	v.SetDefault("steam.timeout", "10s")
	v.SetDefault("steam.user_agent", DefaultUserAgent)
	v.SetDefault("log.level", "info")

	// Bind environment variables
	binds := map[string][]string{
		"server.host":              {"SERVER_HOST"},
		"server.port":              {"PORT"},
		"steam.api_key":            {"STEAM_API_KEY", "VITE_STEAM_API_KEY"},
		"steam.app_id":             {"STEAM_APP_ID"},
		"steam.api_base_url":       {"STEAM_API_BASE_URL"},
		"steam.community_base_url": {"STEAM_COMMUNITY_BASE_URL"},
		"steam.timeout":            {"STEAM_TIMEOUT"},
		"steam.user_agent":         {"STEAM_USER_AGENT"},
		"log.level":                {"LOG_LEVEL"},
	}
	for key, envs := range binds {
		if err := pkgconfig.BindEnvs(v, key, envs...); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
