package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config struct to hold the configuration settings
type Config struct {
	Discord DiscordConfig `yaml:"discord"`
	Apex    ApexConfig    `yaml:"apex"`
	Service ServiceConfig `yaml:"service"`
	Setup   SetupConfig   `yaml:"setup"`
}

// DiscordConfig holds Discord configuration.
type DiscordConfig struct {
	Token        string `yaml:"token"`
	DiscordAppID string `yaml:"discord_app_id"`
	GuildID      string `yaml:"guild_id"`
}

// ApexConfig holds the Apex Legends API configuration for the status poller.
type ApexConfig struct {
	APIURL       string        `yaml:"api_url"`
	APIKey       string        `yaml:"api_key"`
	PollInterval time.Duration `yaml:"poll_interval"`
}

// ServiceConfig holds general service configuration
type ServiceConfig struct {
	Name       string `yaml:"name"`
	HealthAddr string `yaml:"health_addr"`
}

// SetupConfig holds the default names used by the auto setup mode.
type SetupConfig struct {
	AdminChannelName  string `yaml:"admin_channel_name"`
	PublicChannelName string `yaml:"public_channel_name"`
}

// LoadConfig loads the configuration from a YAML file.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		fmt.Printf("Failed to read config file: %v\n", err)
		fmt.Println("Trying to load configuration from environment variables...")
		cfg := &Config{}
		return loadConfigFromEnv(cfg)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	// After unmarshaling, load from environment if values are missing
	if _, err := loadConfigFromEnv(&cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// loadConfigFromEnv loads the configuration from environment variables.
func loadConfigFromEnv(cfg *Config) (*Config, error) {
	// Only load from environment variables if the value is not already set.
	if cfg.Discord.Token == "" {
		cfg.Discord.Token = os.Getenv("DISCORD_TOKEN")
		if cfg.Discord.Token == "" {
			return nil, fmt.Errorf("DISCORD_TOKEN environment variable not set")
		}
	}
	if cfg.Discord.DiscordAppID == "" {
		cfg.Discord.DiscordAppID = os.Getenv("DISCORD_APP_ID")
	}
	if cfg.Discord.GuildID == "" {
		cfg.Discord.GuildID = os.Getenv("DISCORD_GUILD_ID")
	}
	if cfg.Service.Name == "" {
		cfg.Service.Name = os.Getenv("SERVICE_NAME")
	}
	if cfg.Apex.APIURL == "" {
		cfg.Apex.APIURL = os.Getenv("APEX_API_URL")
	}
	if cfg.Apex.APIKey == "" {
		cfg.Apex.APIKey = os.Getenv("APEX_API_KEY")
	}
	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Service.Name == "" {
		cfg.Service.Name = "apex-range"
	}
	if cfg.Service.HealthAddr == "" {
		cfg.Service.HealthAddr = ":8080"
	}
	if cfg.Apex.APIURL == "" {
		cfg.Apex.APIURL = "https://api.mozambiquehe.re/servers"
	}
	if cfg.Apex.PollInterval <= 0 {
		cfg.Apex.PollInterval = 5 * time.Minute
	}
	if cfg.Setup.AdminChannelName == "" {
		cfg.Setup.AdminChannelName = "apex-admin"
	}
	if cfg.Setup.PublicChannelName == "" {
		cfg.Setup.PublicChannelName = "apex-rangos"
	}
}
