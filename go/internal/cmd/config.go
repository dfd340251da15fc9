package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	gameapi "github.com/redgreen-game/redgreen/go/clients/game_api_client"
	"github.com/redgreen-game/redgreen/go/internal/history"
	"github.com/redgreen-game/redgreen/go/internal/round"
)

type Config struct {
	API struct {
		BaseURL    string `yaml:"base_url"`
		TimeoutSec int    `yaml:"timeout_sec"`
	} `yaml:"api"`

	Game struct {
		RoundDurationSec int     `yaml:"round_duration_sec"`
		MinBet           float64 `yaml:"min_bet"`
		IntermissionSec  int     `yaml:"intermission_sec"`
		HistorySize      int     `yaml:"history_size"`
	} `yaml:"game"`

	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`

	Events struct {
		Enabled       bool   `yaml:"enabled"`
		URL           string `yaml:"url"`
		Stream        string `yaml:"stream"`
		SubjectPrefix string `yaml:"subject_prefix"`
	} `yaml:"events"`
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// loadConfig reads the YAML config when present and layers env
// overrides on top of the built-in defaults.
func loadConfig(path string) (*Config, error) {
	var config Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if config.API.BaseURL == "" {
		config.API.BaseURL = getEnv("GAME_API_URL", gameapi.DefaultBaseURL)
	}
	if config.API.TimeoutSec == 0 {
		config.API.TimeoutSec = getEnvAsInt("GAME_API_TIMEOUT_SEC", 30)
	}
	if config.Game.RoundDurationSec == 0 {
		config.Game.RoundDurationSec = getEnvAsInt("ROUND_DURATION_SEC", 30)
	}
	if config.Game.MinBet == 0 {
		config.Game.MinBet = float64(getEnvAsInt("MIN_BET", 10))
	}
	if config.Game.IntermissionSec == 0 {
		config.Game.IntermissionSec = getEnvAsInt("INTERMISSION_SEC", 3)
	}
	if config.Game.HistorySize == 0 {
		config.Game.HistorySize = getEnvAsInt("HISTORY_SIZE", history.DefaultCap)
	}
	if config.Server.Port == "" {
		config.Server.Port = getEnv("PORT", "8080")
	}
	if config.Events.URL == "" {
		config.Events.URL = getEnv("NATS_URL", "nats://127.0.0.1:4222")
	}
	if os.Getenv("EVENTS_ENABLED") == "true" {
		config.Events.Enabled = true
	}

	return &config, nil
}

// roundConfig maps the loaded config onto controller constants.
func (c *Config) roundConfig() round.Config {
	return round.Config{
		RoundDurationSec: c.Game.RoundDurationSec,
		MinBet:           c.Game.MinBet,
		Intermission:     time.Duration(c.Game.IntermissionSec) * time.Second,
		HistorySize:      c.Game.HistorySize,
	}
}
