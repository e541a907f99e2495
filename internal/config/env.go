package config

import (
	"os"
	"strconv"
)

// FromEnv loads balance configuration from environment variables
// Falls back to defaults if variables are not set
func FromEnv() Balance {
	cfg := Default()

	if val := getEnvInt("GOBBO_MAX_COINS"); val > 0 {
		cfg.MaxCoins = val
	}
	if val, ok := lookupEnvInt("GOBBO_STARTING_COINS"); ok && val >= 0 {
		cfg.StartingCoins = val
	}
	if val := getEnvInt("GOBBO_BASE_STALL_SLOTS"); val > 0 {
		cfg.BaseStallSlots = val
	}
	if val := getEnvInt("GOBBO_MAX_STALL_SLOTS"); val > 0 {
		cfg.MaxStallSlots = val
	}
	if val := getEnvInt("GOBBO_SPAWN_INTERVAL_SEC"); val > 0 {
		cfg.SpawnIntervalSec = val
	}
	if val := getEnvInt("GOBBO_MAX_CUSTOMERS"); val > 0 {
		cfg.MaxCustomers = val
	}
	if val := getEnvInt("GOBBO_AUTOSAVE_INTERVAL_SEC"); val > 0 {
		cfg.AutoSaveIntervalSec = val
	}

	// Support preset modes
	if mode := os.Getenv("GOBBO_DIFFICULTY"); mode != "" {
		switch mode {
		case "casual":
			return Casual()
		case "hard":
			return Hard()
		}
	}

	return cfg
}

func getEnvInt(key string) int {
	num, _ := lookupEnvInt(key)
	return num
}

func lookupEnvInt(key string) (int, bool) {
	val := os.Getenv(key)
	if val == "" {
		return 0, false
	}
	num, err := strconv.Atoi(val)
	if err != nil {
		return 0, false
	}
	return num, true
}
