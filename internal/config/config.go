package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	CatalogDir            string
	CatalogDivision       string
	CatalogLocationType   string
	CatalogPrimaryOffence string
	CatalogNeighbourhood  string

	OutputDir string

	SimulateRows           int
	SimulateSeedOccurrence int64
	SimulateSeedReported   int64
	SimulateSeedChoice     int64
	SimulateDirtyRate      float64
	SimulateStartDate      string
	SimulateEndDate        string

	LogLevel  string
	LogFormat string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		CatalogDir:            getEnv("CATALOG_DIR", filepath.Join(cwd, "data", "catalogs")),
		CatalogDivision:       getEnv("CATALOG_DIVISION", "Division.json"),
		CatalogLocationType:   getEnv("CATALOG_LOCATION_TYPE", "Location_type.json"),
		CatalogPrimaryOffence: getEnv("CATALOG_PRIMARY_OFFENCE", "Primary_Offence.json"),
		CatalogNeighbourhood:  getEnv("CATALOG_NEIGHBOURHOOD", "Neighbourhood_158.json"),

		OutputDir: getEnv("OUTPUT_DIR", filepath.Join(cwd, "out")),

		SimulateRows:           getEnvInt("SIMULATE_ROWS", 20),
		SimulateSeedOccurrence: int64(getEnvInt("SIMULATE_SEED_OCCURRENCE", 853)),
		SimulateSeedReported:   int64(getEnvInt("SIMULATE_SEED_REPORTED", 123)),
		SimulateSeedChoice:     int64(getEnvInt("SIMULATE_SEED_CHOICE", 304)),
		SimulateDirtyRate:      getEnvFloat("SIMULATE_DIRTY_RATE", 0),
		SimulateStartDate:      getEnv("SIMULATE_START_DATE", "2018-01-01"),
		SimulateEndDate:        getEnv("SIMULATE_END_DATE", "2024-12-31"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}

	return cfg, nil
}

func (c Config) Require(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("missing required env var: %s", name)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}
