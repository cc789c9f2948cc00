package main

import (
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/spf13/viper"

	"lg/fit-health-api/internal/healthmetrics"
)

// Config holds everything the API reads from the environment or config.yaml.
// Env vars win over the file; keys map 1:1 to upper-cased env names
// (db_url -> DB_URL).
type Config struct {
	Port               string  `mapstructure:"port"`
	DBURL              string  `mapstructure:"db_url"`
	Timezone           string  `mapstructure:"timezone"`
	DefaultCalorieGoal float64 `mapstructure:"default_calorie_goal"`

	HealthWeightNutrition float64 `mapstructure:"health_weight_nutrition"`
	HealthWeightTraining  float64 `mapstructure:"health_weight_training"`

	OpenAIAPIKey  string `mapstructure:"openai_api_key"`
	OpenAIBaseURL string `mapstructure:"openai_base_url"`
	OpenAIModel   string `mapstructure:"openai_model"`
}

// loadConfig builds a Config from defaults, an optional config file, and the
// environment. An empty path looks for ./config.yaml and carries on without it.
func loadConfig(path string) (*Config, error) {
	v := viper.New()
	setConfigDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		log.Printf("[loadConfig] using %s", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if !isFinite(cfg.DefaultCalorieGoal) || cfg.DefaultCalorieGoal <= 0 {
		return nil, fmt.Errorf("default_calorie_goal must be positive, got %v", cfg.DefaultCalorieGoal)
	}
	if !isFinite(cfg.HealthWeightNutrition) || !isFinite(cfg.HealthWeightTraining) ||
		cfg.HealthWeightNutrition < 0 || cfg.HealthWeightTraining < 0 {
		return nil, fmt.Errorf("health weights must be finite and not negative, got %v/%v",
			cfg.HealthWeightNutrition, cfg.HealthWeightTraining)
	}
	if _, err := cfg.location(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// setConfigDefaults registers every key so AutomaticEnv picks them up during
// Unmarshal, including the ones whose default is empty.
func setConfigDefaults(v *viper.Viper) {
	v.SetDefault("port", "3000")
	v.SetDefault("db_url", "")
	v.SetDefault("timezone", "Local")
	v.SetDefault("default_calorie_goal", 2000)

	v.SetDefault("health_weight_nutrition", healthmetrics.DefaultWeights.Nutrition)
	v.SetDefault("health_weight_training", healthmetrics.DefaultWeights.Training)

	v.SetDefault("openai_api_key", "")
	v.SetDefault("openai_base_url", "https://api.openai.com")
	v.SetDefault("openai_model", "gpt-4o-mini")
}

// weights returns the configured health-score split.
func (c *Config) weights() healthmetrics.Weights {
	return healthmetrics.Weights{
		Nutrition: c.HealthWeightNutrition,
		Training:  c.HealthWeightTraining,
	}
}

// location resolves the timezone that defines "today" for every user.
func (c *Config) location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
