package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/louisbranch/werewolf/internal/game/domain"
)

// LoadVariantsFile reads a rule-variant preset from a YAML file. Fields
// absent from the file keep their default values, so presets only need
// to name the rules they change.
func LoadVariantsFile(path string) (domain.RuleVariants, error) {
	variants := domain.DefaultRuleVariants()

	data, err := os.ReadFile(path)
	if err != nil {
		return domain.RuleVariants{}, fmt.Errorf("read variants file: %w", err)
	}
	if err := yaml.Unmarshal(data, &variants); err != nil {
		return domain.RuleVariants{}, fmt.Errorf("parse variants file: %w", err)
	}
	if err := variants.Validate(); err != nil {
		return domain.RuleVariants{}, err
	}
	return variants, nil
}

// LoadGameConfigFile reads a complete game configuration from a YAML
// file, applying defaults for anything unset.
func LoadGameConfigFile(path string) (domain.GameConfig, error) {
	cfg := domain.DefaultGameConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return domain.GameConfig{}, fmt.Errorf("read game config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.GameConfig{}, fmt.Errorf("parse game config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return domain.GameConfig{}, err
	}
	return cfg, nil
}
