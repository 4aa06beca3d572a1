package config

import (
	"fmt"
	"strings"

	"jobmatch/internal/domain/profile"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// LoadProfile reads the candidate profile from a YAML or JSON file. An empty
// path yields the built-in profile.
func LoadProfile(path string) (profile.Profile, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return profile.Default(), nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return profile.Profile{}, fmt.Errorf("read profile %s: %w", path, err)
	}

	var p profile.Profile
	if err := v.Unmarshal(&p); err != nil {
		return profile.Profile{}, fmt.Errorf("decode profile %s: %w", path, err)
	}

	for i := range p.Skills {
		p.Skills[i] = strings.TrimSpace(p.Skills[i])
	}
	if err := validator.New().Struct(p); err != nil {
		return profile.Profile{}, fmt.Errorf("invalid profile %s: %w", path, err)
	}
	return p, nil
}
