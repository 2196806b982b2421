package boardconfig

import (
	"fmt"
	"strings"
)

// ValidationError 검증 실패 (프로그램 중단)
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks all required constraints
func Validate(cfg *Config) error {
	// === Schema ===
	if strings.TrimSpace(cfg.Schema.IdentityColumn) == "" {
		return ValidationError{"schema.identity_column", "required"}
	}
	if strings.TrimSpace(cfg.Schema.ObservationPrefix) == "" {
		return ValidationError{"schema.observation_prefix", "required"}
	}
	if strings.HasPrefix(cfg.Schema.IdentityColumn, cfg.Schema.ObservationPrefix) {
		return ValidationError{"schema.identity_column", "must not use the observation prefix"}
	}

	// === Categories ===
	if len(cfg.Categories) == 0 {
		return ValidationError{"categories", "at least one category is required"}
	}
	seen := make(map[string]bool)
	for _, cat := range cfg.Categories {
		if cat == "" {
			return ValidationError{"categories", "empty category name"}
		}
		if cat == cfg.Schema.IdentityColumn {
			return ValidationError{"categories", "identity column cannot be a category"}
		}
		if seen[cat] {
			return ValidationError{"categories", fmt.Sprintf("duplicate category %q", cat)}
		}
		seen[cat] = true
	}

	// === Units ===
	if len(cfg.Units) == 0 {
		return ValidationError{"units", "at least one unit is required"}
	}
	names := make(map[string]bool)
	for i, u := range cfg.Units {
		field := fmt.Sprintf("units[%d]", i)
		if u.Name == "" {
			return ValidationError{field + ".name", "required"}
		}
		if names[u.Name] {
			return ValidationError{field + ".name", fmt.Sprintf("duplicate unit %q", u.Name)}
		}
		names[u.Name] = true
		if u.Factor <= 0 {
			return ValidationError{field + ".factor", "must be > 0"}
		}
	}

	// === Thresholds ===
	if cfg.Thresholds.Ranking < 0 {
		return ValidationError{"thresholds.ranking", "must be >= 0"}
	}
	if cfg.Thresholds.Individual < 0 {
		return ValidationError{"thresholds.individual", "must be >= 0"}
	}
	if cfg.Thresholds.Group < 0 {
		return ValidationError{"thresholds.group", "must be >= 0"}
	}

	return nil
}
