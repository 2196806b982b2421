package boardconfig

import (
	"fmt"

	"github.com/wonny/runboard/internal/contracts"
)

// Config는 리더보드의 스키마/단위/임계값 설정
type Config struct {
	Schema     Schema     `yaml:"schema" json:"schema"`
	Categories []string   `yaml:"categories" json:"categories"` // 선택 가능한 범주 (House, Gender, Grade)
	Units      []Unit     `yaml:"units" json:"units"`
	Thresholds Thresholds `yaml:"thresholds" json:"thresholds"`
}

// Schema describes how raw columns map onto records
type Schema struct {
	IdentityColumn    string `yaml:"identity_column" json:"identity_column"`       // 기본 "Name"
	ObservationPrefix string `yaml:"observation_prefix" json:"observation_prefix"` // 기본 "Distance_"
}

// Unit is a named conversion factor applied at ingestion
type Unit struct {
	Name   string  `yaml:"name" json:"name"`
	Label  string  `yaml:"label" json:"label"`
	Factor float64 `yaml:"factor" json:"factor"`
}

// Thresholds are the weeks-above-threshold bounds per call path
// individual/group 기본값은 DESIGN.md 의 결정 사항 참조
type Thresholds struct {
	Ranking    float64 `yaml:"ranking" json:"ranking"`
	Individual float64 `yaml:"individual" json:"individual"`
	Group      float64 `yaml:"group" json:"group"`
}

// Default returns the built-in board configuration
func Default() *Config {
	return &Config{
		Schema: Schema{
			IdentityColumn:    "Name",
			ObservationPrefix: "Distance_",
		},
		Categories: []string{"House", "Gender", "Grade"},
		Units: []Unit{
			{Name: "km", Label: "Kilometers", Factor: 1.0},
			{Name: "mi", Label: "Miles", Factor: 0.621371},
		},
		Thresholds: Thresholds{
			Ranking:    10,
			Individual: 10,
			Group:      100,
		},
	}
}

// Unit looks up a unit by name
func (c *Config) Unit(name string) (Unit, error) {
	for _, u := range c.Units {
		if u.Name == name {
			return u, nil
		}
	}
	return Unit{}, fmt.Errorf("%w: %q", contracts.ErrInvalidUnit, name)
}

// HasCategory reports whether key is a configured category
func (c *Config) HasCategory(key string) bool {
	for _, cat := range c.Categories {
		if cat == key {
			return true
		}
	}
	return false
}
