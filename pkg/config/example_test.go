package config_test

import (
	"fmt"

	"github.com/wonny/runboard/pkg/config"
)

// Example demonstrates how to use the config package
func Example() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		return
	}

	fmt.Printf("Server running on port: %s\n", cfg.Port)
	fmt.Printf("Roster source: %s (%s)\n", cfg.Data.Source, cfg.Data.Dir)
	fmt.Printf("Default unit: %s\n", cfg.Data.DefaultUnit)
}
