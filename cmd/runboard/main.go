package main

import (
	"os"

	"github.com/wonny/runboard/cmd/runboard/commands"
)

// main is the entry point for the runboard CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/runboard [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
