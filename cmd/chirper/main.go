//go:generate go run github.com/swaggo/swag/cmd/swag@v1.16.2 init -d ../.. -g cmd/chirper/main.go -o ../../docs --outputTypes go

package main

import (
	"os"

	"github.com/chirper/chirper-api/internal/cli"
)

// @title        Chirper API
// @version      1.0
// @description  Users and tweets persisted as JSON collections.
// @BasePath     /
func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
