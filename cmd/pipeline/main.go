package main

import (
	"os"

	"github.com/tsekula/n8n-python/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
