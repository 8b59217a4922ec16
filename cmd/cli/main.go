package main

import (
	"os"

	"github.com/suds-dev/suds/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
