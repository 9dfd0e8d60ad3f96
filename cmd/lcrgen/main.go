package main

import (
	"os"

	"github.com/synthbank/lcrgen/cmd/lcrgen/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
