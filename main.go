package main

import (
	"fmt"
	"os"

	"github.com/fredbugatti/PMS-2026-Residential-sub001/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
