package main

import (
	"fmt"
	"os"

	"modoverlay/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "mod-manager:", err)
		os.Exit(1)
	}
}
