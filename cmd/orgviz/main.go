// main is the entry point for the orgviz CLI.
package main

import (
	"github.com/orgviz/orgviz/cmd"
	"github.com/orgviz/orgviz/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogFatal("Command failed", err)
	}
}
