// Package main is the entry point for the rallymetrics CLI tool, which
// ingests finished racket-sport matches and tracks insights, achievements,
// and player experience.
package main

import "github.com/mvidela/rallymetrics/cmd"

func main() {
	cmd.Execute()
}
