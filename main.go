// Package main is the entry point for the courtstats CLI tool, which
// records match points on a scoresheet and derives serve, return, and
// shot statistics.
package main

import "github.com/courtside/go-court-stats/cmd"

func main() {
	cmd.Execute()
}
