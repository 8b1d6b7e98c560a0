// Package main provides the mycota CLI application.
// mycota builds and queries a dataset of mushroom traits extracted
// from Wikipedia Mycomorphbox infoboxes.
package main

import (
	"github.com/reinderien/mycota/cmd"
)

func main() {
	cmd.Execute()
}
