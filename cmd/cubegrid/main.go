// cubegrid - an endless isometric grid of animated 3x3 cubes.
package main

import (
	"os"

	"github.com/SeamusWaldron/cubegrid/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
