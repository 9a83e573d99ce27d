// Command meshwarp applies a mesh deformation job to a PNG or JPEG image.
//
// A job file (YAML or TOML, chosen by extension) names the input and
// output images and exactly one of a cage, liquify or warp section:
//
//	meshwarp apply job.yaml
//	meshwarp apply --preview 0.25 --verbose job.toml
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
