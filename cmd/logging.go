package cmd

import (
	"github.com/df07/go-whitted-raytracer/pkg/log"
	"github.com/urfave/cli"
)

var logger = log.New("whitted")

// setupLogging applies the -v and -vv flags, which may be given before or after
// the command name
func setupLogging(ctx *cli.Context) {
	verbose := 0
	if ctx.Bool("v") || ctx.GlobalBool("v") {
		verbose = 1
	}
	if ctx.Bool("vv") || ctx.GlobalBool("vv") {
		verbose = 2
	}
	log.SetLevel(log.VerbosityLevel(verbose))
}
