package main

import (
	"os"

	"github.com/df07/go-whitted-raytracer/cmd"
	"github.com/urfave/cli"
)

var verbosityFlags = []cli.Flag{
	cli.BoolFlag{
		Name:  "v",
		Usage: "enable verbose logging",
	},
	cli.BoolFlag{
		Name:  "vv",
		Usage: "enable even more verbose logging",
	},
}

func newApp() *cli.App {
	// -v selects verbose logging, so the version flag gets no short alias
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "whitted"
	app.Usage = "render INI scene descriptions with Whitted-style ray tracing"
	app.Version = "0.1.0"
	app.Flags = append(append([]cli.Flag{}, verbosityFlags...), cmd.RenderFlags...)
	app.Action = cmd.Render
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a scene to an image file",
			Description: `
Load the primitives and lights of a scene file and the observer and projection
plane of an observer file, trace one ray per pixel and write the image.

The observer file defaults to the scene file, which may hold [camera] and
[projection] sections alongside the scene. The extension of --out selects the
image encoding.`,
			Flags:  cmd.RenderFlags,
			Action: cmd.Render,
		},
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		os.Exit(1)
	}
}
