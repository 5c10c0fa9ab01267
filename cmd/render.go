package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

const (
	// DefaultResolution renders a square 600x600 image
	DefaultResolution = "600"

	// DefaultOutput is the image written when --out is not given
	DefaultOutput = "images/out.png"
)

// RenderFlags are accepted by the render command and by the default action
var RenderFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "scene, s",
		Usage: "scene description `FILE` (INI)",
	},
	cli.StringFlag{
		Name:  "observer, O",
		Usage: "observer and projection plane `FILE` (INI); defaults to the scene file",
	},
	cli.StringFlag{
		Name:  "out, o",
		Value: DefaultOutput,
		Usage: "output image; the extension (.png, .jpg, .gif, .bmp, .tif) selects the encoding",
	},
	cli.StringFlag{
		Name:  "resolution, r",
		Value: DefaultResolution,
		Usage: "image size in pixels, either N for a square image or WxH",
	},
	cli.IntFlag{
		Name:  "max-depth",
		Value: integrator.DefaultMaxDepth,
		Usage: "maximum reflection and transmission depth; overrides [scene] max_depth",
	},
	cli.BoolFlag{
		Name:  "no-shadows",
		Usage: "disable shadow rays",
	},
	cli.BoolFlag{
		Name:  "stats",
		Usage: "display render statistics",
	},
}

// RenderOptions are the resolved settings of a single render
type RenderOptions struct {
	ScenePath    string
	ObserverPath string
	OutPath      string
	Width        int
	Height       int

	// MaxDepth overrides the scene file's max_depth when HasMaxDepth is set
	MaxDepth    int
	HasMaxDepth bool

	Shadows bool
	Stats   bool
}

// Render a scene to an image file.
func Render(ctx *cli.Context) error {
	setupLogging(ctx)

	opts, err := renderOptions(ctx)
	if err != nil {
		logger.Error(err)
		return err
	}

	stats, err := RenderScene(opts)
	if err != nil {
		logger.Error(err)
		return err
	}

	if opts.Stats {
		logger.Noticef("render statistics\n%s", formatStats(stats))
	}
	return nil
}

func renderOptions(ctx *cli.Context) (RenderOptions, error) {
	opts := RenderOptions{
		ScenePath:    ctx.String("scene"),
		ObserverPath: ctx.String("observer"),
		OutPath:      ctx.String("out"),
		MaxDepth:     ctx.Int("max-depth"),
		HasMaxDepth:  ctx.IsSet("max-depth"),
		Shadows:      !ctx.Bool("no-shadows"),
		Stats:        ctx.Bool("stats"),
	}

	if opts.ScenePath == "" {
		return opts, errors.New("missing required --scene flag")
	}
	if opts.OutPath == "" {
		opts.OutPath = DefaultOutput
	}
	resolution := ctx.String("resolution")
	if resolution == "" {
		resolution = DefaultResolution
	}

	var err error
	if opts.Width, opts.Height, err = parseResolution(resolution); err != nil {
		return opts, err
	}
	if opts.HasMaxDepth && opts.MaxDepth < 0 {
		return opts, fmt.Errorf("invalid --max-depth %d: must be >= 0", opts.MaxDepth)
	}
	return opts, nil
}

// parseResolution parses "N" as an NxN image, or "WxH"
func parseResolution(s string) (int, int, error) {
	parts := strings.FieldsFunc(strings.TrimSpace(s), func(r rune) bool {
		return r == 'x' || r == 'X'
	})
	if len(parts) == 0 || len(parts) > 2 || strings.Count(strings.ToLower(s), "x") != len(parts)-1 {
		return 0, 0, fmt.Errorf("invalid resolution %q: expected N or WxH", s)
	}

	dims := make([]int, len(parts))
	for i, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || v <= 0 {
			return 0, 0, fmt.Errorf("invalid resolution %q: dimensions must be positive integers", s)
		}
		dims[i] = v
	}

	if len(dims) == 1 {
		return dims[0], dims[0], nil
	}
	return dims[0], dims[1], nil
}

// RenderScene loads the configured files, renders the image and writes it to
// opts.OutPath
func RenderScene(opts RenderOptions) (renderer.RenderStats, error) {
	// Reject unknown output formats before any work is done
	if _, err := loaders.EncoderFor(opts.OutPath); err != nil {
		return renderer.RenderStats{}, err
	}

	start := time.Now()
	sceneFile, err := loaders.LoadScene(opts.ScenePath)
	if err != nil {
		return renderer.RenderStats{}, err
	}

	observerPath := opts.ObserverPath
	if observerPath == "" {
		observerPath = opts.ScenePath
	}
	observerFile, err := loaders.LoadObserver(observerPath)
	if err != nil {
		return renderer.RenderStats{}, err
	}
	logger.Infof("loaded configuration in %v", time.Since(start))

	camera, err := renderer.NewCamera(observerFile.Observer, observerFile.Plane, opts.Width, opts.Height)
	if err != nil {
		return renderer.RenderStats{}, err
	}

	config := integrator.DefaultConfig()
	config.MaxDepth = resolveMaxDepth(opts, sceneFile)
	config.Shadows = opts.Shadows
	whitted := integrator.NewWhitted(config)
	logger.Debugf("integrator config: %+v", whitted.Config())

	raytracer := renderer.NewRaytracer(sceneFile.Scene, camera, whitted)
	raytracer.SetProgress(progressLogger())

	logger.Noticef("rendering %dx%d image (max depth %d)", opts.Width, opts.Height, whitted.Config().MaxDepth)
	img, stats := raytracer.Render()
	logger.Noticef("rendered frame in %v", stats.RenderTime)

	start = time.Now()
	if err := loaders.SaveImage(opts.OutPath, img); err != nil {
		return stats, err
	}
	logger.Noticef("wrote frame to %s in %v", opts.OutPath, time.Since(start))

	return stats, nil
}

// resolveMaxDepth picks the --max-depth flag, then [scene] max_depth, then the default
func resolveMaxDepth(opts RenderOptions, sceneFile *loaders.SceneFile) int {
	switch {
	case opts.HasMaxDepth:
		return opts.MaxDepth
	case sceneFile.HasMaxDepth:
		return sceneFile.MaxDepth
	default:
		return integrator.DefaultMaxDepth
	}
}

// progressLogger logs every completed tenth of the image
func progressLogger() renderer.ProgressFunc {
	lastDecile := 0
	return func(rowsDone, totalRows int) {
		decile := rowsDone * 10 / totalRows
		if decile > lastDecile {
			lastDecile = decile
			logger.Infof("rendered %d%% (%d/%d rows)", decile*10, rowsDone, totalRows)
		}
	}
}

func formatStats(stats renderer.RenderStats) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Statistic", "Value"})
	table.AppendBulk([][]string{
		{"Resolution", fmt.Sprintf("%dx%d", stats.Width, stats.Height)},
		{"Pixels", fmt.Sprintf("%d", stats.TotalPixels)},
		{"Background pixels", fmt.Sprintf("%d", stats.BackgroundPixels)},
		{"Rays", fmt.Sprintf("%d", stats.TotalRays)},
		{"Rays per pixel", fmt.Sprintf("%.2f", stats.RaysPerPixel())},
		{"Shadow rays", fmt.Sprintf("%d", stats.ShadowRays)},
		{"Max depth reached", fmt.Sprintf("%d", stats.MaxDepthReached)},
		{"Average luminance", fmt.Sprintf("%.4f", stats.AverageLuminance)},
	})
	table.SetFooter([]string{"Render time", stats.RenderTime.String()})

	table.Render()
	return buf.String()
}
