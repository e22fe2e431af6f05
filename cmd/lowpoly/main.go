package main

import (
	"errors"
	"fmt"
	"image"
	"os"
	"strings"
	"time"

	"github.com/esimov/lowpoly"
	"github.com/esimov/lowpoly/utils"
	"github.com/fogleman/gg"
	"github.com/logrusorgru/aurora"
	imgcat "github.com/martinlindhe/imgcat/lib"
	"golang.org/x/exp/slog"
	"golang.org/x/term"
	"golang.org/x/xerrors"
	"gopkg.in/alecthomas/kingpin.v2"
)

const (
	svgTitle       = "Low-poly image"
	svgDescription = "Image converted to low-poly art using delaunay triangulation."
)

var (
	app      = kingpin.New("lowpoly", "Convert images to low-poly art using delaunay triangulation.")
	logLevel = app.Flag("log-level", "Log level: debug, info, warn or error.").Default("info").Enum("debug", "info", "warn", "error")

	viewCmd       = app.Command("view", "Place the triangulation vertices interactively.")
	viewImage     = viewCmd.Arg("image", "Source image path or URL.").Required().String()
	viewOut       = viewCmd.Flag("out", "SVG export destination. Each export overwrites it; a new name is generated when empty.").Short('o').String()
	viewResume    = viewCmd.Flag("resume", "Restore the vertices of a previous SVG export.").ExistingFile()
	viewWidth     = viewCmd.Flag("width", "Canvas width.").Default("1280").Int()
	viewHeight    = viewCmd.Flag("height", "Canvas height.").Default("960").Int()
	viewCanonical = viewCmd.Flag("canonical", "Sort the exported faces by centroid.").Bool()

	autoCmd         = app.Command("auto", "Seed the triangulation vertices from the image edges.")
	autoImage       = autoCmd.Arg("image", "Source image path or URL.").Required().String()
	autoOut         = autoCmd.Flag("out", "SVG destination.").Short('o').Required().String()
	autoPNG         = autoCmd.Flag("png", "Render the mesh into this PNG file too.").String()
	blurRadius      = autoCmd.Flag("blur", "Blur radius.").Default("2").Int()
	sobelThreshold  = autoCmd.Flag("sobel", "Sobel filter threshold.").Default("10").Int()
	pointsThreshold = autoCmd.Flag("points", "Points threshold.").Default("20").Int()
	maxPoints       = autoCmd.Flag("max", "Maximum number of points.").Default("2500").Int()
	seed            = autoCmd.Flag("seed", "Random seed of the point selection.").Default("1").Int64()
	wireframe       = autoCmd.Flag("wireframe", "Wireframe mode of the PNG output: 0 none, 1 with wireframe, 2 wireframe only.").Default("0").Int()
	lineWidth       = autoCmd.Flag("width", "Wireframe line width.").Default("1").Float64()
	noise           = autoCmd.Flag("noise", "Noise factor of the PNG output.").Default("0").Int()
	preview         = autoCmd.Flag("preview", "Show the PNG output in the terminal.").Bool()
	autoCanonical   = autoCmd.Flag("canonical", "Sort the exported faces by centroid.").Bool()
)

func main() {
	cmd := kingpin.MustParse(app.Parse(os.Args[1:]))
	logger := newLogger(*logLevel)

	var err error
	switch cmd {
	case viewCmd.FullCommand():
		err = view(logger)
	case autoCmd.FullCommand():
		err = auto(logger)
	}

	if err != nil {
		au := aurora.NewAurora(isTerminal(os.Stderr))
		msgs := causes(err)

		fmt.Fprintln(os.Stderr, au.Red(msgs[0]))
		for _, cause := range msgs[1:] {
			fmt.Fprintf(os.Stderr, "Caused by: %s\n", cause)
		}
		os.Exit(1)
	}
}

// view opens the interactive viewer.
func view(logger *slog.Logger) error {
	img, err := loadImage(*viewImage)
	if err != nil {
		return err
	}
	s := lowpoly.NewSession(img, lowpoly.SessionOptions{
		Width:  *viewWidth,
		Height: *viewHeight,
		Output: *viewOut,
		Exporter: &lowpoly.SVG{
			Width:       img.Bounds().Dx(),
			Height:      img.Bounds().Dy(),
			Title:       svgTitle,
			Description: svgDescription,
			Sorted:      *viewCanonical,
		},
		Logger: logger,
	})

	if *viewResume != "" {
		f, err := os.Open(*viewResume)
		if err != nil {
			return xerrors.Errorf("unable to open the resumed export: %w", err)
		}
		points, err := lowpoly.LoadVertices(f)
		f.Close()
		if err != nil {
			return xerrors.Errorf("unable to resume %s: %w", *viewResume, err)
		}
		n := s.InsertAll(points)
		logger.Info("session resumed", "path", *viewResume, "vertices", n)
	}
	return runViewer(s, logger)
}

// auto triangulates the image without user interaction.
func auto(logger *slog.Logger) error {
	img, err := loadImage(*autoImage)
	if err != nil {
		return err
	}
	width, height := img.Bounds().Dx(), img.Bounds().Dy()

	s := lowpoly.NewSession(img, lowpoly.SessionOptions{
		Output: *autoOut,
		Exporter: &lowpoly.SVG{
			Width:       width,
			Height:      height,
			Title:       svgTitle,
			Description: svgDescription,
			Sorted:      *autoCanonical,
		},
		Logger: logger,
	})
	p := &lowpoly.Processor{
		BlurRadius:      *blurRadius,
		SobelThreshold:  *sobelThreshold,
		PointsThreshold: *pointsThreshold,
		MaxPoints:       *maxPoints,
		Seed:            *seed,
	}

	colored := isTerminal(os.Stderr)
	au := aurora.NewAurora(colored)

	spinner := utils.NewSpinner(os.Stderr, colored)
	spinner.Start("Generating triangulated image...")
	start := time.Now()
	n := p.Process(s)
	spinner.Stop()

	path, err := s.Export("")
	if err != nil {
		return xerrors.Errorf("unable to save the triangulated image: %w", err)
	}

	if *autoPNG != "" {
		r := &lowpoly.Renderer{
			Wireframe: *wireframe,
			LineWidth: *lineWidth,
			Noise:     *noise,
		}
		if err := gg.SavePNG(*autoPNG, r.RenderMesh(s.Polygons(), width, height)); err != nil {
			return xerrors.Errorf("unable to save the png output: %w", err)
		}
		if *preview {
			if err := imgcat.CatFile(*autoPNG, os.Stdout); err != nil {
				return xerrors.Errorf("unable to preview %s: %w", *autoPNG, err)
			}
		}
	}

	fmt.Fprintf(os.Stderr, "Generated in: %s\n", au.Green(utils.FormatTime(time.Since(start))))
	fmt.Fprintf(os.Stderr, "Total number of %s triangles generated out of %s points\n",
		au.Green(len(s.Polygons())), au.Green(n))
	fmt.Fprintf(os.Stderr, "Saved as: %s %s\n", path, au.Green("✓"))

	return nil
}

// loadImage decodes the source image, downloading it first when src is a URL.
func loadImage(src string) (*image.NRGBA, error) {
	if !utils.IsURL(src) {
		return lowpoly.Open(src)
	}
	f, err := utils.DownloadImage(src)
	if err != nil {
		return nil, err
	}
	defer os.Remove(f.Name())
	defer f.Close()

	return lowpoly.Decode(f)
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// causes splits a chain of wrapped errors into one message per link.
func causes(err error) []string {
	var msgs []string
	for err != nil {
		msg := err.Error()
		next := errors.Unwrap(err)
		if next != nil {
			msg = strings.TrimSuffix(msg, ": "+next.Error())
		}
		msgs = append(msgs, msg)
		err = next
	}
	return msgs
}
