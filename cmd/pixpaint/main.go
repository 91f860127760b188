package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"gioui.org/app"
	"github.com/esimov/pixpaint"
	"github.com/esimov/pixpaint/utils"
)

const HelpBanner = `
┌─┐┬─┐ ┬┌─┐┌─┐┬┌┐┌┌┬┐
├─┘│┌┴┬┘├─┘├─┤││││ │
┴  ┴┴ └─┴  ┴ ┴┴┘└┘ ┴

Raster paint program and flood fill engine.
    Version: %s

`

// pipeName is the file name that indicates stdin/stdout is being used.
const pipeName = "-"

// Version indicates the current build version.
var Version string

var (
	// Flags
	source      = flag.String("in", "", "Source image, directory or URL (empty for a blank canvas)")
	destination = flag.String("out", pixpaint.DefaultExportName, "Destination")
	seedX       = flag.Int("x", -1, "Flood fill seed X coordinate")
	seedY       = flag.Int("y", -1, "Flood fill seed Y coordinate")
	fillColor   = flag.String("color", pixpaint.DefaultColor, "Fill color as #RRGGBB")
	tolerance   = flag.Int("tol", 0, "Flood fill color tolerance per channel")
	recipe      = flag.String("recipe", "", "YAML drawing recipe")
	width       = flag.Int("width", 0, "Blank canvas width")
	height      = flag.Int("height", 0, "Blank canvas height")
	background  = flag.String("bg", "#ffffff", "Blank canvas background")
	gui         = flag.Bool("gui", false, "Open the paint window")
	undoLimit   = flag.Int("undo", pixpaint.DefaultUndoLimit, "Number of undo steps")
	debug       = flag.Bool("debug", false, "Print debug information")
	workers     = flag.Int("conc", runtime.NumCPU(), "Number of files to process concurrently")
)

func main() {
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, HelpBanner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	proc := &pixpaint.Processor{
		FillColor:  *fillColor,
		Tolerance:  *tolerance,
		Width:      *width,
		Height:     *height,
		Background: *background,
		UndoLimit:  *undoLimit,
		Debug:      *debug,
		Preview:    *gui,
		Logger:     log.New(os.Stderr, "", 0),
	}
	if *seedX >= 0 && *seedY >= 0 {
		proc.Seeds = []image.Point{image.Pt(*seedX, *seedY)}
	}
	if *recipe != "" {
		rc, err := pixpaint.LoadRecipe(*recipe)
		if err != nil {
			fatal(err)
		}
		proc.Recipe = rc
	}

	if *gui {
		go func() {
			if err := runGUI(proc); err != nil {
				fatal(err)
			}
			os.Exit(0)
		}()
		app.Main()
		return
	}

	if proc.Seeds == nil && proc.Recipe == nil && *source == "" {
		flag.Usage()
		fatal(fmt.Errorf("please provide a fill seed (-x, -y), a recipe or the -gui flag"))
	}

	proc.Spinner = utils.NewSpinner(
		utils.StatusLine("is painting the image...", "", utils.DefaultMessage),
		time.Millisecond*200, true,
	)

	// Capture CTRL-C signal and restore the cursor visibility back.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-signalChan
		cancel()
		proc.Spinner.RestoreCursor()
		os.Exit(1)
	}()

	op := &pixpaint.Ops{
		Src:      *source,
		Dst:      *destination,
		PipeName: pipeName,
		Workers:  *workers,
	}
	if err := op.Execute(ctx, proc); err != nil {
		fatal(err)
	}
}

// runGUI paints the initial canvas and serves the paint window.
func runGUI(proc *pixpaint.Processor) error {
	canvas, err := loadCanvas(proc, *source)
	if err != nil {
		return err
	}
	if err := proc.Paint(canvas); err != nil {
		return err
	}
	sess, err := proc.NewSession(canvas)
	if err != nil {
		return err
	}
	return pixpaint.NewGUI(sess, *destination).Run()
}

// loadCanvas opens the source image as a canvas, or a blank one.
func loadCanvas(proc *pixpaint.Processor, src string) (*pixpaint.Canvas, error) {
	switch {
	case src == "":
		return proc.BlankCanvas()
	case utils.IsValidUrl(src):
		f, err := utils.DownloadImage(context.Background(), src)
		if f != nil {
			defer os.Remove(f.Name())
			defer f.Close()
		}
		if err != nil {
			return nil, err
		}
		img, err := pixpaint.Decode(f)
		if err != nil {
			return nil, err
		}
		return pixpaint.CanvasFromImage(img), nil
	}
	img, err := pixpaint.LoadImage(src)
	if err != nil {
		return nil, err
	}
	return pixpaint.CanvasFromImage(img), nil
}

func fatal(err error) {
	log.Fatalf("%s %s",
		utils.DecorateText("⚡ PIXPAINT ⇢", utils.StatusMessage),
		utils.DecorateText(err.Error(), utils.ErrorMessage),
	)
}
