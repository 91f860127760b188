package pixpaint

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/esimov/pixpaint/utils"
	"golang.org/x/term"
)

// maxWorkers sets the maximum number of concurrently running workers.
const maxWorkers = 20

// encodableExtensions are the output formats Encode can produce.
var encodableExtensions = []string{".png", ".jpg", ".jpeg", ".bmp"}

// Ops describes the source and destination of a batch run.
// An empty Src paints on a blank canvas.
type Ops struct {
	Src, Dst, PipeName string
	Workers            int
}

// result holds the outcome of painting one file.
type result struct {
	path string
	err  error
}

// Execute paints the source image, every image of a source directory or a
// blank canvas, and writes the results to the destination.
func (op *Ops) Execute(ctx context.Context, p *Processor) error {
	if p.Spinner == nil {
		p.Spinner = utils.NewSpinner(utils.StatusLine("painting image...", "", utils.DefaultMessage), time.Millisecond*80, true)
	}
	now := time.Now()

	if op.Src == "" {
		if err := op.checkDst(); err != nil {
			return err
		}
		err := op.run(p, nil, op.Dst)
		op.printOpStatus(p, op.Dst, err)
		return op.finish(now, err)
	}

	if utils.IsValidUrl(op.Src) {
		src, err := utils.DownloadImage(ctx, op.Src)
		if src != nil {
			defer os.Remove(src.Name())
			defer src.Close()
		}
		if err != nil {
			return fmt.Errorf("failed to load the source image: %w", err)
		}
		if err := op.checkDst(); err != nil {
			return err
		}
		err = op.run(p, src, op.Dst)
		op.printOpStatus(p, op.Dst, err)
		return op.finish(now, err)
	}

	var (
		fs  os.FileInfo
		err error
	)
	// Check if the source is a pipe name or a regular file.
	if op.Src == op.PipeName {
		fs, err = os.Stdin.Stat()
	} else {
		fs, err = os.Stat(op.Src)
	}
	if err != nil {
		return fmt.Errorf("failed to load the source image: %w", err)
	}

	switch mode := fs.Mode(); {
	case mode.IsDir():
		err = op.executeDir(ctx, p)
	case mode.IsRegular() || mode&os.ModeNamedPipe != 0 || op.Src == op.PipeName:
		if err = op.checkDst(); err != nil {
			return err
		}
		err = op.process(p, op.Src, op.Dst)
		op.printOpStatus(p, op.Dst, err)
	default:
		err = fmt.Errorf("%s is not a regular file or directory", op.Src)
	}
	return op.finish(now, err)
}

// executeDir paints the image files of the source directory concurrently.
func (op *Ops) executeDir(ctx context.Context, p *Processor) error {
	if _, err := os.Stat(op.Dst); err != nil {
		if err := os.MkdirAll(op.Dst, 0755); err != nil {
			return fmt.Errorf("unable to create the destination directory: %w", err)
		}
	}
	p.Preview = false

	// Limit the concurrently running workers to maxWorkers.
	workers := op.Workers
	if workers <= 0 || workers > maxWorkers {
		workers = utils.Min(runtime.NumCPU(), maxWorkers)
	}

	ch := make(chan result)
	done := make(chan struct{})
	defer close(done)

	paths, errc := walkDir(ctx, done, op.Src, SupportedExtensions)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			op.consumer(p, op.Dst, ch, done, paths)
		}()
	}

	// Close the channel after the values are consumed.
	go func() {
		defer close(ch)
		wg.Wait()
	}()

	var errs []error
	for res := range ch {
		if res.err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", res.path, res.err))
		}
		op.printOpStatus(p, res.path, res.err)
	}
	if err := <-errc; err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// consumer reads the path names from the paths channel and paints each source image.
func (op *Ops) consumer(
	p *Processor,
	dest string,
	res chan<- result,
	done <-chan struct{},
	paths <-chan string,
) {
	for src := range paths {
		dst := filepath.Join(dest, outputName(src))
		err := op.process(p, src, dst)

		select {
		case <-done:
			return
		case res <- result{path: src, err: err}:
		}
	}
}

// outputName keeps the base name of src, switching input only formats to PNG.
func outputName(src string) string {
	base := filepath.Base(src)
	ext := filepath.Ext(base)
	if isValidExtension(ext) && !isEncodable(ext) {
		return strings.TrimSuffix(base, ext) + ".png"
	}
	return base
}

// process opens the source and destination paths and paints the image.
func (op *Ops) process(p *Processor, in, out string) error {
	src, err := op.openSrc(in)
	if err != nil {
		return err
	}
	if f, ok := src.(*os.File); ok && f != os.Stdin {
		defer f.Close()
	}
	return op.run(p, src, out)
}

// run paints src (nil for a blank canvas) into the out path.
func (op *Ops) run(p *Processor, src io.Reader, out string) error {
	dst, err := op.openDst(out)
	if err != nil {
		return err
	}

	p.Spinner.Start()
	err = p.Process(src, dst)

	if f, ok := dst.(*os.File); ok && f != os.Stdout {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("could not close the destination file: %w", cerr)
		}
		if err != nil {
			// remove the generated image file in case of an error
			os.Remove(f.Name())
		}
	}

	if err != nil {
		p.Spinner.StopWith(utils.StatusLine("painting image failed...", "✘", utils.ErrorMessage))
	} else {
		p.Spinner.StopWith(utils.StatusLine("the image has been painted successfully", "✔", utils.SuccessMessage))
	}
	return err
}

// openSrc converts the source path to a readable file.
func (op *Ops) openSrc(in string) (io.Reader, error) {
	if in == op.PipeName {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, errors.New("`-` should be used with a pipe for stdin")
		}
		return os.Stdin, nil
	}
	f, err := os.Open(in)
	if err != nil {
		return nil, fmt.Errorf("unable to open the source file: %w", err)
	}
	return f, nil
}

// openDst converts the destination path to a writable file.
func (op *Ops) openDst(out string) (io.Writer, error) {
	if out == op.PipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return nil, errors.New("`-` should be used with a pipe for stdout")
		}
		return os.Stdout, nil
	}
	f, err := os.OpenFile(out, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("unable to create the destination file: %w", err)
	}
	return f, nil
}

// checkDst rejects destination files which cannot be encoded.
func (op *Ops) checkDst() error {
	if op.Dst == op.PipeName {
		return nil
	}
	if ext := filepath.Ext(op.Dst); !isEncodable(ext) {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return nil
}

// printOpStatus displays the outcome of painting fname.
func (op *Ops) printOpStatus(p *Processor, fname string, err error) {
	w := p.logger().Writer()
	if err != nil {
		fmt.Fprintf(w, "%s %s\n",
			utils.DecorateText("Error painting the image:", utils.ErrorMessage),
			utils.DecorateText(fmt.Sprintf("%s (%v)", filepath.Base(fname), err), utils.DefaultMessage),
		)
		return
	}
	if fname != op.PipeName && p.Debug {
		fmt.Fprintf(w, "The image has been saved as: %s\n",
			utils.DecorateText(filepath.Base(fname), utils.SuccessMessage),
		)
	}
}

func (op *Ops) finish(start time.Time, err error) error {
	if err == nil && op.Dst != op.PipeName {
		fmt.Fprintf(os.Stderr, "\nExecution time: %s\n",
			utils.DecorateText(utils.FormatTime(time.Since(start)), utils.SuccessMessage))
	}
	return err
}

// walkDir starts a new goroutine to walk the specified directory tree
// in recursive manner and sends the path of each supported image to a new channel.
// It finishes in case the done channel is getting closed or ctx is cancelled.
func walkDir(
	ctx context.Context,
	done <-chan struct{},
	src string,
	srcExts []string,
) (<-chan string, <-chan error) {
	pathChan := make(chan string)
	errChan := make(chan error, 1)

	go func() {
		// Close the paths channel after Walk returns.
		defer close(pathChan)

		errChan <- filepath.Walk(src, func(path string, f os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !f.Mode().IsRegular() {
				return nil
			}
			if !hasExtension(filepath.Ext(f.Name()), srcExts) {
				return nil
			}

			select {
			case <-done:
				return errors.New("directory walk cancelled")
			case <-ctx.Done():
				return ctx.Err()
			case pathChan <- path:
			}
			return nil
		})
	}()
	return pathChan, errChan
}

func isEncodable(ext string) bool {
	return hasExtension(ext, encodableExtensions)
}

func hasExtension(ext string, extensions []string) bool {
	ext = strings.ToLower(ext)
	for _, ex := range extensions {
		if ex == ext {
			return true
		}
	}
	return false
}
