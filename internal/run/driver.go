// Package run drives the frame pipeline over a range of frames and writes one
// CSV row per frame, in frame order.
package run

import (
	"context"
	"encoding/csv"
	"fmt"
	"image"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/hudscan/internal/imaging"
	"github.com/ironsheep/hudscan/internal/pipeline"
)

// FrameSource loads frames by index.
type FrameSource interface {
	Frame(index int) (image.Image, error)
}

// DirSource reads NNNNNN.png frames from a folder.
type DirSource struct {
	Folder string
}

// Frame loads the frame with the given index.
func (d DirSource) Frame(index int) (image.Image, error) {
	return imaging.LoadFrame(d.Folder, index)
}

// Processor turns one frame into a record. *pipeline.Pipeline implements it.
type Processor interface {
	Process(index int, frame image.Image) (pipeline.Record, error)
}

// Options configure a Driver.
type Options struct {
	// Workers is the number of frames processed concurrently. Values below
	// one mean one.
	Workers int

	// StrictFrames turns an unreadable frame into a fatal error. Otherwise
	// the frame is logged and produces no row.
	StrictFrames bool

	Logger *slog.Logger
}

// Summary counts what a run produced.
type Summary struct {
	Frames     int
	Rows       int
	Skipped    int
	Suppressed int
	Corrected  int
	Unknown    int
	NotFound   int
	Elapsed    time.Duration
}

// Driver runs a Processor over frames from a FrameSource.
type Driver struct {
	source    FrameSource
	processor Processor
	workers   int
	strict    bool
	logger    *slog.Logger
}

// NewDriver creates a Driver.
func NewDriver(source FrameSource, processor Processor, opts Options) *Driver {
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Driver{
		source:    source,
		processor: processor,
		workers:   workers,
		strict:    opts.StrictFrames,
		logger:    logger,
	}
}

// frameResult is one processed frame waiting to be written.
type frameResult struct {
	record  pipeline.Record
	skipped bool
}

// Run processes every frame of r and writes the header plus one row per
// frame to w. Skipped and suppressed frames produce no row.
//
// Frames are processed in windows of a few frames per worker; each window is
// written in frame order before the next one starts, so rows always appear in
// ascending frame order regardless of the worker count. The range is
// validated before anything is written.
func (d *Driver) Run(ctx context.Context, r Range, w io.Writer) (sum Summary, err error) {
	if err := r.Validate(); err != nil {
		return sum, err
	}

	start := time.Now()
	defer func() { sum.Elapsed = time.Since(start) }()

	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	if err := cw.Write(pipeline.Header); err != nil {
		return sum, fmt.Errorf("write header: %w", err)
	}

	window := d.workers * 4
	for lo := r.From; lo < r.To; lo += window {
		if err := ctx.Err(); err != nil {
			cw.Flush()
			return sum, err
		}

		hi := min(lo+window, r.To)
		results := make([]frameResult, hi-lo)

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(d.workers)
		for i := lo; i < hi; i++ {
			i := i
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				res, err := d.processFrame(i)
				if err != nil {
					return err
				}
				results[i-lo] = res
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			cw.Flush()
			return sum, err
		}

		for _, res := range results {
			sum.Frames++
			if res.skipped {
				sum.Skipped++
				continue
			}
			for _, f := range res.record.Fields {
				switch f.Status {
				case pipeline.StatusCorrected:
					sum.Corrected++
				case pipeline.StatusUnknown:
					sum.Unknown++
				case pipeline.StatusDelimiterNotFound:
					sum.NotFound++
				}
			}
			if res.record.Suppressed {
				sum.Suppressed++
				continue
			}
			if err := cw.Write(res.record.Row()); err != nil {
				return sum, fmt.Errorf("write frame %d: %w", res.record.Frame, err)
			}
			sum.Rows++
		}

		cw.Flush()
		if err := cw.Error(); err != nil {
			return sum, fmt.Errorf("write output: %w", err)
		}
	}

	return sum, nil
}

func (d *Driver) processFrame(index int) (frameResult, error) {
	d.logger.Info("frame", "frame", index)

	img, err := d.source.Frame(index)
	if err != nil {
		if d.strict {
			return frameResult{}, err
		}
		d.logger.Warn("frame skipped", "frame", index, "error", err)
		return frameResult{skipped: true}, nil
	}

	rec, err := d.processor.Process(index, img)
	if err != nil {
		return frameResult{}, err
	}
	return frameResult{record: rec}, nil
}
