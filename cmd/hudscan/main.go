package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/alexflint/go-arg"
	"github.com/google/uuid"
	"github.com/lmittmann/tint"

	"github.com/ironsheep/hudscan/internal/config"
	"github.com/ironsheep/hudscan/internal/imaging"
	"github.com/ironsheep/hudscan/internal/ocr"
	"github.com/ironsheep/hudscan/internal/pipeline"
	"github.com/ironsheep/hudscan/internal/run"
	"github.com/ironsheep/hudscan/internal/vocab"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

type extractCmd struct {
	Folder       string `arg:"positional,required" help:"folder holding NNNNNN.png frames"`
	From         int    `arg:"positional,required" help:"first frame (inclusive)"`
	To           int    `arg:"positional,required" help:"last frame (exclusive)"`
	Players      string `arg:"--players" help:"player name list [default: <folder>.players.txt]"`
	Weapons      string `arg:"--weapons" default:"weapons.txt" help:"weapon name list"`
	Icon         string `arg:"--icon" default:"player_name_end_icon.png" help:"icon that ends the player name"`
	Out          string `arg:"-o,--out" help:"output CSV [default: <from>-<to>.csv]"`
	Layout       string `arg:"--layout" help:"HUD layout file (yaml, json or toml)"`
	Workers      int    `arg:"-j,--workers" default:"1" help:"frames processed concurrently"`
	DebugDir     string `arg:"--debug-dir" help:"write binarized field images here"`
	StrictFrames bool   `arg:"--strict-frames" help:"abort on unreadable frames instead of skipping them"`
}

type layoutCmd struct {
	Frame  string `arg:"positional,required" help:"frame image"`
	Output string `arg:"positional,required" help:"PNG to write"`
	Layout string `arg:"--layout" help:"HUD layout file (yaml, json or toml)"`
}

type cliArgs struct {
	Extract *extractCmd `arg:"subcommand:extract" help:"read player and weapon names from a frame range"`
	Layout  *layoutCmd  `arg:"subcommand:layout" help:"draw the HUD layout onto a frame"`
	Env     string      `arg:"--env" default:".env" help:"dotenv file read at startup when present"`
}

func (cliArgs) Version() string {
	return fmt.Sprintf("hudscan %s (built %s, commit %s)", Version, BuildTime, GitCommit)
}

func (cliArgs) Description() string {
	return "hudscan - read player and weapon names from game HUD frame captures"
}

func (cliArgs) Epilogue() string {
	return `Environment variables:
  HUDSCAN_LOG_LEVEL=debug|info|warn|error
  HUDSCAN_LANGUAGE=eng              Tesseract language
  HUDSCAN_TESSDATA_PREFIX=<dir>     Tesseract data directory`
}

func main() {
	var args cliArgs
	p := arg.MustParse(&args)
	if p.Subcommand() == nil {
		p.Fail("missing subcommand")
	}

	env, err := config.LoadEnv(args.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hudscan: %v\n", err)
		os.Exit(1)
	}

	// Logs go to stderr; stdout stays free for piping
	logger := slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      env.LogLevel,
			TimeFormat: "15:04:05",
		}),
	).With("run_id", uuid.NewString())
	logger.Debug("hudscan starting", "version", Version, "built", BuildTime, "commit", GitCommit)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	switch {
	case args.Extract != nil:
		err = extract(ctx, args.Extract, env, logger)
	case args.Layout != nil:
		err = drawLayout(args.Layout, logger)
	}
	stop()

	if err != nil {
		logger.Error("hudscan failed", "error", err)
		os.Exit(1)
	}
}

func extract(ctx context.Context, cmd *extractCmd, env config.Env, logger *slog.Logger) error {
	// Reject the range before touching any input or output file
	r := run.Range{From: cmd.From, To: cmd.To}
	if err := r.Validate(); err != nil {
		return err
	}

	layout, err := config.LoadLayout(cmd.Layout)
	if err != nil {
		return err
	}

	recognizer := ocr.NewTesseract(env.Language, env.TessdataPrefix)
	logger.Debug("ocr engine", "tesseract", ocr.Version(), "language", env.Language)

	cfg := pipeline.Config{
		Layout:     layout,
		Recognizer: recognizer,
		Logger:     logger,
		DebugDir:   cmd.DebugDir,
	}

	if layout.UsesDelimiter() {
		if cfg.Icon, err = imaging.LoadIcon(cmd.Icon); err != nil {
			return err
		}
	}
	if layout.UsesVocabulary(pipeline.VocabularyPlayers) {
		path := cmd.Players
		if path == "" {
			path = filepath.Clean(cmd.Folder) + ".players.txt"
		}
		if cfg.Players, err = loadVocabulary(path, "players", logger); err != nil {
			return err
		}
	}
	if layout.UsesVocabulary(pipeline.VocabularyWeapons) {
		if cfg.Weapons, err = loadVocabulary(cmd.Weapons, "weapons", logger); err != nil {
			return err
		}
	}

	pl, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	out := cmd.Out
	if out == "" {
		out = r.OutputName()
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}

	driver := run.NewDriver(run.DirSource{Folder: cmd.Folder}, pl, run.Options{
		Workers:      cmd.Workers,
		StrictFrames: cmd.StrictFrames,
		Logger:       logger,
	})

	logger.Info("run starting", "folder", cmd.Folder, "from", r.From, "to", r.To, "output", out, "workers", cmd.Workers)
	sum, err := driver.Run(ctx, r, f)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("close output: %w", cerr)
	}
	if err != nil {
		return err
	}

	logger.Info("run complete",
		"output", out,
		"frames", sum.Frames,
		"rows", sum.Rows,
		"skipped", sum.Skipped,
		"suppressed", sum.Suppressed,
		"corrected", sum.Corrected,
		"unknown", sum.Unknown,
		"delimiter_not_found", sum.NotFound,
		"elapsed", sum.Elapsed.Round(time.Millisecond))
	return nil
}

func loadVocabulary(path, name string, logger *slog.Logger) (*vocab.Vocabulary, error) {
	v, err := vocab.Load(path)
	if err != nil {
		return nil, err
	}
	logger.Info("vocabulary loaded", "vocabulary", name, "path", path, "entries", v.Len())
	return v, nil
}

func drawLayout(cmd *layoutCmd, logger *slog.Logger) error {
	layout, err := config.LoadLayout(cmd.Layout)
	if err != nil {
		return err
	}

	frame, err := imaging.Load(cmd.Frame)
	if err != nil {
		return err
	}

	fields := layout.Fields()
	rects := make([]imaging.LabeledRect, 0, len(fields))
	for _, f := range fields {
		if !f.Rect.Image().In(frame.Bounds()) {
			logger.Warn("field outside frame", "field", f.Name, "rect", f.Rect.String(), "frame", frame.Bounds().String())
		}
		rects = append(rects, imaging.LabeledRect{Label: f.Name, Rect: f.Rect})
	}

	if err := imaging.SavePNG(cmd.Output, imaging.DrawLayout(frame, rects)); err != nil {
		return err
	}
	logger.Info("layout written", "output", cmd.Output, "fields", len(rects))
	return nil
}
