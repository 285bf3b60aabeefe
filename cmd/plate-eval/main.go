// Command plate-eval scores the plate recognition pipeline against a
// directory of images named after their plate text. It exits with status 1
// when the corpus fails.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	lpreval "github.com/GabrielGausachs/PSIV-License-Plate-Detection"
	"github.com/GabrielGausachs/PSIV-License-Plate-Detection/internal/config"
	"github.com/GabrielGausachs/PSIV-License-Plate-Detection/reader"
	"github.com/GabrielGausachs/PSIV-License-Plate-Detection/recognize"
	"github.com/GabrielGausachs/PSIV-License-Plate-Detection/vision"
)

// Set by the build with -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type options struct {
	corpus        string
	model         string
	models        string
	layout        string
	fullPlate     bool
	reader        string
	pass          float64
	plateLength   int
	timeout       string
	attempts      int
	workDir       string
	preview       string
	ortLib        string
	region        string
	minConfidence float64
	verbose       bool
	version       bool
}

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	var o options
	flag.StringVar(&o.corpus, "corpus", cfg.Corpus, "Directory of plate images named <PLATE>.<ext>")
	flag.StringVar(&o.model, "model", cfg.CharModel, "Path to ONNX character classifier (required)")
	flag.StringVar(&o.models, "models", "", "Comma-separated classifier paths for comparison")
	flag.StringVar(&o.layout, "layout", cfg.Layout, "Plate layout mask, N=digit L=letter (e.g. NNNNLLL)")
	flag.BoolVar(&o.fullPlate, "full-plate", cfg.FullPlate, "Also read and score the whole plate")
	flag.StringVar(&o.reader, "reader", cfg.Reader, "Whole-plate reader: tesseract or rekognition")
	flag.Float64Var(&o.pass, "pass", cfg.PassAccuracy, "Overall accuracy both prediction kinds must reach")
	flag.IntVar(&o.plateLength, "plate-length", cfg.PlateLength, "Assumed plate length for character accuracy")
	flag.StringVar(&o.timeout, "timeout", cfg.ImageTimeout.String(), "Per-image timeout, 0 disables")
	flag.IntVar(&o.attempts, "attempts", cfg.CharAttempts, "Classification attempts per character")
	flag.StringVar(&o.workDir, "work-dir", cfg.WorkDir, "Directory for plate crops (default: temporary)")
	flag.StringVar(&o.preview, "preview", "", `Show plates: "window" or a directory to write them to`)
	flag.StringVar(&o.ortLib, "ortlib", cfg.ORTLibrary, "Path to the onnxruntime shared library")
	flag.StringVar(&o.region, "region", cfg.AWSRegion, "AWS region for the rekognition reader")
	flag.Float64Var(&o.minConfidence, "min-confidence", float64(cfg.MinConfidence), "Lowest rekognition line confidence")
	flag.BoolVar(&o.verbose, "v", false, "Debug logging")
	flag.BoolVar(&o.version, "version", false, "Print version and exit")
	flag.Parse()

	if o.version {
		fmt.Printf("plate-eval %s (%s, %s)\n", version, commit, date)
		return 0
	}

	if o.model == "" && o.models == "" {
		fmt.Fprintln(os.Stderr, "error: -model or -models required")
		flag.Usage()
		return 1
	}

	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if o.workDir == "" {
		dir, err := os.MkdirTemp("", "plate-eval-")
		if err != nil {
			fmt.Fprintf(os.Stderr, "error creating work dir: %v\n", err)
			return 1
		}
		defer func() { _ = os.RemoveAll(dir) }()
		o.workDir = dir
	}

	evalOpts, cleanup, err := commonOptions(ctx, o, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer cleanup()

	if o.models != "" {
		return runModelComparison(ctx, o, strings.Split(o.models, ","), evalOpts, logger)
	}
	return runSingle(ctx, o, evalOpts, logger)
}

// commonOptions builds the evaluator options shared by every classifier.
func commonOptions(ctx context.Context, o options, logger *slog.Logger) ([]lpreval.Option, func(), error) {
	timeout, err := parseTimeout(o.timeout)
	if err != nil {
		return nil, nil, err
	}

	opts := []lpreval.Option{
		lpreval.WithLogger(logger),
		lpreval.WithPassAccuracy(o.pass),
		lpreval.WithAssumedPlateLength(o.plateLength),
		lpreval.WithImageTimeout(timeout),
		lpreval.WithCharAttempts(o.attempts),
	}

	var closers []io.Closer
	cleanup := func() {
		for _, c := range closers {
			_ = c.Close()
		}
	}

	if o.fullPlate {
		r, closer, err := newReader(ctx, o, logger)
		if err != nil {
			logger.WarnContext(ctx, "whole-plate reader unavailable", slog.Any("error", err))
			opts = append(opts, lpreval.WithFullPlateRequired(true))
		} else {
			opts = append(opts, lpreval.WithFullPlate(r))
			if closer != nil {
				closers = append(closers, closer)
			}
		}
	}

	switch o.preview {
	case "":
	case "window":
		w := vision.NewWindowPreview("plate-eval", 500)
		closers = append(closers, w)
		opts = append(opts, lpreval.WithPreview(w))
	default:
		if err := os.MkdirAll(o.preview, 0o755); err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("creating preview dir: %w", err)
		}
		opts = append(opts, lpreval.WithPreview(vision.NewDirPreview(o.preview)))
	}

	return opts, cleanup, nil
}

func newReader(ctx context.Context, o options, logger *slog.Logger) (lpreval.PlateReader, io.Closer, error) {
	switch o.reader {
	case "tesseract":
		t, err := reader.NewTesseract(reader.WithLogger(logger))
		if err != nil {
			return nil, nil, err
		}
		return t, t, nil
	case "rekognition":
		r, err := reader.LoadRekognition(ctx, o.region,
			reader.WithLogger(logger),
			reader.WithMinConfidence(float32(o.minConfidence)),
		)
		if err != nil {
			return nil, nil, err
		}
		return r, nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown reader %q", o.reader)
	}
}

func newEvaluator(o options, modelPath string, opts []lpreval.Option, logger *slog.Logger) (*lpreval.Evaluator, *recognize.Classifier, error) {
	cls, err := recognize.New(modelPath,
		recognize.WithLayout(o.layout),
		recognize.WithSharedLibrary(o.ortLib),
		recognize.WithLogger(logger),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("creating classifier %s: %w", modelPath, err)
	}

	det := vision.NewPlateDetector(vision.WithWorkDir(o.workDir), vision.WithLogger(logger))
	seg := vision.NewCharSegmenter(vision.WithLogger(logger))

	ev, err := lpreval.New(det, seg, cls, opts...)
	if err != nil {
		_ = cls.Close()
		return nil, nil, err
	}
	return ev, cls, nil
}

func runSingle(ctx context.Context, o options, opts []lpreval.Option, logger *slog.Logger) int {
	ev, cls, err := newEvaluator(o, o.model, opts, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer func() { _ = cls.Close() }()

	res, err := ev.Run(ctx, o.corpus)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error evaluating %s: %v\n", o.corpus, err)
		return 1
	}
	if !res.Pass() {
		return 1
	}
	return 0
}

func runModelComparison(ctx context.Context, o options, modelPaths []string, opts []lpreval.Option, logger *slog.Logger) int {
	fmt.Printf("Model Comparison (pass=%.1f%%)\n", o.pass)
	fmt.Println(strings.Repeat("-", 72))
	fmt.Printf("%-30s %-10s %-10s %-10s %-6s\n", "Model", "Full", "Segmented", "Chars", "Pass")

	status := 0
	quiet := append(opts[:len(opts):len(opts)], lpreval.WithOutput(io.Discard))
	for _, modelPath := range modelPaths {
		modelPath = strings.TrimSpace(modelPath)
		ev, cls, err := newEvaluator(o, modelPath, quiet, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error with %s: %v\n", modelPath, err)
			status = 1
			continue
		}

		res, err := ev.Run(ctx, o.corpus)
		_ = cls.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error with %s: %v\n", modelPath, err)
			status = 1
			if errors.Is(err, context.Canceled) {
				break
			}
			continue
		}

		s := res.Summary
		fmt.Printf("%-30s %-10.2f %-10.2f %-10.2f %-6v\n",
			modelPath, s.FullPlateAccuracy, s.SegmentedAccuracy, s.TruthCharAccuracy, s.Pass)
		if !s.Pass {
			status = 1
		}
	}
	return status
}
