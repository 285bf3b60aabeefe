package lpreval

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mdobak/go-xerrors"

	"github.com/GabrielGausachs/PSIV-License-Plate-Detection/internal/corpus"
	"github.com/GabrielGausachs/PSIV-License-Plate-Detection/internal/report"
	"github.com/GabrielGausachs/PSIV-License-Plate-Detection/score"
)

// Evaluator scores a plate recognition pipeline against a labeled corpus.
// Images are processed one at a time; an Evaluator must not run
// concurrently with itself.
type Evaluator struct {
	detector   Detector
	segmenter  Segmenter
	classifier Classifier

	reader       PlateReader
	fullPlate    bool
	auxModel     any
	charAttempts int
	preview      PreviewSink
	imageTimeout time.Duration
	extensions   []string
	thresholds   score.Thresholds

	logger *slog.Logger
	report *report.Printer
}

// New creates an Evaluator driving the given collaborators.
func New(det Detector, seg Segmenter, cls Classifier, opts ...Option) (*Evaluator, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	switch {
	case det == nil:
		return nil, fmt.Errorf("%w: detector", ErrMissingCollaborator)
	case seg == nil:
		return nil, fmt.Errorf("%w: segmenter", ErrMissingCollaborator)
	case cls == nil:
		return nil, fmt.Errorf("%w: classifier", ErrMissingCollaborator)
	}

	return &Evaluator{
		detector:     det,
		segmenter:    seg,
		classifier:   cls,
		reader:       cfg.reader,
		fullPlate:    cfg.fullPlate,
		auxModel:     cfg.auxModel,
		charAttempts: cfg.charAttempts,
		preview:      cfg.preview,
		imageTimeout: cfg.imageTimeout,
		extensions:   cfg.extensions,
		thresholds:   cfg.thresholds,
		logger:       cfg.logger,
		report:       report.New(cfg.output),
	}, nil
}

// ImageResult is the evaluation of one corpus image.
type ImageResult struct {
	ID      string
	Path    string
	Score   score.Image
	Chars   []CharResult
	Failure *PerImageFailure
}

// Result is the outcome of a corpus run.
type Result struct {
	RunID   string
	Summary score.Summary
	Images  []ImageResult
	Skipped []string // images with an invalid ground truth
}

// Pass reports the corpus verdict.
func (r Result) Pass() bool {
	return r.Summary.Pass
}

// Validate runs the corpus and returns only the verdict.
func (e *Evaluator) Validate(ctx context.Context, dir string) (bool, error) {
	res, err := e.Run(ctx, dir)
	if err != nil {
		return false, err
	}
	return res.Pass(), nil
}

// Run evaluates every image of dir and returns the corpus result.
// Per-image failures are scored as worst case and do not stop the run.
// An unreadable or empty directory, or a cancelled context, aborts the run
// without a verdict.
func (e *Evaluator) Run(ctx context.Context, dir string) (Result, error) {
	res := Result{RunID: uuid.NewString()}
	log := e.logger.With(slog.String("run_id", res.RunID))

	cases, err := corpus.Load(dir, e.extensions)
	if err != nil {
		return Result{}, fmt.Errorf("loading corpus: %w", err)
	}
	if len(cases) == 0 {
		return Result{}, fmt.Errorf("%w: %s", ErrCorpusEmpty, dir)
	}
	log.InfoContext(ctx, "corpus loaded", slog.String("dir", dir), slog.Int("images", len(cases)))

	if e.fullPlate && e.reader == nil {
		log.WarnContext(ctx, "full plate predictions will be absent", slog.Any("error", ErrCollaboratorUnavailable))
	}

	var acc score.Accumulator
	for _, c := range cases {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		e.report.ImageHeader(c.ID)

		if c.Truth == "" {
			e.report.Failure(c.ID, ErrInvalidGroundTruth)
			log.ErrorContext(ctx, "skipping image", slog.String("image", c.ID), slog.Any("error", ErrInvalidGroundTruth))
			res.Skipped = append(res.Skipped, c.ID)
			continue
		}

		ir := e.evaluateImage(ctx, log, c)
		if ir.Failure != nil {
			acc.AddFailure(ir.Score)
		} else {
			acc.Add(ir.Score)
		}
		res.Images = append(res.Images, ir)
	}

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	summary, err := acc.Summary(e.thresholds)
	if err != nil {
		return Result{}, fmt.Errorf("%w: no scorable image in %s", err, dir)
	}
	res.Summary = summary

	e.report.Summary(summary)
	log.InfoContext(ctx, "evaluation finished",
		slog.Int("images", summary.Images),
		slog.Int("failed", summary.Failed),
		slog.Float64("full_plate_accuracy", summary.FullPlateAccuracy),
		slog.Float64("segmented_accuracy", summary.SegmentedAccuracy),
		slog.Bool("pass", summary.Pass),
	)

	return res, nil
}

// evaluateImage runs the collaborators on one image and scores the output.
func (e *Evaluator) evaluateImage(ctx context.Context, log *slog.Logger, c corpus.Case) ImageResult {
	ir := ImageResult{ID: c.ID, Path: c.Path}
	log = log.With(slog.String("image", c.ID))

	imgCtx := ctx
	if e.imageTimeout > 0 {
		var cancel context.CancelFunc
		imgCtx, cancel = context.WithTimeout(ctx, e.imageTimeout)
		defer cancel()
	}

	preds, plate, chars, failure := e.predict(imgCtx, log, c)
	// A collaborator that gave up on the image deadline reports a timeout,
	// whatever stage it was in.
	if imgCtx.Err() != nil && ctx.Err() == nil {
		if failure == nil {
			failure = &PerImageFailure{ID: c.ID, Err: imgCtx.Err()}
		}
		failure.Stage = StageTimeout
	}
	ir.Chars = chars
	ir.Failure = failure

	if failure != nil {
		// Whatever was produced past the deadline is not trusted.
		if failure.Stage == StageTimeout {
			preds = score.Predictions{}
		}
		e.report.Failure(c.ID, failure)
		log.ErrorContext(ctx, "image failed",
			slog.String("stage", string(failure.Stage)),
			slog.Any("error", xerrors.New(failure)),
		)
	}

	// Truth is non-empty here, so scoring cannot fail.
	img, _ := score.ScoreImage(c.Truth, preds)
	ir.Score = img

	if img.Mismatch {
		log.WarnContext(ctx, "prediction lengths differ",
			slog.String("full_plate", img.FullPlate.Prediction),
			slog.String("segmented", img.Segmented.Prediction),
			slog.Any("error", ErrLengthMismatch),
		)
	}

	e.report.Image(img)

	if e.preview != nil && plate != nil {
		id := strings.TrimSuffix(c.ID, filepath.Ext(c.ID))
		if err := e.preview.Preview(ctx, id, plate.Image); err != nil {
			log.WarnContext(ctx, "preview failed", slog.Any("error", err))
		}
	}

	return ir
}

// predict collects both predictions for one image.
// The returned plate is nil when detection failed.
func (e *Evaluator) predict(ctx context.Context, log *slog.Logger, c corpus.Case) (score.Predictions, *Plate, []CharResult, *PerImageFailure) {
	var preds score.Predictions

	plate, err := e.detector.DetectPlate(ctx, c.Path)
	if err != nil {
		return preds, nil, nil, &PerImageFailure{ID: c.ID, Stage: StageDetect, Err: err}
	}

	if e.fullPlate && e.reader != nil {
		text, err := e.reader.ReadPlate(ctx, plate.Image)
		if err != nil {
			log.WarnContext(ctx, "full plate recognition failed", slog.Any("error", err))
		} else {
			preds.FullPlate = text
			preds.HasFullPlate = true
		}
	}

	crops, err := e.segmenter.Segment(ctx, plate)
	if err != nil {
		return preds, &plate, nil, &PerImageFailure{ID: c.ID, Stage: StageSegment, Err: err}
	}

	chars := make([]CharResult, 0, len(crops))
	var segmented strings.Builder
	for i, crop := range crops {
		r := e.classify(ctx, crop, i)
		if r.Err != nil {
			log.WarnContext(ctx, "character slot left empty", slog.Int("slot", i), slog.Any("error", r.Err))
		}
		chars = append(chars, r)
		segmented.WriteString(strings.TrimSpace(r.Text))
	}
	preds.Segmented = segmented.String()

	return preds, &plate, chars, nil
}

// classify recognizes one slot. The first attempt carries the slot index,
// later attempts use the alternate request shape.
func (e *Evaluator) classify(ctx context.Context, crop image.Image, index int) CharResult {
	req := CharRequest{
		Image:   crop,
		Index:   index,
		Indexed: true,
		Model:   e.auxModel,
	}

	var errs []error
	for attempt := 1; attempt <= e.charAttempts; attempt++ {
		text, err := e.classifier.Classify(ctx, req)
		if err == nil {
			return CharResult{Text: text, Attempts: attempt}
		}
		errs = append(errs, err)
		if ctx.Err() != nil {
			break
		}
		req = req.Alternate()
	}

	return CharResult{
		Attempts: len(errs),
		Err:      fmt.Errorf("%w: slot %d: %w", ErrCharacterRecognition, index, errors.Join(errs...)),
	}
}
