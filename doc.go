// Package lpreval measures the accuracy of a license plate OCR pipeline.
//
// An Evaluator walks a directory of reference images whose file names are the
// plate text (1234BCD.png), drives a plate Detector, a character Segmenter and
// a per-character Classifier on each image, and optionally a whole-plate
// PlateReader. Both predictions are scored with package score and folded into
// corpus totals that decide a pass/fail verdict.
//
// # Quick Start
//
//	ev, err := lpreval.New(detector, segmenter, classifier,
//	    lpreval.WithFullPlate(reader),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := ev.Run(ctx, "img/plates")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Pass: %v (segmented: %.2f%%)\n", res.Pass(), res.Summary.SegmentedAccuracy)
//
// # Verdict
//
// The corpus passes when at least 90% of the images are exact full-plate
// matches and at least 90% are exact segmented matches. Without a
// PlateReader the full-plate accuracy is 0 and the corpus fails.
//
// # Collaborators
//
// OpenCV implementations of Detector and Segmenter live in package vision, an
// ONNX Runtime Classifier in package recognize, and Tesseract and AWS
// Rekognition PlateReaders in package reader.
package lpreval
