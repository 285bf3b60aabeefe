// Command plate-score scores one recognizer output against a plate's ground
// truth and prints the same block plate-eval prints per image.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/GabrielGausachs/PSIV-License-Plate-Detection/internal/report"
	"github.com/GabrielGausachs/PSIV-License-Plate-Detection/score"
)

func main() {
	full := flag.String("full", "", "Whole-plate prediction, if any")
	flag.Parse()

	if flag.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Usage: plate-score [-full PREDICTION] TRUTH SEGMENTED")
		flag.PrintDefaults()
		os.Exit(1)
	}

	preds := score.Predictions{
		Segmented:    flag.Arg(1),
		FullPlate:    *full,
		HasFullPlate: *full != "",
	}

	img, err := score.ScoreImage(flag.Arg(0), preds)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	report.New(os.Stdout).Image(img)

	if img.Segmented.Verdict() != score.Correct {
		os.Exit(1)
	}
}
