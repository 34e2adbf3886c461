// Command morfessor trains and applies an unsupervised morphological
// segmenter over a word-frequency corpus.
//
//	morfessor train   -corpus words.txt -model-store model.db
//	morfessor segment -model-store model.db word1 word2 ...
//	morfessor serve   -model-store model.db -addr :8080
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "morfessor",
		Usage: "unsupervised minimum-description-length morphological segmentation",
		Commands: []*cli.Command{
			cmdTrain,
			cmdSegment,
			cmdServe,
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("command failed", "error", err)
		fmt.Fprintf(os.Stderr, "morfessor: %v\n", err)
		os.Exit(1)
	}
}
