package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/r0ller/morfessor/decode"
	"github.com/r0ller/morfessor/output"
	"github.com/r0ller/morfessor/store"
)

var cmdSegment = &cli.Command{
	Name:      "segment",
	Usage:     "segment words against a previously trained model",
	ArgsUsage: "[word ...]",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "model-store", Required: true, Usage: "badger directory holding the trained model"},
		&cli.StringFlag{Name: "model-name", Value: "default", Usage: "name the model was saved under"},
		&cli.StringFlag{Name: "words", Usage: "file of newline-separated words to segment, read in addition to any positional arguments"},
		&cli.IntFlag{Name: "concurrency", Usage: "bound on concurrent word decodes (0 means unbounded)"},
	},
	Action: runSegment,
}

func runSegment(c *cli.Context) error {
	words := append([]string{}, c.Args().Slice()...)
	if path := c.String("words"); path != "" {
		fromFile, err := readWordsFile(path)
		if err != nil {
			return fmt.Errorf("read words file: %w", err)
		}
		words = append(words, fromFile...)
	}
	if len(words) == 0 {
		return fmt.Errorf("no words given: pass them as arguments or with -words")
	}

	s, err := store.Open(c.String("model-store"))
	if err != nil {
		return fmt.Errorf("open model store: %w", err)
	}
	defer s.Close()

	t, model, err := s.Load(c.String("model-name"))
	if err != nil {
		return fmt.Errorf("load model: %w", err)
	}
	slog.Info("model loaded",
		"name", c.String("model-name"),
		"trained_at", model.TrainedAt,
		"overall_cost", model.OverallCost)

	results, err := decode.SegmentAll(context.Background(), t, words, c.Int("concurrency"))
	if err != nil {
		return fmt.Errorf("segment: %w", err)
	}

	segs := make([]string, len(results))
	for i, r := range results {
		segs[i] = strings.Join(r.Morphs, " ")
	}
	return output.WriteSegmentations(os.Stdout, segs)
}

func readWordsFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		word := scanner.Text()
		if word == "" {
			continue
		}
		words = append(words, word)
	}
	return words, scanner.Err()
}
