package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"

	"github.com/r0ller/morfessor/corpus"
	"github.com/r0ller/morfessor/morfessorcfg"
	"github.com/r0ller/morfessor/optimize"
	"github.com/r0ller/morfessor/output"
	"github.com/r0ller/morfessor/store"
	"github.com/r0ller/morfessor/trainmetrics"
	"github.com/r0ller/morfessor/tree"
)

var cmdTrain = &cli.Command{
	Name:  "train",
	Usage: "train a segmentation lexicon from a word-frequency corpus",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "corpus", Required: true, Usage: "path to a `count word` frequency file"},
		&cli.StringFlag{Name: "config", Usage: "path to a morfessorcfg YAML file (defaults to morfessorcfg.Default())"},
		&cli.StringFlag{Name: "model-store", Usage: "badger directory to persist the trained model to"},
		&cli.StringFlag{Name: "model-name", Value: "default", Usage: "name the model is saved under in -model-store"},
		&cli.StringFlag{Name: "output", Usage: "write the plain-text lexicon here (defaults to stdout)"},
		&cli.StringFlag{Name: "dot", Usage: "also write a DOT graph of the segmentation tree here"},
		&cli.BoolFlag{Name: "metrics", Usage: "record per-pass training metrics to Prometheus"},
	},
	Action: runTrain,
}

func runTrain(c *cli.Context) error {
	cfg := morfessorcfg.Default()
	if path := c.String("config"); path != "" {
		loaded, err := morfessorcfg.LoadYAMLFile(path)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	entries, err := corpus.LoadFile(c.String("corpus"))
	if err != nil {
		return fmt.Errorf("load corpus: %w", err)
	}
	slog.Info("loaded corpus", "words", len(entries))

	t := tree.New(cfg.Mode(), cfg.Params())
	for _, e := range entries {
		if err := t.Initialize(e.Word, e.Frequency); err != nil {
			return fmt.Errorf("initialize %q: %w", e.Word, err)
		}
	}

	metrics := trainmetrics.Noop()
	if c.Bool("metrics") {
		// A one-shot training run owns a private registry; there is no
		// long-lived process here to scrape it from, unlike the serve
		// subcommand's /metrics route.
		metrics = trainmetrics.NewPrometheus(prometheus.NewRegistry())
	}

	opt := optimize.New(optimize.Config{
		ConvergenceThreshold: cfg.ConvergenceThreshold,
		Seed:                 cfg.Seed,
		MaxPasses:            cfg.MaxPasses,
		Metrics:              metrics,
	})

	passes, err := opt.Run(t)
	if err != nil {
		return fmt.Errorf("optimize: %w", err)
	}
	slog.Info("training converged",
		"passes", passes,
		"overall_cost", t.Model().OverallCost(),
		"lexicon_size", t.Size())

	out := os.Stdout
	if path := c.String("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}
	if err := output.WritePlain(out, t); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	if path := c.String("dot"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create dot output: %w", err)
		}
		defer f.Close()
		if err := output.WriteDOT(f, t); err != nil {
			return fmt.Errorf("write dot output: %w", err)
		}
	}

	if dir := c.String("model-store"); dir != "" {
		s, err := store.Open(dir)
		if err != nil {
			return fmt.Errorf("open model store: %w", err)
		}
		defer s.Close()
		if err := s.Save(c.String("model-name"), cfg, t, time.Now()); err != nil {
			return fmt.Errorf("save model: %w", err)
		}
		slog.Info("model saved", "store", dir, "name", c.String("model-name"))
	}

	return nil
}
