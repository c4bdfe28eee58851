// Command fieldsched extracts a structured field schedule from a PDF
// match programme (or an upstream JSON fragment document) and writes the
// result as JSON.
//
// Usage:
//
//	fieldsched -pdf programme.pdf
//	fieldsched -json programme.json -out schedule.json
//	fieldsched -url https://club.example/schedule -catalogue catalogue.yaml
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path"
	"time"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/tlindfors/fieldsched"
	"github.com/tlindfors/fieldsched/fetch"
)

type config struct {
	pdfPath       string
	jsonPath      string
	pageURL       string
	cataloguePath string
	outPath       string
	tolerance     float64
	pretty        bool
	debug         bool
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "fieldsched:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := parseFlags()

	logger, err := newLogger(cfg.debug)
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer logger.Sync()

	extractor, cleanup, err := buildExtractor(cfg, logger)
	if err != nil {
		return err
	}
	if cleanup != nil {
		defer cleanup()
	}

	sched, warnings, err := extractor.Schedule()
	if err != nil {
		return err
	}
	for _, w := range warnings {
		logger.Warn(w.Message, zap.Int("page", w.Page))
	}
	logger.Info("extracted schedule",
		zap.Int("games", sched.GameCount()),
		zap.Int("warnings", len(warnings)))

	return writeResult(cfg, sched)
}

func parseFlags() config {
	var cfg config
	flag.StringVar(&cfg.pdfPath, "pdf", "", "path to the programme PDF")
	flag.StringVar(&cfg.jsonPath, "json", "", "path to an upstream JSON fragment document")
	flag.StringVar(&cfg.pageURL, "url", "", "schedule page URL to discover and download the programme PDF from")
	flag.StringVar(&cfg.cataloguePath, "catalogue", "", "path to a YAML field catalogue (default: built-in)")
	flag.StringVar(&cfg.outPath, "out", "", "output file (default: stdout)")
	flag.Float64Var(&cfg.tolerance, "tolerance", 0, "line-grouping Y tolerance (default: per-source)")
	flag.BoolVar(&cfg.pretty, "pretty", true, "indent JSON output")
	flag.BoolVar(&cfg.debug, "debug", false, "enable debug logging")
	flag.Parse()
	return cfg
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

// buildExtractor selects the input source. Exactly one of -pdf, -json and
// -url must be set. The -url mode downloads the programme to a temporary
// file first; the returned cleanup removes it.
func buildExtractor(cfg config, logger *zap.Logger) (*fieldsched.Extractor, func(), error) {
	set := 0
	for _, s := range []string{cfg.pdfPath, cfg.jsonPath, cfg.pageURL} {
		if s != "" {
			set++
		}
	}
	if set != 1 {
		return nil, nil, errors.New("exactly one of -pdf, -json or -url is required")
	}

	var extractor *fieldsched.Extractor
	var cleanup func()

	switch {
	case cfg.pdfPath != "":
		extractor = fieldsched.Open(cfg.pdfPath)
	case cfg.jsonPath != "":
		extractor = fieldsched.FromJSON(cfg.jsonPath)
	default:
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		data, pdfURL, err := fetch.Programme(ctx, nil, cfg.pageURL)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("downloaded programme", zap.String("url", pdfURL), zap.Int("bytes", len(data)))
		tmp, err := os.CreateTemp("", "fieldsched-*-"+path.Base(pdfURL))
		if err != nil {
			return nil, nil, fmt.Errorf("create temp file: %w", err)
		}
		if _, err := tmp.Write(data); err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
			return nil, nil, fmt.Errorf("write temp file: %w", err)
		}
		tmp.Close()
		cleanup = func() { os.Remove(tmp.Name()) }
		extractor = fieldsched.Open(tmp.Name())
	}

	if cfg.cataloguePath != "" {
		extractor = extractor.CatalogueFile(cfg.cataloguePath)
	}
	if cfg.tolerance > 0 {
		extractor = extractor.Tolerance(cfg.tolerance)
	}
	return extractor.Logger(logger), cleanup, nil
}

func writeResult(cfg config, v any) error {
	var data []byte
	var err error
	if cfg.pretty {
		data, err = sonic.MarshalIndent(v, "", "  ")
	} else {
		data, err = sonic.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	data = append(data, '\n')

	if cfg.outPath == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(cfg.outPath, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", cfg.outPath, err)
	}
	return nil
}
