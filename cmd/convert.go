// Package cmd: convert command.
// This command orchestrates the pipeline for every input:
// fetch → parse → extract → normalize → render → write.
package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/gaurav-prasanna/htmlmd/core"
	"github.com/gaurav-prasanna/htmlmd/core/convert"
	"github.com/gaurav-prasanna/htmlmd/core/extract"
	"github.com/gaurav-prasanna/htmlmd/core/fetch"
	"github.com/gaurav-prasanna/htmlmd/core/normalize"
	"github.com/gaurav-prasanna/htmlmd/core/output"
	"github.com/gaurav-prasanna/htmlmd/core/parse"
	"github.com/gaurav-prasanna/htmlmd/core/render"
	"github.com/gaurav-prasanna/htmlmd/internal/config"
)

func newConvertCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "convert [input...]",
		Short: "Convert HTML inputs to Markdown, JSON or PDF",
		Long: `Convert reads each input, parses it as HTML, optionally narrows it to the
main content, converts it to Markdown and renders the selected format.

Examples:
  htmlmd convert welcome.html
  curl -s https://example.com | htmlmd convert -
  htmlmd convert https://example.com --format json
  htmlmd convert mail/*.html --output-dir ./out --jobs 8 --strip-tracking-images`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, v, args)
		},
	}
}

// pipeline holds the stages shared by every input of one run.
type pipeline struct {
	fetcher    core.Fetcher
	extractor  core.Extractor
	normalizer core.Normalizer
	renderer   core.Renderer
	writer     *output.Writer
}

func runConvert(cmd *cobra.Command, v *viper.Viper, args []string) error {
	if len(args) == 0 {
		args = []string{core.StdinSource}
	}
	outputDir := v.GetString("output_dir")
	if len(args) > 1 && outputDir == "" {
		return fmt.Errorf("%d inputs given: --output-dir is required for more than one input", len(args))
	}

	opts, err := config.ConverterOptions(v)
	if err != nil {
		return err
	}
	conv, err := convert.New(opts...)
	if err != nil {
		return err
	}

	renderer, err := selectRenderer(v.GetString("format"))
	if err != nil {
		return err
	}

	fetcher := fetch.New()
	fetcher.Stdin = cmd.InOrStdin()

	writer, err := output.New(outputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}
	writer.Stdout = cmd.OutOrStdout()

	p := &pipeline{
		fetcher:    fetcher,
		extractor:  extract.New(v.GetBool("main_content")),
		normalizer: normalize.New(conv),
		renderer:   renderer,
		writer:     writer,
	}

	if len(args) == 1 {
		_, err := p.run(cmd.Context(), args[0])
		return err
	}
	return p.runAll(cmd.Context(), args, v.GetInt("jobs"), cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// runAll processes inputs concurrently, at most jobs at a time. Every input is
// attempted; failures are reported as they happen and summarized at the end.
func (p *pipeline) runAll(ctx context.Context, sources []string, jobs int, stdout, stderr io.Writer) error {
	var (
		g      errgroup.Group
		failed atomic.Int32
	)
	g.SetLimit(jobs)

	for _, source := range sources {
		g.Go(func() error {
			path, err := p.run(ctx, source)
			if err != nil {
				failed.Add(1)
				fmt.Fprintf(stderr, "✗ %s: %v\n", source, err)
				return err
			}
			fmt.Fprintf(stdout, "✓ Written: %s\n", path)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("%d/%d inputs failed", failed.Load(), len(sources))
	}
	return nil
}

// run pushes a single source through the full pipeline and returns the path
// written, or "" for stdout.
func (p *pipeline) run(ctx context.Context, source string) (string, error) {
	log := logrus.WithField("source", source)

	// 1. Fetch
	start := time.Now()
	result, err := p.fetcher.Fetch(ctx, source)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	log.WithFields(logrus.Fields{"stage": "fetch", "bytes": len(result.Body), "duration": time.Since(start)}).Debug("stage done")

	// 2. Parse
	start = time.Now()
	doc, err := parse.Bytes(result.Body, result.ContentType)
	if err != nil {
		return "", fmt.Errorf("parse: %w", err)
	}
	log.WithFields(logrus.Fields{"stage": "parse", "duration": time.Since(start)}).Debug("stage done")

	// 3. Extract the conversion root and metadata
	extraction, err := p.extractor.Extract(doc)
	if err != nil {
		return "", fmt.Errorf("extract: %w", err)
	}

	// 4. Normalize to Markdown
	start = time.Now()
	markdown := p.normalizer.Normalize(extraction.Root)
	log.WithFields(logrus.Fields{"stage": "normalize", "bytes": len(markdown), "duration": time.Since(start)}).Debug("stage done")

	// 5. Render to output format
	meta := core.DocumentMetadata{
		Source:      result.Source,
		Title:       extraction.Title,
		Language:    extraction.Language,
		ConvertedAt: time.Now().UTC().Format(time.RFC3339),
	}
	data, err := p.renderer.Render(markdown, meta)
	if err != nil {
		return "", fmt.Errorf("render: %w", err)
	}

	// 6. Write
	path, err := p.writer.Write(result.Source, data, p.renderer.Extension())
	if err != nil {
		return "", fmt.Errorf("write: %w", err)
	}
	return path, nil
}

// selectRenderer creates the Renderer for the configured format.
func selectRenderer(format string) (core.Renderer, error) {
	switch strings.ToLower(format) {
	case "md":
		return render.NewMarkdownRenderer(), nil
	case "json":
		return render.NewJSONRenderer(), nil
	case "pdf":
		return render.NewPDFRenderer(), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want one of %s)", format, strings.Join(config.Formats, ", "))
	}
}
