package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-formkit/pkg/config"
	"github.com/goliatone/go-formkit/pkg/definition"
	"github.com/goliatone/go-formkit/pkg/diag"
	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/orchestrator"
	"github.com/goliatone/go-formkit/pkg/preview"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/renderers/html"
	"github.com/goliatone/go-formkit/pkg/renderers/tui"
)

func main() {
	configPath := flag.String("config", "", "configuration file (yaml, json or toml)")
	formName := flag.String("form", "", "definition to render")
	mode := flag.String("mode", "create", "page mode: create or update")
	rendererName := flag.String("renderer", html.Name, "renderer to use: html or tui")
	valuesPath := flag.String("values", "", "JSON file with prefill values")
	format := flag.String("format", string(tui.OutputFormatJSON), "tui output format: json, form or pretty")
	output := flag.String("output", "", "output file (stdout if empty)")
	serve := flag.Bool("serve", false, "serve HTML previews instead of rendering once")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger, err := newLogger(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, cliOptions{
		form:     *formName,
		mode:     *mode,
		renderer: *rendererName,
		values:   *valuesPath,
		format:   tui.OutputFormat(*format),
		output:   *output,
		serve:    *serve,
	}); err != nil {
		logger.Error("formkit failed", zap.Error(err))
		stop()
		os.Exit(1)
	}
}

type cliOptions struct {
	form     string
	mode     string
	renderer string
	values   string
	format   tui.OutputFormat
	output   string
	serve    bool
}

func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := cfg.ZapLevel()
	if err != nil {
		return nil, err
	}
	zcfg := zap.NewDevelopmentConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.OutputPaths = []string{"stderr"}
	return zcfg.Build()
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger, opts cliOptions) error {
	sink := diag.NewZapSink(logger)

	forms, err := definition.Load(os.DirFS(cfg.Definitions.Dir))
	if err != nil {
		return err
	}
	logger.Debug("definitions loaded", zap.String("dir", cfg.Definitions.Dir), zap.Strings("forms", forms.Names()))

	base := cfg.Render.Options()
	base.Diagnostics = sink

	htmlRenderer, err := html.New(html.WithDiagnostics(sink))
	if err != nil {
		return err
	}

	if opts.serve {
		return servePreview(ctx, cfg.Preview.Addr, logger, preview.NewHandler(forms, htmlRenderer,
			preview.WithRenderOptions(base),
			preview.WithDiagnostics(sink),
		))
	}

	if opts.form == "" {
		return errors.New("formkit: -form is required unless -serve is set")
	}
	page, err := pageFor(opts.mode)
	if err != nil {
		return err
	}
	values, err := readValues(opts.values)
	if err != nil {
		return err
	}

	tuiRenderer, err := tui.New(tui.WithOutputFormat(opts.format), tui.WithDiagnostics(sink))
	if err != nil {
		return err
	}
	registry, err := render.NewRegistry(htmlRenderer, tuiRenderer)
	if err != nil {
		return err
	}

	gen := orchestrator.New(
		orchestrator.WithRegistry(registry),
		orchestrator.WithForms(forms),
		orchestrator.WithRenderOptions(base),
	)
	out, err := gen.Generate(ctx, orchestrator.Request{
		Form:     opts.form,
		Renderer: opts.renderer,
		Page:     page,
		Values:   values,
	})
	if err != nil {
		return err
	}

	if opts.output != "" {
		if err := os.WriteFile(opts.output, out, 0o644); err != nil {
			return fmt.Errorf("formkit: write output: %w", err)
		}
		logger.Info("form written", zap.String("path", opts.output))
		return nil
	}
	_, err = os.Stdout.Write(out)
	return err
}

func pageFor(mode string) (model.PageContext, error) {
	switch mode {
	case "", "create":
		return model.PageContext{Created: true}, nil
	case "update":
		return model.PageContext{Updated: true}, nil
	default:
		return model.PageContext{}, fmt.Errorf("formkit: unknown mode %q", mode)
	}
}

func readValues(path string) (map[string]any, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("formkit: read values: %w", err)
	}
	var values map[string]any
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("formkit: parse values: %w", err)
	}
	return values, nil
}

func servePreview(ctx context.Context, addr string, logger *zap.Logger, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("preview server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
