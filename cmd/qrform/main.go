package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/goliatone/go-qrform/internal/logging"
	"github.com/goliatone/go-qrform/pkg/config"
	"github.com/goliatone/go-qrform/pkg/render"
	"github.com/goliatone/go-qrform/pkg/renderers/qrpng"
	"github.com/goliatone/go-qrform/pkg/renderers/qrserver"
	"github.com/goliatone/go-qrform/pkg/renderers/quickchart"
	"github.com/goliatone/go-qrform/pkg/session"
	"github.com/goliatone/go-qrform/pkg/tui"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	outputDir := flag.String("output", "", "directory for exported images (overrides config)")
	sizePx := flag.Int("size", 0, "image size in pixels (overrides config)")
	verbose := flag.Bool("verbose", false, "log debug information to stderr")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}
	if *sizePx > 0 {
		cfg.SizePx = *sizePx
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := logging.NewTextLogger(level)

	chain, err := buildRenderer(cfg)
	if err != nil {
		log.Fatalf("build renderer chain: %v", err)
	}

	sess, err := session.New(chain,
		session.WithSizePx(cfg.SizePx),
		session.WithOutputDir(cfg.OutputDir),
		session.WithLogger(logger),
	)
	if err != nil {
		log.Fatalf("create session: %v", err)
	}

	flow, err := tui.New(sess, tui.WithLogger(logger))
	if err != nil {
		log.Fatalf("create form flow: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := flow.Run(ctx); err != nil {
		log.Fatalf("form flow: %v", err)
	}
}

func buildRenderer(cfg config.Config) (render.Renderer, error) {
	registry := render.NewRegistry()
	registry.MustRegister(qrpng.New())
	registry.MustRegister(qrserver.New())
	registry.MustRegister(quickchart.New())

	return render.FallbackFromRegistry(registry, cfg.Renderers...)
}
