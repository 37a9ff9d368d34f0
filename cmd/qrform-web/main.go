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
	"github.com/goliatone/go-qrform/pkg/web"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	addr := flag.String("addr", "", "listen address (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *addr != "" {
		cfg.ListenAddr = *addr
	}

	logger := logging.NewTextLogger(slog.LevelInfo)

	registry := render.NewRegistry()
	registry.MustRegister(qrpng.New())
	registry.MustRegister(qrserver.New())
	registry.MustRegister(quickchart.New())

	chain, err := render.FallbackFromRegistry(registry, cfg.Renderers...)
	if err != nil {
		log.Fatalf("build renderer chain: %v", err)
	}

	server, err := web.New(chain,
		web.WithAddr(cfg.ListenAddr),
		web.WithSizePx(cfg.SizePx),
		web.WithSVGRenderer(qrserver.New(qrserver.WithFormat(qrserver.FormatSVG))),
		web.WithLogger(logger),
	)
	if err != nil {
		log.Fatalf("create server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		log.Fatalf("serve: %v", err)
	}
}
