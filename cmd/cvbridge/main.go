package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ironsheep/cvbridge/internal/bridge"
	"github.com/ironsheep/cvbridge/internal/config"
	"github.com/ironsheep/cvbridge/internal/logging"
	"github.com/ironsheep/cvbridge/internal/server"
	"github.com/ironsheep/cvbridge/internal/vision"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	cfg, err := config.Parse(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		printHelp()
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "cvbridge: %v\n", err)
		os.Exit(2)
	}

	if cfg.ShowVersion {
		fmt.Printf("cvbridge %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
		fmt.Printf("  Backend:    %s\n", vision.Backend)
		return
	}

	// Log to stderr; stdout carries the protocol
	log := logging.New(os.Stderr, cfg.Log)
	log.Debug().
		Str("version", Version).
		Str("build_time", BuildTime).
		Str("commit", GitCommit).
		Str("backend", vision.Backend).
		Msg("starting cvbridge")

	opts, err := cfg.BridgeOptions(log)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	b := bridge.New(opts)
	defer b.Close()

	srv := server.New(b, log)
	srv.Version = Version

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpDone := make(chan struct{})
	if cfg.HTTPAddr != "" {
		go func() {
			defer close(httpDone)
			if err := srv.ListenHTTP(ctx, cfg.HTTPAddr); err != nil {
				log.Error().Err(err).Msg("http api stopped")
			}
		}()
	} else {
		close(httpDone)
	}

	err = srv.Run(ctx)
	stop()
	<-httpDone

	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("server error")
	}
	log.Debug().Msg("cvbridge stopped")
}

func printHelp() {
	fmt.Println("cvbridge - image operations over JSON-RPC (stdio) and HTTP")
	fmt.Println()
	fmt.Println("Usage: cvbridge [options]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v          Print version information")
	fmt.Println("  --help, -h             Print this help message")
	fmt.Println("  --http <addr>          Also serve the HTTP API on addr (e.g. :8080)")
	fmt.Println("  --log.level <level>    debug|info|warn|error")
	fmt.Println("  --log.format <format>  json|console")
	fmt.Println("  --output.dir <dir>     Where to create outputs for calls with an empty path")
	fmt.Println("  --overlay.color <hex>  Contour fill color, default #00FF00")
	fmt.Println("  --combine.size <WxH>   Combine overlay size, default 170x510")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  CVBRIDGE_LOG_LEVEL, CVBRIDGE_LOG_FORMAT, CVBRIDGE_HTTP_ADDR,")
	fmt.Println("  CVBRIDGE_OUTPUT_DIR, CVBRIDGE_OVERLAY_COLOR, CVBRIDGE_COMBINE_SIZE")
	fmt.Println()
	fmt.Println("JSON-RPC requests are read from stdin, one per line; responses go to stdout.")
}
