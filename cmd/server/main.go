package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/baditaflorin/go_doc_similarity/internal/app"
	"github.com/baditaflorin/go_doc_similarity/internal/config"
)

// DefaultConcurrency of 0 means use GOMAXPROCS.
const DefaultConcurrency = 0

func main() {
	configPath := flag.String("config", "", "Configuration file path")
	addr := flag.String("addr", "", "Listen address (overrides server.addr)")
	concurrency := flag.Int("concurrency", DefaultConcurrency, "Maximum number of concurrent requests (0 = GOMAXPROCS)")
	warmUp := flag.Bool("warm-up", false, "Perform system warm-up on startup (overrides engine.warm_up)")
	flag.Parse()

	cfg, path, exists, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *warmUp {
		cfg.Engine.WarmUp = true
	}

	a, err := app.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	logger := a.Logger
	logger.Info("Starting similarity HTTP server",
		"config", path,
		"config_found", exists,
		"addr", cfg.Server.Addr,
		"max_body_bytes", cfg.Server.MaxBodyBytes,
		"concurrency", *concurrency,
		"history", cfg.History.Enabled,
		"cpus", runtime.NumCPU(),
	)

	srv := newServer(a)
	server := &fasthttp.Server{
		Handler:               srv.requestHandler,
		ReadTimeout:           time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout:          time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
		MaxRequestBodySize:    cfg.Server.MaxBodyBytes,
		Concurrency:           *concurrency,
		TCPKeepalive:          true,
		TCPKeepalivePeriod:    3 * time.Minute,
		MaxIdleWorkerDuration: 10 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		logger.Info("Shutting down server...")
		if err := server.Shutdown(); err != nil {
			logger.Error("Error during server shutdown", "error", err)
		}
		close(idleConnsClosed)
	}()

	logger.Info("Server listening", "address", cfg.Server.Addr)
	if err := server.ListenAndServe(cfg.Server.Addr); err != nil {
		logger.Error("Server error", "error", err)
		return
	}

	<-idleConnsClosed
	logger.Info("Server stopped")
}
