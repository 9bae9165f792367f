package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/mmynk/tasklist/internal/client"
	"github.com/mmynk/tasklist/internal/config"
	"github.com/mmynk/tasklist/internal/session"
	"github.com/mmynk/tasklist/internal/tui"
	"github.com/mmynk/tasklist/pkg/logging"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default: user config dir)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "tasks:", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.LoadClient(configPath)
	if err != nil {
		return err
	}

	logOut, closeLog := openLog(cfg.LogFile)
	defer closeLog()
	logger := logging.SetupWriter(logOut, logging.ParseLevel(os.Getenv("LOG_LEVEL")), false)

	api, err := client.New(client.Config{BaseURL: cfg.BaseURL, Timeout: cfg.Timeout})
	if err != nil {
		return err
	}

	var tokens session.TokenStore = session.NewMemoryStore()
	if cfg.TokenFile != "" {
		tokens = session.NewFileStore(cfg.TokenFile)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting client", "base_url", cfg.BaseURL, "timeout", cfg.Timeout)
	sess := session.New(api, tokens, logger)
	if err := tui.Run(ctx, sess, logger); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// openLog opens the client log file. The terminal is owned by the UI, so
// when the file cannot be opened logs are dropped.
func openLog(path string) (io.Writer, func()) {
	if path == "" {
		return io.Discard, func() {}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return io.Discard, func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return io.Discard, func() {}
	}
	return f, func() { f.Close() }
}

