package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/pkgpilot/pkgpilot-mcp/internal/llm"
	"github.com/pkgpilot/pkgpilot-mcp/internal/logging"
	"github.com/pkgpilot/pkgpilot-mcp/internal/mcp"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	// Handle version flag
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		fmt.Printf("pkgpilot MCP Server\n")
		fmt.Printf("Version: %s\n", version)
		fmt.Printf("Build Time: %s\n", buildTime)
		os.Exit(0)
	}

	// Best-effort env file; real env always wins
	_ = godotenv.Load()

	// All logging goes to stderr (stdout reserved for MCP protocol)
	if err := logging.Initialize(os.Getenv("PKGPILOT_DEBUG") != ""); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logging: %v\n", err)
		os.Exit(1)
	}
	defer logging.Sync()
	log := logging.Logger

	log.Infow("pkgpilot MCP server starting", "version", version)
	if llm.Disabled() {
		log.Info("AI rescoring opted out via " + llm.EnvDisableAI)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	server, err := mcp.NewServer(ctx, log)
	if err != nil {
		log.Fatalw("failed to create MCP server", "error", err)
	}

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Start server in a goroutine
	errChan := make(chan error, 1)
	go func() {
		log.Info("MCP server ready, listening on stdio")
		errChan <- server.Serve(ctx)
	}()

	// Wait for shutdown signal or error
	select {
	case sig := <-sigChan:
		log.Infow("received signal, shutting down", "signal", sig.String())
		cancel()
	case err := <-errChan:
		if err != nil {
			log.Fatalw("server error", "error", err)
		}
	}

	log.Info("server stopped")
}
