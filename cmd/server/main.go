/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the Labor Analytics Engine server.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags
  2. Resolve the business rule set (preset or config file)
  3. Initialize SQLite store
  4. Create API handler with dependencies
  5. Configure HTTP router
  6. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port     HTTP server port (default: 8080)
  -db       SQLite database path (default: labor.db)
            Use ":memory:" for in-memory database
  -rules    Named rule preset (default: standard)
  -config   Path to a rules JSON file; overrides -rules
  -monitor-interval
            Alert monitor sweep interval (default: 1h; 0 disables)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database connection
  4. Exit

EXAMPLES:
  # Run with file database
  ./server -db="./data/labor.db"

  # Run with in-memory database and a flat-eight-hour rule set
  ./server -db=":memory:" -rules=eight-hour-flat

  # Run with custom rules
  ./server -config=./rules.json

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
  - factory/rules.go: Rule presets and JSON config
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/warp/labor-analytics/api"
	"github.com/warp/labor-analytics/engine"
	"github.com/warp/labor-analytics/factory"
	"github.com/warp/labor-analytics/refdata"
	"github.com/warp/labor-analytics/store/sqlite"
)

func main() {
	// Flags
	port := flag.Int("port", 8080, "HTTP server port")
	dbPath := flag.String("db", "labor.db", "SQLite database path")
	rulesPreset := flag.String("rules", "standard", fmt.Sprintf("Rule preset (%s)", strings.Join(factory.PresetNames(), ", ")))
	configPath := flag.String("config", "", "Rules JSON file; overrides -rules")
	monitorInterval := flag.Duration("monitor-interval", time.Hour, "Alert monitor sweep interval (0 disables)")
	flag.Parse()

	// Resolve rules
	rules, err := resolveRules(*rulesPreset, *configPath)
	if err != nil {
		log.Fatalf("Failed to resolve rules: %v", err)
	}

	// Initialize store
	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	// Initialize handler
	handler := api.NewHandler(store, rules, refdata.Default())

	// Background alert monitor
	if *monitorInterval > 0 {
		monitor := api.NewAlertMonitor(store, rules)
		monitor.CheckInterval = *monitorInterval
		monitor.Start()
		defer monitor.Stop()
		handler.Monitor = monitor
	}

	// Create router
	router := api.NewRouter(handler)

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on http://localhost:%d", *port)
		log.Printf("📊 API available at http://localhost:%d/api", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}

func resolveRules(preset, configPath string) (engine.Rules, error) {
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return engine.Rules{}, err
		}
		return factory.ParseRules(data)
	}
	return factory.Preset(preset)
}
