// Command demo-bot runs a simulated bot against a coordinator: it
// registers itself, polls for commands, pretends to execute them, and
// clears its queue.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/botfleet/coordinator/botclient"
	"github.com/botfleet/coordinator/domain"
)

func main() {
	serverURL := flag.String("server", "http://localhost:8080", "coordinator base URL")
	botID := flag.String("id", "bot_001", "bot identifier")
	name := flag.String("name", "Demo Bot", "bot display name")
	interval := flag.Duration("interval", 5*time.Second, "poll interval")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := botclient.New(*serverURL)
	attrs := map[string]interface{}{
		"name":         *name,
		"version":      "1.0.0",
		"status":       "active",
		"capabilities": []string{"monitoring", "file_operations", "system_info"},
	}

	log.Printf("Bot %s polling %s every %s", *botID, *serverURL, *interval)

	err := client.Run(ctx, *botID, attrs, *interval, execute)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("Bot stopped: %v", err)
	}

	// Best-effort cleanup on shutdown.
	cleanupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Unregister(cleanupCtx, *botID); err != nil {
		log.Printf("WARN: failed to unregister: %v", err)
	}
	log.Printf("Bot %s stopped", *botID)
}

// execute simulates command execution.
func execute(ctx context.Context, entry domain.CommandEntry) error {
	log.Printf("Executing %s (%s) params=%s", entry.Command, entry.CommandID, formatParams(entry.Params))

	switch entry.Command {
	case "status_check":
		log.Printf("  status: running normally")
	case "start_monitoring":
		log.Printf("  monitoring started (interval=%s, target=%s)",
			formatParam(entry.Params, "interval", "60"),
			formatParam(entry.Params, "target", "default"))
	case "update_config":
		log.Printf("  log level set to %s", formatParam(entry.Params, "log_level", "INFO"))
	case "get_system_info":
		log.Printf("  system info: CPU: 45%%, Memory: 62%%, Disk: 78%%")
	case "restart":
		log.Printf("  restarting (simulated)...")
		time.Sleep(time.Second)
	default:
		log.Printf("  unknown command, ignoring")
	}
	return nil
}

func formatParams(params domain.Attrs) string {
	if len(params) == 0 {
		return "{}"
	}
	data, err := json.Marshal(params)
	if err != nil {
		return "{}"
	}
	return string(data)
}

func formatParam(params domain.Attrs, key, fallback string) string {
	raw, ok := params[key]
	if !ok {
		return fallback
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
