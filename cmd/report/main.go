// Command report prints the ordered profile listing and each profile's meal
// plan to stdout, then exits.
package main

import (
	"context"
	"log"
	"os"

	"github.com/mealmatch/backend/config"
	"github.com/mealmatch/backend/internal/app"
	"github.com/mealmatch/backend/internal/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()
	application, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize planner: %v", err)
	}
	defer application.Close()

	plans, err := application.Planner.Plans(ctx)
	if err != nil {
		log.Fatalf("Failed to generate plans: %v", err)
	}

	if err := report.Full(os.Stdout, plans); err != nil {
		log.Fatalf("Failed to write report: %v", err)
	}
}

func init() {
	// Diagnostics go to stderr so stdout carries only the report
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stderr)
}
