package main

import (
	"log"
	"os"

	"github.com/ethanbaker/meetup-seed/pkg/eventlog"
	"github.com/ethanbaker/meetup-seed/pkg/sqlgen"
	"github.com/ethanbaker/meetup-seed/pkg/utils"
	"github.com/samber/lo"
)

func main() {
	// Load configuration, falling back to the compiled-in parameters
	cfg := utils.NewConfigFromEnv(".env")

	params, err := eventlog.ParamsFromConfig(cfg)
	if err != nil {
		log.Fatalf("[GEN-DATA]: Failed to load parameters: %v", err)
	}

	log.Printf("[GEN-DATA]: Generating %d sessions of %d-%d events into %s.%s",
		params.SessionCount, params.MinEventsPerSession, params.MaxEventsPerSession, params.Schema, params.Table)

	// Build the timestamp-ordered event log
	events := eventlog.NewGenerator(params).GenerateEvents()

	// Print the seed script to stdout
	renderer := sqlgen.NewRenderer(params.Schema, params.Table)
	if err := renderer.Render(os.Stdout, events); err != nil {
		log.Fatalf("[GEN-DATA]: Failed to write SQL: %v", err)
	}

	sessions := lo.UniqBy(events, func(e eventlog.Event) string {
		return e.SessionID.String()
	})
	log.Printf("[GEN-DATA]: Wrote %d events across %d sessions", len(events), len(sessions))
}
