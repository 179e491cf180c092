package main

import (
	"context"
	"log"

	_ "github.com/dhima/job-alert-trigger/docs" // Import generated docs
	"github.com/dhima/job-alert-trigger/internal/api"
)

// @title Job Alert Trigger API
// @version 1.0
// @description Triggers the external multi-agent job alert workflow through its webhook and reports the classified outcome.
// @description
// @description ## Features
// @description - **Manual triggers**: validated alert parameters are posted to the workflow webhook
// @description - **Connection tests**: probe the saved or a candidate webhook URL before use
// @description - **Run history**: every trigger and probe is recorded with its status class and log lines
// @description
// @description ## Architecture
// @description This service is a trigger, not a processor. Scraping, relevance scoring, filtering and e-mail delivery belong to the external workflow.

// @contact.name API Support
// @contact.url https://github.com/dhima/job-alert-trigger

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

func main() {
	srv, err := api.NewServer(context.Background())
	if err != nil {
		log.Fatalf("api server setup failed: %v", err)
	}
	if err := srv.Serve(); err != nil {
		log.Fatalf("api server stopped: %v", err)
	}
}
