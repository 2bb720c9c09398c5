package main

import (
	"context"
	"log"

	"insightlens/adapters/ingest"
	"insightlens/adapters/postgres"
	"insightlens/app"
	"insightlens/internal/config"
	"insightlens/internal/ops"
	"insightlens/internal/session"
	"insightlens/ports"
	"insightlens/ui"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	// .env is optional; real deployments use environment variables.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	gin.SetMode(cfg.Server.GinMode)

	var reports ports.ReportRepository
	if cfg.Database.URL != "" {
		db, err := sqlx.Connect("postgres", cfg.Database.URL)
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		if err := postgres.EnsureSchema(context.Background(), db); err != nil {
			log.Fatalf("failed to prepare database: %v", err)
		}
		reports = postgres.NewReportRepository(db)
		log.Println("report archive: postgres")
	} else {
		reports = session.NewMemoryReportStore()
		log.Println("report archive: in-memory")
	}

	service := app.NewAnalysisService(
		ingest.NewReader(cfg.Ingest.MaxRows),
		session.NewUploadStore(),
		reports,
		cfg.Validation,
	)

	if cfg.Ops.Enabled {
		go func() {
			if err := ops.Serve(":" + cfg.Ops.Port); err != nil {
				log.Printf("ops server stopped: %v", err)
			}
		}()
	}

	server := ui.NewServer(service, cfg.Ingest.MaxUploadSize)
	if err := server.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
