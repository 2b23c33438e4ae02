package main

import (
	"context"
	"log"

	"ai-coderagent-be/internal/bootstrap"
	"ai-coderagent-be/internal/config"
	"ai-coderagent-be/internal/server"
	"ai-coderagent-be/internal/tracer"
	"ai-coderagent-be/pkg/database"

	"gorm.io/gorm"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database (remote mode only)
	var gormDB *gorm.DB
	if cfg.Knowledge.Mode != "local" {
		var err error
		gormDB, err = database.NewGormDBFromDSN(cfg.Database.Connection)
		if err != nil {
			log.Panicf("Unable to connect to GORM DB: %v", err)
		}
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Initialize Server
	srv := server.New(cfg, container)

	// 5. Run Server
	log.Fatal(srv.Run())
}
