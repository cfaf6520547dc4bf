package main

import (
	"context"
	"log"

	"ai-resumelab-be/internal/bootstrap"
	"ai-resumelab-be/internal/config"
	"ai-resumelab-be/internal/entity"
	"ai-resumelab-be/internal/server"
	"ai-resumelab-be/internal/tracer"
	"ai-resumelab-be/pkg/database"

	"gorm.io/gorm"
)

func main() {
	// 0. Initialize Tracer
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database (optional)
	var gormDB *gorm.DB
	if cfg.Database.Connection != "" {
		db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
		if err != nil {
			log.Panicf("Unable to connect to GORM DB: %v", err)
		}
		if err := db.AutoMigrate(&entity.VisitorLog{}, &entity.Subscriber{}); err != nil {
			log.Panicf("Unable to migrate schema: %v", err)
		}
		gormDB = db
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Services
	// Note: In a larger app, we might use an errgroup or supervisor here
	go func() {
		log.Println("Background: Starting Notification Service...")
		if err := container.NotificationService.Consume(context.Background()); err != nil {
			log.Printf("Background Notification Error: %v", err)
		}
	}()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
