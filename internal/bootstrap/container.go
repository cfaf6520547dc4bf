package bootstrap

import (
	"context"
	"log"

	"ai-resumelab-be/internal/config"
	"ai-resumelab-be/internal/controller"
	"ai-resumelab-be/internal/handler"
	"ai-resumelab-be/internal/pkg/logger"
	"ai-resumelab-be/internal/pkg/mailer"
	"ai-resumelab-be/internal/repository/contract"
	"ai-resumelab-be/internal/repository/implementation"
	"ai-resumelab-be/internal/repository/memory"
	"ai-resumelab-be/internal/service"
	"ai-resumelab-be/internal/websocket"
	"ai-resumelab-be/pkg/gro"
	"ai-resumelab-be/pkg/templates"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// notificationTopic is the in-process event bus topic carrying resume
// workflow events from services to the websocket fan-out worker.
const notificationTopic = "resume.notifications"

type Container struct {
	// Controllers
	ChatController      controller.IChatController
	ResumeController    controller.IResumeController
	MetricsController   controller.IMetricsController
	SubscribeController controller.ISubscribeController

	// Background Services (Exposed for main.go to run)
	NotificationService service.INotificationService

	// Exposed for the uid middleware
	VisitorService service.IVisitorService

	// WebSockets
	WsHandler    *handler.WsHandler
	WebSocketHub *websocket.Hub
}

// NewContainer wires the application graph. db may be nil, in which case
// visitor and subscriber data live in memory only.
func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	var emailService mailer.IEmailService
	if cfg.SMTP.Host != "" {
		emailService = mailer.NewEmailService(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Email,
			cfg.SMTP.Password,
			cfg.SMTP.SenderName,
		)
	} else {
		log.Println("[WARN] SMTP not configured, welcome emails disabled")
	}

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// Redis (optional, relays websocket pushes across instances)
	var rdb *redis.Client
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.App.RedisURL,
			}
		}
		rdb = redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
	}

	// Repositories
	var visitorRepo contract.VisitorRepository
	var subscriberRepo contract.SubscriberRepository
	if db != nil {
		visitorRepo = implementation.NewVisitorRepository(db)
		subscriberRepo = implementation.NewSubscriberRepository(db)
	} else {
		log.Println("[WARN] Database not configured, visitor and subscriber data are in-memory")
		visitorRepo = memory.NewVisitorRepository()
		subscriberRepo = memory.NewSubscriberRepository()
	}
	sessionRepo := memory.NewSessionRepository()

	// 3. Services
	generator := gro.New(cfg.Gro.BaseURL, cfg.Gro.APIKey, cfg.Gro.Model, cfg.Gro.Mock)
	if cfg.Gro.Mock || cfg.Gro.APIKey == "" {
		log.Println("[INFO] Using Gro generation backend: MOCK (deterministic local editor)")
	} else {
		log.Printf("[INFO] Using Gro generation backend: %s (%s)", cfg.Gro.BaseURL, cfg.Gro.Model)
	}
	templateLoader := templates.NewLoader(cfg.App.TemplatesDir)

	publisherService := service.NewPublisherService(pubSub, notificationTopic)
	visitorService := service.NewVisitorService(visitorRepo, sysLogger)
	subscribeService := service.NewSubscribeService(subscriberRepo, emailService, sysLogger)
	resumeService := service.NewResumeService(
		sessionRepo,
		generator,
		templateLoader,
		publisherService,
		sysLogger,
	)

	// 3.5 WebSocket Hub + Notification Worker
	wsLogger := logger.NewIsolatedLogger(cfg.App.WsLogFilePath)
	wsHub := websocket.NewHub(rdb, visitorService, wsLogger)
	go wsHub.Run()

	notifService := service.NewNotificationService(pubSub, notificationTopic, wsHub, wsLogger)
	wsHandler := handler.NewWsHandler(resumeService, publisherService, wsHub, wsLogger)

	// 4. Controllers
	return &Container{
		ChatController:      controller.NewChatController(resumeService),
		ResumeController:    controller.NewResumeController(resumeService),
		MetricsController:   controller.NewMetricsController(visitorService),
		SubscribeController: controller.NewSubscribeController(subscribeService),

		NotificationService: notifService,
		VisitorService:      visitorService,

		WsHandler:    wsHandler,
		WebSocketHub: wsHub,
	}
}
