package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/pcist/pcist-backend/internal/api"
	v1 "github.com/pcist/pcist-backend/internal/api/v1"
	"github.com/pcist/pcist-backend/internal/compositor"
	"github.com/pcist/pcist-backend/internal/config"
	"github.com/pcist/pcist-backend/internal/email"
	"github.com/pcist/pcist-backend/internal/httpclient"
	"github.com/pcist/pcist-backend/internal/logger"
	"github.com/pcist/pcist-backend/internal/postgres"
	"github.com/pcist/pcist-backend/internal/push"
	"github.com/pcist/pcist-backend/internal/repository"
	"github.com/pcist/pcist-backend/internal/s3"
	"github.com/pcist/pcist-backend/internal/service"
	"github.com/pcist/pcist-backend/internal/validator"
)

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	app := fx.New(
		fx.Provide(
			// Validator
			validator.NewValidator,

			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Postgres
			postgres.NewDB,

			// Object storage
			s3.NewService,

			// Email
			email.NewClient,

			// HTTP client
			httpclient.NewDefaultClient,

			// Push notifications
			push.NewService,

			// Document compositor
			compositor.New,

			// Repositories
			repository.NewUserRepository,
			repository.NewEventRepository,
			repository.NewGalleryRepository,
			repository.NewChatRepository,
			repository.NewStatementRepository,
			repository.NewInvoiceRepository,
			repository.NewCounterRepository,
		),
		fx.Provide(
			service.NewServiceParams,

			service.NewAuthService,
			service.NewUserService,
			service.NewEventService,
			service.NewGalleryService,
			service.NewChatService,
			service.NewNotificationService,
			service.NewStatementService,
			service.NewInvoiceService,
			service.NewMembershipSweeper,
		),
		fx.Provide(
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(
			startMembershipSweeper,
			startAPIServer,
		),
	)

	app.Run()
}

func provideHandlers(
	cfg *config.Configuration,
	logger *logger.Logger,
	authService service.AuthService,
	userService service.UserService,
	eventService service.EventService,
	galleryService service.GalleryService,
	chatService service.ChatService,
	notificationService service.NotificationService,
	statementService service.StatementService,
	invoiceService service.InvoiceService,
) api.Handlers {
	return api.Handlers{
		Health:       v1.NewHealthHandler(logger),
		Auth:         v1.NewAuthHandler(authService, logger),
		User:         v1.NewUserHandler(userService, logger),
		Event:        v1.NewEventHandler(eventService, logger),
		Gallery:      v1.NewGalleryHandler(galleryService, logger),
		Chat:         v1.NewChatHandler(chatService, logger),
		Notification: v1.NewNotificationHandler(notificationService, logger),
		Statement:    v1.NewStatementHandler(statementService, logger),
		Invoice:      v1.NewInvoiceHandler(invoiceService, logger),
	}
}

func provideRouter(handlers api.Handlers, cfg *config.Configuration, logger *logger.Logger) *gin.Engine {
	return api.NewRouter(handlers, cfg, logger)
}

func startMembershipSweeper(lc fx.Lifecycle, sweeper *service.MembershipSweeper) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			sweeper.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			sweeper.Stop()
			return nil
		},
	})
}

func startAPIServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	db *postgres.DB,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting API server", "address", cfg.Server.Address)
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			db.Close()
			return nil
		},
	})
}
