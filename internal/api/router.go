package api

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/pcist/pcist-backend/internal/api/v1"
	"github.com/pcist/pcist-backend/internal/config"
	"github.com/pcist/pcist-backend/internal/logger"
	"github.com/pcist/pcist-backend/internal/rest/middleware"
)

type Handlers struct {
	Health       *v1.HealthHandler
	Auth         *v1.AuthHandler
	User         *v1.UserHandler
	Event        *v1.EventHandler
	Gallery      *v1.GalleryHandler
	Chat         *v1.ChatHandler
	Notification *v1.NotificationHandler
	Statement    *v1.StatementHandler
	Invoice      *v1.InvoiceHandler
}

func NewRouter(handlers Handlers, cfg *config.Configuration, log *logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware)
	router.Use(middleware.CORSMiddleware)
	router.Use(middleware.ErrorHandler())

	router.GET("/health", handlers.Health.Health)

	v1Group := router.Group("/v1")
	registerV1Routes(v1Group, handlers, cfg, log)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers, cfg *config.Configuration, log *logger.Logger) {
	// Public routes
	auth := router.Group("/auth")
	{
		auth.POST("/signup", handlers.Auth.Signup)
		auth.POST("/verify", handlers.Auth.VerifyEmail)
		auth.POST("/login", handlers.Auth.Login)
		auth.POST("/forgot-password", handlers.Auth.ForgotPassword)
		auth.POST("/reset-password", handlers.Auth.ResetPassword)
	}

	router.GET("/events", handlers.Event.ListEvents)
	router.GET("/events/:id", handlers.Event.GetEvent)
	router.GET("/gallery", handlers.Gallery.ListImages)
	router.GET("/gallery/event/:id", handlers.Gallery.ListEventImages)

	// Authenticated member routes
	member := router.Group("")
	member.Use(middleware.AuthenticateMiddleware(cfg, log))
	{
		member.GET("/users/me", handlers.User.GetMe)
		member.GET("/users/:id", handlers.User.GetUser)
		member.GET("/users/slug/:slug", handlers.User.GetUserBySlug)
		member.PUT("/users/:id", handlers.User.UpdateProfile)

		member.POST("/events/:id/register", handlers.Event.RegisterSolo)
		member.POST("/events/:id/register-team", handlers.Event.RegisterTeam)

		member.GET("/chat/messages", handlers.Chat.History)
		member.POST("/chat/messages", handlers.Chat.PostMessage)
	}

	// Admin routes
	admin := router.Group("")
	admin.Use(middleware.AuthenticateMiddleware(cfg, log), middleware.AdminOnlyMiddleware)
	{
		admin.GET("/users", handlers.User.ListUsers)
		admin.POST("/users/membership", handlers.User.GrantMembership)
		admin.POST("/users/membership/expire", handlers.User.ExpireMemberships)

		admin.POST("/events", handlers.Event.CreateEvent)
		admin.PUT("/events/:id", handlers.Event.UpdateEvent)
		admin.DELETE("/events/:id", handlers.Event.DeleteEvent)
		admin.GET("/events/:id/registrations", handlers.Event.ListRegistrations)
		admin.POST("/events/:id/payment", handlers.Event.SetPayment)

		admin.POST("/gallery", handlers.Gallery.UploadImage)

		admin.POST("/notifications/broadcast", handlers.Notification.Broadcast)
		admin.POST("/notifications/device", handlers.Notification.NotifyDevice)

		admin.POST("/statements", handlers.Statement.GenerateStatement)
		admin.GET("/statements", handlers.Statement.ListStatements)
		admin.GET("/statements/:id", handlers.Statement.GetStatement)
		admin.GET("/statements/:id/download", handlers.Statement.DownloadStatement)

		admin.POST("/invoices", handlers.Invoice.CreateInvoice)
		admin.GET("/invoices", handlers.Invoice.ListInvoices)
		admin.GET("/invoices/:id", handlers.Invoice.GetInvoice)
		admin.GET("/invoices/:id/download", handlers.Invoice.DownloadInvoice)
	}
}
