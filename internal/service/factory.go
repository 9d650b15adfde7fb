package service

import (
	"context"

	"github.com/pcist/pcist-backend/internal/compositor"
	"github.com/pcist/pcist-backend/internal/config"
	"github.com/pcist/pcist-backend/internal/domain/chat"
	"github.com/pcist/pcist-backend/internal/domain/counter"
	"github.com/pcist/pcist-backend/internal/domain/event"
	"github.com/pcist/pcist-backend/internal/domain/gallery"
	"github.com/pcist/pcist-backend/internal/domain/invoice"
	"github.com/pcist/pcist-backend/internal/domain/statement"
	"github.com/pcist/pcist-backend/internal/domain/user"
	"github.com/pcist/pcist-backend/internal/email"
	"github.com/pcist/pcist-backend/internal/httpclient"
	"github.com/pcist/pcist-backend/internal/logger"
	"github.com/pcist/pcist-backend/internal/postgres"
	"github.com/pcist/pcist-backend/internal/push"
	"github.com/pcist/pcist-backend/internal/s3"
)

// EmailSender is the slice of the email client the services need; tests
// substitute a recording fake.
type EmailSender interface {
	IsEnabled() bool
	Send(ctx context.Context, to, subject, htmlContent string) (string, error)
	SendWithAttachments(ctx context.Context, to, subject, htmlContent string, attachments []email.Attachment) (string, error)
}

// ServiceParams bundles the shared dependencies injected into every
// service.
type ServiceParams struct {
	Logger     *logger.Logger
	Config     *config.Configuration
	DB         *postgres.DB
	S3         s3.Service
	Email      EmailSender
	Push       push.Service
	Compositor compositor.Compositor
	Client     httpclient.Client

	UserRepo      user.Repository
	EventRepo     event.Repository
	GalleryRepo   gallery.Repository
	ChatRepo      chat.Repository
	StatementRepo statement.Repository
	InvoiceRepo   invoice.Repository
	CounterRepo   counter.Repository
}

// NewServiceParams assembles the dependency bundle for the fx graph.
func NewServiceParams(
	logger *logger.Logger,
	cfg *config.Configuration,
	db *postgres.DB,
	s3Service s3.Service,
	emailClient *email.Client,
	pushService push.Service,
	comp compositor.Compositor,
	client httpclient.Client,
	userRepo user.Repository,
	eventRepo event.Repository,
	galleryRepo gallery.Repository,
	chatRepo chat.Repository,
	statementRepo statement.Repository,
	invoiceRepo invoice.Repository,
	counterRepo counter.Repository,
) ServiceParams {
	return ServiceParams{
		Logger:        logger,
		Config:        cfg,
		DB:            db,
		S3:            s3Service,
		Email:         emailClient,
		Push:          pushService,
		Compositor:    comp,
		Client:        client,
		UserRepo:      userRepo,
		EventRepo:     eventRepo,
		GalleryRepo:   galleryRepo,
		ChatRepo:      chatRepo,
		StatementRepo: statementRepo,
		InvoiceRepo:   invoiceRepo,
		CounterRepo:   counterRepo,
	}
}

// withTx runs fn transactionally. Test suites run against in-memory
// stores without a database handle, in which case fn runs directly.
func (p ServiceParams) withTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if p.DB == nil {
		return fn(ctx)
	}
	return p.DB.WithTx(ctx, fn)
}
