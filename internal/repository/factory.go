package repository

import (
	"github.com/pcist/pcist-backend/internal/domain/chat"
	"github.com/pcist/pcist-backend/internal/domain/counter"
	"github.com/pcist/pcist-backend/internal/domain/event"
	"github.com/pcist/pcist-backend/internal/domain/gallery"
	"github.com/pcist/pcist-backend/internal/domain/invoice"
	"github.com/pcist/pcist-backend/internal/domain/statement"
	"github.com/pcist/pcist-backend/internal/domain/user"
	"github.com/pcist/pcist-backend/internal/logger"
	"github.com/pcist/pcist-backend/internal/postgres"
	repo "github.com/pcist/pcist-backend/internal/repository/postgres"
)

func NewUserRepository(db *postgres.DB, logger *logger.Logger) user.Repository {
	return repo.NewUserRepository(db, logger)
}

func NewEventRepository(db *postgres.DB, logger *logger.Logger) event.Repository {
	return repo.NewEventRepository(db, logger)
}

func NewGalleryRepository(db *postgres.DB, logger *logger.Logger) gallery.Repository {
	return repo.NewGalleryRepository(db, logger)
}

func NewChatRepository(db *postgres.DB, logger *logger.Logger) chat.Repository {
	return repo.NewChatRepository(db, logger)
}

func NewStatementRepository(db *postgres.DB, logger *logger.Logger) statement.Repository {
	return repo.NewStatementRepository(db, logger)
}

func NewInvoiceRepository(db *postgres.DB, logger *logger.Logger) invoice.Repository {
	return repo.NewInvoiceRepository(db, logger)
}

func NewCounterRepository(db *postgres.DB, logger *logger.Logger) counter.Repository {
	return repo.NewCounterRepository(db, logger)
}
