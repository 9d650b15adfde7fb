package testutil

import (
	"context"

	"github.com/stretchr/testify/suite"

	"github.com/pcist/pcist-backend/internal/config"
	"github.com/pcist/pcist-backend/internal/domain/chat"
	"github.com/pcist/pcist-backend/internal/domain/counter"
	"github.com/pcist/pcist-backend/internal/domain/event"
	"github.com/pcist/pcist-backend/internal/domain/gallery"
	"github.com/pcist/pcist-backend/internal/domain/invoice"
	"github.com/pcist/pcist-backend/internal/domain/statement"
	"github.com/pcist/pcist-backend/internal/domain/user"
	"github.com/pcist/pcist-backend/internal/logger"
)

// Stores holds all the repository interfaces for testing
type Stores struct {
	UserRepo      user.Repository
	EventRepo     event.Repository
	GalleryRepo   gallery.Repository
	ChatRepo      chat.Repository
	StatementRepo statement.Repository
	InvoiceRepo   invoice.Repository
	CounterRepo   counter.Repository
}

// BaseServiceTestSuite provides common functionality for service test
// suites: in-memory stores, recording mocks and a test context.
type BaseServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	stores Stores
	email  *MockEmailSender
	push   *MockPushService
	s3     *MockS3Service
	logger *logger.Logger
	config *config.Configuration
}

// SetupTest initializes fresh state for each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.ctx = SetupContext()
	s.config = config.GetDefaultConfig()

	var err error
	s.logger, err = logger.NewLogger()
	s.Require().NoError(err)

	s.stores = Stores{
		UserRepo:      NewInMemoryUserStore(),
		EventRepo:     NewInMemoryEventStore(),
		GalleryRepo:   NewInMemoryGalleryStore(),
		ChatRepo:      NewInMemoryChatStore(),
		StatementRepo: NewInMemoryStatementStore(),
		InvoiceRepo:   NewInMemoryInvoiceStore(),
		CounterRepo:   NewInMemoryCounterStore(),
	}
	s.email = NewMockEmailSender()
	s.push = NewMockPushService()
	s.s3 = NewMockS3Service()
}

func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

func (s *BaseServiceTestSuite) GetEmail() *MockEmailSender {
	return s.email
}

func (s *BaseServiceTestSuite) GetPush() *MockPushService {
	return s.push
}

func (s *BaseServiceTestSuite) GetS3() *MockS3Service {
	return s.s3
}

func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}
