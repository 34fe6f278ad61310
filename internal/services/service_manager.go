package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/quizzone/internal/catalog"
	"github.com/SAP-F-2025/quizzone/internal/events"
	"github.com/SAP-F-2025/quizzone/internal/repositories"
	"github.com/SAP-F-2025/quizzone/internal/validator"
)

// ServiceManager wires the services that share one catalog and one progress record
type ServiceManager interface {
	Session() SessionService
	Progress() ProgressService
	Catalog() catalog.Catalog
	Clock() Clock
	Close(ctx context.Context) error
}

// ManagerConfig collects the tunables of every service
type ManagerConfig struct {
	Location       *time.Location
	Clock          Clock
	TickInterval   time.Duration
	PersistTimeout time.Duration
	EnableDebug    bool
}

type serviceManager struct {
	session  SessionService
	progress ProgressService
	catalog  catalog.Catalog
	clock    Clock
}

func NewServiceManager(
	cat catalog.Catalog,
	repo repositories.ProgressRepository,
	publisher events.EventPublisher,
	logger *slog.Logger,
	validator *validator.Validator,
	config ManagerConfig,
) ServiceManager {
	if config.Clock == nil {
		config.Clock = SystemClock()
	}

	progress := NewProgressService(repo, cat, publisher, logger, validator, ProgressServiceConfig{
		Location:       config.Location,
		Clock:          config.Clock,
		PersistTimeout: config.PersistTimeout,
		EnableDebug:    config.EnableDebug,
	})
	session := NewSessionService(cat, progress, publisher, logger, validator, SessionServiceConfig{
		Clock:        config.Clock,
		TickInterval: config.TickInterval,
		EnableDebug:  config.EnableDebug,
	})

	return &serviceManager{
		session:  session,
		progress: progress,
		catalog:  cat,
		clock:    config.Clock,
	}
}

func (m *serviceManager) Session() SessionService {
	return m.session
}

func (m *serviceManager) Progress() ProgressService {
	return m.progress
}

func (m *serviceManager) Catalog() catalog.Catalog {
	return m.catalog
}

func (m *serviceManager) Clock() Clock {
	return m.clock
}

// Close stops the session engine first so its final completion is persisted
func (m *serviceManager) Close(ctx context.Context) error {
	sessionErr := m.session.Close()
	flushErr := m.progress.Flush(ctx)
	closeErr := m.progress.Close()
	return errors.Join(sessionErr, flushErr, closeErr)
}
