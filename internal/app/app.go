// Package app assembles the portal from its configured parts.
package app

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/village-portal/internal/api/http"
	"github.com/spec-kit/village-portal/internal/api/http/handlers"
	"github.com/spec-kit/village-portal/internal/auth"
	"github.com/spec-kit/village-portal/internal/config"
	"github.com/spec-kit/village-portal/internal/domain"
	"github.com/spec-kit/village-portal/internal/events"
	"github.com/spec-kit/village-portal/internal/observability"
	"github.com/spec-kit/village-portal/internal/persistence"
	"github.com/spec-kit/village-portal/internal/seed"
	"github.com/spec-kit/village-portal/internal/service"
	"github.com/spec-kit/village-portal/internal/session"
	"github.com/spec-kit/village-portal/internal/store"
	"github.com/spec-kit/village-portal/internal/worker"
)

// Portal holds the wired store, session gate and services.
type Portal struct {
	Config     *config.Config
	Logger     *zap.Logger
	Metrics    *observability.Metrics
	Dispatcher events.Dispatcher
	Slots      *persistence.Slots
	Store      *store.Store
	Gate       *session.Gate

	Auth          *service.AuthService
	Residents     *service.ResidentService
	Staff         *service.StaffService
	Bids          *service.BidService
	Announcements *service.AnnouncementService
	Requests      *service.RequestService
	Dashboard     *service.DashboardService
}

// Options overrides collaborators, mainly for tests.
type Options struct {
	Clock func() time.Time
}

// New opens the store from the data slot, restores any saved session and
// builds the services on top.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger, slots *persistence.Slots, opts Options) *Portal {
	if logger == nil {
		logger = zap.NewNop()
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	notifications := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notifications, logger)
	worker.StartAuditLog(dispatcher, logger)

	fallback := domain.Empty
	if cfg.Slots.SeedOnEmpty {
		fallback = seed.Provider(clock)
	}
	st := store.Open(ctx, slots.Data, fallback, store.Options{
		Logger:     logger.Named("store"),
		Dispatcher: dispatcher,
		Metrics:    metrics,
		Clock:      clock,
	})

	gate := session.NewGate(st, slots.Session, session.Options{Logger: logger.Named("session"), Clock: clock})
	if gate.RestoreSession(ctx) == session.Authenticated {
		if user, ok := gate.Current(); ok {
			logger.Info("restored session", zap.String("user_id", user.ID))
		}
	}

	deps := service.Dependencies{Store: st, Logger: logger, Clock: clock}
	return &Portal{
		Config:        cfg,
		Logger:        logger,
		Metrics:       metrics,
		Dispatcher:    dispatcher,
		Slots:         slots,
		Store:         st,
		Gate:          gate,
		Auth:          service.NewAuthService(cfg.Auth, gate),
		Residents:     service.NewResidentService(deps),
		Staff:         service.NewStaffService(deps),
		Bids:          service.NewBidService(deps),
		Announcements: service.NewAnnouncementService(deps),
		Requests:      service.NewRequestService(deps),
		Dashboard:     service.NewDashboardService(deps),
	}
}

// HTTP builds the fiber application serving the portal.
func (p *Portal) HTTP() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               p.Config.App.Name,
		DisableStartupMessage: true,
	})
	httptransport.RegisterMiddlewares(app, p.Logger, p.Metrics, p.Config.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(p.Config.App.Name, p.Config.App.Version, p.Config.Slots.Backend, p.Slots.Backend, p.Metrics),
		Auth:   handlers.NewAuthHandler(p.Auth),
		Admin: handlers.NewAdminHandler(handlers.AdminServices{
			Dashboard:     p.Dashboard,
			Residents:     p.Residents,
			Staff:         p.Staff,
			Bids:          p.Bids,
			Announcements: p.Announcements,
			Requests:      p.Requests,
		}),
		Resident: handlers.NewResidentHandler(handlers.ResidentServices{
			Dashboard:     p.Dashboard,
			Bids:          p.Bids,
			Announcements: p.Announcements,
			Requests:      p.Requests,
		}),
		AuthMiddleware: auth.NewAuthMiddleware(p.Auth.TokenManager(), p.Gate),
	})
	return app
}
