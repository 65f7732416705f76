package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/village-portal/internal/config"
	"github.com/spec-kit/village-portal/internal/domain"
	"github.com/spec-kit/village-portal/internal/events"
	"github.com/spec-kit/village-portal/internal/persistence"
	"github.com/spec-kit/village-portal/internal/seed"
	"github.com/spec-kit/village-portal/internal/service"
	"github.com/spec-kit/village-portal/internal/session"
	"github.com/spec-kit/village-portal/internal/store"
)

func newAuthService(t *testing.T) (*service.AuthService, *session.Gate) {
	t.Helper()
	deps, st := newDeps(t)
	gate := session.NewGate(st, persistence.NewSlot(persistence.NewMemory(), persistence.SessionSlotKey), session.Options{Clock: deps.Clock})
	return service.NewAuthService(config.AuthConfig{JWTSecret: "secret"}, gate), gate
}

func TestAuthService_LoginIssuesToken(t *testing.T) {
	svc, gate := newAuthService(t)

	user, token, exp, err := svc.Login(context.Background(), "admin@village.com", seed.DefaultPassword)

	require.NoError(t, err)
	assert.Empty(t, user.Password)
	assert.True(t, exp.IsZero())
	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", claims.Subject)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
	assert.Equal(t, session.Authenticated, gate.State())
}

func TestAuthService_LoginFailures(t *testing.T) {
	svc, _ := newAuthService(t)

	_, _, _, err := svc.Login(context.Background(), "bob.j@email.com", seed.DefaultPassword)
	assert.ErrorIs(t, err, session.ErrNotApproved)

	_, _, _, err = svc.Login(context.Background(), "x@x.com", "wrong")
	assert.ErrorIs(t, err, session.ErrInvalidCredentials)
}

func TestAuthService_RegisterThenApprove(t *testing.T) {
	svc, gate := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, domain.RegistrationProfile{FullName: "Nia", Email: "nia@email.com", Password: "pw"})
	require.NoError(t, err)
	assert.Empty(t, user.Password)
	assert.False(t, user.Approved)
	assert.Equal(t, session.Unauthenticated, gate.State())

	_, err = svc.Register(ctx, domain.RegistrationProfile{FullName: "Nia", Email: "nia@email.com", Password: "pw"})
	assert.ErrorIs(t, err, session.ErrDuplicateEmail)
}

func TestAuthService_ProfileAndLogout(t *testing.T) {
	svc, gate := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Me()
	assert.ErrorIs(t, err, session.ErrNoSession)

	_, _, _, err = svc.Login(ctx, "john.doe@email.com", seed.DefaultPassword)
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(ctx, service.ProfileUpdate{FullName: "John Q. Doe", ContactNumber: "555-000-1111", Address: "123 Main St"})
	require.NoError(t, err)
	assert.Equal(t, "John Q. Doe", updated.FullName)
	assert.Empty(t, updated.Password)

	me, err := svc.Me()
	require.NoError(t, err)
	assert.Equal(t, "John Q. Doe", me.FullName)

	_, err = svc.UpdateProfile(ctx, service.ProfileUpdate{})
	assert.Error(t, err)

	require.NoError(t, svc.Logout(ctx))
	assert.Equal(t, session.Unauthenticated, gate.State())
	_, err = svc.Me()
	assert.ErrorIs(t, err, session.ErrNoSession)
}

func TestAuthService_UpdateProfileEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("admin can change email", func(t *testing.T) {
		svc, gate := newAuthService(t)
		_, _, _, err := svc.Login(ctx, "admin@village.com", seed.DefaultPassword)
		require.NoError(t, err)

		updated, err := svc.UpdateProfile(ctx, service.ProfileUpdate{FullName: "Admin User", Email: "clerk@village.com"})
		require.NoError(t, err)
		assert.Equal(t, "clerk@village.com", updated.Email)

		require.NoError(t, svc.Logout(ctx))
		_, err = gate.Login(ctx, "clerk@village.com", seed.DefaultPassword)
		assert.NoError(t, err)
	})

	t.Run("admin cannot take another user's email", func(t *testing.T) {
		svc, _ := newAuthService(t)
		_, _, _, err := svc.Login(ctx, "admin@village.com", seed.DefaultPassword)
		require.NoError(t, err)

		_, err = svc.UpdateProfile(ctx, service.ProfileUpdate{FullName: "Admin User", Email: "jane.smith@email.com"})
		assert.ErrorIs(t, err, session.ErrDuplicateEmail)
		me, err := svc.Me()
		require.NoError(t, err)
		assert.Equal(t, "admin@village.com", me.Email)
	})

	t.Run("resident email is locked", func(t *testing.T) {
		svc, _ := newAuthService(t)
		_, _, _, err := svc.Login(ctx, "john.doe@email.com", seed.DefaultPassword)
		require.NoError(t, err)

		_, err = svc.UpdateProfile(ctx, service.ProfileUpdate{FullName: "John Doe", Email: "john@elsewhere.com"})
		assert.Equal(t, "FORBIDDEN", errorCode(err))

		updated, err := svc.UpdateProfile(ctx, service.ProfileUpdate{FullName: "John Doe", Email: "john.doe@email.com"})
		require.NoError(t, err)
		assert.Equal(t, "john.doe@email.com", updated.Email)
	})
}

func TestNotificationService_Handlers(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	dispatcher := events.NewInMemoryDispatcher()
	notifications := service.NewNotificationService(dispatcher, zap.New(core), config.NotificationConfig{
		EmailFrom:  "noreply@village.com",
		WebhookURL: "http://hooks.local/portal",
	})
	notifications.RegisterHandlers()

	deps, _ := newDeps(t)
	st := store.Open(context.Background(), persistence.NewSlot(persistence.NewMemory(), persistence.DataSlotKey),
		seed.Provider(deps.Clock), store.Options{Dispatcher: dispatcher})
	gate := session.NewGate(st, persistence.NewSlot(persistence.NewMemory(), persistence.SessionSlotKey), session.Options{})
	ctx := context.Background()

	_, err := gate.Register(ctx, domain.RegistrationProfile{FullName: "Nia", Email: "nia@email.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("ResidentAwaitingApproval").Len())
	assert.Equal(t, 1, logs.FilterMessage("sendEmailNotificationStub").Len())

	announcements := service.NewAnnouncementService(service.Dependencies{Store: st})
	_, err = announcements.Publish(ctx, domain.Announcement{Title: "Fair", Content: "Saturday"})
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("AnnouncementPublished").Len())
	assert.Equal(t, 1, logs.FilterMessage("sendEmailNotificationStub").Len())
	assert.Equal(t, 1, logs.FilterMessage("sendWebhookNotificationStub").Len())

	_, err = announcements.Publish(ctx, domain.Announcement{Title: "Flood", Content: "Stay home", IsUrgent: true})
	require.NoError(t, err)
	assert.Equal(t, 2, logs.FilterMessage("sendEmailNotificationStub").Len())
}
