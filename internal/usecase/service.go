package usecase

import (
	"context"
	"time"

	"healthcare-booking/internal/data/repository"
	"healthcare-booking/pkg/mailer"
	"healthcare-booking/pkg/utils"

	"go.uber.org/zap"
)

// TokenDenylist blocks access tokens that were logged out before expiry.
type TokenDenylist interface {
	Deny(ctx context.Context, tokenID string, ttl time.Duration) error
}

// Dependencies are the collaborators shared by the services.
type Dependencies struct {
	Tokens   *utils.TokenManager
	Mailer   mailer.Sender
	Denylist TokenDenylist
	// Location is the clinic timezone appointment dates and times are read in.
	Location *time.Location
	Now      func() time.Time
}

type Service struct {
	Auth         AuthService
	User         UserService
	Doctor       DoctorService
	Appointment  AppointmentService
	Notification NotificationService
}

func NewService(repo *repository.Repository, config *utils.Config, deps Dependencies, log *zap.Logger) *Service {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Location == nil {
		deps.Location = time.UTC
	}

	events := NewEmitter(log, NewNotificationSink(repo.Notification))

	return &Service{
		Auth:         NewAuthService(repo, config, deps, events, log),
		User:         NewUserService(repo, config, deps, events, log),
		Doctor:       NewDoctorService(repo, config, deps, log),
		Appointment:  NewAppointmentService(repo, config, deps, events, log),
		Notification: NewNotificationService(repo.Notification, log),
	}
}
