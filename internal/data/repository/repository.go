package repository

import (
	"errors"

	"healthcare-booking/pkg/database"

	"go.uber.org/zap"
)

var (
	// ErrSlotTaken is returned when a write would create a second live
	// appointment for the same doctor, date and time.
	ErrSlotTaken     = errors.New("slot already booked")
	ErrEmailTaken    = errors.New("email already registered")
	ErrLicenseTaken  = errors.New("license number already registered")
	ErrRecordMissing = errors.New("record not found")
)

// rowScanner is satisfied by pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

type Repository struct {
	User         UserRepository
	Doctor       DoctorRepository
	Appointment  AppointmentRepository
	Notification NotificationRepository
	Session      SessionRepository
	UserToken    UserTokenRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:         NewUserRepository(db, log),
		Doctor:       NewDoctorRepository(db, log),
		Appointment:  NewAppointmentRepository(db, log),
		Notification: NewNotificationRepository(db, log),
		Session:      NewSessionRepository(db, log),
		UserToken:    NewUserTokenRepository(db, log),
	}
}
