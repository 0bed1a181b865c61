package adaptor

import (
	"healthcare-booking/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth         *AuthHandler
	User         *UserHandler
	Doctor       *DoctorHandler
	Appointment  *AppointmentHandler
	Notification *NotificationHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(service.Auth, log),
		User:         NewUserHandler(service.User, log),
		Doctor:       NewDoctorHandler(service.Doctor, log),
		Appointment:  NewAppointmentHandler(service.Appointment, log),
		Notification: NewNotificationHandler(service.Notification, log),
	}
}
