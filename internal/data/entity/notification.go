package entity

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationAppointment NotificationType = "appointment"
	NotificationAccount     NotificationType = "account"
	NotificationPayment     NotificationType = "payment"
	NotificationSystem      NotificationType = "system"
)

type Notification struct {
	BaseSimple
	UserID    uuid.UUID        `db:"user_id"`
	Title     string           `db:"title"`
	Message   string           `db:"message"`
	Type      NotificationType `db:"type"`
	RelatedID *uuid.UUID       `db:"related_id"`
	IsRead    bool             `db:"is_read"`
	ReadAt    *time.Time       `db:"read_at"`
}
