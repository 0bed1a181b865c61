package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	StatusScheduled  AppointmentStatus = "scheduled"
	StatusConfirmed  AppointmentStatus = "confirmed"
	StatusInProgress AppointmentStatus = "in-progress"
	StatusCompleted  AppointmentStatus = "completed"
	StatusCancelled  AppointmentStatus = "cancelled"
	StatusNoShow     AppointmentStatus = "no-show"
)

// State transitions:
//
//	scheduled -> confirmed | in-progress | cancelled | no-show
//	confirmed -> in-progress | cancelled | no-show
//	in-progress -> completed
//	completed, cancelled, no-show are terminal
var allowedTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusScheduled:  {StatusConfirmed, StatusInProgress, StatusCancelled, StatusNoShow},
	StatusConfirmed:  {StatusInProgress, StatusCancelled, StatusNoShow},
	StatusInProgress: {StatusCompleted},
	StatusCompleted:  {},
	StatusCancelled:  {},
	StatusNoShow:     {},
}

func (s AppointmentStatus) IsValid() bool {
	_, ok := allowedTransitions[s]
	return ok
}

func (s AppointmentStatus) IsTerminal() bool {
	return len(allowedTransitions[s]) == 0
}

func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Modifiable reports whether the patient may still reschedule or cancel.
func (s AppointmentStatus) Modifiable() bool {
	return s == StatusScheduled || s == StatusConfirmed
}

type Modality string

const (
	ModalityInPerson Modality = "in-person"
	ModalityVideo    Modality = "video"
	ModalityPhone    Modality = "phone"
)

func (m Modality) IsValid() bool {
	switch m {
	case ModalityInPerson, ModalityVideo, ModalityPhone:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

type PaymentMethod string

const (
	PaymentCard       PaymentMethod = "card"
	PaymentUPI        PaymentMethod = "upi"
	PaymentNetbanking PaymentMethod = "netbanking"
	PaymentWallet     PaymentMethod = "wallet"
	PaymentCash       PaymentMethod = "cash"
)

type Payment struct {
	Amount        float64        `db:"payment_amount"`
	Status        PaymentStatus  `db:"payment_status"`
	Method        *PaymentMethod `db:"payment_method"`
	TransactionID *string        `db:"transaction_id"`
	PaidAt        *time.Time     `db:"paid_at"`
}

type RefundStatus string

const (
	RefundPending   RefundStatus = "pending"
	RefundProcessed RefundStatus = "processed"
	RefundFailed    RefundStatus = "failed"
)

// Cancellation is set exactly when Status is cancelled. Stored as JSONB.
type Cancellation struct {
	CancelledBy  UserRole     `json:"cancelledBy"`
	ActorID      uuid.UUID    `json:"actorId"`
	Reason       string       `json:"reason"`
	CancelledAt  time.Time    `json:"cancelledAt"`
	Fee          float64      `json:"fee"`
	RefundAmount float64      `json:"refundAmount"`
	RefundStatus RefundStatus `json:"refundStatus"`
}

type PrescribedMedication struct {
	Name         string `json:"name"`
	Dosage       string `json:"dosage"`
	Frequency    string `json:"frequency"`
	Duration     string `json:"duration"`
	Instructions string `json:"instructions,omitempty"`
}

// Prescription is written by the doctor. Stored as JSONB.
type Prescription struct {
	Medications  []PrescribedMedication `json:"medications"`
	Advice       string                 `json:"advice,omitempty"`
	FollowUpDate string                 `json:"followUpDate,omitempty"`
	Tests        []string               `json:"tests,omitempty"`
}

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

type Appointment struct {
	BaseNoDelete
	PatientID       uuid.UUID         `db:"patient_id"`
	DoctorID        uuid.UUID         `db:"doctor_id"`
	AppointmentDate time.Time         `db:"appointment_date"`
	AppointmentTime string            `db:"appointment_time"`
	Type            Modality          `db:"type"`
	Status          AppointmentStatus `db:"status"`
	Reason          string            `db:"reason"`
	Symptoms        []string          `db:"symptoms"`
	PatientNotes    *string           `db:"patient_notes"`
	DoctorNotes     *string           `db:"doctor_notes"`
	Prescription    *Prescription     `db:"prescription"`
	Payment
	Cancellation *Cancellation `db:"cancellation"`
}

// StartsAt combines the calendar date and HH:MM time in loc.
func (a *Appointment) StartsAt(loc *time.Location) (time.Time, error) {
	return CombineDateTime(a.AppointmentDate, a.AppointmentTime, loc)
}

// DateString renders the calendar date without any zone shift.
func (a *Appointment) DateString() string {
	return a.AppointmentDate.Format(DateLayout)
}

// BlocksSlot reports whether the appointment occupies its doctor's slot.
func (a *Appointment) BlocksSlot() bool {
	return a.Status != StatusCancelled
}

// ParseDate parses YYYY-MM-DD into a UTC midnight value, the form used for
// the appointment_date column.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return d, nil
}

// CombineDateTime builds the wall-clock instant for a date and an HH:MM time.
func CombineDateTime(date time.Time, hhmm string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(TimeLayout, hhmm)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: %w", hhmm, err)
	}
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, loc), nil
}
