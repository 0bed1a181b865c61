package request

import "healthcare-booking/internal/data/entity"

type BookAppointmentRequest struct {
	DoctorID string   `json:"doctorId" validate:"required,uuid"`
	Date     string   `json:"date" validate:"required,date"`
	Time     string   `json:"time" validate:"required,hhmm"`
	Type     string   `json:"type" validate:"required,oneof=in-person video phone"`
	Reason   string   `json:"reason" validate:"required,max=500"`
	Symptoms []string `json:"symptoms,omitempty" validate:"omitempty,max=20,dive,min=1,max=100"`
	Notes    *string  `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

// UpdateAppointmentRequest is a partial update by the patient.
type UpdateAppointmentRequest struct {
	Date     *string  `json:"date,omitempty" validate:"omitempty,date"`
	Time     *string  `json:"time,omitempty" validate:"omitempty,hhmm"`
	Type     *string  `json:"type,omitempty" validate:"omitempty,oneof=in-person video phone"`
	Reason   *string  `json:"reason,omitempty" validate:"omitempty,min=1,max=500"`
	Symptoms []string `json:"symptoms,omitempty" validate:"omitempty,max=20,dive,min=1,max=100"`
	Notes    *string  `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

type CancelAppointmentRequest struct {
	Reason *string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

type UpdateStatusRequest struct {
	Status       string               `json:"status" validate:"required,oneof=confirmed in-progress completed cancelled no-show"`
	DoctorNotes  *string              `json:"doctorNotes,omitempty" validate:"omitempty,max=2000"`
	Prescription *entity.Prescription `json:"prescription,omitempty"`
	Reason       *string              `json:"reason,omitempty" validate:"omitempty,max=500"`
}

type PayAppointmentRequest struct {
	Method        string  `json:"method" validate:"required,oneof=card upi netbanking wallet cash"`
	TransactionID *string `json:"transactionId,omitempty" validate:"omitempty,max=100"`
	Amount        float64 `json:"amount" validate:"gte=0"`
}

type AppointmentListRequest struct {
	PaginatedRequest
	Status string `validate:"omitempty,oneof=scheduled confirmed in-progress completed cancelled no-show"`
}
