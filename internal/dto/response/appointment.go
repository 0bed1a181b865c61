package response

import (
	"time"

	"healthcare-booking/internal/data/entity"
)

type PaymentResponse struct {
	Amount        float64               `json:"amount"`
	Status        entity.PaymentStatus  `json:"status"`
	Method        *entity.PaymentMethod `json:"method,omitempty"`
	TransactionID *string               `json:"transactionId,omitempty"`
	PaidAt        *time.Time            `json:"paidAt,omitempty"`
}

type NotesResponse struct {
	Patient *string `json:"patient,omitempty"`
	Doctor  *string `json:"doctor,omitempty"`
}

type AppointmentResponse struct {
	ID           string                   `json:"id"`
	PatientID    string                   `json:"patientId"`
	DoctorID     string                   `json:"doctorId"`
	Date         string                   `json:"date"`
	Time         string                   `json:"time"`
	Type         entity.Modality          `json:"type"`
	Status       entity.AppointmentStatus `json:"status"`
	Reason       string                   `json:"reason"`
	Symptoms     []string                 `json:"symptoms"`
	Notes        NotesResponse            `json:"notes"`
	Prescription *entity.Prescription     `json:"prescription,omitempty"`
	Payment      PaymentResponse          `json:"payment"`
	Cancellation *entity.Cancellation     `json:"cancellation,omitempty"`
	CreatedAt    time.Time                `json:"createdAt"`
	UpdatedAt    time.Time                `json:"updatedAt"`
}

type CancelAppointmentResponse struct {
	Appointment     AppointmentResponse `json:"appointment"`
	CancellationFee float64             `json:"cancellationFee"`
	RefundAmount    float64             `json:"refundAmount"`
}

func AppointmentToResponse(a *entity.Appointment) AppointmentResponse {
	symptoms := a.Symptoms
	if symptoms == nil {
		symptoms = []string{}
	}
	return AppointmentResponse{
		ID:        a.ID.String(),
		PatientID: a.PatientID.String(),
		DoctorID:  a.DoctorID.String(),
		Date:      a.DateString(),
		Time:      a.AppointmentTime,
		Type:      a.Type,
		Status:    a.Status,
		Reason:    a.Reason,
		Symptoms:  symptoms,
		Notes: NotesResponse{
			Patient: a.PatientNotes,
			Doctor:  a.DoctorNotes,
		},
		Prescription: a.Prescription,
		Payment: PaymentResponse{
			Amount:        a.Payment.Amount,
			Status:        a.Payment.Status,
			Method:        a.Payment.Method,
			TransactionID: a.Payment.TransactionID,
			PaidAt:        a.Payment.PaidAt,
		},
		Cancellation: a.Cancellation,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func AppointmentsToResponse(appointments []*entity.Appointment) []AppointmentResponse {
	out := make([]AppointmentResponse, 0, len(appointments))
	for i := range appointments {
		out = append(out, AppointmentToResponse(appointments[i]))
	}
	return out
}
