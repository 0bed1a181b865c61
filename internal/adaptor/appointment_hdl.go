package adaptor

import (
	"net/http"

	"healthcare-booking/internal/dto/request"
	"healthcare-booking/internal/usecase"
	"healthcare-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AppointmentHandler struct {
	service usecase.AppointmentService
	log     *zap.Logger
}

func NewAppointmentHandler(service usecase.AppointmentService, log *zap.Logger) *AppointmentHandler {
	return &AppointmentHandler{
		service: service,
		log:     log.With(zap.String("handler", "appointment")),
	}
}

// Book handles POST /api/appointments (patient only)
func (h *AppointmentHandler) Book(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	var req request.BookAppointmentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	appointment, err := h.service.Book(r.Context(), actor, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "book appointment")
		return
	}

	utils.ResponseCreated(w, "Appointment booked successfully", appointment)
}

// List handles GET /api/appointments?status=&page=&limit=
func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	req := request.AppointmentListRequest{
		PaginatedRequest: pagination(r),
		Status:           r.URL.Query().Get("status"),
	}

	appointments, err := h.service.List(r.Context(), actor, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "list appointments")
		return
	}

	utils.ResponseSuccess(w, "Appointments retrieved successfully", appointments)
}

// Get handles GET /api/appointments/{id}
func (h *AppointmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	appointment, err := h.service.Get(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get appointment")
		return
	}

	utils.ResponseSuccess(w, "Appointment retrieved successfully", appointment)
}

// Update handles PATCH /api/appointments/{id} (patient only)
func (h *AppointmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	var req request.UpdateAppointmentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	appointment, err := h.service.Update(r.Context(), actor, chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update appointment")
		return
	}

	utils.ResponseSuccess(w, "Appointment updated successfully", appointment)
}

// Cancel handles PATCH /api/appointments/{id}/cancel
func (h *AppointmentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	var req request.CancelAppointmentRequest
	if !decodeOptionalJSON(w, r, &req) {
		return
	}

	result, err := h.service.Cancel(r.Context(), actor, chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "cancel appointment")
		return
	}

	utils.ResponseSuccess(w, "Appointment cancelled successfully", result)
}

// UpdateStatus handles PATCH /api/appointments/{id}/status (doctor, admin)
func (h *AppointmentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	var req request.UpdateStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	appointment, err := h.service.UpdateStatus(r.Context(), actor, chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update appointment status")
		return
	}

	utils.ResponseSuccess(w, "Appointment status updated successfully", appointment)
}

// Pay handles POST /api/appointments/{id}/pay (patient only)
func (h *AppointmentHandler) Pay(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	var req request.PayAppointmentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	appointment, err := h.service.Pay(r.Context(), actor, chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "pay appointment")
		return
	}

	utils.ResponseSuccess(w, "Payment recorded successfully", appointment)
}
