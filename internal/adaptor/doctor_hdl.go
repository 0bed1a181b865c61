package adaptor

import (
	"net/http"
	"strings"

	"healthcare-booking/internal/dto/request"
	"healthcare-booking/internal/usecase"
	"healthcare-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type DoctorHandler struct {
	service usecase.DoctorService
	log     *zap.Logger
}

func NewDoctorHandler(service usecase.DoctorService, log *zap.Logger) *DoctorHandler {
	return &DoctorHandler{
		service: service,
		log:     log.With(zap.String("handler", "doctor")),
	}
}

// ListDoctors handles GET /api/doctors?specialty=&search=&page=&limit=
func (h *DoctorHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := request.DoctorListRequest{
		PaginatedRequest: pagination(r),
		Specialty:        strings.TrimSpace(query.Get("specialty")),
		Search:           strings.TrimSpace(query.Get("search")),
	}

	doctors, err := h.service.ListDoctors(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "list doctors")
		return
	}

	utils.ResponseSuccess(w, "Doctors retrieved successfully", doctors)
}

// ListSpecialties handles GET /api/doctors/specialties
func (h *DoctorHandler) ListSpecialties(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "Specialties retrieved successfully", h.service.Specialties())
}

// GetDoctor handles GET /api/doctors/{id}
func (h *DoctorHandler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	doctor, err := h.service.GetDoctor(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get doctor")
		return
	}

	utils.ResponseSuccess(w, "Doctor retrieved successfully", doctor)
}

// GetAvailability handles GET /api/doctors/{id}/availability?date=YYYY-MM-DD
func (h *DoctorHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		utils.ResponseBadRequest(w, "Date is required", map[string]string{"date": "date is required"})
		return
	}

	availability, err := h.service.GetAvailability(r.Context(), chi.URLParam(r, "id"), date)
	if err != nil {
		handleServiceError(w, h.log, err, "get availability")
		return
	}

	utils.ResponseSuccess(w, "Availability retrieved successfully", availability)
}

// GetOwnProfile handles GET /api/doctor/profile (doctor only)
func (h *DoctorHandler) GetOwnProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	doctor, err := h.service.GetOwnProfile(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "get doctor profile")
		return
	}

	utils.ResponseSuccess(w, "Doctor profile retrieved successfully", doctor)
}

// UpsertProfile handles PUT /api/doctor/profile (doctor only)
func (h *DoctorHandler) UpsertProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.UpsertDoctorProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	doctor, err := h.service.UpsertProfile(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update doctor profile")
		return
	}

	utils.ResponseSuccess(w, "Doctor profile saved successfully", doctor)
}

// Verify handles PATCH /api/admin/doctors/{id}/verify (admin only)
func (h *DoctorHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req request.VerifyDoctorRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	doctor, err := h.service.SetVerified(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "verify doctor")
		return
	}

	utils.ResponseSuccess(w, "Doctor verification updated", doctor)
}
