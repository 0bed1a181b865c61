package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"healthcare-booking/internal/data/entity"
	"healthcare-booking/internal/data/repository"
	"healthcare-booking/internal/dto/request"
	"healthcare-booking/internal/dto/response"
	"healthcare-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type DoctorService interface {
	ListDoctors(ctx context.Context, req *request.DoctorListRequest) (*response.PaginatedResponse[response.DoctorResponse], error)
	GetDoctor(ctx context.Context, id string) (*response.DoctorResponse, error)
	GetAvailability(ctx context.Context, id, date string) (*response.AvailabilityResponse, error)
	GetOwnProfile(ctx context.Context, userID uuid.UUID) (*response.DoctorResponse, error)
	UpsertProfile(ctx context.Context, userID uuid.UUID, req *request.UpsertDoctorProfileRequest) (*response.DoctorResponse, error)
	SetVerified(ctx context.Context, id string, req *request.VerifyDoctorRequest) (*response.DoctorResponse, error)
	Specialties() []entity.Specialty
}

type doctorService struct {
	repo   *repository.Repository
	config *utils.Config
	loc    *time.Location
	now    func() time.Time
	log    *zap.Logger
}

func NewDoctorService(repo *repository.Repository, config *utils.Config, deps Dependencies, log *zap.Logger) DoctorService {
	return &doctorService{
		repo:   repo,
		config: config,
		loc:    deps.Location,
		now:    deps.Now,
		log:    log.With(zap.String("service", "doctor")),
	}
}

// Specialties lists the specialties a doctor profile may declare.
func (s *doctorService) Specialties() []entity.Specialty {
	return entity.Specialties()
}

func (s *doctorService) ListDoctors(ctx context.Context, req *request.DoctorListRequest) (*response.PaginatedResponse[response.DoctorResponse], error) {
	filter := repository.DoctorFilter{
		Specialty:  strings.TrimSpace(req.Specialty),
		Search:     strings.TrimSpace(req.Search),
		OnlyListed: true,
	}
	if filter.Specialty != "" && !entity.Specialty(filter.Specialty).IsValid() {
		return nil, newError(ErrValidation, "unknown specialty %q", filter.Specialty)
	}

	doctors, err := s.repo.Doctor.FindAll(ctx, filter, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list doctors", zap.Error(err))
		return nil, fmt.Errorf("find doctors: %w", err)
	}

	total, err := s.repo.Doctor.Count(ctx, filter)
	if err != nil {
		s.log.Error("Failed to count doctors", zap.Error(err))
		return nil, fmt.Errorf("count doctors: %w", err)
	}

	return response.NewPaginatedResponse(response.DoctorsToResponse(doctors), req.Page, req.Limit(), total), nil
}

func (s *doctorService) GetDoctor(ctx context.Context, id string) (*response.DoctorResponse, error) {
	doctor, err := s.findDoctor(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := response.DoctorToResponse(doctor)
	return &resp, nil
}

func (s *doctorService) GetAvailability(ctx context.Context, id, date string) (*response.AvailabilityResponse, error) {
	// 1. Parse input
	day, err := entity.ParseDate(date)
	if err != nil {
		return nil, newError(ErrValidation, "date must be in YYYY-MM-DD format")
	}

	doctor, err := s.findDoctor(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := &response.AvailabilityResponse{
		DoctorID:       doctor.ID.String(),
		Date:           day.Format(entity.DateLayout),
		AvailableSlots: []string{},
	}
	if !doctor.IsAcceptingPatients {
		return resp, nil
	}

	// 2. Weekly template for that weekday, minus booked slots
	booked, err := s.repo.Appointment.FindBookedTimes(ctx, doctor.ID, day)
	if err != nil {
		s.log.Error("Failed to load booked slots", zap.Error(err), zap.String("doctor_id", doctor.ID.String()))
		return nil, fmt.Errorf("find booked slots: %w", err)
	}

	step := time.Duration(s.config.Policy.SlotMinutes) * time.Minute
	slots := GenerateSlots(doctor.Availability.For(day.Weekday()), booked, step)

	// 3. Drop slots that have already started
	now := s.now()
	for _, slot := range slots {
		start, err := entity.CombineDateTime(day, slot, s.loc)
		if err != nil || !start.After(now) {
			continue
		}
		resp.AvailableSlots = append(resp.AvailableSlots, slot)
	}

	return resp, nil
}

func (s *doctorService) GetOwnProfile(ctx context.Context, userID uuid.UUID) (*response.DoctorResponse, error) {
	doctor, err := s.repo.Doctor.FindByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to find doctor profile", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("find doctor: %w", err)
	}
	if doctor == nil {
		return nil, newError(ErrNotFound, "doctor profile not found")
	}

	resp := response.DoctorToResponse(doctor)
	return &resp, nil
}

func (s *doctorService) UpsertProfile(ctx context.Context, userID uuid.UUID, req *request.UpsertDoctorProfileRequest) (*response.DoctorResponse, error) {
	// 1. Validate
	if err := validate(req); err != nil {
		return nil, err
	}
	specialty := entity.Specialty(req.Specialty)
	if !specialty.IsValid() {
		return nil, newError(ErrValidation, "unknown specialty %q", req.Specialty)
	}
	availability, err := toAvailability(req.Availability)
	if err != nil {
		return nil, err
	}
	if err := checkCredentialDates(req); err != nil {
		return nil, err
	}

	// 2. Owner must be an active doctor account
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil || !user.IsActive {
		return nil, newError(ErrNotFound, "user not found")
	}
	if user.Role != entity.RoleDoctor {
		return nil, newError(ErrForbidden, "only doctors can manage a doctor profile")
	}

	existing, err := s.repo.Doctor.FindByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to find doctor profile", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("find doctor: %w", err)
	}

	now := s.now()
	doctor := existing
	if doctor == nil {
		doctor = &entity.Doctor{
			BaseNoDelete:        entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now},
			UserID:              userID,
			IsAcceptingPatients: true,
		}
	}

	// 3. Apply fields
	doctor.LicenseNumber = strings.TrimSpace(req.LicenseNumber)
	doctor.Specialty = specialty
	doctor.SubSpecialty = req.SubSpecialty
	doctor.Experience = req.Experience
	doctor.Languages = req.Languages
	doctor.Fee = entity.ConsultationFee{InPerson: *req.ConsultationFee.InPerson, Video: *req.ConsultationFee.Video}
	if req.Availability != nil {
		doctor.Availability = availability
	}
	doctor.About = req.About
	if req.IsAcceptingPatients != nil {
		doctor.IsAcceptingPatients = *req.IsAcceptingPatients
	}
	doctor.ConsultationTypes = toModalities(req.ConsultationTypes)
	doctor.Credentials = toCredentials(req, doctor.Credentials, now)
	doctor.UpdatedAt = now
	doctor.FirstName, doctor.LastName, doctor.Email = user.FirstName, user.LastName, user.Email

	// 4. Save
	if existing == nil {
		err = s.repo.Doctor.Create(ctx, doctor)
	} else {
		err = s.repo.Doctor.Update(ctx, doctor)
	}
	if err != nil {
		s.log.Error("Failed to save doctor profile", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fromRepository(err, "save doctor")
	}

	s.log.Info("Doctor profile saved",
		zap.String("doctor_id", doctor.ID.String()),
		zap.Bool("created", existing == nil))

	resp := response.DoctorToResponse(doctor)
	return &resp, nil
}

func (s *doctorService) SetVerified(ctx context.Context, id string, req *request.VerifyDoctorRequest) (*response.DoctorResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	doctor, err := s.findDoctor(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Doctor.SetVerified(ctx, doctor.ID, *req.IsVerified); err != nil {
		s.log.Error("Failed to set doctor verification", zap.Error(err), zap.String("doctor_id", id))
		return nil, fromRepository(err, "verify doctor")
	}
	doctor.IsVerified = *req.IsVerified

	s.log.Info("Doctor verification changed",
		zap.String("doctor_id", id),
		zap.Bool("verified", doctor.IsVerified))

	resp := response.DoctorToResponse(doctor)
	return &resp, nil
}

func (s *doctorService) findDoctor(ctx context.Context, id string) (*entity.Doctor, error) {
	doctorID, err := parseID(id, "doctor")
	if err != nil {
		return nil, err
	}

	doctor, err := s.repo.Doctor.FindByID(ctx, doctorID)
	if err != nil {
		s.log.Error("Failed to find doctor", zap.Error(err), zap.String("doctor_id", id))
		return nil, fmt.Errorf("find doctor: %w", err)
	}
	if doctor == nil {
		return nil, newError(ErrNotFound, "doctor not found")
	}
	return doctor, nil
}

func toAvailability(in map[string]request.DayAvailabilityRequest) (entity.WeeklyAvailability, error) {
	out := make(entity.WeeklyAvailability, len(in))
	for day, d := range in {
		slots := make([]entity.TimeRange, 0, len(d.Slots))
		for _, r := range d.Slots {
			start, err := time.Parse(entity.TimeLayout, r.StartTime)
			if err != nil {
				return nil, newError(ErrValidation, "invalid start time %q on %s", r.StartTime, day)
			}
			end, err := time.Parse(entity.TimeLayout, r.EndTime)
			if err != nil {
				return nil, newError(ErrValidation, "invalid end time %q on %s", r.EndTime, day)
			}
			if !start.Before(end) {
				return nil, newError(ErrValidation, "start time must be before end time on %s", day)
			}
			slots = append(slots, entity.TimeRange{
				StartTime: start.Format(entity.TimeLayout),
				EndTime:   end.Format(entity.TimeLayout),
			})
		}
		out[strings.ToLower(day)] = entity.DayAvailability{IsAvailable: d.IsAvailable, Slots: slots}
	}
	return out, nil
}

// Dates are validated as YYYY-MM-DD, so they compare as strings.
func checkCredentialDates(req *request.UpsertDoctorProfileRequest) error {
	for _, c := range req.Certifications {
		if c.IssueDate != "" && c.ExpiryDate != "" && c.ExpiryDate < c.IssueDate {
			return newError(ErrValidation, "certification %q expires before it was issued", c.Name)
		}
	}
	for _, h := range req.HospitalAffiliations {
		if h.IsCurrent && h.EndDate != "" {
			return newError(ErrValidation, "current affiliation %q cannot have an end date", h.Name)
		}
		if h.StartDate != "" && h.EndDate != "" && h.EndDate < h.StartDate {
			return newError(ErrValidation, "affiliation %q ends before it starts", h.Name)
		}
	}
	return nil
}

// toCredentials replaces the profile credentials with the request's lists.
// A verification document already on file keeps its review status; new
// ones start pending.
func toCredentials(req *request.UpsertDoctorProfileRequest, prev entity.DoctorCredentials, now time.Time) entity.DoctorCredentials {
	var out entity.DoctorCredentials
	for _, e := range req.Education {
		out.Education = append(out.Education, entity.Education{
			Degree:      strings.TrimSpace(e.Degree),
			Institution: strings.TrimSpace(e.Institution),
			Year:        e.Year,
			Country:     strings.TrimSpace(e.Country),
		})
	}
	for _, c := range req.Certifications {
		out.Certifications = append(out.Certifications, entity.Certification(c))
	}
	for _, h := range req.HospitalAffiliations {
		out.HospitalAffiliations = append(out.HospitalAffiliations, entity.HospitalAffiliation(h))
	}
	for _, sv := range req.Services {
		out.Services = append(out.Services, entity.DoctorService{
			Name:            strings.TrimSpace(sv.Name),
			Description:     sv.Description,
			DurationMinutes: sv.Duration,
			Fee:             *sv.Fee,
		})
	}
	for _, a := range req.Awards {
		out.Awards = append(out.Awards, entity.Award(a))
	}

	known := make(map[string]entity.VerificationDocument, len(prev.VerificationDocuments))
	for _, d := range prev.VerificationDocuments {
		known[d.Type+" "+d.URL] = d
	}
	for _, d := range req.VerificationDocuments {
		if doc, ok := known[d.Type+" "+d.URL]; ok {
			out.VerificationDocuments = append(out.VerificationDocuments, doc)
			continue
		}
		out.VerificationDocuments = append(out.VerificationDocuments, entity.VerificationDocument{
			Type:       d.Type,
			URL:        d.URL,
			Status:     entity.DocumentPending,
			UploadedAt: now,
		})
	}
	return out
}

func toModalities(in []string) []entity.Modality {
	if len(in) == 0 {
		return []entity.Modality{entity.ModalityInPerson, entity.ModalityVideo, entity.ModalityPhone}
	}
	out := make([]entity.Modality, 0, len(in))
	for _, m := range in {
		out = append(out, entity.Modality(m))
	}
	return out
}
