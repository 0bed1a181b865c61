package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"healthcare-booking/internal/data/entity"
	"healthcare-booking/internal/data/repository"
	"healthcare-booking/internal/dto/request"
	"healthcare-booking/internal/dto/response"
	"healthcare-booking/pkg/mailer"
	"healthcare-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Actor is the authenticated caller of an operation.
type Actor struct {
	UserID uuid.UUID
	Role   entity.UserRole
}

type AppointmentService interface {
	Book(ctx context.Context, actor Actor, req *request.BookAppointmentRequest) (*response.AppointmentResponse, error)
	List(ctx context.Context, actor Actor, req *request.AppointmentListRequest) (*response.PaginatedResponse[response.AppointmentResponse], error)
	Get(ctx context.Context, actor Actor, id string) (*response.AppointmentResponse, error)
	Update(ctx context.Context, actor Actor, id string, req *request.UpdateAppointmentRequest) (*response.AppointmentResponse, error)
	Cancel(ctx context.Context, actor Actor, id string, req *request.CancelAppointmentRequest) (*response.CancelAppointmentResponse, error)
	UpdateStatus(ctx context.Context, actor Actor, id string, req *request.UpdateStatusRequest) (*response.AppointmentResponse, error)
	Pay(ctx context.Context, actor Actor, id string, req *request.PayAppointmentRequest) (*response.AppointmentResponse, error)
}

type appointmentService struct {
	repo   *repository.Repository
	policy utils.PolicyConfig
	mailer mailer.Sender
	events Emitter
	loc    *time.Location
	now    func() time.Time
	log    *zap.Logger
}

func NewAppointmentService(
	repo *repository.Repository,
	config *utils.Config,
	deps Dependencies,
	events Emitter,
	log *zap.Logger,
) AppointmentService {
	return &appointmentService{
		repo:   repo,
		policy: config.Policy,
		mailer: deps.Mailer,
		events: events,
		loc:    deps.Location,
		now:    deps.Now,
		log:    log.With(zap.String("service", "appointment")),
	}
}

// ==================== BOOKING ====================

func (s *appointmentService) Book(ctx context.Context, actor Actor, req *request.BookAppointmentRequest) (*response.AppointmentResponse, error) {
	// 1. Validate input
	if err := validate(req); err != nil {
		return nil, err
	}
	if actor.Role != entity.RolePatient {
		return nil, newError(ErrForbidden, "only patients can book appointments")
	}

	doctorID, err := parseID(req.DoctorID, "doctor")
	if err != nil {
		return nil, err
	}
	date, hhmm, err := parseSlot(req.Date, req.Time)
	if err != nil {
		return nil, err
	}
	modality := entity.Modality(req.Type)

	// 2. Doctor must exist and take patients
	doctor, err := s.repo.Doctor.FindByID(ctx, doctorID)
	if err != nil {
		s.log.Error("Failed to find doctor", zap.Error(err), zap.String("doctor_id", req.DoctorID))
		return nil, fmt.Errorf("find doctor: %w", err)
	}
	if doctor == nil {
		return nil, newError(ErrNotFound, "doctor not found")
	}
	if !doctor.IsAcceptingPatients {
		return nil, newError(ErrPolicy, "doctor is not accepting new patients")
	}
	if !offers(doctor, modality) {
		return nil, newError(ErrPolicy, "doctor does not offer %s consultations", modality)
	}

	// 3. Must start strictly in the future
	now := s.now()
	if err := s.requireFuture(date, hhmm, now); err != nil {
		return nil, err
	}

	// 4. Slot must be free
	if err := s.requireFreeSlot(ctx, doctor.ID, date, hhmm, uuid.Nil); err != nil {
		return nil, err
	}

	// 5. Create appointment priced for the modality
	appointment := &entity.Appointment{
		BaseNoDelete:    entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		PatientID:       actor.UserID,
		DoctorID:        doctor.ID,
		AppointmentDate: date,
		AppointmentTime: hhmm,
		Type:            modality,
		Status:          entity.StatusScheduled,
		Reason:          strings.TrimSpace(req.Reason),
		Symptoms:        req.Symptoms,
		PatientNotes:    req.Notes,
		Payment: entity.Payment{
			Amount: doctor.FeeFor(modality),
			Status: entity.PaymentPending,
		},
	}

	if err := s.repo.Appointment.Create(ctx, appointment); err != nil {
		s.log.Warn("Failed to create appointment", zap.Error(err), zap.String("doctor_id", doctor.ID.String()))
		return nil, s.slotError(err, date, hhmm, "create appointment")
	}

	// 6. Side effects
	s.events.Emit(ctx, Event{
		Type:        EventAppointmentBooked,
		RecipientID: appointment.PatientID,
		Title:       "Appointment Booked",
		Message: fmt.Sprintf("Your appointment with Dr. %s has been scheduled for %s at %s",
			doctor.FullName(), appointment.DateString(), appointment.AppointmentTime),
		Category:   entity.NotificationAppointment,
		RelatedID:  &appointment.ID,
		OccurredAt: now,
	})
	s.sendEmail(ctx, appointment, doctor, mailer.AppointmentConfirmationEmail)

	s.log.Info("Appointment booked",
		zap.String("appointment_id", appointment.ID.String()),
		zap.String("doctor_id", doctor.ID.String()),
		zap.String("date", appointment.DateString()),
		zap.String("time", hhmm),
	)

	resp := response.AppointmentToResponse(appointment)
	return &resp, nil
}

// ==================== QUERIES ====================

func (s *appointmentService) List(ctx context.Context, actor Actor, req *request.AppointmentListRequest) (*response.PaginatedResponse[response.AppointmentResponse], error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	filter := repository.AppointmentFilter{Status: entity.AppointmentStatus(req.Status)}
	switch actor.Role {
	case entity.RolePatient:
		filter.PatientID = &actor.UserID
	case entity.RoleDoctor:
		doctor, err := s.repo.Doctor.FindByUserID(ctx, actor.UserID)
		if err != nil {
			s.log.Error("Failed to find doctor profile", zap.Error(err), zap.String("user_id", actor.UserID.String()))
			return nil, fmt.Errorf("find doctor: %w", err)
		}
		if doctor == nil {
			return response.NewPaginatedResponse([]response.AppointmentResponse{}, req.Page, req.Limit(), 0), nil
		}
		filter.DoctorID = &doctor.ID
	case entity.RoleAdmin:
	default:
		return nil, newError(ErrForbidden, "access denied")
	}

	appointments, err := s.repo.Appointment.FindAll(ctx, filter, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list appointments", zap.Error(err))
		return nil, fmt.Errorf("find appointments: %w", err)
	}

	total, err := s.repo.Appointment.Count(ctx, filter)
	if err != nil {
		s.log.Error("Failed to count appointments", zap.Error(err))
		return nil, fmt.Errorf("count appointments: %w", err)
	}

	return response.NewPaginatedResponse(response.AppointmentsToResponse(appointments), req.Page, req.Limit(), total), nil
}

func (s *appointmentService) Get(ctx context.Context, actor Actor, id string) (*response.AppointmentResponse, error) {
	appointment, _, err := s.loadForActor(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	resp := response.AppointmentToResponse(appointment)
	return &resp, nil
}

// ==================== PATIENT CHANGES ====================

func (s *appointmentService) Update(ctx context.Context, actor Actor, id string, req *request.UpdateAppointmentRequest) (*response.AppointmentResponse, error) {
	// 1. Validate
	if err := validate(req); err != nil {
		return nil, err
	}

	// 2. Only the patient who booked may change it
	appointment, party, err := s.loadForActor(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if party != partyPatient {
		return nil, newError(ErrForbidden, "only the patient can modify this appointment")
	}

	// 3. Eligibility
	now := s.now()
	if err := s.requireModifiable(appointment, now); err != nil {
		return nil, err
	}

	doctor, err := s.repo.Doctor.FindByID(ctx, appointment.DoctorID)
	if err != nil {
		s.log.Error("Failed to find doctor", zap.Error(err), zap.String("doctor_id", appointment.DoctorID.String()))
		return nil, fmt.Errorf("find doctor: %w", err)
	}
	if doctor == nil {
		return nil, newError(ErrNotFound, "doctor not found")
	}

	// 4. Reschedule
	if req.Date != nil || req.Time != nil {
		date, hhmm := appointment.DateString(), appointment.AppointmentTime
		if req.Date != nil {
			date = *req.Date
		}
		if req.Time != nil {
			hhmm = *req.Time
		}
		newDate, newTime, err := parseSlot(date, hhmm)
		if err != nil {
			return nil, err
		}
		if !newDate.Equal(appointment.AppointmentDate) || newTime != appointment.AppointmentTime {
			if err := s.requireFuture(newDate, newTime, now); err != nil {
				return nil, err
			}
			if err := s.requireFreeSlot(ctx, appointment.DoctorID, newDate, newTime, appointment.ID); err != nil {
				return nil, err
			}
			appointment.AppointmentDate = newDate
			appointment.AppointmentTime = newTime
		}
	}

	// 5. Modality change re-prices an unpaid appointment
	if req.Type != nil && entity.Modality(*req.Type) != appointment.Type {
		modality := entity.Modality(*req.Type)
		if !offers(doctor, modality) {
			return nil, newError(ErrPolicy, "doctor does not offer %s consultations", modality)
		}
		fee := doctor.FeeFor(modality)
		if appointment.Payment.Status != entity.PaymentPending && fee != appointment.Payment.Amount {
			return nil, newError(ErrPolicy, "consultation type cannot be changed to a different price after payment")
		}
		appointment.Type = modality
		appointment.Payment.Amount = fee
	}

	if req.Reason != nil {
		appointment.Reason = strings.TrimSpace(*req.Reason)
	}
	if req.Symptoms != nil {
		appointment.Symptoms = req.Symptoms
	}
	if req.Notes != nil {
		appointment.PatientNotes = req.Notes
	}
	appointment.UpdatedAt = now

	// 6. Save
	if err := s.repo.Appointment.Update(ctx, appointment); err != nil {
		s.log.Warn("Failed to update appointment", zap.Error(err), zap.String("appointment_id", id))
		return nil, s.slotError(err, appointment.AppointmentDate, appointment.AppointmentTime, "update appointment")
	}

	s.events.Emit(ctx, Event{
		Type:        EventAppointmentUpdated,
		RecipientID: appointment.PatientID,
		Title:       "Appointment Updated",
		Message: fmt.Sprintf("Your appointment with Dr. %s has been updated to %s at %s",
			doctor.FullName(), appointment.DateString(), appointment.AppointmentTime),
		Category:   entity.NotificationAppointment,
		RelatedID:  &appointment.ID,
		OccurredAt: now,
	})

	s.log.Info("Appointment updated", zap.String("appointment_id", id))

	resp := response.AppointmentToResponse(appointment)
	return &resp, nil
}

func (s *appointmentService) Cancel(ctx context.Context, actor Actor, id string, req *request.CancelAppointmentRequest) (*response.CancelAppointmentResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	appointment, party, err := s.loadForActor(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	return s.cancel(ctx, actor, party, appointment, req.Reason)
}

func (s *appointmentService) Pay(ctx context.Context, actor Actor, id string, req *request.PayAppointmentRequest) (*response.AppointmentResponse, error) {
	// 1. Validate
	if err := validate(req); err != nil {
		return nil, err
	}

	appointment, party, err := s.loadForActor(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if party != partyPatient {
		return nil, newError(ErrForbidden, "only the patient can pay for this appointment")
	}

	// 2. Payment rules
	if appointment.Status == entity.StatusCancelled {
		return nil, newError(ErrPolicy, "cannot pay for a cancelled appointment")
	}
	if appointment.Payment.Status != entity.PaymentPending {
		return nil, newError(ErrPolicy, "payment is already %s", appointment.Payment.Status)
	}
	if roundCents(req.Amount) != roundCents(appointment.Payment.Amount) {
		return nil, newError(ErrValidation, "amount must be %.2f", appointment.Payment.Amount)
	}

	// 3. Mark paid
	now := s.now()
	method := entity.PaymentMethod(req.Method)
	appointment.Payment.Status = entity.PaymentPaid
	appointment.Payment.Method = &method
	appointment.Payment.TransactionID = req.TransactionID
	appointment.Payment.PaidAt = &now
	appointment.UpdatedAt = now

	if err := s.repo.Appointment.Update(ctx, appointment); err != nil {
		s.log.Error("Failed to record payment", zap.Error(err), zap.String("appointment_id", id))
		return nil, fromRepository(err, "update appointment")
	}

	s.events.Emit(ctx, Event{
		Type:        EventPaymentReceived,
		RecipientID: appointment.PatientID,
		Title:       "Payment Received",
		Message:     fmt.Sprintf("We received your payment of %.2f for the appointment on %s", appointment.Payment.Amount, appointment.DateString()),
		Category:    entity.NotificationPayment,
		RelatedID:   &appointment.ID,
		OccurredAt:  now,
	})

	s.log.Info("Appointment paid",
		zap.String("appointment_id", id),
		zap.String("method", req.Method),
		zap.Float64("amount", appointment.Payment.Amount))

	resp := response.AppointmentToResponse(appointment)
	return &resp, nil
}

// ==================== STATUS ====================

func (s *appointmentService) UpdateStatus(ctx context.Context, actor Actor, id string, req *request.UpdateStatusRequest) (*response.AppointmentResponse, error) {
	// 1. Validate
	if err := validate(req); err != nil {
		return nil, err
	}

	appointment, party, err := s.loadForActor(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if party == partyPatient {
		return nil, newError(ErrForbidden, "patients cannot change appointment status")
	}

	// 2. Cancelling goes through the cancellation flow
	target := entity.AppointmentStatus(req.Status)
	if target == entity.StatusCancelled {
		result, err := s.cancel(ctx, actor, party, appointment, req.Reason)
		if err != nil {
			return nil, err
		}
		return &result.Appointment, nil
	}

	// 3. Check transition table
	previous := appointment.Status
	if previous.IsTerminal() {
		return nil, newError(ErrPolicy, "appointment is already %s", previous)
	}
	if !previous.CanTransitionTo(target) {
		return nil, newError(ErrPolicy, "cannot change status from %s to %s", previous, target)
	}

	now := s.now()
	appointment.Status = target
	if req.DoctorNotes != nil {
		appointment.DoctorNotes = req.DoctorNotes
	}
	if req.Prescription != nil {
		appointment.Prescription = req.Prescription
	}
	appointment.UpdatedAt = now

	// 4. Save
	if err := s.repo.Appointment.Update(ctx, appointment); err != nil {
		s.log.Error("Failed to update status", zap.Error(err), zap.String("appointment_id", id))
		return nil, fromRepository(err, "update appointment")
	}

	s.events.Emit(ctx, Event{
		Type:        EventAppointmentStatus,
		RecipientID: appointment.PatientID,
		Title:       "Appointment Status Updated",
		Message:     fmt.Sprintf("Your appointment on %s at %s is now %s", appointment.DateString(), appointment.AppointmentTime, target),
		Category:    entity.NotificationAppointment,
		RelatedID:   &appointment.ID,
		OccurredAt:  now,
	})

	s.log.Info("Appointment status changed",
		zap.String("appointment_id", id),
		zap.String("from", string(previous)),
		zap.String("to", string(target)))

	resp := response.AppointmentToResponse(appointment)
	return &resp, nil
}

// ==================== HELPER METHODS ====================

type party int

const (
	partyAdmin party = iota
	partyPatient
	partyDoctor
)

// loadForActor fetches an appointment and reports how the actor relates to
// it. Unrelated callers get ErrForbidden.
func (s *appointmentService) loadForActor(ctx context.Context, actor Actor, id string) (*entity.Appointment, party, error) {
	appointmentID, err := parseID(id, "appointment")
	if err != nil {
		return nil, 0, err
	}

	appointment, err := s.repo.Appointment.FindByID(ctx, appointmentID)
	if err != nil {
		s.log.Error("Failed to find appointment", zap.Error(err), zap.String("appointment_id", id))
		return nil, 0, fmt.Errorf("find appointment: %w", err)
	}
	if appointment == nil {
		return nil, 0, newError(ErrNotFound, "appointment not found")
	}

	switch actor.Role {
	case entity.RoleAdmin:
		return appointment, partyAdmin, nil
	case entity.RolePatient:
		if appointment.PatientID == actor.UserID {
			return appointment, partyPatient, nil
		}
	case entity.RoleDoctor:
		doctor, err := s.repo.Doctor.FindByUserID(ctx, actor.UserID)
		if err != nil {
			s.log.Error("Failed to find doctor profile", zap.Error(err), zap.String("user_id", actor.UserID.String()))
			return nil, 0, fmt.Errorf("find doctor: %w", err)
		}
		if doctor != nil && doctor.ID == appointment.DoctorID {
			return appointment, partyDoctor, nil
		}
	}

	return nil, 0, newError(ErrForbidden, "you do not have access to this appointment")
}

// cancel moves an appointment to cancelled and stamps the cancellation
// record. Only patients pay a cancellation fee.
func (s *appointmentService) cancel(ctx context.Context, actor Actor, p party, appointment *entity.Appointment, reason *string) (*response.CancelAppointmentResponse, error) {
	// 1. Only live appointments can be cancelled
	if appointment.Status == entity.StatusCancelled {
		return nil, newError(ErrPolicy, "appointment is already cancelled")
	}
	if !appointment.Status.Modifiable() {
		return nil, newError(ErrPolicy, "cannot cancel an appointment that is %s", appointment.Status)
	}

	// 2. Fee from notice given
	now := s.now()
	start, err := appointment.StartsAt(s.loc)
	if err != nil {
		return nil, fmt.Errorf("appointment start: %w", err)
	}
	hours := HoursUntil(start, now)

	fee := 0.0
	if p == partyPatient {
		if s.policy.CancellationRequireNotice && hours < float64(s.policy.NoticeHours) {
			return nil, newError(ErrPolicy, "cannot cancel appointment within %d hours", s.policy.NoticeHours)
		}
		fee = CancellationFee(appointment.Payment.Amount, hours)
	}
	refund := roundCents(appointment.Payment.Amount - fee)

	refundStatus := entity.RefundPending
	if fee == 0 {
		refundStatus = entity.RefundProcessed
	}

	text := fmt.Sprintf("Cancelled by %s", actor.Role)
	if reason != nil && strings.TrimSpace(*reason) != "" {
		text = strings.TrimSpace(*reason)
	}

	// 3. Stamp and save
	appointment.Status = entity.StatusCancelled
	if refundStatus == entity.RefundProcessed && appointment.Payment.Status == entity.PaymentPaid {
		appointment.Payment.Status = entity.PaymentRefunded
	}
	appointment.Cancellation = &entity.Cancellation{
		CancelledBy:  actor.Role,
		ActorID:      actor.UserID,
		Reason:       text,
		CancelledAt:  now,
		Fee:          fee,
		RefundAmount: refund,
		RefundStatus: refundStatus,
	}
	appointment.UpdatedAt = now

	if err := s.repo.Appointment.Update(ctx, appointment); err != nil {
		s.log.Error("Failed to cancel appointment", zap.Error(err), zap.String("appointment_id", appointment.ID.String()))
		return nil, fromRepository(err, "cancel appointment")
	}

	// 4. Side effects
	message := fmt.Sprintf("Your appointment on %s at %s has been cancelled", appointment.DateString(), appointment.AppointmentTime)
	if fee > 0 {
		message += fmt.Sprintf(" with a %.2f cancellation fee", fee)
	}
	s.events.Emit(ctx, Event{
		Type:        EventAppointmentCancelled,
		RecipientID: appointment.PatientID,
		Title:       "Appointment Cancelled",
		Message:     message,
		Category:    entity.NotificationAppointment,
		RelatedID:   &appointment.ID,
		OccurredAt:  now,
	})

	if doctor, err := s.repo.Doctor.FindByID(ctx, appointment.DoctorID); err == nil && doctor != nil {
		s.sendEmail(ctx, appointment, doctor, mailer.AppointmentCancelledEmail)
	}

	s.log.Info("Appointment cancelled",
		zap.String("appointment_id", appointment.ID.String()),
		zap.String("by", string(actor.Role)),
		zap.Float64("hours_remaining", hours),
		zap.Float64("fee", fee),
		zap.Float64("refund", refund),
	)

	return &response.CancelAppointmentResponse{
		Appointment:     response.AppointmentToResponse(appointment),
		CancellationFee: fee,
		RefundAmount:    refund,
	}, nil
}

func (s *appointmentService) requireModifiable(appointment *entity.Appointment, now time.Time) error {
	if !appointment.Status.Modifiable() {
		return newError(ErrPolicy, "cannot modify an appointment that is %s", appointment.Status)
	}
	start, err := appointment.StartsAt(s.loc)
	if err != nil {
		return fmt.Errorf("appointment start: %w", err)
	}
	if !CanModify(appointment.Status, HoursUntil(start, now), s.policy.NoticeHours) {
		return newError(ErrPolicy, "cannot modify appointment within %d hours", s.policy.NoticeHours)
	}
	return nil
}

func (s *appointmentService) requireFuture(date time.Time, hhmm string, now time.Time) error {
	start, err := entity.CombineDateTime(date, hhmm, s.loc)
	if err != nil {
		return newError(ErrValidation, "invalid appointment time")
	}
	if !start.After(now) {
		return newError(ErrValidation, "appointment must be scheduled in the future")
	}
	return nil
}

// requireFreeSlot rejects a slot held by any live appointment other than self.
func (s *appointmentService) requireFreeSlot(ctx context.Context, doctorID uuid.UUID, date time.Time, hhmm string, self uuid.UUID) error {
	existing, err := s.repo.Appointment.FindActiveBySlot(ctx, doctorID, date, hhmm)
	if err != nil {
		s.log.Error("Failed to check slot", zap.Error(err), zap.String("doctor_id", doctorID.String()))
		return fmt.Errorf("check slot: %w", err)
	}
	if existing != nil && existing.ID != self {
		return slotTaken(date, hhmm)
	}
	return nil
}

func (s *appointmentService) slotError(err error, date time.Time, hhmm, op string) error {
	if errors.Is(err, repository.ErrSlotTaken) {
		return slotTaken(date, hhmm)
	}
	return fromRepository(err, op)
}

func (s *appointmentService) sendEmail(
	ctx context.Context,
	appointment *entity.Appointment,
	doctor *entity.Doctor,
	build func(string, mailer.AppointmentData) (mailer.Message, error),
) {
	patient, err := s.repo.User.FindByID(ctx, appointment.PatientID)
	if err != nil || patient == nil {
		s.log.Warn("Skipping appointment email, patient not loaded", zap.Error(err))
		return
	}

	data := mailer.AppointmentData{
		PatientName: patient.FullName(),
		DoctorName:  doctor.FullName(),
		Specialty:   string(doctor.Specialty),
		Date:        appointment.DateString(),
		Time:        appointment.AppointmentTime,
		Type:        string(appointment.Type),
		Amount:      appointment.Payment.Amount,
	}
	if c := appointment.Cancellation; c != nil {
		data.Fee = c.Fee
		data.Refund = c.RefundAmount
	}

	msg, err := build(patient.Email, data)
	if err != nil {
		s.log.Error("Failed to render appointment email", zap.Error(err))
		return
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		s.log.Warn("Failed to send appointment email",
			zap.Error(err),
			zap.String("appointment_id", appointment.ID.String()))
	}
}

func parseSlot(date, hhmm string) (time.Time, string, error) {
	d, err := entity.ParseDate(date)
	if err != nil {
		return time.Time{}, "", newError(ErrValidation, "date must be in YYYY-MM-DD format")
	}
	t, err := time.Parse(entity.TimeLayout, hhmm)
	if err != nil {
		return time.Time{}, "", newError(ErrValidation, "time must be in HH:MM format")
	}
	return d, t.Format(entity.TimeLayout), nil
}

func slotTaken(date time.Time, hhmm string) error {
	return newError(ErrConflict, "the %s %s slot is already booked", date.Format(entity.DateLayout), hhmm)
}

func offers(doctor *entity.Doctor, m entity.Modality) bool {
	if len(doctor.ConsultationTypes) == 0 {
		return true
	}
	for _, t := range doctor.ConsultationTypes {
		if t == m {
			return true
		}
	}
	return false
}
