package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"healthcare-booking/internal/data/entity"
	"healthcare-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const appointmentSlotConstraint = "appointments_doctor_slot_key"

// AppointmentFilter scopes appointment listings. Nil IDs are not filtered.
type AppointmentFilter struct {
	PatientID *uuid.UUID
	DoctorID  *uuid.UUID
	Status    entity.AppointmentStatus
}

type AppointmentRepository interface {
	Create(ctx context.Context, appointment *entity.Appointment) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error)
	FindAll(ctx context.Context, filter AppointmentFilter, limit, offset int) ([]*entity.Appointment, error)
	Count(ctx context.Context, filter AppointmentFilter) (int64, error)
	Update(ctx context.Context, appointment *entity.Appointment) error

	// Slot queries only consider appointments that still block the slot.
	FindActiveBySlot(ctx context.Context, doctorID uuid.UUID, date time.Time, hhmm string) (*entity.Appointment, error)
	FindBookedTimes(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]string, error)
}

const appointmentColumns = `
	id, patient_id, doctor_id, appointment_date, appointment_time, type, status,
	reason, symptoms, patient_notes, doctor_notes, prescription,
	payment_amount, payment_status, payment_method, transaction_id, paid_at,
	cancellation, created_at, updated_at`

type appointmentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAppointmentRepository(db database.PgxIface, log *zap.Logger) AppointmentRepository {
	return &appointmentRepository{
		db:  db,
		log: log.With(zap.String("repository", "appointment")),
	}
}

func scanAppointment(row rowScanner) (*entity.Appointment, error) {
	var a entity.Appointment
	err := row.Scan(
		&a.ID,
		&a.PatientID,
		&a.DoctorID,
		&a.AppointmentDate,
		&a.AppointmentTime,
		&a.Type,
		&a.Status,
		&a.Reason,
		&a.Symptoms,
		&a.PatientNotes,
		&a.DoctorNotes,
		&a.Prescription,
		&a.Payment.Amount,
		&a.Payment.Status,
		&a.Payment.Method,
		&a.Payment.TransactionID,
		&a.Payment.PaidAt,
		&a.Cancellation,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func symptomsArg(a *entity.Appointment) []string {
	if a.Symptoms == nil {
		return []string{}
	}
	return a.Symptoms
}

func (r *appointmentRepository) Create(ctx context.Context, a *entity.Appointment) error {
	query := `
		INSERT INTO appointments (id, patient_id, doctor_id, appointment_date, appointment_time,
		                          type, status, reason, symptoms, patient_notes,
		                          payment_amount, payment_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.db.Exec(ctx, query,
		a.ID,
		a.PatientID,
		a.DoctorID,
		a.AppointmentDate,
		a.AppointmentTime,
		a.Type,
		a.Status,
		a.Reason,
		symptomsArg(a),
		a.PatientNotes,
		a.Payment.Amount,
		a.Payment.Status,
		a.CreatedAt,
		a.UpdatedAt,
	)

	if database.IsUniqueViolation(err, appointmentSlotConstraint) {
		return fmt.Errorf("create appointment %s %s: %w", a.DateString(), a.AppointmentTime, ErrSlotTaken)
	}
	if err != nil {
		r.log.Error("Failed to create appointment",
			zap.Error(err),
			zap.String("doctor_id", a.DoctorID.String()),
			zap.String("patient_id", a.PatientID.String()),
		)
		return fmt.Errorf("create appointment: %w", err)
	}

	return nil
}

func (r *appointmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE id = $1`

	a, err := scanAppointment(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find appointment by ID",
			zap.Error(err),
			zap.String("appointment_id", id.String()),
		)
		return nil, fmt.Errorf("find appointment by ID %s: %w", id.String(), err)
	}

	return a, nil
}

func (f AppointmentFilter) buildWhere() (string, []any) {
	var (
		conds []string
		args  []any
	)
	if f.PatientID != nil {
		args = append(args, *f.PatientID)
		conds = append(conds, fmt.Sprintf("patient_id = $%d", len(args)))
	}
	if f.DoctorID != nil {
		args = append(args, *f.DoctorID)
		conds = append(conds, fmt.Sprintf("doctor_id = $%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *appointmentRepository) FindAll(ctx context.Context, filter AppointmentFilter, limit, offset int) ([]*entity.Appointment, error) {
	where, args := filter.buildWhere()
	args = append(args, limit, offset)
	query := `SELECT ` + appointmentColumns + ` FROM appointments` + where + fmt.Sprintf(
		` ORDER BY appointment_date DESC, appointment_time DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list appointments",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer rows.Close()

	var appointments []*entity.Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			r.log.Error("Failed to scan appointment row", zap.Error(err))
			return nil, fmt.Errorf("scan appointment row: %w", err)
		}
		appointments = append(appointments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate appointment rows: %w", err)
	}

	return appointments, nil
}

func (r *appointmentRepository) Count(ctx context.Context, filter AppointmentFilter) (int64, error) {
	where, args := filter.buildWhere()

	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM appointments`+where, args...).Scan(&count); err != nil {
		r.log.Error("Failed to count appointments", zap.Error(err))
		return 0, fmt.Errorf("count appointments: %w", err)
	}

	return count, nil
}

func (r *appointmentRepository) Update(ctx context.Context, a *entity.Appointment) error {
	query := `
		UPDATE appointments
		SET appointment_date = $2, appointment_time = $3, type = $4, status = $5,
		    reason = $6, symptoms = $7, patient_notes = $8, doctor_notes = $9,
		    prescription = $10, payment_amount = $11, payment_status = $12,
		    payment_method = $13, transaction_id = $14, paid_at = $15,
		    cancellation = $16, updated_at = $17
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		a.ID,
		a.AppointmentDate,
		a.AppointmentTime,
		a.Type,
		a.Status,
		a.Reason,
		symptomsArg(a),
		a.PatientNotes,
		a.DoctorNotes,
		a.Prescription,
		a.Payment.Amount,
		a.Payment.Status,
		a.Payment.Method,
		a.Payment.TransactionID,
		a.Payment.PaidAt,
		a.Cancellation,
		a.UpdatedAt,
	)

	if database.IsUniqueViolation(err, appointmentSlotConstraint) {
		return fmt.Errorf("update appointment %s: %w", a.ID.String(), ErrSlotTaken)
	}
	if err != nil {
		r.log.Error("Failed to update appointment",
			zap.Error(err),
			zap.String("appointment_id", a.ID.String()),
		)
		return fmt.Errorf("update appointment %s: %w", a.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update appointment %s: %w", a.ID.String(), ErrRecordMissing)
	}

	return nil
}

func (r *appointmentRepository) FindActiveBySlot(ctx context.Context, doctorID uuid.UUID, date time.Time, hhmm string) (*entity.Appointment, error) {
	query := `SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE doctor_id = $1 AND appointment_date = $2 AND appointment_time = $3
		  AND status <> 'cancelled'
		LIMIT 1
	`

	a, err := scanAppointment(r.db.QueryRow(ctx, query, doctorID, date, hhmm))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find appointment by slot",
			zap.Error(err),
			zap.String("doctor_id", doctorID.String()),
			zap.String("date", date.Format(entity.DateLayout)),
			zap.String("time", hhmm),
		)
		return nil, fmt.Errorf("find appointment by slot: %w", err)
	}

	return a, nil
}

func (r *appointmentRepository) FindBookedTimes(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]string, error) {
	query := `
		SELECT appointment_time
		FROM appointments
		WHERE doctor_id = $1 AND appointment_date = $2 AND status <> 'cancelled'
		ORDER BY appointment_time
	`

	rows, err := r.db.Query(ctx, query, doctorID, date)
	if err != nil {
		r.log.Error("Failed to find booked times",
			zap.Error(err),
			zap.String("doctor_id", doctorID.String()),
		)
		return nil, fmt.Errorf("find booked times: %w", err)
	}

	times, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("collect booked times: %w", err)
	}

	return times, nil
}
