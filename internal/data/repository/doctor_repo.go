package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"healthcare-booking/internal/data/entity"
	"healthcare-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// DoctorFilter narrows public doctor listings.
type DoctorFilter struct {
	Specialty string
	Search    string
	// OnlyListed restricts to verified doctors accepting new patients.
	OnlyListed bool
}

type DoctorRepository interface {
	Create(ctx context.Context, doctor *entity.Doctor) error
	Update(ctx context.Context, doctor *entity.Doctor) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Doctor, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Doctor, error)
	FindAll(ctx context.Context, filter DoctorFilter, limit, offset int) ([]*entity.Doctor, error)
	Count(ctx context.Context, filter DoctorFilter) (int64, error)
	SetVerified(ctx context.Context, id uuid.UUID, verified bool) error
}

const doctorSelect = `
	SELECT d.id, d.user_id, d.license_number, d.specialty, d.sub_specialty,
	       d.experience, d.languages, d.consultation_fee, d.availability, d.about,
	       d.rating_average, d.rating_count, d.total_patients, d.is_verified,
	       d.is_accepting_patients, d.consultation_types, d.credentials, d.created_at, d.updated_at,
	       u.first_name, u.last_name, u.email
	FROM doctors d
	JOIN users u ON u.id = d.user_id AND u.deleted_at IS NULL`

type doctorRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewDoctorRepository(db database.PgxIface, log *zap.Logger) DoctorRepository {
	return &doctorRepository{
		db:  db,
		log: log.With(zap.String("repository", "doctor")),
	}
}

func scanDoctor(row rowScanner) (*entity.Doctor, error) {
	var (
		doctor entity.Doctor
		types  []string
	)
	err := row.Scan(
		&doctor.ID,
		&doctor.UserID,
		&doctor.LicenseNumber,
		&doctor.Specialty,
		&doctor.SubSpecialty,
		&doctor.Experience,
		&doctor.Languages,
		&doctor.Fee,
		&doctor.Availability,
		&doctor.About,
		&doctor.RatingAverage,
		&doctor.RatingCount,
		&doctor.TotalPatients,
		&doctor.IsVerified,
		&doctor.IsAcceptingPatients,
		&types,
		&doctor.Credentials,
		&doctor.CreatedAt,
		&doctor.UpdatedAt,
		&doctor.FirstName,
		&doctor.LastName,
		&doctor.Email,
	)
	if err != nil {
		return nil, err
	}
	for _, t := range types {
		doctor.ConsultationTypes = append(doctor.ConsultationTypes, entity.Modality(t))
	}
	return &doctor, nil
}

func doctorWriteArgs(doctor *entity.Doctor) (languages, types []string, availability entity.WeeklyAvailability) {
	languages = doctor.Languages
	if languages == nil {
		languages = []string{}
	}
	types = make([]string, 0, len(doctor.ConsultationTypes))
	for _, t := range doctor.ConsultationTypes {
		types = append(types, string(t))
	}
	availability = doctor.Availability
	if availability == nil {
		availability = entity.WeeklyAvailability{}
	}
	return languages, types, availability
}

func (r *doctorRepository) Create(ctx context.Context, doctor *entity.Doctor) error {
	query := `
		INSERT INTO doctors (id, user_id, license_number, specialty, sub_specialty, experience,
		                     languages, consultation_fee, availability, about, is_verified,
		                     is_accepting_patients, consultation_types, credentials, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	languages, types, availability := doctorWriteArgs(doctor)
	_, err := r.db.Exec(ctx, query,
		doctor.ID,
		doctor.UserID,
		doctor.LicenseNumber,
		doctor.Specialty,
		doctor.SubSpecialty,
		doctor.Experience,
		languages,
		doctor.Fee,
		availability,
		doctor.About,
		doctor.IsVerified,
		doctor.IsAcceptingPatients,
		types,
		doctor.Credentials,
		doctor.CreatedAt,
		doctor.UpdatedAt,
	)

	if database.IsUniqueViolation(err, "doctors_license_number_key") {
		return fmt.Errorf("create doctor %s: %w", doctor.LicenseNumber, ErrLicenseTaken)
	}
	if err != nil {
		r.log.Error("Failed to create doctor",
			zap.Error(err),
			zap.String("user_id", doctor.UserID.String()),
		)
		return fmt.Errorf("create doctor for user %s: %w", doctor.UserID.String(), err)
	}

	return nil
}

func (r *doctorRepository) Update(ctx context.Context, doctor *entity.Doctor) error {
	query := `
		UPDATE doctors
		SET license_number = $2, specialty = $3, sub_specialty = $4, experience = $5,
		    languages = $6, consultation_fee = $7, availability = $8, about = $9,
		    is_accepting_patients = $10, consultation_types = $11, credentials = $12, updated_at = $13
		WHERE id = $1
	`

	languages, types, availability := doctorWriteArgs(doctor)
	result, err := r.db.Exec(ctx, query,
		doctor.ID,
		doctor.LicenseNumber,
		doctor.Specialty,
		doctor.SubSpecialty,
		doctor.Experience,
		languages,
		doctor.Fee,
		availability,
		doctor.About,
		doctor.IsAcceptingPatients,
		types,
		doctor.Credentials,
		doctor.UpdatedAt,
	)

	if database.IsUniqueViolation(err, "doctors_license_number_key") {
		return fmt.Errorf("update doctor %s: %w", doctor.ID.String(), ErrLicenseTaken)
	}
	if err != nil {
		r.log.Error("Failed to update doctor",
			zap.Error(err),
			zap.String("doctor_id", doctor.ID.String()),
		)
		return fmt.Errorf("update doctor %s: %w", doctor.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update doctor %s: %w", doctor.ID.String(), ErrRecordMissing)
	}

	return nil
}

func (r *doctorRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Doctor, error) {
	doctor, err := scanDoctor(r.db.QueryRow(ctx, doctorSelect+` WHERE d.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find doctor by ID",
			zap.Error(err),
			zap.String("doctor_id", id.String()),
		)
		return nil, fmt.Errorf("find doctor by ID %s: %w", id.String(), err)
	}

	return doctor, nil
}

func (r *doctorRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Doctor, error) {
	doctor, err := scanDoctor(r.db.QueryRow(ctx, doctorSelect+` WHERE d.user_id = $1`, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find doctor by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find doctor by user ID %s: %w", userID.String(), err)
	}

	return doctor, nil
}

// buildWhere renders the filter into a WHERE clause with positional args.
func (f DoctorFilter) buildWhere() (string, []any) {
	var (
		conds []string
		args  []any
	)

	if f.OnlyListed {
		conds = append(conds, "d.is_verified = TRUE", "d.is_accepting_patients = TRUE")
	}
	if f.Specialty != "" {
		args = append(args, f.Specialty)
		conds = append(conds, fmt.Sprintf("d.specialty = $%d", len(args)))
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		args = append(args, "%"+s+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(u.first_name ILIKE $%d OR u.last_name ILIKE $%d OR d.specialty ILIKE $%d OR d.sub_specialty ILIKE $%d)",
			n, n, n, n))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *doctorRepository) FindAll(ctx context.Context, filter DoctorFilter, limit, offset int) ([]*entity.Doctor, error) {
	where, args := filter.buildWhere()
	args = append(args, limit, offset)
	query := doctorSelect + where + fmt.Sprintf(
		` ORDER BY d.rating_average DESC, d.rating_count DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list doctors",
			zap.Error(err),
			zap.String("specialty", filter.Specialty),
			zap.String("search", filter.Search),
		)
		return nil, fmt.Errorf("list doctors: %w", err)
	}
	defer rows.Close()

	var doctors []*entity.Doctor
	for rows.Next() {
		doctor, err := scanDoctor(rows)
		if err != nil {
			r.log.Error("Failed to scan doctor row", zap.Error(err))
			return nil, fmt.Errorf("scan doctor row: %w", err)
		}
		doctors = append(doctors, doctor)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate doctor rows: %w", err)
	}

	return doctors, nil
}

func (r *doctorRepository) Count(ctx context.Context, filter DoctorFilter) (int64, error) {
	where, args := filter.buildWhere()
	query := `SELECT COUNT(*) FROM doctors d JOIN users u ON u.id = d.user_id AND u.deleted_at IS NULL` + where

	var count int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		r.log.Error("Failed to count doctors", zap.Error(err))
		return 0, fmt.Errorf("count doctors: %w", err)
	}

	return count, nil
}

func (r *doctorRepository) SetVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	query := `UPDATE doctors SET is_verified = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, verified)
	if err != nil {
		r.log.Error("Failed to set doctor verification",
			zap.Error(err),
			zap.String("doctor_id", id.String()),
		)
		return fmt.Errorf("set doctor %s verified: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("set doctor %s verified: %w", id.String(), ErrRecordMissing)
	}

	return nil
}
