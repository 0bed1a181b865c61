package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Specialty string

const (
	SpecialtyCardiology        Specialty = "Cardiology"
	SpecialtyNeurology         Specialty = "Neurology"
	SpecialtyOrthopedics       Specialty = "Orthopedics"
	SpecialtyDermatology       Specialty = "Dermatology"
	SpecialtyPediatrics        Specialty = "Pediatrics"
	SpecialtyGynecology        Specialty = "Gynecology"
	SpecialtyPsychiatry        Specialty = "Psychiatry"
	SpecialtyOphthalmology     Specialty = "Ophthalmology"
	SpecialtyENT               Specialty = "ENT"
	SpecialtyDentistry         Specialty = "Dentistry"
	SpecialtyGeneralMedicine   Specialty = "General Medicine"
	SpecialtySurgery           Specialty = "Surgery"
	SpecialtyRadiology         Specialty = "Radiology"
	SpecialtyPathology         Specialty = "Pathology"
	SpecialtyAnesthesiology    Specialty = "Anesthesiology"
	SpecialtyEmergencyMedicine Specialty = "Emergency Medicine"
)

var specialties = []Specialty{
	SpecialtyCardiology, SpecialtyNeurology, SpecialtyOrthopedics, SpecialtyDermatology,
	SpecialtyPediatrics, SpecialtyGynecology, SpecialtyPsychiatry, SpecialtyOphthalmology,
	SpecialtyENT, SpecialtyDentistry, SpecialtyGeneralMedicine, SpecialtySurgery,
	SpecialtyRadiology, SpecialtyPathology, SpecialtyAnesthesiology, SpecialtyEmergencyMedicine,
}

func Specialties() []Specialty {
	out := make([]Specialty, len(specialties))
	copy(out, specialties)
	return out
}

func (s Specialty) IsValid() bool {
	for _, v := range specialties {
		if v == s {
			return true
		}
	}
	return false
}

// TimeRange is an open window in HH:MM, end exclusive.
type TimeRange struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type DayAvailability struct {
	IsAvailable bool        `json:"isAvailable"`
	Slots       []TimeRange `json:"slots"`
}

// WeeklyAvailability is keyed by lower-case weekday name ("monday" ...).
type WeeklyAvailability map[string]DayAvailability

func (w WeeklyAvailability) For(day time.Weekday) DayAvailability {
	if w == nil {
		return DayAvailability{}
	}
	return w[strings.ToLower(day.String())]
}

type ConsultationFee struct {
	InPerson float64 `json:"inPerson"`
	Video    float64 `json:"video"`
}

type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        int    `json:"year,omitempty"`
	Country     string `json:"country,omitempty"`
}

type Certification struct {
	Name              string `json:"name"`
	IssuingBody       string `json:"issuingBody"`
	IssueDate         string `json:"issueDate,omitempty"`
	ExpiryDate        string `json:"expiryDate,omitempty"`
	CertificateNumber string `json:"certificateNumber,omitempty"`
}

type HospitalAffiliation struct {
	Name      string `json:"name"`
	Address   string `json:"address,omitempty"`
	Position  string `json:"position,omitempty"`
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
	IsCurrent bool   `json:"isCurrent"`
}

// DoctorService is a priced offering listed on the profile. It does not
// change what a booked consultation costs.
type DoctorService struct {
	Name            string  `json:"name"`
	Description     string  `json:"description,omitempty"`
	DurationMinutes int     `json:"duration,omitempty"`
	Fee             float64 `json:"fee"`
}

type Award struct {
	Title       string `json:"title"`
	Year        int    `json:"year,omitempty"`
	IssuingBody string `json:"issuingBody,omitempty"`
}

type DocumentStatus string

const (
	DocumentPending  DocumentStatus = "pending"
	DocumentApproved DocumentStatus = "approved"
	DocumentRejected DocumentStatus = "rejected"
)

type VerificationDocument struct {
	Type       string         `json:"type"`
	URL        string         `json:"url"`
	Status     DocumentStatus `json:"status"`
	UploadedAt time.Time      `json:"uploadedAt"`
}

// DoctorCredentials is the free-form part of a profile, stored as one
// JSONB document.
type DoctorCredentials struct {
	Education             []Education            `json:"education,omitempty"`
	Certifications        []Certification        `json:"certifications,omitempty"`
	HospitalAffiliations  []HospitalAffiliation  `json:"hospitalAffiliations,omitempty"`
	Services              []DoctorService        `json:"services,omitempty"`
	Awards                []Award                `json:"awards,omitempty"`
	VerificationDocuments []VerificationDocument `json:"verificationDocuments,omitempty"`
}

type Doctor struct {
	BaseNoDelete
	UserID              uuid.UUID          `db:"user_id"`
	LicenseNumber       string             `db:"license_number"`
	Specialty           Specialty          `db:"specialty"`
	SubSpecialty        *string            `db:"sub_specialty"`
	Experience          int                `db:"experience"`
	Languages           []string           `db:"languages"`
	Fee                 ConsultationFee    `db:"consultation_fee"`
	Availability        WeeklyAvailability `db:"availability"`
	About               *string            `db:"about"`
	RatingAverage       float64            `db:"rating_average"`
	RatingCount         int                `db:"rating_count"`
	TotalPatients       int                `db:"total_patients"`
	IsVerified          bool               `db:"is_verified"`
	IsAcceptingPatients bool               `db:"is_accepting_patients"`
	ConsultationTypes   []Modality         `db:"consultation_types"`
	Credentials         DoctorCredentials  `db:"credentials"`

	// Populated from the joined users row on reads.
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
	Email     string `db:"email"`
}

func (d *Doctor) FullName() string {
	return strings.TrimSpace(d.FirstName + " " + d.LastName)
}

// FeeFor prices a consultation. Phone consultations are billed at the
// in-person rate.
func (d *Doctor) FeeFor(m Modality) float64 {
	if m == ModalityVideo {
		return d.Fee.Video
	}
	return d.Fee.InPerson
}
