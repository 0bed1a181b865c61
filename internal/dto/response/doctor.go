package response

import (
	"healthcare-booking/internal/data/entity"
)

type RatingResponse struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

type DoctorResponse struct {
	ID                  string                    `json:"id"`
	UserID              string                    `json:"userId"`
	Name                string                    `json:"name"`
	Email               string                    `json:"email"`
	LicenseNumber       string                    `json:"licenseNumber"`
	Specialty           entity.Specialty          `json:"specialty"`
	SubSpecialty        *string                   `json:"subSpecialty,omitempty"`
	Experience          int                       `json:"experience"`
	Languages           []string                  `json:"languages"`
	ConsultationFee     entity.ConsultationFee    `json:"consultationFee"`
	Availability        entity.WeeklyAvailability `json:"availability"`
	About               *string                   `json:"about,omitempty"`
	Rating              RatingResponse            `json:"rating"`
	TotalPatients       int                       `json:"totalPatients"`
	IsVerified          bool                      `json:"isVerified"`
	IsAcceptingPatients bool                      `json:"isAcceptingPatients"`
	ConsultationTypes   []entity.Modality         `json:"consultationTypes"`

	Education             []entity.Education            `json:"education,omitempty"`
	Certifications        []entity.Certification        `json:"certifications,omitempty"`
	HospitalAffiliations  []entity.HospitalAffiliation  `json:"hospitalAffiliations,omitempty"`
	Services              []entity.DoctorService        `json:"services,omitempty"`
	Awards                []entity.Award                `json:"awards,omitempty"`
	VerificationDocuments []entity.VerificationDocument `json:"verificationDocuments,omitempty"`
}

type AvailabilityResponse struct {
	DoctorID       string   `json:"doctorId"`
	Date           string   `json:"date"`
	AvailableSlots []string `json:"availableSlots"`
}

func DoctorToResponse(d *entity.Doctor) DoctorResponse {
	return DoctorResponse{
		ID:                  d.ID.String(),
		UserID:              d.UserID.String(),
		Name:                d.FullName(),
		Email:               d.Email,
		LicenseNumber:       d.LicenseNumber,
		Specialty:           d.Specialty,
		SubSpecialty:        d.SubSpecialty,
		Experience:          d.Experience,
		Languages:           d.Languages,
		ConsultationFee:     d.Fee,
		Availability:        d.Availability,
		About:               d.About,
		Rating:              RatingResponse{Average: d.RatingAverage, Count: d.RatingCount},
		TotalPatients:       d.TotalPatients,
		IsVerified:          d.IsVerified,
		IsAcceptingPatients: d.IsAcceptingPatients,
		ConsultationTypes:   d.ConsultationTypes,

		Education:             d.Credentials.Education,
		Certifications:        d.Credentials.Certifications,
		HospitalAffiliations:  d.Credentials.HospitalAffiliations,
		Services:              d.Credentials.Services,
		Awards:                d.Credentials.Awards,
		VerificationDocuments: d.Credentials.VerificationDocuments,
	}
}

func DoctorsToResponse(doctors []*entity.Doctor) []DoctorResponse {
	out := make([]DoctorResponse, 0, len(doctors))
	for i := range doctors {
		out = append(out, DoctorToResponse(doctors[i]))
	}
	return out
}
