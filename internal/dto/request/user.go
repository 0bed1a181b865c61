package request

import "healthcare-booking/internal/data/entity"

// UpdateProfileRequest is a partial update; nil fields are left as is.
// Email, role and password are deliberately absent.
type UpdateProfileRequest struct {
	FirstName        *string                   `json:"firstName,omitempty" validate:"omitempty,min=1,max=50"`
	LastName         *string                   `json:"lastName,omitempty" validate:"omitempty,min=1,max=50"`
	Phone            *string                   `json:"phone,omitempty" validate:"omitempty,min=10,max=20"`
	DateOfBirth      *string                   `json:"dateOfBirth,omitempty" validate:"omitempty,date"`
	Gender           *string                   `json:"gender,omitempty" validate:"omitempty,oneof=male female other"`
	ProfilePicture   *string                   `json:"profilePicture,omitempty" validate:"omitempty,url"`
	Address          *entity.Address           `json:"address,omitempty"`
	EmergencyContact *entity.EmergencyContact  `json:"emergencyContact,omitempty"`
	Insurance        *entity.Insurance         `json:"insurance,omitempty"`
	Allergies        []string                  `json:"allergies,omitempty" validate:"omitempty,max=50,dive,min=1,max=100"`
	Medications      []entity.Medication       `json:"medications,omitempty" validate:"omitempty,max=50"`
	MedicalHistory   []entity.MedicalCondition `json:"medicalHistory,omitempty" validate:"omitempty,max=100"`
}
