package response

import (
	"time"

	"healthcare-booking/internal/data/entity"
)

type AuthResponse struct {
	User             UserResponse `json:"user"`
	Token            string       `json:"token"`
	ExpiresAt        time.Time    `json:"expiresAt"`
	RefreshToken     string       `json:"refreshToken"`
	RefreshExpiresAt time.Time    `json:"refreshExpiresAt"`
}

type UserResponse struct {
	ID                 string                    `json:"id"`
	FirstName          string                    `json:"firstName"`
	LastName           string                    `json:"lastName"`
	FullName           string                    `json:"fullName"`
	Email              string                    `json:"email"`
	Phone              string                    `json:"phone"`
	Role               entity.UserRole           `json:"userType"`
	DateOfBirth        *string                   `json:"dateOfBirth,omitempty"`
	Gender             *string                   `json:"gender,omitempty"`
	ProfilePicture     *string                   `json:"profilePicture,omitempty"`
	Address            entity.Address            `json:"address"`
	EmergencyContact   entity.EmergencyContact   `json:"emergencyContact"`
	Insurance          entity.Insurance          `json:"insurance"`
	Medical            *entity.MedicalProfile    `json:"medical,omitempty"`
	RegistrationMethod entity.RegistrationMethod `json:"registrationMethod"`
	IsEmailVerified    bool                      `json:"isEmailVerified"`
	IsActive           bool                      `json:"isActive"`
	LastLoginAt        *time.Time                `json:"lastLoginAt,omitempty"`
	CreatedAt          time.Time                 `json:"createdAt"`
}

func UserToResponse(user *entity.User) UserResponse {
	resp := UserResponse{
		ID:                 user.ID.String(),
		FirstName:          user.FirstName,
		LastName:           user.LastName,
		FullName:           user.FullName(),
		Email:              user.Email,
		Phone:              user.Phone,
		Role:               user.Role,
		Gender:             user.Gender,
		ProfilePicture:     user.ProfilePicture,
		Address:            user.Address,
		EmergencyContact:   user.EmergencyContact,
		Insurance:          user.Insurance,
		RegistrationMethod: user.RegistrationMethod,
		IsEmailVerified:    user.EmailVerified,
		IsActive:           user.IsActive,
		LastLoginAt:        user.LastLoginAt,
		CreatedAt:          user.CreatedAt,
	}
	if user.DateOfBirth != nil {
		dob := user.DateOfBirth.Format(entity.DateLayout)
		resp.DateOfBirth = &dob
	}
	// Medical metadata is only exposed for patients.
	if user.Role == entity.RolePatient {
		medical := user.Medical
		resp.Medical = &medical
	}
	return resp
}

func UsersToResponse(users []*entity.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, UserToResponse(users[i]))
	}
	return out
}
