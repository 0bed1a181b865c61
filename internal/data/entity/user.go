package entity

import (
	"strings"
	"time"
)

type UserRole string

const (
	RolePatient UserRole = "patient"
	RoleDoctor  UserRole = "doctor"
	RoleAdmin   UserRole = "admin"
)

func (r UserRole) IsValid() bool {
	switch r {
	case RolePatient, RoleDoctor, RoleAdmin:
		return true
	}
	return false
}

type RegistrationMethod string

const (
	RegistrationEmail          RegistrationMethod = "email"
	RegistrationSocialGoogle   RegistrationMethod = "social_google"
	RegistrationSocialFacebook RegistrationMethod = "social_facebook"
)

// IsSocial reports whether the account originated from a federated identity.
func (m RegistrationMethod) IsSocial() bool {
	return strings.HasPrefix(string(m), "social_")
}

type Address struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	ZipCode string `json:"zipCode,omitempty"`
	Country string `json:"country,omitempty"`
}

type EmergencyContact struct {
	Name         string `json:"name,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Relationship string `json:"relationship,omitempty"`
}

type Insurance struct {
	Provider     string `json:"provider,omitempty"`
	PolicyNumber string `json:"policyNumber,omitempty"`
	GroupNumber  string `json:"groupNumber,omitempty"`
}

type MedicalCondition struct {
	Condition     string     `json:"condition"`
	DiagnosedDate *time.Time `json:"diagnosedDate,omitempty"`
	Status        string     `json:"status,omitempty"` // active, resolved, chronic
}

type Medication struct {
	Name      string     `json:"name"`
	Dosage    string     `json:"dosage,omitempty"`
	Frequency string     `json:"frequency,omitempty"`
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
}

// MedicalProfile is only meaningful for patients. Stored as JSONB.
type MedicalProfile struct {
	Allergies      []string           `json:"allergies"`
	Medications    []Medication       `json:"medications"`
	MedicalHistory []MedicalCondition `json:"medicalHistory"`
}

type SocialProvider struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Picture     string    `json:"picture,omitempty"`
	ConnectedAt time.Time `json:"connectedAt"`
}

type User struct {
	Base
	FirstName          string                    `db:"first_name"`
	LastName           string                    `db:"last_name"`
	Email              string                    `db:"email"`
	PasswordHash       *string                   `db:"password"`
	Phone              string                    `db:"phone"`
	Role               UserRole                  `db:"role"`
	DateOfBirth        *time.Time                `db:"date_of_birth"`
	Gender             *string                   `db:"gender"`
	ProfilePicture     *string                   `db:"profile_picture"`
	Address            Address                   `db:"address"`
	EmergencyContact   EmergencyContact          `db:"emergency_contact"`
	Insurance          Insurance                 `db:"insurance"`
	Medical            MedicalProfile            `db:"medical"`
	SocialProviders    map[string]SocialProvider `db:"social_providers"`
	RegistrationMethod RegistrationMethod        `db:"registration_method"`
	EmailVerified      bool                      `db:"email_verified"`
	IsActive           bool                      `db:"is_active"`
	LastLoginAt        *time.Time                `db:"last_login_at"`
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// HasPassword is false only for accounts created through social login.
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}
