package request

type RegisterRequest struct {
	FirstName   string  `json:"firstName" validate:"required,max=50"`
	LastName    string  `json:"lastName" validate:"required,max=50"`
	Email       string  `json:"email" validate:"required,email"`
	Password    string  `json:"password" validate:"required,min=8,strongpassword"`
	Phone       string  `json:"phone" validate:"required,min=10,max=20"`
	UserType    string  `json:"userType" validate:"omitempty,oneof=patient doctor"`
	DateOfBirth *string `json:"dateOfBirth,omitempty" validate:"omitempty,date"`
	Gender      *string `json:"gender,omitempty" validate:"omitempty,oneof=male female other"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SocialLoginRequest carries the profile the client obtained from the
// identity provider.
type SocialLoginRequest struct {
	ID       string  `json:"id" validate:"required"`
	Name     string  `json:"name" validate:"required,max=100"`
	Email    string  `json:"email" validate:"required,email"`
	Picture  *string `json:"picture,omitempty" validate:"omitempty,url"`
	Provider string  `json:"provider" validate:"required,oneof=google facebook"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=8,strongpassword"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refreshToken,omitempty"`
}
