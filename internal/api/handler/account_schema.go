package handler

import "time"

// --- Request types ---

type signupRequest struct {
	FullName string `json:"fullName" validate:"required,max=200"`
	Email    string `json:"email"    validate:"required,max=254"`
	Password string `json:"password" validate:"required,max=72"`
}

// updateAccountRequest accepts any subset of the signup fields.
type updateAccountRequest struct {
	FullName *string `json:"fullName" validate:"omitempty,max=200"`
	Email    *string `json:"email"    validate:"omitempty,max=254"`
	Password *string `json:"password" validate:"omitempty,max=72"`
}

// loginRequest is accepted as JSON or as an OAuth2 password form.
// username carries the email.
type loginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// --- Response types ---

type accountResponse struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// accountListItem adds the registry profile to accountResponse.
type accountListItem struct {
	accountResponse
	Login              *string    `json:"login"`
	Phone              *string    `json:"phone"`
	CPF                *string    `json:"cpf"`
	Initials           *string    `json:"initials"`
	JobTitle           *string    `json:"jobTitle"`
	Status             *string    `json:"status"`
	UserType           *string    `json:"userType"`
	ReadOnly           bool       `json:"readOnly"`
	MustChangePassword bool       `json:"mustChangePassword"`
	LastLoginAt        *time.Time `json:"lastLoginAt"`
	ExpiresAt          *time.Time `json:"expiresAt"`
	CreatedAt          time.Time  `json:"createdAt"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
