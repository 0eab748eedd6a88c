package domain

import "time"

// Account models a registered user of the API.
type Account struct {
	ID           int64
	FullName     string
	Email        string
	PasswordHash string
	Profile      AccountProfile
	CreatedAt    time.Time
}

// AccountProfile carries the optional registry attributes of an account.
// They are loaded for display only; no operation in this service mutates them.
type AccountProfile struct {
	Login              *string
	Phone              *string
	CPF                *string
	Initials           *string
	JobTitle           *string
	Status             *string
	UserType           *string
	ReadOnly           bool
	MustChangePassword bool
	LastLoginAt        *time.Time
	ExpiresAt          *time.Time
}

// AccountPatch lists the fields of a partial update. Nil means "leave as is".
// PasswordHash is already hashed when it reaches a repository.
type AccountPatch struct {
	FullName     *string
	Email        *string
	PasswordHash *string
}

// Empty reports whether the patch touches no field.
func (p AccountPatch) Empty() bool {
	return p.FullName == nil && p.Email == nil && p.PasswordHash == nil
}
