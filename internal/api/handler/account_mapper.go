package handler

import (
	"github.com/orius/cartorio-api/internal/core/domain"
	"github.com/orius/cartorio-api/internal/core/ports"
)

// --- Request → Service input ---

func toCreateInput(req signupRequest) ports.CreateAccountInput {
	return ports.CreateAccountInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
	}
}

func toUpdateInput(req updateAccountRequest) ports.UpdateAccountInput {
	return ports.UpdateAccountInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
	}
}

// --- Service result → HTTP response ---

func toAccountResponse(a *domain.Account) accountResponse {
	return accountResponse{ID: a.ID, FullName: a.FullName, Email: a.Email}
}

func toAccountListItem(a *domain.Account) accountListItem {
	p := a.Profile
	return accountListItem{
		accountResponse:    toAccountResponse(a),
		Login:              p.Login,
		Phone:              p.Phone,
		CPF:                p.CPF,
		Initials:           p.Initials,
		JobTitle:           p.JobTitle,
		Status:             p.Status,
		UserType:           p.UserType,
		ReadOnly:           p.ReadOnly,
		MustChangePassword: p.MustChangePassword,
		LastLoginAt:        p.LastLoginAt,
		ExpiresAt:          p.ExpiresAt,
		CreatedAt:          a.CreatedAt,
	}
}

func toTokenResponse(t *domain.AccessToken) tokenResponse {
	return tokenResponse{AccessToken: t.Token, TokenType: t.TokenType}
}
