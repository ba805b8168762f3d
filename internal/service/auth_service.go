package service

import (
	"context"
	"errors"
	"fmt"

	"employee-management-api/internal/apperror"
	"employee-management-api/internal/security"
	"employee-management-api/internal/store"
)

const invalidCredentialsMessage = "Invalid username or password"

// dummyHash keeps unknown usernames paying for a bcrypt comparison.
const dummyHash = "$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5BWX4Z3e5sDtNu0kaD4MlDq4FM6Ce"

type AuthService struct {
	users  CredentialStore
	tokens TokenIssuer
}

func NewAuthService(users CredentialStore, tokens TokenIssuer) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
	}
}

func (s *AuthService) Login(ctx context.Context, username, password string) (LoginResult, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			security.VerifyPassword(password, dummyHash)
			return LoginResult{}, apperror.New(apperror.CodeUnauthorized, invalidCredentialsMessage)
		}
		return LoginResult{}, err
	}

	if !security.VerifyPassword(password, user.PasswordHash) {
		return LoginResult{}, apperror.New(apperror.CodeUnauthorized, invalidCredentialsMessage)
	}

	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		return LoginResult{}, fmt.Errorf("issue token: %w", err)
	}

	return LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}
